package metrics

import (
	"time"

	"fyyur/internal/types"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	EntityVenue  = "venue"
	EntityArtist = "artist"
	EntityShow   = "show"

	OperationCreate = "create"
	OperationEdit   = "edit"
	OperationDelete = "delete"

	OutcomeSuccess = "success"
)

var (
	submissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fyyur_submissions_total",
		Help: "Booking submissions by entity, operation and outcome",
	}, []string{"entity", "operation", "outcome"})

	submissionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fyyur_submission_duration_seconds",
		Help:    "Time spent resolving and persisting a booking submission",
		Buckets: prometheus.DefBuckets,
	}, []string{"entity", "operation"})

	areaCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fyyur_venue_area_cache_lookups_total",
		Help: "Venue area listing cache lookups by result",
	}, []string{"result"})
)

// RecordSubmission counts one finished submission; kind is FailureNone on success
func RecordSubmission(entity, operation string, kind types.FailureKind, started time.Time) {
	outcome := OutcomeSuccess
	if kind != types.FailureNone {
		outcome = kind.String()
	}

	submissionsTotal.WithLabelValues(entity, operation, outcome).Inc()
	submissionDuration.WithLabelValues(entity, operation).Observe(time.Since(started).Seconds())
}

func RecordAreaCacheLookup(hit bool) {
	if hit {
		areaCacheLookups.WithLabelValues("hit").Inc()
		return
	}
	areaCacheLookups.WithLabelValues("miss").Inc()
}

// Submissions exposes the counter for one label set
func Submissions(entity, operation, outcome string) prometheus.Counter {
	return submissionsTotal.WithLabelValues(entity, operation, outcome)
}
