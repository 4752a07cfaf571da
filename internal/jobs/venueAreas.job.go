package jobs

import (
	"context"

	"fyyur/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

const VenueAreasJobName = "VenueAreasCacheWarm"

type AreaWarmer interface {
	WarmAreas(ctx context.Context) error
}

// VenueAreasJob rebuilds the cached venue area listing so upcoming show counts
// stay current as shows move into the past.
type VenueAreasJob struct {
	warmer   AreaWarmer
	log      logger.Logger
	schedule services.Schedule
}

func NewVenueAreasJob(warmer AreaWarmer, schedule services.Schedule) *VenueAreasJob {
	log := logger.New("venueAreasJob")
	log.Info("Creating new venue areas job", "schedule", schedule)

	return &VenueAreasJob{
		warmer:   warmer,
		log:      log,
		schedule: schedule,
	}
}

func (j *VenueAreasJob) Name() string {
	return VenueAreasJobName
}

func (j *VenueAreasJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	if err := j.warmer.WarmAreas(ctx); err != nil {
		return log.Err("failed to warm venue areas", err)
	}

	return nil
}

func (j *VenueAreasJob) Schedule() services.Schedule {
	return j.schedule
}
