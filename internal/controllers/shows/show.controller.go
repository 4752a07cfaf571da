package showController

import (
	"context"
	"time"

	"fyyur/internal/events"
	"fyyur/internal/metrics"
	. "fyyur/internal/models"
	"fyyur/internal/repositories"
	"fyyur/internal/services"
	"fyyur/internal/types"
	"fyyur/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

const ShowListedMessage = "Show was successfully listed!"

type ShowControllerInterface interface {
	Create(ctx context.Context, form types.Form) types.Outcome
	List(ctx context.Context) ([]types.ShowListing, error)
}

type ShowController struct {
	showRepo           repositories.ShowRepository
	venueRepo          repositories.VenueRepository
	transactionService *services.TransactionService
	eventBus           *events.EventBus
	log                logger.Logger
}

func New(
	repos repositories.Repository,
	services services.Service,
	eventBus *events.EventBus,
) ShowControllerInterface {
	return &ShowController{
		showRepo:           repos.Show,
		venueRepo:          repos.Venue,
		transactionService: services.Transaction,
		eventBus:           eventBus,
		log:                logger.New("showController"),
	}
}

// ParseShowForm reads artist_id, venue_id and start_time. Whether the artist and
// venue exist is left to the foreign keys.
func ParseShowForm(form types.Form) (*Show, error) {
	artistID, err := utils.ParseID(types.FormArtistID, form.Get(types.FormArtistID))
	if err != nil {
		return nil, err
	}

	venueID, err := utils.ParseID(types.FormVenueID, form.Get(types.FormVenueID))
	if err != nil {
		return nil, err
	}

	startTime, err := ParseShowStartTime(form.Get(types.FormStartTime))
	if err != nil {
		return nil, err
	}

	return &Show{
		ArtistID:  artistID,
		VenueID:   venueID,
		StartTime: startTime,
	}, nil
}

func (c *ShowController) Create(ctx context.Context, form types.Form) types.Outcome {
	log := c.log.TraceFromContext(ctx).Function("Create")
	started := time.Now()

	show, err := ParseShowForm(form)
	if err == nil {
		err = c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
			return c.showRepo.Create(ctx, tx, show)
		})
	}

	kind := types.Classify(err)
	metrics.RecordSubmission(metrics.EntityShow, metrics.OperationCreate, kind, started)

	if err != nil {
		log.Warn("show submission failed", "kind", kind.String(), "error", err)
		return types.Failed(kind, "/")
	}

	c.venueRepo.ClearAreasCache(ctx)
	if err := c.eventBus.PublishBooking(events.SHOW_CREATED, show.ID, map[string]any{
		"artistId": show.ArtistID,
		"venueId":  show.VenueID,
	}); err != nil {
		log.Warn("failed to publish show event", "id", show.ID, "error", err)
	}

	log.Info("Show listed", "id", show.ID, "artistID", show.ArtistID, "venueID", show.VenueID)

	return types.Succeeded(ShowListedMessage, "/", show.ID)
}

func (c *ShowController) List(ctx context.Context) ([]types.ShowListing, error) {
	log := c.log.TraceFromContext(ctx).Function("List")

	var shows []*Show
	err := c.transactionService.Read(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		shows, err = c.showRepo.GetAll(ctx, tx)
		return err
	})
	if err != nil {
		return nil, log.Err("failed to list shows", err)
	}

	return ShowListings(shows), nil
}
