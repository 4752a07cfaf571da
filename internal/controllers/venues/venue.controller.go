package venueController

import (
	"context"
	"fmt"
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

// VenueForm is the decoded venue submission
type VenueForm struct {
	Name         string `form:"name"          validate:"required"`
	Address      string `form:"address"`
	Phone        string `form:"phone"         validate:"max=20"`
	City         string `form:"city"          validate:"required_with=State"`
	State        string `form:"state"         validate:"required_with=City,omitempty,len=2"`
	ImageLink    string `form:"image_link"`
	FacebookLink string `form:"facebook_link"`
	WebsiteLink  string `form:"website_link"`
	Genres       []string

	SeekingSet         bool
	Seeking            bool
	SeekingDescription string
}

type VenueDetail struct {
	*Venue
	PastShows          []types.ShowListing `json:"pastShows"`
	UpcomingShows      []types.ShowListing `json:"upcomingShows"`
	PastShowsCount     int                 `json:"pastShowsCount"`
	UpcomingShowsCount int                 `json:"upcomingShowsCount"`
}

type VenueControllerInterface interface {
	Create(ctx context.Context, form types.Form) types.Outcome
	Edit(ctx context.Context, id int, form types.Form) types.Outcome
	Delete(ctx context.Context, id int) types.Outcome
	GetAreas(ctx context.Context) ([]*types.VenueArea, error)
	WarmAreas(ctx context.Context) error
	Search(ctx context.Context, term string) (*types.SearchResult[types.VenueSummary], error)
	Get(ctx context.Context, id int) (*VenueDetail, error)
}

type VenueController struct {
	venueRepo          repositories.VenueRepository
	showRepo           repositories.ShowRepository
	lookupService      *services.LookupService
	transactionService *services.TransactionService
	eventBus           *events.EventBus
	now                func() time.Time
	log                logger.Logger
}

func New(
	repos repositories.Repository,
	services services.Service,
	eventBus *events.EventBus,
) VenueControllerInterface {
	return &VenueController{
		venueRepo:          repos.Venue,
		showRepo:           repos.Show,
		lookupService:      services.Lookup,
		transactionService: services.Transaction,
		eventBus:           eventBus,
		now:                time.Now,
		log:                logger.New("venueController"),
	}
}

// ParseVenueForm decodes and validates a submission. It never touches storage, so
// a form that fails here leaves no trace.
func ParseVenueForm(form types.Form) (*VenueForm, error) {
	present, seeking, description, err := form.Seeking(types.FormLookingForArtist)
	if err != nil {
		return nil, err
	}

	input := &VenueForm{
		Name:               utils.CleanFormValue(form.Get(types.FormName)),
		Address:            utils.CleanFormValue(form.Get(types.FormAddress)),
		Phone:              utils.CleanFormValue(form.Get(types.FormPhone)),
		City:               utils.CleanFormValue(form.Get(types.FormCity)),
		State:              utils.CleanFormValue(form.Get(types.FormState)),
		ImageLink:          utils.CleanFormValue(form.Get(types.FormImageLink)),
		FacebookLink:       utils.CleanFormValue(form.Get(types.FormFacebookLink)),
		WebsiteLink:        utils.CleanFormValue(form.Get(types.FormWebsiteLink)),
		Genres:             form.All(types.FormGenres),
		SeekingSet:         present,
		Seeking:            seeking,
		SeekingDescription: description,
	}

	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}

	return input, nil
}

func (c *VenueController) Create(ctx context.Context, form types.Form) types.Outcome {
	log := c.log.TraceFromContext(ctx).Function("Create")
	started := time.Now()

	input, err := ParseVenueForm(form)
	if err != nil {
		return c.fail(log, metrics.OperationCreate, err, "/", started)
	}

	venue := &Venue{}
	err = c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if err := c.apply(ctx, tx, venue, input); err != nil {
			return err
		}

		if err := c.venueRepo.Create(ctx, tx, venue); err != nil {
			return err
		}

		return c.linkGenres(ctx, tx, venue, input.Genres)
	})
	if err != nil {
		return c.fail(log, metrics.OperationCreate, err, "/", started)
	}

	c.afterCommit(ctx, events.VENUE_CREATED, venue)
	metrics.RecordSubmission(metrics.EntityVenue, metrics.OperationCreate, types.FailureNone, started)
	log.Info("Venue listed", "id", venue.ID, "name", venue.Name)

	return types.Succeeded(
		fmt.Sprintf("Venue %s was successfully listed!", venue.Name),
		"/",
		venue.ID,
	)
}

func (c *VenueController) Edit(ctx context.Context, id int, form types.Form) types.Outcome {
	log := c.log.TraceFromContext(ctx).Function("Edit")
	started := time.Now()
	redirect := fmt.Sprintf("/venues/%d", id)

	input, err := ParseVenueForm(form)
	if err != nil {
		return c.fail(log, metrics.OperationEdit, err, redirect, started)
	}

	var venue *Venue
	err = c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		existing, err := c.venueRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		venue = existing

		if err := c.apply(ctx, tx, venue, input); err != nil {
			return err
		}

		if err := c.venueRepo.Save(ctx, tx, venue); err != nil {
			return err
		}

		return c.linkGenres(ctx, tx, venue, input.Genres)
	})
	if err != nil {
		return c.fail(log, metrics.OperationEdit, err, redirect, started)
	}

	c.afterCommit(ctx, events.VENUE_UPDATED, venue)
	metrics.RecordSubmission(metrics.EntityVenue, metrics.OperationEdit, types.FailureNone, started)
	log.Info("Venue edited", "id", venue.ID)

	return types.Succeeded(
		fmt.Sprintf("Venue %s was successfully edited!", venue.Name),
		redirect,
		venue.ID,
	)
}

// Delete removes a venue and, through the foreign keys, its shows. A missing
// venue is reported in the outcome, not as an error.
func (c *VenueController) Delete(ctx context.Context, id int) types.Outcome {
	log := c.log.TraceFromContext(ctx).Function("Delete")
	started := time.Now()

	var venue *Venue
	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		existing, err := c.venueRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		venue = existing

		return c.venueRepo.Delete(ctx, tx, venue)
	})

	kind := types.Classify(err)
	metrics.RecordSubmission(metrics.EntityVenue, metrics.OperationDelete, kind, started)

	switch kind {
	case types.FailureNone:
		c.afterCommit(ctx, events.VENUE_DELETED, venue)
		log.Info("Venue deleted", "id", id)
		return types.Succeeded(fmt.Sprintf("Venue %s has been deleted!", venue.Name), "/", id)
	case types.FailureNotFound:
		log.Info("Venue to delete not found", "id", id)
	default:
		log.Er("failed to delete venue", err, "id", id, "kind", kind.String())
	}

	return types.Outcome{Message: "Venue not found!", Redirect: "/", Kind: kind}
}

func (c *VenueController) GetAreas(ctx context.Context) ([]*types.VenueArea, error) {
	log := c.log.TraceFromContext(ctx).Function("GetAreas")

	var areas []*types.VenueArea
	err := c.transactionService.Read(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		areas, err = c.venueRepo.GetAreas(ctx, tx, c.now())
		return err
	})
	if err != nil {
		return nil, log.Err("failed to get venue areas", err)
	}

	return areas, nil
}

// WarmAreas rebuilds the cached area listing from the database
func (c *VenueController) WarmAreas(ctx context.Context) error {
	log := c.log.TraceFromContext(ctx).Function("WarmAreas")

	c.venueRepo.ClearAreasCache(ctx)

	areas, err := c.GetAreas(ctx)
	if err != nil {
		return err
	}

	log.Debug("Venue areas warmed", "areas", len(areas))
	return nil
}

func (c *VenueController) Search(
	ctx context.Context,
	term string,
) (*types.SearchResult[types.VenueSummary], error) {
	log := c.log.TraceFromContext(ctx).Function("Search")

	result := &types.SearchResult[types.VenueSummary]{
		Data:       make([]types.VenueSummary, 0),
		SearchTerm: term,
	}

	err := c.transactionService.Read(ctx, func(ctx context.Context, tx *gorm.DB) error {
		venues, err := c.venueRepo.Search(ctx, tx, term)
		if err != nil {
			return err
		}

		upcoming, err := c.showRepo.CountUpcomingByVenue(ctx, tx, c.now())
		if err != nil {
			return err
		}

		for _, venue := range venues {
			result.Data = append(result.Data, types.VenueSummary{
				ID:               venue.ID,
				Name:             venue.Name,
				NumUpcomingShows: upcoming[venue.ID],
			})
		}
		return nil
	})
	if err != nil {
		return nil, log.Err("failed to search venues", err, "term", term)
	}

	result.Count = len(result.Data)
	return result, nil
}

func (c *VenueController) Get(ctx context.Context, id int) (*VenueDetail, error) {
	var detail *VenueDetail

	err := c.transactionService.Read(ctx, func(ctx context.Context, tx *gorm.DB) error {
		venue, err := c.venueRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}

		shows, err := c.showRepo.GetByVenue(ctx, tx, id)
		if err != nil {
			return err
		}

		past, upcoming := PartitionShows(shows, c.now())
		detail = &VenueDetail{
			Venue:              venue,
			PastShows:          ShowListings(past),
			UpcomingShows:      ShowListings(upcoming),
			PastShowsCount:     len(past),
			UpcomingShowsCount: len(upcoming),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return detail, nil
}

// apply copies the submitted fields onto venue and resolves its city. Links are
// validated before anything is assigned.
func (c *VenueController) apply(
	ctx context.Context,
	tx *gorm.DB,
	venue *Venue,
	input *VenueForm,
) error {
	if err := venue.SetLinks(input.ImageLink, input.FacebookLink, input.WebsiteLink); err != nil {
		return err
	}

	venue.Name = input.Name
	venue.Address = input.Address
	venue.Phone = input.Phone

	if input.SeekingSet {
		venue.SetSeeking(input.Seeking, input.SeekingDescription)
	}

	if input.City == "" && input.State == "" {
		venue.CityID = nil
		venue.City = nil
		return nil
	}

	city, err := c.lookupService.ResolveCity(ctx, tx, input.City, input.State)
	if err != nil {
		return err
	}
	venue.CityID = &city.ID
	venue.City = city

	return nil
}

func (c *VenueController) linkGenres(
	ctx context.Context,
	tx *gorm.DB,
	venue *Venue,
	titles []string,
) error {
	genres, err := c.lookupService.ResolveGenres(ctx, tx, titles)
	if err != nil {
		return err
	}

	return c.venueRepo.AppendGenres(ctx, tx, venue, genres)
}

func (c *VenueController) afterCommit(ctx context.Context, eventType events.MessageType, venue *Venue) {
	c.venueRepo.ClearAreasCache(ctx)

	if err := c.eventBus.PublishBooking(eventType, venue.ID, map[string]any{"name": venue.Name}); err != nil {
		c.log.TraceFromContext(ctx).
			Function("afterCommit").
			Warn("failed to publish venue event", "type", eventType, "id", venue.ID, "error", err)
	}
}

func (c *VenueController) fail(
	log logger.Logger,
	operation string,
	err error,
	redirect string,
	started time.Time,
) types.Outcome {
	kind := types.Classify(err)
	metrics.RecordSubmission(metrics.EntityVenue, operation, kind, started)
	log.Warn("venue submission failed", "operation", operation, "kind", kind.String(), "error", err)

	return types.Failed(kind, redirect)
}
