package artistController

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

type ArtistForm struct {
	Name         string `form:"name"          validate:"required"`
	Phone        string `form:"phone"         validate:"max=20"`
	City         string `form:"city"          validate:"required"`
	State        string `form:"state"         validate:"required,len=2"`
	ImageLink    string `form:"image_link"`
	FacebookLink string `form:"facebook_link"`
	WebsiteLink  string `form:"website_link"`
	Genres       []string

	SeekingSet         bool
	Seeking            bool
	SeekingDescription string
}

type ArtistDetail struct {
	*Artist
	PastShows          []types.ShowListing `json:"pastShows"`
	UpcomingShows      []types.ShowListing `json:"upcomingShows"`
	PastShowsCount     int                 `json:"pastShowsCount"`
	UpcomingShowsCount int                 `json:"upcomingShowsCount"`
}

type ArtistControllerInterface interface {
	Create(ctx context.Context, form types.Form) types.Outcome
	Edit(ctx context.Context, id int, form types.Form) types.Outcome
	List(ctx context.Context) ([]types.ArtistSummary, error)
	Search(ctx context.Context, term string) (*types.SearchResult[types.ArtistSummary], error)
	Get(ctx context.Context, id int) (*ArtistDetail, error)
}

type ArtistController struct {
	artistRepo         repositories.ArtistRepository
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
) ArtistControllerInterface {
	return &ArtistController{
		artistRepo:         repos.Artist,
		showRepo:           repos.Show,
		lookupService:      services.Lookup,
		transactionService: services.Transaction,
		eventBus:           eventBus,
		now:                time.Now,
		log:                logger.New("artistController"),
	}
}

func ParseArtistForm(form types.Form) (*ArtistForm, error) {
	present, seeking, description, err := form.Seeking(types.FormLookingForVenue)
	if err != nil {
		return nil, err
	}

	input := &ArtistForm{
		Name:               utils.CleanFormValue(form.Get(types.FormName)),
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

func (c *ArtistController) Create(ctx context.Context, form types.Form) types.Outcome {
	log := c.log.TraceFromContext(ctx).Function("Create")
	started := time.Now()

	input, err := ParseArtistForm(form)
	if err != nil {
		return c.fail(log, metrics.OperationCreate, err, "/", started)
	}

	artist := &Artist{}
	err = c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if err := c.apply(ctx, tx, artist, input); err != nil {
			return err
		}

		if err := c.artistRepo.Create(ctx, tx, artist); err != nil {
			return err
		}

		return c.linkGenres(ctx, tx, artist, input.Genres)
	})
	if err != nil {
		return c.fail(log, metrics.OperationCreate, err, "/", started)
	}

	c.publish(ctx, events.ARTIST_CREATED, artist)
	metrics.RecordSubmission(metrics.EntityArtist, metrics.OperationCreate, types.FailureNone, started)
	log.Info("Artist listed", "id", artist.ID, "name", artist.Name)

	return types.Succeeded(
		fmt.Sprintf("Artist %s was successfully listed!", artist.Name),
		"/",
		artist.ID,
	)
}

func (c *ArtistController) Edit(ctx context.Context, id int, form types.Form) types.Outcome {
	log := c.log.TraceFromContext(ctx).Function("Edit")
	started := time.Now()
	redirect := fmt.Sprintf("/artists/%d", id)

	input, err := ParseArtistForm(form)
	if err != nil {
		return c.fail(log, metrics.OperationEdit, err, redirect, started)
	}

	var artist *Artist
	err = c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		existing, err := c.artistRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		artist = existing

		if err := c.apply(ctx, tx, artist, input); err != nil {
			return err
		}

		if err := c.artistRepo.Save(ctx, tx, artist); err != nil {
			return err
		}

		return c.linkGenres(ctx, tx, artist, input.Genres)
	})
	if err != nil {
		return c.fail(log, metrics.OperationEdit, err, redirect, started)
	}

	c.publish(ctx, events.ARTIST_UPDATED, artist)
	metrics.RecordSubmission(metrics.EntityArtist, metrics.OperationEdit, types.FailureNone, started)
	log.Info("Artist edited", "id", artist.ID)

	return types.Succeeded(
		fmt.Sprintf("Artist %s was successfully edited!", artist.Name),
		redirect,
		artist.ID,
	)
}

func (c *ArtistController) List(ctx context.Context) ([]types.ArtistSummary, error) {
	log := c.log.TraceFromContext(ctx).Function("List")

	var summaries []types.ArtistSummary
	err := c.transactionService.Read(ctx, func(ctx context.Context, tx *gorm.DB) error {
		artists, err := c.artistRepo.GetAll(ctx, tx)
		if err != nil {
			return err
		}
		summaries = summarize(artists)
		return nil
	})
	if err != nil {
		return nil, log.Err("failed to list artists", err)
	}

	return summaries, nil
}

func (c *ArtistController) Search(
	ctx context.Context,
	term string,
) (*types.SearchResult[types.ArtistSummary], error) {
	log := c.log.TraceFromContext(ctx).Function("Search")

	var artists []*Artist
	err := c.transactionService.Read(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		artists, err = c.artistRepo.Search(ctx, tx, term)
		return err
	})
	if err != nil {
		return nil, log.Err("failed to search artists", err, "term", term)
	}

	data := summarize(artists)
	return &types.SearchResult[types.ArtistSummary]{
		Count:      len(data),
		Data:       data,
		SearchTerm: term,
	}, nil
}

func (c *ArtistController) Get(ctx context.Context, id int) (*ArtistDetail, error) {
	var detail *ArtistDetail

	err := c.transactionService.Read(ctx, func(ctx context.Context, tx *gorm.DB) error {
		artist, err := c.artistRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}

		shows, err := c.showRepo.GetByArtist(ctx, tx, id)
		if err != nil {
			return err
		}

		past, upcoming := PartitionShows(shows, c.now())
		detail = &ArtistDetail{
			Artist:             artist,
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

func (c *ArtistController) apply(
	ctx context.Context,
	tx *gorm.DB,
	artist *Artist,
	input *ArtistForm,
) error {
	if err := artist.SetLinks(input.ImageLink, input.FacebookLink, input.WebsiteLink); err != nil {
		return err
	}

	artist.Name = input.Name
	artist.Phone = input.Phone

	if input.SeekingSet {
		artist.SetSeeking(input.Seeking, input.SeekingDescription)
	}

	city, err := c.lookupService.ResolveCity(ctx, tx, input.City, input.State)
	if err != nil {
		return err
	}
	artist.CityID = city.ID
	artist.City = city

	return nil
}

func (c *ArtistController) linkGenres(
	ctx context.Context,
	tx *gorm.DB,
	artist *Artist,
	titles []string,
) error {
	genres, err := c.lookupService.ResolveGenres(ctx, tx, titles)
	if err != nil {
		return err
	}

	return c.artistRepo.AppendGenres(ctx, tx, artist, genres)
}

func (c *ArtistController) publish(ctx context.Context, eventType events.MessageType, artist *Artist) {
	if err := c.eventBus.PublishBooking(eventType, artist.ID, map[string]any{"name": artist.Name}); err != nil {
		c.log.TraceFromContext(ctx).
			Function("publish").
			Warn("failed to publish artist event", "type", eventType, "id", artist.ID, "error", err)
	}
}

func (c *ArtistController) fail(
	log logger.Logger,
	operation string,
	err error,
	redirect string,
	started time.Time,
) types.Outcome {
	kind := types.Classify(err)
	metrics.RecordSubmission(metrics.EntityArtist, operation, kind, started)
	log.Warn("artist submission failed", "operation", operation, "kind", kind.String(), "error", err)

	return types.Failed(kind, redirect)
}

func summarize(artists []*Artist) []types.ArtistSummary {
	summaries := make([]types.ArtistSummary, 0, len(artists))
	for _, artist := range artists {
		summaries = append(summaries, types.ArtistSummary{ID: artist.ID, Name: artist.Name})
	}
	return summaries
}
