package venueController

import (
	"context"
	"errors"
	"testing"
	"time"

	"fyyur/config"
	"fyyur/internal/database"
	"fyyur/internal/events"
	"fyyur/internal/models"
	"fyyur/internal/repositories"
	"fyyur/internal/services"
	"fyyur/internal/testutil"
	"fyyur/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC)

type failingGenreRepository struct {
	repositories.GenreRepository
}

func (r *failingGenreRepository) FindByTitle(ctx context.Context, tx *gorm.DB, title string) (*models.Genre, error) {
	return nil, errors.New("genre lookup failed")
}

func newTestController(t *testing.T) (*VenueController, database.DB, repositories.Repository, *[]events.Event) {
	t.Helper()

	db := testutil.NewTestDB(t)
	repos := repositories.New(db)
	bus := events.New(nil, config.Config{})
	t.Cleanup(func() { _ = bus.Close() })

	published := &[]events.Event{}
	require.NoError(t, bus.Subscribe(events.BOOKING_CHANNEL, func(event events.Event) error {
		*published = append(*published, event)
		return nil
	}))

	controller := New(repos, services.New(db, repos), bus).(*VenueController)
	controller.now = func() time.Time { return fixedNow }

	return controller, db, repos, published
}

func fillmoreForm() types.Form {
	return types.Form{
		types.FormName:         {"The Fillmore"},
		types.FormAddress:      {"1805 Geary Blvd"},
		types.FormPhone:        {"415-346-6000"},
		types.FormCity:         {"San Francisco"},
		types.FormState:        {"CA"},
		types.FormWebsiteLink:  {"https://www.thefillmore.com"},
		types.FormFacebookLink: {"https://www.facebook.com/TheFillmore"},
		types.FormGenres:       {"Rock", "Jazz"},
	}
}

func TestVenueController_CreateFillmore(t *testing.T) {
	controller, db, repos, published := newTestController(t)
	ctx := context.Background()

	outcome := controller.Create(ctx, fillmoreForm())

	require.True(t, outcome.Success, outcome.Message)
	assert.Equal(t, "Venue The Fillmore was successfully listed!", outcome.Message)
	assert.Equal(t, "/", outcome.Redirect)
	assert.Equal(t, int64(1), testutil.Count(t, db, "cities"))
	assert.Equal(t, int64(2), testutil.Count(t, db, "genres"))
	assert.Equal(t, int64(1), testutil.Count(t, db, "venues"))
	assert.Equal(t, int64(2), testutil.Count(t, db, "venue_genres"))

	venue, err := repos.Venue.GetByID(ctx, db.SQL, outcome.RecordID)
	require.NoError(t, err)
	require.NotNil(t, venue.City)
	assert.Equal(t, "San Francisco", venue.City.City)
	assert.False(t, venue.SeekingTalent)

	require.Len(t, *published, 1)
	assert.Equal(t, events.VENUE_CREATED, (*published)[0].Type)
	assert.Equal(t, outcome.RecordID, (*published)[0].EntityID)
}

func TestVenueController_CreateDeduplicatesGenres(t *testing.T) {
	controller, db, _, _ := newTestController(t)

	form := fillmoreForm()
	form[types.FormGenres] = []string{"Rock", "Jazz", "Rock"}

	outcome := controller.Create(context.Background(), form)

	require.True(t, outcome.Success, outcome.Message)
	assert.Equal(t, int64(2), testutil.Count(t, db, "genres"))
	assert.Equal(t, int64(2), testutil.Count(t, db, "venue_genres"))
}

func TestVenueController_CreateFailuresLeaveNoRows(t *testing.T) {
	tests := []struct {
		name   string
		modify func(types.Form)
		kind   types.FailureKind
	}{
		{
			name: "seeking without description",
			modify: func(form types.Form) {
				form.Set(types.FormLookingForArtist, types.SeekingYes)
			},
			kind: types.FailureValidation,
		},
		{
			name: "invalid website link",
			modify: func(form types.Form) {
				form.Set(types.FormWebsiteLink, "thefillmore")
			},
			kind: types.FailureValidation,
		},
		{
			name: "state longer than two characters",
			modify: func(form types.Form) {
				form.Set(types.FormState, "Cal")
			},
			kind: types.FailureValidation,
		},
		{
			name: "city without state",
			modify: func(form types.Form) {
				form.Set(types.FormState, "")
			},
			kind: types.FailureValidation,
		},
		{
			name: "missing name",
			modify: func(form types.Form) {
				delete(form, types.FormName)
			},
			kind: types.FailureValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, db, _, published := newTestController(t)
			form := fillmoreForm()
			tt.modify(form)

			outcome := controller.Create(context.Background(), form)

			assert.False(t, outcome.Success)
			assert.Equal(t, types.GenericFailureMessage, outcome.Message)
			assert.Equal(t, tt.kind, outcome.Kind)
			assert.Equal(t, "/", outcome.Redirect)
			for _, table := range []string{"cities", "genres", "venues", "venue_genres"} {
				assert.Equal(t, int64(0), testutil.Count(t, db, table), table)
			}
			assert.Empty(t, *published)
		})
	}
}

func TestVenueController_CreateRollsBackResolvedCity(t *testing.T) {
	controller, db, repos, _ := newTestController(t)
	controller.lookupService = services.NewLookupService(repositories.Repository{
		City:  repos.City,
		Genre: &failingGenreRepository{},
	})

	outcome := controller.Create(context.Background(), fillmoreForm())

	assert.False(t, outcome.Success)
	assert.Equal(t, types.FailureInternal, outcome.Kind)
	assert.Equal(t, int64(0), testutil.Count(t, db, "cities"))
	assert.Equal(t, int64(0), testutil.Count(t, db, "venues"))
}

func TestVenueController_CreateReusesCity(t *testing.T) {
	controller, db, _, _ := newTestController(t)
	ctx := context.Background()

	first := controller.Create(ctx, fillmoreForm())
	second := fillmoreForm()
	second.Set(types.FormName, "The Warfield")
	second[types.FormGenres] = []string{"Rock"}
	outcome := controller.Create(ctx, second)

	require.True(t, first.Success)
	require.True(t, outcome.Success)
	assert.Equal(t, int64(1), testutil.Count(t, db, "cities"))
	assert.Equal(t, int64(2), testutil.Count(t, db, "venues"))
	assert.Equal(t, int64(2), testutil.Count(t, db, "genres"))
}

func TestVenueController_CreateWithoutCity(t *testing.T) {
	controller, db, repos, _ := newTestController(t)

	form := fillmoreForm()
	delete(form, types.FormCity)
	delete(form, types.FormState)

	outcome := controller.Create(context.Background(), form)

	require.True(t, outcome.Success, outcome.Message)
	venue, err := repos.Venue.GetByID(context.Background(), db.SQL, outcome.RecordID)
	require.NoError(t, err)
	assert.Nil(t, venue.CityID)
	assert.Equal(t, int64(0), testutil.Count(t, db, "cities"))
}

func TestVenueController_EditAddsGenres(t *testing.T) {
	controller, db, repos, published := newTestController(t)
	ctx := context.Background()

	created := controller.Create(ctx, fillmoreForm())
	require.True(t, created.Success)

	form := fillmoreForm()
	form.Set(types.FormName, "The Fillmore SF")
	form.Set(types.FormCity, "Oakland")
	form.Set(types.FormLookingForArtist, types.SeekingYes)
	form.Set(types.FormLookingDescription, "Looking for local openers")
	form[types.FormGenres] = []string{"Blues"}

	outcome := controller.Edit(ctx, created.RecordID, form)

	require.True(t, outcome.Success, outcome.Message)
	assert.Equal(t, "Venue The Fillmore SF was successfully edited!", outcome.Message)
	assert.Equal(t, "/venues/1", outcome.Redirect)

	venue, err := repos.Venue.GetByID(ctx, db.SQL, created.RecordID)
	require.NoError(t, err)
	assert.Equal(t, "The Fillmore SF", venue.Name)
	assert.Equal(t, "Oakland", venue.City.City)
	assert.True(t, venue.SeekingTalent)
	assert.Equal(t, "Looking for local openers", venue.SeekingDescription)

	titles := make([]string, 0, len(venue.Genres))
	for _, genre := range venue.Genres {
		titles = append(titles, genre.Title)
	}
	assert.Equal(t, []string{"Blues", "Jazz", "Rock"}, titles)
	assert.Equal(t, int64(2), testutil.Count(t, db, "cities"))

	require.Len(t, *published, 2)
	assert.Equal(t, events.VENUE_UPDATED, (*published)[1].Type)
}

func TestVenueController_EditMissingVenue(t *testing.T) {
	controller, db, _, _ := newTestController(t)

	outcome := controller.Edit(context.Background(), 999, fillmoreForm())

	assert.False(t, outcome.Success)
	assert.Equal(t, types.FailureNotFound, outcome.Kind)
	assert.Equal(t, "/venues/999", outcome.Redirect)
	assert.Equal(t, int64(0), testutil.Count(t, db, "cities"))
}

func TestVenueController_EditInvalidLinkKeepsRecord(t *testing.T) {
	controller, db, repos, _ := newTestController(t)
	ctx := context.Background()

	created := controller.Create(ctx, fillmoreForm())
	require.True(t, created.Success)

	form := fillmoreForm()
	form.Set(types.FormName, "Renamed")
	form.Set(types.FormImageLink, "not-a-link")

	outcome := controller.Edit(ctx, created.RecordID, form)

	assert.False(t, outcome.Success)
	assert.Equal(t, types.FailureValidation, outcome.Kind)

	venue, err := repos.Venue.GetByID(ctx, db.SQL, created.RecordID)
	require.NoError(t, err)
	assert.Equal(t, "The Fillmore", venue.Name)
}

func TestVenueController_Delete(t *testing.T) {
	controller, db, repos, published := newTestController(t)
	ctx := context.Background()

	created := controller.Create(ctx, fillmoreForm())
	require.True(t, created.Success)

	venue, err := repos.Venue.GetByID(ctx, db.SQL, created.RecordID)
	require.NoError(t, err)

	artist := &models.Artist{Name: "Guns N Petals", CityID: *venue.CityID}
	require.NoError(t, repos.Artist.Create(ctx, db.SQL, artist))
	require.NoError(t, repos.Show.Create(ctx, db.SQL, &models.Show{
		ArtistID:  artist.ID,
		VenueID:   venue.ID,
		StartTime: fixedNow.Add(24 * time.Hour),
	}))

	require.Equal(t, int64(2), testutil.Count(t, db, "venue_genres"))

	outcome := controller.Delete(ctx, venue.ID)

	assert.True(t, outcome.Success)
	assert.Equal(t, "Venue The Fillmore has been deleted!", outcome.Message)
	assert.Equal(t, int64(0), testutil.Count(t, db, "venues"))
	assert.Equal(t, int64(0), testutil.Count(t, db, "shows"))
	assert.Equal(t, int64(1), testutil.Count(t, db, "artists"))
	assert.Equal(t, int64(0), testutil.Count(t, db, "venue_genres"))
	assert.Equal(t, int64(2), testutil.Count(t, db, "genres"), "genres outlive the venue")
	assert.Equal(t, events.VENUE_DELETED, (*published)[len(*published)-1].Type)

	missing := controller.Delete(ctx, venue.ID)

	assert.False(t, missing.Success)
	assert.Equal(t, types.FailureNotFound, missing.Kind)
	assert.Equal(t, "Venue not found!", missing.Message)
}

func TestVenueController_ReadSide(t *testing.T) {
	controller, db, repos, _ := newTestController(t)
	ctx := context.Background()

	created := controller.Create(ctx, fillmoreForm())
	require.True(t, created.Success)

	venue, err := repos.Venue.GetByID(ctx, db.SQL, created.RecordID)
	require.NoError(t, err)
	artist := &models.Artist{Name: "The Wild Sax Band", CityID: *venue.CityID}
	require.NoError(t, repos.Artist.Create(ctx, db.SQL, artist))
	for _, offset := range []time.Duration{-48 * time.Hour, 0, 72 * time.Hour} {
		require.NoError(t, repos.Show.Create(ctx, db.SQL, &models.Show{
			ArtistID:  artist.ID,
			VenueID:   venue.ID,
			StartTime: fixedNow.Add(offset),
		}))
	}

	detail, err := controller.Get(ctx, venue.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, detail.PastShowsCount)
	assert.Equal(t, 2, detail.UpcomingShowsCount)
	assert.Equal(t, "The Wild Sax Band", detail.UpcomingShows[0].ArtistName)

	areas, err := controller.GetAreas(ctx)
	require.NoError(t, err)
	require.Len(t, areas, 1)
	require.Len(t, areas[0].Venues, 1)
	assert.Equal(t, 2, areas[0].Venues[0].NumUpcomingShows)

	result, err := controller.Search(ctx, "Fill")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, "Fill", result.SearchTerm)
	assert.Equal(t, 2, result.Data[0].NumUpcomingShows)

	empty, err := controller.Search(ctx, "Warfield")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Count)
	assert.NotNil(t, empty.Data)

	_, err = controller.Get(ctx, 404)
	assert.Equal(t, types.FailureNotFound, types.Classify(err))

	assert.NoError(t, controller.WarmAreas(ctx))
}
