package repositories_test

import (
	"context"
	"testing"
	"time"

	"fyyur/internal/models"
	"fyyur/internal/repositories"
	"fyyur/internal/testutil"
	"fyyur/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCityRepository_CreateIfAbsent(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.New(db)
	ctx := context.Background()

	created, err := repo.City.CreateIfAbsent(ctx, db.SQL, &models.City{City: "San Francisco", State: "CA"})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.City.CreateIfAbsent(ctx, db.SQL, &models.City{City: "San Francisco", State: "CA"})
	require.NoError(t, err)
	assert.False(t, created, "an existing (city, state) pair is left alone")

	found, err := repo.City.FindByNaturalKey(ctx, db.SQL, "San Francisco", "CA")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "CA", found.State)

	missing, err := repo.City.FindByNaturalKey(ctx, db.SQL, "San Francisco", "NY")
	require.NoError(t, err)
	assert.Nil(t, missing)

	assert.Equal(t, int64(1), testutil.Count(t, db, "cities"))
}

func TestGenreRepository_CreateIfAbsent(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.New(db)
	ctx := context.Background()

	created, err := repo.Genre.CreateIfAbsent(ctx, db.SQL, &models.Genre{Title: "Jazz"})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.Genre.CreateIfAbsent(ctx, db.SQL, &models.Genre{Title: "Jazz"})
	require.NoError(t, err)
	assert.False(t, created)

	_, err = repo.Genre.CreateIfAbsent(ctx, db.SQL, &models.Genre{})
	assert.Error(t, err)

	genre, err := repo.Genre.FindByTitle(ctx, db.SQL, "Jazz")
	require.NoError(t, err)
	require.NotNil(t, genre)

	missing, err := repo.Genre.FindByTitle(ctx, db.SQL, "jazz")
	require.NoError(t, err)
	assert.Nil(t, missing, "titles match exactly")
}

func TestVenueRepository_AreasAndDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.New(db)
	ctx := context.Background()
	now := time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC)

	city := &models.City{City: "San Francisco", State: "CA"}
	_, err := repo.City.CreateIfAbsent(ctx, db.SQL, city)
	require.NoError(t, err)

	venue := &models.Venue{Name: "The Musical Hop", CityID: &city.ID}
	require.NoError(t, repo.Venue.Create(ctx, db.SQL, venue))
	other := &models.Venue{Name: "Park Square Live Music & Coffee", CityID: &city.ID}
	require.NoError(t, repo.Venue.Create(ctx, db.SQL, other))

	artist := &models.Artist{Name: "Guns N Petals", CityID: city.ID}
	require.NoError(t, repo.Artist.Create(ctx, db.SQL, artist))

	genres := []models.Genre{{Title: "Jazz"}, {Title: "Folk"}}
	for i := range genres {
		_, err := repo.Genre.CreateIfAbsent(ctx, db.SQL, &genres[i])
		require.NoError(t, err)
	}
	require.NoError(t, repo.Venue.AppendGenres(ctx, db.SQL, venue, genres))

	shows := []*models.Show{
		{ArtistID: artist.ID, VenueID: venue.ID, StartTime: now.Add(-24 * time.Hour)},
		{ArtistID: artist.ID, VenueID: venue.ID, StartTime: now.Add(24 * time.Hour)},
		{ArtistID: artist.ID, VenueID: venue.ID, StartTime: now.Add(48 * time.Hour)},
	}
	for _, show := range shows {
		require.NoError(t, repo.Show.Create(ctx, db.SQL, show))
	}

	areas, err := repo.Venue.GetAreas(ctx, db.SQL, now)
	require.NoError(t, err)
	require.Len(t, areas, 1)
	assert.Equal(t, "San Francisco", areas[0].City)
	require.Len(t, areas[0].Venues, 2)
	assert.Equal(t, 2, areas[0].Venues[0].NumUpcomingShows)
	assert.Equal(t, 0, areas[0].Venues[1].NumUpcomingShows)

	loaded, err := repo.Venue.GetByID(ctx, db.SQL, venue.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Genres, 2)
	assert.Equal(t, "Folk", loaded.Genres[0].Title)
	require.NotNil(t, loaded.City)
	assert.Equal(t, "CA", loaded.City.State)

	require.NoError(t, repo.Venue.Delete(ctx, db.SQL, venue))
	assert.Equal(t, int64(0), testutil.Count(t, db, "shows"), "shows cascade with their venue")
	assert.Equal(t, int64(0), testutil.Count(t, db, "venue_genres"))
	assert.Equal(t, int64(2), testutil.Count(t, db, "genres"), "genres outlive the venue")

	err = repo.Venue.Delete(ctx, db.SQL, venue)
	assert.Equal(t, types.FailureNotFound, types.Classify(err))

	_, err = repo.Venue.GetByID(ctx, db.SQL, venue.ID)
	assert.Equal(t, types.FailureNotFound, types.Classify(err))
}

func TestVenueRepository_Search(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.New(db)
	ctx := context.Background()

	for _, name := range []string{"The Musical Hop", "The Dueling Pianos Bar", "Park Square Live Music & Coffee"} {
		require.NoError(t, repo.Venue.Create(ctx, db.SQL, &models.Venue{Name: name}))
	}

	venues, err := repo.Venue.Search(ctx, db.SQL, "Hop")
	require.NoError(t, err)
	require.Len(t, venues, 1)
	assert.Equal(t, "The Musical Hop", venues[0].Name)

	venues, err = repo.Venue.Search(ctx, db.SQL, "Music")
	require.NoError(t, err)
	assert.Len(t, venues, 2)
}

func TestShowRepository_RejectsUnknownArtist(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.New(db)
	ctx := context.Background()

	venue := &models.Venue{Name: "The Musical Hop"}
	require.NoError(t, repo.Venue.Create(ctx, db.SQL, venue))

	err := repo.Show.Create(ctx, db.SQL, &models.Show{
		ArtistID:  999,
		VenueID:   venue.ID,
		StartTime: time.Now(),
	})

	assert.Error(t, err)
	assert.Equal(t, types.FailureConstraint, types.Classify(err))
	assert.Equal(t, int64(0), testutil.Count(t, db, "shows"))
}

func TestShowRepository_ListsWithNames(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.New(db)
	ctx := context.Background()
	start := time.Date(2026, 4, 1, 20, 0, 0, 0, time.UTC)

	city := &models.City{City: "New York", State: "NY"}
	_, err := repo.City.CreateIfAbsent(ctx, db.SQL, city)
	require.NoError(t, err)

	venue := &models.Venue{Name: "The Dueling Pianos Bar"}
	require.NoError(t, repo.Venue.Create(ctx, db.SQL, venue))
	artist := &models.Artist{Name: "The Wild Sax Band", CityID: city.ID}
	require.NoError(t, repo.Artist.Create(ctx, db.SQL, artist))

	require.NoError(t, repo.Show.Create(ctx, db.SQL, &models.Show{ArtistID: artist.ID, VenueID: venue.ID, StartTime: start.Add(time.Hour)}))
	require.NoError(t, repo.Show.Create(ctx, db.SQL, &models.Show{ArtistID: artist.ID, VenueID: venue.ID, StartTime: start}))

	shows, err := repo.Show.GetAll(ctx, db.SQL)
	require.NoError(t, err)
	require.Len(t, shows, 2)
	assert.True(t, shows[0].StartTime.Before(shows[1].StartTime))
	require.NotNil(t, shows[0].Venue)
	require.NotNil(t, shows[0].Artist)
	assert.Equal(t, "The Dueling Pianos Bar", shows[0].Venue.Name)
	assert.Equal(t, "The Wild Sax Band", shows[0].Artist.Name)

	byArtist, err := repo.Show.GetByArtist(ctx, db.SQL, artist.ID)
	require.NoError(t, err)
	assert.Len(t, byArtist, 2)
}
