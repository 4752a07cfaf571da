package repositories

import (
	"context"
	"errors"
	"time"

	"fyyur/internal/database"
	"fyyur/internal/metrics"
	. "fyyur/internal/models"
	"fyyur/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	VENUE_AREAS_CACHE_PREFIX = "venues"
	VENUE_AREAS_CACHE_KEY    = "areas"
	VENUE_AREAS_CACHE_EXPIRY = time.Hour
)

type VenueRepository interface {
	GetByID(ctx context.Context, tx *gorm.DB, id int) (*Venue, error)
	Search(ctx context.Context, tx *gorm.DB, term string) ([]*Venue, error)
	GetAreas(ctx context.Context, tx *gorm.DB, now time.Time) ([]*types.VenueArea, error)
	BuildAreas(ctx context.Context, tx *gorm.DB, now time.Time) ([]*types.VenueArea, error)
	Create(ctx context.Context, tx *gorm.DB, venue *Venue) error
	Save(ctx context.Context, tx *gorm.DB, venue *Venue) error
	AppendGenres(ctx context.Context, tx *gorm.DB, venue *Venue, genres []Genre) error
	Delete(ctx context.Context, tx *gorm.DB, venue *Venue) error
	ClearAreasCache(ctx context.Context)
}

type venueRepository struct {
	cache    database.CacheClient
	cityRepo CityRepository
	showRepo ShowRepository
}

func NewVenueRepository(
	cache database.CacheClient,
	cityRepo CityRepository,
	showRepo ShowRepository,
) VenueRepository {
	return &venueRepository{
		cache:    cache,
		cityRepo: cityRepo,
		showRepo: showRepo,
	}
}

func (r *venueRepository) GetByID(ctx context.Context, tx *gorm.DB, id int) (*Venue, error) {
	log := logger.New("venueRepository").TraceFromContext(ctx).Function("GetByID")

	var venue Venue
	err := tx.WithContext(ctx).
		Preload("City").
		Preload("Genres", func(db *gorm.DB) *gorm.DB {
			return db.Order("genres.title ASC")
		}).
		Take(&venue, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFoundf("venue %d", id)
		}
		return nil, log.Err("failed to get venue by ID", err, "id", id)
	}

	return &venue, nil
}

func (r *venueRepository) Search(ctx context.Context, tx *gorm.DB, term string) ([]*Venue, error) {
	log := logger.New("venueRepository").TraceFromContext(ctx).Function("Search")

	var venues []*Venue
	if err := tx.WithContext(ctx).
		Where("name LIKE ?", "%"+term+"%").
		Order("id ASC").
		Find(&venues).Error; err != nil {
		return nil, log.Err("failed to search venues", err, "term", term)
	}

	return venues, nil
}

// GetAreas serves the area listing from cache when possible; cache failures fall
// through to the database.
func (r *venueRepository) GetAreas(
	ctx context.Context,
	tx *gorm.DB,
	now time.Time,
) ([]*types.VenueArea, error) {
	log := logger.New("venueRepository").TraceFromContext(ctx).Function("GetAreas")

	var cached []*types.VenueArea
	if r.cache != nil {
		found, err := database.NewCacheBuilder(r.cache, VENUE_AREAS_CACHE_KEY).
			WithContext(ctx).
			WithHash(VENUE_AREAS_CACHE_PREFIX).
			Get(&cached)
		if err != nil {
			log.Warn("failed to get venue areas from cache", "error", err)
		}
		metrics.RecordAreaCacheLookup(found)
		if found {
			return cached, nil
		}
	}

	areas, err := r.BuildAreas(ctx, tx, now)
	if err != nil {
		return nil, err
	}

	r.cacheAreas(ctx, areas)

	return areas, nil
}

// BuildAreas groups venues by city and counts each venue's upcoming shows.
// It always reads the database; caching the result is left to GetAreas.
func (r *venueRepository) BuildAreas(
	ctx context.Context,
	tx *gorm.DB,
	now time.Time,
) ([]*types.VenueArea, error) {
	log := logger.New("venueRepository").TraceFromContext(ctx).Function("BuildAreas")

	cities, err := r.cityRepo.GetAllWithVenues(ctx, tx)
	if err != nil {
		return nil, log.Err("failed to load cities", err)
	}

	upcoming, err := r.showRepo.CountUpcomingByVenue(ctx, tx, now)
	if err != nil {
		return nil, log.Err("failed to count upcoming shows", err)
	}

	areas := make([]*types.VenueArea, 0, len(cities))
	for _, city := range cities {
		area := &types.VenueArea{
			CityID: city.ID,
			City:   city.City,
			State:  city.State,
			Venues: make([]types.VenueSummary, 0, len(city.Venues)),
		}
		for _, venue := range city.Venues {
			area.Venues = append(area.Venues, types.VenueSummary{
				ID:               venue.ID,
				Name:             venue.Name,
				NumUpcomingShows: upcoming[venue.ID],
			})
		}
		areas = append(areas, area)
	}

	return areas, nil
}

func (r *venueRepository) cacheAreas(ctx context.Context, areas []*types.VenueArea) {
	if r.cache == nil {
		return
	}

	err := database.NewCacheBuilder(r.cache, VENUE_AREAS_CACHE_KEY).
		WithContext(ctx).
		WithHash(VENUE_AREAS_CACHE_PREFIX).
		WithStruct(areas).
		WithTTL(VENUE_AREAS_CACHE_EXPIRY).
		Set()
	if err != nil {
		logger.New("venueRepository").
			TraceFromContext(ctx).
			Function("cacheAreas").
			Warn("failed to cache venue areas", "error", err)
	}
}

func (r *venueRepository) Create(ctx context.Context, tx *gorm.DB, venue *Venue) error {
	log := logger.New("venueRepository").TraceFromContext(ctx).Function("Create")

	if err := tx.WithContext(ctx).Omit(clause.Associations).Create(venue).Error; err != nil {
		return log.Err("failed to create venue", err, "name", venue.Name)
	}

	return nil
}

// Save writes the venue's own columns; associations are handled separately.
func (r *venueRepository) Save(ctx context.Context, tx *gorm.DB, venue *Venue) error {
	log := logger.New("venueRepository").TraceFromContext(ctx).Function("Save")

	if err := tx.WithContext(ctx).Omit(clause.Associations).Save(venue).Error; err != nil {
		return log.Err("failed to save venue", err, "id", venue.ID)
	}

	return nil
}

func (r *venueRepository) AppendGenres(
	ctx context.Context,
	tx *gorm.DB,
	venue *Venue,
	genres []Genre,
) error {
	log := logger.New("venueRepository").TraceFromContext(ctx).Function("AppendGenres")

	if len(genres) == 0 {
		return nil
	}

	if err := tx.WithContext(ctx).Model(venue).Association("Genres").Append(genres); err != nil {
		return log.Err("failed to append venue genres", err, "id", venue.ID, "count", len(genres))
	}

	return nil
}

// Delete removes the venue row. Its shows and genre links go with it through
// ON DELETE CASCADE foreign keys.
func (r *venueRepository) Delete(ctx context.Context, tx *gorm.DB, venue *Venue) error {
	log := logger.New("venueRepository").TraceFromContext(ctx).Function("Delete")

	result := tx.WithContext(ctx).Delete(&Venue{}, "id = ?", venue.ID)
	if result.Error != nil {
		return log.Err("failed to delete venue", result.Error, "id", venue.ID)
	}

	if result.RowsAffected == 0 {
		return types.NotFoundf("venue %d", venue.ID)
	}

	return nil
}

func (r *venueRepository) ClearAreasCache(ctx context.Context) {
	if r.cache == nil {
		return
	}

	err := database.NewCacheBuilder(r.cache, VENUE_AREAS_CACHE_KEY).
		WithContext(ctx).
		WithHash(VENUE_AREAS_CACHE_PREFIX).
		Delete()
	if err != nil {
		logger.New("venueRepository").
			TraceFromContext(ctx).
			Function("ClearAreasCache").
			Warn("failed to clear venue areas cache", "error", err)
	}
}
