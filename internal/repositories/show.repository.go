package repositories

import (
	"context"
	"time"

	. "fyyur/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

type ShowRepository interface {
	GetAll(ctx context.Context, tx *gorm.DB) ([]*Show, error)
	GetByVenue(ctx context.Context, tx *gorm.DB, venueID int) ([]*Show, error)
	GetByArtist(ctx context.Context, tx *gorm.DB, artistID int) ([]*Show, error)
	CountUpcomingByVenue(ctx context.Context, tx *gorm.DB, now time.Time) (map[int]int, error)
	Create(ctx context.Context, tx *gorm.DB, show *Show) error
}

type showRepository struct {
	log logger.Logger
}

func NewShowRepository() ShowRepository {
	return &showRepository{
		log: logger.New("showRepository"),
	}
}

func (r *showRepository) GetAll(ctx context.Context, tx *gorm.DB) ([]*Show, error) {
	log := r.log.Function("GetAll")

	var shows []*Show
	if err := tx.WithContext(ctx).
		Joins("Venue").
		Joins("Artist").
		Order("shows.start_time ASC, shows.id ASC").
		Find(&shows).Error; err != nil {
		return nil, log.Err("failed to get shows", err)
	}

	return shows, nil
}

func (r *showRepository) GetByVenue(ctx context.Context, tx *gorm.DB, venueID int) ([]*Show, error) {
	log := r.log.Function("GetByVenue")

	var shows []*Show
	if err := tx.WithContext(ctx).
		Joins("Venue").
		Joins("Artist").
		Where("shows.venue_id = ?", venueID).
		Order("shows.start_time ASC, shows.id ASC").
		Find(&shows).Error; err != nil {
		return nil, log.Err("failed to get shows by venue", err, "venueID", venueID)
	}

	return shows, nil
}

func (r *showRepository) GetByArtist(ctx context.Context, tx *gorm.DB, artistID int) ([]*Show, error) {
	log := r.log.Function("GetByArtist")

	var shows []*Show
	if err := tx.WithContext(ctx).
		Joins("Venue").
		Joins("Artist").
		Where("shows.artist_id = ?", artistID).
		Order("shows.start_time ASC, shows.id ASC").
		Find(&shows).Error; err != nil {
		return nil, log.Err("failed to get shows by artist", err, "artistID", artistID)
	}

	return shows, nil
}

func (r *showRepository) CountUpcomingByVenue(
	ctx context.Context,
	tx *gorm.DB,
	now time.Time,
) (map[int]int, error) {
	log := r.log.Function("CountUpcomingByVenue")

	type countResult struct {
		VenueID int `gorm:"column:venue_id"`
		Total   int `gorm:"column:total"`
	}

	var results []countResult
	if err := tx.WithContext(ctx).
		Model(&Show{}).
		Select("venue_id, COUNT(*) AS total").
		Where("start_time >= ?", now).
		Group("venue_id").
		Scan(&results).Error; err != nil {
		return nil, log.Err("failed to count upcoming shows", err)
	}

	counts := make(map[int]int, len(results))
	for _, result := range results {
		counts[result.VenueID] = result.Total
	}

	return counts, nil
}

func (r *showRepository) Create(ctx context.Context, tx *gorm.DB, show *Show) error {
	log := r.log.Function("Create")

	if err := tx.WithContext(ctx).Omit("Artist", "Venue").Create(show).Error; err != nil {
		return log.Err(
			"failed to create show",
			err,
			"artistID", show.ArtistID,
			"venueID", show.VenueID,
			"startTime", show.StartTime,
		)
	}

	return nil
}
