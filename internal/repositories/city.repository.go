package repositories

import (
	"context"
	"errors"

	. "fyyur/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CityRepository interface {
	FindByNaturalKey(ctx context.Context, tx *gorm.DB, city string, state string) (*City, error)
	CreateIfAbsent(ctx context.Context, tx *gorm.DB, city *City) (bool, error)
	GetAllWithVenues(ctx context.Context, tx *gorm.DB) ([]*City, error)
}

type cityRepository struct {
	log logger.Logger
}

func NewCityRepository() CityRepository {
	return &cityRepository{
		log: logger.New("cityRepository"),
	}
}

// FindByNaturalKey returns nil, nil when no city matches (city, state) exactly.
func (r *cityRepository) FindByNaturalKey(
	ctx context.Context,
	tx *gorm.DB,
	city string,
	state string,
) (*City, error) {
	log := r.log.Function("FindByNaturalKey")

	var found City
	err := tx.WithContext(ctx).
		Where("city = ? AND state = ?", city, state).
		Take(&found).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, log.Err("failed to find city", err, "city", city, "state", state)
	}

	return &found, nil
}

// CreateIfAbsent inserts the city unless a row with the same (city, state) already
// exists. It reports false when another transaction got there first; city.ID is
// left unset in that case.
func (r *cityRepository) CreateIfAbsent(ctx context.Context, tx *gorm.DB, city *City) (bool, error) {
	log := r.log.Function("CreateIfAbsent")

	result := tx.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "city"}, {Name: "state"}},
			DoNothing: true,
		}).
		Create(city)
	if result.Error != nil {
		return false, log.Err("failed to create city", result.Error, "city", city.City, "state", city.State)
	}

	return result.RowsAffected > 0, nil
}

func (r *cityRepository) GetAllWithVenues(ctx context.Context, tx *gorm.DB) ([]*City, error) {
	log := r.log.Function("GetAllWithVenues")

	var cities []*City
	if err := tx.WithContext(ctx).
		Preload("Venues", func(db *gorm.DB) *gorm.DB {
			return db.Order("venues.id ASC")
		}).
		Order("id ASC").
		Find(&cities).Error; err != nil {
		return nil, log.Err("failed to get cities with venues", err)
	}

	return cities, nil
}
