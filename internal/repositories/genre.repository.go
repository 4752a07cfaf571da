package repositories

import (
	"context"
	"errors"

	. "fyyur/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GenreRepository interface {
	GetAll(ctx context.Context, tx *gorm.DB) ([]*Genre, error)
	FindByTitle(ctx context.Context, tx *gorm.DB, title string) (*Genre, error)
	CreateIfAbsent(ctx context.Context, tx *gorm.DB, genre *Genre) (bool, error)
}

type genreRepository struct {
	log logger.Logger
}

func NewGenreRepository() GenreRepository {
	return &genreRepository{
		log: logger.New("genreRepository"),
	}
}

func (r *genreRepository) GetAll(ctx context.Context, tx *gorm.DB) ([]*Genre, error) {
	log := r.log.Function("GetAll")

	var genres []*Genre
	if err := tx.WithContext(ctx).Order("title ASC").Find(&genres).Error; err != nil {
		return nil, log.Err("failed to get all genres", err)
	}

	return genres, nil
}

// FindByTitle returns nil, nil when no genre has exactly this title
func (r *genreRepository) FindByTitle(ctx context.Context, tx *gorm.DB, title string) (*Genre, error) {
	log := r.log.Function("FindByTitle")

	var genre Genre
	if err := tx.WithContext(ctx).Where("title = ?", title).Take(&genre).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, log.Err("failed to get genre by title", err, "title", title)
	}

	return &genre, nil
}

func (r *genreRepository) CreateIfAbsent(ctx context.Context, tx *gorm.DB, genre *Genre) (bool, error) {
	log := r.log.Function("CreateIfAbsent")

	if genre.Title == "" {
		return false, log.ErrMsg("genre title cannot be empty")
	}

	result := tx.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "title"}},
			DoNothing: true,
		}).
		Create(genre)
	if result.Error != nil {
		return false, log.Err("failed to create genre", result.Error, "title", genre.Title)
	}

	return result.RowsAffected > 0, nil
}
