package repositories

import (
	"context"
	"errors"

	. "fyyur/internal/models"
	"fyyur/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ArtistRepository interface {
	GetAll(ctx context.Context, tx *gorm.DB) ([]*Artist, error)
	GetByID(ctx context.Context, tx *gorm.DB, id int) (*Artist, error)
	Search(ctx context.Context, tx *gorm.DB, term string) ([]*Artist, error)
	Create(ctx context.Context, tx *gorm.DB, artist *Artist) error
	Save(ctx context.Context, tx *gorm.DB, artist *Artist) error
	AppendGenres(ctx context.Context, tx *gorm.DB, artist *Artist, genres []Genre) error
}

type artistRepository struct{}

func NewArtistRepository() ArtistRepository {
	return &artistRepository{}
}

func (r *artistRepository) GetAll(ctx context.Context, tx *gorm.DB) ([]*Artist, error) {
	log := logger.New("artistRepository").TraceFromContext(ctx).Function("GetAll")

	var artists []*Artist
	if err := tx.WithContext(ctx).Order("id ASC").Find(&artists).Error; err != nil {
		return nil, log.Err("failed to get artists", err)
	}

	return artists, nil
}

func (r *artistRepository) GetByID(ctx context.Context, tx *gorm.DB, id int) (*Artist, error) {
	log := logger.New("artistRepository").TraceFromContext(ctx).Function("GetByID")

	var artist Artist
	err := tx.WithContext(ctx).
		Preload("City").
		Preload("Genres", func(db *gorm.DB) *gorm.DB {
			return db.Order("genres.title ASC")
		}).
		Take(&artist, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFoundf("artist %d", id)
		}
		return nil, log.Err("failed to get artist by ID", err, "id", id)
	}

	return &artist, nil
}

func (r *artistRepository) Search(ctx context.Context, tx *gorm.DB, term string) ([]*Artist, error) {
	log := logger.New("artistRepository").TraceFromContext(ctx).Function("Search")

	var artists []*Artist
	if err := tx.WithContext(ctx).
		Where("name LIKE ?", "%"+term+"%").
		Order("id ASC").
		Find(&artists).Error; err != nil {
		return nil, log.Err("failed to search artists", err, "term", term)
	}

	return artists, nil
}

func (r *artistRepository) Create(ctx context.Context, tx *gorm.DB, artist *Artist) error {
	log := logger.New("artistRepository").TraceFromContext(ctx).Function("Create")

	if err := tx.WithContext(ctx).Omit(clause.Associations).Create(artist).Error; err != nil {
		return log.Err("failed to create artist", err, "name", artist.Name)
	}

	return nil
}

func (r *artistRepository) Save(ctx context.Context, tx *gorm.DB, artist *Artist) error {
	log := logger.New("artistRepository").TraceFromContext(ctx).Function("Save")

	if err := tx.WithContext(ctx).Omit(clause.Associations).Save(artist).Error; err != nil {
		return log.Err("failed to save artist", err, "id", artist.ID)
	}

	return nil
}

func (r *artistRepository) AppendGenres(
	ctx context.Context,
	tx *gorm.DB,
	artist *Artist,
	genres []Genre,
) error {
	log := logger.New("artistRepository").TraceFromContext(ctx).Function("AppendGenres")

	if len(genres) == 0 {
		return nil
	}

	if err := tx.WithContext(ctx).Model(artist).Association("Genres").Append(genres); err != nil {
		return log.Err("failed to append artist genres", err, "id", artist.ID, "count", len(genres))
	}

	return nil
}
