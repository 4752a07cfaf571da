package services

import (
	"context"

	"fyyur/internal/models"
	"fyyur/internal/repositories"
	"fyyur/internal/types"
	"fyyur/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

// LookupService resolves the shared lookup entities (City, Genre) by natural key,
// creating them on first use. All work happens in the caller's transaction.
type LookupService struct {
	cityRepo  repositories.CityRepository
	genreRepo repositories.GenreRepository
	log       logger.Logger
}

func NewLookupService(repos repositories.Repository) *LookupService {
	return &LookupService{
		cityRepo:  repos.City,
		genreRepo: repos.Genre,
		log:       logger.New("LookupService"),
	}
}

// ResolveCity returns the City matching (city, state) exactly, inserting it when absent.
// When a concurrent transaction inserts the same pair first, that row is returned.
func (s *LookupService) ResolveCity(
	ctx context.Context,
	tx *gorm.DB,
	city string,
	state string,
) (*models.City, error) {
	log := s.log.TraceFromContext(ctx).Function("ResolveCity")

	if city == "" || state == "" {
		return nil, types.Validationf("city and state are both required")
	}
	if len(state) != 2 {
		return nil, types.Validationf("state must be 2 characters, got %q", state)
	}

	existing, err := s.cityRepo.FindByNaturalKey(ctx, tx, city, state)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	candidate := &models.City{City: city, State: state}
	created, err := s.cityRepo.CreateIfAbsent(ctx, tx, candidate)
	if err != nil {
		return nil, err
	}
	if created {
		log.Debug("created city", "city", city, "state", state, "id", candidate.ID)
		return candidate, nil
	}

	winner, err := s.cityRepo.FindByNaturalKey(ctx, tx, city, state)
	if err != nil {
		return nil, err
	}
	if winner == nil {
		return nil, log.Error("city vanished after insert conflict", "city", city, "state", state)
	}

	return winner, nil
}

// ResolveGenres returns one Genre per distinct non-empty title, in first-seen order.
func (s *LookupService) ResolveGenres(
	ctx context.Context,
	tx *gorm.DB,
	titles []string,
) ([]models.Genre, error) {
	distinct := UniqueTitles(titles)
	genres := make([]models.Genre, 0, len(distinct))

	for _, title := range distinct {
		genre, err := s.resolveGenre(ctx, tx, title)
		if err != nil {
			return nil, err
		}
		genres = append(genres, *genre)
	}

	return genres, nil
}

func (s *LookupService) resolveGenre(
	ctx context.Context,
	tx *gorm.DB,
	title string,
) (*models.Genre, error) {
	log := s.log.TraceFromContext(ctx).Function("resolveGenre")

	existing, err := s.genreRepo.FindByTitle(ctx, tx, title)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	candidate := &models.Genre{Title: title}
	created, err := s.genreRepo.CreateIfAbsent(ctx, tx, candidate)
	if err != nil {
		return nil, err
	}
	if created {
		log.Debug("created genre", "title", title, "id", candidate.ID)
		return candidate, nil
	}

	winner, err := s.genreRepo.FindByTitle(ctx, tx, title)
	if err != nil {
		return nil, err
	}
	if winner == nil {
		return nil, log.Error("genre vanished after insert conflict", "title", title)
	}

	return winner, nil
}

// UniqueTitles cleans each title the way form values are cleaned, then drops
// empty and repeated ones, keeping the first occurrence of each. The cleaned
// title is the key used for lookup and insert alike.
func UniqueTitles(titles []string) []string {
	seen := make(map[string]struct{}, len(titles))
	unique := make([]string, 0, len(titles))

	for _, title := range titles {
		title = utils.CleanFormValue(title)
		if title == "" {
			continue
		}
		if _, ok := seen[title]; ok {
			continue
		}
		seen[title] = struct{}{}
		unique = append(unique, title)
	}

	return unique
}
