package repositories

import (
	"fyyur/internal/database"
)

type Repository struct {
	City   CityRepository
	Genre  GenreRepository
	Venue  VenueRepository
	Artist ArtistRepository
	Show   ShowRepository
}

func New(db database.DB) Repository {
	city := NewCityRepository()
	show := NewShowRepository()

	return Repository{
		City:   city,
		Genre:  NewGenreRepository(),
		Venue:  NewVenueRepository(db.Cache.General, city, show), // Venue repo caches the area listing
		Artist: NewArtistRepository(),
		Show:   show,
	}
}
