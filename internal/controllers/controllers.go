package controllers

import (
	"fyyur/internal/events"
	"fyyur/internal/repositories"
	"fyyur/internal/services"

	artistController "fyyur/internal/controllers/artists"
	showController "fyyur/internal/controllers/shows"
	venueController "fyyur/internal/controllers/venues"
)

type Controllers struct {
	Venue  venueController.VenueControllerInterface
	Artist artistController.ArtistControllerInterface
	Show   showController.ShowControllerInterface
}

func New(
	services services.Service,
	repos repositories.Repository,
	eventBus *events.EventBus,
) Controllers {
	return Controllers{
		Venue:  venueController.New(repos, services, eventBus),
		Artist: artistController.New(repos, services, eventBus),
		Show:   showController.New(repos, services, eventBus),
	}
}
