package app

import (
	"context"

	"fyyur/config"
	"fyyur/internal/controllers"
	"fyyur/internal/database"
	"fyyur/internal/events"
	"fyyur/internal/handlers/middleware"
	"fyyur/internal/jobs"
	"fyyur/internal/repositories"
	"fyyur/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

type App struct {
	Database    database.DB
	Middleware  middleware.Middleware
	EventBus    *events.EventBus
	Config      config.Config
	Repos       repositories.Repository
	Services    services.Service
	Controllers controllers.Controllers
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	return Build(db, config)
}

// Build wires repositories, services and controllers on top of an open database.
func Build(db database.DB, config config.Config) (*App, error) {
	log := logger.New("app").Function("Build")

	eventBus := events.New(db.Cache.Events, config)
	repos := repositories.New(db)
	services := services.New(db, repos)
	controllers := controllers.New(services, repos, eventBus)

	if err := eventBus.Subscribe(events.BOOKING_CHANNEL, func(event events.Event) error {
		if event.Type.AffectsVenueAreas() {
			repos.Venue.ClearAreasCache(context.Background())
		}
		return nil
	}); err != nil {
		return &App{}, log.Err("failed to subscribe to booking events", err)
	}

	if err := jobs.RegisterAllJobs(services.Scheduler, config, controllers); err != nil {
		return &App{}, log.Err("failed to register jobs", err)
	}

	app := &App{
		Database:    db,
		Middleware:  middleware.New(config),
		EventBus:    eventBus,
		Config:      config,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.EventBus,
		a.Services.Transaction,
		a.Services.Lookup,
		a.Services.Scheduler,
		a.Controllers.Venue,
		a.Controllers.Artist,
		a.Controllers.Show,
		a.Repos.Venue,
		a.Repos.Artist,
		a.Repos.Show,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.EventBus != nil {
		if closeErr := a.EventBus.Close(); closeErr != nil {
			err = closeErr
		}
	}

	if a.Services.Scheduler != nil {
		if closeErr := a.Services.Scheduler.Stop(context.Background()); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
