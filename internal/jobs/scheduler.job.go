package jobs

import (
	"fyyur/config"
	"fyyur/internal/controllers"
	"fyyur/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

func RegisterAllJobs(
	schedulerService *services.SchedulerService,
	config config.Config,
	controllers controllers.Controllers,
) error {
	log := logger.New("jobs").Function("RegisterAllJobs")

	if !config.SchedulerEnabled {
		log.Info("Scheduler disabled, skipping job registration")
		return nil
	}

	venueAreasJob := NewVenueAreasJob(controllers.Venue, services.Hourly)
	if err := schedulerService.AddJob(venueAreasJob); err != nil {
		return log.Err("failed to register venue areas job", err)
	}
	log.Info("Registered venue areas job", "schedule", "hourly")

	return nil
}
