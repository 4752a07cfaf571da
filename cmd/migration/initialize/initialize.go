package initialize

import (
	"context"

	"fyyur/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

// ReferenceGenres are the genres offered on the listing forms
var ReferenceGenres = []string{
	"Alternative",
	"Blues",
	"Classical",
	"Country",
	"Electronic",
	"Folk",
	"Funk",
	"Hip-Hop",
	"Heavy Metal",
	"Instrumental",
	"Jazz",
	"Musical Theatre",
	"Pop",
	"Punk",
	"R&B",
	"Reggae",
	"Rock n Roll",
	"Soul",
	"Other",
}

func InitializeTables(services services.Service, log logger.Logger) error {
	log = log.Function("InitializeTables")
	log.Info("Initializing essential production data")

	if err := initializeGenres(services, log); err != nil {
		return log.Err("failed to initialize genres", err)
	}

	log.Info("Table initialization complete")
	return nil
}

// initializeGenres goes through the lookup resolver, so rerunning it leaves existing rows alone
func initializeGenres(services services.Service, log logger.Logger) error {
	log = log.Function("initializeGenres")

	var count int
	err := services.Transaction.Execute(
		context.Background(),
		func(ctx context.Context, tx *gorm.DB) error {
			genres, err := services.Lookup.ResolveGenres(ctx, tx, ReferenceGenres)
			count = len(genres)
			return err
		},
	)
	if err != nil {
		return log.Err("failed to resolve reference genres", err)
	}

	log.Info("Genre reference data initialized", "count", count)
	return nil
}
