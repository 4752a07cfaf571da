package database

import (
	"fyyur/internal/models"

	logger "github.com/Bparsons0904/goLogger"
)

// ModelsToMigrate is ordered so referenced tables exist before the tables that point at them.
var ModelsToMigrate = []any{
	&models.City{},
	&models.Genre{},
	&models.Venue{},
	&models.Artist{},
	&models.Show{},
}

// MigrateModels runs GORM AutoMigrate for all booking models
func (db *DB) MigrateModels() error {
	log := logger.New("database").Function("MigrateModels")
	log.Info("Starting database migration")

	if err := db.SQL.AutoMigrate(ModelsToMigrate...); err != nil {
		return log.Err("Failed to migrate models", err)
	}

	log.Info("Database migration completed successfully")
	return nil
}

// DropModels removes every booking table, join tables included
func (db *DB) DropModels() error {
	log := logger.New("database").Function("DropModels")

	tables := []any{"venue_genres", "artist_genres"}
	for i := len(ModelsToMigrate) - 1; i >= 0; i-- {
		tables = append(tables, ModelsToMigrate[i])
	}

	if err := db.SQL.Migrator().DropTable(tables...); err != nil {
		return log.Err("failed to drop tables", err)
	}

	log.Info("Dropped booking tables")
	return nil
}
