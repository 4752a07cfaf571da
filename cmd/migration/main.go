package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"fyyur/cmd/migration/initialize"
	"fyyur/cmd/migration/seed"
	"fyyur/config"
	"fyyur/internal/app"
	"fyyur/internal/database"

	logger "github.com/Bparsons0904/goLogger"
	_ "github.com/lib/pq"
	migrate "github.com/rubenv/sql-migrate"
)

const (
	MIGRATION_PATH = "cmd/migration/migrations"
	MIGRATION_DB   = "postgres"
)

func main() {
	log := logger.New("migrations")
	log = log.Function("main")

	migrationType := "up"
	var args []string
	if len(os.Args) > 1 {
		migrationType = os.Args[1]
		args = os.Args[2:]
	}

	if err := run(migrationType, args, log); err != nil {
		log.Er("failed to run migrations", err)
		os.Exit(1)
	}

	log.Info("Migrations complete")
}

// run returns every failure to main; the app is closed before the process exits
func run(migrationType string, args []string, log logger.Logger) error {
	config, err := config.InitConfig()
	if err != nil {
		return log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return log.Err("failed to create database", err)
	}

	application, err := app.Build(db, config)
	if err != nil {
		if closeErr := db.Close(); closeErr != nil {
			log.Er("failed to close database", closeErr)
		}
		return log.Err("failed to build app", err)
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.Er("failed to close app", err)
		}
	}()

	switch migrationType {
	case "up":
		return migrateUp(application, log)
	case "down":
		steps, err := parseSteps(args)
		if err != nil {
			return log.Err("failed to parse step", err)
		}
		return migrateDown(steps, config, log)
	case "seed":
		return migrateSeed(application, log)
	default:
		return log.Error("unknown migration type", "type", migrationType)
	}
}

// parseSteps reads the optional step count of a down migration, defaulting to one
func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}

	steps, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, err
	}
	if steps <= 0 {
		return 0, fmt.Errorf("steps must be positive, got %d", steps)
	}
	return steps, nil
}

// migrateUp creates the tables from the models, then applies the SQL files
// for what the model tags cannot express.
func migrateUp(application *app.App, log logger.Logger) error {
	log = log.Function("migrateUp")
	log.Info("Running migrations up")

	if err := application.Database.MigrateModels(); err != nil {
		return log.Err("failed to auto migrate", err)
	}

	if err := runMigrations(MIGRATION_PATH, application.Config, log, migrate.Up, 0); err != nil {
		return log.Err("failed to run migrations", err)
	}

	if err := initialize.InitializeTables(application.Services, log); err != nil {
		return log.Err("failed to initialize tables", err)
	}

	return nil
}

func migrateDown(steps int, config config.Config, log logger.Logger) error {
	log = log.Function("migrateDown")
	log.Info("Running migrations down", "steps", steps)

	if err := runMigrations(MIGRATION_PATH, config, log, migrate.Down, steps); err != nil {
		return log.Err("failed to run migrations", err)
	}

	return nil
}

func migrateSeed(application *app.App, log logger.Logger) error {
	log = log.Function("migrateSeed")
	log.Info("Running seed")

	if err := application.Database.DropModels(); err != nil {
		return log.Err("failed to clean database", err)
	}

	if err := resetMigrationRecords(application.Config, log); err != nil {
		return log.Err("failed to reset migration records", err)
	}

	if err := application.Database.FlushAllCaches(); err != nil {
		return log.Err("failed to flush cache databases", err)
	}

	if err := migrateUp(application, log); err != nil {
		return log.Err("failed to migrate", err)
	}

	log.Info("Seeding database")
	if err := seed.Seed(application.Controllers, log); err != nil {
		return log.Err("failed to seed database", err)
	}

	return nil
}

func openMigrationDB(config config.Config) (*sql.DB, error) {
	return sql.Open(MIGRATION_DB, database.DSN(config))
}

func runMigrations(
	dir string,
	config config.Config,
	log logger.Logger,
	direction migrate.MigrationDirection,
	limit int,
) error {
	log = log.Function("runMigrations")

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		log.Info("Migrations directory does not exist, skipping file-based migrations")
		return nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return log.Err("failed to check for migration files", err)
	}

	if len(files) == 0 {
		log.Info("No migration files found, skipping file-based migrations")
		return nil
	}

	migrations := &migrate.FileMigrationSource{
		Dir: dir,
	}

	db, err := openMigrationDB(config)
	if err != nil {
		return log.Err("failed to open database for migrations", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Er("failed to close database", err)
		}
	}()

	n, err := migrate.ExecMax(db, MIGRATION_DB, migrations, direction, limit)
	if err != nil {
		return log.Err("failed to run migrations", err)
	}

	if n == 0 {
		log.Info("No migrations to apply")
	} else {
		log.Info("Applied migrations", "migrationCount", n)
	}

	return nil
}

// resetMigrationRecords forgets applied SQL files once their tables are dropped
func resetMigrationRecords(config config.Config, log logger.Logger) error {
	log = log.Function("resetMigrationRecords")

	db, err := openMigrationDB(config)
	if err != nil {
		return log.Err("failed to open database for migrations", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Er("failed to close database", err)
		}
	}()

	if _, err := db.Exec("DROP TABLE IF EXISTS gorp_migrations"); err != nil {
		return log.Err("failed to drop migration records", err)
	}

	return nil
}
