package main

import (
	"testing"

	"fyyur/config"

	logger "github.com/Bparsons0904/goLogger"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMigrations_SkipsWithoutFiles(t *testing.T) {
	log := logger.New("migration_test")
	unreachable := config.Config{DatabaseHost: "127.0.0.1", DatabasePort: 1, DatabaseName: "none", DatabaseUser: "none"}

	assert.NoError(t, runMigrations(t.TempDir()+"/missing", unreachable, log, migrate.Up, 0))
	assert.NoError(t, runMigrations(t.TempDir(), unreachable, log, migrate.Up, 0))
}

func TestMigrationFiles_HaveUpAndDown(t *testing.T) {
	source := &migrate.FileMigrationSource{Dir: "migrations"}

	migrations, err := source.FindMigrations()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)

	for _, migration := range migrations {
		assert.NotEmpty(t, migration.Up, migration.Id)
		assert.NotEmpty(t, migration.Down, migration.Id)
	}
}

func TestParseSteps(t *testing.T) {
	steps, err := parseSteps(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, steps)

	steps, err = parseSteps([]string{"3"})
	require.NoError(t, err)
	assert.Equal(t, 3, steps)

	_, err = parseSteps([]string{"three"})
	assert.Error(t, err)

	_, err = parseSteps([]string{"0"})
	assert.Error(t, err)
}
