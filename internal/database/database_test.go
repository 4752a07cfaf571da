package database_test

import (
	"context"
	"testing"

	"fyyur/config"
	"fyyur/internal/database"
	"fyyur/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheConstants(t *testing.T) {
	assert.Equal(t, 0, database.GENERAL_CACHE_INDEX)
	assert.Equal(t, 1, database.EVENTS_CACHE_INDEX)
}

func TestDSN(t *testing.T) {
	dsn := database.DSN(config.Config{
		DatabaseHost:     "db",
		DatabasePort:     5432,
		DatabaseUser:     "fyyur",
		DatabasePassword: "secret",
		DatabaseName:     "fyyur",
	})

	assert.Equal(
		t,
		"host=db port=5432 user=fyyur password=secret dbname=fyyur sslmode=disable TimeZone=UTC",
		dsn,
	)
}

func TestGormConfig_TranslatesErrors(t *testing.T) {
	cfg := database.GormConfig()

	assert.True(t, cfg.TranslateError)
	assert.True(t, cfg.SkipDefaultTransaction)
}

func TestCacheBuilder_WithoutClient(t *testing.T) {
	builder := database.NewCacheBuilder(nil, "areas").
		WithContext(context.Background()).
		WithHash("venues")

	assert.Equal(t, "venues:areas", builder.Key())

	found, err := builder.Get(&struct{}{})
	assert.False(t, found)
	assert.ErrorIs(t, err, database.ErrCacheUnavailable)
	assert.ErrorIs(t, builder.WithValue("x").Set(), database.ErrCacheUnavailable)
	assert.ErrorIs(t, builder.Delete(), database.ErrCacheUnavailable)
}

func TestCacheBuilder_IntKey(t *testing.T) {
	builder := database.NewCacheBuilder(nil, 42).WithHash("venue")

	assert.Equal(t, "venue:42", builder.Key())
}

func TestMigrateModels_CreatesBookingTables(t *testing.T) {
	db := testutil.NewTestDB(t)

	for _, table := range []string{"cities", "genres", "venues", "artists", "shows", "venue_genres", "artist_genres"} {
		assert.True(t, db.SQL.Migrator().HasTable(table), "missing table %s", table)
	}
}

func TestDropModels(t *testing.T) {
	db := testutil.NewTestDB(t)

	require.NoError(t, db.DropModels())

	assert.False(t, db.SQL.Migrator().HasTable("venues"))
	assert.False(t, db.SQL.Migrator().HasTable("venue_genres"))
}
