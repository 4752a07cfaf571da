// Package testutil provides reusable helpers for tests that need a real
// relational store: an in-memory SQLite database with foreign keys enforced
// and the booking schema migrated.
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"fyyur/internal/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// NewTestDB opens a private in-memory SQLite database, migrates the booking
// models into it and closes it when the test ends. A single connection is used
// so that every statement, inside or outside a transaction, sees the same memory
// database; callers must therefore run transactional work only through the tx
// handle they are given.
func NewTestDB(t testing.TB) database.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf(
		"file:%s_%s?mode=memory&cache=shared&_foreign_keys=on",
		name,
		uuid.NewString(),
	)

	gormConfig := database.GormConfig()
	gormConfig.PrepareStmt = false
	gormConfig.Logger = gormLogger.Default.LogMode(gormLogger.Silent)

	gormDB, err := gorm.Open(sqlite.Open(dsn), gormConfig)
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, gormDB.Exec("PRAGMA foreign_keys = ON").Error)

	db := database.DB{SQL: gormDB}
	require.NoError(t, db.MigrateModels())

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}

// Count returns the number of rows in table
func Count(t testing.TB, db database.DB, table string) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.SQL.Table(table).Count(&count).Error)
	return count
}
