// Package databasetest provides isolated in-memory stores for tests.
package databasetest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mytheresa/go-inventory/app/database"
	"github.com/mytheresa/go-inventory/models"
)

var seq atomic.Int64

// New returns an empty, migrated in-memory SQLite store private to t.
// The store is closed when the test finishes.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_foreign_keys=1", name, seq.Add(1))

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: database.NewGormLogger(log, 0),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// The in-memory database lives as long as its last connection.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, models.Migrate(context.Background(), db))
	return db
}

// NewSeeded is New followed by models.Seed.
func NewSeeded(t testing.TB) (*gorm.DB, models.SeedResult) {
	t.Helper()

	db := New(t)
	res, err := models.Seed(context.Background(), db)
	require.NoError(t, err)
	return db, res
}
