package database

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mytheresa/go-inventory/app/config"
)

// Open connects to the store selected by cfg. The returned handle is owned
// by the caller and must be released with Close.
func Open(ctx context.Context, cfg config.Store, log *slog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.StoreDriverPostgres:
		dialector = postgres.Open(cfg.Postgres.DSN())
	case config.StoreDriverSQLite, "":
		dialector = sqlite.Open(SQLiteDSN(cfg.SQLitePath))
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: NewGormLogger(log, cfg.SlowThreshold),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get database instance: %w", err)
	}

	if cfg.Driver == config.StoreDriverPostgres {
		sqlDB.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.Postgres.MaxConnLifetime)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping %s store: %w", cfg.Driver, err)
	}

	return db, nil
}

// SQLiteDSN returns a DSN for the database file at path with foreign key
// enforcement switched on.
func SQLiteDSN(path string) string {
	return fmt.Sprintf("file:%s?_foreign_keys=1", path)
}

// Close releases the connection pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
