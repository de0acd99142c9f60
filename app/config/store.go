package config

import (
	"fmt"
	"strings"
	"time"
)

// StoreDriver selects the relational store backing the application.
type StoreDriver string

const (
	StoreDriverSQLite   StoreDriver = "sqlite"
	StoreDriverPostgres StoreDriver = "postgres"
)

// UnmarshalText implements [encoding.TextUnmarshaler].
func (d *StoreDriver) UnmarshalText(text []byte) error {
	switch v := StoreDriver(strings.ToLower(string(text))); v {
	case StoreDriverSQLite, StoreDriverPostgres:
		*d = v
	default:
		return fmt.Errorf("unknown store driver: %s", text)
	}
	return nil
}

type Store struct {
	Driver        StoreDriver   `env:"STORE_DRIVER" envDefault:"sqlite"`
	SQLitePath    string        `env:"STORE_SQLITE_PATH" envDefault:"database.sqlite"`
	SlowThreshold time.Duration `env:"STORE_SLOW_THRESHOLD" envDefault:"200ms"`

	Postgres Postgres
}

type Postgres struct {
	Host     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	User     string `env:"POSTGRES_USER" envDefault:"postgres"`
	Password string `env:"POSTGRES_PASSWORD"`
	DB       string `env:"POSTGRES_DB" envDefault:"inventory"`
	SSLMode  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	MaxOpenConns    int           `env:"POSTGRES_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int           `env:"POSTGRES_MAX_IDLE_CONNS" envDefault:"5"`
	MaxConnLifetime time.Duration `env:"POSTGRES_MAX_CONN_LIFETIME" envDefault:"1h"`
}

// DSN returns the libpq style connection string.
func (p Postgres) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DB, p.SSLMode)
}
