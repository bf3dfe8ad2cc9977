package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migration actions accepted by Migrate.
const (
	MigrateUp      = "up"
	MigrateDown    = "down"
	MigrateVersion = "version"
)

// MigrationStatus reports the schema version after a migration run.
type MigrationStatus struct {
	Version uint
	Dirty   bool
	Applied bool
}

func newMigrator(db *sql.DB) (*migrate.Migrate, error) {
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("create migrate driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}
	return m, nil
}

// Migrate runs the embedded schema migrations against db. The caller keeps
// ownership of db.
func Migrate(db *sql.DB, action string) (MigrationStatus, error) {
	m, err := newMigrator(db)
	if err != nil {
		return MigrationStatus{}, err
	}

	switch action {
	case MigrateUp:
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return MigrationStatus{}, fmt.Errorf("migrate up: %w", err)
		}
	case MigrateDown:
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return MigrationStatus{}, fmt.Errorf("migrate down: %w", err)
		}
	case MigrateVersion:
	default:
		return MigrationStatus{}, fmt.Errorf("unsupported migration action %q", action)
	}

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return MigrationStatus{}, nil
	}
	if err != nil {
		return MigrationStatus{}, fmt.Errorf("read migration version: %w", err)
	}
	return MigrationStatus{Version: version, Dirty: dirty, Applied: true}, nil
}
