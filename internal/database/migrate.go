package database

import (
	"errors"
	"fmt"
	"path"

	"github.com/alexivanou/places-api/internal/config"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
)

// MigrationSource returns the migrate source URL for the configured dialect under dir
func MigrationSource(dir string, dbType config.DBType) string {
	if dbType == config.DBTypePostgreSQL {
		return "file://" + path.Join(dir, "postgres")
	}
	return "file://" + path.Join(dir, "sqlite")
}

// Migrate applies all pending up migrations from dir
func Migrate(db *sqlx.DB, cfg config.DBConfig, dir string) error {
	var m *migrate.Migrate
	var err error

	sourceURL := MigrationSource(dir, cfg.Type)

	if cfg.IsMemory() {
		// Use driver instance directly to avoid DSN parsing issues with in-memory SQLite
		driver, err := sqlite3.WithInstance(db.DB, &sqlite3.Config{})
		if err != nil {
			return fmt.Errorf("could not create sqlite driver: %w", err)
		}
		m, err = migrate.NewWithDatabaseInstance(sourceURL, "sqlite3", driver)
		if err != nil {
			return fmt.Errorf("could not create migrate instance: %w", err)
		}
	} else {
		m, err = migrate.New(sourceURL, cfg.DSN())
		if err != nil {
			return fmt.Errorf("could not create migrate instance: %w", err)
		}
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}
