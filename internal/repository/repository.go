package repository

import (
	"context"
	"fmt"

	"github.com/alexivanou/places-api/internal/config"
	"github.com/alexivanou/places-api/internal/model"
	"github.com/jmoiron/sqlx"
)

// PlaceRepository defines operations for places and their min_places projection
type PlaceRepository interface {
	ListPlaces(ctx context.Context, filter model.PlaceFilter) ([]model.MinPlace, error)
	GetPlaceByCode(ctx context.Context, code string) (*model.Place, error)
	ExistingCodes(ctx context.Context) (map[string]bool, error)
	// UpsertBatch writes places and min_places for one batch in a single transaction
	UpsertBatch(ctx context.Context, places []model.Place) error
	// DeletePlace removes code from both tables; it reports whether anything was deleted
	DeletePlace(ctx context.Context, code string) (bool, error)
}

// Container holds all repositories
type Container struct {
	Place PlaceRepository
}

// NewRepositories creates repository implementations based on DB type
func NewRepositories(db *sqlx.DB, dbType config.DBType) *Container {
	if dbType == config.DBTypePostgreSQL {
		return &Container{
			Place: &pgPlaceRepository{db: db},
		}
	}

	// Default to SQLite
	return &Container{
		Place: &sqlitePlaceRepository{db: db},
	}
}

// IsDatabaseEmpty reports whether the places table has no rows (used by main)
func IsDatabaseEmpty(ctx context.Context, db *sqlx.DB) (bool, error) {
	var count int
	if err := db.GetContext(ctx, &count, "SELECT COUNT(*) FROM places"); err != nil {
		return false, fmt.Errorf("failed to count places: %w", err)
	}
	return count == 0, nil
}
