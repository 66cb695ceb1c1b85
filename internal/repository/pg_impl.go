package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/alexivanou/places-api/internal/model"
	"github.com/jmoiron/sqlx"
)

// --- PostgreSQL Implementation ---

var pgStaging = staging{
	// ON COMMIT DROP removes the staging tables with the transaction
	createPlaces:    "CREATE TEMP TABLE " + tmpPlacesTable + " (LIKE " + placesTable + " INCLUDING DEFAULTS) ON COMMIT DROP",
	createMinPlaces: "CREATE TEMP TABLE " + tmpMinPlaceTable + " (LIKE " + minPlacesTable + " INCLUDING DEFAULTS) ON COMMIT DROP",
}

type pgPlaceRepository struct {
	db *sqlx.DB
}

func (r *pgPlaceRepository) ListPlaces(ctx context.Context, filter model.PlaceFilter) ([]model.MinPlace, error) {
	q, args := listPlacesQuery(filter)
	var places []model.MinPlace
	if err := r.db.SelectContext(ctx, &places, r.db.Rebind(q), args...); err != nil {
		return nil, err
	}
	return places, nil
}

func (r *pgPlaceRepository) GetPlaceByCode(ctx context.Context, code string) (*model.Place, error) {
	var place model.Place
	if err := r.db.GetContext(ctx, &place, "SELECT * FROM places WHERE code = $1", code); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &place, nil
}

func (r *pgPlaceRepository) ExistingCodes(ctx context.Context) (map[string]bool, error) {
	var codes []string
	if err := r.db.SelectContext(ctx, &codes, "SELECT code FROM places"); err != nil {
		return nil, err
	}
	return codeSet(codes), nil
}

func (r *pgPlaceRepository) UpsertBatch(ctx context.Context, places []model.Place) error {
	return upsertBatch(ctx, r.db, pgStaging, places)
}

func (r *pgPlaceRepository) DeletePlace(ctx context.Context, code string) (bool, error) {
	return deletePlace(ctx, r.db, code)
}

func codeSet(codes []string) map[string]bool {
	m := make(map[string]bool, len(codes))
	for _, c := range codes {
		m[c] = true
	}
	return m
}
