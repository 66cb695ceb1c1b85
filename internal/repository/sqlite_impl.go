package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/alexivanou/places-api/internal/model"
	"github.com/jmoiron/sqlx"
)

var sqliteStaging = staging{
	createPlaces:    "CREATE TEMP TABLE " + tmpPlacesTable + " AS SELECT * FROM " + placesTable + " WHERE 0",
	createMinPlaces: "CREATE TEMP TABLE " + tmpMinPlaceTable + " AS SELECT * FROM " + minPlacesTable + " WHERE 0",
	// SQLite temp tables live as long as the connection, not the transaction
	cleanup: []string{
		"DROP TABLE temp." + tmpPlacesTable,
		"DROP TABLE temp." + tmpMinPlaceTable,
	},
}

type sqlitePlaceRepository struct {
	db *sqlx.DB
}

func (r *sqlitePlaceRepository) ListPlaces(ctx context.Context, filter model.PlaceFilter) ([]model.MinPlace, error) {
	q, args := listPlacesQuery(filter)
	var places []model.MinPlace
	if err := r.db.SelectContext(ctx, &places, q, args...); err != nil {
		return nil, err
	}
	return places, nil
}

func (r *sqlitePlaceRepository) GetPlaceByCode(ctx context.Context, code string) (*model.Place, error) {
	var place model.Place
	if err := r.db.GetContext(ctx, &place, "SELECT * FROM places WHERE code = ?", code); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &place, nil
}

func (r *sqlitePlaceRepository) ExistingCodes(ctx context.Context) (map[string]bool, error) {
	var codes []string
	if err := r.db.SelectContext(ctx, &codes, "SELECT code FROM places"); err != nil {
		return nil, err
	}
	return codeSet(codes), nil
}

func (r *sqlitePlaceRepository) UpsertBatch(ctx context.Context, places []model.Place) error {
	return upsertBatch(ctx, r.db, sqliteStaging, places)
}

func (r *sqlitePlaceRepository) DeletePlace(ctx context.Context, code string) (bool, error) {
	return deletePlace(ctx, r.db, code)
}
