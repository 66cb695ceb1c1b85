package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexivanou/places-api/internal/model"
	"github.com/jmoiron/sqlx"
)

const (
	placesTable      = "places"
	minPlacesTable   = "min_places"
	tmpPlacesTable   = "tmp_places"
	tmpMinPlaceTable = "tmp_min_places"
)

var placeColumns = []string{
	"code", "sources", "name",
	"english_text", "spanish_text", "chinese_text", "german_text", "french_text",
	"russian_text", "portuguese_text", "italian_text", "hindi_text", "arab_text",
	"turkish_text", "japanese_text", "romanian_text", "polish_text", "czech_text",
	"indonesian_text",
	"level", "coordinates", "province", "country", "tag", "image", "web", "phone",
}

var minPlaceColumns = []string{
	"code", "name", "province", "country", "coordinates", "tag", "image", "level", "web", "phone",
}

// namedInsertSQL builds "INSERT INTO t (a, b) VALUES (:a, :b)" for sqlx batch binding
func namedInsertSQL(table string, cols []string) string {
	params := make([]string, len(cols))
	for i, c := range cols {
		params[i] = ":" + c
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), strings.Join(params, ", "))
}

// mergeSQL upserts every row of source into target keyed by code.
// WHERE true keeps SQLite from reading ON CONFLICT as a join constraint.
func mergeSQL(target, source string, cols []string) string {
	set := make([]string, 0, len(cols)-1)
	for _, c := range cols {
		if c == "code" {
			continue
		}
		set = append(set, fmt.Sprintf("%s = EXCLUDED.%s", c, c))
	}
	list := strings.Join(cols, ", ")
	return fmt.Sprintf(
		"INSERT INTO %s (%s) SELECT %s FROM %s WHERE true ON CONFLICT (code) DO UPDATE SET %s",
		target, list, list, source, strings.Join(set, ", "),
	)
}

var (
	insertTmpPlacesSQL    = namedInsertSQL(tmpPlacesTable, placeColumns)
	insertTmpMinPlacesSQL = namedInsertSQL(tmpMinPlaceTable, minPlaceColumns)
	mergePlacesSQL        = mergeSQL(placesTable, tmpPlacesTable, placeColumns)
	mergeMinPlacesSQL     = mergeSQL(minPlacesTable, tmpMinPlaceTable, minPlaceColumns)
)

// staging holds the dialect specific statements around the ephemeral tables
type staging struct {
	createPlaces    string
	createMinPlaces string
	cleanup         []string
}

// upsertBatch stages the batch in ephemeral tables and merges it into
// places and min_places. Both merges commit or roll back together.
func upsertBatch(ctx context.Context, db *sqlx.DB, st staging, places []model.Place) (err error) {
	if len(places) == 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, st.createPlaces); err != nil {
		return fmt.Errorf("failed to create %s: %w", tmpPlacesTable, err)
	}
	if _, err = tx.NamedExecContext(ctx, insertTmpPlacesSQL, places); err != nil {
		return fmt.Errorf("failed to stage places: %w", err)
	}
	if _, err = tx.ExecContext(ctx, mergePlacesSQL); err != nil {
		return fmt.Errorf("failed to upsert places: %w", err)
	}

	minPlaces := make([]model.MinPlace, len(places))
	for i, p := range places {
		minPlaces[i] = p.Min()
	}
	if _, err = tx.ExecContext(ctx, st.createMinPlaces); err != nil {
		return fmt.Errorf("failed to create %s: %w", tmpMinPlaceTable, err)
	}
	if _, err = tx.NamedExecContext(ctx, insertTmpMinPlacesSQL, minPlaces); err != nil {
		return fmt.Errorf("failed to stage min places: %w", err)
	}
	if _, err = tx.ExecContext(ctx, mergeMinPlacesSQL); err != nil {
		return fmt.Errorf("failed to upsert min places: %w", err)
	}

	for _, q := range st.cleanup {
		if _, err = tx.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("failed to drop staging table: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}
	return nil
}

// deletePlace removes code from both tables in one transaction
func deletePlace(ctx context.Context, db *sqlx.DB, code string) (deleted bool, err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var affected int64
	for _, table := range []string{minPlacesTable, placesTable} {
		res, execErr := tx.ExecContext(ctx, tx.Rebind("DELETE FROM "+table+" WHERE code = ?"), code)
		if execErr != nil {
			err = fmt.Errorf("failed to delete from %s: %w", table, execErr)
			return false, err
		}
		n, _ := res.RowsAffected()
		affected += n
	}

	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit delete: %w", err)
	}
	return affected > 0, nil
}

// listPlacesQuery builds the min_places listing with '?' placeholders
func listPlacesQuery(filter model.PlaceFilter) (string, []interface{}) {
	var (
		where []string
		args  []interface{}
	)
	if filter.Country != "" {
		where = append(where, "LOWER(country) = LOWER(?)")
		args = append(args, filter.Country)
	}
	if filter.Tag != "" {
		where = append(where, "LOWER(tag) = LOWER(?)")
		args = append(args, filter.Tag)
	}

	q := "SELECT " + strings.Join(minPlaceColumns, ", ") + " FROM " + minPlacesTable
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY code LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, filter.Offset)
	return q, args
}
