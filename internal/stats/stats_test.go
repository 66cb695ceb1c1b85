package stats

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alexivanou/places-api/internal/config"
	"github.com/alexivanou/places-api/internal/database"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (*sqlx.DB, config.DBConfig) {
	cfg := config.DBConfig{Type: config.DBTypeMemory, Name: fmt.Sprintf("stats_%d", time.Now().UnixNano())}
	db, err := database.Connect(context.Background(), cfg)
	require.NoError(t, err)

	driver, err := sqlite3.WithInstance(db.DB, &sqlite3.Config{})
	require.NoError(t, err)

	m, err := migrate.NewWithDatabaseInstance(
		"file://../../migrations/sqlite",
		"sqlite3",
		driver,
	)
	require.NoError(t, err)
	err = m.Up()
	require.NoError(t, err)

	return db, cfg
}

func insertPlace(t *testing.T, db *sqlx.DB, code string, withMin bool) {
	ctx := context.Background()
	_, err := db.ExecContext(ctx, `INSERT INTO places (code, sources, name,
		english_text, spanish_text, chinese_text, german_text, french_text, russian_text,
		portuguese_text, italian_text, hindi_text, arab_text, turkish_text, japanese_text,
		romanian_text, polish_text, czech_text, indonesian_text,
		level, coordinates, province, country, tag, image)
		VALUES (?, 's', 'n', 'x', 'x', 'x', 'x', 'x', 'x', 'x', 'x', 'x', 'x', 'x', 'x', 'x', 'x', 'x', 'x',
		1, '0,0', 'p', 'c', 't', 'i')`, code)
	require.NoError(t, err)
	if withMin {
		_, err = db.ExecContext(ctx, `INSERT INTO min_places (code, name, province, country, coordinates, tag, image, level)
			VALUES (?, 'n', 'p', 'c', '0,0', 't', 'i', 1)`, code)
		require.NoError(t, err)
	}
}

func TestCollector_Collect(t *testing.T) {
	db, cfg := setupTestDB(t)
	defer db.Close()

	insertPlace(t, db, "A", true)
	insertPlace(t, db, "B", true)

	collector := NewCollector(db, cfg)
	ctx := context.Background()

	stats, err := collector.Collect(ctx)
	require.NoError(t, err)

	assert.Equal(t, "memory", stats.Database.Type)
	assert.Equal(t, int64(4), stats.Database.TotalRecords)

	counts := map[string]int64{}
	for _, ts := range stats.Database.TableStats {
		counts[ts.Name] = ts.RowCount
	}
	assert.Equal(t, map[string]int64{"places": 2, "min_places": 2}, counts)
	assert.True(t, stats.Database.Drift.Consistent)

	assert.Greater(t, stats.Memory.Alloc, uint64(0))
	assert.GreaterOrEqual(t, stats.Runtime.NumGoroutines, 1)

	stats2, err := collector.Collect(ctx)
	require.NoError(t, err)
	assert.Equal(t, stats.Memory.Alloc, stats2.Memory.Alloc)
}

func TestCollector_Drift(t *testing.T) {
	db, cfg := setupTestDB(t)
	defer db.Close()

	insertPlace(t, db, "A", true)
	insertPlace(t, db, "B", false)
	_, err := db.Exec(`DELETE FROM places WHERE code = 'A'`)
	require.NoError(t, err)

	stats, err := NewCollector(db, cfg).Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), stats.Database.Drift.MissingMin)
	assert.Equal(t, int64(1), stats.Database.Drift.OrphanedMin)
	assert.False(t, stats.Database.Drift.Consistent)
}

func TestCollector_EmptyDB(t *testing.T) {
	db, cfg := setupTestDB(t)
	defer db.Close()

	stats, err := NewCollector(db, cfg).Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(0), stats.Database.TotalRecords)
	assert.True(t, stats.Database.Drift.Consistent)
}
