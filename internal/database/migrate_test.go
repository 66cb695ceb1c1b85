package database

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alexivanou/places-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationSource(t *testing.T) {
	assert.Equal(t, "file://migrations/postgres", MigrationSource("migrations", config.DBTypePostgreSQL))
	assert.Equal(t, "file://migrations/sqlite", MigrationSource("migrations", config.DBTypeMemory))
	assert.Equal(t, "file://../../migrations/sqlite", MigrationSource("../../migrations", config.DBTypeMemory))
}

func TestMigrate_Memory(t *testing.T) {
	cfg := config.DBConfig{Type: config.DBTypeMemory, Name: fmt.Sprintf("migrate_%d", time.Now().UnixNano())}
	db, err := Connect(context.Background(), cfg)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db, cfg, "../../migrations"))
	// a second run is a no-op
	require.NoError(t, Migrate(db, cfg, "../../migrations"))

	for _, table := range []string{"places", "min_places"} {
		var count int
		require.NoError(t, db.Get(&count, "SELECT COUNT(*) FROM "+table))
		assert.Equal(t, 0, count)
	}
}
