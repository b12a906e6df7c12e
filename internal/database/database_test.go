package database_test

import (
	"testing"

	"catalog/internal/config"
	"catalog/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOpenAndMigrateSQLite(t *testing.T) {
	cfg := config.DatabaseConfig{
		Driver:   config.DriverSQLite,
		DSN:      "file:" + t.Name() + "?mode=memory&cache=shared",
		LogLevel: "silent",
	}

	db, err := database.Open(cfg, zap.NewNop())
	require.NoError(t, err)
	defer database.Close(db, zap.NewNop())

	require.NoError(t, database.Migrate(db))
	for _, table := range []string{"users", "products", "product_images"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	var fk int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	assert.Equal(t, 1, fk)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := database.Open(config.DatabaseConfig{Driver: "mongo"}, zap.NewNop())
	assert.ErrorContains(t, err, "unsupported database driver")
}
