package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-finder/backend/config"
	"github.com/pageza/recipe-finder/backend/internal/models"
)

func TestOpenWithoutDatabaseURL(t *testing.T) {
	db, err := Open(&config.Config{DBDriver: "postgres"})
	assert.NoError(t, err)
	assert.Nil(t, db)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(&config.Config{DBDriver: "oracle", DatabaseURL: "x"})
	assert.Error(t, err)
}

func TestOpenSQLiteAndMigrate(t *testing.T) {
	db, err := Open(&config.Config{DBDriver: "sqlite", DatabaseURL: "file::memory:?cache=shared"})
	require.NoError(t, err)
	require.NotNil(t, db)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, Migrate(db))
	assert.True(t, db.Migrator().HasTable(&models.SearchLog{}))
	assert.NoError(t, HealthCheck(context.Background(), db))

	entry := &models.SearchLog{Query: "pasta", Outcome: models.OutcomeOK, Intolerances: models.StringList{"egg"}}
	require.NoError(t, db.Create(entry).Error)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", entry.ID.String())

	var loaded models.SearchLog
	require.NoError(t, db.First(&loaded, "id = ?", entry.ID).Error)
	assert.Equal(t, models.StringList{"egg"}, loaded.Intolerances)
}

func TestNewRedisClientWithoutURL(t *testing.T) {
	client, err := NewRedisClient(&config.Config{})
	assert.NoError(t, err)
	assert.Nil(t, client)
}

func TestNewRedisClientRejectsBadURL(t *testing.T) {
	_, err := NewRedisClient(&config.Config{RedisURL: "not-a-redis-url"})
	assert.Error(t, err)
}
