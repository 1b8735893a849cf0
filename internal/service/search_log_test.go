package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pageza/recipe-finder/backend/internal/models"
	"github.com/pageza/recipe-finder/backend/internal/types"
)

func setupSearchLogDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.SearchLog{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestSearchLogRecordAndRecent(t *testing.T) {
	svc := NewSearchLogService(setupSearchLogDB(t))
	ctx := context.Background()

	base := time.Now().Add(-time.Minute)
	for i, q := range []string{"soup", "pasta", "curry"} {
		entry := NewSearchLog(types.SearchRequest{Query: q, ResultLimit: 10}, "10.0.0.1")
		entry.Outcome = models.OutcomeOK
		entry.CreatedAt = base.Add(time.Duration(i) * time.Second)
		require.NoError(t, svc.Record(ctx, entry))
	}
	failed := NewSearchLog(types.SearchRequest{Query: "broken"}, "10.0.0.2")
	failed.Outcome = models.OutcomeUpstreamError
	failed.UpstreamStatus = 502
	failed.CreatedAt = base.Add(10 * time.Second)
	require.NoError(t, svc.Record(ctx, failed))

	logs, err := svc.Recent(ctx, &models.SearchLogFilters{Limit: 2})
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "broken", logs[0].Query)
	assert.Equal(t, "curry", logs[1].Query)

	okOnly, err := svc.Recent(ctx, &models.SearchLogFilters{Outcome: models.OutcomeOK})
	require.NoError(t, err)
	assert.Len(t, okOnly, 3)
}

func TestNewSearchLogNormalizesRequest(t *testing.T) {
	entry := NewSearchLog(types.SearchRequest{
		Query:       "pasta",
		Filters:     types.SearchFilters{Diet: "vegan", Intolerances: []string{"Egg", "dairy", "egg"}},
		ResultLimit: 0,
	}, "192.168.1.4")

	assert.Equal(t, models.StringList{"dairy", "egg"}, entry.Intolerances)
	assert.Equal(t, DefaultResultLimit, entry.ResultLimit)
	assert.Len(t, entry.ClientHash, 64)
	assert.NotContains(t, entry.ClientHash, "192.168")
}

func TestHashClient(t *testing.T) {
	assert.Empty(t, HashClient(""))
	assert.Equal(t, HashClient("1.2.3.4"), HashClient("1.2.3.4"))
	assert.NotEqual(t, HashClient("1.2.3.4"), HashClient("1.2.3.5"))
}

func TestDefaultFilterCatalog(t *testing.T) {
	catalog := DefaultFilterCatalog()
	assert.NotEmpty(t, catalog.Diets)
	assert.NotEmpty(t, catalog.Cuisines)
	assert.NotEmpty(t, catalog.DishTypes)
	assert.Len(t, catalog.Intolerances, 8)
}
