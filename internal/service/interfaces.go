package service

import (
	"context"
	"encoding/json"

	"github.com/pageza/recipe-finder/backend/internal/models"
)

// RecipeGateway defines the upstream recipe operations exposed by the proxy
type RecipeGateway interface {
	GetRandom(ctx context.Context, count int) (json.RawMessage, error)
	Search(ctx context.Context, params QueryParams) (json.RawMessage, error)
	GetDetails(ctx context.Context, id string) (json.RawMessage, error)
}

// ISearchLogService defines the interface for search log operations
type ISearchLogService interface {
	Record(ctx context.Context, entry *models.SearchLog) error
	Recent(ctx context.Context, filters *models.SearchLogFilters) ([]*models.SearchLog, error)
}

var (
	_ RecipeGateway     = (*SpoonacularClient)(nil)
	_ ISearchLogService = (*SearchLogService)(nil)
)
