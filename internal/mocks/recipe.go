package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipe-finder/backend/internal/models"
	"github.com/pageza/recipe-finder/backend/internal/service"
)

// MockRecipeGateway is a mock implementation of the upstream recipe gateway
type MockRecipeGateway struct {
	mock.Mock
}

// GetRandom mocks the GetRandom method
func (m *MockRecipeGateway) GetRandom(ctx context.Context, count int) (json.RawMessage, error) {
	args := m.Called(ctx, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

// Search mocks the Search method
func (m *MockRecipeGateway) Search(ctx context.Context, params service.QueryParams) (json.RawMessage, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

// GetDetails mocks the GetDetails method
func (m *MockRecipeGateway) GetDetails(ctx context.Context, id string) (json.RawMessage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

// MockSearchLogService is a mock implementation of the search log service
type MockSearchLogService struct {
	mock.Mock
}

// Record mocks the Record method
func (m *MockSearchLogService) Record(ctx context.Context, entry *models.SearchLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// Recent mocks the Recent method
func (m *MockSearchLogService) Recent(ctx context.Context, filters *models.SearchLogFilters) ([]*models.SearchLog, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SearchLog), args.Error(1)
}

var (
	_ service.RecipeGateway     = (*MockRecipeGateway)(nil)
	_ service.ISearchLogService = (*MockSearchLogService)(nil)
)
