package service

import (
	"context"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
	"gorm.io/gorm"

	"github.com/pageza/recipe-finder/backend/internal/models"
	"github.com/pageza/recipe-finder/backend/internal/types"
)

const (
	defaultRecentLimit = 20
	maxRecentLimit     = 100
)

// SearchLogService persists searches forwarded through the gateway
type SearchLogService struct {
	db *gorm.DB
}

// NewSearchLogService creates a new SearchLogService instance
func NewSearchLogService(db *gorm.DB) *SearchLogService {
	return &SearchLogService{db: db}
}

// NewSearchLog builds a log entry from a composed request and its result
func NewSearchLog(req types.SearchRequest, clientIP string) *models.SearchLog {
	return &models.SearchLog{
		Query:           req.Query,
		Diet:            req.Filters.Diet,
		Cuisine:         req.Filters.Cuisine,
		DishType:        req.Filters.DishType,
		MaxReadyMinutes: req.Filters.MaxReadyMinutes,
		Intolerances:    models.StringList(NormalizeIntolerances(req.Filters.Intolerances)),
		ResultLimit:     ClampResultLimit(req.ResultLimit),
		ClientHash:      HashClient(clientIP),
	}
}

// Record stores a search log entry
func (s *SearchLogService) Record(ctx context.Context, entry *models.SearchLog) error {
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to record search: %w", err)
	}
	return nil
}

// Recent lists the newest search log entries first
func (s *SearchLogService) Recent(ctx context.Context, filters *models.SearchLogFilters) ([]*models.SearchLog, error) {
	limit := defaultRecentLimit
	query := s.db.WithContext(ctx).Order("created_at DESC")

	if filters != nil {
		if filters.Outcome != "" {
			query = query.Where("outcome = ?", filters.Outcome)
		}
		if filters.Limit > 0 {
			limit = filters.Limit
		}
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	var logs []*models.SearchLog
	if err := query.Limit(limit).Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to list searches: %w", err)
	}
	return logs, nil
}

// HashClient derives a stable, non-reversible fingerprint from a client address
func HashClient(clientIP string) string {
	if clientIP == "" {
		return ""
	}
	sum := blake2b.Sum256([]byte(clientIP))
	return hex.EncodeToString(sum[:])
}
