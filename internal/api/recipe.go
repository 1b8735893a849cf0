package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-finder/backend/internal/metrics"
	"github.com/pageza/recipe-finder/backend/internal/middleware"
	"github.com/pageza/recipe-finder/backend/internal/models"
	"github.com/pageza/recipe-finder/backend/internal/service"
	"github.com/pageza/recipe-finder/backend/internal/types"
)

// Client-facing failure messages. Upstream detail is only logged.
const (
	msgRandomFailed  = "Failed to fetch random recipes"
	msgSearchFailed  = "Failed to search recipes"
	msgDetailsFailed = "Failed to fetch recipe details"
)

// RecipeHandler relays recipe requests to the upstream API
type RecipeHandler struct {
	gateway     service.RecipeGateway
	searchLog   service.ISearchLogService
	logger      *slog.Logger
	passthrough bool
}

// RecipeHandlerOptions configures optional RecipeHandler behavior
type RecipeHandlerOptions struct {
	// SearchLog records searches when set
	SearchLog service.ISearchLogService
	// StatusPassthrough propagates upstream 404 and 429 instead of answering 500
	StatusPassthrough bool
	Logger            *slog.Logger
}

func NewRecipeHandler(gateway service.RecipeGateway, opts RecipeHandlerOptions) *RecipeHandler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &RecipeHandler{
		gateway:     gateway,
		searchLog:   opts.SearchLog,
		logger:      logger,
		passthrough: opts.StatusPassthrough,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("/random", h.GetRandomRecipes)
		recipes.GET("/search", h.SearchRecipes)
		recipes.GET("/:id", h.GetRecipeDetails)
	}
	router.GET("/filters", h.GetFilters)
}

func (h *RecipeHandler) GetRandomRecipes(c *gin.Context) {
	number, err := parseNumber(c.Query("number"))
	if err != nil {
		h.fail(c, service.OpRandom, msgRandomFailed, err)
		return
	}

	body, err := h.gateway.GetRandom(c.Request.Context(), number)
	if err != nil {
		h.fail(c, service.OpRandom, msgRandomFailed, err)
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	start := time.Now()

	req, err := bindSearchRequest(c)
	if err != nil {
		h.recordSearch(c, req, start, err)
		h.fail(c, service.OpSearch, msgSearchFailed, err)
		return
	}

	params := service.ComposeSearchParams(req)
	body, err := h.gateway.Search(c.Request.Context(), params)
	h.recordSearch(c, req, start, err)
	if err != nil {
		h.fail(c, service.OpSearch, msgSearchFailed, err)
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func (h *RecipeHandler) GetRecipeDetails(c *gin.Context) {
	body, err := h.gateway.GetDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, service.OpDetails, msgDetailsFailed, err)
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func (h *RecipeHandler) GetFilters(c *gin.Context) {
	c.JSON(http.StatusOK, service.DefaultFilterCatalog())
}

// fail logs the real cause and answers with the generic message for the operation
func (h *RecipeHandler) fail(c *gin.Context, op, message string, err error) {
	status := http.StatusInternalServerError

	var upErr *service.UpstreamError
	if errors.As(err, &upErr) && h.passthrough {
		switch upErr.StatusCode {
		case http.StatusNotFound, http.StatusTooManyRequests:
			status = upErr.StatusCode
		}
	}

	h.logger.Error("recipe request failed",
		"request_id", middleware.RequestIDFromContext(c),
		"operation", op,
		"validation", errors.Is(err, service.ErrValidation),
		"error", err,
	)
	c.JSON(status, gin.H{"error": message})
}

// recordSearch stores the search outcome without affecting the response
func (h *RecipeHandler) recordSearch(c *gin.Context, req types.SearchRequest, start time.Time, err error) {
	if h.searchLog == nil {
		return
	}

	entry := service.NewSearchLog(req, c.ClientIP())
	entry.LatencyMS = time.Since(start).Milliseconds()
	entry.Outcome = models.OutcomeOK

	var upErr *service.UpstreamError
	switch {
	case err == nil:
	case errors.As(err, &upErr):
		entry.Outcome = models.OutcomeUpstreamError
		entry.UpstreamStatus = upErr.StatusCode
	case errors.Is(err, service.ErrValidation):
		entry.Outcome = models.OutcomeValidationError
	default:
		entry.Outcome = models.OutcomeUpstreamError
	}

	// The request context may already be cancelled once the client is gone
	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), 2*time.Second)
	defer cancel()
	if err := h.searchLog.Record(ctx, entry); err != nil {
		metrics.SearchLogErrorsTotal.Inc()
		h.logger.Warn("failed to record search",
			"request_id", middleware.RequestIDFromContext(c),
			"error", err,
		)
	}
}

// bindSearchRequest builds a SearchRequest from the query string
func bindSearchRequest(c *gin.Context) (types.SearchRequest, error) {
	var q types.SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return types.SearchRequest{}, &service.ValidationError{Field: "query", Message: err.Error()}
	}

	req := types.SearchRequest{
		Query: q.Query,
		Filters: types.SearchFilters{
			Diet:         q.Diet,
			Cuisine:      q.Cuisine,
			DishType:     q.Type,
			Intolerances: splitIntolerances(q.Intolerances),
		},
	}

	number, err := parseNumber(q.Number)
	if err != nil {
		return req, err
	}
	req.ResultLimit = number

	if raw := strings.TrimSpace(q.MaxReadyTime); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes <= 0 {
			return req, &service.ValidationError{Field: "maxReadyTime", Message: "must be a positive integer"}
		}
		req.Filters.MaxReadyMinutes = minutes
	}

	return req, nil
}

// parseNumber reads the result count, defaulting to 10 when absent
func parseNumber(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return service.DefaultResultLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, &service.ValidationError{Field: "number", Message: "must be a positive integer"}
	}
	return service.ClampResultLimit(n), nil
}

// splitIntolerances accepts both repeated parameters and comma separated lists
func splitIntolerances(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
