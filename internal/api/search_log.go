package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-finder/backend/internal/models"
	"github.com/pageza/recipe-finder/backend/internal/service"
)

// SearchLogHandler exposes recently forwarded searches
type SearchLogHandler struct {
	searchLog service.ISearchLogService
}

func NewSearchLogHandler(searchLog service.ISearchLogService) *SearchLogHandler {
	return &SearchLogHandler{searchLog: searchLog}
}

func (h *SearchLogHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/searches/recent", h.RecentSearches)
}

func (h *SearchLogHandler) RecentSearches(c *gin.Context) {
	filters := &models.SearchLogFilters{Outcome: c.Query("outcome")}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		filters.Limit = limit
	}

	logs, err := h.searchLog.Recent(c.Request.Context(), filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recent searches"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"searches": logs,
	})
}
