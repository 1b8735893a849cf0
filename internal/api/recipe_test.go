package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-finder/backend/internal/mocks"
	"github.com/pageza/recipe-finder/backend/internal/models"
	"github.com/pageza/recipe-finder/backend/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRecipeTestRouter(t *testing.T, opts RecipeHandlerOptions) (*gin.Engine, *mocks.MockRecipeGateway) {
	t.Helper()
	gateway := new(mocks.MockRecipeGateway)
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	router := gin.New()
	NewRecipeHandler(gateway, opts).RegisterRoutes(router.Group("/api"))
	return router, gateway
}

func performRequest(router http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestGetRandomRecipes(t *testing.T) {
	router, gateway := setupRecipeTestRouter(t, RecipeHandlerOptions{})
	body := json.RawMessage(`{"recipes":[{"id":1,"title":"A"},{"id":2,"title":"B"}]}`)
	gateway.On("GetRandom", mock.Anything, 5).Return(body, nil)

	w := performRequest(router, "/api/recipes/random?number=5")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, string(body), w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	gateway.AssertExpectations(t)
}

func TestGetRandomRecipesDefaultsToTen(t *testing.T) {
	router, gateway := setupRecipeTestRouter(t, RecipeHandlerOptions{})
	gateway.On("GetRandom", mock.Anything, 10).Return(json.RawMessage(`{"recipes":[]}`), nil)

	w := performRequest(router, "/api/recipes/random")

	assert.Equal(t, http.StatusOK, w.Code)
	gateway.AssertExpectations(t)
}

func TestGetRandomRecipesUpstreamFailure(t *testing.T) {
	router, gateway := setupRecipeTestRouter(t, RecipeHandlerOptions{})
	gateway.On("GetRandom", mock.Anything, 5).Return(nil, &service.UpstreamError{Op: service.OpRandom, Err: errors.New("dial tcp: connection refused")})

	w := performRequest(router, "/api/recipes/random?number=5")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to fetch random recipes"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestGetRandomRecipesInvalidNumber(t *testing.T) {
	router, gateway := setupRecipeTestRouter(t, RecipeHandlerOptions{})

	w := performRequest(router, "/api/recipes/random?number=lots")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to fetch random recipes"}`, w.Body.String())
	gateway.AssertNotCalled(t, "GetRandom", mock.Anything, mock.Anything)
}

func TestSearchRecipesComposesFilters(t *testing.T) {
	router, gateway := setupRecipeTestRouter(t, RecipeHandlerOptions{})
	expected := service.QueryParams{
		"query":                "pasta",
		"number":               "12",
		"addRecipeInformation": "true",
		"diet":                 "vegetarian",
		"type":                 "main course",
		"maxReadyTime":         "30",
		"intolerances":         "dairy,egg",
	}
	gateway.On("Search", mock.Anything, expected).Return(json.RawMessage(`{"results":[{"id":7}]}`), nil)

	w := performRequest(router, "/api/recipes/search?query=pasta&number=12&diet=vegetarian&type=main+course&maxReadyTime=30&intolerances=egg,dairy&intolerances=egg")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"results":[{"id":7}]}`, w.Body.String())
	gateway.AssertExpectations(t)
}

func TestSearchRecipesFailure(t *testing.T) {
	router, gateway := setupRecipeTestRouter(t, RecipeHandlerOptions{})
	gateway.On("Search", mock.Anything, mock.Anything).Return(nil, &service.UpstreamError{Op: service.OpSearch, StatusCode: 402, Err: errors.New("quota")})

	w := performRequest(router, "/api/recipes/search?query=pasta")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to search recipes"}`, w.Body.String())
}

func TestSearchRecipesInvalidMaxReadyTime(t *testing.T) {
	router, gateway := setupRecipeTestRouter(t, RecipeHandlerOptions{})

	w := performRequest(router, "/api/recipes/search?query=pasta&maxReadyTime=-5")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to search recipes"}`, w.Body.String())
	gateway.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestSearchRecipesRecordsSearchLog(t *testing.T) {
	searchLog := new(mocks.MockSearchLogService)
	router, gateway := setupRecipeTestRouter(t, RecipeHandlerOptions{SearchLog: searchLog})
	gateway.On("Search", mock.Anything, mock.Anything).Return(nil, &service.UpstreamError{Op: service.OpSearch, StatusCode: 503, Err: errors.New("unavailable")})
	searchLog.On("Record", mock.Anything, mock.MatchedBy(func(entry *models.SearchLog) bool {
		return entry.Query == "soup" &&
			entry.Outcome == models.OutcomeUpstreamError &&
			entry.UpstreamStatus == 503 &&
			entry.ClientHash != ""
	})).Return(nil)

	w := performRequest(router, "/api/recipes/search?query=soup")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	searchLog.AssertExpectations(t)
}

func TestSearchRecipesSearchLogFailureDoesNotAffectResponse(t *testing.T) {
	searchLog := new(mocks.MockSearchLogService)
	router, gateway := setupRecipeTestRouter(t, RecipeHandlerOptions{SearchLog: searchLog})
	gateway.On("Search", mock.Anything, mock.Anything).Return(json.RawMessage(`{"results":[]}`), nil)
	searchLog.On("Record", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	w := performRequest(router, "/api/recipes/search?query=soup")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"results":[]}`, w.Body.String())
}

func TestGetRecipeDetails(t *testing.T) {
	router, gateway := setupRecipeTestRouter(t, RecipeHandlerOptions{})
	body := json.RawMessage(`{"id":716429,"title":"Pasta","extendedIngredients":[{"original":"salt"}],"instructions":"<ol><li>Boil</li></ol>"}`)
	gateway.On("GetDetails", mock.Anything, "716429").Return(body, nil)

	w := performRequest(router, "/api/recipes/716429")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, string(body), w.Body.String())
}

func TestGetRecipeDetailsNotFoundIsInternalError(t *testing.T) {
	router, gateway := setupRecipeTestRouter(t, RecipeHandlerOptions{})
	gateway.On("GetDetails", mock.Anything, "999999999").Return(nil, &service.UpstreamError{Op: service.OpDetails, StatusCode: 404, Err: errors.New("not found")})

	w := performRequest(router, "/api/recipes/999999999")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to fetch recipe details"}`, w.Body.String())
}

func TestGetRecipeDetailsStatusPassthrough(t *testing.T) {
	router, gateway := setupRecipeTestRouter(t, RecipeHandlerOptions{StatusPassthrough: true})
	gateway.On("GetDetails", mock.Anything, "999999999").Return(nil, &service.UpstreamError{Op: service.OpDetails, StatusCode: 404, Err: errors.New("not found")})
	gateway.On("GetDetails", mock.Anything, "1").Return(nil, &service.UpstreamError{Op: service.OpDetails, StatusCode: 500, Err: errors.New("boom")})

	w := performRequest(router, "/api/recipes/999999999")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Failed to fetch recipe details"}`, w.Body.String())

	w = performRequest(router, "/api/recipes/1")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetFilters(t *testing.T) {
	router, _ := setupRecipeTestRouter(t, RecipeHandlerOptions{})

	w := performRequest(router, "/api/filters")

	require.Equal(t, http.StatusOK, w.Code)
	var catalog map[string][]map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &catalog))
	assert.Contains(t, catalog, "diets")
	assert.Contains(t, catalog, "intolerances")
	assert.Equal(t, "vegetarian", catalog["diets"][0]["value"])
}

func TestRecentSearches(t *testing.T) {
	searchLog := new(mocks.MockSearchLogService)
	searchLog.On("Recent", mock.Anything, &models.SearchLogFilters{Limit: 2}).Return([]*models.SearchLog{
		{Query: "soup", Outcome: models.OutcomeOK},
		{Query: "pasta", Outcome: models.OutcomeOK},
	}, nil)

	router := gin.New()
	NewSearchLogHandler(searchLog).RegisterRoutes(router.Group("/api"))

	w := performRequest(router, "/api/searches/recent?limit=2")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Searches []models.SearchLog `json:"searches"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Searches, 2)
	assert.Equal(t, "soup", resp.Searches[0].Query)

	w = performRequest(router, "/api/searches/recent?limit=zero")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthWithoutDependencies(t *testing.T) {
	router := gin.New()
	router.GET("/health", NewHealthHandler(nil, nil).Health)

	w := performRequest(router, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","checks":{}}`, w.Body.String())
}
