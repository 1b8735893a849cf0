// Package client is the Go counterpart of the browser's recipe service: it calls the
// gateway, never the upstream API, and so never needs the upstream credential.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pageza/recipe-finder/backend/internal/service"
	"github.com/pageza/recipe-finder/backend/internal/types"
)

// RetryLaterMessage is shown to users for every failure
const RetryLaterMessage = "Error loading recipes. Please try again later."

// NetworkError means the gateway itself could not be reached
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("gateway unreachable: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// GatewayError means the gateway answered with a non-2xx status
type GatewayError struct {
	StatusCode int
	Message    string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway returned %d: %s", e.StatusCode, e.Message)
}

// UserMessage maps any client failure to the single user-facing message
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return RetryLaterMessage
}

// Client talks to the recipe gateway
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the gateway at baseURL, e.g. http://localhost:3001.
// A nil httpClient gets a 15s timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// GetRandomRecipes returns count random recipes
func (c *Client) GetRandomRecipes(ctx context.Context, count int) ([]types.RecipeSummary, error) {
	params := url.Values{}
	params.Set("number", strconv.Itoa(service.ClampResultLimit(count)))

	var resp types.RandomRecipesResponse
	if err := c.getJSON(ctx, "/api/recipes/random", params, &resp); err != nil {
		return nil, err
	}
	return resp.Recipes, nil
}

// SearchRecipes searches with free text and filters, returning up to the default limit
func (c *Client) SearchRecipes(ctx context.Context, query string, filters types.SearchFilters) ([]types.RecipeSummary, error) {
	return c.search(ctx, types.SearchRequest{Query: query, Filters: filters, ResultLimit: service.DefaultResultLimit})
}

// GetRecipeDetails returns the full recipe for id
func (c *Client) GetRecipeDetails(ctx context.Context, id string) (*types.RecipeDetail, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, &service.ValidationError{Field: "id", Message: "is required"}
	}

	var detail types.RecipeDetail
	if err := c.getJSON(ctx, "/api/recipes/"+url.PathEscape(id), nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Discover serves one user action: random recipes when the request carries neither
// text nor filters, otherwise a search.
func (c *Client) Discover(ctx context.Context, req types.SearchRequest) ([]types.RecipeSummary, error) {
	if service.IsEffectivelyEmpty(req) {
		return c.GetRandomRecipes(ctx, req.ResultLimit)
	}
	return c.search(ctx, req)
}

func (c *Client) search(ctx context.Context, req types.SearchRequest) ([]types.RecipeSummary, error) {
	params := service.ComposeSearchParams(req).Values()
	// The gateway adds this itself
	params.Del("addRecipeInformation")

	var resp types.SearchRecipesResponse
	if err := c.getJSON(ctx, "/api/recipes/search", params, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &GatewayError{StatusCode: resp.StatusCode, Message: gatewayMessage(resp.Body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("could not decode gateway response: %w", err)
	}
	return nil
}

func gatewayMessage(body io.Reader) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(body, 64<<10)).Decode(&payload); err != nil || payload.Error == "" {
		return "unknown error"
	}
	return payload.Error
}

// IsNetworkError reports whether err means the gateway could not be reached
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}
