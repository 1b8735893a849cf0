package service

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

	"github.com/pageza/recipe-finder/backend/config"
	"github.com/pageza/recipe-finder/backend/internal/metrics"
)

// Upstream operation names, used in errors, logs and metrics
const (
	OpRandom  = "random"
	OpSearch  = "search"
	OpDetails = "details"
)

// maxUpstreamBody bounds how much of an upstream response we buffer
const maxUpstreamBody = 8 << 20

// SpoonacularClient forwards requests to the Spoonacular recipes API.
// It holds no mutable state; the credential is fixed at construction.
type SpoonacularClient struct {
	baseURL string
	apiKey  config.Credential
	client  *http.Client
}

// NewSpoonacularClient creates a client from configuration.
// A nil httpClient gets one with the configured upstream timeout.
func NewSpoonacularClient(cfg *config.Config, httpClient *http.Client) *SpoonacularClient {
	if httpClient == nil {
		timeout := cfg.UpstreamTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &SpoonacularClient{
		baseURL: strings.TrimRight(cfg.SpoonacularBaseURL, "/"),
		apiKey:  cfg.SpoonacularAPIKey,
		client:  httpClient,
	}
}

// GetRandom fetches count random recipes and returns the upstream body unmodified
func (c *SpoonacularClient) GetRandom(ctx context.Context, count int) (json.RawMessage, error) {
	if count <= 0 {
		return nil, &ValidationError{Field: "number", Message: "must be a positive integer"}
	}
	params := url.Values{}
	params.Set("number", strconv.Itoa(ClampResultLimit(count)))
	return c.get(ctx, OpRandom, "/random", params)
}

// Search runs a complex search with already composed parameters
func (c *SpoonacularClient) Search(ctx context.Context, params QueryParams) (json.RawMessage, error) {
	return c.get(ctx, OpSearch, "/complexSearch", params.Values())
}

// GetDetails fetches the full information for one recipe.
// The id is opaque and only checked for being non-empty.
func (c *SpoonacularClient) GetDetails(ctx context.Context, id string) (json.RawMessage, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, &ValidationError{Field: "id", Message: "is required"}
	}
	return c.get(ctx, OpDetails, "/"+url.PathEscape(id)+"/information", url.Values{})
}

func (c *SpoonacularClient) get(ctx context.Context, op, path string, params url.Values) (json.RawMessage, error) {
	params.Set("apiKey", c.apiKey.Reveal())
	endpoint := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &UpstreamError{Op: op, Err: fmt.Errorf("failed to create request for %s", path)}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		metrics.RecordUpstream(op, 0, time.Since(start).Seconds())
		return nil, &UpstreamError{Op: op, Err: redactURLError(err, path)}
	}
	defer resp.Body.Close()
	metrics.RecordUpstream(op, resp.StatusCode, time.Since(start).Seconds())

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBody))
	if err != nil {
		return nil, &UpstreamError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", redactURLError(err, path))}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status: %s", upstreamMessage(body))}
	}

	if !json.Valid(body) {
		return nil, &UpstreamError{Op: op, StatusCode: resp.StatusCode, Err: errors.New("response is not valid JSON")}
	}

	return json.RawMessage(body), nil
}

// redactURLError strips the request URL, which carries the credential, from transport errors
func redactURLError(err error, path string) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &url.Error{Op: urlErr.Op, URL: path, Err: urlErr.Err}
	}
	return err
}

// upstreamMessage extracts a short message from an upstream error body
func upstreamMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	if msg == "" {
		return "empty body"
	}
	return msg
}
