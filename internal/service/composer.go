package service

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/pageza/recipe-finder/backend/internal/types"
)

const (
	// DefaultResultLimit is used when a request does not carry a usable limit
	DefaultResultLimit = 10
	// MaxResultLimit is the largest page the upstream API will return
	MaxResultLimit = 100
)

// QueryParams is a flat mapping of upstream query parameter name to value
type QueryParams map[string]string

// Values converts the mapping into url.Values ready for encoding
func (p QueryParams) Values() url.Values {
	v := make(url.Values, len(p))
	for k, val := range p {
		v.Set(k, val)
	}
	return v
}

// ClampResultLimit maps a requested limit onto the range the upstream accepts
func ClampResultLimit(n int) int {
	if n <= 0 {
		return DefaultResultLimit
	}
	if n > MaxResultLimit {
		return MaxResultLimit
	}
	return n
}

// ComposeSearchParams turns a search request into upstream complexSearch parameters.
// It has no side effects and never falls back to random recipes; callers decide that
// with IsEffectivelyEmpty.
func ComposeSearchParams(req types.SearchRequest) QueryParams {
	params := QueryParams{
		"number":               strconv.Itoa(ClampResultLimit(req.ResultLimit)),
		"addRecipeInformation": "true",
	}

	if q := strings.TrimSpace(req.Query); q != "" {
		params["query"] = q
	}

	f := req.Filters
	if v := strings.TrimSpace(f.Diet); v != "" {
		params["diet"] = v
	}
	if v := strings.TrimSpace(f.Cuisine); v != "" {
		params["cuisine"] = v
	}
	if v := strings.TrimSpace(f.DishType); v != "" {
		params["type"] = v
	}
	if f.MaxReadyMinutes > 0 {
		params["maxReadyTime"] = strconv.Itoa(f.MaxReadyMinutes)
	}
	if in := NormalizeIntolerances(f.Intolerances); len(in) > 0 {
		params["intolerances"] = strings.Join(in, ",")
	}

	return params
}

// NormalizeIntolerances trims, lower-cases, deduplicates and sorts the set.
// The input slice is left untouched.
func NormalizeIntolerances(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, raw := range in {
		v := strings.ToLower(strings.TrimSpace(raw))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// IsEffectivelyEmpty reports whether a request carries neither search text nor any filter.
// Such a request should be served with random recipes instead of a search.
func IsEffectivelyEmpty(req types.SearchRequest) bool {
	f := req.Filters
	return strings.TrimSpace(req.Query) == "" &&
		strings.TrimSpace(f.Diet) == "" &&
		strings.TrimSpace(f.Cuisine) == "" &&
		strings.TrimSpace(f.DishType) == "" &&
		f.MaxReadyMinutes <= 0 &&
		len(NormalizeIntolerances(f.Intolerances)) == 0
}
