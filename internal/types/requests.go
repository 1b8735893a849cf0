package types

// SearchFilters holds the structured filters a user can apply to a search.
// Zero values mean "not set" and are never sent upstream.
type SearchFilters struct {
	Diet            string   `json:"diet,omitempty"`
	Cuisine         string   `json:"cuisine,omitempty"`
	DishType        string   `json:"type,omitempty"`
	MaxReadyMinutes int      `json:"maxReadyTime,omitempty"`
	Intolerances    []string `json:"intolerances,omitempty"`
}

// SearchRequest is built once per user action and consumed by the composer
type SearchRequest struct {
	Query       string        `json:"query"`
	Filters     SearchFilters `json:"filters"`
	ResultLimit int           `json:"number"`
}

// SearchQuery binds the query string of GET /api/recipes/search
type SearchQuery struct {
	Query        string   `form:"query"`
	Number       string   `form:"number"`
	Diet         string   `form:"diet"`
	Cuisine      string   `form:"cuisine"`
	Type         string   `form:"type"`
	MaxReadyTime string   `form:"maxReadyTime"`
	Intolerances []string `form:"intolerances"`
}

// FilterOption is one selectable value of a filter
type FilterOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FilterCatalog lists the known filter values a client can offer
type FilterCatalog struct {
	Diets        []FilterOption `json:"diets"`
	Cuisines     []FilterOption `json:"cuisines"`
	DishTypes    []FilterOption `json:"dishTypes"`
	Intolerances []FilterOption `json:"intolerances"`
}
