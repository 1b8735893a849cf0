package types

// RecipeSummary is a single recipe as returned by the upstream random and search endpoints
type RecipeSummary struct {
	ID             int      `json:"id"`
	Title          string   `json:"title"`
	Image          string   `json:"image,omitempty"`
	ReadyInMinutes int      `json:"readyInMinutes"`
	Servings       int      `json:"servings"`
	HealthScore    *float64 `json:"healthScore,omitempty"`
	Summary        string   `json:"summary,omitempty"`
}

// Ingredient is one line of a recipe's ingredient list
type Ingredient struct {
	Original string `json:"original"`
}

// RecipeDetail is the full recipe returned by the upstream information endpoint
type RecipeDetail struct {
	RecipeSummary
	ExtendedIngredients []Ingredient `json:"extendedIngredients"`
	Instructions        string       `json:"instructions,omitempty"`
}

// RandomRecipesResponse is the upstream payload for random recipes
type RandomRecipesResponse struct {
	Recipes []RecipeSummary `json:"recipes"`
}

// SearchRecipesResponse is the upstream payload for a complex search
type SearchRecipesResponse struct {
	Results      []RecipeSummary `json:"results"`
	Offset       int             `json:"offset"`
	Number       int             `json:"number"`
	TotalResults int             `json:"totalResults"`
}
