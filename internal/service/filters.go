package service

import "github.com/pageza/recipe-finder/backend/internal/types"

// DefaultFilterCatalog returns the filter values offered to clients.
// The upstream API accepts more values; these are the ones the UI lists.
func DefaultFilterCatalog() types.FilterCatalog {
	return types.FilterCatalog{
		Diets: []types.FilterOption{
			{Value: "vegetarian", Label: "Vegetarian"},
			{Value: "vegan", Label: "Vegan"},
			{Value: "gluten free", Label: "Gluten Free"},
			{Value: "ketogenic", Label: "Ketogenic"},
			{Value: "paleo", Label: "Paleo"},
		},
		Cuisines: []types.FilterOption{
			{Value: "italian", Label: "Italian"},
			{Value: "mexican", Label: "Mexican"},
			{Value: "chinese", Label: "Chinese"},
			{Value: "indian", Label: "Indian"},
			{Value: "french", Label: "French"},
			{Value: "american", Label: "American"},
			{Value: "mediterranean", Label: "Mediterranean"},
		},
		DishTypes: []types.FilterOption{
			{Value: "main course", Label: "Main Course"},
			{Value: "appetizer", Label: "Appetizer"},
			{Value: "dessert", Label: "Dessert"},
			{Value: "breakfast", Label: "Breakfast"},
			{Value: "salad", Label: "Salad"},
			{Value: "soup", Label: "Soup"},
		},
		Intolerances: []types.FilterOption{
			{Value: "dairy", Label: "Dairy"},
			{Value: "egg", Label: "Egg"},
			{Value: "gluten", Label: "Gluten"},
			{Value: "peanut", Label: "Peanut"},
			{Value: "sesame", Label: "Sesame"},
			{Value: "seafood", Label: "Seafood"},
			{Value: "shellfish", Label: "Shellfish"},
			{Value: "soy", Label: "Soy"},
		},
	}
}
