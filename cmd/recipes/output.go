package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pageza/recipe-finder/backend/internal/client"
	"github.com/pageza/recipe-finder/backend/internal/types"
)

const summaryWidth = 120

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputRecipes(cmd *cobra.Command, recipes []types.RecipeSummary) {
	if len(recipes) == 0 {
		cmd.Println("No recipes found.")
		return
	}

	for i, r := range recipes {
		cmd.Printf("  [%d] %s (#%d)\n", i+1, r.Title, r.ID)
		if r.ReadyInMinutes > 0 || r.Servings > 0 {
			cmd.Printf("      Ready in %d min, serves %d\n", r.ReadyInMinutes, r.Servings)
		}
		if summary := client.PlainSummary(r.Summary, summaryWidth); summary != "" {
			cmd.Printf("      %s\n", summary)
		}
	}
}

func outputDetail(cmd *cobra.Command, d *types.RecipeDetail) {
	cmd.Printf("%s (#%d)\n", d.Title, d.ID)
	cmd.Printf("Ready in %d min, serves %d\n", d.ReadyInMinutes, d.Servings)
	if d.HealthScore != nil {
		cmd.Printf("Health score: %.0f\n", *d.HealthScore)
	}
	if summary := client.PlainSummary(d.Summary, 0); summary != "" {
		cmd.Println()
		cmd.Println(summary)
	}

	if len(d.ExtendedIngredients) > 0 {
		cmd.Println()
		cmd.Println("Ingredients:")
		for _, ing := range d.ExtendedIngredients {
			cmd.Printf("  - %s\n", ing.Original)
		}
	}

	if instructions := client.PlainSummary(d.Instructions, 0); instructions != "" {
		cmd.Println()
		cmd.Println("Instructions:")
		cmd.Println(instructions)
	}
}
