package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pageza/recipe-finder/backend/internal/service"
	"github.com/pageza/recipe-finder/backend/internal/types"
)

func newRandomCmd(opts *options) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Show random recipes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			recipes, err := opts.client().GetRandomRecipes(ctx, count)
			if err != nil {
				return userError(err)
			}
			if opts.json {
				return outputJSON(cmd, recipes)
			}
			outputRecipes(cmd, recipes)
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "number", "n", service.DefaultResultLimit, "number of recipes")
	return cmd
}

func newSearchCmd(opts *options) *cobra.Command {
	var (
		req      types.SearchRequest
		maxReady int
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search recipes by text and filters",
		Long: `Searches recipes by free text and filters.
With neither a query nor any filter, random recipes are shown instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				req.Query = args[0]
			}
			req.Filters.MaxReadyMinutes = maxReady

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			recipes, err := opts.client().Discover(ctx, req)
			if err != nil {
				return userError(err)
			}
			if opts.json {
				return outputJSON(cmd, recipes)
			}
			outputRecipes(cmd, recipes)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Filters.Diet, "diet", "", "diet, e.g. vegetarian")
	cmd.Flags().StringVar(&req.Filters.Cuisine, "cuisine", "", "cuisine, e.g. italian")
	cmd.Flags().StringVar(&req.Filters.DishType, "type", "", "dish type, e.g. dessert")
	cmd.Flags().IntVar(&maxReady, "max-ready", 0, "maximum ready time in minutes")
	cmd.Flags().StringSliceVar(&req.Filters.Intolerances, "intolerance", nil, "intolerance to exclude (repeatable)")
	cmd.Flags().IntVarP(&req.ResultLimit, "number", "n", service.DefaultResultLimit, "maximum number of results")
	return cmd
}

func newShowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a recipe's full details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			detail, err := opts.client().GetRecipeDetails(ctx, args[0])
			if err != nil {
				return userError(err)
			}
			if opts.json {
				return outputJSON(cmd, detail)
			}
			outputDetail(cmd, detail)
			return nil
		},
	}
}
