package main

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pageza/recipe-finder/backend/internal/client"
)

const defaultGatewayURL = "http://localhost:3001"

type options struct {
	gateway string
	timeout time.Duration
	json    bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "recipes",
		Short:         "Discover recipes through the recipe gateway",
		SilenceUsage: true,
	}

	gateway := os.Getenv("RECIPES_GATEWAY_URL")
	if gateway == "" {
		gateway = defaultGatewayURL
	}

	rootCmd.PersistentFlags().StringVar(&opts.gateway, "gateway", gateway, "recipe gateway base URL")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 15*time.Second, "request timeout")
	rootCmd.PersistentFlags().BoolVar(&opts.json, "json", false, "output results as JSON")

	rootCmd.AddCommand(
		newRandomCmd(opts),
		newSearchCmd(opts),
		newShowCmd(opts),
	)
	return rootCmd
}

func (o *options) client() *client.Client {
	return client.New(o.gateway, nil)
}

// userError keeps gateway detail out of the terminal
func userError(err error) error {
	return errors.New(client.UserMessage(err))
}
