package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/client"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/config"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/shell"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/storefront"
	"github.com/Lixing-Zhang/kart-challenge/storefront/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		apiURL   string
		policy   string
		timeout  time.Duration
		logLevel string
	)

	cmd := &cobra.Command{
		Use:          "storefront",
		Short:        "Browse the product catalog and fill a cart from the terminal",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.DefaultOptions())
			if err != nil {
				return err
			}

			// Flags given on the command line win over every config source
			flags := cmd.Flags()
			if flags.Changed("api-url") {
				cfg.Storefront.API.URL = apiURL
			}
			if flags.Changed("policy") {
				cfg.Storefront.Quantity.Policy = policy
			}
			if flags.Changed("timeout") {
				cfg.Storefront.Fetch.Timeout = timeout
			}
			if flags.Changed("log-level") {
				cfg.Log.Level = logLevel
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&apiURL, "api-url", "", "base URL of the storefront API server")
	cmd.Flags().StringVar(&policy, "policy", "", "quantity policy: unbounded, floor or remove")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "catalog fetch timeout, 0 for none")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")

	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	// Logs go to stderr so they do not interleave with the shell output
	log := logger.NewWithWriter(os.Stderr, cfg.Log.Level)

	policy, err := storefront.ParseQuantityPolicy(cfg.Storefront.Quantity.Policy)
	if err != nil {
		return err
	}

	fetcher, err := client.NewProductClient(cfg.Storefront.API.URL, cfg.Storefront.Fetch.Timeout)
	if err != nil {
		return err
	}

	session := storefront.NewSession(policy, log)
	log.Info("starting storefront session",
		"session_id", session.ID().String(),
		"api_url", cfg.Storefront.API.URL,
		"policy", policy.String(),
	)

	if _, err := session.Load(ctx, fetcher); err != nil {
		return err
	}

	return shell.New(session, os.Stdout).Run(ctx, os.Stdin)
}
