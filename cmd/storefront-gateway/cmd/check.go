package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/storefront-gateway/internal/config"
)

var checkConfigCmd = &cobra.Command{
	Use:   "check-config",
	Short: "Validate the config file and print the effective upstream settings",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "listen       %s:%d\n", cfg.Server.Host, cfg.Server.Port)
		fmt.Fprintf(out, "catalog      %s (page size %d, %d attempts, timeout %s)\n",
			cfg.Catalog.BaseURL, cfg.Catalog.PageSize, cfg.Catalog.Fetch.MaxAttempts, cfg.Catalog.Fetch.Timeout)
		fmt.Fprintf(out, "marketplace  %s (region %s, %d recommendations)\n",
			cfg.Marketplace.BaseURL, cfg.Marketplace.RegionCode, cfg.Marketplace.RecommendationCount)
		fmt.Fprintf(out, "content      %s\n", cfg.Content.SuggestionsURL)
		fmt.Fprintf(out, "currency     %s (%s/%s, timeout %s)\n",
			cfg.Currency.URL, cfg.Currency.Base, cfg.Currency.Target, cfg.Currency.Timeout)
		if cfg.Tracing.Enabled {
			fmt.Fprintf(out, "tracing      %s (sample ratio %g)\n", cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
		}
		fmt.Fprintln(out, "config OK")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkConfigCmd)
}
