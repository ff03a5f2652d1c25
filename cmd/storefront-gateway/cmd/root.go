// Package cmd implements the CLI commands for storefront-gateway.
package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "storefront-gateway",
	Short: "Aggregate storefront upstream APIs behind stable JSON endpoints",
	Long: "An API gateway that turns the product search engine, marketplace, content feed and " +
		"currency-rate service into normalized responses for the storefront, with retries, " +
		"rate limiting and partial-failure reporting.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
	rootCmd.AddCommand(versionCommand())
	rootCmd.AddCommand(openapiCommand())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}
