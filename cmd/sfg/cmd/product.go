package cmd

import (
	"github.com/spf13/cobra"
)

func productCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "product <slug>",
		Short: "Show the product-detail bundle",
		Long: "Fetch a product template together with its price and recommendations.\n" +
			"Sections the marketplace could not supply are reported as unavailable.",
		Example: `  sfg product air-jordan-1-retro-high
  sfg product air-jordan-1-retro-high --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().Product(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), resp)
			}
			return printProductDetail(cmd.OutOrStdout(), resp)
		},
	}
}

func suggestionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggestions",
		Short: "List search suggestions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			titles, err := newClient().Suggestions(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), titles)
			}
			return printLines(cmd.OutOrStdout(), titles)
		},
	}
}

func rateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rate",
		Short: "Show the current exchange rate",
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := newClient().CurrencyRate(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), resp)
			}
			return printRate(cmd.OutOrStdout(), resp)
		},
	}
}

func quotaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quota",
		Short: "Show upstream rate-limit quotas",
		RunE: func(cmd *cobra.Command, _ []string) error {
			quotas, err := newClient().Quota(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), quotas)
			}
			return printQuotaTable(cmd.OutOrStdout(), quotas)
		},
	}
}
