package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/storefront-gateway/internal/api/client"
)

func searchCmd() *cobra.Command {
	var (
		page      int
		sortBy    string
		sortOrder string
		filters   []string
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the product catalog",
		Long: "Search the catalog through the gateway and print normalized\n" +
			"product cards with pagination details.",
		Example: `  sfg search "jordan 1"
  sfg search dunk --page 2 --sort-by price --sort-order asc
  sfg search "air max" --filter brand=nike --filter size=42`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseFilters(filters)
			if err != nil {
				return err
			}

			resp, err := newClient().Search(cmd.Context(), &apiclient.SearchParams{
				Query:     args[0],
				Page:      page,
				SortBy:    sortBy,
				SortOrder: sortOrder,
				Filters:   parsed,
			})
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), resp)
			}
			if err := printProductsTable(cmd.OutOrStdout(), resp.Results); err != nil {
				return err
			}
			return printPageFooter(cmd.OutOrStdout(), resp.CurrentPage, resp.TotalResults, resp.HasMore)
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().StringVar(&sortBy, "sort-by", "", "sort field")
	cmd.Flags().StringVar(&sortOrder, "sort-order", "", "sort direction (asc, desc)")
	cmd.Flags().StringArrayVar(&filters, "filter", nil, "facet filter as key=value (repeatable)")

	return cmd
}

func feedCmd() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:     "feed",
		Short:   "Show the \"for you\" feed",
		Example: `  sfg feed --page 2`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := newClient().Feed(cmd.Context(), page)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), resp)
			}
			if err := printProductsTable(cmd.OutOrStdout(), resp.Products); err != nil {
				return err
			}
			return printPageFooter(cmd.OutOrStdout(), page, resp.Total, resp.HasMore)
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")

	return cmd
}

func brandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "brands",
		Short: "List the brand directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			brands, err := newClient().Brands(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), brands)
			}
			return printBrandsTable(cmd.OutOrStdout(), brands)
		},
	}
}

// parseFilters turns repeated key=value flags into a multi-valued map.
func parseFilters(raw []string) (map[string][]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	out := make(map[string][]string, len(raw))
	for _, f := range raw {
		k, v, ok := strings.Cut(f, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid filter %q: expected key=value", f)
		}
		out[k] = append(out[k], strings.TrimSpace(v))
	}
	return out, nil
}
