package cmd

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/storefront-gateway/api/openapi"
)

func openapiCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Print the OpenAPI document for the gateway API",
		Long: "Render the OpenAPI 3.1 document from the registered operations without\n" +
			"loading config or contacting any upstream.",
		Example: `  storefront-gateway openapi > openapi.json
  storefront-gateway openapi --format yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Handlers are never invoked, so no upstream clients are needed.
			api := registerAPI(echo.New(), routeDeps{})

			var (
				data []byte
				err  error
			)
			switch format {
			case "json":
				data, err = openapi.JSON(api)
			case "yaml":
				data, err = openapi.YAML(api)
			default:
				return fmt.Errorf("unknown format %q (want json or yaml)", format)
			}
			if err != nil {
				return fmt.Errorf("rendering OpenAPI document: %w", err)
			}

			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "output format (json, yaml)")

	return cmd
}
