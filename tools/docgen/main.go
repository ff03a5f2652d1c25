// Package main generates CLI reference documentation for the sfg client and
// the storefront-gateway server command trees.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	sfg "github.com/donaldgifford/storefront-gateway/cmd/sfg/cmd"
	gateway "github.com/donaldgifford/storefront-gateway/cmd/storefront-gateway/cmd"
)

func main() {
	output := flag.String("output", "docs/cli", "output directory for generated docs")
	format := flag.String("format", "markdown", "output format (markdown, man)")
	flag.Parse()

	roots := map[string]*cobra.Command{
		"sfg":                sfg.Root(),
		"storefront-gateway": gateway.Root(),
	}

	for name, root := range roots {
		dir := filepath.Join(*output, name)
		if err := generate(root, dir, *format); err != nil {
			log.Fatalf("generating %s docs: %v", name, err)
		}
		fmt.Printf("%s docs generated in %s/\n", name, dir)
	}
}

func generate(root *cobra.Command, dir, format string) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	root.DisableAutoGenTag = true

	switch format {
	case "markdown":
		return doc.GenMarkdownTree(root, dir)
	case "man":
		return doc.GenManTree(root, &doc.GenManHeader{
			Title:   root.Name(),
			Section: "1",
			Source:  "storefront-gateway",
		}, dir)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
