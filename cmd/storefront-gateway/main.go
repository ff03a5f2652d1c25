// Package main is the entry point for the storefront-gateway.
package main

import (
	"os"

	"github.com/donaldgifford/storefront-gateway/cmd/storefront-gateway/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
