// Package main is the entry point for the sfg CLI client.
package main

import (
	"github.com/donaldgifford/storefront-gateway/cmd/sfg/cmd"
)

func main() {
	cmd.Execute()
}
