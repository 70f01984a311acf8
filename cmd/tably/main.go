// Package main provides the tably command-line interface.
package main

import (
	"os"

	"github.com/tably-labs/tably/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
