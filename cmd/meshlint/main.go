// Package main provides the meshlint CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/meshlint/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
