// Package main is the entry point for the gpuhost CLI.
package main

import (
	"os"

	"github.com/gpuhost-io/gpuhost/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
