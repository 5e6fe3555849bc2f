// Package main is the entry point for the hashline CLI.
package main

import (
	"fmt"
	"os"

	"hashline/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
