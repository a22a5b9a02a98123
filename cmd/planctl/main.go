// Package main is the entry point for the planctl CLI tool.
package main

import (
	"os"

	"github.com/plannery/plannery-go/cmd/planctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
