// Package main is the entry point for the goscrapehtml CLI.
package main

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/HBTGmbH/goscrapehtml/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := cli.NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		log.Error("command failed", "err", err)
		return 1
	}
	return 0
}
