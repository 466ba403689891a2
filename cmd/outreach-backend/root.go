package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	environment string
	version     = "dev"
	commit      = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "outreach-backend",
	Short: "Recruiting outreach backend",
	Long: `HTTP backend that drafts recruiting email sequences with an LLM
and stores the saved sequences in PostgreSQL.

Configuration is read from .env.<env> and the process environment.

Quick Start:
  outreach-backend migrate --env local   # Apply database migrations
  outreach-backend serve --env local     # Start the HTTP server`,
	Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&environment, "env", "e", "local", "Environment name, selects the .env.<env> file")

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
