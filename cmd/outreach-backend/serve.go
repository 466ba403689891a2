package main

import (
	"fmt"

	"github.com/futig/outreach-backend/internal/builder"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run migrations and start the HTTP server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := builder.Build(environment)
		if err != nil {
			return fmt.Errorf("failed to build application: %w", err)
		}

		return app.Run()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
