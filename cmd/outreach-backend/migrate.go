package main

import (
	"github.com/futig/outreach-backend/internal/builder"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return builder.Migrate(environment)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
