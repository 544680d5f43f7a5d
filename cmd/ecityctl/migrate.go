package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ecity-api/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update every table",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		defer logger.Sync()

		db, err := openDB(logger)
		if err != nil {
			return err
		}
		defer database.Close(db)

		if err := database.SafeAutoMigrate(db, logger); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Migrations completed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
