package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the database and apply migrations",
	Long: `Create the SQLite database (if missing) and bring its schema up
to date. Serve and ingest migrate on startup anyway; init exists for
provisioning a database ahead of time.

Example:
  poseloop init -d poses.db`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, err := openEnvironment(cmd)
		if err != nil {
			return err
		}
		defer db.Close()

		fmt.Printf("Database ready: %s\n", cfg.DatabasePath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
