package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-git/go-billy/v6/osfs"
	"github.com/spf13/cobra"

	"poseloop/internal/repository"
	"poseloop/practice"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the practice web server",
	Long: `Start the web server: the JSON API under /api plus the pose
library and blog pages.

Examples:
  poseloop serve
  poseloop serve -c config.yaml
  poseloop serve -d poses.db --addr :9000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, err := openEnvironment(cmd)
		if err != nil {
			return err
		}
		defer db.Close()

		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Listen = addr
		}

		if err := os.MkdirAll(cfg.ImagesDir, 0755); err != nil {
			return fmt.Errorf("failed to create images directory: %w", err)
		}

		app, err := practice.NewApp(cfg, db, osfs.New(cfg.ImagesDir))
		if err != nil {
			return fmt.Errorf("failed to build application: %w", err)
		}

		log.Printf("Database: %s", cfg.DatabasePath)
		log.Printf("Images: %s", cfg.ImagesDir)
		log.Printf("Starting server on: %s", cfg.Listen)
		return http.ListenAndServe(cfg.Listen, app.Handler())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Address to bind the webserver (overrides config)")
}

// openEnvironment loads the configuration per the persistent flags and
// opens the migrated database. Shared by every subcommand that touches
// storage.
func openEnvironment(cmd *cobra.Command) (*practice.Config, *sql.DB, error) {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := practice.LoadConfig(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if databaseFile, _ := cmd.Flags().GetString("database"); databaseFile != "" {
		cfg.DatabasePath = databaseFile
	}

	db, err := practice.OpenDatabase(cfg.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := repository.Migrate(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return cfg, db, nil
}
