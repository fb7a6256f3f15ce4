package main

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "poseloop",
	Short: "Timed figure-drawing practice sessions",
	Long: strings.TrimSpace(`
Manage a library of reference poses and run timed practice sessions
against it: pick poses by keyword, set a per-pose countdown, and let the
session advance on its own.
	`),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A .env file is optional; absence is the normal case.
		_ = godotenv.Load()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error executing command: %v", err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (YAML)")
	rootCmd.PersistentFlags().StringP("database", "d", "", "Database file path (overrides config)")
}
