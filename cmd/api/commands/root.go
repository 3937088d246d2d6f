// Package commands implements the api command line.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	envFile string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "api",
	Short: "Product API - CRUD service for the product catalogue",
	Long: `Product API serves create, read, update and delete operations for
products stored in PostgreSQL.

Configuration is read from environment variables, optionally seeded
from an env file.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Env file loaded before reading the environment (ignored if missing)")
}
