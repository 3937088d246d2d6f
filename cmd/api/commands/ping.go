package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"product-api/internal/config"
	"product-api/internal/database"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	// Ping flags
	pingTimeout time.Duration
)

// pingCmd checks database connectivity
var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check database connectivity",
	Long: `Open a connection pool with the configured settings and report the
name of the connected database.

Examples:
  api ping                 # Use the default 10s timeout
  api ping --timeout 2s    # Fail faster`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPing(cmd.Context(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(pingCmd)

	pingCmd.Flags().DurationVar(&pingTimeout, "timeout", 10*time.Second, "Connection timeout")
}

func runPing(ctx context.Context, out io.Writer) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.Database, zerolog.Nop())
	if err != nil {
		return fmt.Errorf("unable to connect to database: %w", err)
	}
	defer pool.Close()

	name, err := database.CurrentDatabase(ctx, pool)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Successfully connected to database: %s\n", name)
	return nil
}
