package main

import (
	"fmt"
	"os"

	migrate "github.com/rubenv/sql-migrate"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/johnquangdev/projectflow/internal/infrastructure/database"
	"github.com/johnquangdev/projectflow/pkg/config"
)

var maxMigrations int

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back the ProjectFlow database schema",
	Long: `Apply or roll back the embedded SQL migrations against the database
configured through the DB_* environment variables (or .env).

Examples:
  # Apply every pending migration
  migrate up

  # Roll back the most recent migration
  migrate down --max 1`,
	SilenceUsage: true,
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(migrate.Up)
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back applied migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(migrate.Down)
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&maxMigrations, "max", 0, "Maximum number of migrations to run (0 = all)")
	rootCmd.AddCommand(upCmd, downCmd)
}

func run(direction migrate.MigrationDirection) error {
	if maxMigrations < 0 {
		return fmt.Errorf("--max must be >= 0")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logger.Sync()

	db, err := database.NewPostgresDB(cfg, logger)
	if err != nil {
		return err
	}
	defer database.CloseDB(db, logger)

	n, err := database.Migrate(db, direction, maxMigrations, logger)
	if err != nil {
		return err
	}
	fmt.Printf("Applied %d migration(s)\n", n)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
