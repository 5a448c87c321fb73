// Package cmd holds the eventify command line.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"eventify/config"
	"eventify/internal/store"
	"eventify/migrations"

	"github.com/pocketbase/dbx"
	"github.com/spf13/cobra"
)

// Execute runs the root command. Without a subcommand it serves.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "eventify",
		Short:         "Event and challenge registration API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	root.AddCommand(newServeCmd(), newMigrateCmd(), newSeedCmd())
	return root
}

func setupLogger(cfg *config.Config) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(cfg.LogLevel))); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// openMigrated opens the configured database and applies pending
// migrations.
func openMigrated(cfg *config.Config) (*dbx.DB, error) {
	db, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	applied, err := migrations.Up(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if len(applied) > 0 {
		slog.Info("Database migrated", "applied", len(applied))
	}
	return db, nil
}
