package cmd

import (
	"fmt"

	"eventify/config"
	"eventify/internal/seed"
	"eventify/internal/store"

	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the starter catalog into an empty database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			setupLogger(cfg)

			db, err := openMigrated(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			seeded, err := seed.IfEmpty(cmd.Context(), store.New(db))
			if err != nil {
				return err
			}
			if !seeded {
				fmt.Fprintln(cmd.OutOrStdout(), "database already has colleges, nothing to do")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "seeded starter catalog")
			return nil
		},
	}
}
