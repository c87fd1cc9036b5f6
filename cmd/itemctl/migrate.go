package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the catalogue schema if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			if err := store.EnsureSchema(cmd.Context()); err != nil {
				return fmt.Errorf("migrating %s store: %w", a.cfg.Store.Driver, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s schema is up to date (%s)\n",
				color.GreenString("✓"), a.cfg.Store.Driver)
			return nil
		},
	}
}
