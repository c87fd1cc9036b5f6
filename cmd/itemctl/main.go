// Package main is the operator CLI for the item reference catalogue.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pricelens/backend/config"
	"github.com/pricelens/backend/internal/infrastructure/storage"
)

// version is set at build time via ldflags.
var version = "dev"

// app carries the configuration shared by every subcommand
type app struct {
	v   *viper.Viper
	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:     "itemctl",
		Short:   "Inspect and maintain the item reference catalogue",
		Version: version,
		Long: `itemctl runs the catalogue operations of the item reference service
from the command line: quantity normalization, candidate resolution, bulk
find-or-create from a YAML row file, and schema migration.

Store settings come from config.yaml, PRICELENS_* environment variables,
or the flags below, in increasing order of precedence.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadWith(a.v)
			if err != nil {
				return err
			}
			a.cfg = cfg
			if !cfg.Logging.Debug {
				log.SetOutput(cmd.ErrOrStderr())
				log.SetFlags(0)
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("driver", "", "catalogue store driver: memory, postgres or sqlite")
	flags.String("dsn", "", "store connection string, or database file for sqlite")
	flags.Bool("debug", false, "enable debug logging")
	_ = a.v.BindPFlag("store.driver", flags.Lookup("driver"))
	_ = a.v.BindPFlag("store.dsn", flags.Lookup("dsn"))
	_ = a.v.BindPFlag("logging.debug", flags.Lookup("debug"))

	rootCmd.AddCommand(
		newNormalizeCmd(),
		newResolveCmd(a),
		newImportCmd(a),
		newMigrateCmd(a),
	)
	return rootCmd
}

// openStore opens the configured store; the caller must run the returned close function
func (a *app) openStore(ctx context.Context) (storage.Store, func(), error) {
	store, closeFn, err := storage.Open(ctx, a.cfg.Store)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s store: %w", a.cfg.Store.Driver, err)
	}
	return store, closeFn, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
