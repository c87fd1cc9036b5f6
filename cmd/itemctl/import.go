package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pricelens/backend/internal/domain"
	"github.com/pricelens/backend/internal/infrastructure/rowfile"
	"github.com/pricelens/backend/internal/usecase"
)

// importSummary counts row outcomes across every chunk of an import
type importSummary struct {
	Created  int
	Existing int
	Invalid  int
}

func (s *importSummary) add(results []domain.BatchRowResult) {
	for _, r := range results {
		switch {
		case !r.OK:
			s.Invalid++
		case r.Existed != nil && *r.Existed:
			s.Existing++
		default:
			s.Created++
		}
	}
}

func newImportCmd(a *app) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "import <rows.yaml>",
		Short: "Find or create catalogue items from a YAML row file",
		Long: `Import reads item rows (name, brand, quantity, feature) from a YAML file
and runs find-or-create over them in batches of at most batch.max_rows.
Each batch commits on its own; a failed batch stops the import and leaves
earlier batches committed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := rowfile.Load(args[0])
			if err != nil {
				return err
			}

			store, closeStore, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			batch := usecase.NewBatchService(store, usecase.NewRandomIDGenerator(), usecase.BatchConfig{
				MaxRows:            a.cfg.Batch.MaxRows,
				IDAttempts:         a.cfg.Batch.IDAttempts,
				EnableDebugLogging: a.cfg.Logging.Debug,
			})

			out := cmd.OutOrStdout()
			var summary importSummary
			offset := 0
			for i, chunk := range rowfile.Chunk(rows, batch.MaxRows()) {
				results, err := batch.FindOrCreateBatch(cmd.Context(), chunk)
				if err != nil {
					return fmt.Errorf("batch %d (rows %d-%d): %w", i+1, offset+1, offset+len(chunk), err)
				}
				summary.add(results)
				if verbose {
					printResults(out, chunk, results, offset)
				}
				offset += len(chunk)
			}

			fmt.Fprintf(out, "%d rows: %s created, %s existing, %s invalid\n",
				len(rows),
				color.GreenString("%d", summary.Created),
				color.CyanString("%d", summary.Existing),
				color.RedString("%d", summary.Invalid))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print the outcome of every row")
	return cmd
}

func printResults(out io.Writer, rows []domain.BatchRow, results []domain.BatchRowResult, offset int) {
	for i, r := range results {
		row := rows[i]
		switch {
		case !r.OK:
			fmt.Fprintf(out, "%5d  %s  %s\n", offset+i+1, color.RedString("invalid "), r.Error)
		case *r.Existed:
			fmt.Fprintf(out, "%5d  %s  %s  %s / %s\n", offset+i+1, color.CyanString("existing"), r.ID, row.Brand, row.Name)
		default:
			fmt.Fprintf(out, "%5d  %s  %s  %s / %s\n", offset+i+1, color.GreenString("created "), r.ID, row.Brand, row.Name)
		}
	}
}
