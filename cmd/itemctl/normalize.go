package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pricelens/backend/internal/usecase"
)

func newNormalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <quantity>...",
		Short: "Print the canonical form of free-text quantities",
		Long: `Normalize parses each argument the way the catalogue does when comparing
quantities and prints the canonical value and base unit, or "unknown" when
the text is not a supported quantity.`,
		Example: `  itemctl normalize 1.5L "6 pcs" 250g`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			green := color.New(color.FgGreen).SprintFunc()
			yellow := color.New(color.FgYellow).SprintFunc()

			for _, raw := range args {
				q, ok := usecase.NormalizeQuantity(raw)
				if !ok {
					fmt.Fprintf(out, "%-16q %s\n", raw, yellow("unknown"))
					continue
				}
				fmt.Fprintf(out, "%-16q %s\n", raw, green(q.String()))
			}
			return nil
		},
	}
}
