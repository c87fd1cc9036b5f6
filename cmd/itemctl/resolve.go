package main

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pricelens/backend/internal/domain"
	"github.com/pricelens/backend/internal/usecase"
)

func newResolveCmd(a *app) *cobra.Command {
	var (
		request  domain.ResolveRequest
		quantity string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve a brand, name and quantity to catalogue candidates",
		Example: `  itemctl resolve --brand Acme --item Cola --quantity 0.5L
  itemctl resolve --brand Acme --item Cola --quantity 500ml --strict --feature zero`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			if quantity != "" {
				request.Quantity = domain.NewQuantityInput(quantity)
			}

			resolver := usecase.NewResolverService(store, usecase.ResolverConfig{
				EnableDebugLogging: a.cfg.Logging.Debug,
			})
			result, err := resolver.Resolve(cmd.Context(), &request)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			bold := color.New(color.Bold).SprintFunc()
			if result.ExactID != nil {
				fmt.Fprintf(out, "%s %s\n", color.GreenString("exact match:"), bold(*result.ExactID))
			} else {
				fmt.Fprintf(out, "%s\n", color.YellowString("no exact match (%d candidates)", len(result.Candidates)))
			}
			for _, item := range result.Candidates {
				fmt.Fprintf(out, "  %s  %s / %s  qty=%q  features=%q\n",
					bold(item.ID), item.Brand, item.Name, item.Quantity, item.Feature)
			}
			if len(result.SuggestedFeatures) > 0 {
				fmt.Fprintf(out, "suggested features: %v\n", result.SuggestedFeatures)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&request.Brand, "brand", "", "brand to match")
	cmd.Flags().StringVar(&request.Item, "item", "", "item name to match")
	cmd.Flags().StringVar(&quantity, "quantity", "", "free-text quantity, e.g. 1.5L")
	cmd.Flags().StringSliceVar(&request.SelectedFeatures, "feature", nil, "required feature tag (repeatable)")
	cmd.Flags().BoolVar(&request.StrictQty, "strict", false, "require a comparable quantity on every candidate")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}
