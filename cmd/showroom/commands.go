package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yourusername/rocket-motor-showroom/internal/app"
	"github.com/yourusername/rocket-motor-showroom/internal/domain/entity"
)

func newCompareCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <idA> <idB>",
		Short: "Print normalized performance scores of two vehicles",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, func(a *app.App) error {
				result, err := a.Compare.Compare(args[0], args[1])
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintf(w, "AXIS\t%s\t%s\n", result.VehicleA.Title(), result.VehicleB.Title())
				for _, axis := range result.Axes {
					fmt.Fprintf(w, "%s\t%.0f\t%.0f\n", axis.Axis, axis.ScoreA, axis.ScoreB)
				}
				return w.Flush()
			})
		},
	}
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.xlsx>",
		Short: "Import vehicles from an Excel sheet in one commit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, func(a *app.App) error {
				vehicles, err := a.Importer.ParseVehicles(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				n, err := a.Inventory.ImportVehicles(cmd.Context(), vehicles)
				if err != nil {
					return err
				}
				a.Admin.RecordAction(cmd.Context(), 0, "import_inventory", "cli: "+args[0])
				fmt.Fprintf(cmd.OutOrStdout(), "imported %d vehicles from %s\n", n, args[0])
				return nil
			})
		},
	}
}

func newCategoriesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories with vehicle counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, func(a *app.App) error {
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintf(w, "CATEGORY\tVEHICLES\n")
				fmt.Fprintf(w, "%s\t%d\n", entity.AllCategory, len(a.Inventory.FilterByCategory(entity.AllCategory)))
				for _, c := range a.Inventory.Categories() {
					fmt.Fprintf(w, "%s\t%d\n", c, len(a.Inventory.FilterByCategory(c)))
				}
				return w.Flush()
			})
		},
	}
}
