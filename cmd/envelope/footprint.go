package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chazu/envelope/pkg/layout"
	"github.com/chazu/envelope/pkg/plan"
	"github.com/chazu/envelope/pkg/units"
)

func newFootprintCmd(_ *cli) *cobra.Command {
	var width, depth float64
	cmd := &cobra.Command{
		Use:   "footprint",
		Short: "Print the footprint corners of a building in internal units",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fp, err := layout.GenerateFootprint(units.Length(width), units.Length(depth))
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for i, p := range fp.Points() {
				fmt.Fprintf(w, "p%d %s\n", i, p)
			}
			fmt.Fprintf(w, "area %.4f\n", fp.Area())
			return nil
		},
	}
	cmd.Flags().Float64Var(&width, "width", float64(plan.DefaultWidth), "building width in millimetres")
	cmd.Flags().Float64Var(&depth, "depth", float64(plan.DefaultDepth), "building depth in millimetres")
	return cmd
}
