package main

import (
	"github.com/spf13/cobra"

	"github.com/chazu/envelope/pkg/layout"
	"github.com/chazu/envelope/pkg/plan"
)

func newPlanCmd(_ *cli) *cobra.Command {
	var roof string
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the default building as a YAML plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := plan.Default()
			if roof != "" {
				kind, err := layout.ParseRoofKind(roof)
				if err != nil {
					return err
				}
				p.Roof = plan.DefaultRoof(kind)
			}
			return plan.WriteYAML(cmd.OutOrStdout(), p)
		},
	}
	cmd.Flags().StringVar(&roof, "roof", "", "roof kind: none, footprint or extrusion")
	return cmd
}
