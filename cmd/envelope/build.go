package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chazu/envelope/pkg/builder"
	"github.com/chazu/envelope/pkg/host"
)

func newBuildCmd(c *cli) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "build FILE",
		Short: "Build the buildings in a script or YAML plan and summarise them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := c.loadPlans(args[0])
			if err != nil {
				return err
			}
			model, results, err := c.buildAll(cmd.Context(), plans)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(model)
			}
			return summarise(cmd.OutOrStdout(), model, results)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the document snapshot as JSON")
	return cmd
}

func summarise(w io.Writer, m host.Model, results []*builder.Result) error {
	for _, r := range results {
		fp := r.Footprint
		roof := "none"
		if r.Roof != "" {
			for _, rf := range m.Roofs {
				if rf.ID == r.Roof {
					roof = rf.Kind.String()
				}
			}
		}
		if _, err := fmt.Fprintf(w, "%s: %d walls, %d openings, roof %s, footprint area %.2f sq ft\n",
			r.Name, len(r.Walls), len(r.Openings), roof, fp.Area()); err != nil {
			return err
		}
		for _, warn := range r.Warnings {
			if _, err := fmt.Fprintf(w, "  warning: %s\n", warn.Error()); err != nil {
				return err
			}
		}
	}
	return nil
}
