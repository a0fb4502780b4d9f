package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chazu/envelope/pkg/kernel/sdfx"
	"github.com/chazu/envelope/pkg/tessellate"
)

func newMeshCmd(c *cli) *cobra.Command {
	var cells int
	cmd := &cobra.Command{
		Use:   "mesh FILE",
		Short: "Build and tessellate, printing per-part mesh statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := c.loadPlans(args[0])
			if err != nil {
				return err
			}
			model, _, err := c.buildAll(cmd.Context(), plans)
			if err != nil {
				return err
			}
			if cells <= 0 {
				cells = c.cfg.Render.MeshCells
			}
			meshes, err := tessellate.Tessellate(model, sdfx.NewWithResolution(cells))
			if err != nil {
				return err
			}
			total := 0
			for _, m := range meshes {
				total += m.TriangleCount()
				sz := m.Size()
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %8d triangles  %.1f x %.1f x %.1f ft\n",
					m.PartName, m.TriangleCount(), sz[0], sz[1], sz[2])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-8s %8d triangles\n", "total", total)
			return nil
		},
	}
	cmd.Flags().IntVar(&cells, "cells", 0, "marching cubes resolution (default render.mesh_cells)")
	return cmd
}
