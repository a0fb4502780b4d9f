package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chazu/envelope/pkg/export"
)

func newExportCmd(c *cli) *cobra.Command {
	var (
		out    string
		format string
		title  string
	)
	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Build and export a plan view as SVG, PNG or DXF",
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

			f := strings.ToLower(format)
			if f == "" {
				f = strings.TrimPrefix(strings.ToLower(filepath.Ext(out)), ".")
			}
			opts := export.Options{Scale: c.cfg.Export.Scale, Margin: c.cfg.Export.Margin, Title: title}

			switch f {
			case "svg":
				if out == "" || out == "-" {
					return export.SVG(cmd.OutOrStdout(), model, opts)
				}
				file, err := os.Create(out)
				if err != nil {
					return err
				}
				if err := export.SVG(file, model, opts); err != nil {
					file.Close()
					return err
				}
				return file.Close()
			case "png":
				if out == "" {
					return fmt.Errorf("png export needs --out")
				}
				return export.PNG(out, model, opts)
			case "dxf":
				if out == "" {
					return fmt.Errorf("dxf export needs --out")
				}
				return export.DXF(out, model)
			default:
				return fmt.Errorf("unknown export format %q (want svg, png or dxf)", f)
			}
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file; SVG goes to stdout when empty")
	cmd.Flags().StringVarP(&format, "format", "f", "", "svg, png or dxf (default from --out extension)")
	cmd.Flags().StringVar(&title, "title", "", "title drawn on SVG output")
	return cmd
}
