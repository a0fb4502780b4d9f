package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/chazu/envelope/pkg/config"
	"github.com/chazu/envelope/pkg/logging"
)

// cli holds state shared by every subcommand once the root has run.
type cli struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "envelope",
		Short:         "Generate rectangular building envelopes",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			if c.logLevel != "" {
				cfg.Log.Level = c.logLevel
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			c.cfg = cfg
			c.logger = logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
			slog.SetDefault(c.logger)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ./envelope.yaml if present)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "override log.level (debug, info, warn, error)")

	root.AddCommand(
		newBuildCmd(c),
		newExportCmd(c),
		newMeshCmd(c),
		newFootprintCmd(c),
		newPlanCmd(c),
	)
	return root
}
