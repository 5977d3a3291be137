package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/chazu/linework/pkg/config"
	"github.com/chazu/linework/pkg/scene"
)

// app holds state shared by every subcommand once the root has run.
type app struct {
	configPath string
	logLevel   string

	cfg config.Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "linework",
		Short:         "Render 3D scenes as 2D line drawings",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "TOML configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		newRenderCmd(a),
		newCheckCmd(a),
		newExportSTLCmd(a),
		newSliceCmd(a),
		newConfigCmd(a),
	)
	return root
}

// setup loads the configuration and installs the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg := config.Default()
	if a.configPath != "" {
		var err error
		if cfg, err = config.Load(a.configPath); err != nil {
			return err
		}
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return fmt.Errorf("log level %q: %w", cfg.Log.Level, err)
	}

	a.cfg = cfg
	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	scene.SetLogger(a.log)
	return nil
}
