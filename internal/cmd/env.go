package cmd

import (
	"os"

	"github.com/dendrascience/toolbox/console"
	"github.com/dendrascience/toolbox/internal/config"
	"github.com/dendrascience/toolbox/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// env is shared by every subcommand. It is filled in by the root command's
// PersistentPreRunE once flags are parsed.
type env struct {
	configPath string
	logLevel   string
	noColor    bool

	cfg     config.Config
	logger  *zap.Logger
	console *console.Coordinator
	palette console.Palette

	// exit replaces os.Exit for the shutdown coordinator.
	exit func(int)
	// buildLogger replaces logging.New.
	buildLogger func(config.LogConfig) (*zap.Logger, error)
}

func newEnv() *env {
	return &env{
		cfg:         config.Default(),
		logger:      zap.NewNop(),
		exit:        os.Exit,
		buildLogger: logging.New,
	}
}

func (e *env) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(e.configPath)
	if err != nil {
		return err
	}
	if e.logLevel != "" {
		cfg.Log.Level = e.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	logger, err := e.buildLogger(cfg.Log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	e.cfg = cfg
	e.logger = logger
	e.console = console.NewCoordinator(out)
	e.palette = console.Plain
	if f, ok := out.(*os.File); ok && !e.noColor {
		e.palette = console.AutoPalette(f)
	}
	logger.Debug("configuration loaded",
		zap.String("path", e.configPath),
		zap.String("log_level", cfg.Log.Level),
		zap.Bool("color", e.palette.Enabled()))
	return nil
}
