package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"locsync/core/config"
	"locsync/core/logger"
)

var projectRoot string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "locsync",
	Short: "Localization corpus sync toolkit",
	Long: `locsync keeps a sharded translation corpus synchronized with its
upstream reference corpus while preserving completed human translations.
It merges upstream key changes, fills untranslated rows from secondary
sources, splits master localisation files into reference-shaped shards,
and ships the corpus to the target mod directory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Use the application's standard logger for error reporting
		// We default to console format to match user expectations (CLI tool)
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&projectRoot, "project-root", "p", ".", "Subproject root")
}

// setup loads the subproject configuration and builds its logger. Every
// subcommand starts here so no component reads ambient state on its own.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(projectRoot)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, l, nil
}
