package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"locsync/core/logger"
	"locsync/core/split"
)

// splitCmd distributes the flat localisation master across per-shard files.
var splitCmd = &cobra.Command{
	Use:   "split [shard...]",
	Short: "Split the flat localisation master into reference-shaped shards",
	Long: `Split reads the single master key/text table and distributes its
translations across per-shard files mirroring the reference partitioning.
A shard that does not exist yet is seeded as a verbatim copy of its
reference file and written even when no translation applied, so the output
set always matches the reference set. Rows carrying the reserved service
prefix are left byte-identical.

Without arguments every reference shard is processed.`,
	RunE: runSplit,
}

func init() {
	RootCmd.AddCommand(splitCmd)
}

func runSplit(cmd *cobra.Command, args []string) error {
	cfg, l, err := setup()
	if err != nil {
		return err
	}
	l = logger.WithRunID(l)

	if cfg.Paths.MasterFile == "" {
		return fmt.Errorf("paths.master_file is not set; configure PATHS_MASTER_FILE in the project's .env")
	}
	if cfg.Paths.SplitDir == "" {
		return fmt.Errorf("paths.split_dir is not set; configure PATHS_SPLIT_DIR in the project's .env")
	}

	outcomes, err := split.Run(context.Background(), split.Options{
		MasterFile:   cfg.Paths.MasterFile,
		ReferenceDir: cfg.Paths.UpstreamDB,
		OutputDir:    cfg.Paths.SplitDir,
		Shards:       args,
	}, l)
	if err != nil {
		return err
	}

	updated, written := 0, 0
	for _, o := range outcomes {
		if o.Err != nil {
			l.Warn("shard failed", zap.String("shard", o.Name), zap.Error(o.Err))
			continue
		}
		updated += o.Updated
		if o.Written {
			written++
		}
	}
	l.Info("split completed",
		zap.Int("shards", len(outcomes)),
		zap.Int("written", written),
		zap.Int("updated", updated),
	)
	return nil
}
