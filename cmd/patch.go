package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"locsync/core/logger"
	"locsync/core/patchfill"
)

// patchCmd fills untranslated rows from the secondary patch corpus.
var patchCmd = &cobra.Command{
	Use:   "patch [shard...]",
	Short: "Fill untranslated rows from the secondary patch corpus",
	Long: `Patch promotes rows of the main translation that are still empty
or echo the reference, using the text found in the patch corpus for the
same key. Rows a translator already completed are never touched, and a
patch text identical to the reference is ignored.

Without arguments every shard present in the patch corpus is processed.`,
	RunE: runPatch,
}

func init() {
	RootCmd.AddCommand(patchCmd)
}

func runPatch(cmd *cobra.Command, args []string) error {
	cfg, l, err := setup()
	if err != nil {
		return err
	}
	l = logger.WithRunID(l)

	if cfg.Paths.PatchDB == "" {
		return fmt.Errorf("paths.patch_db is not set; configure PATHS_PATCH_DB in the project's .env")
	}

	outcomes, err := patchfill.RunBatch(context.Background(), patchfill.BatchOptions{
		ReferenceDir:   cfg.Paths.UpstreamDB,
		TranslationDir: cfg.Paths.TranslationDB,
		CandidateDir:   cfg.Paths.PatchDB,
		Shards:         args,
	}, l)
	if err != nil {
		return err
	}

	total := 0
	for _, o := range outcomes {
		if o.Err != nil {
			l.Warn("shard failed", zap.String("shard", o.Name), zap.Error(o.Err))
			continue
		}
		total += o.Promoted
	}
	l.Info("patch completed", zap.Int("shards", len(outcomes)), zap.Int("promoted", total))
	return nil
}
