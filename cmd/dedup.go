package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"locsync/core/dedup"
	"locsync/core/table"
)

// dedupCmd is the parent for the worksheet round-trip.
var dedupCmd = &cobra.Command{
	Use:   "dedup",
	Short: "Deduplicate shard text for external translation",
	Long: `Dedup prepares a duplicate-free worksheet from a shard and later
reinjects the filled translations by key.

A worksheet has three columns: text, translate, keys. Translators fill the
translate column; the keys column is needed for reinjection and must not
be edited.`,
}

// dedupExtractCmd writes the worksheet for one shard.
var dedupExtractCmd = &cobra.Command{
	Use:   "extract <shard.loc.tsv>",
	Short: "Create a duplicate-free worksheet from a shard",
	Args:  cobra.ExactArgs(1),
	RunE:  runDedupExtract,
}

// dedupApplyCmd maps a filled worksheet back onto a shard.
var dedupApplyCmd = &cobra.Command{
	Use:   "apply <worksheet._dedup.tsv> <shard.loc.tsv>",
	Short: "Apply a filled worksheet back to the shard",
	Args:  cobra.ExactArgs(2),
	RunE:  runDedupApply,
}

func init() {
	dedupCmd.AddCommand(dedupExtractCmd)
	dedupCmd.AddCommand(dedupApplyCmd)
	RootCmd.AddCommand(dedupCmd)
}

func runDedupExtract(cmd *cobra.Command, args []string) error {
	cfg, l, err := setup()
	if err != nil {
		return err
	}

	src, err := table.Read(args[0])
	if err != nil {
		return err
	}
	ws := dedup.Extract(src)

	out := dedup.WorksheetPath(cfg.Paths.TempDir, args[0])
	if err := dedup.WriteWorksheet(out, ws); err != nil {
		return err
	}
	l.Info("worksheet created", zap.String("path", out), zap.Int("rows", len(ws.Rows)))
	return nil
}

func runDedupApply(cmd *cobra.Command, args []string) error {
	_, l, err := setup()
	if err != nil {
		return err
	}

	ws, err := dedup.ReadWorksheet(args[0])
	if err != nil {
		return err
	}
	target, err := table.Read(args[1])
	if err != nil {
		return err
	}

	matched := dedup.Apply(ws, target)
	if matched == 0 {
		return fmt.Errorf("the worksheet has no filled translate column")
	}
	if err := table.Write(args[1], target); err != nil {
		return err
	}
	l.Info("worksheet applied", zap.String("shard", args[1]), zap.Int("translated", matched))
	return nil
}
