package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"locsync/core/table"
)

// unescapeCmd normalizes the quoting convention in shard text columns.
var unescapeCmd = &cobra.Command{
	Use:   "unescape [path...]",
	Short: "Remove TSV quote escaping from shard text columns",
	Long: `Unescape strips the storage quoting convention from the text
column: a field wrapped entirely in double quotes loses the outer pair,
and doubled double quotes collapse to a literal quote. Keys, tooltips
and row order are untouched.

Paths may be shard files or directories; without arguments the whole
translation corpus is processed.`,
	RunE: runUnescape,
}

func init() {
	RootCmd.AddCommand(unescapeCmd)
}

func runUnescape(cmd *cobra.Command, args []string) error {
	cfg, l, err := setup()
	if err != nil {
		return err
	}

	var files []string
	if len(args) == 0 {
		args = []string{cfg.Paths.TranslationDB}
	}
	for _, a := range args {
		info, err := os.Stat(a)
		if err != nil {
			l.Warn("not found, skipping", zap.String("path", a))
			continue
		}
		if info.IsDir() {
			names, err := table.ListShards(a)
			if err != nil {
				return err
			}
			for _, name := range names {
				files = append(files, filepath.Join(a, name))
			}
		} else {
			files = append(files, a)
		}
	}
	if len(files) == 0 {
		return fmt.Errorf("no files found")
	}

	total := 0
	for _, f := range files {
		t, err := table.Read(f)
		if err != nil {
			return err
		}
		changed := t.UnescapeTexts()
		if changed > 0 {
			if err := table.Write(f, t); err != nil {
				return err
			}
		}
		l.Info("processed", zap.String("file", filepath.Base(f)), zap.Int("updated", changed))
		total += changed
	}
	l.Info("done", zap.Int("total_updated", total))
	return nil
}
