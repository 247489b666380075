package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"locsync/core/po"
	"locsync/core/table"
)

var (
	poSrc    string
	poTrg    string
	poSrcDir string
	poTrgDir string
	poOutDir string
	poLang   string
)

// poCmd exports the bilingual corpus to GNU gettext catalogs.
var poCmd = &cobra.Command{
	Use:   "po",
	Short: "Export shards to GNU gettext PO catalogs",
	Long: `Po converts key/text/tooltip shard pairs into PO catalogs:
msgctxt carries the key, msgid the reference text, msgstr the current
translation.

Single file:
  locsync po --src _upstream/en/text/db/names.loc.tsv --trg translation/text/db/names.loc.tsv

Whole corpus:
  locsync po --srcdir _upstream/en/text/db --trgdir translation/text/db --outdir _po`,
	RunE: runPo,
}

func init() {
	poCmd.Flags().StringVar(&poSrc, "src", "", "Reference shard file")
	poCmd.Flags().StringVar(&poTrg, "trg", "", "Translation shard file")
	poCmd.Flags().StringVar(&poSrcDir, "srcdir", "", "Reference shard directory")
	poCmd.Flags().StringVar(&poTrgDir, "trgdir", "", "Translation shard directory")
	poCmd.Flags().StringVar(&poOutDir, "outdir", "po", "Output directory for catalogs")
	poCmd.Flags().StringVar(&poLang, "lang", "uk", "Catalog Language header")
	RootCmd.AddCommand(poCmd)
}

func runPo(cmd *cobra.Command, args []string) error {
	_, l, err := setup()
	if err != nil {
		return err
	}

	switch {
	case poSrc != "" && poTrg != "":
		out := strings.TrimSuffix(poTrg, ".tsv") + ".po"
		return convertPair(poSrc, poTrg, out, l)
	case poSrcDir != "" && poTrgDir != "":
		return convertDirs(l)
	default:
		return cmd.Help()
	}
}

func convertPair(srcPath, trgPath, outPath string, l *zap.Logger) error {
	src, err := table.Read(srcPath)
	if err != nil {
		return err
	}
	trg, err := table.Read(trgPath)
	if err != nil {
		return err
	}
	entries := po.Entries(src, trg)
	if err := po.WriteFile(outPath, entries, po.Options{
		SourceName: filepath.Base(srcPath),
		Language:   poLang,
	}); err != nil {
		return err
	}
	l.Info("catalog written", zap.String("path", outPath), zap.Int("entries", len(entries)))
	return nil
}

func convertDirs(l *zap.Logger) error {
	names, err := table.ListShards(poSrcDir)
	if err != nil {
		return fmt.Errorf("srcdir: %w", err)
	}
	if _, err := os.Stat(poTrgDir); err != nil {
		return fmt.Errorf("trgdir: %w", err)
	}

	for _, name := range names {
		trgPath := filepath.Join(poTrgDir, name)
		if _, err := os.Stat(trgPath); err != nil {
			l.Warn("skipped shard without translation", zap.String("shard", name))
			continue
		}
		out := filepath.Join(poOutDir, strings.TrimSuffix(name, ".tsv")+".po")
		if err := convertPair(filepath.Join(poSrcDir, name), trgPath, out, l); err != nil {
			return err
		}
	}
	return nil
}
