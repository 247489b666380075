package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"locsync/core/logger"
	"locsync/core/merge"
	"locsync/core/validate"
)

var (
	mergeYes     bool
	mergeWorkers int
)

// mergeCmd reconciles the translation corpus against the upstream reference.
var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge upstream reference shards into the translation corpus",
	Long: `Merge adds new keys from the reference, preserves completed
translations, resets rows that still echo the reference to the latest
upstream wording, and archives keys removed upstream into the obsolete
directory (one snapshot per shard, overwritten each run).

Both directories are validated first; on duplicate keys or bad column
shapes the run asks for confirmation before proceeding.

Examples:
  # Merge the subproject in the current directory
  locsync merge

  # Non-interactive (CI): proceed despite validation findings
  locsync merge --yes`,
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().BoolVar(&mergeYes, "yes", false, "Proceed without confirmation on validation findings")
	mergeCmd.Flags().IntVar(&mergeWorkers, "workers", 0, "Shard worker pool size (default from config)")
	RootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	cfg, l, err := setup()
	if err != nil {
		return err
	}
	l = logger.WithRunID(l)

	if _, err := os.Stat(cfg.Paths.UpstreamDB); err != nil {
		return fmt.Errorf("reference directory: %w", err)
	}

	// Preliminary verification of both directories.
	var findings []validate.Finding
	for _, dir := range []string{cfg.Paths.UpstreamDB, cfg.Paths.TranslationDB} {
		fs, err := validate.CheckDir(dir)
		if err != nil {
			return fmt.Errorf("validation of %s: %w", dir, err)
		}
		findings = append(findings, fs...)
	}
	for _, f := range findings {
		l.Warn("validation finding", zap.String("finding", f.String()))
	}
	if validate.Blocking(findings) {
		l.Warn("errors found; the merge may not work correctly, fix the problem files first")
		if !confirmProceed("Continue merging? (y/n): ") {
			return fmt.Errorf("merge canceled")
		}
	}

	workers := mergeWorkers
	if workers == 0 {
		workers = cfg.Run.Workers
	}
	summary, err := merge.RunBatch(context.Background(), merge.BatchOptions{
		ReferenceDir:   cfg.Paths.UpstreamDB,
		TranslationDir: cfg.Paths.TranslationDB,
		ObsoleteDir:    cfg.Paths.ObsoleteDir,
		Workers:        workers,
	}, l)
	if err != nil {
		return err
	}

	if summary.FilesChanged == 0 {
		l.Info("all files are up to date")
	}
	l.Info("merge completed",
		zap.Int("files", summary.Files),
		zap.Int("added", summary.Added),
		zap.Int("archived", summary.Removed),
		zap.Int("updated", summary.Updated),
		zap.Int("skipped", summary.Skipped),
	)
	return nil
}

// confirmProceed prompts the user, honoring the --yes bypass.
func confirmProceed(prompt string) bool {
	if mergeYes {
		return true
	}
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print(prompt)
		response, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(response)) {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
		fmt.Println("Please enter 'y' or 'n'")
	}
}
