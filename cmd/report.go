package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"locsync/core/report"
)

// reportCmd prints per-shard translation progress.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show translation progress per shard",
	Long: `Report compares the reference corpus with the translation corpus
and prints, for every shard, how many rows are translated and how many
remain. Fully translated shards are omitted from the table.`,
	RunE: runReport,
}

func init() {
	RootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, _, err := setup()
	if err != nil {
		return err
	}

	stats, summary, err := report.Build(cfg.Paths.UpstreamDB, cfg.Paths.TranslationDB)
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Printf("no shard files found in %s\n", cfg.Paths.UpstreamDB)
		return nil
	}

	nameW := 4
	for _, s := range stats {
		if len(s.Name) > nameW {
			nameW = len(s.Name)
		}
	}

	fmt.Printf("%-*s  Total  Done  Todo  %%\n", nameW+2, "File")
	for _, s := range stats {
		pct := s.Percent()
		if s.Total > 0 && s.Todo == 0 {
			continue
		}
		bar := strings.Repeat("#", pct/10)
		fmt.Printf("%-*s  %5d  %4d  %4d  %3d%% %s\n", nameW+2, s.Name, s.Total, s.Done, s.Todo, pct, bar)
	}

	if summary.Total > 0 {
		fmt.Printf("\ntranslated %d of %d lines (%.2f%%)\n", summary.Done, summary.Total, summary.Percent())
	} else {
		fmt.Println("\nno data to count")
	}
	return nil
}
