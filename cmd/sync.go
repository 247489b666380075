package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"locsync/core/storage"
	"locsync/core/syncdir"
)

var (
	syncSrc          string
	syncDst          string
	syncDryRun       bool
	syncOnlyExisting bool
	syncPattern      string
	syncRemote       bool
)

// syncCmd ships the translation corpus to the target mod directory or to
// the configured remote bucket.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Mirror the translation corpus into the target directory",
	Long: `Sync copies the subproject's translation tree into the destination
used for in-game testing. Before copying it deletes only those destination
entries that also exist in the source, so unrelated files (like .git) are
never touched.

With --only-existing nothing new is created: only files already present in
the destination are refreshed (optionally filtered, e.g. --pattern "*.lua"),
and files deleted upstream are reported.

With --remote the corpus is mirrored into the configured S3 bucket instead.`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVarP(&syncSrc, "src", "s", "", "Source subdir under project root (default: translation tree)")
	syncCmd.Flags().StringVarP(&syncDst, "dst", "d", "", "Destination path (overrides configured dst)")
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Print actions, do not modify files")
	syncCmd.Flags().BoolVar(&syncOnlyExisting, "only-existing", false, "Refresh only files already present in the destination")
	syncCmd.Flags().StringVar(&syncPattern, "pattern", "", "Base-name glob filter for --only-existing (e.g. \"*.lua\")")
	syncCmd.Flags().BoolVar(&syncRemote, "remote", false, "Mirror into the configured S3 bucket instead")
	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, l, err := setup()
	if err != nil {
		return err
	}

	src := syncSrc
	if src == "" {
		// The corpus tree one level above the shard directory.
		src = filepath.Dir(cfg.Paths.TranslationDB)
	} else if !filepath.IsAbs(src) {
		src = filepath.Join(projectRoot, src)
	}

	if syncRemote {
		return runSyncRemote(cfg.Remote, src, l)
	}

	dst := syncDst
	if dst == "" {
		dst = cfg.Paths.Dst
	}
	if dst == "" {
		return fmt.Errorf("destination not set; provide --dst or configure PATHS_DST in the project's .env")
	}

	stats, err := syncdir.Mirror(syncdir.Options{
		Src:          src,
		Dst:          dst,
		DryRun:       syncDryRun,
		OnlyExisting: syncOnlyExisting,
		Pattern:      syncPattern,
	}, l)
	if err != nil {
		return err
	}

	for _, orphan := range stats.Orphans {
		l.Warn("present locally but deleted upstream", zap.String("file", orphan))
	}
	l.Info("synchronization completed",
		zap.String("src", src),
		zap.String("dst", dst),
		zap.Int("copied", stats.Copied),
		zap.Int("deleted", stats.Deleted),
		zap.Int("skipped", stats.Skipped),
		zap.Bool("dry_run", syncDryRun),
	)
	return nil
}

func runSyncRemote(remoteCfg storage.Config, src string, l *zap.Logger) error {
	if !remoteCfg.Enabled {
		return fmt.Errorf("remote mirror is not enabled; set REMOTE_ENABLED=true in the project's .env")
	}

	client, err := storage.NewClient(remoteCfg)
	if err != nil {
		return fmt.Errorf("failed to connect to storage: %w", err)
	}

	stats, err := syncdir.MirrorRemote(context.Background(), client, syncdir.RemoteOptions{
		Src:    src,
		Bucket: remoteCfg.Bucket,
		Prefix: remoteCfg.Prefix,
		DryRun: syncDryRun,
	}, l)
	if err != nil {
		return err
	}

	l.Info("remote mirror completed",
		zap.String("bucket", remoteCfg.Bucket),
		zap.Int("uploaded", stats.Uploaded),
		zap.Int("removed", stats.Removed),
		zap.Bool("dry_run", syncDryRun),
	)
	return nil
}
