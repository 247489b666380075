// Package syncdir mirrors the translation corpus into a destination tree,
// typically the installed mod directory used for in-game testing.
//
// The mirror is deliberately conservative: before copying, it removes only
// those destination entries that also exist in the source, so unrelated
// destination content (a .git directory, user files) is never touched.
package syncdir

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// ignoreNames are entries never copied into the destination.
var ignoreNames = map[string]struct{}{
	".git":                   {},
	".gitignore":             {},
	".gitattributes":         {},
	".gitmodules":            {},
	".env":                   {},
	".pre-commit-config.yaml": {},
	"run":                    {},
	".DS_Store":              {},
	"Thumbs.db":              {},
}

var ignoreSuffixes = []string{".tmp", ".bak", ".swp", "~"}

// Options configures a mirror run.
type Options struct {
	// Src is the corpus tree to mirror from.
	Src string

	// Dst is the destination tree; it must already exist.
	Dst string

	// DryRun logs the planned actions without modifying anything.
	DryRun bool

	// OnlyExisting restricts the copy to files already present in the
	// destination; nothing new is ever created. This is the safe mode
	// used to refresh translated script files against upstream.
	OnlyExisting bool

	// Pattern optionally filters files by base-name glob (e.g. "*.lua").
	// Empty matches everything. Only applies with OnlyExisting.
	Pattern string
}

// Stats summarizes a mirror run.
type Stats struct {
	Copied  int
	Deleted int
	Skipped int

	// Orphans lists destination-relative files that no longer exist in
	// the source (reported in OnlyExisting mode, never deleted).
	Orphans []string
}

func shouldIgnore(name string) bool {
	if _, ok := ignoreNames[name]; ok {
		return true
	}
	for _, suf := range ignoreSuffixes {
		if strings.HasSuffix(name, suf) {
			return true
		}
	}
	return false
}

// Mirror synchronizes Src into Dst.
func Mirror(opts Options, log *zap.Logger) (*Stats, error) {
	if _, err := os.Stat(opts.Src); err != nil {
		return nil, fmt.Errorf("source folder: %w", err)
	}
	if _, err := os.Stat(opts.Dst); err != nil {
		return nil, fmt.Errorf("target folder does not exist, create it or change dst: %w", err)
	}

	stats := &Stats{}
	if opts.OnlyExisting {
		if err := refreshExisting(opts, stats, log); err != nil {
			return nil, err
		}
		return stats, nil
	}

	if err := clearShared(opts, stats, log); err != nil {
		return nil, err
	}
	if err := copyTree(opts, stats, log); err != nil {
		return nil, err
	}
	return stats, nil
}

// clearShared deletes destination subtrees that also exist in the source,
// so stale files do not survive a rename upstream.
func clearShared(opts Options, stats *Stats, log *zap.Logger) error {
	entries, err := os.ReadDir(opts.Src)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if shouldIgnore(e.Name()) {
			continue
		}
		dstPath := filepath.Join(opts.Dst, e.Name())
		info, err := os.Stat(dstPath)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			continue
		}
		if opts.DryRun {
			log.Info("dry-run: would delete folder", zap.String("path", dstPath))
			continue
		}
		if err := os.RemoveAll(dstPath); err != nil {
			return err
		}
		stats.Deleted++
		log.Info("deleted folder", zap.String("path", dstPath))
	}
	return nil
}

func copyTree(opts Options, stats *Stats, log *zap.Logger) error {
	return filepath.WalkDir(opts.Src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if shouldIgnore(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(opts.Src, path)
		if err != nil {
			return err
		}
		dst := filepath.Join(opts.Dst, rel)
		if opts.DryRun {
			log.Info("dry-run: would copy", zap.String("from", path), zap.String("to", dst))
			return nil
		}
		if err := copyFile(path, dst); err != nil {
			return err
		}
		stats.Copied++
		return nil
	})
}

// refreshExisting copies only files already present in the destination and
// reports source-relative orphans that upstream deleted.
func refreshExisting(opts Options, stats *Stats, log *zap.Logger) error {
	srcSet := make(map[string]struct{})

	err := filepath.WalkDir(opts.Src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if shouldIgnore(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if shouldIgnore(d.Name()) || !matchPattern(opts.Pattern, d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(opts.Src, path)
		if err != nil {
			return err
		}
		srcSet[rel] = struct{}{}

		dst := filepath.Join(opts.Dst, rel)
		if _, err := os.Stat(dst); err != nil {
			stats.Skipped++
			return nil
		}
		if opts.DryRun {
			log.Info("dry-run: would refresh", zap.String("file", rel))
			return nil
		}
		if err := copyFile(path, dst); err != nil {
			return err
		}
		stats.Copied++
		return nil
	})
	if err != nil {
		return err
	}

	// Files still present in the destination but gone upstream.
	return filepath.WalkDir(opts.Dst, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if shouldIgnore(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !matchPattern(opts.Pattern, d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(opts.Dst, path)
		if err != nil {
			return err
		}
		if _, ok := srcSet[rel]; !ok {
			stats.Orphans = append(stats.Orphans, rel)
		}
		return nil
	})
}

func matchPattern(pattern, name string) bool {
	if pattern == "" {
		return true
	}
	ok, err := filepath.Match(pattern, name)
	return err == nil && ok
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
