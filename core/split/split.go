// Package split distributes a single flat key -> text master mapping
// across the per-shard tables shaped like the reference corpus, creating
// shards on demand.
package split

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"locsync/core/classify"
	"locsync/core/table"
)

// Apply fills one shard from the master mapping and returns the updated
// table plus the number of rows that changed.
//
// Editable rows are those with a non-empty key that does not carry the
// reserved service prefix; everything else stays byte-identical. The fill
// rule is the same as patch-fill's: the master must offer a non-empty text
// for the key, that text must differ from the shard's reference text, and
// the row's current text must still classify as Untranslated against the
// reference.
func Apply(reference, current *table.Table, master map[string]string) (*table.Table, int) {
	refLookup := reference.Lookup()

	updated := current.Clone()
	changed := 0
	for i, r := range updated.Records {
		if r.IsService() || r.IsReserved() {
			continue
		}
		masterText, ok := master[r.Key]
		if !ok || masterText == "" {
			continue
		}
		refText := refLookup[r.Key]
		if masterText == refText {
			continue
		}
		if classify.Classify(r.Text, refText) != classify.Untranslated {
			continue
		}
		updated.Records[i].Text = masterText
		changed++
	}
	return updated, changed
}

// Options configures a master split run.
type Options struct {
	// MasterFile is the flat, un-sharded key -> text table.
	MasterFile string

	// ReferenceDir is the authoritative partitioning of keys into
	// shards; it also supplies the seed content for shards that do not
	// exist yet under OutputDir.
	ReferenceDir string

	// OutputDir receives the per-shard outputs. A prior output is loaded
	// as the starting point; otherwise the reference shard is cloned.
	OutputDir string

	// Shards restricts the run to the named shard files. Empty means
	// every reference shard.
	Shards []string
}

// ShardOutcome reports one shard of a split run.
type ShardOutcome struct {
	Name    string
	Updated int
	Seeded  bool
	Written bool
	Skipped bool
	Err     error
}

// Run splits the master file across the reference partitioning.
//
// A shard is persisted when anything changed or when its output did not
// previously exist: the first seed is always written even with zero
// updates, so downstream tooling sees a shard set matching the reference
// partitioning. Re-running with an unchanged master writes nothing.
func Run(ctx context.Context, opts Options, log *zap.Logger) ([]ShardOutcome, error) {
	masterTable, err := table.Read(opts.MasterFile)
	if err != nil {
		return nil, fmt.Errorf("master file: %w", err)
	}
	master := masterTable.Lookup()

	names := opts.Shards
	if len(names) == 0 {
		names, err = table.ListShards(opts.ReferenceDir)
		if err != nil {
			return nil, fmt.Errorf("reference directory: %w", err)
		}
	}

	var outcomes []ShardOutcome
	for _, name := range names {
		select {
		case <-ctx.Done():
			return outcomes, ctx.Err()
		default:
		}
		outcomes = append(outcomes, splitShard(name, master, opts, log))
	}
	return outcomes, nil
}

func splitShard(name string, master map[string]string, opts Options, log *zap.Logger) ShardOutcome {
	refPath := filepath.Join(opts.ReferenceDir, name)
	outPath := filepath.Join(opts.OutputDir, name)

	ref, err := table.Read(refPath)
	if err != nil {
		log.Warn("skipping shard: no readable reference", zap.String("shard", name), zap.Error(err))
		return ShardOutcome{Name: name, Skipped: true, Err: err}
	}

	existed := false
	cur := ref.Clone()
	if _, statErr := os.Stat(outPath); statErr == nil {
		existed = true
		cur, err = table.Read(outPath)
		if err != nil {
			log.Warn("skipping shard: output unreadable", zap.String("shard", name), zap.Error(err))
			return ShardOutcome{Name: name, Skipped: true, Err: err}
		}
	}

	updated, changed := Apply(ref, cur, master)

	outcome := ShardOutcome{Name: name, Updated: changed, Seeded: !existed}
	if changed > 0 || !existed {
		if err := table.Write(outPath, updated); err != nil {
			return ShardOutcome{Name: name, Err: err}
		}
		outcome.Written = true
		log.Info("shard written", zap.String("shard", name), zap.Int("updated", changed), zap.Bool("seeded", !existed))
	} else {
		log.Info("no update required", zap.String("shard", name))
	}
	return outcome
}
