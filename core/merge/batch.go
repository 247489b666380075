package merge

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"locsync/core/table"
	"locsync/core/worker"
)

// BatchOptions configures a directory-wide merge run. All paths are
// resolved by the caller; no ambient state is consulted here.
type BatchOptions struct {
	// ReferenceDir holds the authoritative shards. Missing directory is
	// fatal to the whole run.
	ReferenceDir string

	// TranslationDir holds the current shards; updated in place. Shards
	// missing here are treated as empty tables (first-ever run).
	TranslationDir string

	// ObsoleteDir receives per-shard archive snapshots. Each run
	// overwrites the previous snapshot for a shard; an empty archive is
	// not written.
	ObsoleteDir string

	// Workers bounds the shard pool. Values below 1 run sequentially.
	Workers int
}

// ShardOutcome reports one shard of a batch run.
type ShardOutcome struct {
	Name   string
	Result Result
	Err    error
}

// BatchSummary aggregates a whole run.
type BatchSummary struct {
	Files        int
	FilesChanged int
	Added        int
	Removed      int
	Updated      int
	Skipped      int

	Outcomes []ShardOutcome
}

// RunBatch merges every reference shard into the translation directory.
//
// Per-shard read or write errors skip that shard and are reported in the
// summary; they do not abort the batch. Shards run concurrently on a
// bounded pool; each shard only reads its own reference/current pair and
// writes its own output/archive, so no cross-shard coordination is needed.
func RunBatch(ctx context.Context, opts BatchOptions, log *zap.Logger) (*BatchSummary, error) {
	names, err := table.ListShards(opts.ReferenceDir)
	if err != nil {
		return nil, fmt.Errorf("reference directory: %w", err)
	}

	pool, err := worker.New(opts.Workers, log)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	var mu sync.Mutex
	summary := &BatchSummary{}

	for _, name := range names {
		name := name
		err := pool.Submit(ctx, func(ctx context.Context) {
			outcome := mergeShard(name, opts, log)
			mu.Lock()
			defer mu.Unlock()
			summary.Outcomes = append(summary.Outcomes, outcome)
			if outcome.Err != nil {
				summary.Skipped++
				return
			}
			summary.Files++
			summary.Added += outcome.Result.Added
			summary.Removed += outcome.Result.Removed
			summary.Updated += outcome.Result.Updated
			if outcome.Result.Changed() {
				summary.FilesChanged++
			}
		})
		if err != nil {
			return nil, err
		}
	}
	pool.Wait()

	return summary, ctx.Err()
}

func mergeShard(name string, opts BatchOptions, log *zap.Logger) ShardOutcome {
	refPath := filepath.Join(opts.ReferenceDir, name)
	curPath := filepath.Join(opts.TranslationDir, name)

	ref, err := table.Read(refPath)
	if err != nil {
		log.Warn("skipping shard: reference unreadable", zap.String("shard", name), zap.Error(err))
		return ShardOutcome{Name: name, Err: err}
	}

	cur := table.New()
	if _, statErr := os.Stat(curPath); statErr == nil {
		cur, err = table.Read(curPath)
		if err != nil {
			log.Warn("skipping shard: translation unreadable", zap.String("shard", name), zap.Error(err))
			return ShardOutcome{Name: name, Err: err}
		}
	}

	res := Merge(ref, cur)

	if err := table.Write(curPath, res.Merged); err != nil {
		log.Warn("skipping shard: write failed", zap.String("shard", name), zap.Error(err))
		return ShardOutcome{Name: name, Err: err}
	}

	if len(res.Archived.Records) > 0 {
		if err := table.Write(filepath.Join(opts.ObsoleteDir, name), res.Archived); err != nil {
			log.Warn("archive write failed", zap.String("shard", name), zap.Error(err))
			return ShardOutcome{Name: name, Err: err}
		}
	}

	if res.Changed() {
		log.Info("shard merged",
			zap.String("shard", name),
			zap.Int("added", res.Added),
			zap.Int("removed", res.Removed),
			zap.Int("updated", res.Updated),
		)
	}
	return ShardOutcome{Name: name, Result: res}
}
