// Package patchfill promotes untranslated rows of the main translation
// table using a secondary candidate table, without ever touching rows a
// translator already completed.
package patchfill

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"locsync/core/classify"
	"locsync/core/table"
)

// Fill returns a copy of current with untranslated rows promoted from
// candidate, plus the number of promoted rows.
//
// A key is promoted only when all three hold:
//
//  1. the candidate carries a non-empty text for it (an absent candidate
//     row is "no information", not an empty string);
//  2. the candidate text differs from the reference text (a candidate
//     that parrots the reference carries nothing new);
//  3. the current text still classifies as Untranslated against the
//     reference.
//
// The operation is strictly additive: it moves rows from Untranslated
// toward Translated and never the reverse. Row order, keys and tooltips
// of current are preserved unchanged.
func Fill(reference, current, candidate *table.Table) (*table.Table, int) {
	refLookup := reference.Lookup()
	candLookup := candidate.Lookup()

	updated := current.Clone()
	promoted := 0
	for i, r := range updated.Records {
		if r.IsService() {
			continue
		}
		candText, ok := candLookup[r.Key]
		if !ok || candText == "" {
			continue
		}
		refText := refLookup[r.Key]
		if candText == refText {
			continue
		}
		if classify.Classify(r.Text, refText) != classify.Untranslated {
			continue
		}
		updated.Records[i].Text = candText
		promoted++
	}
	return updated, promoted
}

// BatchOptions configures a directory-wide patch-fill run.
type BatchOptions struct {
	// ReferenceDir holds the original-language shards.
	ReferenceDir string

	// TranslationDir holds the main translation shards, rewritten in
	// place when anything was promoted.
	TranslationDir string

	// CandidateDir holds the secondary-source shards; read only.
	CandidateDir string

	// Shards restricts the run to the named shard files. Empty means
	// every shard present in CandidateDir.
	Shards []string
}

// ShardOutcome reports one shard of a patch-fill run.
type ShardOutcome struct {
	Name     string
	Promoted int
	Skipped  bool
	Err      error
}

// RunBatch fills every selected shard. A shard missing from any of the
// three directories is skipped with a warning, not fatal to the batch.
func RunBatch(ctx context.Context, opts BatchOptions, log *zap.Logger) ([]ShardOutcome, error) {
	names := opts.Shards
	if len(names) == 0 {
		var err error
		names, err = table.ListShards(opts.CandidateDir)
		if err != nil {
			return nil, fmt.Errorf("candidate directory: %w", err)
		}
	}

	var outcomes []ShardOutcome
	for _, name := range names {
		select {
		case <-ctx.Done():
			return outcomes, ctx.Err()
		default:
		}
		outcomes = append(outcomes, fillShard(name, opts, log))
	}
	return outcomes, nil
}

func fillShard(name string, opts BatchOptions, log *zap.Logger) ShardOutcome {
	refPath := filepath.Join(opts.ReferenceDir, name)
	curPath := filepath.Join(opts.TranslationDir, name)
	candPath := filepath.Join(opts.CandidateDir, name)

	for _, p := range []string{refPath, curPath, candPath} {
		if _, err := os.Stat(p); err != nil {
			log.Warn("skipping shard: not present in all three directories",
				zap.String("shard", name), zap.String("missing", p))
			return ShardOutcome{Name: name, Skipped: true}
		}
	}

	ref, err := table.Read(refPath)
	if err != nil {
		return ShardOutcome{Name: name, Err: err}
	}
	cur, err := table.Read(curPath)
	if err != nil {
		return ShardOutcome{Name: name, Err: err}
	}
	cand, err := table.Read(candPath)
	if err != nil {
		return ShardOutcome{Name: name, Err: err}
	}

	updated, promoted := Fill(ref, cur, cand)
	if promoted == 0 {
		log.Info("no translations required", zap.String("shard", name))
		return ShardOutcome{Name: name}
	}

	if err := table.Write(curPath, updated); err != nil {
		return ShardOutcome{Name: name, Err: err}
	}
	log.Info("shard patched", zap.String("shard", name), zap.Int("promoted", promoted))
	return ShardOutcome{Name: name, Promoted: promoted}
}
