package merge

import (
	"locsync/core/classify"
	"locsync/core/table"
)

// Result is the outcome of reconciling one translation shard against its
// reference shard.
type Result struct {
	// Merged contains exactly the reference's key set, in reference
	// order, plus the reference's service rows verbatim in position.
	Merged *table.Table

	// Archived holds the records whose keys disappeared from the
	// reference, in their original relative order. Persisted by the
	// caller as a per-shard snapshot, overwritten each run.
	Archived *table.Table

	// Added counts keys that were not present in the current table.
	Added int

	// Removed counts archived records.
	Removed int

	// Updated counts rows whose text actually changed: a non-empty merged
	// text that the current table did not already carry.
	Updated int
}

// Changed reports whether the run touched anything.
func (r Result) Changed() bool {
	return r.Added > 0 || r.Removed > 0 || r.Updated > 0
}

// Merge reconciles current against reference.
//
// The reference fixes the output: every one of its rows appears exactly
// once, in its order. For each non-service key, the current text is kept
// iff it classifies as Translated against the reference text; anything
// that is empty or merely echoes the reference is refreshed to the latest
// reference wording. Keys present in current but gone from the reference
// are collected into Archived. Tooltips follow the reference.
//
// Running Merge on its own output is a no-op: preserved text stays
// preserved, refreshed text equals the reference and is refreshed to the
// same value, and no key outside the reference set survives to archive.
func Merge(reference, current *table.Table) Result {
	curIdx := current.Index()
	refKeys := reference.KeySet()

	merged := table.New()
	merged.Records = make([]table.Record, 0, len(reference.Records))

	res := Result{}
	for _, ref := range reference.Records {
		if ref.IsService() {
			merged.Records = append(merged.Records, ref)
			continue
		}
		out := ref
		cur, ok := curIdx[ref.Key]
		if !ok {
			res.Added++
		}
		if ok && classify.Classify(cur.Text, ref.Text) == classify.Translated {
			out.Text = cur.Text
		}
		if out.Text != "" && (!ok || out.Text != cur.Text) {
			res.Updated++
		}
		merged.Records = append(merged.Records, out)
	}

	archived := table.New()
	for _, cur := range current.Records {
		if cur.IsService() {
			continue
		}
		if _, ok := refKeys[cur.Key]; !ok {
			archived.Records = append(archived.Records, cur)
		}
	}
	res.Removed = len(archived.Records)

	res.Merged = merged
	res.Archived = archived
	return res
}
