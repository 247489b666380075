// Package merge reconciles translation shards against their reference
// shards: new keys are added, completed translations preserved, stale or
// untouched rows refreshed to the latest reference wording, and keys
// removed upstream archived into a per-shard obsolete snapshot.
//
// # Algorithm
//
// Merge performs a reference-ordered outer join on key. The reference side
// fixes both the output row order and the output key set; the old
// translation's order never leaks through, because the pairing is rebuilt
// rather than patched in place. A current row survives only when its text
// classifies as Translated against the reference text. The only sanctioned
// way a key leaves the corpus is explicit archival.
//
// # Guarantees
//
//   - Merged carries exactly the reference key set plus the reference's
//     service rows in their original positions.
//   - Merge is idempotent: a second run over its own output changes
//     nothing and archives nothing.
//   - Archive snapshots reflect only the current run's deletions; they
//     are overwritten, never appended. Concurrent runs over the same
//     shard set must not interleave - that is the caller's
//     responsibility, no locking is done here.
package merge
