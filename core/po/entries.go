package po

import "locsync/core/table"

// Entries builds catalog entries from a reference/current table pair.
// Service rows, reserved-prefix keys and repeated keys are skipped; the
// current text comes from a last-occurrence-wins lookup and defaults to
// the empty string when the key is absent from the translation.
func Entries(reference, current *table.Table) []Entry {
	curLookup := current.Lookup()

	var entries []Entry
	seen := make(map[string]struct{})
	for _, r := range reference.Records {
		if r.IsService() || r.IsReserved() {
			continue
		}
		if _, dup := seen[r.Key]; dup {
			continue
		}
		seen[r.Key] = struct{}{}
		entries = append(entries, Entry{
			Key:       r.Key,
			Reference: r.Text,
			Current:   curLookup[r.Key],
		})
	}
	return entries
}
