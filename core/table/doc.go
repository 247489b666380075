// Package table holds the shared data model for the localization corpus:
// an ordered collection of key/text/tooltip records read from and written
// to tab-separated shard files.
//
// # File format
//
// Every shard is a three-column TSV with a fixed header line:
//
//	key	text	tooltip
//
// Fields are separated by a single tab and carry no quoting performed by
// this package; the documented convention for quotes embedded by upstream
// exports (outer wrapping quotes, doubled quotes for a literal quote) is
// applied explicitly via UnescapeField / UnescapeTexts.
//
// # Service rows
//
// A row with an empty key is a service/header row: it is never classified
// or merged by content and passes through every operation unchanged. A row
// whose key starts with ServicePrefix is additionally excluded from the
// master-split edit rule.
//
// # Duplicate keys
//
// Lookup and Index fold rows in file order and overwrite on repeated keys,
// so the last occurrence wins. Downstream operations depend on exactly this
// tie-break; the validator reports duplicates so they can be fixed at the
// source.
package table
