package table

import "strings"

const (
	// ServicePrefix marks rows that carry file-format metadata for the game
	// engine (e.g. "#Loc;..."). Such rows are never edited by the splitter.
	ServicePrefix = "#Loc;"

	// FileSuffix is the file name suffix shared by all shard files.
	FileSuffix = ".loc.tsv"
)

// Columns is the required column set, in order, for every shard file.
var Columns = []string{"key", "text", "tooltip"}

// Record is a single translatable unit.
type Record struct {
	// Key is the stable identity of the unit. An empty (or whitespace-only)
	// key marks a service row.
	Key string

	// Text is the mutable translated content.
	Text string

	// Tooltip is passive payload carried through unmodified.
	Tooltip string
}

// IsService reports whether the record is a service row (empty key).
func (r Record) IsService() bool {
	return strings.TrimSpace(r.Key) == ""
}

// IsReserved reports whether the record key carries the reserved service
// prefix. Reserved rows are excluded from the master-split edit rule only.
func (r Record) IsReserved() bool {
	return strings.HasPrefix(r.Key, ServicePrefix)
}

// Table is an ordered sequence of records loaded from one shard file.
type Table struct {
	// Path is the file the table was read from, if any.
	Path string

	// Header is the column set as found in the file. A well-formed table
	// has Header equal to Columns; the validator flags anything else.
	Header []string

	// Records are the data rows in file order.
	Records []Record
}

// New builds an in-memory table with the canonical header.
func New(records ...Record) *Table {
	return &Table{
		Header:  append([]string(nil), Columns...),
		Records: records,
	}
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	c := &Table{
		Path:    t.Path,
		Header:  append([]string(nil), t.Header...),
		Records: append([]Record(nil), t.Records...),
	}
	return c
}

// Lookup folds the table into a key -> text map, skipping service rows.
// On duplicate keys the last occurrence wins; this mirrors how the merge
// and fill operations fold rows in file order and is a deliberate policy,
// not an accident of map iteration.
func (t *Table) Lookup() map[string]string {
	m := make(map[string]string, len(t.Records))
	for _, r := range t.Records {
		if r.IsService() {
			continue
		}
		m[r.Key] = r.Text
	}
	return m
}

// Index folds the table into a key -> record map with the same
// last-occurrence-wins policy as Lookup.
func (t *Table) Index() map[string]Record {
	m := make(map[string]Record, len(t.Records))
	for _, r := range t.Records {
		if r.IsService() {
			continue
		}
		m[r.Key] = r
	}
	return m
}

// KeySet returns the set of non-service keys present in the table.
func (t *Table) KeySet() map[string]struct{} {
	s := make(map[string]struct{}, len(t.Records))
	for _, r := range t.Records {
		if r.IsService() {
			continue
		}
		s[r.Key] = struct{}{}
	}
	return s
}
