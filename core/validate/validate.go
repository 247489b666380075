// Package validate performs structural and uniqueness checks over shard
// tables before the reconciliation operations run on them.
package validate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"locsync/core/table"
)

// Kind identifies what a finding is about.
type Kind int

const (
	// BadShape means the column set differs from the required key, text,
	// tooltip triple. Fatal for any downstream operation on the table.
	BadShape Kind = iota

	// EmptyKey means one or more rows have an empty key. Warning level:
	// such rows are skipped by classification but pass through unchanged.
	EmptyKey

	// DuplicateKey means a non-empty key occurs more than once. Error
	// level: lookups stay deterministic (last occurrence wins) but the
	// caller decides whether to abort.
	DuplicateKey

	// Unreadable means the file could not be parsed at all.
	Unreadable
)

// Severity ranks findings for batch drivers deciding whether to proceed.
type Severity int

const (
	Warning Severity = iota
	Error
	Fatal
)

// Finding is a single validation result for one table.
type Finding struct {
	Kind     Kind
	Severity Severity

	// File is the shard file name the finding applies to.
	File string

	// Key is the offending key for DuplicateKey findings.
	Key string

	// Lines are 1-based file line numbers (the header is line 1).
	Lines []int

	// Expected and Actual describe the column sets for BadShape findings.
	Expected []string
	Actual   []string

	// Err carries the parse error for Unreadable findings.
	Err error
}

// String renders the finding for console reporting.
func (f Finding) String() string {
	switch f.Kind {
	case BadShape:
		return fmt.Sprintf("%s: columns %v expected, got %v", f.File, f.Expected, f.Actual)
	case EmptyKey:
		return fmt.Sprintf("%s: empty key on line(s) %s", f.File, joinLines(f.Lines))
	case DuplicateKey:
		return fmt.Sprintf("%s: duplicate key %q on line(s) %s", f.File, f.Key, joinLines(f.Lines))
	case Unreadable:
		return fmt.Sprintf("%s: failed to read file (%v)", f.File, f.Err)
	}
	return fmt.Sprintf("%s: unknown finding", f.File)
}

func joinLines(lines []int) string {
	parts := make([]string, len(lines))
	for i, n := range lines {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, ", ")
}

// Check validates one table. Findings are ordered BadShape first, then
// EmptyKey, then DuplicateKey in first-occurrence order.
func Check(t *table.Table) []Finding {
	file := filepath.Base(t.Path)
	var findings []Finding

	if !equalColumns(t.Header, table.Columns) {
		findings = append(findings, Finding{
			Kind:     BadShape,
			Severity: Fatal,
			File:     file,
			Expected: table.Columns,
			Actual:   t.Header,
		})
	}

	var emptyLines []int
	seen := make(map[string][]int)
	var dupOrder []string
	for i, r := range t.Records {
		line := i + 2 // +2: header line plus 1-based numbering
		if r.IsService() {
			emptyLines = append(emptyLines, line)
			continue
		}
		if prev, ok := seen[r.Key]; ok {
			if len(prev) == 1 {
				dupOrder = append(dupOrder, r.Key)
			}
		}
		seen[r.Key] = append(seen[r.Key], line)
	}

	if len(emptyLines) > 0 {
		findings = append(findings, Finding{
			Kind:     EmptyKey,
			Severity: Warning,
			File:     file,
			Lines:    emptyLines,
		})
	}
	for _, k := range dupOrder {
		findings = append(findings, Finding{
			Kind:     DuplicateKey,
			Severity: Error,
			File:     file,
			Key:      k,
			Lines:    seen[k],
		})
	}
	return findings
}

// CheckDir validates every shard file in dir and returns findings grouped
// per file, in sorted file order. A missing directory is not an error here;
// it returns no findings (batch drivers treat missing directories as their
// own fatal condition).
func CheckDir(dir string) ([]Finding, error) {
	names, err := table.ListShards(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var all []Finding
	for _, name := range names {
		t, err := table.Read(filepath.Join(dir, name))
		if err != nil {
			all = append(all, Finding{Kind: Unreadable, Severity: Fatal, File: name, Err: err})
			continue
		}
		all = append(all, Check(t)...)
	}
	return all, nil
}

// Blocking reports whether any finding is at Error severity or above.
func Blocking(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity >= Error {
			return true
		}
	}
	return false
}

func equalColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
