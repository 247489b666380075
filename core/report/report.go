// Package report computes translation progress per shard by comparing the
// reference corpus against the translation corpus.
package report

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"locsync/core/classify"
	"locsync/core/table"
)

// placeholders are sentinel texts the translators use to mark rows that
// should not count toward progress either way.
var placeholders = map[string]struct{}{
	"PLACEHOLDER":   {},
	"placeholder":   {},
	"text_rejected": {},
}

// FileStat is the progress of one shard.
type FileStat struct {
	Name  string
	Total int
	Done  int
	Todo  int
}

// Percent returns the completion percentage, rounded to the nearest int.
func (s FileStat) Percent() int {
	if s.Total == 0 {
		return 0
	}
	return int(math.Round(float64(s.Done) / float64(s.Total) * 100))
}

// Summary aggregates progress across all shards.
type Summary struct {
	Total int
	Done  int
}

// Percent returns the overall completion percentage with two decimals.
func (s Summary) Percent() float64 {
	if s.Total == 0 {
		return 0
	}
	return math.Round(float64(s.Done)/float64(s.Total)*10000) / 100
}

// Build walks the reference directory and pairs each shard with its
// translation. A shard with no translation file yet reports as all-zero.
// Service rows, rows with empty reference text and placeholder rows are
// excluded from the counts; a row is Done when its translated text
// classifies as Translated against the reference text.
func Build(referenceDir, translationDir string) ([]FileStat, Summary, error) {
	names, err := table.ListShards(referenceDir)
	if err != nil {
		return nil, Summary{}, fmt.Errorf("reference directory: %w", err)
	}

	var stats []FileStat
	var sum Summary
	for _, name := range names {
		trgPath := filepath.Join(translationDir, name)
		if _, err := os.Stat(trgPath); err != nil {
			stats = append(stats, FileStat{Name: name})
			continue
		}

		ref, err := table.Read(filepath.Join(referenceDir, name))
		if err != nil {
			return nil, Summary{}, err
		}
		trg, err := table.Read(trgPath)
		if err != nil {
			return nil, Summary{}, err
		}

		st := fileStat(name, ref, trg)
		stats = append(stats, st)
		sum.Total += st.Total
		sum.Done += st.Done
	}
	return stats, sum, nil
}

func fileStat(name string, ref, trg *table.Table) FileStat {
	trgLookup := trg.Lookup()

	st := FileStat{Name: name}
	seen := make(map[string]struct{})
	for _, r := range ref.Records {
		if r.IsService() || r.IsReserved() {
			continue
		}
		if strings.TrimSpace(r.Text) == "" {
			continue
		}
		if _, ok := placeholders[r.Text]; ok {
			continue
		}
		if _, dup := seen[r.Key]; dup {
			continue
		}
		seen[r.Key] = struct{}{}

		st.Total++
		if classify.Classify(trgLookup[r.Key], r.Text) == classify.Translated {
			st.Done++
		}
	}
	st.Todo = st.Total - st.Done
	return st
}
