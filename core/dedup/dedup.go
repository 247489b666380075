// Package dedup turns a shard into a duplicate-free worksheet for external
// human translation and reinjects the finished worksheet by key.
//
// The worksheet is a three-column TSV:
//
//	text	translate	keys
//
// One row per distinct source text; the keys column carries every key that
// shares the text, comma-joined and sorted. Translators fill the translate
// column and must leave keys untouched.
package dedup

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"locsync/core/table"
)

// worksheetColumns is the required worksheet header.
var worksheetColumns = []string{"text", "translate", "keys"}

// Row is one worksheet line.
type Row struct {
	Text      string
	Translate string
	Keys      []string
}

// Worksheet is an ordered set of deduplicated rows.
type Worksheet struct {
	Rows []Row
}

// Extract groups the shard's rows by identical text. Rows are emitted in
// ascending text order so repeated extractions are stable.
func Extract(src *table.Table) *Worksheet {
	groups := make(map[string][]string)
	for _, r := range src.Records {
		groups[r.Text] = append(groups[r.Text], r.Key)
	}

	texts := make([]string, 0, len(groups))
	for text := range groups {
		texts = append(texts, text)
	}
	sort.Strings(texts)

	ws := &Worksheet{Rows: make([]Row, 0, len(texts))}
	for _, text := range texts {
		keys := groups[text]
		sort.Strings(keys)
		ws.Rows = append(ws.Rows, Row{Text: text, Keys: keys})
	}
	return ws
}

// Apply writes filled translations back onto the target table and returns
// the number of rows whose key matched a filled worksheet row. Worksheet
// rows with an empty translate column are skipped.
func Apply(ws *Worksheet, target *table.Table) int {
	byKey := make(map[string]string)
	for _, row := range ws.Rows {
		if row.Translate == "" {
			continue
		}
		for _, k := range row.Keys {
			k = strings.TrimSpace(k)
			if k != "" {
				byKey[k] = row.Translate
			}
		}
	}
	if len(byKey) == 0 {
		return 0
	}

	matched := 0
	for i, r := range target.Records {
		if tr, ok := byKey[r.Key]; ok {
			target.Records[i].Text = tr
			matched++
		}
	}
	return matched
}

// WorksheetPath derives the worksheet file name for a shard, placed under
// dir: names.loc.tsv -> names.loc._dedup.tsv.
func WorksheetPath(dir, shardPath string) string {
	base := strings.TrimSuffix(filepath.Base(shardPath), ".tsv")
	return filepath.Join(dir, base+"._dedup.tsv")
}

// WriteWorksheet serializes the worksheet as TSV.
func WriteWorksheet(path string, ws *Worksheet) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	var b strings.Builder
	b.WriteString(strings.Join(worksheetColumns, "\t"))
	b.WriteByte('\n')
	for _, row := range ws.Rows {
		b.WriteString(row.Text)
		b.WriteByte('\t')
		b.WriteString(row.Translate)
		b.WriteByte('\t')
		b.WriteString(strings.Join(row.Keys, ","))
		b.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// ReadWorksheet parses a worksheet file.
func ReadWorksheet(path string) (*Worksheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ws := &Worksheet{}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNo := 0
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		lineNo++
		fields := strings.Split(line, "\t")
		if lineNo == 1 {
			if len(fields) != len(worksheetColumns) ||
				fields[0] != worksheetColumns[0] || fields[1] != worksheetColumns[1] || fields[2] != worksheetColumns[2] {
				return nil, fmt.Errorf("%s: worksheet columns %v expected, got %v", path, worksheetColumns, fields)
			}
			continue
		}
		for len(fields) < 3 {
			fields = append(fields, "")
		}
		row := Row{Text: fields[0], Translate: fields[1]}
		for _, k := range strings.Split(fields[2], ",") {
			if k = strings.TrimSpace(k); k != "" {
				row.Keys = append(row.Keys, k)
			}
		}
		ws.Rows = append(ws.Rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ws, nil
}
