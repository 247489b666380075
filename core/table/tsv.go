package table

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Read loads a shard file. The first line is the header and is preserved
// as found; it is not required to match Columns here (the validator decides
// what to do with a bad header). Fields are split on raw tab characters,
// no quoting or escaping is interpreted. Rows with fewer fields than the
// header are padded with empty strings; rows with more are a parse error.
func Read(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t := &Table{Path: path}

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNo := 0
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		lineNo++

		if lineNo == 1 {
			t.Header = strings.Split(line, "\t")
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) > len(t.Header) {
			return nil, fmt.Errorf("%s: line %d: %d fields, header has %d", path, lineNo, len(fields), len(t.Header))
		}
		for len(fields) < 3 {
			fields = append(fields, "")
		}
		t.Records = append(t.Records, Record{Key: fields[0], Text: fields[1], Tooltip: fields[2]})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if t.Header == nil {
		return nil, fmt.Errorf("%s: empty file, missing header", path)
	}
	return t, nil
}

// Write serializes the table to path, creating parent directories as
// needed. The canonical header is always written; a table read with a bad
// header should not reach this point.
func Write(path string, t *Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString(strings.Join(Columns, "\t"))
	b.WriteByte('\n')
	for _, r := range t.Records {
		b.WriteString(r.Key)
		b.WriteByte('\t')
		b.WriteString(r.Text)
		b.WriteByte('\t')
		b.WriteString(r.Tooltip)
		b.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// ListShards returns the shard file names (not full paths) in dir, sorted.
func ListShards(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), FileSuffix) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// DirLookup folds every shard in dir into a single key -> text map,
// last occurrence wins across files (files visited in sorted order).
func DirLookup(dir string) (map[string]string, error) {
	names, err := ListShards(dir)
	if err != nil {
		return nil, err
	}
	m := make(map[string]string)
	for _, name := range names {
		t, err := Read(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		for k, v := range t.Lookup() {
			m[k] = v
		}
	}
	return m, nil
}
