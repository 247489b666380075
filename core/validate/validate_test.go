package validate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locsync/core/table"
)

func TestCheckCleanTable(t *testing.T) {
	tbl := table.New(
		table.Record{Key: "a", Text: "Hello"},
		table.Record{Key: "b", Text: "World"},
	)

	assert.Empty(t, Check(tbl))
}

func TestCheckBadShape(t *testing.T) {
	tbl := &table.Table{
		Path:   "bad.loc.tsv",
		Header: []string{"key", "value"},
	}

	findings := Check(tbl)
	require.Len(t, findings, 1)
	assert.Equal(t, BadShape, findings[0].Kind)
	assert.Equal(t, Fatal, findings[0].Severity)
	assert.Equal(t, table.Columns, findings[0].Expected)
	assert.Equal(t, []string{"key", "value"}, findings[0].Actual)
}

func TestCheckEmptyKeyIsWarning(t *testing.T) {
	tbl := table.New(
		table.Record{Key: "a", Text: "x"},
		table.Record{Key: "", Text: "service"},
		table.Record{Key: " ", Text: "also service"},
	)

	findings := Check(tbl)
	require.Len(t, findings, 1)
	assert.Equal(t, EmptyKey, findings[0].Kind)
	assert.Equal(t, Warning, findings[0].Severity)
	// Line numbers are 1-based with the header on line 1.
	assert.Equal(t, []int{3, 4}, findings[0].Lines)
}

func TestCheckDuplicateKeys(t *testing.T) {
	tbl := table.New(
		table.Record{Key: "a"},
		table.Record{Key: "b"},
		table.Record{Key: "a"},
		table.Record{Key: "b"},
		table.Record{Key: "a"},
	)

	findings := Check(tbl)
	require.Len(t, findings, 2)

	assert.Equal(t, DuplicateKey, findings[0].Kind)
	assert.Equal(t, Error, findings[0].Severity)
	assert.Equal(t, "a", findings[0].Key)
	assert.Equal(t, []int{2, 4, 6}, findings[0].Lines)

	assert.Equal(t, "b", findings[1].Key)
	assert.Equal(t, []int{3, 5}, findings[1].Lines)
}

func TestCheckDuplicateEmptyKeysNotDuplicates(t *testing.T) {
	tbl := table.New(
		table.Record{Key: ""},
		table.Record{Key: ""},
	)

	findings := Check(tbl)
	require.Len(t, findings, 1)
	assert.Equal(t, EmptyKey, findings[0].Kind)
}

func TestBlocking(t *testing.T) {
	assert.False(t, Blocking(nil))
	assert.False(t, Blocking([]Finding{{Severity: Warning}}))
	assert.True(t, Blocking([]Finding{{Severity: Warning}, {Severity: Error}}))
	assert.True(t, Blocking([]Finding{{Severity: Fatal}}))
}

func TestCheckDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "good.loc.tsv"),
		[]byte("key\ttext\ttooltip\na\tx\t\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dups.loc.tsv"),
		[]byte("key\ttext\ttooltip\na\tx\t\na\ty\t\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.loc.tsv"),
		[]byte("key\ttext\ttooltip\na\tb\tc\td\n"), 0o644))

	findings, err := CheckDir(dir)
	require.NoError(t, err)
	require.Len(t, findings, 2)

	// Sorted file order: broken before dups.
	assert.Equal(t, Unreadable, findings[0].Kind)
	assert.Equal(t, "broken.loc.tsv", findings[0].File)
	assert.Equal(t, DuplicateKey, findings[1].Kind)
	assert.Equal(t, "dups.loc.tsv", findings[1].File)
}

func TestCheckDirMissingIsEmpty(t *testing.T) {
	findings, err := CheckDir(filepath.Join(t.TempDir(), "nope"))
	assert.NoError(t, err)
	assert.Empty(t, findings)
}

func TestFindingString(t *testing.T) {
	f := Finding{Kind: DuplicateKey, File: "x.loc.tsv", Key: "dup", Lines: []int{2, 5}}
	assert.Contains(t, f.String(), "dup")
	assert.Contains(t, f.String(), "2, 5")
}
