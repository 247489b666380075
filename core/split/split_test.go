package split

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"locsync/core/table"
)

func rec(key, text string) table.Record {
	return table.Record{Key: key, Text: text}
}

func TestApplyFillsUntranslated(t *testing.T) {
	reference := table.New(rec("A", "Hello"), rec("B", "World"))
	current := table.New(rec("A", "Hello"), rec("B", "Monde"))
	master := map[string]string{"A": "Salut", "B": "Terre"}

	updated, changed := Apply(reference, current, master)
	assert.Equal(t, 1, changed)
	assert.Equal(t, "Salut", updated.Records[0].Text)
	assert.Equal(t, "Monde", updated.Records[1].Text, "translated rows are never overwritten")
}

func TestApplySkipsReservedRows(t *testing.T) {
	reference := table.New(
		rec(table.ServicePrefix+"meta", "Internal"),
		rec("A", "Hello"),
	)
	current := reference.Clone()
	master := map[string]string{
		table.ServicePrefix + "meta": "Changed",
		"A":                          "Salut",
	}

	updated, changed := Apply(reference, current, master)
	assert.Equal(t, 1, changed)
	assert.Equal(t, "Internal", updated.Records[0].Text, "reserved rows stay byte-identical")
	assert.Equal(t, "Salut", updated.Records[1].Text)
}

func TestApplyMasterEqualToReferenceIgnored(t *testing.T) {
	reference := table.New(rec("A", "Hello"))
	current := reference.Clone()

	_, changed := Apply(reference, current, map[string]string{"A": "Hello"})
	assert.Equal(t, 0, changed)
}

func TestApplyMissingOrEmptyMasterEntryIgnored(t *testing.T) {
	reference := table.New(rec("A", "Hello"), rec("B", "World"))
	current := reference.Clone()

	_, changed := Apply(reference, current, map[string]string{"A": ""})
	assert.Equal(t, 0, changed)
}

func TestRunSeedsMissingShard(t *testing.T) {
	root := t.TempDir()
	refDir := filepath.Join(root, "ref")
	outDir := filepath.Join(root, "out")
	require.NoError(t, os.MkdirAll(refDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(refDir, "units.loc.tsv"),
		[]byte("key\ttext\ttooltip\nA\tHello\t\nB\tWorld\t\n"), 0o644))
	masterPath := filepath.Join(root, "master.loc.tsv")
	require.NoError(t, os.WriteFile(masterPath,
		[]byte("key\ttext\ttooltip\nA\tSalut\t\n"), 0o644))

	outcomes, err := Run(context.Background(), Options{
		MasterFile:   masterPath,
		ReferenceDir: refDir,
		OutputDir:    outDir,
	}, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.True(t, outcomes[0].Seeded)
	assert.True(t, outcomes[0].Written)
	assert.Equal(t, 1, outcomes[0].Updated)

	out, err := table.Read(filepath.Join(outDir, "units.loc.tsv"))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"A": "Salut", "B": "World"}, out.Lookup())
}

func TestRunSecondPassWritesNothing(t *testing.T) {
	root := t.TempDir()
	refDir := filepath.Join(root, "ref")
	outDir := filepath.Join(root, "out")
	require.NoError(t, os.MkdirAll(refDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(refDir, "units.loc.tsv"),
		[]byte("key\ttext\ttooltip\nA\tHello\t\n"), 0o644))
	masterPath := filepath.Join(root, "master.loc.tsv")
	require.NoError(t, os.WriteFile(masterPath,
		[]byte("key\ttext\ttooltip\nA\tSalut\t\n"), 0o644))

	opts := Options{MasterFile: masterPath, ReferenceDir: refDir, OutputDir: outDir}

	_, err := Run(context.Background(), opts, zap.NewNop())
	require.NoError(t, err)

	outPath := filepath.Join(outDir, "units.loc.tsv")
	before, err := os.Stat(outPath)
	require.NoError(t, err)

	outcomes, err := Run(context.Background(), opts, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.False(t, outcomes[0].Written)
	assert.Equal(t, 0, outcomes[0].Updated)

	after, err := os.Stat(outPath)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime(), "unchanged shard must not be rewritten")
}

func TestRunSeedsEvenWithZeroUpdates(t *testing.T) {
	root := t.TempDir()
	refDir := filepath.Join(root, "ref")
	outDir := filepath.Join(root, "out")
	require.NoError(t, os.MkdirAll(refDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(refDir, "units.loc.tsv"),
		[]byte("key\ttext\ttooltip\nA\tHello\t\n"), 0o644))
	masterPath := filepath.Join(root, "master.loc.tsv")
	require.NoError(t, os.WriteFile(masterPath,
		[]byte("key\ttext\ttooltip\nZ\tUnrelated\t\n"), 0o644))

	outcomes, err := Run(context.Background(), Options{
		MasterFile:   masterPath,
		ReferenceDir: refDir,
		OutputDir:    outDir,
	}, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.True(t, outcomes[0].Written, "first seed is written even with zero updates")
	assert.Equal(t, 0, outcomes[0].Updated)

	out, err := table.Read(filepath.Join(outDir, "units.loc.tsv"))
	require.NoError(t, err)
	assert.Equal(t, "Hello", out.Records[0].Text)
}

func TestRunMissingMasterFatal(t *testing.T) {
	_, err := Run(context.Background(), Options{
		MasterFile:   filepath.Join(t.TempDir(), "nope.loc.tsv"),
		ReferenceDir: t.TempDir(),
		OutputDir:    t.TempDir(),
	}, zap.NewNop())
	assert.Error(t, err)
}
