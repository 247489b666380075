package luapatch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const luaSrc = `local helpers = require "helpers"

strings = {
    title = "New Campaign",
    ["start.button"] = "Start",
    empty = "",
}

other = {
    title = "Untouched",
}
`

func TestPatchPlainAndBracketKeys(t *testing.T) {
	out, updated := Patch(luaSrc, Options{
		TableName: "strings",
		Translations: map[string]string{
			"title":        "Nouvelle campagne",
			"start.button": "Commencer",
		},
	})

	assert.Equal(t, 2, updated)
	assert.Contains(t, out, `title = "Nouvelle campagne",`)
	assert.Contains(t, out, `["start.button"] = "Commencer",`)
	assert.Contains(t, out, `empty = "",`)
}

func TestPatchOtherTablesUntouched(t *testing.T) {
	out, updated := Patch(luaSrc, Options{
		TableName:    "strings",
		Translations: map[string]string{"title": "Nouveau"},
	})

	assert.Equal(t, 1, updated)
	assert.Contains(t, out, "other = {\n    title = \"Untouched\",\n}")
}

func TestPatchWithPrefix(t *testing.T) {
	out, updated := Patch(luaSrc, Options{
		TableName:    "strings",
		Prefix:       "frontend",
		Translations: map[string]string{"frontend_title": "Nouvelle campagne"},
	})

	assert.Equal(t, 1, updated)
	assert.Contains(t, out, `title = "Nouvelle campagne",`)
	assert.Contains(t, out, `["start.button"] = "Start",`)
}

func TestPatchSkipsTranslationEqualToUpstream(t *testing.T) {
	_, updated := Patch(luaSrc, Options{
		TableName:    "strings",
		Translations: map[string]string{"title": "New Campaign"},
		Upstreams:    []map[string]string{{"title": "New Campaign"}},
	})
	assert.Equal(t, 0, updated)
}

func TestPatchSkipsEmptyTranslation(t *testing.T) {
	_, updated := Patch(luaSrc, Options{
		TableName:    "strings",
		Translations: map[string]string{"title": ""},
	})
	assert.Equal(t, 0, updated)
}

func TestPatchMissingTableIsNoop(t *testing.T) {
	out, updated := Patch(luaSrc, Options{
		TableName:    "does_not_exist",
		Translations: map[string]string{"title": "X"},
	})
	assert.Equal(t, 0, updated)
	assert.Equal(t, luaSrc, out)
}

func TestPatchFirstTableOccurrenceOnly(t *testing.T) {
	src := "strings = {\n  a = \"one\",\n}\n\nstrings = {\n  a = \"one\",\n}\n"
	out, updated := Patch(src, Options{
		TableName:    "strings",
		Translations: map[string]string{"a": "un"},
	})

	assert.Equal(t, 1, updated)
	assert.Contains(t, out, `a = "un",`)
	assert.Contains(t, out, `a = "one",`)
}

func TestPatchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frontend_strings.lua")
	require.NoError(t, os.WriteFile(path, []byte(luaSrc), 0o644))

	updated, err := PatchFile(path, Options{
		TableName:    "strings",
		Translations: map[string]string{"title": "Nouvelle campagne"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `title = "Nouvelle campagne",`)
}

func TestPatchFileNoChangesLeavesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frontend_strings.lua")
	require.NoError(t, os.WriteFile(path, []byte(luaSrc), 0o644))
	before, err := os.Stat(path)
	require.NoError(t, err)

	updated, err := PatchFile(path, Options{TableName: "strings"})
	require.NoError(t, err)
	assert.Equal(t, 0, updated)

	after, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime())
}
