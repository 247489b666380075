package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordPredicates(t *testing.T) {
	assert.True(t, Record{Key: ""}.IsService())
	assert.True(t, Record{Key: "   "}.IsService())
	assert.False(t, Record{Key: "ui_button_ok"}.IsService())

	assert.True(t, Record{Key: "#Loc;header"}.IsReserved())
	assert.False(t, Record{Key: "loc_key"}.IsReserved())
}

func TestLookupLastWins(t *testing.T) {
	tbl := New(
		Record{Key: "a", Text: "first"},
		Record{Key: "b", Text: "only"},
		Record{Key: "", Text: "service"},
		Record{Key: "a", Text: "second"},
	)

	m := tbl.Lookup()
	assert.Equal(t, "second", m["a"], "last occurrence must win")
	assert.Equal(t, "only", m["b"])
	assert.NotContains(t, m, "", "service rows are excluded from lookups")
	assert.Len(t, m, 2)
}

func TestIndexLastWins(t *testing.T) {
	tbl := New(
		Record{Key: "a", Text: "first", Tooltip: "tip1"},
		Record{Key: "a", Text: "second", Tooltip: "tip2"},
	)

	idx := tbl.Index()
	assert.Equal(t, "second", idx["a"].Text)
	assert.Equal(t, "tip2", idx["a"].Tooltip, "last occurrence wins for the whole record")
}

func TestKeySet(t *testing.T) {
	tbl := New(
		Record{Key: "a"},
		Record{Key: ""},
		Record{Key: "b"},
		Record{Key: "a"},
	)

	s := tbl.KeySet()
	assert.Len(t, s, 2)
	assert.Contains(t, s, "a")
	assert.Contains(t, s, "b")
}

func TestCloneIsDeep(t *testing.T) {
	orig := New(Record{Key: "a", Text: "x"})
	c := orig.Clone()
	c.Records[0].Text = "y"

	assert.Equal(t, "x", orig.Records[0].Text)
	assert.Equal(t, "y", c.Records[0].Text)
}
