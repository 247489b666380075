package table

import "strings"

// UnescapeField applies the storage quoting convention to a single field:
// a field entirely wrapped in double quotes has the outer pair stripped
// once, and doubled double-quote characters inside collapse to a literal
// quote. Sequences like `""""` need repeated collapsing.
func UnescapeField(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	for strings.Contains(s, `""`) {
		s = strings.ReplaceAll(s, `""`, `"`)
	}
	return s
}

// UnescapeTexts rewrites the text column of every record in place and
// returns the number of records that changed. Keys, tooltips and row
// order are untouched.
func (t *Table) UnescapeTexts() int {
	changed := 0
	for i := range t.Records {
		u := UnescapeField(t.Records[i].Text)
		if u != t.Records[i].Text {
			t.Records[i].Text = u
			changed++
		}
	}
	return changed
}
