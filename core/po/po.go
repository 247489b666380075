// Package po exports a bilingual corpus to the GNU gettext PO catalog
// format: msgctxt carries the key, msgid the reference text and msgstr the
// current translation.
package po

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Options controls catalog generation.
type Options struct {
	// SourceName is recorded in the header as the originating shard file.
	SourceName string

	// Language is the catalog's Language header field.
	Language string

	// Now stamps the POT-Creation-Date header; zero means time.Now.
	Now time.Time
}

// Entry is one bilingual unit, already filtered and ordered by the caller
// of Render or produced by Export.
type Entry struct {
	Key       string
	Reference string
	Current   string
}

// Escape makes a text safe inside a PO string: backslashes first, then
// double quotes.
func Escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

// Render produces the catalog text for the given entries.
func Render(entries []Entry, opts Options) string {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	lang := opts.Language
	if lang == "" {
		lang = "uk"
	}

	var b strings.Builder
	b.WriteString("msgid \"\"\n")
	b.WriteString("msgstr \"\"\n")
	b.WriteString("\"Project-Id-Version: locsync\\n\"\n")
	fmt.Fprintf(&b, "\"POT-Creation-Date: %s\\n\"\n", now.Format("2006-01-02"))
	fmt.Fprintf(&b, "\"Language: %s\\n\"\n", lang)
	b.WriteString("\"Content-Type: text/plain; charset=UTF-8\\n\"\n")
	fmt.Fprintf(&b, "\"X-Source-File: %s\\n\"\n\n", opts.SourceName)

	for _, e := range entries {
		fmt.Fprintf(&b, "msgctxt %q\n", e.Key)
		fmt.Fprintf(&b, "msgid \"%s\"\n", Escape(e.Reference))
		fmt.Fprintf(&b, "msgstr \"%s\"\n\n", Escape(e.Current))
	}
	return b.String()
}

// WriteFile renders the entries and writes the catalog, creating parent
// directories as needed.
func WriteFile(path string, entries []Entry, opts Options) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(Render(entries, opts)), 0o644)
}
