// Package luapatch substitutes translated strings into a named string
// table embedded in a Lua source file.
//
// Inside the selected table it rewrites assignments shaped
//
//	key = "Text"
//	["key"] = "Text"
//
// by deriving the corpus key as <prefix>_<luaKey> (or the bare luaKey when
// no prefix is configured) and inserting the translation when one exists
// and differs from every configured upstream text.
package luapatch

import (
	"fmt"
	"os"
	"regexp"
)

// assignRe matches one assignment row inside a table body. Group 1 is the
// left-hand side, group 3 a bracket-quoted key, group 4 a plain identifier
// key, group 5 the text.
var assignRe = regexp.MustCompile(`((\[\s*"([^"]+)"\s*\])|([A-Za-z0-9_]+))\s*=\s*"([^"]*)"`)

// Options configures one patch run.
type Options struct {
	// TableName is the Lua table to rewrite; other tables are untouched.
	TableName string

	// Prefix is prepended (with an underscore) to each Lua key to form
	// the corpus key. Empty means the Lua key is used as-is.
	Prefix string

	// Translations maps corpus keys to translated text.
	Translations map[string]string

	// Upstreams are original-text lookups; a translation equal to any of
	// them carries no new information and is not substituted.
	Upstreams []map[string]string
}

// Patch rewrites the table body inside src and returns the patched source
// plus the number of substituted assignments. Only the first occurrence of
// the named table is patched. An absent table yields zero substitutions.
func Patch(src string, opts Options) (string, int) {
	tableRe, err := tableRegexp(opts.TableName)
	if err != nil {
		return src, 0
	}
	loc := tableRe.FindStringSubmatchIndex(src)
	if loc == nil {
		return src, 0
	}

	// Submatch 1 is the table body.
	bodyStart, bodyEnd := loc[2], loc[3]
	body, updated := patchBody(src[bodyStart:bodyEnd], opts)
	if updated == 0 {
		return src, 0
	}
	return src[:bodyStart] + body + src[bodyEnd:], updated
}

// PatchFile applies Patch to a file in place. The rewritten source is only
// written when at least one assignment changed.
func PatchFile(path string, opts Options) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	patched, updated := Patch(string(raw), opts)
	if updated == 0 {
		return 0, nil
	}
	if err := os.WriteFile(path, []byte(patched), 0o644); err != nil {
		return 0, err
	}
	return updated, nil
}

func tableRegexp(name string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?ms)^[ \t]*` + regexp.QuoteMeta(name) + `\s*=\s*\{(.*?)^[ \t]*\}`)
}

func patchBody(body string, opts Options) (string, int) {
	updated := 0
	out := assignRe.ReplaceAllStringFunc(body, func(m string) string {
		sub := assignRe.FindStringSubmatch(m)
		luaKey := sub[3]
		if luaKey == "" {
			luaKey = sub[4]
		}
		fullKey := luaKey
		if opts.Prefix != "" {
			fullKey = opts.Prefix + "_" + luaKey
		}

		translated := opts.Translations[fullKey]
		if translated == "" {
			return m
		}
		for _, up := range opts.Upstreams {
			if translated == up[fullKey] {
				return m
			}
		}

		updated++
		return fmt.Sprintf(`%s = "%s"`, sub[1], translated)
	})
	return out, updated
}
