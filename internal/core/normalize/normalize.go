// Package normalize cleans user supplied search and filter text.
// Term keeps the user's casing and inner spacing for the database (ILIKE does
// its own case handling); Lower is the in-memory counterpart used when
// matching without a database
package normalize

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"
)

// pool of fresh lowercasers; cases.Caser is stateful and not safe for concurrent use
var lowerPool = sync.Pool{
	New: func() any { return cases.Lower(language.Und) },
}

// Term sanitizes s and trims the edges. Inner whitespace is kept as typed,
// so a term matches exactly the text it was copied from
func Term(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(Sanitize(s))
}

// Lower returns the lowercase form of s. Unlike full case folding it leaves
// ß and similar runes alone, which is what postgres lower() and ILIKE do
func Lower(s string) string {
	if s == "" {
		return ""
	}
	c := lowerPool.Get().(cases.Caser)
	out, _, _ := transform.String(c, s)
	c.Reset()
	lowerPool.Put(c)
	return out
}

// ContainsFold reports whether needle occurs in haystack once both are lowercased
func ContainsFold(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(Lower(haystack), Lower(needle))
}
