// Package catalog implements the read-only query engine behind the portal:
// filtering, lookups and derived statistics over projects, enrollments and
// certificates. Every function is pure and leaves its inputs untouched.
package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify normalizes free text into a stable comparison key: diacritics are
// removed, letters lowercased, and whitespace runs collapsed into a single
// hyphen with no leading or trailing hyphen.
//
//	Slugify("Ciência da Computação") == "ciencia-da-computacao"
func Slugify(s string) string {
	// transform.Chain keeps internal state, so build one per call
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), "-")
}

// containsFold reports whether needle is a case-insensitive substring of haystack
func containsFold(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
