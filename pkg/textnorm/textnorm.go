// Package textnorm canonicalises user-supplied text before it is compared or stored.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Email returns the canonical form of an address: NFKC, trimmed, lower-cased.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFKC.String(s)))
}

// Text trims s, composes it to NFC and collapses runs of whitespace.
func Text(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

// Fold removes diacritics and lower-cases s ("Étudiant" -> "etudiant").
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(result)
}

// List splits comma separated values, normalises each one and drops empties.
func List(values ...string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if p := Text(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
