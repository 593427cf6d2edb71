package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// normalizeTag trims surrounding space and puts the tag in NFC so that
// visually identical spellings are stored identically.
func normalizeTag(tag string) string {
	return norm.NFC.String(strings.TrimSpace(tag))
}

// sameTag reports whether two tags are equal under Unicode case folding
// ("Straße" and "STRASSE" are the same tag).
func sameTag(a, b string) bool {
	if a == b {
		return true
	}
	fold := cases.Fold()
	return fold.String(norm.NFC.String(a)) == fold.String(norm.NFC.String(b))
}
