// Package slug builds URL path segments from display names.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Letters that do not decompose into an ASCII base plus a combining mark.
var special = strings.NewReplacer(
	"ı", "i", "ø", "o", "ß", "ss", "æ", "ae", "œ", "oe", "đ", "d", "ł", "l", "&", " and ",
)

// Generate creates a URL-friendly slug from name: lower case ASCII letters
// and digits separated by single hyphens. Accents are stripped.
//
//	"Crème Brûlée Latte" → "creme-brulee-latte"
//	"Matcha & Oat  Milk!" → "matcha-and-oat-milk"
func Generate(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = special.Replace(s)

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if stripped, _, err := transform.String(t, s); err == nil {
		s = stripped
	}

	return strings.Trim(nonAlnum.ReplaceAllString(s, "-"), "-")
}
