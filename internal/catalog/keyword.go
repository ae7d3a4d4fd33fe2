package catalog

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// DefaultMatchThreshold is the largest edit distance still treated as a match.
	DefaultMatchThreshold = 3

	// minWordLength is the shortest name word compared on its own. Shorter
	// words ("of", "the") would match almost any short keyword.
	minWordLength = 4
)

var lower = cases.Lower(language.Und)

// MatchKeyword reports whether a product name matches a search keyword using
// DefaultMatchThreshold.
func MatchKeyword(name, keyword string) bool {
	return MatchKeywordWithThreshold(name, keyword, DefaultMatchThreshold)
}

// MatchKeywordWithThreshold reports whether keyword is within threshold edits
// of the whole product name or of any name word of at least four runes. An
// empty keyword matches every name.
func MatchKeywordWithThreshold(name, keyword string, threshold int) bool {
	keyword = normalize(keyword)
	if keyword == "" {
		return true
	}
	name = normalize(name)

	if Distance(keyword, name) <= threshold {
		return true
	}

	for _, word := range strings.Split(name, " ") {
		if utf8.RuneCountInString(word) < minWordLength {
			continue
		}
		if Distance(keyword, word) <= threshold {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return lower.String(strings.TrimSpace(s))
}
