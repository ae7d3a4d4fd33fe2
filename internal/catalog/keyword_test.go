package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchKeyword(t *testing.T) {
	tests := []struct {
		name    string
		product string
		keyword string
		want    bool
	}{
		{"empty keyword matches", "Caramel Latte", "", true},
		{"whitespace keyword matches", "Caramel Latte", "   ", true},
		{"word match", "Caramel Latte", "latte", true},
		{"word match with typo", "Caramel Latte", "late", true},
		{"case insensitive", "Caramel Latte", "LATTE", true},
		{"whole name match", "Chai", "chia", true},
		{"unrelated keyword", "Caramel Latte", "xyz", false},
		{"short words skipped", "Cup of Joe", "xof", false},
		{"too far from any word", "Blueberry Muffin", "sandwich", false},
		{"keyword trimmed", "Green Tea", "  green  ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchKeyword(tt.product, tt.keyword))
		})
	}
}

func TestMatchKeywordWithThreshold(t *testing.T) {
	assert.False(t, MatchKeywordWithThreshold("Caramel Latte", "late", 0))
	assert.True(t, MatchKeywordWithThreshold("Caramel Latte", "latte", 0))
	assert.True(t, MatchKeywordWithThreshold("Caramel Latte", "lattes", 1))
}

func TestMatchKeyword_UnicodeLowercase(t *testing.T) {
	assert.True(t, MatchKeyword("CRÈME BRÛLÉE", "crème"))
}
