package catalog

import "slices"

// MatchCategory reports whether category is among the selected categories.
// An empty selection applies no filter. Membership is case-sensitive.
func MatchCategory(category string, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	return slices.Contains(selected, category)
}
