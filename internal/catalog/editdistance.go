// Package catalog implements product discovery over an in-memory catalog:
// fuzzy keyword matching, category filtering and multi-option sorting.
package catalog

// Distance returns the Levenshtein distance between a and b: the minimum
// number of single-rune insertions, deletions and substitutions needed to
// turn a into b. Comparison is case-sensitive.
func Distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	// Two rolling rows over b; prev[j] is the distance between ra[:i-1] and rb[:j].
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}
