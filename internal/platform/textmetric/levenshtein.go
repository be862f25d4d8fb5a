// Package textmetric provides the string-distance and normalization primitives
// used by player identity matching.
package textmetric

// EditDistance returns the Levenshtein distance between a and b: the minimum
// number of single-character insertions, deletions, or substitutions needed to
// transform one string into the other.
func EditDistance(a, b string) int {
	if len(a) == 0 {
		return len([]rune(b))
	}
	if len(b) == 0 {
		return len([]rune(a))
	}

	ra := []rune(a)
	rb := []rune(b)

	// Two rolling rows instead of the full (len(a)+1) x (len(b)+1) table.
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

// Similarity returns a normalized similarity score between a and b in [0, 1].
// An empty input on either side scores 0.0: there is no basis for comparison,
// so two empty strings are not treated as identical.
func Similarity(a, b string) float64 {
	la := len([]rune(a))
	lb := len([]rune(b))
	if la == 0 || lb == 0 {
		return 0.0
	}

	return 1.0 - float64(EditDistance(a, b))/float64(max(la, lb))
}
