// Package typoutil implements typo-tolerant term matching for fuzzy queries.
package typoutil

// DamerauLevenshteinWithLimit computes the Damerau-Levenshtein distance
// between two strings (insertions, deletions, substitutions, transpositions),
// working on runes. Returns maxDistance + 1 as soon as the distance provably
// exceeds maxDistance.
func DamerauLevenshteinWithLimit(a, b string, maxDistance int) int {
	runesA := []rune(a)
	runesB := []rune(b)

	lenA := len(runesA)
	lenB := len(runesB)

	lengthDiff := lenA - lenB
	if lengthDiff < 0 {
		lengthDiff = -lengthDiff
	}
	if lengthDiff > maxDistance {
		return maxDistance + 1
	}

	if lenA == 0 {
		return lenB
	}
	if lenB == 0 {
		return lenA
	}

	// Three rolling rows: transpositions look two rows back.
	prevPrevRow := make([]int, lenB+1)
	prevRow := make([]int, lenB+1)
	currRow := make([]int, lenB+1)

	for j := 0; j <= lenB; j++ {
		prevRow[j] = j
	}

	for i := 1; i <= lenA; i++ {
		currRow[0] = i
		minInRow := i

		for j := 1; j <= lenB; j++ {
			cost := 0
			if runesA[i-1] != runesB[j-1] {
				cost = 1
			}

			deletion := prevRow[j] + 1
			insertion := currRow[j-1] + 1
			substitution := prevRow[j-1] + cost

			currRow[j] = min3(deletion, insertion, substitution)

			if i > 1 && j > 1 &&
				runesA[i-1] == runesB[j-2] &&
				runesA[i-2] == runesB[j-1] {
				transposition := prevPrevRow[j-2] + cost
				if transposition < currRow[j] {
					currRow[j] = transposition
				}
			}

			if currRow[j] < minInRow {
				minInRow = currRow[j]
			}
		}

		// Every cell of later rows is at least the row minimum, so the final
		// distance cannot come back under maxDistance.
		if minInRow > maxDistance {
			return maxDistance + 1
		}

		prevPrevRow, prevRow, currRow = prevRow, currRow, prevPrevRow
	}

	return prevRow[lenB]
}

// MaxDistanceForTerm applies the "auto" fuzziness policy: terms shorter than
// minLenFor1 must match exactly, terms shorter than minLenFor2 allow one
// edit, anything longer allows two.
func MaxDistanceForTerm(term string, minLenFor1, minLenFor2 int) int {
	length := len([]rune(term))
	switch {
	case length >= minLenFor2:
		return 2
	case length >= minLenFor1:
		return 1
	default:
		return 0
	}
}

// FindWithinDistance returns the candidates whose Damerau-Levenshtein
// distance from term is in [1, maxDistance]. Exact matches are excluded;
// the caller handles those separately.
func FindWithinDistance(term string, candidates []string, maxDistance int) []string {
	matches := make([]string, 0)
	if maxDistance <= 0 || term == "" {
		return matches
	}
	for _, candidate := range candidates {
		if candidate == term {
			continue
		}
		dist := DamerauLevenshteinWithLimit(term, candidate, maxDistance)
		if dist > 0 && dist <= maxDistance {
			matches = append(matches, candidate)
		}
	}
	return matches
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
