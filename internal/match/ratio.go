package match

import "strings"

// TokenSortRatio compares two strings after normalizing and sorting their
// tokens, making the score tolerant of token reordering ("first_name" vs
// "NameFirst"). Scale is 0-100.
func TokenSortRatio(a, b string) float64 {
	return Ratio(strings.Join(SortedTokens(a), " "), strings.Join(SortedTokens(b), " "))
}

// TokenSetRatio compares two strings by their token sets: the shared token
// core is scored against each side's full token list and the best pairing
// wins. Tolerant of partial overlap ("customer.address.city" vs
// "city"). Scale is 0-100.
func TokenSetRatio(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)

	if len(setA) == 0 && len(setB) == 0 {
		return 100
	}

	var shared, onlyA, onlyB []string

	for _, t := range setA {
		if containsToken(setB, t) {
			shared = append(shared, t)
		} else {
			onlyA = append(onlyA, t)
		}
	}

	for _, t := range setB {
		if !containsToken(setA, t) {
			onlyB = append(onlyB, t)
		}
	}

	core := strings.Join(shared, " ")
	full1 := strings.TrimSpace(core + " " + strings.Join(onlyA, " "))
	full2 := strings.TrimSpace(core + " " + strings.Join(onlyB, " "))

	score := Ratio(full1, full2)

	if core != "" {
		score = max(score, Ratio(core, full1), Ratio(core, full2))
	}

	return score
}

// tokenSet returns the sorted distinct normalized tokens of s.
func tokenSet(s string) []string {
	var set []string

	for _, t := range SortedTokens(s) {
		if !containsToken(set, t) {
			set = append(set, t)
		}
	}

	return set
}

func containsToken(tokens []string, t string) bool {
	for _, e := range tokens {
		if e == t {
			return true
		}
	}

	return false
}
