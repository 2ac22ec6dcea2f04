package match

import (
	"sort"
	"strings"
	"unicode"
)

// NormalizeIdent normalizes a field or path name for fuzzy matching:
// CamelCase is tokenized, everything is lowercased, and separators are
// stripped.
func NormalizeIdent(s string) string {
	return strings.Join(TokenizeIdent(s), "")
}

// TokenizeIdent splits an identifier or path into normalized lowercase
// tokens. Separators include the path punctuation used by field trees
// (dots, array markers, attribute prefixes).
func TokenizeIdent(s string) []string {
	tokens := tokenizeCamelCase(s)
	for i, t := range tokens {
		tokens[i] = strings.ToLower(t)
	}

	return tokens
}

// SortedTokens returns the normalized tokens in sorted order.
func SortedTokens(s string) []string {
	tokens := TokenizeIdent(s)
	sort.Strings(tokens)

	return tokens
}

// tokenizeCamelCase splits a CamelCase or camelCase string into tokens.
// Examples:
//   - "OrderID" -> ["Order", "ID"]
//   - "customerName" -> ["customer", "Name"]
//   - "XMLParser" -> ["XML", "Parser"]
func tokenizeCamelCase(s string) []string {
	if s == "" {
		return nil
	}

	var tokens []string

	var current strings.Builder

	runes := []rune(s)
	for i := range runes {
		r := runes[i]

		if isSeparator(r) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}

			continue
		}

		if i > 0 && shouldStartNewToken(runes, i) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// isSeparator covers word separators and field-path punctuation.
func isSeparator(r rune) bool {
	switch r {
	case '_', '-', ' ', '.', '@', '[', ']', '*', '$':
		return true
	default:
		return false
	}
}

// shouldStartNewToken determines if a new token starts at position i.
func shouldStartNewToken(runes []rune, i int) bool {
	r := runes[i]
	prev := runes[i-1]
	isUpper := unicode.IsUpper(r)
	isPrevUpper := unicode.IsUpper(prev)

	// Transition from lowercase to uppercase: "orderID" splits before 'I'.
	if isUpper && !isPrevUpper && !isSeparator(prev) {
		return true
	}

	// End of an acronym: "XMLParser" splits before 'P'.
	hasNextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

	return isUpper && isPrevUpper && hasNextLower
}
