// Package search implements the product list's token matching: the query is
// split on commas/whitespace, a token that exactly names a zone narrows the
// list to that zone, and the remaining tokens must all appear in the
// product's searchable text.
package search

import "strings"

// ParseTokens splits a raw query into non-empty tokens.
func ParseTokens(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// ExtractZoneOverride returns the first token that exactly matches a zone
// name, if any. The matched token still participates in text matching, same
// as the original behavior.
func ExtractZoneOverride(tokens, zoneNames []string) (string, bool) {
	for _, t := range tokens {
		for _, z := range zoneNames {
			if t == z {
				return z, true
			}
		}
	}
	return "", false
}

// TokensMatch reports whether every token appears in text,
// case-insensitively. An empty token list matches everything.
func TokensMatch(text string, tokens []string) bool {
	haystack := strings.ToLower(text)
	for _, t := range tokens {
		if !strings.Contains(haystack, strings.ToLower(t)) {
			return false
		}
	}
	return true
}
