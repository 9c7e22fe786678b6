package utils

import (
	"strings"
)

// NormalizeName lowercases a name and collapses runs of whitespace, so
// "MAX  Verstappen" and "max verstappen" compare equal.
func NormalizeName(name string) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(name)))
	return strings.Join(fields, " ")
}

// NameMatches reports whether a free-text query matches a driver name.
// Matching is case-insensitive: the query matches when it is a
// substring of the name, or when every query token is a prefix of some
// name token ("m verstappen", "lec", "hamil").
func NameMatches(name, query string) bool {
	name = NormalizeName(name)
	query = NormalizeName(query)
	if name == "" || query == "" {
		return false
	}

	if strings.Contains(name, query) {
		return true
	}

	nameTokens := strings.Fields(name)
	for _, qt := range strings.Fields(query) {
		if !tokenHasPrefix(nameTokens, qt) {
			return false
		}
	}
	return true
}

func tokenHasPrefix(tokens []string, prefix string) bool {
	for _, t := range tokens {
		if strings.HasPrefix(t, prefix) {
			return true
		}
	}
	return false
}
