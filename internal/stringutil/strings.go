// Package stringutil provides common string manipulation utilities.
package stringutil

import (
	"strings"
	"unicode"
)

// CollapseSpaces trims the string and collapses internal whitespace runs
// to a single space. Inbound chat messages often carry doubled spaces or
// trailing newlines from mobile keyboards.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// TitleCaseName capitalizes the first letter of each word and lowercases
// the rest. Used when echoing person names back to the user, since names
// stored by the registrar are all-caps and extracted names are lowercase.
//
// Example:
//
//	TitleCaseName("RAMESH PATEL") returns "Ramesh Patel"
//	TitleCaseName("ramesh") returns "Ramesh"
func TitleCaseName(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		if len(runes) > 0 {
			runes[0] = unicode.ToUpper(runes[0])
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// ContainsAllWords checks if every word of query appears as a substring
// of s, case-insensitively. Word order does not matter: "patel ramesh"
// matches "Ramesh Kumar Patel". Used for loose name matching when exact
// database lookups come back empty.
func ContainsAllWords(s, query string) bool {
	if query == "" {
		return true
	}
	if s == "" {
		return false
	}
	sLower := strings.ToLower(s)
	for _, w := range strings.Fields(strings.ToLower(query)) {
		if !strings.Contains(sLower, w) {
			return false
		}
	}
	return true
}
