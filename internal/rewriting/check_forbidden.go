package rewriting

import (
	"fmt"
	"sort"
	"strings"
)

// ForbiddenPhrases lists suggestions that are never small, low-cost changes.
// A rewrite containing any of them is rejected.
func ForbiddenPhrases() []string {
	return []string{
		"buy an ev",
		"buy an electric",
		"buy a new car",
		"install solar",
		"heat pump",
		"move house",
		"moving house",
		"new boiler",
		"insulate",
	}
}

// checkForbiddenPhrasesInText checks plain text for forbidden phrases
// Returns a list of forbidden phrases found in the text (case-insensitive)
func checkForbiddenPhrasesInText(text string, forbidden []string) []string {
	if len(forbidden) == 0 {
		return nil
	}

	normalizedText := strings.ToLower(text)

	var foundPhrases []string
	seen := make(map[string]bool)

	for _, phrase := range forbidden {
		normalizedPhrase := strings.ToLower(strings.TrimSpace(phrase))
		if normalizedPhrase == "" {
			continue
		}

		if strings.Contains(normalizedText, normalizedPhrase) && !seen[normalizedPhrase] {
			foundPhrases = append(foundPhrases, phrase)
			seen[normalizedPhrase] = true
		}
	}

	return foundPhrases
}

// CheckForbiddenPhrases checks every sentence for forbidden phrases.
// Returns a map of sentence index (0-based) → phrases found.
func CheckForbiddenPhrases(texts []string, forbidden []string) map[int][]string {
	result := make(map[int][]string)
	for i, text := range texts {
		if found := checkForbiddenPhrasesInText(text, forbidden); len(found) > 0 {
			result[i] = found
		}
	}
	return result
}

func describeFindings(found map[int][]string) string {
	indexes := make([]int, 0, len(found))
	for i := range found {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)

	parts := make([]string, 0, len(indexes))
	for _, i := range indexes {
		parts = append(parts, fmt.Sprintf("sentence %d (%s)", i+1, strings.Join(found[i], ", ")))
	}
	return strings.Join(parts, "; ")
}
