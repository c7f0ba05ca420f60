package rewriting

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// maxSentenceChars bounds a rewritten action; the catalog sentences are well under it.
	maxSentenceChars = 160
	// maxSentences is the number of sentence terminators allowed in one action.
	maxSentences = 1
)

// StyleChecksResult holds the results of style validation
type StyleChecksResult struct {
	NotEmpty       bool
	ShortEnough    bool
	SingleSentence bool
	NoListMarker   bool
}

// OK reports whether every check passed.
func (r StyleChecksResult) OK() bool {
	return r.NotEmpty && r.ShortEnough && r.SingleSentence && r.NoListMarker
}

func (r StyleChecksResult) String() string {
	var failed []string
	if !r.NotEmpty {
		failed = append(failed, "empty")
	}
	if !r.ShortEnough {
		failed = append(failed, "too long")
	}
	if !r.SingleSentence {
		failed = append(failed, "more than one sentence")
	}
	if !r.NoListMarker {
		failed = append(failed, "starts with a list marker")
	}
	if len(failed) == 0 {
		return "ok"
	}
	return strings.Join(failed, ", ")
}

// ValidateStyle checks that a rewritten action is one short, plain sentence.
func ValidateStyle(text string) StyleChecksResult {
	text = strings.TrimSpace(text)
	return StyleChecksResult{
		NotEmpty:       text != "",
		ShortEnough:    utf8.RuneCountInString(text) <= maxSentenceChars,
		SingleSentence: countSentences(text) <= maxSentences,
		NoListMarker:   !hasListMarker(text),
	}
}

// countSentences counts terminators followed by more text.
// A trailing terminator ends the one permitted sentence.
func countSentences(text string) int {
	count := 1
	runes := []rune(text)
	for i, r := range runes {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		rest := strings.TrimSpace(string(runes[i+1:]))
		if rest == "" {
			break
		}
		if i+1 < len(runes) && unicode.IsSpace(runes[i+1]) && startsUpper(rest) {
			count++
		}
	}
	return count
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

func hasListMarker(text string) bool {
	if strings.HasPrefix(text, "- ") || strings.HasPrefix(text, "* ") || strings.HasPrefix(text, "• ") {
		return true
	}
	i := 0
	for i < len(text) && text[i] >= '0' && text[i] <= '9' {
		i++
	}
	return i > 0 && i < len(text) && (text[i] == '.' || text[i] == ')')
}
