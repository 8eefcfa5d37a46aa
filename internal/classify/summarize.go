package classify

import (
	"strings"
	"unicode/utf8"
)

const (
	maxKeyTerms      = 5
	keyTermMinLength = 5
	longTextWords    = 50
)

// Summarize shortens prose that has more than three ". " separated segments
// down to its first segment. Long texts (over 50 words) also get up to five
// key terms appended.
func Summarize(content string) string {
	sentences := strings.Split(content, ". ")
	if len(sentences) <= 3 {
		return content
	}

	first := sentences[0]
	words := splitWords(content)
	if len(words) <= longTextWords {
		return first
	}

	terms := keyTerms(words)
	if len(terms) == 0 {
		return first
	}
	return first + ". Key terms: " + strings.Join(terms, ", ") + "..."
}

func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t'
	})
}

// keyTerms picks the first distinct long words.
func keyTerms(words []string) []string {
	seen := make(map[string]bool)
	var terms []string
	for _, w := range words {
		if utf8.RuneCountInString(w) < keyTermMinLength || seen[w] {
			continue
		}
		seen[w] = true
		terms = append(terms, w)
		if len(terms) >= maxKeyTerms {
			break
		}
	}
	return terms
}
