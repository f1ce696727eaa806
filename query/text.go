package query

import (
	"slices"
	"strings"

	"github.com/hupe1980/docgo/document"
)

// tokenize lowercases and splits on whitespace. Tokens are whole words; no
// stemming or punctuation stripping.
func tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

// matchText reports whether every query word occurs as a whole word in at
// least one of the configured text search fields.
func (e *Engine) matchText(text string, doc document.Document) bool {
	words := tokenize(text)

	for _, word := range words {
		found := false
		for _, field := range e.textFields {
			s, ok := doc[field].AsString()
			if !ok {
				continue
			}
			if slices.Contains(tokenize(s), word) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
