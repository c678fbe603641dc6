package engine

import (
	"strings"

	"atspro/internal/types"
)

// Normalize lowercases the text, replaces every character outside
// [a-z0-9\s] with a space, splits on whitespace, and drops stop-words
// and tokens shorter than three characters. Deterministic and pure.
func (e *Engine) Normalize(text string) []string {
	lowered := strings.ToLower(text)
	cleaned := nonAlnumRe.ReplaceAllString(lowered, " ")
	fields := strings.Fields(cleaned)

	tokens := make([]string, 0, len(fields))
	for _, w := range fields {
		if len(w) < minTokenRunes || e.tax.IsStopWord(w) {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

// Document builds the normalized document form from raw text: trimmed
// non-blank lines plus the token stream.
func (e *Engine) Document(text string) types.Document {
	return types.Document{
		Text:   text,
		Lines:  nonBlankLines(text),
		Tokens: e.Normalize(text),
	}
}

func nonBlankLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}
