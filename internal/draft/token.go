package draft

import (
	"strings"
	"unicode"
)

// EstimateTokens gives a rough token count using a words-based heuristic.
// Exact tokenization is not required for prompt budgeting.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	// Roughly 1.33 tokens per word for English text.
	words := len(strings.Fields(text))
	tokens := int(float64(words) * 1.33)
	if tokens < 1 && len(text) > 0 {
		tokens = 1
	}
	return tokens
}

// TruncateToBudget trims text to roughly maxTokens, cutting at a word
// boundary and marking the cut.
func TruncateToBudget(text string, maxTokens int) string {
	if maxTokens <= 0 || EstimateTokens(text) <= maxTokens {
		return text
	}
	maxWords := int(float64(maxTokens) / 1.33)

	words := 0
	inWord := false
	for i, r := range text {
		if unicode.IsSpace(r) {
			inWord = false
			continue
		}
		if !inWord {
			words++
			inWord = true
			if words > maxWords {
				return strings.TrimSpace(text[:i]) + "\n[source truncated]"
			}
		}
	}
	return text
}
