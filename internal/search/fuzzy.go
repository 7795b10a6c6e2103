package search

import (
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Token-based fuzzy matching tuned for media metadata.
//
// Algorithm:
//  1. Tokenize the query into words
//  2. For each query token, find the best match in the text
//  3. All query tokens must match (AND semantics)
//  4. Word order does not matter ("robot mr" matches "Mr. Robot")
//  5. Typo tolerance based on token length

// token is a lowercase word from the source text
type token struct {
	Text string
}

// tokenize splits text into lowercase word tokens
func tokenize(text string) []token {
	var tokens []token
	runes := []rune(strings.ToLower(text))

	inWord := false
	wordStart := 0

	for i, r := range runes {
		isWordChar := unicode.IsLetter(r) || unicode.IsDigit(r)

		if isWordChar && !inWord {
			wordStart = i
			inWord = true
		} else if !isWordChar && inWord {
			tokens = append(tokens, token{Text: string(runes[wordStart:i])})
			inWord = false
		}
	}
	if inWord {
		tokens = append(tokens, token{Text: string(runes[wordStart:])})
	}

	return tokens
}

// matchText matches pre-tokenized query tokens against text tokens.
// Returns a raw score (lower = better) and whether every query token matched.
// penalizeExtra adds a small penalty per unmatched text token, which keeps
// short exact titles ahead of long ones; it is off for prose fields.
func matchText(queryTokens []token, textTokens []token, penalizeExtra bool) (int, bool) {
	used := make([]bool, len(textTokens))
	totalScore := 0

	for _, qt := range queryTokens {
		best := -1
		bestIdx := -1
		for i, tt := range textTokens {
			if used[i] {
				continue
			}
			score := matchTokens(qt.Text, tt.Text)
			if score >= 0 && (best < 0 || score < best) {
				best = score
				bestIdx = i
			}
		}
		if best < 0 {
			return 0, false
		}
		used[bestIdx] = true
		totalScore += best
	}

	if penalizeExtra {
		if extra := len(textTokens) - len(queryTokens); extra > 0 {
			totalScore += extra * 5
		}
	}

	return totalScore, true
}

// matchTokens scores a query token against a text token.
// Returns score < 0 if no match.
func matchTokens(query, text string) int {
	// Exact match (best)
	if query == text {
		return 0
	}

	// Prefix match (very good)
	if strings.HasPrefix(text, query) {
		return 10
	}

	// Query extends past the text token - partial match. Tokens shorter
	// than 3 runes are skipped here: stopword-sized words like "a" or "to"
	// would otherwise match any query sharing their first letters.
	if len([]rune(text)) >= 3 && strings.HasPrefix(query, text) {
		return 20
	}

	// Substring match within the token
	if idx := strings.Index(text, query); idx >= 0 {
		return 50 + idx
	}

	// Fuzzy match with typo tolerance
	maxTypos := allowedTypos(len([]rune(query)))
	if maxTypos > 0 {
		if dist := fuzzy.LevenshteinDistance(query, text); dist <= maxTypos {
			return 100 + dist*20
		}
	}

	return -1
}

// allowedTypos returns the number of typos allowed based on word length:
// 1-3 chars = 0, 4-6 chars = 1, 7+ chars = 2
func allowedTypos(length int) int {
	switch {
	case length <= 3:
		return 0
	case length <= 6:
		return 1
	default:
		return 2
	}
}
