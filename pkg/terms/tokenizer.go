package terms

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
)

// Tokenizer splits free text into word-like units for token-mode aggregation.
// Implementations must be safe for concurrent use.
type Tokenizer interface {
	// Tokenize returns the word-like units of text, in order. Whitespace and
	// punctuation-only runs are never returned.
	Tokenize(text string) []string
}

// =============================================================================
// SegmenterTokenizer - Unicode Word Segmentation
// =============================================================================

// SegmenterTokenizer splits text on Unicode word boundaries (UAX #29).
// This handles scripts without spaces between words better than a plain
// letter/number split and is the default tokenizer.
type SegmenterTokenizer struct{}

// Tokenize implements Tokenizer using uniseg word boundary segmentation.
// Boundary segments without any letter or number (spaces, punctuation) are
// dropped.
func (SegmenterTokenizer) Tokenize(text string) []string {
	var units []string
	state := -1
	var word string
	for text != "" {
		word, text, state = uniseg.FirstWordInString(text, state)
		if isWordLike(word) {
			units = append(units, word)
		}
	}
	return units
}

// isWordLike reports whether s contains at least one letter or number.
func isWordLike(s string) bool {
	return strings.ContainsFunc(s, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsNumber(r)
	})
}

// =============================================================================
// RegexTokenizer - Letter/Number Run Fallback
// =============================================================================

// wordRun matches maximal runs of Unicode letters and numbers.
var wordRun = regexp.MustCompile(`[\p{L}\p{N}]+`)

// RegexTokenizer splits text into maximal letter/number runs. It is the
// fallback when boundary-aware segmentation is not wanted; intra-word
// punctuation (e.g. "don't") splits the word.
type RegexTokenizer struct{}

// Tokenize implements Tokenizer using a Unicode letter/number regex.
func (RegexTokenizer) Tokenize(text string) []string {
	return wordRun.FindAllString(text, -1)
}

// NewTokenizer returns the default tokenizer: boundary-aware segmentation.
// Callers that need the simpler regex behavior construct a RegexTokenizer
// directly.
func NewTokenizer() Tokenizer {
	return SegmenterTokenizer{}
}
