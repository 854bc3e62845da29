package terms

import "strings"

// defaultStopWords is the built-in English stop-word list applied in token
// mode when the caller supplies none. Matching happens after lower-casing.
var defaultStopWords = []string{
	"a", "about", "after", "all", "also", "an", "and", "any", "are", "as",
	"at", "be", "because", "been", "but", "by", "can", "could", "did", "do",
	"does", "for", "from", "had", "has", "have", "he", "her", "here", "his",
	"how", "if", "in", "into", "is", "it", "its", "just", "like", "me",
	"more", "most", "my", "no", "not", "of", "on", "one", "only", "or",
	"other", "our", "out", "over", "she", "so", "some", "such", "than",
	"that", "the", "their", "them", "then", "there", "these", "they", "this",
	"to", "up", "us", "was", "we", "were", "what", "when", "which", "who",
	"will", "with", "would", "you", "your",
}

// StopWordSet builds a lookup set from a word list. Words are lower-cased
// and trimmed; empty strings are ignored.
func StopWordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		set[w] = struct{}{}
	}
	return set
}

// DefaultStopWords returns the built-in stop-word set.
func DefaultStopWords() map[string]struct{} {
	return StopWordSet(defaultStopWords)
}
