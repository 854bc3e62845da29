package terms

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/wordcloud/pkg/cloud"
)

// DefaultMaxTerms caps how many ranked terms are retained for layout.
// Lower-ranked terms are silently dropped to bound rendering cost.
const DefaultMaxTerms = 100

// DefaultSeed is the default random seed for color assignment.
const DefaultSeed = uint64(42)

// Options configures aggregation.
type Options struct {
	// Mode selects phrase or token aggregation. Defaults to cloud.ModePhrase.
	Mode string

	// MaxTerms is the retention cap. Defaults to DefaultMaxTerms.
	MaxTerms int

	// StopWords is the token-mode stop-word set. Nil means the built-in
	// English set; an empty (non-nil) set disables stop-word removal.
	StopWords map[string]struct{}

	// Tokenizer splits token-mode entries. Nil means NewTokenizer().
	Tokenizer Tokenizer

	// PaletteSize is the number of colors terms may be assigned. Defaults
	// to the built-in palette size.
	PaletteSize int

	// Rand is the color-assignment source. Nil means a PCG seeded from Seed,
	// so repeated runs with the same seed assign identical colors.
	Rand *rand.Rand

	// Seed seeds the default Rand. Zero means DefaultSeed.
	Seed uint64
}

// setDefaults fills zero values in place.
func (o *Options) setDefaults() {
	if o.Mode == "" {
		o.Mode = cloud.ModePhrase
	}
	if o.MaxTerms <= 0 {
		o.MaxTerms = DefaultMaxTerms
	}
	if o.StopWords == nil {
		o.StopWords = DefaultStopWords()
	}
	if o.Tokenizer == nil {
		o.Tokenizer = NewTokenizer()
	}
	if o.PaletteSize <= 0 {
		o.PaletteSize = len(DefaultPalette())
	}
	if o.Rand == nil {
		seed := o.Seed
		if seed == 0 {
			seed = DefaultSeed
		}
		o.Rand = rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	}
}

// ValidateMode checks that mode names a supported aggregation mode.
func ValidateMode(mode string) error {
	if mode != cloud.ModePhrase && mode != cloud.ModeToken {
		return fmt.Errorf("invalid mode: %q (must be 'phrase' or 'token')", mode)
	}
	return nil
}

// Aggregate converts raw entries into a ranked, capped, colored term list.
// Blank entries are ignored. An empty result is not an error here; callers
// decide how to surface "nothing to render".
func Aggregate(entries []string, opts Options) ([]cloud.WeightedTerm, error) {
	opts.setDefaults()
	if err := ValidateMode(opts.Mode); err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	switch opts.Mode {
	case cloud.ModePhrase:
		countPhrases(entries, counts)
	case cloud.ModeToken:
		countTokens(entries, opts.Tokenizer, opts.StopWords, counts)
	}

	if len(counts) == 0 {
		return nil, nil
	}

	ranked := make([]cloud.WeightedTerm, 0, len(counts))
	for text, count := range counts {
		ranked = append(ranked, cloud.WeightedTerm{Text: text, Count: count})
	}

	// Descending count. Ties break on text so identical input always yields
	// the same ranking; callers must not read meaning into the tie order.
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Text < ranked[j].Text
	})

	if len(ranked) > opts.MaxTerms {
		ranked = ranked[:opts.MaxTerms]
	}

	for i := range ranked {
		ranked[i].ColorIndex = opts.Rand.IntN(opts.PaletteSize)
	}

	return ranked, nil
}

// countPhrases treats each trimmed entry as one indivisible term.
func countPhrases(entries []string, counts map[string]int) {
	for _, e := range entries {
		text := strings.TrimSpace(e)
		if text == "" {
			continue
		}
		counts[text]++
	}
}

// countTokens lower-cases and tokenizes each entry, discarding units of
// rune length ≤ 1 and stop-word hits.
func countTokens(entries []string, tok Tokenizer, stop map[string]struct{}, counts map[string]int) {
	for _, e := range entries {
		for _, unit := range tok.Tokenize(strings.ToLower(e)) {
			if utf8.RuneCountInString(unit) <= 1 {
				continue
			}
			if _, skip := stop[unit]; skip {
				continue
			}
			counts[unit]++
		}
	}
}
