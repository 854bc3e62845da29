// Package terms implements the frequency aggregator: it converts a sequence
// of raw text entries into a ranked, capped list of weighted terms ready for
// layout.
//
// Two aggregation modes are supported:
//
//   - phrase: each entry, after trimming, is one indivisible term. No
//     splitting, no case folding, no stop-word removal.
//   - token: each entry is lower-cased and split into word-like units by a
//     Tokenizer; units of length ≤ 1 and stop words are discarded.
//
// Counting is by exact string match. Results are sorted by descending count,
// with lexical order breaking ties so identical input always ranks the same
// way, and truncated to the configured cap. Each
// retained term is assigned a palette color index from an injectable random
// source, so tests can pin color assignment while production defaults to a
// seeded draw.
package terms
