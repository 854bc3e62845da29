// Package cloud defines the shared data model for word cloud generation.
//
// The types here flow through the whole pipeline: raw entries are aggregated
// into WeightedTerms, the layout engine turns those into PlacedTerms, and a
// Layout bundles the placed set with its canvas geometry. All types are
// JSON-serializable and used for caching and cross-stage handoff.
//
// The format is designed for round-trip fidelity: aggregate → layout →
// serialize → deserialize → render produces identical output.
package cloud

import (
	"encoding/json"
	"fmt"
)

// Aggregation modes.
const (
	ModePhrase = "phrase" // each entry is one indivisible term
	ModeToken  = "token"  // entries are lower-cased and split into words
)

// =============================================================================
// WeightedTerm - Aggregated Term
// =============================================================================

// WeightedTerm is a deduplicated term with its occurrence count and an index
// into the rendering palette. Text is trimmed and non-empty; Text values are
// unique within an aggregated set.
type WeightedTerm struct {
	Text       string `json:"text"`
	Count      int    `json:"count"`
	ColorIndex int    `json:"color_index"`
}

// =============================================================================
// PlacedTerm - Term with Computed Geometry
// =============================================================================

// PlacedTerm extends WeightedTerm with the geometry computed by the layout
// engine. X and Y are the center of the term's bounding box in canvas
// coordinates. Width and Height are the measured text extents (unpadded).
//
// Once appended to a layout, a PlacedTerm is never mutated.
type PlacedTerm struct {
	WeightedTerm
	FontSize float64 `json:"font_size"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

// =============================================================================
// Layout - Placed Term Set
// =============================================================================

// Layout is the canonical serialization format for a computed word cloud
// layout. It carries everything a sink needs to paint the final image.
type Layout struct {
	Width      float64      `json:"width"`
	Height     float64      `json:"height"`
	FontFamily string       `json:"font_family,omitempty"`
	Seed       uint64       `json:"seed,omitempty"`
	Placed     []PlacedTerm `json:"placed"`
	Skipped    []string     `json:"skipped,omitempty"` // terms that found no slot
}

// =============================================================================
// Serialization
// =============================================================================

// MarshalTerms serializes an aggregated term set to JSON.
func MarshalTerms(terms []WeightedTerm) ([]byte, error) {
	data, err := json.Marshal(terms)
	if err != nil {
		return nil, fmt.Errorf("marshal terms: %w", err)
	}
	return data, nil
}

// UnmarshalTerms deserializes an aggregated term set from JSON.
func UnmarshalTerms(data []byte) ([]WeightedTerm, error) {
	var terms []WeightedTerm
	if err := json.Unmarshal(data, &terms); err != nil {
		return nil, fmt.Errorf("unmarshal terms: %w", err)
	}
	return terms, nil
}

// MarshalLayout serializes a layout to indented JSON.
func MarshalLayout(l Layout) ([]byte, error) {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal layout: %w", err)
	}
	return data, nil
}

// UnmarshalLayout deserializes a layout from JSON.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	return l, nil
}
