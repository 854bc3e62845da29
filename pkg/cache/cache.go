// Package cache provides pluggable caching for pipeline stages.
//
// Three backends are available:
//   - FileCache: JSON files under a directory, for CLI usage
//   - RedisCache: shared cache for multi-process deployments
//   - NullCache: caching disabled
//
// Keys are produced by a Keyer so every consumer derives identical keys for
// identical inputs. Each pipeline stage has its own key family and TTL:
// aggregated terms, computed layouts, and rendered artifacts.
package cache

import (
	"context"
	"time"
)

// TTLs per cached stage. Aggregation and layout are cheap to recompute but
// hot during interactive use; artifacts are the expensive stage.
const (
	TTLTerms    = 1 * time.Hour
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented cache with per-entry TTLs.
type Cache interface {
	// Get returns the cached data and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// TermsKeyOpts are the aggregation options that affect cached term sets.
type TermsKeyOpts struct {
	Mode        string `json:"mode"`
	MaxTerms    int    `json:"max_terms"`
	StopWords   string `json:"stop_words"` // hash of the effective set
	PaletteSize int    `json:"palette_size"`
	Seed        uint64 `json:"seed"`
}

// LayoutKeyOpts are the layout options that affect cached layouts.
type LayoutKeyOpts struct {
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	FontFamily    string  `json:"font_family"`
	MinFontSize   float64 `json:"min_font_size"`
	MaxFontSize   float64 `json:"max_font_size"`
	Padding       float64 `json:"padding"`
	AngleStep     float64 `json:"angle_step"`
	RadiusStep    float64 `json:"radius_step"`
	MaxIterations int     `json:"max_iterations"`
}

// ArtifactKeyOpts are the render options that affect cached artifacts.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Scale      float64 `json:"scale"`
	Background string  `json:"background"`
	Palette    string  `json:"palette"` // hash of the effective palette
}

// Keyer derives cache keys for pipeline stages.
type Keyer interface {
	// TermsKey keys an aggregated term set by the entries hash and options.
	TermsKey(entriesHash string, opts TermsKeyOpts) string

	// LayoutKey keys a computed layout by the terms hash and options.
	LayoutKey(termsHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys a rendered artifact by the layout hash and options.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes inputs with SHA-256 into prefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// TermsKey implements Keyer.
func (k *DefaultKeyer) TermsKey(entriesHash string, opts TermsKeyOpts) string {
	return hashKey("terms", entriesHash, opts)
}

// LayoutKey implements Keyer.
func (k *DefaultKeyer) LayoutKey(termsHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", termsHash, opts)
}

// ArtifactKey implements Keyer.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
