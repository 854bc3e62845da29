// Package pipeline provides the core word cloud generation pipeline.
//
// This package implements the complete aggregate → layout → render pipeline
// shared by all entry points. Centralizing this logic keeps behavior
// consistent between the CLI commands and library callers.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Aggregate: Convert raw text entries into ranked weighted terms
//  2. Layout: Place each term on the canvas via the spiral search
//  3. Render: Generate output in various formats (PNG, SVG, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
// One pipeline invocation is a pure function of its input snapshot: no
// layout state is shared across calls, and concurrent calls are safe as
// long as each uses its own Options.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Mode:    cloud.ModePhrase,
//	    Formats: []string{"png"},
//	}
//	result, err := runner.Execute(ctx, entries, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	img := result.Artifacts["png"]
package pipeline

import (
	"fmt"
	"image/color"
	"io"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/render/cloud/layout"
	"github.com/matzehuels/wordcloud/pkg/terms"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Library Callers
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = 600.0

	// DefaultScale is the default PNG output scale factor.
	DefaultScale = 1.0

	// DefaultBackground is the default canvas background color.
	DefaultBackground = "#ffffff"

	// DefaultSeed is the default random seed for reproducible color draws.
	DefaultSeed = uint64(42)
)

// DefaultMode is the default aggregation mode. Entries are treated as whole
// phrases; token splitting is opt-in.
const DefaultMode = cloud.ModePhrase

// Format constants for output formats.
const (
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:  true,
	FormatSVG:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the generation pipeline.
// This struct supports JSON serialization for presets and debugging.
type Options struct {
	// Aggregation options
	Mode      string   `json:"mode,omitempty"`
	MaxTerms  int      `json:"max_terms,omitempty"`
	StopWords []string `json:"stop_words,omitempty"` // nil = built-in set
	Seed      uint64   `json:"seed,omitempty"`

	// Layout options
	Width         float64 `json:"width,omitempty"`
	Height        float64 `json:"height,omitempty"`
	FontFamily    string  `json:"font_family,omitempty"`
	MinFontSize   float64 `json:"min_font_size,omitempty"`
	MaxFontSize   float64 `json:"max_font_size,omitempty"`
	Padding       float64 `json:"padding,omitempty"`
	AngleStep     float64 `json:"angle_step,omitempty"`
	RadiusStep    float64 `json:"radius_step,omitempty"`
	MaxIterations int     `json:"max_iterations,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Scale      float64  `json:"scale,omitempty"`
	Background string   `json:"background,omitempty"`
	Palette    []string `json:"palette,omitempty"` // hex colors, nil = built-in

	// Refresh bypasses cached stage results.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
	Rand   *rand.Rand  `json:"-"` // color source override for tests

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID identifies this generation for log correlation.
	ID uuid.UUID

	// Terms is the ranked aggregated term set.
	Terms []cloud.WeightedTerm

	// Layout contains the placed terms and canvas geometry.
	Layout cloud.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	EntryCount    int
	TermCount     int
	PlacedCount   int
	SkippedCount  int
	AggregateTime time.Duration
	LayoutTime    time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	TermsHit  bool // Whether aggregation came from cache
	LayoutHit bool // Whether layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: png, svg, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForAggregate(); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if _, err := o.palette(); err != nil {
		return err
	}
	if _, err := o.backgroundColor(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForAggregate validates and sets defaults for aggregation.
func (o *Options) ValidateForAggregate() error {
	if o.Mode == "" {
		o.Mode = DefaultMode
	}
	if err := terms.ValidateMode(o.Mode); err != nil {
		return err
	}
	if o.MaxTerms == 0 {
		o.MaxTerms = terms.DefaultMaxTerms
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.MinFontSize == 0 {
		o.MinFontSize = layout.DefaultMinFontSize
	}
	if o.MaxFontSize == 0 {
		o.MaxFontSize = layout.DefaultMaxFontSize
	}
	if o.Padding == 0 {
		o.Padding = layout.DefaultPadding
	}
	if o.AngleStep == 0 {
		o.AngleStep = layout.DefaultAngleStep
	}
	if o.RadiusStep == 0 {
		o.RadiusStep = layout.DefaultRadiusStep
	}
	if o.MaxIterations == 0 {
		o.MaxIterations = layout.DefaultMaxIterations
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPNG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Background == "" {
		o.Background = DefaultBackground
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// layoutOptions converts Options into layout engine options.
func (o *Options) layoutOptions() []layout.Option {
	return []layout.Option{
		layout.WithFontRange(o.MinFontSize, o.MaxFontSize),
		layout.WithPadding(o.Padding),
		layout.WithSpiral(o.AngleStep, o.RadiusStep),
		layout.WithMaxIterations(o.MaxIterations),
	}
}

// aggregateOptions converts Options into aggregator options.
func (o *Options) aggregateOptions() (terms.Options, error) {
	p, err := o.palette()
	if err != nil {
		return terms.Options{}, err
	}
	return terms.Options{
		Mode:        o.Mode,
		MaxTerms:    o.MaxTerms,
		StopWords:   o.stopWordSet(),
		PaletteSize: len(p),
		Rand:        o.Rand,
		Seed:        o.Seed,
	}, nil
}

// palette resolves the effective palette.
func (o *Options) palette() (terms.Palette, error) {
	if len(o.Palette) == 0 {
		return terms.DefaultPalette(), nil
	}
	return terms.ParsePalette(o.Palette)
}

// backgroundColor parses the background hex color.
func (o *Options) backgroundColor() (color.Color, error) {
	bg := o.Background
	if bg == "" {
		bg = DefaultBackground
	}
	c, err := colorful.Hex(bg)
	if err != nil {
		return nil, fmt.Errorf("invalid background color %q: %w", bg, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// stopWordSet resolves the effective stop-word set. Nil means built-in.
func (o *Options) stopWordSet() map[string]struct{} {
	if o.StopWords == nil {
		return nil // aggregator applies the built-in set
	}
	return terms.StopWordSet(o.StopWords)
}

// stopWordsHash hashes the effective stop-word set for cache keys.
func (o *Options) stopWordsHash() string {
	set := o.stopWordSet()
	if set == nil {
		set = terms.DefaultStopWords()
	}
	words := make([]string, 0, len(set))
	for w := range set {
		words = append(words, w)
	}
	sort.Strings(words)
	return cache.HashStrings(words)
}

// paletteHash hashes the effective palette for cache keys.
func (o *Options) paletteHash() string {
	if len(o.Palette) == 0 {
		return "builtin"
	}
	return cache.HashStrings(o.Palette)
}

// TermsKeyOpts returns cache key options for the aggregation stage.
func (o *Options) TermsKeyOpts() cache.TermsKeyOpts {
	p, _ := o.palette()
	return cache.TermsKeyOpts{
		Mode:        o.Mode,
		MaxTerms:    o.MaxTerms,
		StopWords:   o.stopWordsHash(),
		PaletteSize: len(p),
		Seed:        o.Seed,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:         o.Width,
		Height:        o.Height,
		FontFamily:    o.FontFamily,
		MinFontSize:   o.MinFontSize,
		MaxFontSize:   o.MaxFontSize,
		Padding:       o.Padding,
		AngleStep:     o.AngleStep,
		RadiusStep:    o.RadiusStep,
		MaxIterations: o.MaxIterations,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		Scale:      o.Scale,
		Background: o.Background,
		Palette:    o.paletteHash(),
	}
}
