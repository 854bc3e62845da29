// Package layout implements the spiral placement engine.
//
// Terms are processed strictly in rank order: the most frequent term gets
// first choice of the most central, least contested canvas positions. Each
// term is sized by linear interpolation over the count range, measured, and
// then walked along an outward Archimedean spiral from the canvas center
// until its padded bounding box neither leaves the canvas nor intersects any
// previously placed box. Terms that exhaust the iteration or radius bound
// are skipped; partial placement is a normal outcome, never an error.
//
// The engine is pure geometry. Text measurement is injected via Measurer so
// the algorithm is testable without a font or raster backend.
package layout

import (
	"errors"
	"math"

	"github.com/matzehuels/wordcloud/pkg/cloud"
)

// Default placement constants. Exposed so the CLI and pipeline share one
// source of truth.
const (
	DefaultMinFontSize   = 16.0
	DefaultMaxFontSize   = 64.0
	DefaultPadding       = 2.0
	DefaultAngleStep     = 0.35 // radians per spiral step
	DefaultRadiusStep    = 0.5  // pixels per spiral step
	DefaultMaxIterations = 2000

	// heightRatio derives a term's box height from its font size. This is an
	// approximation, not measured glyph ascent/descent.
	heightRatio = 1.2

	// maxWidthFraction caps a term's measured width relative to the canvas;
	// wider terms are shrunk proportionally and re-measured once.
	maxWidthFraction = 0.95
)

// ErrNoTerms is returned when Build is called with an empty term set.
var ErrNoTerms = errors.New("no terms to lay out")

// Measurer reports the pixel width of text rendered at a font size.
type Measurer interface {
	Measure(text string, size float64) float64
}

// Options controls sizing and the spiral search.
type Options struct {
	MinFontSize   float64
	MaxFontSize   float64
	Padding       float64
	AngleStep     float64
	RadiusStep    float64
	MaxIterations int
}

// Option mutates layout options.
type Option func(*Options)

// WithFontRange sets the font size interpolation bounds.
func WithFontRange(minSize, maxSize float64) Option {
	return func(o *Options) {
		o.MinFontSize = minSize
		o.MaxFontSize = maxSize
	}
}

// WithPadding sets the symmetric collision margin around each term's box.
func WithPadding(p float64) Option {
	return func(o *Options) { o.Padding = p }
}

// WithSpiral sets the per-iteration angle and radius steps. A larger radius
// step trades placement density for speed.
func WithSpiral(angleStep, radiusStep float64) Option {
	return func(o *Options) {
		o.AngleStep = angleStep
		o.RadiusStep = radiusStep
	}
}

// WithMaxIterations bounds the spiral search per term.
func WithMaxIterations(n int) Option {
	return func(o *Options) { o.MaxIterations = n }
}

// defaults returns options with all defaults applied.
func defaults() Options {
	return Options{
		MinFontSize:   DefaultMinFontSize,
		MaxFontSize:   DefaultMaxFontSize,
		Padding:       DefaultPadding,
		AngleStep:     DefaultAngleStep,
		RadiusStep:    DefaultRadiusStep,
		MaxIterations: DefaultMaxIterations,
	}
}

// Build places ranked terms on a width×height canvas. The input must already
// be sorted by descending count; Build preserves that order in the placed
// set. Returns ErrNoTerms for an empty input. Terms that find no slot are
// recorded in Layout.Skipped.
func Build(ranked []cloud.WeightedTerm, width, height float64, m Measurer, opts ...Option) (cloud.Layout, error) {
	if len(ranked) == 0 {
		return cloud.Layout{}, ErrNoTerms
	}

	o := defaults()
	for _, opt := range opts {
		opt(&o)
	}

	minCount, maxCount := countRange(ranked)
	diagonal := math.Hypot(width, height)

	l := cloud.Layout{Width: width, Height: height}
	var boxes []Box

	for _, term := range ranked {
		size := fontSizeFor(term.Count, minCount, maxCount, o.MinFontSize, o.MaxFontSize)
		w := m.Measure(term.Text, size)

		// Overflow guard: a single long phrase must stay renderable.
		if limit := maxWidthFraction * width; w > limit && w > 0 {
			size *= limit / w
			w = m.Measure(term.Text, size)
		}
		h := size * heightRatio

		x, y, ok := place(boxes, width, height, diagonal, w, h, o)
		if !ok {
			l.Skipped = append(l.Skipped, term.Text)
			continue
		}

		boxes = append(boxes, NewBox(x, y, w/2+o.Padding, h/2+o.Padding))
		l.Placed = append(l.Placed, cloud.PlacedTerm{
			WeightedTerm: term,
			FontSize:     size,
			Width:        w,
			Height:       h,
			X:            x,
			Y:            y,
		})
	}

	return l, nil
}

// fontSizeFor linearly interpolates the font size over the count range.
// A degenerate set where every count is equal maps to the maximum size.
func fontSizeFor(count, minCount, maxCount int, minSize, maxSize float64) float64 {
	scale := 1.0
	if maxCount > minCount {
		scale = float64(count-minCount) / float64(maxCount-minCount)
	}
	return minSize + scale*(maxSize-minSize)
}

// countRange returns the minimum and maximum counts in the set.
func countRange(ranked []cloud.WeightedTerm) (minCount, maxCount int) {
	minCount, maxCount = ranked[0].Count, ranked[0].Count
	for _, t := range ranked[1:] {
		if t.Count < minCount {
			minCount = t.Count
		}
		if t.Count > maxCount {
			maxCount = t.Count
		}
	}
	return minCount, maxCount
}

// place walks the spiral and returns the first accepted center position.
// The search gives up after MaxIterations steps or once the radius exceeds
// the canvas diagonal.
func place(placed []Box, width, height, diagonal float64, w, h float64, o Options) (x, y float64, ok bool) {
	s := newSpiral(width/2, height/2, o.AngleStep, o.RadiusStep)

	for i := 0; i < o.MaxIterations; i++ {
		if s.radius > diagonal {
			return 0, 0, false
		}
		x, y = s.next()

		candidate := NewBox(x, y, w/2+o.Padding, h/2+o.Padding)
		if !candidate.Within(width, height) {
			continue
		}
		if intersectsAny(candidate, placed) {
			continue
		}
		return x, y, true
	}
	return 0, 0, false
}

// intersectsAny reports whether candidate overlaps any placed box.
func intersectsAny(candidate Box, placed []Box) bool {
	for _, b := range placed {
		if candidate.Intersects(b) {
			return true
		}
	}
	return false
}
