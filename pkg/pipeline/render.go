package pipeline

import (
	"errors"
	"fmt"

	"github.com/matzehuels/wordcloud/pkg/cloud"
	apperrors "github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/fonts"
	"github.com/matzehuels/wordcloud/pkg/render/cloud/layout"
	"github.com/matzehuels/wordcloud/pkg/render/cloud/sink"
)

// GenerateLayout computes a layout for an aggregated term set. The term set
// must be ranked (descending count), which Aggregate guarantees.
//
// Font resolution failures map to MEASUREMENT_UNAVAILABLE: without a
// measurable typeface the whole call fails, per the error taxonomy.
func GenerateLayout(ranked []cloud.WeightedTerm, opts Options) (cloud.Layout, error) {
	opts.SetLayoutDefaults()

	fc, err := fonts.Load(opts.FontFamily)
	if err != nil {
		return cloud.Layout{}, apperrors.Wrap(apperrors.ErrCodeMeasurement, err, "load font %q", opts.FontFamily)
	}

	l, err := layout.Build(ranked, opts.Width, opts.Height, fc, opts.layoutOptions()...)
	if err != nil {
		if errors.Is(err, layout.ErrNoTerms) {
			return cloud.Layout{}, apperrors.New(apperrors.ErrCodeEmptyInput, "no terms to lay out")
		}
		return cloud.Layout{}, err
	}

	l.FontFamily = fc.Family()
	l.Seed = opts.Seed
	return l, nil
}

// Render generates output artifacts in the requested formats.
func Render(l cloud.Layout, opts Options) (map[string][]byte, error) {
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()

	palette, err := opts.palette()
	if err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatPNG:
			data, err = renderPNG(l, opts)
		case FormatSVG:
			data = sink.RenderSVG(l,
				sink.WithSVGPalette(palette),
				sink.WithSVGBackground(opts.Background))
		case FormatJSON:
			data, err = sink.RenderJSON(l)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// renderPNG rasterizes the layout. The font is reloaded from the layout's
// resolved family so cached layouts repaint with the faces they were
// measured with.
func renderPNG(l cloud.Layout, opts Options) ([]byte, error) {
	fc, err := fonts.Load(l.FontFamily)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeMeasurement, err, "load font %q", l.FontFamily)
	}

	palette, err := opts.palette()
	if err != nil {
		return nil, err
	}
	bg, err := opts.backgroundColor()
	if err != nil {
		return nil, err
	}

	return sink.RenderPNG(l, fc,
		sink.WithPNGPalette(palette),
		sink.WithBackground(bg),
		sink.WithScale(opts.Scale))
}

// RenderFromLayoutData renders output from serialized layout data.
// This is useful when the layout was computed elsewhere (e.g., cached).
func RenderFromLayoutData(layoutData []byte, opts Options) (map[string][]byte, error) {
	parsed, err := cloud.UnmarshalLayout(layoutData)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	return Render(parsed, opts)
}
