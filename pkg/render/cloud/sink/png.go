package sink

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/fonts"
	"github.com/matzehuels/wordcloud/pkg/terms"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	palette    terms.Palette
	background color.Color
	scale      float64
}

// WithPNGPalette sets the palette used to resolve term color indices.
func WithPNGPalette(p terms.Palette) PNGOption {
	return func(r *pngRenderer) { r.palette = p }
}

// WithBackground sets an opaque background fill. Default is white.
func WithBackground(c color.Color) PNGOption {
	return func(r *pngRenderer) { r.background = c }
}

// WithScale resamples the output by the given factor (e.g. 2.0 for a 2x
// image). Default 1.0.
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderPNG paints the layout onto a raster canvas and encodes it as PNG.
// Each placed term's glyph run is painted once, bold, centered on its
// recorded position; the canvas is append-only.
func RenderPNG(l cloud.Layout, fc *fonts.Collection, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{
		palette:    terms.DefaultPalette(),
		background: color.White,
		scale:      1.0,
	}
	for _, opt := range opts {
		opt(&r)
	}

	w, h := int(math.Round(l.Width)), int(math.Round(l.Height))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", w, h)
	}

	dc := gg.NewContext(w, h)
	dc.SetColor(r.background)
	dc.Clear()

	for _, t := range l.Placed {
		dc.SetFontFace(fc.Face(t.FontSize))
		dc.SetColor(r.palette.Color(t.ColorIndex))
		dc.DrawStringAnchored(t.Text, t.X, t.Y, 0.5, 0.5)
	}

	img := image.Image(dc.Image())
	if r.scale > 0 && r.scale != 1.0 {
		img = imaging.Resize(img,
			int(math.Round(l.Width*r.scale)),
			int(math.Round(l.Height*r.scale)),
			imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
