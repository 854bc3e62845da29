package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/terms"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	palette    terms.Palette
	background string
}

// WithSVGPalette sets the palette used to resolve term color indices.
func WithSVGPalette(p terms.Palette) SVGOption {
	return func(r *svgRenderer) { r.palette = p }
}

// WithSVGBackground sets the background fill color (hex). Default "#ffffff".
func WithSVGBackground(hex string) SVGOption {
	return func(r *svgRenderer) { r.background = hex }
}

// RenderSVG renders the layout as an SVG document. Terms are emitted as
// middle-anchored bold text elements at their placed centers.
func RenderSVG(l cloud.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{
		palette:    terms.DefaultPalette(),
		background: "#ffffff",
	}
	for _, opt := range opts {
		opt(&r)
	}

	family := l.FontFamily
	if family == "" {
		family = "sans-serif"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">`,
		l.Width, l.Height, l.Width, l.Height)
	buf.WriteByte('\n')
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`, escapeXML(r.background))
	buf.WriteByte('\n')

	for _, t := range l.Placed {
		fmt.Fprintf(&buf,
			`  <text x="%.1f" y="%.1f" font-family="%s" font-size="%.1f" font-weight="bold" fill="%s" text-anchor="middle" dominant-baseline="central">%s</text>`,
			t.X, t.Y, escapeXML(family), t.FontSize, r.palette.Hex(t.ColorIndex), escapeXML(t.Text))
		buf.WriteByte('\n')
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// escapeXML escapes text for embedding in SVG.
func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
