package terms

import (
	"fmt"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette is an ordered set of colors terms draw from. Color assignment is
// cosmetic only and never affects layout.
type Palette []colorful.Color

// defaultPaletteHex is the built-in palette (a muted categorical scheme).
var defaultPaletteHex = []string{
	"#1f77b4", "#d62728", "#2ca02c", "#9467bd",
	"#ff7f0e", "#17becf", "#8c564b", "#e377c2",
}

// DefaultPalette returns the built-in palette.
func DefaultPalette() Palette {
	p, _ := ParsePalette(defaultPaletteHex) // built-in values are valid
	return p
}

// ParsePalette parses hex color strings ("#rrggbb") into a palette.
func ParsePalette(hexes []string) (Palette, error) {
	if len(hexes) == 0 {
		return nil, fmt.Errorf("palette must contain at least one color")
	}
	p := make(Palette, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("palette color %d: %w", i, err)
		}
		p[i] = c
	}
	return p, nil
}

// Color returns the palette entry for a term's color index as an image color.
// Out-of-range indices wrap, so stale layouts render rather than panic.
func (p Palette) Color(index int) color.Color {
	if len(p) == 0 {
		return color.Black
	}
	c := p[((index%len(p))+len(p))%len(p)]
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Hex returns the palette entry as a hex string for SVG output.
func (p Palette) Hex(index int) string {
	if len(p) == 0 {
		return "#000000"
	}
	return p[((index%len(p))+len(p))%len(p)].Hex()
}
