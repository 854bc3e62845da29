// Package fonts resolves font families to concrete typefaces and provides
// text measurement for the layout engine.
//
// Resolution order:
//  1. A system font matching the requested family, located via go-findfont.
//  2. The embedded Go Bold typeface (golang.org/x/image/font/gofont), so
//     rendering works on machines without any installed fonts.
//
// Word clouds are painted in bold weight throughout, so a Collection holds a
// single parsed font and mints per-size faces on demand. Faces are cached;
// a layout pass touches only a handful of distinct sizes.
package fonts

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
)

// FallbackFamily is the family name reported when the embedded typeface is
// in use.
const FallbackFamily = "Go Bold"

// Collection is a parsed typeface plus a cache of sized faces.
// It is safe for concurrent use.
type Collection struct {
	family string
	font   *truetype.Font

	mu    sync.Mutex
	faces map[float64]font.Face
}

// Load resolves family to a typeface. An empty family selects the embedded
// fallback directly. A named family that cannot be found on the system also
// falls back, so a missing font never fails generation; only a corrupt font
// file does.
func Load(family string) (*Collection, error) {
	data, resolved := resolve(family)
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %q: %w", resolved, err)
	}
	return &Collection{
		family: resolved,
		font:   f,
		faces:  make(map[float64]font.Face),
	}, nil
}

// resolve returns raw TTF bytes and the effective family name.
func resolve(family string) ([]byte, string) {
	if family == "" {
		return gobold.TTF, FallbackFamily
	}
	path, err := findfont.Find(fontFileName(family))
	if err != nil {
		return gobold.TTF, FallbackFamily
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return gobold.TTF, FallbackFamily
	}
	return data, family
}

// fontFileName normalizes a family name to a findfont query.
func fontFileName(family string) string {
	name := strings.TrimSuffix(family, ".ttf")
	return name + ".ttf"
}

// Family returns the effective family name (after fallback).
func (c *Collection) Family() string {
	return c.family
}

// Face returns a font face at the given pixel size. Faces are cached per
// size and must not be closed by callers.
func (c *Collection) Face(size float64) font.Face {
	c.mu.Lock()
	defer c.mu.Unlock()
	if f, ok := c.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(c.font, &truetype.Options{
		Size:    size,
		DPI:     72, // 1pt == 1px so layout sizes map directly to the canvas
		Hinting: font.HintingFull,
	})
	c.faces[size] = f
	return f
}

// Measure returns the advance width in pixels of text rendered at size.
func (c *Collection) Measure(text string, size float64) float64 {
	adv := font.MeasureString(c.Face(size), text)
	return float64(adv) / 64.0
}
