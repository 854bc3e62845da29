package terms

import (
	"image/color"
	"testing"
)

func TestDefaultPalette(t *testing.T) {
	p := DefaultPalette()
	if len(p) != 8 {
		t.Errorf("DefaultPalette() has %d colors, want 8", len(p))
	}
}

func TestParsePalette(t *testing.T) {
	tests := []struct {
		name    string
		hexes   []string
		wantErr bool
	}{
		{name: "valid", hexes: []string{"#ff0000", "#00ff00"}, wantErr: false},
		{name: "empty", hexes: nil, wantErr: true},
		{name: "bad hex", hexes: []string{"#ff0000", "notacolor"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePalette(tt.hexes)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePalette() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && len(p) != len(tt.hexes) {
				t.Errorf("ParsePalette() has %d colors, want %d", len(p), len(tt.hexes))
			}
		})
	}
}

func TestPaletteColorWraps(t *testing.T) {
	p, err := ParsePalette([]string{"#ff0000", "#00ff00"})
	if err != nil {
		t.Fatalf("ParsePalette() error: %v", err)
	}

	tests := []struct {
		name  string
		index int
		want  color.RGBA
	}{
		{name: "first", index: 0, want: color.RGBA{R: 255, A: 255}},
		{name: "second", index: 1, want: color.RGBA{G: 255, A: 255}},
		{name: "wraps forward", index: 2, want: color.RGBA{R: 255, A: 255}},
		{name: "wraps negative", index: -1, want: color.RGBA{G: 255, A: 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Color(tt.index); got != tt.want {
				t.Errorf("Color(%d) = %v, want %v", tt.index, got, tt.want)
			}
		})
	}
}

func TestPaletteHex(t *testing.T) {
	p, err := ParsePalette([]string{"#1f77b4"})
	if err != nil {
		t.Fatalf("ParsePalette() error: %v", err)
	}
	if got := p.Hex(0); got != "#1f77b4" {
		t.Errorf("Hex(0) = %q, want #1f77b4", got)
	}
	if got := p.Hex(5); got != "#1f77b4" {
		t.Errorf("Hex(5) = %q, want wrap to #1f77b4", got)
	}

	var empty Palette
	if got := empty.Hex(0); got != "#000000" {
		t.Errorf("empty palette Hex(0) = %q, want #000000", got)
	}
}

func TestStopWordSet(t *testing.T) {
	set := StopWordSet([]string{"The", "  AND ", "", "or"})
	for _, w := range []string{"the", "and", "or"} {
		if _, ok := set[w]; !ok {
			t.Errorf("StopWordSet missing %q", w)
		}
	}
	if len(set) != 3 {
		t.Errorf("StopWordSet has %d entries, want 3", len(set))
	}
}
