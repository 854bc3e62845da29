package layout

import (
	"errors"
	"math"
	"testing"

	"github.com/matzehuels/wordcloud/pkg/cloud"
)

// charMeasurer approximates text width as a fixed fraction of the font size
// per rune, so layout behavior is testable without a real font.
type charMeasurer struct{}

func (charMeasurer) Measure(text string, size float64) float64 {
	return 0.6 * size * float64(len([]rune(text)))
}

func rankedTerms(counts map[string]int) []cloud.WeightedTerm {
	// Build manually in descending order for deterministic tests.
	var ranked []cloud.WeightedTerm
	for len(counts) > 0 {
		best := ""
		for text, c := range counts {
			if best == "" || c > counts[best] {
				best = text
			}
		}
		ranked = append(ranked, cloud.WeightedTerm{Text: best, Count: counts[best]})
		delete(counts, best)
	}
	return ranked
}

func TestBuildEmptyInput(t *testing.T) {
	_, err := Build(nil, 800, 600, charMeasurer{})
	if !errors.Is(err, ErrNoTerms) {
		t.Errorf("Build(nil) error = %v, want ErrNoTerms", err)
	}
}

func TestBuildFirstTermAtCenter(t *testing.T) {
	ranked := []cloud.WeightedTerm{{Text: "hello", Count: 5}}

	l, err := Build(ranked, 800, 600, charMeasurer{})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if len(l.Placed) != 1 {
		t.Fatalf("placed %d terms, want 1", len(l.Placed))
	}

	p := l.Placed[0]
	if p.X != 400 || p.Y != 300 {
		t.Errorf("first term at (%v, %v), want canvas center (400, 300)", p.X, p.Y)
	}
	if p.FontSize != DefaultMaxFontSize {
		t.Errorf("FontSize = %v, want max size %v for the top term", p.FontSize, DefaultMaxFontSize)
	}
}

func TestBuildNoOverlap(t *testing.T) {
	ranked := rankedTerms(map[string]int{
		"alpha": 10, "beta": 8, "gamma": 6, "delta": 5,
		"epsilon": 4, "zeta": 3, "eta": 2, "theta": 1,
	})

	l, err := Build(ranked, 800, 600, charMeasurer{})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if len(l.Placed) < 2 {
		t.Fatalf("placed %d terms, want at least 2", len(l.Placed))
	}

	boxes := make([]Box, len(l.Placed))
	for i, p := range l.Placed {
		boxes[i] = NewBox(p.X, p.Y, p.Width/2, p.Height/2)
	}
	for i := 0; i < len(boxes); i++ {
		for j := i + 1; j < len(boxes); j++ {
			if boxes[i].Intersects(boxes[j]) {
				t.Errorf("terms %q and %q overlap: %+v vs %+v",
					l.Placed[i].Text, l.Placed[j].Text, boxes[i], boxes[j])
			}
		}
	}
}

func TestBuildStaysInBounds(t *testing.T) {
	ranked := rankedTerms(map[string]int{
		"one": 5, "two": 4, "three": 3, "four": 2, "five": 1,
	})

	const width, height = 400.0, 300.0
	l, err := Build(ranked, width, height, charMeasurer{})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	for _, p := range l.Placed {
		b := NewBox(p.X, p.Y, p.Width/2, p.Height/2)
		if !b.Within(width, height) {
			t.Errorf("term %q extends outside canvas: %+v", p.Text, b)
		}
	}
}

func TestBuildFontSizeInterpolation(t *testing.T) {
	ranked := []cloud.WeightedTerm{
		{Text: "top", Count: 10},
		{Text: "mid", Count: 5},
		{Text: "low", Count: 0},
	}

	l, err := Build(ranked, 800, 600, charMeasurer{}, WithFontRange(10, 50))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if len(l.Placed) != 3 {
		t.Fatalf("placed %d terms, want 3", len(l.Placed))
	}

	if got := l.Placed[0].FontSize; got != 50 {
		t.Errorf("top term FontSize = %v, want 50", got)
	}
	if got := l.Placed[1].FontSize; got != 30 {
		t.Errorf("mid term FontSize = %v, want 30", got)
	}
	if got := l.Placed[2].FontSize; got != 10 {
		t.Errorf("low term FontSize = %v, want 10", got)
	}
}

func TestBuildDegenerateEqualCounts(t *testing.T) {
	ranked := []cloud.WeightedTerm{
		{Text: "aa", Count: 3},
		{Text: "bb", Count: 3},
	}

	l, err := Build(ranked, 800, 600, charMeasurer{}, WithFontRange(12, 48))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	for _, p := range l.Placed {
		if p.FontSize != 48 {
			t.Errorf("term %q FontSize = %v, want max size 48 when all counts equal", p.Text, p.FontSize)
		}
	}
}

func TestBuildPreservesRankOrder(t *testing.T) {
	ranked := rankedTerms(map[string]int{
		"first": 9, "second": 7, "third": 5, "fourth": 3,
	})

	l, err := Build(ranked, 800, 600, charMeasurer{})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	pos := make(map[string]int)
	for i, p := range l.Placed {
		pos[p.Text] = i
	}
	prev := -1
	for _, term := range ranked {
		i, ok := pos[term.Text]
		if !ok {
			continue // skipped terms keep relative order of the rest
		}
		if i < prev {
			t.Errorf("placed order violates rank order: %q at index %d after index %d", term.Text, i, prev)
		}
		prev = i
	}
}

func TestBuildOverflowGuardShrinksWideTerm(t *testing.T) {
	long := "an extremely long phrase that cannot possibly fit the canvas at full size"
	ranked := []cloud.WeightedTerm{{Text: long, Count: 1}}

	const width = 300.0
	l, err := Build(ranked, width, 200, charMeasurer{})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if len(l.Placed) != 1 {
		t.Fatalf("placed %d terms, want 1 (overflow guard should make it fit)", len(l.Placed))
	}

	p := l.Placed[0]
	if p.Width > maxWidthFraction*width+1e-9 {
		t.Errorf("term width %v exceeds %v%% of canvas width %v", p.Width, maxWidthFraction*100, width)
	}
	if p.FontSize >= DefaultMaxFontSize {
		t.Errorf("FontSize = %v, want shrunk below %v", p.FontSize, DefaultMaxFontSize)
	}
}

func TestBuildSkipsUnplaceableTerms(t *testing.T) {
	// A canvas too small for most terms: only a fraction can ever fit.
	ranked := rankedTerms(map[string]int{
		"aaaa": 9, "bbbb": 8, "cccc": 7, "dddd": 6, "eeee": 5,
		"ffff": 4, "gggg": 3, "hhhh": 2, "iiii": 1,
	})

	l, err := Build(ranked, 120, 90, charMeasurer{})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if len(l.Placed)+len(l.Skipped) != len(ranked) {
		t.Errorf("placed %d + skipped %d != %d terms", len(l.Placed), len(l.Skipped), len(ranked))
	}
	if len(l.Skipped) == 0 {
		t.Error("expected some terms to be skipped on a tiny canvas")
	}
}

func TestBuildMaxIterationsBoundsSearch(t *testing.T) {
	ranked := rankedTerms(map[string]int{"wide": 2, "also": 1})

	// One iteration: only the canvas center is ever tried, so the second
	// term has nowhere to go.
	l, err := Build(ranked, 800, 600, charMeasurer{}, WithMaxIterations(1))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if len(l.Placed) != 1 || len(l.Skipped) != 1 {
		t.Errorf("placed %d, skipped %d with MaxIterations=1, want 1 and 1",
			len(l.Placed), len(l.Skipped))
	}
}

func TestFontSizeFor(t *testing.T) {
	tests := []struct {
		name                          string
		count, minCount, maxCount     int
		minSize, maxSize, want        float64
	}{
		{name: "max count", count: 10, minCount: 1, maxCount: 10, minSize: 16, maxSize: 64, want: 64},
		{name: "min count", count: 1, minCount: 1, maxCount: 10, minSize: 16, maxSize: 64, want: 16},
		{name: "midpoint", count: 5, minCount: 0, maxCount: 10, minSize: 10, maxSize: 20, want: 15},
		{name: "degenerate range", count: 3, minCount: 3, maxCount: 3, minSize: 16, maxSize: 64, want: 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fontSizeFor(tt.count, tt.minCount, tt.maxCount, tt.minSize, tt.maxSize)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("fontSizeFor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpiralFirstCandidateIsCenter(t *testing.T) {
	s := newSpiral(100, 50, 0.35, 0.5)
	x, y := s.next()
	if x != 100 || y != 50 {
		t.Errorf("first candidate = (%v, %v), want center (100, 50)", x, y)
	}

	// Subsequent candidates move outward.
	x2, y2 := s.next()
	if x2 == 100 && y2 == 50 {
		t.Error("second candidate should differ from center")
	}
	r := math.Hypot(x2-100, y2-50)
	if math.Abs(r-0.5) > 1e-9 {
		t.Errorf("second candidate radius = %v, want 0.5", r)
	}
}
