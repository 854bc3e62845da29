package layout

import "testing"

func TestNewBox(t *testing.T) {
	b := NewBox(50, 40, 10, 5)
	if b.MinX != 40 || b.MaxX != 60 || b.MinY != 35 || b.MaxY != 45 {
		t.Errorf("NewBox(50,40,10,5) = %+v, want {40 35 60 45}", b)
	}
}

func TestBoxIntersects(t *testing.T) {
	tests := []struct {
		name string
		a, b Box
		want bool
	}{
		{
			name: "overlapping",
			a:    Box{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10},
			b:    Box{MinX: 5, MinY: 5, MaxX: 15, MaxY: 15},
			want: true,
		},
		{
			name: "contained",
			a:    Box{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10},
			b:    Box{MinX: 2, MinY: 2, MaxX: 8, MaxY: 8},
			want: true,
		},
		{
			name: "disjoint horizontal",
			a:    Box{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10},
			b:    Box{MinX: 20, MinY: 0, MaxX: 30, MaxY: 10},
			want: false,
		},
		{
			name: "disjoint vertical",
			a:    Box{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10},
			b:    Box{MinX: 0, MinY: 20, MaxX: 10, MaxY: 30},
			want: false,
		},
		{
			name: "touching edges do not intersect",
			a:    Box{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10},
			b:    Box{MinX: 10, MinY: 0, MaxX: 20, MaxY: 10},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersects(tt.b); got != tt.want {
				t.Errorf("Intersects() = %v, want %v", got, tt.want)
			}
			// Intersection is symmetric
			if got := tt.b.Intersects(tt.a); got != tt.want {
				t.Errorf("Intersects() reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoxWithin(t *testing.T) {
	tests := []struct {
		name          string
		box           Box
		width, height float64
		want          bool
	}{
		{
			name:  "inside",
			box:   Box{MinX: 10, MinY: 10, MaxX: 90, MaxY: 90},
			width: 100, height: 100,
			want: true,
		},
		{
			name:  "exactly fills canvas",
			box:   Box{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100},
			width: 100, height: 100,
			want: true,
		},
		{
			name:  "past right edge",
			box:   Box{MinX: 50, MinY: 10, MaxX: 110, MaxY: 90},
			width: 100, height: 100,
			want: false,
		},
		{
			name:  "past top edge",
			box:   Box{MinX: 10, MinY: -1, MaxX: 90, MaxY: 90},
			width: 100, height: 100,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.box.Within(tt.width, tt.height); got != tt.want {
				t.Errorf("Within(%v, %v) = %v, want %v", tt.width, tt.height, got, tt.want)
			}
		})
	}
}
