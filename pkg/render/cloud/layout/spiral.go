package layout

import "math"

// spiral walks an Archimedean spiral outward from a fixed center. Each call
// to next advances the polar angle and radius by the configured steps and
// returns the Cartesian candidate position.
type spiral struct {
	cx, cy     float64
	angleStep  float64
	radiusStep float64
	angle      float64
	radius     float64
}

// newSpiral starts a spiral at (cx, cy). The first candidate is the center
// itself.
func newSpiral(cx, cy, angleStep, radiusStep float64) *spiral {
	return &spiral{cx: cx, cy: cy, angleStep: angleStep, radiusStep: radiusStep}
}

// next returns the current candidate position and advances the walk.
func (s *spiral) next() (x, y float64) {
	x = s.cx + s.radius*math.Cos(s.angle)
	y = s.cy + s.radius*math.Sin(s.angle)
	s.angle += s.angleStep
	s.radius += s.radiusStep
	return x, y
}
