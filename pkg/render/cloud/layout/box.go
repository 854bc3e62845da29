package layout

// Box is an axis-aligned bounding box in canvas coordinates.
type Box struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// NewBox builds a box from a center point and half extents.
func NewBox(cx, cy, halfW, halfH float64) Box {
	return Box{
		MinX: cx - halfW,
		MinY: cy - halfH,
		MaxX: cx + halfW,
		MaxY: cy + halfH,
	}
}

// Intersects reports whether b and other overlap. Two boxes fail to
// intersect iff one is entirely to the left, right, above, or below the
// other.
func (b Box) Intersects(other Box) bool {
	if b.MaxX <= other.MinX || other.MaxX <= b.MinX {
		return false
	}
	if b.MaxY <= other.MinY || other.MaxY <= b.MinY {
		return false
	}
	return true
}

// Within reports whether b lies fully inside the canvas [0,width]×[0,height].
func (b Box) Within(width, height float64) bool {
	return b.MinX >= 0 && b.MinY >= 0 && b.MaxX <= width && b.MaxY <= height
}
