package vector

// AABB is an axis-aligned bounding box with (X, Y) as the lower
// corner and non-negative Width/Height extents.
type AABB struct {
	X, Y          float64
	Width, Height float64
}

// Overlaps reports whether a and b intersect. Boxes that only touch
// along an edge or corner are not considered overlapping.
func (a AABB) Overlaps(b AABB) bool {
	return a.X < b.X+b.Width && b.X < a.X+a.Width &&
		a.Y < b.Y+b.Height && b.Y < a.Y+a.Height
}

// Min returns the lower corner of the box.
func (a AABB) Min() Vector2 { return Vector2{a.X, a.Y} }

// Max returns the upper corner of the box.
func (a AABB) Max() Vector2 { return Vector2{a.X + a.Width, a.Y + a.Height} }

// Union returns the smallest AABB containing both a and b.
func (a AABB) Union(b AABB) AABB {
	minX, minY := minF(a.X, b.X), minF(a.Y, b.Y)
	maxX, maxY := maxF(a.X+a.Width, b.X+b.Width), maxF(a.Y+a.Height, b.Y+b.Height)
	return AABB{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
