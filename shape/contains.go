package shape

import "github.com/nearplane/rigid2d/vector"

// ContainsPoint reports whether the world-space point p lies within
// shape s when placed at transform t. Circles use a squared-distance
// test; polygons use parity of ray-crossings along +x from p.
func ContainsPoint(s Shape, t vector.Transform, p vector.Vector2) bool {
	switch sh := s.(type) {
	case *Circle:
		d := p.Sub(t.Position)
		return d.LenSqr() <= sh.Radius*sh.Radius
	case *Polygon:
		return polygonContains(sh, t, p)
	default:
		return false
	}
}

// polygonContains casts a ray from p along +x and counts edge
// crossings; the point is inside iff the crossing count is odd.
func polygonContains(p *Polygon, t vector.Transform, point vector.Vector2) bool {
	inside := false
	n := len(p.Vertices)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi := t.Apply(p.Vertices[i])
		vj := t.Apply(p.Vertices[j])
		if (vi.Y > point.Y) != (vj.Y > point.Y) {
			xCross := vj.X + (point.Y-vj.Y)/(vi.Y-vj.Y)*(vi.X-vj.X)
			if point.X < xCross {
				inside = !inside
			}
		}
	}
	return inside
}
