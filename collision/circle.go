package collision

import (
	"math"

	"github.com/nearplane/rigid2d/shape"
	"github.com/nearplane/rigid2d/vector"
)

// Circles tests two circles for overlap. The normal points from a
// toward b; when the centers coincide it falls back to (0, ε) rather
// than leaving the normal undefined.
func Circles(ta vector.Transform, a *shape.Circle, tb vector.Transform, b *shape.Circle) (Collision, bool) {
	delta := tb.Position.Sub(ta.Position)
	dist := delta.Len()
	radii := a.Radius + b.Radius
	if dist >= radii {
		return Collision{}, false
	}

	normal := unitOrEpsilon(delta, dist)
	point := ta.Position.Add(normal.Scale(a.Radius))
	depth := radii - dist

	c := Collision{Direction: normal, Count: 1}
	c.Contacts[0] = Contact{ID: 0, Point: point, Depth: depth}
	return c, true
}

// unitOrEpsilon normalizes delta given its precomputed length,
// falling back to (0, ε) when the length is too small to normalize
// safely (coincident centers).
func unitOrEpsilon(delta vector.Vector2, length float64) vector.Vector2 {
	if length < vector.Epsilon {
		return vector.Vector2{X: 0, Y: vector.Epsilon}
	}
	return delta.Scale(1 / length)
}

// CirclePolygon tests a circle (first body) against a polygon
// (second body), working in the polygon's local space: find the edge
// the circle center penetrates most deeply, and if the center falls
// outside that edge's segment, resolve against the nearer vertex
// instead. Direction always points from the circle toward the
// polygon, and the contact point always lies on the circle's
// boundary along that direction.
func CirclePolygon(tc vector.Transform, c *shape.Circle, tp vector.Transform, p *shape.Polygon) (Collision, bool) {
	localCenter := tp.Invert(tc.Position)

	maxDot := math.Inf(-1)
	edgeIdx := 0
	n := len(p.Vertices)
	for i := 0; i < n; i++ {
		d := p.Normals[i].Dot(localCenter.Sub(p.Vertices[i]))
		if d > maxDot {
			maxDot = d
			edgeIdx = i
		}
	}
	if maxDot > c.Radius {
		return Collision{}, false
	}

	// Normals[i] is the normal of edge (Vertices[i-1], Vertices[i]).
	v1 := p.Vertices[(edgeIdx-1+n)%n]
	v2 := p.Vertices[edgeIdx]

	var dirLocal vector.Vector2
	var depth float64

	switch {
	case maxDot < 0:
		// Center is inside the polygon: direction points inward,
		// toward the polygon's bulk, along the negated edge normal.
		dirLocal = p.Normals[edgeIdx].Neg()
		depth = c.Radius - maxDot
	default:
		u1 := localCenter.Sub(v1).Dot(v2.Sub(v1))
		u2 := localCenter.Sub(v2).Dot(v1.Sub(v2))
		switch {
		case u1 <= 0:
			d := localCenter.Sub(v1).Len()
			if d > c.Radius {
				return Collision{}, false
			}
			depth = c.Radius - d
			dirLocal = unitOrEpsilon(v1.Sub(localCenter), d)
		case u2 <= 0:
			d := localCenter.Sub(v2).Len()
			if d > c.Radius {
				return Collision{}, false
			}
			depth = c.Radius - d
			dirLocal = unitOrEpsilon(v2.Sub(localCenter), d)
		default:
			// Edge interior: direction points inward across the edge.
			dirLocal = p.Normals[edgeIdx].Neg()
			depth = c.Radius - maxDot
		}
	}

	direction := tp.ApplyVector(dirLocal)
	point := tc.Position.Add(direction.Scale(c.Radius))

	col := Collision{Direction: direction, Count: 1}
	col.Contacts[0] = Contact{Point: point, Depth: depth}
	return col, true
}
