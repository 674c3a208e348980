package collision

import (
	"math"

	"github.com/nearplane/rigid2d/shape"
	"github.com/nearplane/rigid2d/vector"
)

// Ray is a half-line from Origin in unit direction Dir, considered
// only out to MaxDistance.
type Ray struct {
	Origin      vector.Vector2
	Dir         vector.Vector2
	MaxDistance float64
}

// Hit describes where a Ray met a shape.
type Hit struct {
	Point    vector.Vector2
	Normal   vector.Vector2
	Distance float64
	Inside   bool
}

// Cast dispatches to the ray test for the concrete kind of s.
func Cast(r Ray, t vector.Transform, s shape.Shape) (Hit, bool) {
	switch sh := s.(type) {
	case *shape.Circle:
		return CastCircle(r, t, sh)
	case *shape.Polygon:
		return CastPolygon(r, t, sh)
	}
	return Hit{}, false
}

// CastCircle solves the ray-circle intersection analytically: project
// the circle center onto the ray, then check the perpendicular
// (height) distance against the radius.
//
// Based on http://www.scratchapixel.com/lessons/3d-basic-lessons/lesson-7-intersecting-simple-shapes/ray-sphere-intersection/
func CastCircle(r Ray, t vector.Transform, c *shape.Circle) (Hit, bool) {
	toCenter := t.Position.Sub(r.Origin)
	proj := r.Dir.Dot(toCenter)

	radius2 := c.Radius * c.Radius
	centerDistSqr := toCenter.Dot(toCenter)
	heightSqr := centerDistSqr - proj*proj

	inside := centerDistSqr <= radius2
	if !inside && proj < 0 {
		return Hit{}, false
	}
	if heightSqr > radius2 {
		return Hit{}, false
	}

	base := math.Sqrt(radius2 - heightSqr)
	var dist float64
	if inside {
		dist = proj + base
	} else {
		dist = proj - base
	}
	if dist < 0 || dist > r.MaxDistance {
		return Hit{}, false
	}

	point := r.Origin.Add(r.Dir.Scale(dist))
	normal := unitOrEpsilon(point.Sub(t.Position), c.Radius)
	return Hit{Point: point, Normal: normal, Distance: dist, Inside: inside}, true
}

// CastPolygon intersects the ray against each edge of p as a
// line-line test (via the perp-dot cross product), keeping the
// closest hit within MaxDistance. The inside flag follows the parity
// of edges the ray's segment crosses.
func CastPolygon(r Ray, t vector.Transform, p *shape.Polygon) (Hit, bool) {
	best := math.Inf(1)
	var bestPoint, bestNormal vector.Vector2
	hit := false
	crossings := 0

	n := len(p.Vertices)
	for i := 0; i < n; i++ {
		// edge (Vertices[i], Vertices[i+1]) carries normal Normals[i+1],
		// since Normals[k] is defined as the normal of (Vertices[k-1], Vertices[k]).
		i2 := (i + 1) % n
		v1 := t.Apply(p.Vertices[i])
		v2 := t.Apply(p.Vertices[i2])
		edge := v2.Sub(v1)

		denom := r.Dir.Cross(edge)
		if vector.AeqZ(denom) {
			continue // parallel (including collinear) edge: no transversal intersection
		}

		toV1 := v1.Sub(r.Origin)
		tRay := toV1.Cross(edge) / denom
		uEdge := toV1.Cross(r.Dir) / denom

		if tRay >= 0 && tRay <= r.MaxDistance && uEdge >= 0 && uEdge <= 1 {
			crossings++
			if tRay < best {
				best = tRay
				bestPoint = r.Origin.Add(r.Dir.Scale(tRay))
				bestNormal = t.ApplyVector(p.Normals[i2])
				hit = true
			}
		}
	}
	if !hit {
		return Hit{}, false
	}
	return Hit{Point: bestPoint, Normal: bestNormal, Distance: best, Inside: crossings%2 == 1}, true
}
