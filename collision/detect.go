package collision

import (
	"github.com/nearplane/rigid2d/shape"
	"github.com/nearplane/rigid2d/vector"
)

// Detect dispatches to the appropriate narrow-phase test for the
// concrete kinds of sa and sb, returning false if either shape is
// nil or of an unrecognized kind.
func Detect(ta vector.Transform, sa shape.Shape, tb vector.Transform, sb shape.Shape) (Collision, bool) {
	switch a := sa.(type) {
	case *shape.Circle:
		switch b := sb.(type) {
		case *shape.Circle:
			return Circles(ta, a, tb, b)
		case *shape.Polygon:
			return CirclePolygon(ta, a, tb, b)
		}
	case *shape.Polygon:
		switch b := sb.(type) {
		case *shape.Circle:
			col, ok := CirclePolygon(tb, b, ta, a)
			if !ok {
				return Collision{}, false
			}
			return flipCollision(col), true
		case *shape.Polygon:
			return Polygons(ta, a, tb, b)
		}
	}
	return Collision{}, false
}

// flipCollision reverses a manifold's body ordering: the direction is
// negated and each contact's feature id has its flip bit toggled so
// cache lookups remain stable regardless of how a pair was ordered.
func flipCollision(c Collision) Collision {
	c.Direction = c.Direction.Neg()
	for i := 0; i < c.Count; i++ {
		c.Contacts[i].ID ^= 1 << 16
	}
	return c
}
