// Package shape implements the collision primitives (circles and
// convex polygons) that bodies attach for mass, inertia, bounding-box
// and narrow-phase purposes.
package shape

import (
	"math"

	"github.com/nearplane/rigid2d/vector"
)

// MaxVertexCount is the maximum number of vertices/normals a Polygon
// can hold (GEOMETRY_MAX_VERTEX_COUNT).
const MaxVertexCount = 8

// Material carries the physical properties a shape contributes to a
// body: density for mass computation, friction and restitution for
// the contact solver. All fields are expected to be non-negative.
type Material struct {
	Density     float64
	Friction    float64
	Restitution float64
}

// Kind identifies which concrete shape a Shape value is.
type Kind int

const (
	// KindNone is the zero Kind. No shape reports it: constructors
	// return nil on failure (negative or zero radius/width/height).
	KindNone Kind = iota
	KindCircle
	KindPolygon
)

// Shape is the common interface for circles and polygons. A Shape is
// always defined in local space; combine it with a vector.Transform
// to place it in the world.
type Shape interface {
	Kind() Kind
	Material() Material
	SetMaterial(m Material)
	Area() float64
	Mass() float64
	Inertia() float64
	AABB(t vector.Transform) vector.AABB
}

// Circle is a circular shape of a fixed radius centered at the local
// origin.
type Circle struct {
	Radius   float64
	material Material
	area     float64
}

// NewCircle creates a Circle shape. Returns nil when radius <= 0.
func NewCircle(m Material, radius float64) *Circle {
	if radius <= 0 {
		return nil
	}
	return &Circle{Radius: radius, material: m, area: math.Pi * radius * radius}
}

func (c *Circle) Kind() Kind                { return KindCircle }
func (c *Circle) Material() Material        { return c.material }
func (c *Circle) SetMaterial(m Material)    { c.material = m }
func (c *Circle) Area() float64             { return c.area }
func (c *Circle) Mass() float64             { return c.material.Density * c.area }
func (c *Circle) Inertia() float64 {
	mass := c.Mass()
	return 0.5 * mass * c.Radius * c.Radius
}

// SetRadius updates the circle's radius and cached area. A
// non-positive radius is a no-op.
func (c *Circle) SetRadius(radius float64) {
	if radius <= 0 {
		return
	}
	c.Radius = radius
	c.area = math.Pi * radius * radius
}

// AABB returns the axis-aligned bounding box of the circle under t:
// a square of side 2*Radius centered at t.Position.
func (c *Circle) AABB(t vector.Transform) vector.AABB {
	return vector.AABB{
		X: t.Position.X - c.Radius, Y: t.Position.Y - c.Radius,
		Width: 2 * c.Radius, Height: 2 * c.Radius,
	}
}

// Polygon is a convex polygon with up to MaxVertexCount vertices in
// counter-clockwise order. Normals[i] is the outward unit normal of
// the edge (Vertices[i-1], Vertices[i]).
type Polygon struct {
	Vertices []vector.Vector2
	Normals  []vector.Vector2
	material Material
	area     float64
}

// NewPolygon reduces points to its convex hull (gift wrapping) and
// builds a Polygon from the result. Returns nil if fewer than 3
// distinct points survive hulling or the hull is degenerate (zero
// area).
func NewPolygon(m Material, points []vector.Vector2) *Polygon {
	hull := ConvexHull(points)
	if len(hull) < 3 {
		return nil
	}
	if len(hull) > MaxVertexCount {
		hull = hull[:MaxVertexCount]
	}
	normals := make([]vector.Vector2, len(hull))
	for i := range hull {
		j := (i - 1 + len(hull)) % len(hull)
		edge := hull[i].Sub(hull[j])
		// hull is wound counter-clockwise, so the interior lies to the
		// left of the forward edge direction and the outward normal is
		// the right-normal, not the left.
		normals[i] = edge.RightNormal()
	}
	area := polygonArea(hull)
	if area <= 0 {
		return nil
	}
	return &Polygon{Vertices: hull, Normals: normals, material: m, area: area}
}

// NewRectangle builds an axis-aligned rectangle centered at the
// local origin with the given width and height. Returns nil when
// w <= 0 or h <= 0.
func NewRectangle(m Material, w, h float64) *Polygon {
	if w <= 0 || h <= 0 {
		return nil
	}
	hx, hy := w/2, h/2
	return NewPolygon(m, []vector.Vector2{
		{X: -hx, Y: -hy}, {X: hx, Y: -hy}, {X: hx, Y: hy}, {X: -hx, Y: hy},
	})
}

func (p *Polygon) Kind() Kind             { return KindPolygon }
func (p *Polygon) Material() Material     { return p.material }
func (p *Polygon) SetMaterial(m Material) { p.material = m }
func (p *Polygon) Area() float64          { return p.area }
func (p *Polygon) Mass() float64          { return p.material.Density * p.area }

// Inertia returns density * Σ cross(vj, vi)(vj·vj + vj·vi + vi·vi) /
// (6 * Σ cross(vj, vi)) over the edges, taken about the local origin
// (not the centroid). That is the origin moment of inertia divided by
// the polygon's area, so it equals the mass moment of inertia only
// for a polygon of unit area.
func (p *Polygon) Inertia() float64 {
	var numer, denom float64
	n := len(p.Vertices)
	for i := 0; i < n; i++ {
		vi := p.Vertices[i]
		vj := p.Vertices[(i+1)%n]
		cr := vj.Cross(vi)
		numer += cr * (vj.Dot(vj) + vj.Dot(vi) + vi.Dot(vi))
		denom += cr
	}
	if vector.AeqZ(denom) {
		return 0
	}
	return p.material.Density * numer / (6 * denom)
}

// AABB returns the axis-extents of the transformed vertices.
func (p *Polygon) AABB(t vector.Transform) vector.AABB {
	first := t.Apply(p.Vertices[0])
	minX, minY, maxX, maxY := first.X, first.Y, first.X, first.Y
	for _, v := range p.Vertices[1:] {
		w := t.Apply(v)
		if w.X < minX {
			minX = w.X
		}
		if w.X > maxX {
			maxX = w.X
		}
		if w.Y < minY {
			minY = w.Y
		}
		if w.Y > maxY {
			maxY = w.Y
		}
	}
	return vector.AABB{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// SetVertices replaces the polygon's vertex set, re-running the
// convex hull and normal/area computation exactly as construction
// does.
func (p *Polygon) SetVertices(points []vector.Vector2) {
	rebuilt := NewPolygon(p.material, points)
	if rebuilt == nil {
		return
	}
	p.Vertices, p.Normals, p.area = rebuilt.Vertices, rebuilt.Normals, rebuilt.area
}

// polygonArea computes the shoelace-formula area of a counter-clockwise
// simple polygon.
func polygonArea(verts []vector.Vector2) float64 {
	var sum float64
	n := len(verts)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += verts[i].Cross(verts[j])
	}
	return math.Abs(sum) / 2
}
