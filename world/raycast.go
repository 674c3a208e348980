package world

import (
	"github.com/nearplane/rigid2d/body"
	"github.com/nearplane/rigid2d/collision"
	"github.com/nearplane/rigid2d/vector"
)

// RayHit pairs a collision.Hit with the body it was found on.
type RayHit struct {
	Body *body.Body
	collision.Hit
}

// CastRay rebuilds the broad-phase, queries it with the ray's own
// bounding box, and invokes f once for every body whose shape the ray
// actually intersects (closest point per body, per collision.Cast).
// f is called in broad-phase candidate order, which is
// implementation-defined. A ray with MaxDistance <= 0 never hits
// anything.
func (w *World) CastRay(r collision.Ray, f func(hit RayHit, ctx any), ctx any) {
	if r.MaxDistance <= 0 {
		return
	}
	w.rebuildBroadPhase()

	end := r.Origin.Add(r.Dir.Normalize().Scale(r.MaxDistance))
	aabb := rayAABB(r.Origin, end)

	w.hash.Query(aabb, func(id int, qctx any) {
		if id < 0 || id >= len(w.bodies) {
			return
		}
		b := w.bodies[id]
		if b.Shape() == nil {
			return
		}
		hit, ok := collision.Cast(r, b.Transform(), b.Shape())
		if !ok {
			return
		}
		f(RayHit{Body: b, Hit: hit}, ctx)
	}, nil)
}

func rayAABB(origin, end vector.Vector2) vector.AABB {
	minX, maxX := origin.X, end.X
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY := origin.Y, end.Y
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	return vector.AABB{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
