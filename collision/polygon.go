package collision

import (
	"math"

	"github.com/nearplane/rigid2d/shape"
	"github.com/nearplane/rigid2d/vector"
)

// Polygons tests two convex polygons for overlap using the
// separating axis theorem, then builds up to a two-point manifold by
// clipping the incident edge against the reference edge's side
// planes. Direction points from a toward b.
func Polygons(ta vector.Transform, a *shape.Polygon, tb vector.Transform, b *shape.Polygon) (Collision, bool) {
	depthA, idxA, sepA := axisOfLeastPenetration(a, ta, b, tb)
	if sepA {
		return Collision{}, false
	}
	depthB, idxB, sepB := axisOfLeastPenetration(b, tb, a, ta)
	if sepB {
		return Collision{}, false
	}

	const tieBreak = 1e-3
	flip := depthB > depthA+tieBreak

	var refPoly, incPoly *shape.Polygon
	var refT, incT vector.Transform
	var refIdx int
	if flip {
		refPoly, refT, refIdx = b, tb, idxB
		incPoly, incT = a, ta
	} else {
		refPoly, refT, refIdx = a, ta, idxA
		incPoly, incT = b, tb
	}

	refNormalWorld := refT.ApplyVector(refPoly.Normals[refIdx])

	// Normals[i] is the normal of edge (Vertices[i-1], Vertices[i]):
	// the previous vertex is the edge's first endpoint.
	incIdx := incidentEdgeIndex(incPoly, incT, refNormalWorld)
	incIdx1 := (incIdx - 1 + len(incPoly.Vertices)) % len(incPoly.Vertices)
	inc1 := incT.Apply(incPoly.Vertices[incIdx1])
	inc2 := incT.Apply(incPoly.Vertices[incIdx])

	refIdx1 := (refIdx - 1 + len(refPoly.Vertices)) % len(refPoly.Vertices)
	ref1 := refT.Apply(refPoly.Vertices[refIdx1])
	ref2 := refT.Apply(refPoly.Vertices[refIdx])

	tangent := ref2.Sub(ref1).Normalize()
	negOffset := -tangent.Dot(ref1)
	posOffset := tangent.Dot(ref2)

	pts := [2]vector.Vector2{inc1, inc2}
	ids := [2]uint32{
		featureID(flip, refIdx, incIdx1),
		featureID(flip, refIdx, incIdx),
	}

	pts, ids, n := clipSegment(pts, ids, tangent.Neg(), negOffset)
	if n < 2 {
		return Collision{}, false
	}
	pts, ids, n = clipSegment(pts, ids, tangent, posOffset)
	if n < 2 {
		return Collision{}, false
	}

	direction := refNormalWorld
	if flip {
		direction = direction.Neg()
	}

	var col Collision
	col.Direction = direction
	for i := 0; i < 2; i++ {
		depth := -refNormalWorld.Dot(pts[i].Sub(ref1))
		if depth >= 0 {
			col.Contacts[col.Count] = Contact{ID: ids[i], Point: pts[i], Depth: depth}
			col.Count++
		}
	}
	if col.Count == 0 {
		return Collision{}, false
	}
	return col, true
}

// axisOfLeastPenetration tests every normal of a against b's support
// point along the negated axis, returning the least-negative (i.e.
// smallest magnitude) penetration depth and its edge index. A
// returned depth >= 0 on any axis means the shapes are separated.
func axisOfLeastPenetration(a *shape.Polygon, ta vector.Transform, b *shape.Polygon, tb vector.Transform) (depth float64, index int, separated bool) {
	best := math.Inf(-1)
	bestIdx := 0
	for i, nLocal := range a.Normals {
		nWorld := ta.ApplyVector(nLocal)
		supportIdx := supportIndex(b, tb.InvertVector(nWorld.Neg()))
		supportWorld := tb.Apply(b.Vertices[supportIdx])
		vertexWorld := ta.Apply(a.Vertices[i])
		d := nWorld.Dot(supportWorld.Sub(vertexWorld))
		if d >= 0 {
			return d, i, true
		}
		if d > best {
			best = d
			bestIdx = i
		}
	}
	return best, bestIdx, false
}

// supportIndex returns the index of the polygon vertex farthest
// along local-space direction d.
func supportIndex(p *shape.Polygon, d vector.Vector2) int {
	best := math.Inf(-1)
	bestIdx := 0
	for i, v := range p.Vertices {
		proj := v.Dot(d)
		if proj > best {
			best = proj
			bestIdx = i
		}
	}
	return bestIdx
}

// incidentEdgeIndex finds the edge on p whose world-space normal is
// most anti-parallel to refNormal: the edge that faces the
// reference face most directly.
func incidentEdgeIndex(p *shape.Polygon, t vector.Transform, refNormal vector.Vector2) int {
	minDot := math.Inf(1)
	idx := 0
	for i, nLocal := range p.Normals {
		nWorld := t.ApplyVector(nLocal)
		d := nWorld.Dot(refNormal)
		if d < minDot {
			minDot = d
			idx = i
		}
	}
	return idx
}

// clipSegment clips the two-point segment pts against the half-plane
// n·x <= offset, carrying ids along (a newly created clip point
// inherits the id of whichever original endpoint was outside the
// plane). Returns the clipped points/ids and how many survived.
func clipSegment(pts [2]vector.Vector2, ids [2]uint32, n vector.Vector2, offset float64) ([2]vector.Vector2, [2]uint32, int) {
	var out [2]vector.Vector2
	var outIds [2]uint32
	count := 0

	d0 := n.Dot(pts[0]) - offset
	d1 := n.Dot(pts[1]) - offset

	if d0 <= 0 {
		out[count], outIds[count] = pts[0], ids[0]
		count++
	}
	if d1 <= 0 {
		out[count], outIds[count] = pts[1], ids[1]
		count++
	}
	if d0*d1 < 0 {
		t := d0 / (d0 - d1)
		out[count] = pts[0].Add(pts[1].Sub(pts[0]).Scale(t))
		if d0 > 0 {
			outIds[count] = ids[0]
		} else {
			outIds[count] = ids[1]
		}
		count++
	}
	return out, outIds, count
}
