// Package collision implements narrow-phase contact generation (SAT
// for circle-circle, circle-polygon, and polygon-polygon pairs, with
// manifold clipping for the polygon-polygon case) and raycasting.
package collision

import "github.com/nearplane/rigid2d/vector"

// Contact is a single point in a manifold. ID packs the reference
// and incident edge/vertex indices that produced it, so the solver
// can recognize the "same" contact across frames and warm-start its
// accumulated impulses even as the iteration order changes.
type Contact struct {
	ID             uint32
	Point          vector.Vector2
	Depth          float64
	Timestamp      uint64
	NormalImpulse  float64
	TangentImpulse float64
}

// Collision is a contact manifold between an ordered pair of bodies.
// Direction is the unit separating normal pointing from the first
// body toward the second.
type Collision struct {
	Direction   vector.Vector2
	Friction    float64
	Restitution float64
	Contacts    [2]Contact
	Count       int
}

// featureID packs a reference/incident edge pairing plus an
// orientation bit into a single 32-bit value: bits [0:8) hold the
// reference edge index, bits [8:16) the incident feature index, and
// bit 16 records whether the reference/incident roles were flipped
// relative to the (first body, second body) ordering.
func featureID(flipped bool, refIdx, incIdx int) uint32 {
	id := uint32(refIdx&0xFF) | uint32(incIdx&0xFF)<<8
	if flipped {
		id |= 1 << 16
	}
	return id
}
