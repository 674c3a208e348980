package world

import (
	"github.com/nearplane/rigid2d/body"
	"github.com/nearplane/rigid2d/collision"
	"github.com/nearplane/rigid2d/vector"
)

// PairKey identifies a contacting body pair. A is always the body
// with the lower Id so the same pair hashes to the same cache entry
// regardless of which order the narrow-phase visits the two bodies
// in on a given step.
type PairKey struct {
	A, B *body.Body
}

func makePairKey(a, b *body.Body) PairKey {
	if a.Id() <= b.Id() {
		return PairKey{A: a, B: b}
	}
	return PairKey{A: b, B: a}
}

// Handler holds the two optional user callbacks invoked once per
// cache entry with count > 0, before and after the velocity solve.
// Callbacks run synchronously on the step caller's thread and must
// not mutate the world's body registry directly -- AddBody and
// RemoveBody are the only sanctioned channel, since they enqueue ops
// that apply after the step completes.
type Handler struct {
	PreStep  func(pair PairKey, col *collision.Collision)
	PostStep func(pair PairKey, col *collision.Collision)
}

// cacheEntry is a ContactCache value: the manifold from the most
// recent narrow-phase run for a pair, plus the bookkeeping the step
// loop needs to warm-start and purge it. dir holds the two bodies in
// the orientation the manifold's Direction and Contact points were
// actually computed in (lower slice index first this step), which
// need not match PairKey's Id-based A/B order.
type cacheEntry struct {
	collision.Collision
	timestamp  uint64
	dirA, dirB *body.Body

	// Solver scratch, recomputed once per step by precomputeMasses and
	// reused across every velocity-solve iteration that step.
	tangent                 vector.Vector2
	ra, rb                  [2]vector.Vector2
	normalMass, tangentMass [2]float64
}
