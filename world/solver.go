package world

import (
	"github.com/nearplane/rigid2d/body"
	"github.com/nearplane/rigid2d/vector"
)

// precomputeMasses computes, for every live cache entry, the scratch
// quantities (contact arms, effective normal/tangent mass) the
// velocity solver needs every iteration. Running this once per step
// instead of once per iteration is the whole point of warm-starting:
// the expensive part of the solve is amortized over ITER_COUNT passes.
func (w *World) precomputeMasses() {
	for _, entry := range w.cache {
		if entry.Count == 0 {
			continue
		}
		a, b := entry.dirA, entry.dirB
		entry.tangent = entry.Direction.LeftNormal()
		for k := 0; k < entry.Count; k++ {
			c := &entry.Contacts[k]
			ra := c.Point.Sub(a.Position())
			rb := c.Point.Sub(b.Position())
			entry.ra[k], entry.rb[k] = ra, rb

			rnA := ra.Cross(entry.Direction)
			rnB := rb.Cross(entry.Direction)
			kNormal := a.InvMass() + b.InvMass() +
				a.InvInertia()*rnA*rnA + b.InvInertia()*rnB*rnB
			entry.normalMass[k] = invOrZero(kNormal)

			rtA := ra.Cross(entry.tangent)
			rtB := rb.Cross(entry.tangent)
			kTangent := a.InvMass() + b.InvMass() +
				a.InvInertia()*rtA*rtA + b.InvInertia()*rtB*rtB
			entry.tangentMass[k] = invOrZero(kTangent)
		}
	}
}

func invOrZero(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return 1 / x
}

// relativeVelocity returns the velocity of b's contact point relative
// to a's, i.e. (v_b + ω_b × r_b) - (v_a + ω_a × r_a).
func relativeVelocity(a, b *body.Body, ra, rb vector.Vector2) vector.Vector2 {
	vb := b.Velocity().Add(vector.CrossScalar(b.AngularVelocity(), rb))
	va := a.Velocity().Add(vector.CrossScalar(a.AngularVelocity(), ra))
	return vb.Sub(va)
}

// solveVelocities runs ITER_COUNT sequential-impulse iterations over
// every live cache entry: an inverse-time Baumgarte-biased normal
// impulse followed by a Coulomb-friction tangent impulse, both
// clamped on their running accumulated totals rather than per-pass,
// so warm-started impulses decay or grow smoothly across steps.
func (w *World) solveVelocities(dt float64) {
	invDt := 0.0
	if dt > 0 {
		invDt = 1 / dt
	}
	for iter := 0; iter < w.iterations; iter++ {
		for _, entry := range w.cache {
			if entry.Count == 0 {
				continue
			}
			w.resolveCollision(entry, invDt)
		}
	}
}

func (w *World) resolveCollision(entry *cacheEntry, invDt float64) {
	a, b := entry.dirA, entry.dirB
	normal := entry.Direction
	tangent := entry.tangent

	for k := 0; k < entry.Count; k++ {
		c := &entry.Contacts[k]
		if entry.normalMass[k] <= 0 {
			continue
		}
		ra, rb := entry.ra[k], entry.rb[k]
		relVel := relativeVelocity(a, b, ra, rb)

		vn := relVel.Dot(normal)
		bias := -w.baumgarte * invDt * minFloat(0, -c.Depth+w.slop)
		lambda := (-(1+entry.Restitution)*vn + bias) * entry.normalMass[k]

		newImpulse := maxFloat(0, c.NormalImpulse+lambda)
		delta := newImpulse - c.NormalImpulse
		c.NormalImpulse = newImpulse

		impulse := normal.Scale(delta)
		b.ApplyImpulse(c.Point, impulse)
		a.ApplyImpulse(c.Point, impulse.Neg())

		relVel = relativeVelocity(a, b, ra, rb)
		vt := relVel.Dot(tangent)
		lambdaT := -vt * entry.tangentMass[k]

		maxFriction := entry.Friction * c.NormalImpulse
		newTangent := vector.Clamp(c.TangentImpulse+lambdaT, -maxFriction, maxFriction)
		deltaT := newTangent - c.TangentImpulse
		c.TangentImpulse = newTangent

		tangentImpulse := tangent.Scale(deltaT)
		b.ApplyImpulse(c.Point, tangentImpulse)
		a.ApplyImpulse(c.Point, tangentImpulse.Neg())
	}
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
