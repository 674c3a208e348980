// Package body implements rigid-body state: type, flags, motion, and
// semi-implicit Euler integration. A Body attaches an optional
// shape.Shape reference for mass/inertia/AABB purposes but does not
// own the shape's storage (see shape.Arena for caller-owned shape
// lifecycle).
package body

import (
	"github.com/nearplane/rigid2d/shape"
	"github.com/nearplane/rigid2d/vector"
)

// Type distinguishes how a body participates in the simulation.
type Type int

const (
	Static Type = iota
	Kinematic
	Dynamic
)

// Flags is a bitset of per-body behavior overrides.
type Flags uint8

const (
	// InfiniteMass forces a dynamic body's mass/inv_mass to zero
	// regardless of its attached shape.
	InfiniteMass Flags = 1 << iota
	// InfiniteInertia forces a dynamic body's inertia/inv_inertia to
	// zero regardless of its attached shape.
	InfiniteInertia
)

// Has reports whether all bits in want are set in f.
func (f Flags) Has(want Flags) bool { return f&want == want }

// Motion holds the mass properties and kinematic state of a body.
type Motion struct {
	Mass, InvMass       float64
	Inertia, InvInertia float64
	GravityScale        float64
	Velocity            vector.Vector2
	AngularVelocity     float64
	Force               vector.Vector2
	Torque              float64
}

// Body is a single rigid body in the simulation.
type Body struct {
	id        Id
	typ       Type
	flags     Flags
	shape     shape.Shape
	transform vector.Transform
	motion    Motion
	aabb      vector.AABB
	userData  interface{}
}

// Id identifies a body within a world. It is a simple incrementing
// counter (not a UUID): body creation is a hot path and doesn't need
// a globally-unique identifier, only a stable one for the lifetime of
// the world that created it.
type Id uint32

// New creates a body of the given type at position, with no shape
// attached, default gravity scale 1, and zero velocity/forces.
func New(id Id, typ Type, position vector.Vector2) *Body {
	b := &Body{
		id:        id,
		typ:       typ,
		transform: vector.NewTransform(position, 0),
		motion:    Motion{GravityScale: 1},
	}
	b.refreshMass()
	b.refreshAABB()
	return b
}

// NewWithShape creates a body of the given type at position with s
// attached.
func NewWithShape(id Id, typ Type, position vector.Vector2, s shape.Shape) *Body {
	b := New(id, typ, position)
	b.SetShape(s)
	return b
}

// Id returns the body's identifier.
func (b *Body) Id() Id { return b.id }

// Type returns the body's type.
func (b *Body) Type() Type { return b.typ }

// SetType changes the body's type and recomputes mass, since Static
// and Kinematic bodies always have zero inverse mass/inertia.
func (b *Body) SetType(typ Type) {
	b.typ = typ
	b.refreshMass()
}

// Flags returns the body's current flag bitset.
func (b *Body) Flags() Flags { return b.flags }

// SetFlags replaces the body's flags and recomputes mass.
func (b *Body) SetFlags(f Flags) {
	b.flags = f
	b.refreshMass()
}

// Shape returns the body's attached shape, or nil if none.
func (b *Body) Shape() shape.Shape { return b.shape }

// SetShape attaches s to the body (nil detaches) and recomputes mass
// and the cached AABB.
func (b *Body) SetShape(s shape.Shape) {
	b.shape = s
	b.refreshMass()
	b.refreshAABB()
}

// Transform returns the body's current position/rotation.
func (b *Body) Transform() vector.Transform { return b.transform }

// Position returns the body's current position.
func (b *Body) Position() vector.Vector2 { return b.transform.Position }

// SetPosition moves the body and refreshes its cached AABB.
func (b *Body) SetPosition(p vector.Vector2) {
	b.transform.Position = p
	b.refreshAABB()
}

// Angle returns the body's current orientation in [0, 2π).
func (b *Body) Angle() float64 { return b.transform.Angle }

// SetAngle sets the body's orientation, normalizing to [0, 2π) and
// refreshing the cached sin/cos and AABB.
func (b *Body) SetAngle(angle float64) {
	b.transform = b.transform.SetAngle(angle)
	b.refreshAABB()
}

// Velocity returns the body's linear velocity.
func (b *Body) Velocity() vector.Vector2 { return b.motion.Velocity }

// SetVelocity sets the body's linear velocity. A no-op for Static
// bodies, whose velocity is always zero.
func (b *Body) SetVelocity(v vector.Vector2) {
	if b.typ == Static {
		return
	}
	b.motion.Velocity = v
}

// AngularVelocity returns the body's angular velocity.
func (b *Body) AngularVelocity() float64 { return b.motion.AngularVelocity }

// SetAngularVelocity sets the body's angular velocity. A no-op for
// Static bodies.
func (b *Body) SetAngularVelocity(w float64) {
	if b.typ == Static {
		return
	}
	b.motion.AngularVelocity = w
}

// GravityScale returns the multiplier applied to world gravity for
// this body.
func (b *Body) GravityScale() float64 { return b.motion.GravityScale }

// SetGravityScale sets the body's gravity multiplier.
func (b *Body) SetGravityScale(s float64) { b.motion.GravityScale = s }

// Mass, InvMass, Inertia, InvInertia expose the body's current mass
// properties, recomputed whenever shape, flags, or type change.
func (b *Body) Mass() float64       { return b.motion.Mass }
func (b *Body) InvMass() float64    { return b.motion.InvMass }
func (b *Body) Inertia() float64    { return b.motion.Inertia }
func (b *Body) InvInertia() float64 { return b.motion.InvInertia }

// AABB returns the body's cached bounding box, kept in sync with its
// shape and transform by every setter that touches either.
func (b *Body) AABB() vector.AABB { return b.aabb }

// UserData returns the caller-attached opaque payload.
func (b *Body) UserData() interface{} { return b.userData }

// SetUserData attaches an opaque payload to the body.
func (b *Body) SetUserData(data interface{}) { b.userData = data }

// ContainsPoint reports whether world-space point p lies within the
// body's shape. Always false for a body with no shape.
func (b *Body) ContainsPoint(p vector.Vector2) bool {
	if b.shape == nil {
		return false
	}
	return shape.ContainsPoint(b.shape, b.transform, p)
}

// ClearForces zeroes accumulated force and torque, called once per
// step after integration.
func (b *Body) ClearForces() {
	b.motion.Force = vector.Zero
	b.motion.Torque = 0
}

// ApplyForce accumulates a force applied at world-space point, which
// contributes both linear force and torque about the body's center.
func (b *Body) ApplyForce(point, force vector.Vector2) {
	if b.motion.InvMass <= 0 && b.motion.InvInertia <= 0 {
		return
	}
	b.motion.Force = b.motion.Force.Add(force)
	r := point.Sub(b.transform.Position)
	b.motion.Torque += r.Cross(force)
}

// ApplyGravity accumulates force += gravityScale * mass * g. A no-op
// for bodies with zero mass (static, infinite-mass, or shapeless).
func (b *Body) ApplyGravity(g vector.Vector2) {
	if b.motion.Mass <= 0 {
		return
	}
	b.motion.Force = b.motion.Force.Add(g.Scale(b.motion.GravityScale * b.motion.Mass))
}

// ApplyImpulse applies an instantaneous impulse at world-space point
// r, updating linear and angular velocity directly: v += J*invMass,
// ω += invInertia * cross(r - position, J).
func (b *Body) ApplyImpulse(point, impulse vector.Vector2) {
	if b.motion.InvMass <= 0 && b.motion.InvInertia <= 0 {
		return
	}
	b.motion.Velocity = b.motion.Velocity.Add(impulse.Scale(b.motion.InvMass))
	r := point.Sub(b.transform.Position)
	b.motion.AngularVelocity += b.motion.InvInertia * r.Cross(impulse)
}

// Integrate advances velocity then position by dt using
// semi-implicit Euler. A no-op for dt <= 0. The velocity step is
// skipped when InvMass <= 0 (the body cannot accelerate); the
// position step is skipped for Static bodies.
func (b *Body) Integrate(dt float64) {
	if dt <= 0 {
		return
	}
	b.IntegrateVelocity(dt)
	b.IntegratePosition(dt)
}

// IntegrateVelocity applies force/torque to velocity/angular velocity
// by dt (the first half of semi-implicit Euler). A no-op for dt <= 0
// or InvMass <= 0.
// Used by the world step loop, which integrates velocity before
// running the constraint solver and integrates position only after.
func (b *Body) IntegrateVelocity(dt float64) {
	if dt <= 0 || b.motion.InvMass <= 0 {
		return
	}
	b.motion.Velocity = b.motion.Velocity.Add(b.motion.Force.Scale(b.motion.InvMass * dt))
	if b.motion.InvInertia > 0 {
		b.motion.AngularVelocity += b.motion.Torque * b.motion.InvInertia * dt
	}
}

// IntegratePosition applies the current velocity/angular velocity to
// position/angle by dt (the second half of semi-implicit Euler). A
// no-op for dt <= 0 or for Static bodies.
func (b *Body) IntegratePosition(dt float64) {
	if dt <= 0 || b.typ == Static {
		return
	}
	b.transform.Position = b.transform.Position.Add(b.motion.Velocity.Scale(dt))
	b.SetAngle(b.transform.Angle + b.motion.AngularVelocity*dt)
}

// refreshMass recomputes Mass/InvMass/Inertia/InvInertia from the
// current type, flags, and shape, per the body invariants: Static and
// Kinematic bodies always have zero inverse mass/inertia; a Dynamic
// body with InfiniteMass set or no shape has zero mass.
func (b *Body) refreshMass() {
	m := &b.motion
	if b.typ != Dynamic || b.shape == nil || b.flags.Has(InfiniteMass) {
		m.Mass, m.InvMass = 0, 0
	} else {
		m.Mass = b.shape.Mass()
		if m.Mass > 0 {
			m.InvMass = 1 / m.Mass
		} else {
			m.InvMass = 0
		}
	}
	if b.typ != Dynamic || b.shape == nil || b.flags.Has(InfiniteInertia) {
		m.Inertia, m.InvInertia = 0, 0
	} else {
		m.Inertia = b.shape.Inertia()
		if m.Inertia > 0 {
			m.InvInertia = 1 / m.Inertia
		} else {
			m.InvInertia = 0
		}
	}
	if b.typ == Static {
		m.Velocity, m.AngularVelocity = vector.Zero, 0
	}
}

// refreshAABB recomputes the cached bounding box from the current
// shape and transform.
func (b *Body) refreshAABB() {
	if b.shape == nil {
		b.aabb = vector.AABB{X: b.transform.Position.X, Y: b.transform.Position.Y}
		return
	}
	b.aabb = b.shape.AABB(b.transform)
}
