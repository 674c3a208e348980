package vector

import "math"

// Rotation caches the sine and cosine of an angle so repeated vector
// rotations by the same transform don't keep calling math.Sincos.
type Rotation struct {
	Sin, Cos float64
}

// NewRotation builds a Rotation for the given angle in radians.
func NewRotation(angle float64) Rotation {
	s, c := math.Sincos(angle)
	return Rotation{Sin: s, Cos: c}
}

// IdentityRotation is the zero-angle rotation.
var IdentityRotation = Rotation{Sin: 0, Cos: 1}

// Transform is a 2D rigid transform: a position and a cached
// rotation. Invariant: Rotation.Sin = sin(Angle), Rotation.Cos =
// cos(Angle), and Angle is normalized to [0, 2π).
type Transform struct {
	Position Vector2
	Rotation Rotation
	Angle    float64
}

// NewTransform builds a Transform at the given position and angle.
// The angle is normalized and the rotation cache is populated.
func NewTransform(position Vector2, angle float64) Transform {
	a := NormalizeAngle(angle)
	return Transform{Position: position, Rotation: NewRotation(a), Angle: a}
}

// Identity is the transform at the origin with zero rotation.
var Identity = Transform{Rotation: IdentityRotation}

// SetAngle returns a copy of t with its angle set to angle,
// normalized to [0, 2π), refreshing the cached sin/cos.
func (t Transform) SetAngle(angle float64) Transform {
	a := NormalizeAngle(angle)
	t.Angle = a
	t.Rotation = NewRotation(a)
	return t
}

// Apply rotates then translates the local-space point p into world
// space using this transform.
func (t Transform) Apply(p Vector2) Vector2 {
	return p.RotateCached(t.Rotation).Add(t.Position)
}

// ApplyVector rotates (but does not translate) the local-space
// direction v into world space.
func (t Transform) ApplyVector(v Vector2) Vector2 {
	return v.RotateCached(t.Rotation)
}

// Invert maps the world-space point p into this transform's local
// space: the inverse of Apply.
func (t Transform) Invert(p Vector2) Vector2 {
	rel := p.Sub(t.Position)
	// Rotating by -angle: (cos, -sin) is the inverse rotation of (cos, sin).
	inv := Rotation{Sin: -t.Rotation.Sin, Cos: t.Rotation.Cos}
	return rel.RotateCached(inv)
}

// InvertVector maps the world-space direction v into this
// transform's local space, ignoring translation.
func (t Transform) InvertVector(v Vector2) Vector2 {
	inv := Rotation{Sin: -t.Rotation.Sin, Cos: t.Rotation.Cos}
	return v.RotateCached(inv)
}
