// Package scene loads YAML scene descriptions -- gravity, broad-phase
// cell size, and a list of bodies/shapes/materials -- and populates a
// world.World from them. It exists purely as a construction
// convenience for tests and tooling; it carries no simulation
// semantics beyond what body/shape/world already define.
package scene

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nearplane/rigid2d/body"
	"github.com/nearplane/rigid2d/shape"
	"github.com/nearplane/rigid2d/vector"
	"github.com/nearplane/rigid2d/world"
)

// bodyTypes maps the YAML "type" string to a body.Type, the same
// string-keyed lookup style used to resolve shader stage/attribute
// names in the engine's own yaml loaders.
var bodyTypes = map[string]body.Type{
	"static":    body.Static,
	"kinematic": body.Kinematic,
	"dynamic":   body.Dynamic,
}

var bodyFlags = map[string]body.Flags{
	"infinite_mass":    body.InfiniteMass,
	"infinite_inertia": body.InfiniteInertia,
}

// Description is the YAML-decodable root of a scene file.
type Description struct {
	Gravity  Vec2    `yaml:"gravity"`
	CellSize float64 `yaml:"cell_size"`
	Bodies   []Body  `yaml:"bodies"`
}

// Vec2 is the YAML-decodable form of a vector.Vector2.
type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (v Vec2) toVector() vector.Vector2 { return vector.Vector2{X: v.X, Y: v.Y} }

// Material is the YAML-decodable form of shape.Material.
type Material struct {
	Density     float64 `yaml:"density"`
	Friction    float64 `yaml:"friction"`
	Restitution float64 `yaml:"restitution"`
}

func (m Material) toMaterial() shape.Material {
	return shape.Material{Density: m.Density, Friction: m.Friction, Restitution: m.Restitution}
}

// Shape is the YAML-decodable description of a body's attached
// shape. Kind selects which fields apply: "circle" uses Radius,
// "rectangle" uses Width/Height, "polygon" uses Vertices (reduced to
// its convex hull exactly as shape.NewPolygon does).
type Shape struct {
	Kind     string  `yaml:"kind"`
	Radius   float64 `yaml:"radius"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Vertices []Vec2  `yaml:"vertices"`
}

// Body is the YAML-decodable description of a single body.
type Body struct {
	Type         string   `yaml:"type"`
	Position     Vec2     `yaml:"position"`
	Angle        float64  `yaml:"angle"`
	GravityScale *float64 `yaml:"gravity_scale"`
	Flags        []string `yaml:"flags"`
	Material     Material `yaml:"material"`
	Shape        *Shape   `yaml:"shape"`
}

// Load reads and decodes a scene YAML file. Read and YAML decoding
// errors are returned wrapped; body types, flags and shape kinds are
// not checked here but by Populate. Errors are returned since reading
// an external file is an I/O boundary distinct from the simulation
// core's no-op/zero-value error discipline.
func Load(path string) (*Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: read %s: %w", path, err)
	}
	var d Description
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("scene: yaml %s: %w", path, err)
	}
	return &d, nil
}

// Populate constructs a shape.Shape and body.Body for every entry in
// d.Bodies, adds each to w, and returns the resulting ids in file
// order. An unrecognized body type or shape kind aborts with an
// error; bodies already added to w before the error are left in
// place (the caller may w.Release() to discard them).
func (d *Description) Populate(w *world.World) ([]body.Id, error) {
	ids := make([]body.Id, 0, len(d.Bodies))
	for i, bd := range d.Bodies {
		typ, ok := bodyTypes[bd.Type]
		if !ok {
			return ids, fmt.Errorf("scene: body %d: unrecognized type %q", i, bd.Type)
		}

		var s shape.Shape
		if bd.Shape != nil {
			built, err := buildShape(*bd.Shape, bd.Material.toMaterial())
			if err != nil {
				return ids, fmt.Errorf("scene: body %d: %w", i, err)
			}
			s = built
		}

		b := w.CreateBodyFromShape(typ, bd.Position.toVector(), s)
		if b == nil {
			return ids, fmt.Errorf("scene: body %d: world rejected add (pending-ops queue full)", i)
		}
		if bd.Angle != 0 {
			b.SetAngle(bd.Angle)
		}
		if bd.GravityScale != nil {
			b.SetGravityScale(*bd.GravityScale)
		}
		var flags body.Flags
		for _, name := range bd.Flags {
			f, ok := bodyFlags[name]
			if !ok {
				return ids, fmt.Errorf("scene: body %d: unrecognized flag %q", i, name)
			}
			flags |= f
		}
		if flags != 0 {
			b.SetFlags(flags)
		}
		ids = append(ids, b.Id())
	}
	return ids, nil
}

func buildShape(sd Shape, m shape.Material) (shape.Shape, error) {
	switch sd.Kind {
	case "circle":
		c := shape.NewCircle(m, sd.Radius)
		if c == nil {
			return nil, fmt.Errorf("invalid circle radius %v", sd.Radius)
		}
		return c, nil
	case "rectangle":
		r := shape.NewRectangle(m, sd.Width, sd.Height)
		if r == nil {
			return nil, fmt.Errorf("invalid rectangle dimensions %vx%v", sd.Width, sd.Height)
		}
		return r, nil
	case "polygon":
		points := make([]vector.Vector2, len(sd.Vertices))
		for i, v := range sd.Vertices {
			points[i] = v.toVector()
		}
		p := shape.NewPolygon(m, points)
		if p == nil {
			return nil, fmt.Errorf("degenerate polygon vertex set (%d points)", len(points))
		}
		return p, nil
	}
	return nil, fmt.Errorf("unrecognized shape kind %q", sd.Kind)
}
