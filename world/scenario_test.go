package world

import (
	"testing"

	"github.com/nearplane/rigid2d/body"
	"github.com/nearplane/rigid2d/collision"
	"github.com/nearplane/rigid2d/shape"
	"github.com/nearplane/rigid2d/vector"
)

// Scenario 1: a circle falls under gravity and comes to rest on a
// static ground box. The rest height is derived from this
// implementation's own rectangle/circle geometry (ground's near face
// minus the circle's radius) rather than pinned to an external
// reference value, since the two conventions for "which face is
// near" depend on the sign of gravity.y, which this package documents
// as +y-down.
func TestScenarioCircleRestsOnGroundBox(t *testing.T) {
	w := New(vector.Vector2{X: 0, Y: 9.8}, 4)
	groundHalfHeight := 1.0
	groundY := 4.0
	ground := shape.NewRectangle(shape.Material{Density: 1, Friction: 0.3}, 16, 2*groundHalfHeight)
	w.CreateBodyFromShape(body.Static, vector.Vector2{X: 0, Y: groundY}, ground)

	radius := 0.5
	circle := shape.NewCircle(shape.Material{Density: 1, Restitution: 0}, radius)
	c := w.CreateBodyFromShape(body.Dynamic, vector.Vector2{X: 0, Y: 0}, circle)
	w.Step(1.0 / 60) // drain creates

	for i := 0; i < 120; i++ {
		w.Step(1.0 / 60)
	}

	expectedRestY := groundY - groundHalfHeight - radius
	if diff := c.Position().Y - expectedRestY; diff > 0.2 || diff < -0.2 {
		t.Errorf("expected the circle to rest near y=%v, got y=%v", expectedRestY, c.Position().Y)
	}
	if c.Velocity().Y > 0.5 || c.Velocity().Y < -0.5 {
		t.Errorf("expected a small resting vertical velocity, got %v", c.Velocity().Y)
	}
}

// Scenario 2: a tower of boxes stacked above a static ground settles
// without the stack order inverting and without the bottom box
// drifting far from its starting position.
func TestScenarioBoxTowerRemainsOrdered(t *testing.T) {
	w := New(vector.Vector2{X: 0, Y: 9.8}, 4)
	side := 1.25
	groundHalfHeight := 0.5
	groundY := 10.0
	ground := shape.NewRectangle(shape.Material{Density: 1, Friction: 0.5}, 20, 2*groundHalfHeight)
	w.CreateBodyFromShape(body.Static, vector.Vector2{X: 0, Y: groundY}, ground)

	const towerSize = 10
	boxes := make([]*body.Body, towerSize)
	top := groundY - groundHalfHeight
	for i := 0; i < towerSize; i++ {
		m := shape.Material{Density: 1, Friction: 0.5}
		b := shape.NewRectangle(m, side, side)
		y := top - side*float64(i) - side/2
		boxes[i] = w.CreateBodyFromShape(body.Dynamic, vector.Vector2{X: 0, Y: y}, b)
	}
	w.Step(1.0 / 60) // drain creates
	bottomStart := boxes[0].Position().Y

	for i := 0; i < 600; i++ {
		w.Step(1.0 / 60)
	}

	if diff := boxes[0].Position().Y - bottomStart; diff > 0.3 || diff < -0.3 {
		t.Errorf("expected the bottom box to stay near its initial rest position, moved %v", diff)
	}
	for i := 1; i < towerSize; i++ {
		if boxes[i].Position().Y >= boxes[i-1].Position().Y {
			t.Errorf("expected box %d to remain above box %d (smaller y), got %v vs %v",
				i, i-1, boxes[i].Position().Y, boxes[i-1].Position().Y)
		}
	}
}

// Scenario 3: a circle and an axis-aligned box pressed together by
// exactly their combined extents produce a single contact with a
// depth equal to the circle's radius and a direction pointing from
// the circle toward the box.
func TestScenarioCirclePolygonRectangleOverlap(t *testing.T) {
	c := shape.NewCircle(shape.Material{}, 1)
	r := shape.NewRectangle(shape.Material{}, 4, 3)
	tc := vector.NewTransform(vector.Vector2{X: -1, Y: 0}, 0)
	tr := vector.NewTransform(vector.Vector2{X: 1, Y: 0}, 0)

	col, ok := collision.CirclePolygon(tc, c, tr, r)
	if !ok {
		t.Fatal("expected an overlap")
	}
	if col.Count != 1 {
		t.Errorf("expected count 1, got %d", col.Count)
	}
	if !vector.Aeq(col.Contacts[0].Depth, 1.0) {
		t.Errorf("expected depth 1.0, got %v", col.Contacts[0].Depth)
	}
	if !vector.Aeq(col.Direction.X, 1) || !vector.Aeq(col.Direction.Y, 0) {
		t.Errorf("expected direction (1, 0), got %v", col.Direction)
	}
}

// Scenario 6: a raycast that passes through a circle's center hits
// at the near intersection point; rotating the same ray 90 degrees
// so it no longer crosses the circle misses entirely.
func TestScenarioRaycastHitAndMiss(t *testing.T) {
	c := shape.NewCircle(shape.Material{}, 1)
	tr := vector.Identity

	hitRay := collision.Ray{Origin: vector.Vector2{X: -5, Y: 0}, Dir: vector.Vector2{X: 1, Y: 0}, MaxDistance: 10}
	hit, ok := collision.CastCircle(hitRay, tr, c)
	if !ok {
		t.Fatal("expected a hit")
	}
	if !vector.Aeq(hit.Point.X, -1) || !vector.Aeq(hit.Point.Y, 0) {
		t.Errorf("expected hit point (-1, 0), got %v", hit.Point)
	}
	if !vector.Aeq(hit.Distance, 4) {
		t.Errorf("expected distance 4, got %v", hit.Distance)
	}

	missRay := collision.Ray{Origin: vector.Vector2{X: -5, Y: 0}, Dir: vector.Vector2{X: 0, Y: 1}, MaxDistance: 10}
	if _, ok := collision.CastCircle(missRay, tr, c); ok {
		t.Error("expected a ray rotated 90 degrees off-axis to miss")
	}
}
