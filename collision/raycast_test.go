package collision

import (
	"testing"

	"github.com/nearplane/rigid2d/shape"
	"github.com/nearplane/rigid2d/vector"
)

func TestCastCircleHit(t *testing.T) {
	c := shape.NewCircle(shape.Material{}, 1)
	tr := vector.NewTransform(vector.Vector2{X: 5, Y: 0}, 0)
	r := Ray{Origin: vector.Zero, Dir: vector.Vector2{X: 1, Y: 0}, MaxDistance: 100}

	hit, ok := CastCircle(r, tr, c)
	if !ok {
		t.Fatal("expected ray to hit circle")
	}
	if !vector.Aeq(hit.Distance, 4) {
		t.Errorf("expected distance 4, got %v", hit.Distance)
	}
}

func TestCastCircleMiss(t *testing.T) {
	c := shape.NewCircle(shape.Material{}, 1)
	tr := vector.NewTransform(vector.Vector2{X: 5, Y: 5}, 0)
	r := Ray{Origin: vector.Zero, Dir: vector.Vector2{X: 1, Y: 0}, MaxDistance: 100}

	if _, ok := CastCircle(r, tr, c); ok {
		t.Error("expected ray to miss circle")
	}
}

func TestCastCircleBeyondMaxDistance(t *testing.T) {
	c := shape.NewCircle(shape.Material{}, 1)
	tr := vector.NewTransform(vector.Vector2{X: 5, Y: 0}, 0)
	r := Ray{Origin: vector.Zero, Dir: vector.Vector2{X: 1, Y: 0}, MaxDistance: 1}

	if _, ok := CastCircle(r, tr, c); ok {
		t.Error("expected hit beyond max distance to be rejected")
	}
}

func TestCastCircleFromInside(t *testing.T) {
	c := shape.NewCircle(shape.Material{}, 5)
	tr := vector.Identity
	r := Ray{Origin: vector.Zero, Dir: vector.Vector2{X: 1, Y: 0}, MaxDistance: 100}

	hit, ok := CastCircle(r, tr, c)
	if !ok {
		t.Fatal("expected a hit exiting the circle")
	}
	if !hit.Inside {
		t.Error("expected inside flag set for an origin inside the circle")
	}
	if !vector.Aeq(hit.Distance, 5) {
		t.Errorf("expected exit distance 5, got %v", hit.Distance)
	}
}

func TestCastPolygonHit(t *testing.T) {
	rect := shape.NewRectangle(shape.Material{}, 2, 2)
	tr := vector.NewTransform(vector.Vector2{X: 5, Y: 0}, 0)
	r := Ray{Origin: vector.Zero, Dir: vector.Vector2{X: 1, Y: 0}, MaxDistance: 100}

	hit, ok := CastPolygon(r, tr, rect)
	if !ok {
		t.Fatal("expected ray to hit rectangle")
	}
	if !vector.Aeq(hit.Distance, 4) {
		t.Errorf("expected distance 4, got %v", hit.Distance)
	}
	if hit.Inside {
		t.Error("expected inside flag clear for an origin outside the rectangle")
	}
	if !vector.Aeq(hit.Normal.X, -1) || !vector.Aeq(hit.Normal.Y, 0) {
		t.Errorf("expected the near face's own normal (-1, 0), got %v", hit.Normal)
	}
}

func TestCastPolygonMiss(t *testing.T) {
	rect := shape.NewRectangle(shape.Material{}, 2, 2)
	tr := vector.NewTransform(vector.Vector2{X: 5, Y: 10}, 0)
	r := Ray{Origin: vector.Zero, Dir: vector.Vector2{X: 1, Y: 0}, MaxDistance: 100}

	if _, ok := CastPolygon(r, tr, rect); ok {
		t.Error("expected ray to miss rectangle")
	}
}

func TestCastDispatch(t *testing.T) {
	c := shape.NewCircle(shape.Material{}, 1)
	tr := vector.NewTransform(vector.Vector2{X: 5, Y: 0}, 0)
	r := Ray{Origin: vector.Zero, Dir: vector.Vector2{X: 1, Y: 0}, MaxDistance: 100}

	if _, ok := Cast(r, tr, c); !ok {
		t.Error("expected dispatch to find the circle hit")
	}
	if _, ok := Cast(r, tr, nil); ok {
		t.Error("expected nil shape to produce no hit")
	}
}
