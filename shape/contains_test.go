package shape

import (
	"testing"

	"github.com/nearplane/rigid2d/vector"
)

func TestContainsPointCircle(t *testing.T) {
	c := NewCircle(Material{}, 1)
	tr := vector.NewTransform(vector.Vector2{X: 5, Y: 5}, 0)
	if !ContainsPoint(c, tr, vector.Vector2{X: 5.5, Y: 5}) {
		t.Error("expected point inside circle")
	}
	if ContainsPoint(c, tr, vector.Vector2{X: 7, Y: 5}) {
		t.Error("expected point outside circle")
	}
}

func TestContainsPointPolygonAgreesWithRaycastParity(t *testing.T) {
	r := NewRectangle(Material{}, 4, 2)
	tr := vector.Identity
	inside := vector.Vector2{X: 0, Y: 0}
	outside := vector.Vector2{X: 10, Y: 0}
	if !ContainsPoint(r, tr, inside) {
		t.Error("expected origin inside rectangle")
	}
	if ContainsPoint(r, tr, outside) {
		t.Error("expected far point outside rectangle")
	}
}

func TestContainsPointUnknownShapeIsFalse(t *testing.T) {
	if ContainsPoint(nil, vector.Identity, vector.Vector2{}) {
		t.Error("nil shape should never contain a point")
	}
}
