package broadphase

import (
	"testing"

	"github.com/nearplane/rigid2d/vector"
)

func TestInsertAndQueryFindsOverlap(t *testing.T) {
	h := New(1, 8)
	h.Insert(vector.AABB{X: 0, Y: 0, Width: 1, Height: 1}, 0)
	h.Insert(vector.AABB{X: 0.5, Y: 0.5, Width: 1, Height: 1}, 1)

	var got []int
	h.Query(vector.AABB{X: 0, Y: 0, Width: 1, Height: 1}, func(id int, ctx any) {
		got = append(got, id)
	}, nil)

	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d: %v", len(got), got)
	}
}

func TestQueryDeduplicatesAcrossCells(t *testing.T) {
	h := New(1, 4)
	// A wide AABB spans several cells; the same id must be reported once.
	h.Insert(vector.AABB{X: 0, Y: 0, Width: 5, Height: 1}, 2)

	count := 0
	h.Query(vector.AABB{X: 0, Y: 0, Width: 5, Height: 1}, func(id int, ctx any) {
		count++
	}, nil)

	if count != 1 {
		t.Errorf("expected id reported exactly once, got %d", count)
	}
}

func TestMissedAABBProducesNoCandidate(t *testing.T) {
	h := New(1, 4)
	h.Insert(vector.AABB{X: 0, Y: 0, Width: 1, Height: 1}, 0)

	hit := false
	h.Query(vector.AABB{X: 100, Y: 100, Width: 1, Height: 1}, func(id int, ctx any) {
		hit = true
	}, nil)

	if hit {
		t.Error("expected no candidates for a far-away query")
	}
}

func TestClearZeroesBodyCount(t *testing.T) {
	h := New(1, 4)
	h.Insert(vector.AABB{X: 0, Y: 0, Width: 1, Height: 1}, 0)
	h.Insert(vector.AABB{X: 0, Y: 0, Width: 1, Height: 1}, 1)
	if h.BodyCountInCells() == 0 {
		t.Fatal("expected nonzero body count before clear")
	}
	h.Clear()
	if h.BodyCountInCells() != 0 {
		t.Errorf("expected body count 0 after clear, got %d", h.BodyCountInCells())
	}
}

func TestRepeatedQueriesReturnIdenticalSets(t *testing.T) {
	h := New(1, 8)
	h.Insert(vector.AABB{X: 0, Y: 0, Width: 1, Height: 1}, 0)
	h.Insert(vector.AABB{X: 0, Y: 0, Width: 1, Height: 1}, 1)

	query := func() map[int]bool {
		set := map[int]bool{}
		h.Query(vector.AABB{X: 0, Y: 0, Width: 1, Height: 1}, func(id int, ctx any) {
			set[id] = true
		}, nil)
		return set
	}

	first := query()
	second := query()
	if len(first) != len(second) {
		t.Fatalf("query result sizes differ: %d vs %d", len(first), len(second))
	}
	for id := range first {
		if !second[id] {
			t.Errorf("id %d missing from repeated query", id)
		}
	}
}

func TestContextThreadedThrough(t *testing.T) {
	h := New(1, 4)
	h.Insert(vector.AABB{X: 0, Y: 0, Width: 1, Height: 1}, 0)

	type ctxT struct{ tag string }
	want := &ctxT{tag: "hello"}
	var got *ctxT
	h.Query(vector.AABB{X: 0, Y: 0, Width: 1, Height: 1}, func(id int, ctx any) {
		got = ctx.(*ctxT)
	}, want)

	if got != want {
		t.Error("expected ctx to be threaded through unchanged")
	}
}

func TestIdsOutsideMaxObjectsAreSkipped(t *testing.T) {
	h := New(1, 2)
	h.Insert(vector.AABB{X: 0, Y: 0, Width: 1, Height: 1}, 0)
	h.Insert(vector.AABB{X: 0, Y: 0, Width: 1, Height: 1}, 99)

	var got []int
	h.Query(vector.AABB{X: 0, Y: 0, Width: 1, Height: 1}, func(id int, ctx any) {
		got = append(got, id)
	}, nil)

	if len(got) != 1 || got[0] != 0 {
		t.Errorf("expected only in-range id reported, got %v", got)
	}
}

func TestNonPositiveCellSizeFallsBackToOne(t *testing.T) {
	h := New(0, 4)
	if h.cellSize != 1 {
		t.Errorf("expected fallback cell size 1, got %v", h.cellSize)
	}
}
