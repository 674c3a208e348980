// Package broadphase implements a uniform spatial hash used as the
// first stage of collision detection: it cheaply narrows an O(n²)
// body set down to the candidates whose AABBs share at least one grid
// cell. Candidates are not filtered by an exact AABB overlap test, so
// two boxes in the same cell are reported even when they do not touch.
package broadphase

import (
	"math"

	"github.com/nearplane/rigid2d/util"
	"github.com/nearplane/rigid2d/vector"
)

// cell is an integer grid coordinate.
type cell struct {
	x, y int32
}

// Hash buckets object ids into grid cells sized CellSize, so a query
// only needs to scan the handful of cells an AABB overlaps instead of
// every body in the world.
type Hash struct {
	cellSize    float64
	invCellSize float64
	maxObjects  int
	cells       map[cell][]int
	scratch     []int
	seen        *util.BitArray
}

// New creates a Hash with the given cell size and an upper bound on
// the number of distinct ids it will ever be asked to deduplicate
// (maxObjects sizes the dedup bit array). A non-positive cellSize
// falls back to 1.
func New(cellSize float64, maxObjects int) *Hash {
	if cellSize <= 0 {
		cellSize = 1
	}
	if maxObjects < 0 {
		maxObjects = 0
	}
	return &Hash{
		cellSize:    cellSize,
		invCellSize: 1 / cellSize,
		maxObjects:  maxObjects,
		cells:       make(map[cell][]int),
		seen:        util.NewBitArray(maxObjects),
	}
}

// Insert appends id to every cell aabb overlaps.
func (h *Hash) Insert(aabb vector.AABB, id int) {
	minX, minY := h.cellIndex(aabb.X), h.cellIndex(aabb.Y)
	maxX, maxY := h.cellIndex(aabb.X+aabb.Width), h.cellIndex(aabb.Y+aabb.Height)
	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			c := cell{x, y}
			h.cells[c] = append(h.cells[c], id)
		}
	}
}

// Query collects the ids from every cell aabb overlaps, deduplicates
// them with a scratch bit array, and invokes f once per unique id
// with ctx threaded through unchanged. Ids outside [0, maxObjects)
// are skipped by the dedup pass (and therefore never reported), since
// the bit array cannot address them.
func (h *Hash) Query(aabb vector.AABB, f func(id int, ctx any), ctx any) {
	minX, minY := h.cellIndex(aabb.X), h.cellIndex(aabb.Y)
	maxX, maxY := h.cellIndex(aabb.X+aabb.Width), h.cellIndex(aabb.Y+aabb.Height)
	h.scratch = h.scratch[:0]
	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			h.scratch = append(h.scratch, h.cells[cell{x, y}]...)
		}
	}
	for _, id := range h.scratch {
		if id < 0 || id >= h.maxObjects || h.seen.Test(id) {
			continue
		}
		h.seen.Set(id)
		f(id, ctx)
	}
	for _, id := range h.scratch {
		if id >= 0 && id < h.maxObjects {
			h.seen.Clear(id)
		}
	}
}

// Clear empties every cell's bucket, keeping the map itself (and its
// bucket-slice capacity) allocated for reuse on the next rebuild.
func (h *Hash) Clear() {
	for c := range h.cells {
		h.cells[c] = h.cells[c][:0]
	}
}

// CellCount returns the number of cells that have held an id since
// New, mostly useful for tests and diagnostics. Clear empties cells
// but keeps them, so they still count here.
func (h *Hash) CellCount() int { return len(h.cells) }

// BodyCountInCells sums the length of every cell's bucket. After
// Clear it is always zero, even though the map's keys survive.
func (h *Hash) BodyCountInCells() int {
	n := 0
	for _, bucket := range h.cells {
		n += len(bucket)
	}
	return n
}

func (h *Hash) cellIndex(coord float64) int32 {
	return int32(math.Floor(coord * h.invCellSize))
}
