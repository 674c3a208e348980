// Package world ties the rest of the simulation together: it owns
// the body registry, runs the broad-phase/narrow-phase/solver step
// loop, and dispatches collision events and raycasts.
package world

import (
	"log/slog"

	"github.com/nearplane/rigid2d/body"
	"github.com/nearplane/rigid2d/broadphase"
	"github.com/nearplane/rigid2d/collision"
	"github.com/nearplane/rigid2d/shape"
	"github.com/nearplane/rigid2d/util"
	"github.com/nearplane/rigid2d/vector"
)

type opKind int

const (
	opAdd opKind = iota
	opRemove
)

type op struct {
	kind opKind
	b    *body.Body
}

// World owns a population of bodies and advances them under gravity
// with contact detection and resolution. The zero value is not
// usable; construct one with New.
type World struct {
	gravity vector.Vector2
	hash    *broadphase.Hash

	bodies  []*body.Body
	nextId  body.Id
	pending *util.RingBuffer

	cache map[PairKey]*cacheEntry

	handler Handler

	accumulator float64
	stepCount   uint64

	iterations    int
	baumgarte     float64
	slop          float64
	maxObjects    int
	pixelsPerUnit float64
	fixedStep     float64
}

// New creates a World with the given gravity and broad-phase cell
// size, applying any Options over the §6 tunable-constant defaults.
// A non-positive cellSize falls back to the broadphase package's own
// default (1).
func New(gravity vector.Vector2, cellSize float64, opts ...Option) *World {
	w := &World{
		gravity:       gravity,
		bodies:        make([]*body.Body, 0, 64),
		cache:         make(map[PairKey]*cacheEntry),
		iterations:    defaultIterations,
		baumgarte:     defaultBaumgarte,
		slop:          defaultSlop,
		maxObjects:    defaultMaxObjects,
		pixelsPerUnit: defaultPixelsPerUnit,
		fixedStep:     defaultFixedStep,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.pending = util.NewRingBuffer(w.maxObjects)
	w.hash = broadphase.New(cellSize, w.maxObjects)
	return w
}

// Release empties the world: bodies, pending ops, and the contact
// cache are all discarded. Shapes attached to released bodies are
// not touched -- the caller owns shape storage and is responsible
// for releasing shapes separately (see shape.Arena).
func (w *World) Release() {
	w.bodies = w.bodies[:0]
	w.cache = make(map[PairKey]*cacheEntry)
	w.pending = util.NewRingBuffer(w.maxObjects)
	w.hash.Clear()
}

// PixelsPerUnit returns this world's pixel/unit conversion factor,
// as configured by WithPixelsPerUnit (default GEOMETRY_PIXELS_PER_UNIT).
func (w *World) PixelsPerUnit() float64 { return w.pixelsPerUnit }

// CreateBody allocates a new body of the given type at position and
// enqueues it for addition to the world. The body is not visible to
// BodyCount/GetBody/the step loop until the pending-ops queue drains
// at the end of the step in which it was created. Returns nil if the
// pending-ops queue is full.
func (w *World) CreateBody(typ body.Type, position vector.Vector2) *body.Body {
	return w.createBody(typ, position, nil)
}

// CreateBodyFromShape is CreateBody plus an attached shape.
func (w *World) CreateBodyFromShape(typ body.Type, position vector.Vector2, s shape.Shape) *body.Body {
	return w.createBody(typ, position, s)
}

func (w *World) createBody(typ body.Type, position vector.Vector2, s shape.Shape) *body.Body {
	id := w.nextId
	var b *body.Body
	if s != nil {
		b = body.NewWithShape(id, typ, position, s)
	} else {
		b = body.New(id, typ, position)
	}
	if !w.AddBody(b) {
		return nil
	}
	w.nextId++
	return b
}

// AddBody enqueues b for addition to the world. Returns false,
// without effect, if the pending-ops queue is full.
func (w *World) AddBody(b *body.Body) bool {
	if b == nil {
		return false
	}
	if !w.pending.Push(op{kind: opAdd, b: b}) {
		slog.Warn("add_body: pending-ops queue is full", "body_id", b.Id())
		return false
	}
	return true
}

// RemoveBody enqueues b for removal from the world. Returns false,
// without effect, if the pending-ops queue is full.
func (w *World) RemoveBody(b *body.Body) bool {
	if b == nil {
		return false
	}
	if !w.pending.Push(op{kind: opRemove, b: b}) {
		slog.Warn("remove_body: pending-ops queue is full", "body_id", b.Id())
		return false
	}
	return true
}

// BodyCount returns the number of bodies currently live in the world.
// Bodies added this step but not yet drained are not counted.
func (w *World) BodyCount() int { return len(w.bodies) }

// GetBody returns the body at index i, or nil if i is out of range.
func (w *World) GetBody(i int) *body.Body {
	if i < 0 || i >= len(w.bodies) {
		return nil
	}
	return w.bodies[i]
}

// SetGravity replaces the world's gravity vector, applied to every
// dynamic body on the next step.
func (w *World) SetGravity(g vector.Vector2) { w.gravity = g }

// Gravity returns the world's current gravity vector.
func (w *World) Gravity() vector.Vector2 { return w.gravity }

// SetHandler installs the pre/post-step collision callbacks. Either
// field may be nil.
func (w *World) SetHandler(h Handler) { w.handler = h }

// Update accumulates dt of elapsed wall-clock time and invokes Step
// zero or more times to consume the accumulator in fixed-size
// increments (see WithFixedStep). A non-positive dt is a no-op.
func (w *World) Update(dt float64) {
	if dt <= 0 {
		return
	}
	w.accumulator += dt
	for w.accumulator >= w.fixedStep {
		w.Step(w.fixedStep)
		w.accumulator -= w.fixedStep
	}
}

// Step advances the simulation by exactly dt using the fixed
// broad-phase / narrow-phase / solve / integrate pipeline. A
// non-positive dt is a no-op and returns false.
func (w *World) Step(dt float64) bool {
	if dt <= 0 {
		return false
	}
	w.stepCount++

	w.rebuildBroadPhase()
	w.narrowPhase()
	w.dispatchPreStep()

	for _, b := range w.bodies {
		b.ApplyGravity(w.gravity)
		b.IntegrateVelocity(dt)
	}

	w.purgeStaleEntries()
	w.precomputeMasses()
	w.solveVelocities(dt)

	for _, b := range w.bodies {
		b.IntegratePosition(dt)
	}

	w.dispatchPostStep()
	w.drainPendingOps()

	for _, b := range w.bodies {
		b.ClearForces()
	}
	w.hash.Clear()
	return true
}

func (w *World) rebuildBroadPhase() {
	w.hash.Clear()
	for i, b := range w.bodies {
		w.hash.Insert(b.AABB(), i)
	}
}

func (w *World) narrowPhase() {
	for i, bi := range w.bodies {
		w.hash.Query(bi.AABB(), func(j int, ctx any) {
			if j <= i || j >= len(w.bodies) {
				return
			}
			bj := w.bodies[j]
			if bi.InvMass() <= 0 && bi.InvInertia() <= 0 && bj.InvMass() <= 0 && bj.InvInertia() <= 0 {
				return
			}
			w.processPair(bi, bj)
		}, nil)
	}
}

func (w *World) processPair(a, b *body.Body) {
	key := makePairKey(a, b)
	sa, sb := a.Shape(), b.Shape()
	col, hit := collision.Detect(a.Transform(), sa, b.Transform(), sb)
	if !hit {
		delete(w.cache, key)
		return
	}
	for k := 0; k < col.Count; k++ {
		col.Contacts[k].Timestamp = w.stepCount
	}

	entry, existed := w.cache[key]
	if existed {
		col.Friction, col.Restitution = entry.Friction, entry.Restitution
		for k := 0; k < col.Count; k++ {
			for _, old := range entry.Contacts[:entry.Count] {
				if old.ID == col.Contacts[k].ID {
					col.Contacts[k].NormalImpulse = old.NormalImpulse
					col.Contacts[k].TangentImpulse = old.TangentImpulse
					break
				}
			}
		}
	} else {
		col.Friction = maxFloat(0, 0.5*(sa.Material().Friction+sb.Material().Friction))
		col.Restitution = vector.Clamp(minFloat(sa.Material().Restitution, sb.Material().Restitution), 0, 1)
	}

	w.cache[key] = &cacheEntry{Collision: col, timestamp: w.stepCount, dirA: a, dirB: b}
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func (w *World) dispatchPreStep() {
	if w.handler.PreStep == nil {
		return
	}
	for key, entry := range w.cache {
		if entry.Count == 0 {
			continue
		}
		w.handler.PreStep(key, &entry.Collision)
	}
}

func (w *World) dispatchPostStep() {
	if w.handler.PostStep == nil {
		return
	}
	for key, entry := range w.cache {
		if entry.Count == 0 {
			continue
		}
		w.handler.PostStep(key, &entry.Collision)
	}
}

func (w *World) purgeStaleEntries() {
	for key, entry := range w.cache {
		if entry.timestamp != w.stepCount {
			delete(w.cache, key)
		}
	}
}

func (w *World) drainPendingOps() {
	for {
		item, ok := w.pending.Pop()
		if !ok {
			break
		}
		o := item.(op)
		switch o.kind {
		case opAdd:
			w.bodies = append(w.bodies, o.b)
		case opRemove:
			w.removeBodyNow(o.b)
		}
	}
}

func (w *World) removeBodyNow(b *body.Body) {
	for i, cur := range w.bodies {
		if cur == b {
			last := len(w.bodies) - 1
			w.bodies[i] = w.bodies[last]
			w.bodies[last] = nil
			w.bodies = w.bodies[:last]
			return
		}
	}
}
