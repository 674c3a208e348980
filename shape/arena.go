package shape

import "github.com/google/uuid"

// Handle is a stable identifier for a Shape stored in an Arena. It
// survives independently of any body that references it, letting
// shapes be shared across bodies or released without aliasing raw
// pointers (see the Ownership design note: shapes are owned by the
// caller, bodies hold references only).
type Handle string

// Arena is a caller-owned registry of shapes keyed by Handle. It is
// an optional convenience: bodies accept a Shape value directly and
// never require going through an Arena, but code that wants to look
// shapes up by a stable id (for sharing, serialization, or tooling)
// can use one.
type Arena struct {
	shapes map[Handle]Shape
}

// NewArena creates an empty shape arena.
func NewArena() *Arena {
	return &Arena{shapes: make(map[Handle]Shape)}
}

// Put registers s under a newly generated Handle and returns it.
// Registering a nil shape is a no-op and returns the empty Handle.
func (a *Arena) Put(s Shape) Handle {
	if s == nil {
		return ""
	}
	h := Handle(uuid.NewString())
	a.shapes[h] = s
	return h
}

// Get returns the shape registered under h, or nil if h is unknown.
func (a *Arena) Get(h Handle) Shape {
	return a.shapes[h]
}

// Release removes h from the arena. It does not affect bodies that
// already hold a direct reference to the shape.
func (a *Arena) Release(h Handle) {
	delete(a.shapes, h)
}

// Len returns the number of shapes currently registered.
func (a *Arena) Len() int { return len(a.shapes) }
