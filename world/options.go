package world

// options.go reduces the world.New API footprint using functional
// options, the same pattern the rest of the stack uses for engine
// construction: an Option mutates a *World built from sensible
// defaults before the caller ever sees it.
// See: http://dave.cheney.net/2014/10/17/functional-options-for-friendly-apis

const (
	// defaultIterations is WORLD_ITERATION_COUNT.
	defaultIterations = 12
	// defaultBaumgarte is WORLD_BAUMGARTE_FACTOR.
	defaultBaumgarte = 0.2
	// defaultSlop is WORLD_BAUMGARTE_SLOP.
	defaultSlop = 0.01
	// defaultMaxObjects is WORLD_MAX_OBJECT_COUNT.
	defaultMaxObjects = 2048
	// defaultPixelsPerUnit is GEOMETRY_PIXELS_PER_UNIT.
	defaultPixelsPerUnit = 32.0
	// defaultFixedStep is the dt Update consumes the accumulator in.
	defaultFixedStep = 1.0 / 60.0
)

// Option configures a World at construction time. For use with New.
type Option func(*World)

// WithIterations overrides the number of velocity-solver iterations
// run per step. Non-positive values are ignored.
func WithIterations(n int) Option {
	return func(w *World) {
		if n > 0 {
			w.iterations = n
		}
	}
}

// WithBaumgarte overrides the positional-bias factor and slop used by
// the velocity solver. Non-positive factor or negative slop are
// ignored independently.
func WithBaumgarte(factor, slop float64) Option {
	return func(w *World) {
		if factor > 0 {
			w.baumgarte = factor
		}
		if slop >= 0 {
			w.slop = slop
		}
	}
}

// WithMaxObjects overrides the broad-phase dedup capacity. Non-positive
// values are ignored.
func WithMaxObjects(n int) Option {
	return func(w *World) {
		if n > 0 {
			w.maxObjects = n
		}
	}
}

// WithPixelsPerUnit overrides the pixel/unit conversion factor this
// world reports via PixelsPerUnit. Non-positive values are ignored.
func WithPixelsPerUnit(p float64) Option {
	return func(w *World) {
		if p > 0 {
			w.pixelsPerUnit = p
		}
	}
}

// WithFixedStep overrides the dt Update consumes the accumulator in.
// Non-positive values are ignored.
func WithFixedStep(dt float64) Option {
	return func(w *World) {
		if dt > 0 {
			w.fixedStep = dt
		}
	}
}
