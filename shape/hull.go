package shape

import "github.com/nearplane/rigid2d/vector"

// ConvexHull reduces a set of points to its convex hull in
// counter-clockwise order using gift wrapping (Jarvis march).
//
// The walk starts from the point with minimum X (ties broken by
// minimum Y) and, at each step, picks the candidate point such that
// every remaining point lies to the left of the directed line from
// the current point to the candidate — i.e. the candidate is the
// most clockwise choice, which winds the hull counter-clockwise.
// Collinear ties are broken in favor
// of the farther point, so nearly-collinear input collapses to its
// extreme vertices rather than producing a degenerate near-zero edge.
// The walk terminates when it returns to the starting point.
//
// Fewer than 3 input points, or input points that are all collinear,
// return a hull of length < 3 (the caller treats this as degenerate).
func ConvexHull(points []vector.Vector2) []vector.Vector2 {
	if len(points) < 3 {
		return append([]vector.Vector2(nil), points...)
	}

	start := 0
	for i, p := range points {
		if p.X < points[start].X || (p.X == points[start].X && p.Y < points[start].Y) {
			start = i
		}
	}

	hull := make([]vector.Vector2, 0, len(points))
	current := start
	for {
		hull = append(hull, points[current])
		candidate := (current + 1) % len(points)
		for i := range points {
			if i == current {
				continue
			}
			o := vector.Orientation(points[current], points[candidate], points[i])
			switch {
			case o < 0:
				// points[i] is to the right of current->candidate: it is a
				// better (more clockwise) candidate.
				candidate = i
			case o == 0:
				// Collinear: keep whichever of candidate/i is farther from current.
				if sqrDist(points[current], points[i]) > sqrDist(points[current], points[candidate]) {
					candidate = i
				}
			}
		}
		current = candidate
		if current == start {
			break
		}
		if len(hull) > len(points) {
			// Defensive: degenerate input looping past all points.
			break
		}
	}
	return hull
}

func sqrDist(a, b vector.Vector2) float64 { return a.Sub(b).LenSqr() }
