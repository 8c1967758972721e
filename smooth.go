package plotgen

// maxSmoothIterations caps Chaikin passes; each pass doubles the point count.
const maxSmoothIterations = 8

// Smooth applies Chaikin corner cutting: every edge is replaced by the points
// at 1/4 and 3/4 along it. Open polylines keep their endpoints; closed
// polylines (first point equal to last) stay closed.
func Smooth(pts []Point, iterations int) []Point {
	iterations = min(iterations, maxSmoothIterations)
	if iterations <= 0 || len(pts) < 3 {
		return pts
	}
	closed := IsClosed(pts)
	for range iterations {
		if closed {
			pts = chaikinClosed(pts[:len(pts)-1])
		} else {
			pts = chaikinOpen(pts)
		}
	}
	return pts
}

func chaikinOpen(pts []Point) []Point {
	out := make([]Point, 0, 2*len(pts))
	out = append(out, pts[0])
	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		out = append(out, a.Lerp(b, 0.25), a.Lerp(b, 0.75))
	}
	return append(out, pts[len(pts)-1])
}

// chaikinClosed smooths a ring given without its closing duplicate and
// returns it closed again.
func chaikinClosed(ring []Point) []Point {
	n := len(ring)
	out := make([]Point, 0, 2*n+1)
	for i := range n {
		a, b := ring[i], ring[(i+1)%n]
		out = append(out, a.Lerp(b, 0.25), a.Lerp(b, 0.75))
	}
	return append(out, out[0])
}
