package occlusion

import (
	"math"

	"github.com/gogpu/plotgen"
)

// Tolerances for the geometric predicates.
const (
	parallelEpsilon = 1e-12 // cross products below this are parallel
	paramEpsilon    = 1e-6  // intersection parameters closer than this are equal
	joinEpsilon     = 1e-4  // run endpoints closer than this are stitched
)

// Occluder is the closed polygon of an emitted shape plus its bounding box.
// It is read-only once created.
type Occluder struct {
	Points []plotgen.Point
	Bounds plotgen.Rect
}

// NewOccluder builds an occluder from p, expanding primitives. The ring is
// closed if p is not.
func NewOccluder(p plotgen.Path) Occluder {
	src := p.Vertices()
	pts := make([]plotgen.Point, len(src), len(src)+1)
	copy(pts, src)
	if n := len(pts); n > 0 && pts[0] != pts[n-1] {
		pts = append(pts, pts[0])
	}
	return Occluder{Points: pts, Bounds: plotgen.BoundingRect(pts)}
}

// valid reports whether the occluder encloses any area.
func (o Occluder) valid() bool {
	return len(o.Points) >= 4
}

// Contains reports whether p is inside the occluder using the even-odd rule.
func (o Occluder) Contains(p plotgen.Point) bool {
	if !o.valid() || !o.Bounds.Contains(p) {
		return false
	}
	inside := false
	for i := 1; i < len(o.Points); i++ {
		a, b := o.Points[i-1], o.Points[i]
		if (a.Y > p.Y) == (b.Y > p.Y) {
			continue
		}
		x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
		if p.X < x {
			inside = !inside
		}
	}
	return inside
}

// crossings appends to ts the parameters along a→b where it crosses an
// edge of the occluder.
func (o Occluder) crossings(a, b plotgen.Point, ts []float64) []float64 {
	if !o.valid() || !o.Bounds.Overlaps(plotgen.NewRect(a, b)) {
		return ts
	}
	for i := 1; i < len(o.Points); i++ {
		if t, _, ok := intersect(a, b, o.Points[i-1], o.Points[i]); ok {
			ts = append(ts, t)
		}
	}
	return ts
}

// blocks reports whether the open segment a→b crosses an edge of the
// occluder strictly between its endpoints.
func (o Occluder) blocks(a, b plotgen.Point) bool {
	if !o.valid() || !o.Bounds.Overlaps(plotgen.NewRect(a, b)) {
		return false
	}
	for i := 1; i < len(o.Points); i++ {
		t, _, ok := intersect(a, b, o.Points[i-1], o.Points[i])
		if ok && t > paramEpsilon && t < 1-paramEpsilon {
			return true
		}
	}
	return false
}

// intersect returns the parameters t along p→p2 and u along q→q2 of the
// crossing of two segments. Parallel or disjoint segments report false.
func intersect(p, p2, q, q2 plotgen.Point) (t, u float64, ok bool) {
	r := p2.Sub(p)
	s := q2.Sub(q)
	den := r.Cross(s)
	if math.Abs(den) < parallelEpsilon {
		return 0, 0, false
	}
	qp := q.Sub(p)
	t = qp.Cross(s) / den
	u = qp.Cross(r) / den
	if t < -paramEpsilon || t > 1+paramEpsilon || u < -paramEpsilon || u > 1+paramEpsilon {
		return 0, 0, false
	}
	return math.Min(math.Max(t, 0), 1), math.Min(math.Max(u, 0), 1), true
}

func insideAny(p plotgen.Point, occ []Occluder) bool {
	for i := range occ {
		if occ[i].Contains(p) {
			return true
		}
	}
	return false
}
