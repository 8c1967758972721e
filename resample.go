package plotgen

import (
	"iter"
	"math"
)

// Arc-length parametrization of polylines: distance-based slicing and
// evenly spaced sampling independent of point density.

// minSegmentLength is the length under which a segment is skipped.
const minSegmentLength = 1e-9

// minSampleStep floors the advance between samples so iteration terminates.
const minSampleStep = 0.1

// Segment is one non-degenerate edge of a polyline.
// Start is the cumulative distance at A.
type Segment struct {
	A, B  Point
	Len   float64
	Start float64
}

// SegmentTable is the cumulative-length view of a polyline.
type SegmentTable struct {
	Segments []Segment
	Total    float64
}

// BuildSegmentTable measures pts. Zero-length segments are skipped; fewer
// than two points yield an empty table.
func BuildSegmentTable(pts []Point) SegmentTable {
	var t SegmentTable
	if len(pts) < 2 {
		return t
	}
	t.Segments = make([]Segment, 0, len(pts)-1)
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		l := a.Distance(b)
		if l < minSegmentLength {
			continue
		}
		t.Segments = append(t.Segments, Segment{A: a, B: b, Len: l, Start: t.Total})
		t.Total += l
	}
	return t
}

// Empty reports whether the table has no measurable length.
func (t SegmentTable) Empty() bool {
	return len(t.Segments) == 0
}

// find returns the index of the segment containing distance d, starting the
// search at hint. Distances past the end resolve to the last segment.
func (t SegmentTable) find(d float64, hint int) int {
	i := max(hint, 0)
	for i < len(t.Segments)-1 && d > t.Segments[i].Start+t.Segments[i].Len {
		i++
	}
	return i
}

// at interpolates segment s at cumulative distance d.
func (s Segment) at(d float64) Point {
	u := (d - s.Start) / s.Len
	return s.A.Lerp(s.B, math.Min(math.Max(u, 0), 1))
}

// PointAt returns the position and unit tangent at distance d along the
// table, clamped to [0, Total]. An empty table yields zero values.
func (t SegmentTable) PointAt(d float64) (pos, tangent Point) {
	if t.Empty() {
		return Point{}, Point{}
	}
	d = math.Min(math.Max(d, 0), t.Total)
	s := t.Segments[t.find(d, 0)]
	return s.at(d), s.B.Sub(s.A).Mul(1 / s.Len)
}

// Slice returns the sub-polyline between distances start and end, with
// interpolated entry and exit points. It returns nil when end <= start or
// the result would have fewer than two points.
func (t SegmentTable) Slice(start, end float64) []Point {
	if t.Empty() || end <= start {
		return nil
	}
	start = math.Max(start, 0)
	end = math.Min(end, t.Total)
	if end <= start {
		return nil
	}

	i := t.find(start, 0)
	out := []Point{t.Segments[i].at(start)}
	for ; i < len(t.Segments); i++ {
		s := t.Segments[i]
		segEnd := s.Start + s.Len
		if segEnd >= end {
			out = appendDistinct(out, s.at(end))
			break
		}
		out = appendDistinct(out, s.B)
	}
	if len(out) < 2 {
		return nil
	}
	return out
}

// SliceByDistance returns the part of pts between arc-length distances
// start and end. See SegmentTable.Slice.
func SliceByDistance(pts []Point, start, end float64) []Point {
	return BuildSegmentTable(pts).Slice(start, end)
}

func appendDistinct(pts []Point, p Point) []Point {
	if n := len(pts); n > 0 && pts[n-1].Near(p, 1e-12) {
		return pts
	}
	return append(pts, p)
}

// Samples walks the table from offset, yielding the position and unit
// tangent at each stop. The step is spacing*(1+j) where j is drawn from
// [-jitter, jitter] using rng (nil rng disables jitter); the step is floored
// at 0.1 so the walk always terminates.
func (t SegmentTable) Samples(spacing, offset, jitter float64, rng *Rng) iter.Seq2[Point, Point] {
	return func(yield func(Point, Point) bool) {
		if t.Empty() {
			return
		}
		hint := 0
		for d := math.Max(offset, 0); d <= t.Total; {
			hint = t.find(d, hint)
			s := t.Segments[hint]
			if !yield(s.at(d), s.B.Sub(s.A).Mul(1/s.Len)) {
				return
			}
			step := spacing
			if rng != nil && jitter != 0 {
				step *= 1 + rng.Signed()*jitter
			}
			d += math.Max(step, minSampleStep)
		}
	}
}
