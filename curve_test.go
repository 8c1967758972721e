package plotgen

import (
	"math"
	"testing"
)

func TestRect(t *testing.T) {
	r := NewRect(Pt(10, 0), Pt(0, 5))
	if r.Min != Pt(0, 0) || r.Max != Pt(10, 5) {
		t.Fatalf("NewRect = %+v", r)
	}
	if r.Width() != 10 || r.Height() != 5 {
		t.Errorf("size = %vx%v", r.Width(), r.Height())
	}
	if !r.Contains(Pt(10, 5)) || r.Contains(Pt(10.1, 5)) {
		t.Error("Contains should include the edges only")
	}
	if !r.Overlaps(NewRect(Pt(10, 5), Pt(20, 20))) {
		t.Error("touching rects should overlap")
	}
	if r.Overlaps(NewRect(Pt(11, 0), Pt(20, 5))) {
		t.Error("disjoint rects should not overlap")
	}
	if got := BoundingRect(nil); got != (Rect{}) {
		t.Errorf("BoundingRect(nil) = %+v", got)
	}
	if got := BoundingRect([]Point{Pt(3, -1), Pt(-2, 4), Pt(0, 0)}); got != NewRect(Pt(-2, -1), Pt(3, 4)) {
		t.Errorf("BoundingRect = %+v", got)
	}
}

func TestCubicBezFlatten(t *testing.T) {
	c := NewCubicBez(Pt(0, 0), Pt(0, 50), Pt(100, 50), Pt(100, 0))
	pts := c.Flatten(0.05)
	if pts[0] != c.P0 || pts[len(pts)-1] != c.P3 {
		t.Fatalf("endpoints = %v, %v", pts[0], pts[len(pts)-1])
	}
	if len(pts) < 8 {
		t.Errorf("Flatten produced %d points, want a finer polyline", len(pts))
	}
	// Every flattened vertex lies on the curve.
	for _, p := range pts {
		best := math.Inf(1)
		for i := 0; i <= 2000; i++ {
			best = math.Min(best, p.Distance(c.Eval(float64(i)/2000)))
		}
		if best > 0.1 {
			t.Errorf("vertex %v is %v from the curve", p, best)
		}
	}

	line := NewCubicBez(Pt(0, 0), Pt(1, 0), Pt(2, 0), Pt(3, 0))
	if got := line.Flatten(0.1); len(got) != 2 {
		t.Errorf("straight cubic flattened to %d points, want 2", len(got))
	}
}
