package plotgen

import (
	"math"
	"testing"
)

func TestCircleExpand(t *testing.T) {
	p := NewCircle(Pt(10, 20), 5)
	p.Group = "ring"
	e := p.Expand(4)
	if e.IsPrimitive() {
		t.Fatal("Expand returned a primitive")
	}
	if len(e.Points) != 5 || !e.Closed() {
		t.Fatalf("Expand(4) = %v, want 5 closed points", e.Points)
	}
	if !near(e.Points[0], Pt(15, 20)) || !near(e.Points[1], Pt(10, 25)) {
		t.Errorf("vertices = %v", e.Points[:2])
	}
	if e.Group != "ring" {
		t.Error("Expand dropped the group")
	}
	if got := len(p.Vertices()); got != DefaultCircleSegments+1 {
		t.Errorf("Vertices() = %d points, want %d", got, DefaultCircleSegments+1)
	}
	if got := len(p.Expand(1).Points); got != DefaultCircleSegments+1 {
		t.Errorf("Expand(1) = %d points, want the default tessellation", got)
	}
	if l := p.Length(); math.Abs(l-2*math.Pi*5)/(2*math.Pi*5) > 0.01 {
		t.Errorf("Length = %v, want about %v", l, 2*math.Pi*5)
	}
}

func TestPolygonExpand(t *testing.T) {
	p := NewPolygon(Pt(0, 0), 1, 4, math.Pi/4)
	pts := p.Expand(100).Points
	if len(pts) != 5 {
		t.Fatalf("square expanded to %d points", len(pts))
	}
	h := math.Sqrt2 / 2
	if !near(pts[0], Pt(h, h)) {
		t.Errorf("first vertex = %v", pts[0])
	}
	if got := len(NewPolygon(Pt(0, 0), 1, 1, 0).Vertices()); got != 4 {
		t.Errorf("1-sided polygon = %d points, want a triangle", got)
	}
}

func TestPathExplicit(t *testing.T) {
	pts := []Point{Pt(0, 0), Pt(3, 4)}
	p := Path{Points: pts, Label: "l"}
	if p.IsPrimitive() || p.Closed() {
		t.Error("open explicit path misreported")
	}
	if e := p.Expand(8); &e.Points[0] != &pts[0] {
		t.Error("Expand should return explicit paths unchanged")
	}
	if p.Length() != 5 {
		t.Errorf("Length = %v, want 5", p.Length())
	}
	if b := p.Bounds(); b != NewRect(Pt(0, 0), Pt(3, 4)) {
		t.Errorf("Bounds = %+v", b)
	}

	c := p.Clone()
	c.Points[0] = Pt(9, 9)
	if pts[0] != Pt(0, 0) {
		t.Error("Clone shares points")
	}
	w := NewCircle(Pt(0, 0), 1).WithPoints(pts)
	if w.IsPrimitive() {
		t.Error("WithPoints kept the shape")
	}
}

func TestIsClosed(t *testing.T) {
	tests := []struct {
		name string
		pts  []Point
		want bool
	}{
		{"nil", nil, false},
		{"two equal", []Point{Pt(1, 1), Pt(1, 1)}, false},
		{"triangle", []Point{Pt(0, 0), Pt(1, 0), Pt(0, 1), Pt(0, 0)}, true},
		{"nearly closed", []Point{Pt(0, 0), Pt(1, 0), Pt(0, 1), Pt(1e-7, 0)}, true},
		{"open", []Point{Pt(0, 0), Pt(1, 0), Pt(0, 1)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsClosed(tt.pts); got != tt.want {
				t.Errorf("IsClosed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBounds(t *testing.T) {
	b := NewBounds(800, 600, 50)
	if b.InnerWidth() != 700 || b.InnerHeight() != 500 {
		t.Errorf("inner = %vx%v", b.InnerWidth(), b.InnerHeight())
	}
	if b.Center() != Pt(400, 300) || b.Radius() != 250 {
		t.Errorf("center %v radius %v", b.Center(), b.Radius())
	}
	if b.Inner() != NewRect(Pt(50, 50), Pt(750, 550)) {
		t.Errorf("Inner = %+v", b.Inner())
	}
	if !b.Contains(Pt(50, 550)) || b.Contains(Pt(20, 20)) {
		t.Error("Contains wrong")
	}

	clamped := NewBounds(100, 50, 40)
	if clamped.Margin != 25 || clamped.InnerHeight() != 0 || clamped.Radius() != 0 {
		t.Errorf("clamped bounds = %+v", clamped)
	}
	if neg := NewBounds(-5, 10, -1); neg.Width != 0 || neg.Margin != 0 {
		t.Errorf("negative bounds = %+v", neg)
	}
}
