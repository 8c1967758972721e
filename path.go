package plotgen

import "math"

// DefaultCircleSegments is the tessellation used when a circle primitive is
// expanded without an explicit segment count.
const DefaultCircleSegments = 64

// closeEpsilon is the distance under which a path's first and last points
// are considered the same vertex.
const closeEpsilon = 1e-6

// Shape is a lazily expandable primitive carried by a Path instead of
// literal samples. It is implemented by Circle and Polygon.
type Shape interface {
	isShape()
	expand(segments int) []Point
}

// Circle is a circle primitive.
type Circle struct {
	Center Point
	Radius float64
}

func (Circle) isShape() {}

func (c Circle) expand(segments int) []Point {
	if segments < 3 {
		segments = DefaultCircleSegments
	}
	pts := make([]Point, segments+1)
	for i := range segments {
		pts[i] = Polar(c.Center, c.Radius, 2*math.Pi*float64(i)/float64(segments))
	}
	pts[segments] = pts[0]
	return pts
}

// Polygon is a regular polygon primitive. Rotation is in radians and places
// the first vertex.
type Polygon struct {
	Center   Point
	Radius   float64
	Sides    int
	Rotation float64
}

func (Polygon) isShape() {}

func (p Polygon) expand(int) []Point {
	sides := max(p.Sides, 3)
	pts := make([]Point, sides+1)
	for i := range sides {
		pts[i] = Polar(p.Center, p.Radius, p.Rotation+2*math.Pi*float64(i)/float64(sides))
	}
	pts[sides] = pts[0]
	return pts
}

// Path is an ordered point sequence defining one stroke. When Shape is set
// the path is a primitive and Points is empty until Expand is called.
// Group and Label are free-form strings for UI grouping.
type Path struct {
	Points []Point
	Shape  Shape
	Group  string
	Label  string
}

// NewPath creates an explicit path from points. The slice is not copied.
func NewPath(pts []Point) Path {
	return Path{Points: pts}
}

// NewCircle creates a circle primitive path.
func NewCircle(center Point, r float64) Path {
	return Path{Shape: Circle{Center: center, Radius: r}}
}

// NewPolygon creates a regular polygon primitive path.
func NewPolygon(center Point, r float64, sides int, rotation float64) Path {
	return Path{Shape: Polygon{Center: center, Radius: r, Sides: sides, Rotation: rotation}}
}

// IsPrimitive reports whether the path is a circle or polygon primitive.
func (p Path) IsPrimitive() bool {
	return p.Shape != nil
}

// Expand returns an explicit copy of a primitive path tessellated with the
// given segment count (circles only; polygons use their side count).
// Explicit paths are returned unchanged.
func (p Path) Expand(segments int) Path {
	if p.Shape == nil {
		return p
	}
	return Path{Points: p.Shape.expand(segments), Group: p.Group, Label: p.Label}
}

// Vertices returns the literal vertices of the path, expanding primitives
// with DefaultCircleSegments.
func (p Path) Vertices() []Point {
	return p.Expand(DefaultCircleSegments).Points
}

// WithPoints returns a copy of p with the given points and no primitive
// shape. Group and Label are kept.
func (p Path) WithPoints(pts []Point) Path {
	return Path{Points: pts, Group: p.Group, Label: p.Label}
}

// Clone returns a deep copy of the path's point slice.
func (p Path) Clone() Path {
	q := p
	if p.Points != nil {
		q.Points = append([]Point(nil), p.Points...)
	}
	return q
}

// Closed reports whether the first and last vertices coincide.
// Primitives are always closed.
func (p Path) Closed() bool {
	if p.Shape != nil {
		return true
	}
	return IsClosed(p.Points)
}

// IsClosed reports whether pts has at least 3 points and its first and last
// points coincide.
func IsClosed(pts []Point) bool {
	n := len(pts)
	return n > 2 && pts[0].Near(pts[n-1], closeEpsilon)
}

// Length returns the polyline length of the path's vertices.
func (p Path) Length() float64 {
	return PolylineLength(p.Vertices())
}

// Bounds returns the bounding rectangle of the path's vertices.
func (p Path) Bounds() Rect {
	return BoundingRect(p.Vertices())
}

// PolylineLength returns the summed segment length of pts.
func PolylineLength(pts []Point) float64 {
	var total float64
	for i := 1; i < len(pts); i++ {
		total += pts[i].Distance(pts[i-1])
	}
	return total
}
