package plotgen

import "math"

// Bounds describes the canvas extent and the drawable inset.
//
// Truncate asks callers to clip output to the inset rectangle.
type Bounds struct {
	Width    float64
	Height   float64
	Margin   float64
	Truncate bool
}

// NewBounds creates bounds with the margin clamped so the inset never has
// negative size.
func NewBounds(width, height, margin float64) Bounds {
	width = math.Max(width, 0)
	height = math.Max(height, 0)
	margin = math.Min(math.Max(margin, 0), math.Min(width, height)/2)
	return Bounds{Width: width, Height: height, Margin: margin}
}

// InnerWidth returns the width of the drawable inset.
func (b Bounds) InnerWidth() float64 {
	return math.Max(b.Width-2*b.Margin, 0)
}

// InnerHeight returns the height of the drawable inset.
func (b Bounds) InnerHeight() float64 {
	return math.Max(b.Height-2*b.Margin, 0)
}

// Center returns the center of the canvas.
func (b Bounds) Center() Point {
	return Point{X: b.Width / 2, Y: b.Height / 2}
}

// Radius returns half of the smaller inset dimension.
func (b Bounds) Radius() float64 {
	return math.Min(b.InnerWidth(), b.InnerHeight()) / 2
}

// Inner returns the drawable inset rectangle.
func (b Bounds) Inner() Rect {
	return Rect{
		Min: Point{X: b.Margin, Y: b.Margin},
		Max: Point{X: b.Margin + b.InnerWidth(), Y: b.Margin + b.InnerHeight()},
	}
}

// Contains reports whether p lies inside the drawable inset.
func (b Bounds) Contains(p Point) bool {
	return b.Inner().Contains(p)
}
