package modifier

import (
	"math"

	"github.com/gogpu/plotgen"
	"github.com/gogpu/plotgen/noise"
)

// PolarFrame is the reference for polar modifiers.
type PolarFrame struct {
	Center    plotgen.Point
	MaxRadius float64
}

// ApplyPolar applies mods to every point as (radius, angle) around
// frame.Center. With no enabled modifier the paths are returned as-is,
// primitives unexpanded; otherwise primitives are expanded first.
func ApplyPolar(paths []plotgen.Path, mods []Modifier, frame PolarFrame, field *noise.Field) []plotgen.Path {
	out := make([]plotgen.Path, len(paths))
	mods = active(mods)
	if len(mods) == 0 {
		copy(out, paths)
		return out
	}
	frame.MaxRadius = math.Max(frame.MaxRadius, minFrameSize)

	apply := func(p plotgen.Point) plotgen.Point {
		for _, m := range mods {
			p = m.polar(p, frame, field)
		}
		return p
	}
	for i, p := range paths {
		out[i] = transform(p.Expand(plotgen.DefaultCircleSegments), apply)
	}
	return out
}

// polar applies one modifier. Points the effect leaves in place are
// returned bit-for-bit unchanged.
func (m Modifier) polar(p plotgen.Point, frame PolarFrame, field *noise.Field) plotgen.Point {
	switch m.Type {
	case Offset:
		return p.Add(plotgen.Pt(m.OffsetX, m.OffsetY))
	case CircularOffset:
		a := m.noiseAt(field, p) * 2 * math.Pi
		return plotgen.Polar(p, m.Amount, a)
	}

	d := p.Sub(frame.Center)
	r0, a0 := d.Length(), d.Angle()
	r, a := r0, a0
	switch m.Type {
	case Ripple:
		r += math.Sin(a*m.frequency()) * m.Amount
	case Twist:
		a += m.Amount * (r / frame.MaxRadius)
	case RadialNoise:
		r += m.noiseAt(field, p) * m.Amount
	case Falloff:
		r *= math.Max(1-m.Amount*(r/frame.MaxRadius), 0)
	case Clip:
		limit := m.Radius
		if limit <= 0 {
			limit = frame.MaxRadius
		}
		r = math.Min(r, limit)
	}
	if r == r0 && a == a0 {
		return p
	}
	return plotgen.Polar(frame.Center, math.Max(r, 0), a)
}
