package modifier

import (
	"math"

	"github.com/gogpu/plotgen"
	"github.com/gogpu/plotgen/noise"
)

// LocalFrame places a shape: Anchor is its local origin, Angle the
// direction of its local x axis (radians) and Length the reference extent
// along that axis used to compute t = lx / Length.
type LocalFrame struct {
	Anchor plotgen.Point
	Angle  float64
	Length float64
}

// ApplyLocal applies mods in the frame's local coordinates. Primitive
// (circle/polygon) paths pass through untouched.
func ApplyLocal(paths []plotgen.Path, mods []Modifier, frame LocalFrame, field *noise.Field) []plotgen.Path {
	out := make([]plotgen.Path, len(paths))
	mods = active(mods)
	if len(mods) == 0 {
		copy(out, paths)
		return out
	}
	frame.Length = math.Max(math.Abs(frame.Length), minFrameSize)
	toWorld := plotgen.Frame(frame.Anchor, frame.Angle)
	toLocal := toWorld.Invert()

	apply := func(p plotgen.Point) plotgen.Point {
		l := toLocal.TransformPoint(p)
		for _, m := range mods {
			l = m.local(l, p, frame.Length, field)
		}
		return toWorld.TransformPoint(l)
	}
	for i, p := range paths {
		if p.IsPrimitive() {
			out[i] = p
			continue
		}
		out[i] = transform(p, apply)
	}
	return out
}

// local applies one modifier to local point l; world is the untransformed
// canvas position, used for noise lookups.
func (m Modifier) local(l, world plotgen.Point, length float64, field *noise.Field) plotgen.Point {
	t := l.X / length
	switch m.Type {
	case Ripple:
		l.Y += math.Sin(t*m.frequency()*2*math.Pi) * m.Amount
	case Twist:
		l = l.Rotate(m.Amount * t)
	case Noise:
		l.Y += m.noiseAt(field, world) * m.Amount
	case Shear:
		l.X += l.Y * m.Amount
	case Taper:
		l.Y *= 1 + m.Amount*(t-0.5)
	case Offset:
		l.X += m.OffsetX
		l.Y += m.OffsetY
	}
	return l
}
