// Package modifier applies ordered per-point transforms to paths, either in
// polar coordinates around a center or in the local frame of a shape.
//
// Both flavors return new slices and never mutate their input. Disabled
// modifiers are skipped; the rest apply in list order.
package modifier

import (
	"math"

	"github.com/gogpu/plotgen"
	"github.com/gogpu/plotgen/noise"
)

// Type names a modifier effect.
type Type string

// Polar effects.
const (
	Ripple         Type = "ripple"
	Twist          Type = "twist"
	RadialNoise    Type = "radialNoise"
	Falloff        Type = "falloff"
	Clip           Type = "clip"
	Offset         Type = "offset"
	CircularOffset Type = "circularOffset"
)

// Local-only effects. Ripple, Twist and Offset also apply locally.
const (
	Noise Type = "noise"
	Shear Type = "shear"
	Taper Type = "taper"
)

// Modifier is one entry of a modifier list. Fields unused by an effect are
// ignored.
type Modifier struct {
	Type     Type `mapstructure:"type"`
	Disabled bool `mapstructure:"disabled"`

	Amount    float64 `mapstructure:"amount"`
	Frequency float64 `mapstructure:"frequency"` // ripple: cycles per turn (polar) or per length (local), default 6
	Radius    float64 `mapstructure:"radius"`    // clip: radius, default the frame's MaxRadius
	Zoom      float64 `mapstructure:"zoom"`      // noise effects: canvas units per noise unit, default 100
	OffsetX   float64 `mapstructure:"offsetX"`
	OffsetY   float64 `mapstructure:"offsetY"`
}

const (
	defaultFrequency = 6
	defaultZoom      = 100
	minFrameSize     = 1e-6
)

func (m Modifier) frequency() float64 {
	if m.Frequency == 0 {
		return defaultFrequency
	}
	return m.Frequency
}

// noiseAt samples the base noise at a canvas position; a nil field reads 0.
func (m Modifier) noiseAt(field *noise.Field, p plotgen.Point) float64 {
	if field == nil {
		return 0
	}
	zoom := math.Abs(m.Zoom)
	if zoom < minFrameSize {
		zoom = defaultZoom
	}
	return field.Noise2D(p.X/zoom, p.Y/zoom)
}

// active returns the enabled modifiers in order.
func active(mods []Modifier) []Modifier {
	out := make([]Modifier, 0, len(mods))
	for _, m := range mods {
		if !m.Disabled {
			out = append(out, m)
		}
	}
	return out
}

// transform maps every path through fn, re-pinning closed paths so the
// closing point equals the transformed first point. Non-finite results
// keep the input point.
func transform(p plotgen.Path, fn func(plotgen.Point) plotgen.Point) plotgen.Path {
	closed := plotgen.IsClosed(p.Points)
	pts := make([]plotgen.Point, len(p.Points))
	for i, pt := range p.Points {
		q := fn(pt)
		if !q.IsFinite() {
			q = pt
		}
		pts[i] = q
	}
	if closed {
		pts[len(pts)-1] = pts[0]
	}
	return p.WithPoints(pts)
}
