package algorithm

import (
	"fmt"
	"math"
	"slices"

	"github.com/gogpu/plotgen"
	"github.com/gogpu/plotgen/modifier"
	"github.com/gogpu/plotgen/noise"
	"github.com/gogpu/plotgen/occlusion"
)

// petalsConfig controls layered petal compositions.
type petalsConfig struct {
	Petals   int     `mapstructure:"petals"`   // per layer, [1, 64], default 8
	Layers   int     `mapstructure:"layers"`   // [1, 12], default 3
	Length   float64 `mapstructure:"length"`   // outer petal length as a fraction of the inset radius, [0.05, 1], default 0.95
	Shrink   float64 `mapstructure:"shrink"`   // length ratio between layers, [0.1, 1], default 0.72
	Width    float64 `mapstructure:"width"`    // half width as a fraction of length, [0.05, 1.5], default 0.32
	Tip      float64 `mapstructure:"tip"`      // position of the widest point, [0.1, 0.95], default 0.55
	Rotation float64 `mapstructure:"rotation"` // degrees
	Core     float64 `mapstructure:"core"`     // center disc radius as a fraction of the inset radius, [0, 0.5], default 0.08

	Shading int     `mapstructure:"shading"` // hatch lines per petal, [0, 200], default 12
	Dash    float64 `mapstructure:"dash"`    // hatch dash length, 0 draws solid hatches
	Gap     float64 `mapstructure:"gap"`

	Shadow        bool    `mapstructure:"shadow"`        // hatch only the shadowed side
	LightAngle    float64 `mapstructure:"lightAngle"`    // degrees, default -45
	LightDistance float64 `mapstructure:"lightDistance"` // fraction of the inset radius, [0.1, 20], default 3

	Modifiers []modifier.Modifier `mapstructure:"modifiers"` // local modifiers in each petal's frame
}

func defaultPetals() petalsConfig {
	return petalsConfig{
		Petals:        8,
		Layers:        3,
		Length:        0.95,
		Shrink:        0.72,
		Width:         0.32,
		Tip:           0.55,
		Core:          0.08,
		Shading:       12,
		Shadow:        true,
		LightAngle:    -45,
		LightDistance: 3,
	}
}

func (c *petalsConfig) clamp() {
	c.Petals = clampI(c.Petals, 1, 64)
	c.Layers = clampI(c.Layers, 1, 12)
	c.Length = clampF(c.Length, 0.05, 1)
	c.Shrink = clampF(c.Shrink, 0.1, 1)
	c.Width = clampF(c.Width, 0.05, 1.5)
	c.Tip = clampF(c.Tip, 0.1, 0.95)
	c.Core = clampF(c.Core, 0, 0.5)
	c.Shading = clampI(c.Shading, 0, 200)
	c.Dash = clampF(c.Dash, 0, 1000)
	c.Gap = clampF(c.Gap, 0, 1000)
	c.LightDistance = clampF(c.LightDistance, 0.1, 20)
}

// petalProfile returns the closed outline of a petal of length l in its
// local frame: base at the origin, tip at (l, 0). The upper half is a
// cubic Bézier mirrored below the axis.
func petalProfile(l, width, tip float64) []plotgen.Point {
	w := width * l
	upper := plotgen.NewCubicBez(
		plotgen.Pt(0, 0),
		plotgen.Pt(l*tip*0.4, w*1.2),
		plotgen.Pt(l*tip, w),
		plotgen.Pt(l, 0),
	).Flatten(0.2)
	out := slices.Clone(upper)
	for i := len(upper) - 2; i >= 0; i-- {
		out = append(out, plotgen.Pt(upper[i].X, -upper[i].Y))
	}
	return out
}

// chord returns the span of the outline on the vertical line x.
func chord(outline []plotgen.Point, x float64) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for i := 1; i < len(outline); i++ {
		a, b := outline[i-1], outline[i]
		if (a.X-x)*(b.X-x) > 0 || a.X == b.X {
			continue
		}
		y := a.Y + (x-a.X)/(b.X-a.X)*(b.Y-a.Y)
		lo, hi = math.Min(lo, y), math.Max(hi, y)
	}
	return lo, hi, hi > lo
}

func petalsAlgorithm() Algorithm {
	return Algorithm{
		ID:          "petals",
		Name:        "petals",
		Description: "layered Bézier petals with hatching, shadows and occlusion",
		Generate:    generatePetals,
		Formula: func(p Params) string {
			c := decode[petalsConfig]("petals", p, defaultPetals())
			return fmt.Sprintf("petal(l) = B(0, (0.4·%g·l, 1.2·%g·l), (%g·l, %g·l), l) ∪ mirror; %d layers × %d petals, lₖ = %g·R·%gᵏ",
				c.Tip, c.Width, c.Tip, c.Width, c.Layers, c.Petals, c.Length, c.Shrink)
		},
	}
}

func generatePetals(p Params, _ *plotgen.Rng, field *noise.Field, b plotgen.Bounds) Result {
	c := decode[petalsConfig]("petals", p, defaultPetals())
	center := b.Center()
	radius := b.Radius()
	light := plotgen.Polar(center, c.LightDistance*radius, c.LightAngle*math.Pi/180)
	rotation := c.Rotation * math.Pi / 180

	var res Result
	var stack occlusion.Stack

	// Shapes are emitted front to back: the core, then layers from the
	// innermost out. Each shape is hidden by everything emitted before it.
	if c.Core > 0 {
		core := plotgen.NewCircle(center, c.Core*radius)
		core.Group = "core"
		res.Paths = append(res.Paths, stack.Emit(core)...)
	}

	for layer := range c.Layers {
		l := c.Length * radius * math.Pow(c.Shrink, float64(c.Layers-1-layer))
		profile := petalProfile(l, c.Width, c.Tip)
		offset := float64(layer%2) * math.Pi / float64(c.Petals)
		group := fmt.Sprintf("layer-%d", layer)

		for i := range c.Petals {
			angle := rotation + offset + 2*math.Pi*float64(i)/float64(c.Petals)
			toWorld := plotgen.Frame(center, angle)
			frame := modifier.LocalFrame{Anchor: center, Angle: angle, Length: l}
			bend := func(pts []plotgen.Point) plotgen.Path {
				return modifier.ApplyLocal([]plotgen.Path{plotgen.NewPath(toWorld.TransformPoints(pts))}, c.Modifiers, frame, field)[0]
			}

			outline := bend(profile)
			outline.Group = group
			outline.Label = fmt.Sprintf("petal-%d-%d", layer, i)
			mid := toWorld.TransformPoint(plotgen.Pt(l/2, 0))

			for k := 1; k <= c.Shading; k++ {
				x := l * float64(k) / float64(c.Shading+1)
				lo, hi, ok := chord(profile, x)
				if !ok {
					continue
				}
				const hatchSamples = 8
				pts := make([]plotgen.Point, hatchSamples+1)
				for s := range pts {
					pts[s] = plotgen.Pt(x, lo+(hi-lo)*float64(s)/hatchSamples)
				}
				hatch := bend(pts)
				hatch.Group = "shading-" + group

				runs := []plotgen.Path{hatch}
				if c.Shadow {
					runs = occlusion.Shadowed(occlusion.SplitByShadow(hatch, light, mid, stack.Occluders()))
				}
				for _, run := range runs {
					for _, visible := range stack.Clip(run) {
						if c.Dash > 0 {
							res.Paths = append(res.Paths, plotgen.ChopByDashPattern(visible, c.Dash, c.Gap)...)
						} else {
							res.Paths = append(res.Paths, visible)
						}
					}
				}
			}
			res.Paths = append(res.Paths, stack.Emit(outline)...)
		}
	}
	return res
}
