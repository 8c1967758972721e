package algorithm

import (
	"fmt"
	"math"

	"github.com/gogpu/plotgen"
	"github.com/gogpu/plotgen/modifier"
	"github.com/gogpu/plotgen/noise"
)

// ringsConfig controls noise-perturbed polar rings and spirals.
type ringsConfig struct {
	Rings      int     `mapstructure:"rings"`      // [1, 1000], default 40
	Resolution int     `mapstructure:"resolution"` // points per ring, [8, 20000], default 360
	Inner      float64 `mapstructure:"inner"`      // innermost radius as a fraction of the inset radius, [0, 1], default 0.1
	Amplitude  float64 `mapstructure:"amplitude"`  // radial noise displacement, [0, 1000], default 8
	Spiral     bool    `mapstructure:"spiral"`     // one spiral instead of concentric rings
	Turns      float64 `mapstructure:"turns"`      // spiral turns, [0.5, 1000], default rings

	Modifiers []modifier.Modifier `mapstructure:"modifiers"` // polar modifiers around the center
}

const maxSpiralPoints = 1 << 20

func defaultRings() ringsConfig {
	return ringsConfig{Rings: 40, Resolution: 360, Inner: 0.1, Amplitude: 8}
}

func (c *ringsConfig) clamp() {
	c.Rings = clampI(c.Rings, 1, 1000)
	c.Resolution = clampI(c.Resolution, 8, 20000)
	c.Inner = clampF(c.Inner, 0, 1)
	c.Amplitude = clampF(c.Amplitude, 0, 1000)
	if c.Turns == 0 {
		c.Turns = float64(c.Rings)
	}
	c.Turns = clampF(c.Turns, 0.5, 1000)
}

func ringsAlgorithm() Algorithm {
	return Algorithm{
		ID:          "rings",
		Name:        "rings",
		Description: "concentric rings or a spiral displaced by layered noise",
		Generate:    generateRings,
		Formula: func(p Params) string {
			c := decode[ringsConfig]("rings", p, defaultRings())
			if c.Spiral {
				return fmt.Sprintf("r(θ) = r₀ + (R - r₀)·θ/(2π·%g) + %g·n(x, y)", c.Turns, c.Amplitude)
			}
			return fmt.Sprintf("rₖ(θ) = r₀ + (R - r₀)·k/%d + %g·n(x, y)", max(c.Rings-1, 1), c.Amplitude)
		},
	}
}

func generateRings(p Params, _ *plotgen.Rng, field *noise.Field, b plotgen.Bounds) Result {
	c := decode[ringsConfig]("rings", p, defaultRings())
	center := b.Center()
	outer := b.Radius()
	inner := c.Inner * outer
	// Leave room for the displacement so rings stay inside the inset.
	span := math.Max(outer-c.Amplitude-inner, 0)

	displaced := func(r, a float64) plotgen.Point {
		q := plotgen.Polar(center, r, a)
		return plotgen.Polar(center, math.Max(r+c.Amplitude*field.Sample(q.X, q.Y), 0), a)
	}

	var paths []plotgen.Path
	if c.Spiral {
		n := min(int(float64(c.Resolution)*c.Turns), maxSpiralPoints)
		pts := make([]plotgen.Point, n+1)
		for i := range pts {
			t := float64(i) / float64(n)
			pts[i] = displaced(inner+span*t, 2*math.Pi*c.Turns*t)
		}
		path := plotgen.NewPath(pts)
		path.Group = "spiral"
		paths = append(paths, path)
	} else {
		for k := range c.Rings {
			r := inner
			if c.Rings > 1 {
				r += span * float64(k) / float64(c.Rings-1)
			}
			pts := make([]plotgen.Point, c.Resolution+1)
			for i := range c.Resolution {
				pts[i] = displaced(r, 2*math.Pi*float64(i)/float64(c.Resolution))
			}
			pts[c.Resolution] = pts[0]
			path := plotgen.NewPath(pts)
			path.Group = "rings"
			path.Label = fmt.Sprintf("ring-%d", k)
			paths = append(paths, path)
		}
	}
	paths = modifier.ApplyPolar(paths, c.Modifiers, modifier.PolarFrame{Center: center, MaxRadius: outer}, field)
	return Result{Paths: paths}
}
