package algorithm

import (
	"fmt"
	"math"

	"github.com/gogpu/plotgen"
	"github.com/gogpu/plotgen/modifier"
	"github.com/gogpu/plotgen/noise"
)

// goldenAngle is 360°·(2-φ).
const goldenAngle = 137.50776405003785

// phyllotaxisConfig controls golden-angle placement.
type phyllotaxisConfig struct {
	Count     int     `mapstructure:"count"`     // [1, 20000], default 600
	Angle     float64 `mapstructure:"angle"`     // divergence angle, degrees, default golden
	Spread    float64 `mapstructure:"spread"`    // r = spread·√n; 0 fits the inset
	DotSize   float64 `mapstructure:"dotSize"`   // [0.1, 100], default 3
	DotGrowth float64 `mapstructure:"dotGrowth"` // dot size gain from center to rim, [0, 10]
	Sides     int     `mapstructure:"sides"`     // 0 draws circles, otherwise [3, 12]-gons
	Jitter    float64 `mapstructure:"jitter"`    // noise radius jitter in canvas units, [0, 100]

	Modifiers []modifier.Modifier `mapstructure:"modifiers"` // polar modifiers around the center
}

func defaultPhyllotaxis() phyllotaxisConfig {
	return phyllotaxisConfig{Count: 600, Angle: goldenAngle, DotSize: 3}
}

func (c *phyllotaxisConfig) clamp() {
	c.Count = clampI(c.Count, 1, 20000)
	c.Angle = clampF(c.Angle, 0, 360)
	c.Spread = clampF(c.Spread, 0, 1000)
	c.DotSize = clampF(c.DotSize, 0.1, 100)
	c.DotGrowth = clampF(c.DotGrowth, 0, 10)
	if c.Sides != 0 {
		c.Sides = clampI(c.Sides, 3, 12)
	}
	c.Jitter = clampF(c.Jitter, 0, 100)
}

func phyllotaxisAlgorithm() Algorithm {
	return Algorithm{
		ID:          "phyllotaxis",
		Name:        "phyllotaxis",
		Description: "golden-angle spiral placement of dots",
		Generate:    generatePhyllotaxis,
		Formula: func(p Params) string {
			c := decode[phyllotaxisConfig]("phyllotaxis", p, defaultPhyllotaxis())
			return fmt.Sprintf("θₙ = n·%g°, rₙ = c·√n, n < %d", c.Angle, c.Count)
		},
	}
}

func generatePhyllotaxis(p Params, _ *plotgen.Rng, field *noise.Field, b plotgen.Bounds) Result {
	c := decode[phyllotaxisConfig]("phyllotaxis", p, defaultPhyllotaxis())
	center := b.Center()
	radius := b.Radius()
	spread := c.Spread
	if spread == 0 {
		spread = radius / math.Sqrt(float64(c.Count))
	}
	step := c.Angle * math.Pi / 180

	paths := make([]plotgen.Path, 0, c.Count)
	for n := range c.Count {
		r := spread * math.Sqrt(float64(n))
		a := float64(n) * step
		pos := plotgen.Polar(center, r, a)
		if c.Jitter > 0 {
			pos = plotgen.Polar(center, r+c.Jitter*field.Sample(pos.X, pos.Y), a)
		}
		size := c.DotSize * (1 + c.DotGrowth*r/math.Max(radius, 1e-9))
		var dot plotgen.Path
		if c.Sides == 0 {
			dot = plotgen.NewCircle(pos, size)
		} else {
			dot = plotgen.NewPolygon(pos, size, c.Sides, a)
		}
		dot.Group = "phyllotaxis"
		paths = append(paths, dot)
	}
	paths = modifier.ApplyPolar(paths, c.Modifiers, modifier.PolarFrame{Center: center, MaxRadius: radius}, field)
	return Result{Paths: paths}
}
