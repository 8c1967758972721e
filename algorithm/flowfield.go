package algorithm

import (
	"fmt"
	"math"

	"github.com/gogpu/plotgen"
	"github.com/gogpu/plotgen/noise"
)

// flowfieldConfig controls streamline tracing.
type flowfieldConfig struct {
	Lines     int     `mapstructure:"lines"`     // [1, 10000], default 400
	Steps     int     `mapstructure:"steps"`     // per line, [2, 5000], default 200
	StepLen   float64 `mapstructure:"stepLen"`   // [0.2, 50], default 2
	Turns     float64 `mapstructure:"turns"`     // heading = noise·π·turns, [0.1, 8], default 1
	Curl      bool    `mapstructure:"curl"`      // follow the curl of the field instead
	MinLength float64 `mapstructure:"minLength"` // drop shorter lines, [0, 10000], default 10
	MinStep   float64 `mapstructure:"minStep"`   // stop when the curl magnitude falls below, [0, 1], default 1e-4
	Smooth    int     `mapstructure:"smooth"`    // Chaikin iterations, [0, 4], default 0
	Dash      float64 `mapstructure:"dash"`      // dash length, 0 draws solid lines
	Gap       float64 `mapstructure:"gap"`
}

func defaultFlowfield() flowfieldConfig {
	return flowfieldConfig{
		Lines:     400,
		Steps:     200,
		StepLen:   2,
		Turns:     1,
		MinLength: 10,
		MinStep:   1e-4,
	}
}

func (c *flowfieldConfig) clamp() {
	c.Lines = clampI(c.Lines, 1, 10000)
	c.Steps = clampI(c.Steps, 2, 5000)
	c.StepLen = clampF(c.StepLen, 0.2, 50)
	c.Turns = clampF(c.Turns, 0.1, 8)
	c.MinLength = clampF(c.MinLength, 0, 10000)
	c.MinStep = clampF(c.MinStep, 0, 1)
	c.Smooth = clampI(c.Smooth, 0, 4)
	c.Dash = clampF(c.Dash, 0, 1000)
	c.Gap = clampF(c.Gap, 0, 1000)
}

func flowfieldAlgorithm() Algorithm {
	return Algorithm{
		ID:          "flowfield",
		Name:        "flow field",
		Description: "streamlines following a noise-derived heading",
		Generate:    generateFlowfield,
		Formula: func(p Params) string {
			c := decode[flowfieldConfig]("flowfield", p, defaultFlowfield())
			if c.Curl {
				return fmt.Sprintf("p += %g·normalize(∂n/∂y, -∂n/∂x)", c.StepLen)
			}
			return fmt.Sprintf("θ = n(p)·π·%g; p += %g·(cos θ, sin θ)", c.Turns, c.StepLen)
		},
	}
}

// direction returns the unit heading at p and the raw field strength.
func (c flowfieldConfig) direction(field *noise.Field, p plotgen.Point) (plotgen.Point, float64) {
	if !c.Curl {
		a := field.Sample(p.X, p.Y) * math.Pi * c.Turns
		return plotgen.Polar(plotgen.Point{}, 1, a), 1
	}
	const h = 0.5
	dx := (field.Sample(p.X+h, p.Y) - field.Sample(p.X-h, p.Y)) / (2 * h)
	dy := (field.Sample(p.X, p.Y+h) - field.Sample(p.X, p.Y-h)) / (2 * h)
	v := plotgen.Pt(dy, -dx)
	return v.Normalize(), v.Length()
}

func generateFlowfield(p Params, rng *plotgen.Rng, field *noise.Field, b plotgen.Bounds) Result {
	c := decode[flowfieldConfig]("flowfield", p, defaultFlowfield())
	inner := b.Inner()
	var res Result
	for i := range c.Lines {
		pos := plotgen.Pt(rng.Range(inner.Min.X, inner.Max.X), rng.Range(inner.Min.Y, inner.Max.Y))
		pts := []plotgen.Point{pos}
		for range c.Steps {
			dir, strength := c.direction(field, pos)
			if strength < c.MinStep {
				break
			}
			next := pos.Add(dir.Mul(c.StepLen))
			if !b.Contains(next) {
				break
			}
			pts = append(pts, next)
			pos = next
		}
		if len(pts) < 2 || plotgen.PolylineLength(pts) < c.MinLength {
			continue
		}
		path := plotgen.NewPath(plotgen.Smooth(pts, c.Smooth))
		path.Group = "flowfield"
		path.Label = fmt.Sprintf("line-%d", i)
		if c.Dash > 0 {
			res.Paths = append(res.Paths, plotgen.ChopByDashPattern(path, c.Dash, c.Gap)...)
			continue
		}
		res.Paths = append(res.Paths, path)
	}
	return res
}
