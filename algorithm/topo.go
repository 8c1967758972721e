package algorithm

import (
	"fmt"
	"math"

	"github.com/gogpu/plotgen"
	"github.com/gogpu/plotgen/contour"
	"github.com/gogpu/plotgen/noise"
)

// topoConfig controls topographic contouring of the noise field.
type topoConfig struct {
	Levels int     `mapstructure:"levels"` // [1, 256], default 16
	Cell   float64 `mapstructure:"cell"`   // grid cell size in canvas units, [1, 100], default 4
	Offset float64 `mapstructure:"offset"` // threshold shift in steps, [-0.5, 0.5]
	Smooth int     `mapstructure:"smooth"` // Chaikin iterations, [0, 4], default 1
	Refine bool    `mapstructure:"refine"` // Newton step onto the exact isoline
	Dash   float64 `mapstructure:"dash"`   // dash length, 0 draws solid contours
	Gap    float64 `mapstructure:"gap"`
}

func defaultTopo() topoConfig {
	return topoConfig{Levels: 16, Cell: 4, Smooth: 1}
}

func (c *topoConfig) clamp() {
	c.Levels = clampI(c.Levels, 1, 256)
	c.Cell = clampF(c.Cell, 1, 100)
	c.Offset = clampF(c.Offset, -0.5, 0.5)
	c.Smooth = clampI(c.Smooth, 0, 4)
	c.Dash = clampF(c.Dash, 0, 1000)
	c.Gap = clampF(c.Gap, 0, 1000)
}

func topoAlgorithm() Algorithm {
	return Algorithm{
		ID:          "topo",
		Name:        "topographic",
		Description: "marching-squares contours of the layered noise field",
		Generate:    generateTopo,
		Formula: func(p Params) string {
			c := decode[topoConfig]("topo", p, defaultTopo())
			return fmt.Sprintf("{(x, y) : n(x, y) = min + k·(max - min)/%d}, k = 1..%d", c.Levels+1, c.Levels)
		},
	}
}

func generateTopo(p Params, _ *plotgen.Rng, field *noise.Field, b plotgen.Bounds) Result {
	c := decode[topoConfig]("topo", p, defaultTopo())
	inner := b.Inner()
	rows := max(int(math.Ceil(inner.Height()/c.Cell)), 1)
	cols := max(int(math.Ceil(inner.Width()/c.Cell)), 1)
	grid := contour.SampleField(inner, rows, cols, field.Sample)

	var res Result
	for _, level := range contour.Extract(grid, contour.Options{
		Levels:  c.Levels,
		Offset:  c.Offset,
		Smooth:  c.Smooth,
		Refine:  c.Refine,
		Sampler: field.Sample,
	}) {
		for _, path := range level.Paths {
			path.Group = fmt.Sprintf("level-%d", level.Index)
			path.Label = fmt.Sprintf("%.4f", level.Level)
			if c.Dash > 0 {
				res.Paths = append(res.Paths, plotgen.ChopByDashPattern(path, c.Dash, c.Gap)...)
				continue
			}
			res.Paths = append(res.Paths, path)
		}
	}
	return res
}
