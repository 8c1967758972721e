package algorithm

import (
	"fmt"
	"math"

	"github.com/gogpu/plotgen"
	"github.com/gogpu/plotgen/noise"
)

// hyphaeConfig controls branching growth.
type hyphaeConfig struct {
	Sources     int     `mapstructure:"sources"`     // [1, 64], default 3
	Steps       int     `mapstructure:"steps"`       // per agent, [1, 10000], default 400
	SegLen      float64 `mapstructure:"segLen"`      // [0.5, 100], default 4
	BranchProb  float64 `mapstructure:"branchProb"`  // per step, [0, 1], default 0.04
	BranchAngle float64 `mapstructure:"branchAngle"` // degrees, [0, 180], default 35
	MaxAgents   int     `mapstructure:"maxAgents"`   // [1, 5000], default 400
	Wander      float64 `mapstructure:"wander"`      // random turn per step, degrees, [0, 90], default 0
	Steer       float64 `mapstructure:"steer"`       // noise turn per step, degrees, [0, 90], default 0
	Spread      float64 `mapstructure:"spread"`      // source ring radius as a fraction of the inset, [0, 1], default 0
}

func defaultHyphae() hyphaeConfig {
	return hyphaeConfig{
		Sources:     3,
		Steps:       400,
		SegLen:      4,
		BranchProb:  0.04,
		BranchAngle: 35,
		MaxAgents:   400,
	}
}

func (c *hyphaeConfig) clamp() {
	c.Sources = clampI(c.Sources, 1, 64)
	c.Steps = clampI(c.Steps, 1, 10000)
	c.SegLen = clampF(c.SegLen, 0.5, 100)
	c.BranchProb = clampF(c.BranchProb, 0, 1)
	c.BranchAngle = clampF(c.BranchAngle, 0, 180)
	c.MaxAgents = clampI(c.MaxAgents, c.Sources, 5000)
	c.Wander = clampF(c.Wander, 0, 90)
	c.Steer = clampF(c.Steer, 0, 90)
	c.Spread = clampF(c.Spread, 0, 1)
}

type agent struct {
	pos     plotgen.Point
	heading float64
	steps   int
	points  []plotgen.Point
	done    bool
}

func hyphaeAlgorithm() Algorithm {
	return Algorithm{
		ID:          "hyphae",
		Name:        "hyphae",
		Description: "branching growth agents that stop at the canvas edge",
		Generate:    generateHyphae,
		Formula: func(p Params) string {
			c := decode[hyphaeConfig]("hyphae", p, defaultHyphae())
			return fmt.Sprintf("p += %g·(cos θ, sin θ); θ += wander·U(-1,1) + steer·noise(p); branch with P=%g, ±%g°, ≤%d agents",
				c.SegLen, c.BranchProb, c.BranchAngle, c.MaxAgents)
		},
	}
}

func generateHyphae(p Params, rng *plotgen.Rng, field *noise.Field, b plotgen.Bounds) Result {
	c := decode[hyphaeConfig]("hyphae", p, defaultHyphae())
	center := b.Center()
	wander := c.Wander * math.Pi / 180
	steer := c.Steer * math.Pi / 180
	branch := c.BranchAngle * math.Pi / 180

	agents := make([]*agent, 0, c.MaxAgents)
	for i := range c.Sources {
		start := center
		if c.Spread > 0 && c.Sources > 1 {
			a := 2 * math.Pi * float64(i) / float64(c.Sources)
			start = plotgen.Polar(center, c.Spread*b.Radius(), a)
		}
		agents = append(agents, &agent{pos: start, heading: rng.Angle(), points: []plotgen.Point{start}})
	}

	// Agents advance in lockstep so branching order is independent of
	// slice growth.
	for active := true; active; {
		active = false
		for _, a := range agents {
			if a.done {
				continue
			}
			if a.steps >= c.Steps {
				a.done = true
				continue
			}
			a.heading += wander * rng.Signed()
			if steer > 0 {
				a.heading += steer * field.Sample(a.pos.X, a.pos.Y)
			}
			next := plotgen.Polar(a.pos, c.SegLen, a.heading)
			if !b.Contains(next) {
				a.done = true
				continue
			}
			a.pos = next
			a.points = append(a.points, next)
			a.steps++
			active = true

			if rng.Chance(c.BranchProb) && len(agents) < c.MaxAgents {
				side := 1.0
				if rng.Chance(0.5) {
					side = -1
				}
				agents = append(agents, &agent{
					pos:     next,
					heading: a.heading + side*branch,
					steps:   a.steps,
					points:  []plotgen.Point{next},
				})
			}
		}
	}

	var res Result
	for i, a := range agents {
		if len(a.points) < 2 {
			continue
		}
		path := plotgen.NewPath(a.points)
		path.Group = "hyphae"
		path.Label = fmt.Sprintf("agent-%d", i)
		res.Paths = append(res.Paths, path)
	}
	return res
}
