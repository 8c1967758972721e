package algorithm

import (
	"fmt"
	"math"

	"github.com/gogpu/plotgen"
	"github.com/gogpu/plotgen/noise"
)

// Harmonograph render modes.
const (
	modeLines    = "lines"
	modePoints   = "points"
	modeSegments = "segments"
	modeDashed   = "dashed"
)

// pendulum is one damped sinusoid of the harmonograph.
type pendulum struct {
	Freq    float64 `mapstructure:"freq"`
	Phase   float64 `mapstructure:"phase"` // radians
	Amp     float64 `mapstructure:"amp"`   // relative weight, [0, 1]
	Damping float64 `mapstructure:"damping"`
}

func (p pendulum) at(t float64) float64 {
	return p.Amp * math.Sin(p.Freq*t+p.Phase) * math.Exp(-p.Damping*t)
}

// harmonographConfig controls the pendulum superposition.
type harmonographConfig struct {
	X []pendulum `mapstructure:"x"` // up to 4 pendulums on x
	Y []pendulum `mapstructure:"y"` // up to 4 pendulums on y

	RandomPhase bool    `mapstructure:"randomPhase"` // draw phases from the rng
	Duration    float64 `mapstructure:"duration"`    // time span, [1, 10000], default 200
	Dt          float64 `mapstructure:"dt"`          // [0.001, 1], default 0.02
	Scale       float64 `mapstructure:"scale"`       // fraction of the inset radius, [0.01, 1], default 0.9

	Mode      string  `mapstructure:"mode"`      // lines, points, segments or dashed; default lines
	Spacing   float64 `mapstructure:"spacing"`   // points/segments: arc-length spacing, [0.5, 500], default 4
	Jitter    float64 `mapstructure:"jitter"`    // points/segments: spacing jitter, [0, 1]
	DotSize   float64 `mapstructure:"dotSize"`   // points: radius, [0.1, 50], default 0.6
	SegLength float64 `mapstructure:"segLength"` // segments: length, [0.1, 500], default 3
	Dash      float64 `mapstructure:"dash"`      // dashed: [0.1, 500], default 4
	Gap       float64 `mapstructure:"gap"`       // dashed: [0, 500], default 2

	Settle       float64 `mapstructure:"settle"`       // stop once the radius stays below settle·scale, [0, 1], default 0.01
	SettleWindow int     `mapstructure:"settleWindow"` // consecutive steps, [1, 100000], default 200
	Guides       bool    `mapstructure:"guides"`       // emit pendulum guide helpers
}

func defaultHarmonograph() harmonographConfig {
	return harmonographConfig{
		X: []pendulum{
			{Freq: 2, Phase: 0, Amp: 0.6, Damping: 0.004},
			{Freq: 3.01, Phase: math.Pi / 2, Amp: 0.4, Damping: 0.003},
		},
		Y: []pendulum{
			{Freq: 3, Phase: math.Pi / 4, Amp: 0.6, Damping: 0.004},
			{Freq: 2.02, Phase: 0, Amp: 0.4, Damping: 0.002},
		},
		Duration:     200,
		Dt:           0.02,
		Scale:        0.9,
		Mode:         modeLines,
		Spacing:      4,
		DotSize:      0.6,
		SegLength:    3,
		Dash:         4,
		Gap:          2,
		Settle:       0.01,
		SettleWindow: 200,
	}
}

func (c *harmonographConfig) clamp() {
	clampPendulums := func(ps []pendulum) []pendulum {
		if len(ps) > 4 {
			ps = ps[:4]
		}
		out := make([]pendulum, len(ps))
		for i, p := range ps {
			out[i] = pendulum{
				Freq:    clampF(p.Freq, 0, 100),
				Phase:   clampF(p.Phase, -8*math.Pi, 8*math.Pi),
				Amp:     clampF(p.Amp, 0, 1),
				Damping: clampF(p.Damping, 0, 1),
			}
		}
		return out
	}
	c.X = clampPendulums(c.X)
	c.Y = clampPendulums(c.Y)
	c.Duration = clampF(c.Duration, 1, 10000)
	c.Dt = clampF(c.Dt, 0.001, 1)
	c.Scale = clampF(c.Scale, 0.01, 1)
	c.Mode = orDefault(c.Mode, modeLines, modeLines, modePoints, modeSegments, modeDashed)
	c.Spacing = clampF(c.Spacing, 0.5, 500)
	c.Jitter = clampF(c.Jitter, 0, 1)
	c.DotSize = clampF(c.DotSize, 0.1, 50)
	c.SegLength = clampF(c.SegLength, 0.1, 500)
	c.Dash = clampF(c.Dash, 0.1, 500)
	c.Gap = clampF(c.Gap, 0, 500)
	c.Settle = clampF(c.Settle, 0, 1)
	c.SettleWindow = clampI(c.SettleWindow, 1, 100000)
}

// norm returns the sum of amplitudes so the superposition stays in [-1, 1].
func norm(ps []pendulum) float64 {
	var s float64
	for _, p := range ps {
		s += p.Amp
	}
	return math.Max(s, 1e-9)
}

func harmonographAlgorithm() Algorithm {
	return Algorithm{
		ID:          "harmonograph",
		Name:        "harmonograph",
		Description: "superposition of damped pendulums",
		Generate:    generateHarmonograph,
		Formula: func(p Params) string {
			c := decode[harmonographConfig]("harmonograph", p, defaultHarmonograph())
			return fmt.Sprintf("x(t) = Σ%d Aᵢ·sin(fᵢt + φᵢ)·e^(-dᵢt), y(t) = Σ%d Aⱼ·sin(fⱼt + φⱼ)·e^(-dⱼt), t ∈ [0, %g]",
				len(c.X), len(c.Y), c.Duration)
		},
	}
}

func generateHarmonograph(p Params, rng *plotgen.Rng, _ *noise.Field, b plotgen.Bounds) Result {
	c := decode[harmonographConfig]("harmonograph", p, defaultHarmonograph())
	if c.RandomPhase {
		for i := range c.X {
			c.X[i].Phase = rng.Angle()
		}
		for i := range c.Y {
			c.Y[i].Phase = rng.Angle()
		}
	}
	center := b.Center()
	scale := c.Scale * b.Radius()
	nx, ny := norm(c.X), norm(c.Y)

	eval := func(t float64) plotgen.Point {
		var x, y float64
		for _, p := range c.X {
			x += p.at(t)
		}
		for _, p := range c.Y {
			y += p.at(t)
		}
		return plotgen.Pt(center.X+scale*x/nx, center.Y+scale*y/ny)
	}

	steps := int(c.Duration / c.Dt)
	pts := make([]plotgen.Point, 0, steps+1)
	settled := 0
	for i := 0; i <= steps; i++ {
		q := eval(float64(i) * c.Dt)
		pts = append(pts, q)
		if q.Distance(center) < c.Settle*scale {
			settled++
			if settled >= c.SettleWindow {
				plotgen.Logger().Debug("harmonograph: settled", "step", i)
				break
			}
		} else {
			settled = 0
		}
	}

	res := Result{Paths: renderCurve(plotgen.NewPath(pts), c, rng)}
	for i := range res.Paths {
		res.Paths[i].Group = "harmonograph"
	}
	if c.Guides {
		res.Helpers = harmonographGuides(c, center, scale)
	}
	return res
}

// renderCurve turns the traced curve into the configured output mode.
func renderCurve(curve plotgen.Path, c harmonographConfig, rng *plotgen.Rng) []plotgen.Path {
	switch c.Mode {
	case modeDashed:
		return plotgen.ChopByDashPattern(curve, c.Dash, c.Gap)
	case modePoints, modeSegments:
		table := plotgen.BuildSegmentTable(curve.Points)
		var out []plotgen.Path
		for pos, tangent := range table.Samples(c.Spacing, 0, c.Jitter, rng) {
			if c.Mode == modePoints {
				out = append(out, plotgen.NewCircle(pos, c.DotSize))
				continue
			}
			half := tangent.Mul(c.SegLength / 2)
			out = append(out, plotgen.NewPath([]plotgen.Point{pos.Sub(half), pos.Add(half)}))
		}
		return out
	default:
		return []plotgen.Path{curve}
	}
}

// harmonographGuides returns the amplitude envelope circle and one trace
// per pendulum along its own axis.
func harmonographGuides(c harmonographConfig, center plotgen.Point, scale float64) []plotgen.Path {
	guides := []plotgen.Path{plotgen.NewCircle(center, scale)}
	trace := func(p pendulum, n float64, horizontal bool) plotgen.Path {
		const samples = 400
		pts := make([]plotgen.Point, samples)
		for i := range pts {
			t := c.Duration * float64(i) / float64(samples-1)
			along := -scale + 2*scale*float64(i)/float64(samples-1)
			v := scale * p.at(t) / n
			if horizontal {
				pts[i] = plotgen.Pt(center.X+along, center.Y+v)
			} else {
				pts[i] = plotgen.Pt(center.X+v, center.Y+along)
			}
		}
		path := plotgen.NewPath(pts)
		path.Group = "guides"
		return path
	}
	for _, p := range c.X {
		guides = append(guides, trace(p, norm(c.X), false))
	}
	for _, p := range c.Y {
		guides = append(guides, trace(p, norm(c.Y), true))
	}
	return guides
}
