package algorithm

import (
	"fmt"
	"math"

	"github.com/gogpu/plotgen"
	"github.com/gogpu/plotgen/noise"
)

// lissajousConfig controls damped Lissajous figures.
type lissajousConfig struct {
	FreqX      float64 `mapstructure:"freqX"`      // [0.1, 64], default 3
	FreqY      float64 `mapstructure:"freqY"`      // [0.1, 64], default 2
	Phase      float64 `mapstructure:"phase"`      // x phase, radians
	Damping    float64 `mapstructure:"damping"`    // amplitude decay per radian, [0, 1]
	Loops      float64 `mapstructure:"loops"`      // parameter range in turns, [0.1, 200], default 1
	Resolution int     `mapstructure:"resolution"` // points, [10, 100000], default 1000
	Scale      float64 `mapstructure:"scale"`      // fraction of the inset radius, [0.01, 1], default 0.9
	CloseLines bool    `mapstructure:"closeLines"` // close the figure at its first self-crossing
}

func defaultLissajous() lissajousConfig {
	return lissajousConfig{FreqX: 3, FreqY: 2, Loops: 1, Resolution: 1000, Scale: 0.9}
}

func (c *lissajousConfig) clamp() {
	c.FreqX = clampF(c.FreqX, 0.1, 64)
	c.FreqY = clampF(c.FreqY, 0.1, 64)
	c.Phase = clampF(c.Phase, -8*math.Pi, 8*math.Pi)
	c.Damping = clampF(c.Damping, 0, 1)
	c.Loops = clampF(c.Loops, 0.1, 200)
	c.Resolution = clampI(c.Resolution, 10, 100000)
	c.Scale = clampF(c.Scale, 0.01, 1)
}

func lissajousAlgorithm() Algorithm {
	return Algorithm{
		ID:          "lissajous",
		Name:        "lissajous",
		Description: "damped Lissajous figure",
		Generate:    generateLissajous,
		Formula: func(p Params) string {
			c := decode[lissajousConfig]("lissajous", p, defaultLissajous())
			return fmt.Sprintf("x = A·e^(-%gt)·sin(%gt + %g), y = A·e^(-%gt)·sin(%gt)",
				c.Damping, c.FreqX, c.Phase, c.Damping, c.FreqY)
		},
	}
}

func generateLissajous(p Params, _ *plotgen.Rng, _ *noise.Field, b plotgen.Bounds) Result {
	c := decode[lissajousConfig]("lissajous", p, defaultLissajous())
	center := b.Center()
	scale := c.Scale * b.Radius()
	span := 2 * math.Pi * c.Loops

	pts := make([]plotgen.Point, c.Resolution)
	for i := range pts {
		t := span * float64(i) / float64(c.Resolution)
		env := math.Exp(-c.Damping * t)
		pts[i] = plotgen.Pt(
			center.X+scale*env*math.Sin(c.FreqX*t+c.Phase),
			center.Y+scale*env*math.Sin(c.FreqY*t),
		)
	}
	if c.CloseLines {
		pts = closeAtCrossing(pts, 1e-6*math.Max(scale, 1))
	}
	path := plotgen.NewPath(pts)
	path.Group = "lissajous"
	return Result{Paths: []plotgen.Path{path}}
}

// closeAtCrossing returns pts closed at the first later segment crossing
// the opening segment, or at the first later point meeting the start.
// Only segments heading the same way as the opening segment count, so a
// pass through the start in another direction keeps the figure whole.
// Without either, pts is returned unchanged.
func closeAtCrossing(pts []plotgen.Point, eps float64) []plotgen.Point {
	if len(pts) < 4 {
		return pts
	}
	a, b := pts[0], pts[1]
	heading := b.Sub(a)
	for j := 2; j+1 < len(pts); j++ {
		if pts[j+1].Sub(pts[j]).Dot(heading) <= 0 {
			continue
		}
		if pts[j+1].Near(a, eps) {
			out := append([]plotgen.Point(nil), pts[:j+1]...)
			return append(out, a)
		}
		if x, ok := crossing(a, b, pts[j], pts[j+1]); ok {
			out := make([]plotgen.Point, 0, j+2)
			out = append(out, x)
			out = append(out, pts[1:j+1]...)
			return append(out, x)
		}
	}
	// A figure that ends one step short of its start is closed there.
	if last := pts[len(pts)-1]; last.Distance(a) < 2*b.Distance(a) {
		return append(append([]plotgen.Point(nil), pts...), a)
	}
	return pts
}

// crossing returns the proper intersection of segments ab and cd.
func crossing(a, b, c, d plotgen.Point) (plotgen.Point, bool) {
	r, s := b.Sub(a), d.Sub(c)
	den := r.Cross(s)
	if math.Abs(den) < 1e-12 {
		return plotgen.Point{}, false
	}
	ca := c.Sub(a)
	t := ca.Cross(s) / den
	u := ca.Cross(r) / den
	if t <= 0 || t >= 1 || u <= 0 || u >= 1 {
		return plotgen.Point{}, false
	}
	return a.Lerp(b, t), true
}
