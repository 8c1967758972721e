package algorithm

import (
	"fmt"
	"math"

	"github.com/gogpu/plotgen"
	"github.com/gogpu/plotgen/noise"
)

// Attractor systems.
const (
	attractorLorenz  = "lorenz"
	attractorRossler = "rossler"
	attractorAizawa  = "aizawa"
)

// attractorConfig controls chaotic attractor integration.
type attractorConfig struct {
	Kind       string  `mapstructure:"kind"`       // lorenz, rossler or aizawa; default lorenz
	Steps      int     `mapstructure:"steps"`      // [100, 500000], default 20000
	Warmup     int     `mapstructure:"warmup"`     // discarded leading steps, [0, 100000], default 200
	Dt         float64 `mapstructure:"dt"`         // [1e-4, 0.05], default 0.005
	Projection string  `mapstructure:"projection"` // xy, xz or yz; default xz
	Rotation   float64 `mapstructure:"rotation"`   // degrees around the view axis
	Scale      float64 `mapstructure:"scale"`      // fraction of the inset, [0.05, 1], default 0.9

	// Lorenz.
	Sigma float64 `mapstructure:"sigma"` // default 10
	Rho   float64 `mapstructure:"rho"`   // default 28
	Beta  float64 `mapstructure:"beta"`  // default 8/3
	// Rössler.
	A float64 `mapstructure:"a"` // default 0.2
	B float64 `mapstructure:"b"` // default 0.2
	C float64 `mapstructure:"c"` // default 5.7
}

func defaultAttractor() attractorConfig {
	return attractorConfig{
		Kind:       attractorLorenz,
		Steps:      20000,
		Warmup:     200,
		Dt:         0.005,
		Projection: "xz",
		Scale:      0.9,
		Sigma:      10,
		Rho:        28,
		Beta:       8.0 / 3,
		A:          0.2,
		B:          0.2,
		C:          5.7,
	}
}

func (c *attractorConfig) clamp() {
	c.Kind = orDefault(c.Kind, attractorLorenz, attractorLorenz, attractorRossler, attractorAizawa)
	c.Projection = orDefault(c.Projection, "xz", "xy", "xz", "yz")
	c.Steps = clampI(c.Steps, 100, 500000)
	c.Warmup = clampI(c.Warmup, 0, 100000)
	c.Dt = clampF(c.Dt, 1e-4, 0.05)
	c.Scale = clampF(c.Scale, 0.05, 1)
	c.Sigma = clampF(c.Sigma, 0, 100)
	c.Rho = clampF(c.Rho, 0, 200)
	c.Beta = clampF(c.Beta, 0, 20)
	c.A = clampF(c.A, -2, 2)
	c.B = clampF(c.B, -2, 2)
	c.C = clampF(c.C, 0, 30)
}

type vec3 struct{ x, y, z float64 }

func (v vec3) add(o vec3, s float64) vec3 {
	return vec3{v.x + o.x*s, v.y + o.y*s, v.z + o.z*s}
}

func (v vec3) finite() bool {
	return !math.IsNaN(v.x+v.y+v.z) && !math.IsInf(v.x+v.y+v.z, 0)
}

// deriv returns the system's velocity at v.
func (c attractorConfig) deriv(v vec3) vec3 {
	switch c.Kind {
	case attractorRossler:
		return vec3{-v.y - v.z, v.x + c.A*v.y, c.B + v.z*(v.x-c.C)}
	case attractorAizawa:
		const a, b, cc, d, e, f = 0.95, 0.7, 0.6, 3.5, 0.25, 0.1
		return vec3{
			(v.z-b)*v.x - d*v.y,
			d*v.x + (v.z-b)*v.y,
			cc + a*v.z - v.z*v.z*v.z/3 - (v.x*v.x+v.y*v.y)*(1+e*v.z) + f*v.z*v.x*v.x*v.x,
		}
	default:
		return vec3{c.Sigma * (v.y - v.x), v.x*(c.Rho-v.z) - v.y, v.x*v.y - c.Beta*v.z}
	}
}

// step advances v by one RK4 step.
func (c attractorConfig) step(v vec3) vec3 {
	h := c.Dt
	k1 := c.deriv(v)
	k2 := c.deriv(v.add(k1, h/2))
	k3 := c.deriv(v.add(k2, h/2))
	k4 := c.deriv(v.add(k3, h))
	return vec3{
		v.x + h/6*(k1.x+2*k2.x+2*k3.x+k4.x),
		v.y + h/6*(k1.y+2*k2.y+2*k3.y+k4.y),
		v.z + h/6*(k1.z+2*k2.z+2*k3.z+k4.z),
	}
}

func (c attractorConfig) project(v vec3) plotgen.Point {
	switch c.Projection {
	case "xy":
		return plotgen.Pt(v.x, v.y)
	case "yz":
		return plotgen.Pt(v.y, v.z)
	default:
		return plotgen.Pt(v.x, v.z)
	}
}

func attractorAlgorithm() Algorithm {
	return Algorithm{
		ID:          "attractor",
		Name:        "attractor",
		Description: "RK4-integrated chaotic attractor projected onto the canvas",
		Generate:    generateAttractor,
		Formula: func(p Params) string {
			c := decode[attractorConfig]("attractor", p, defaultAttractor())
			switch c.Kind {
			case attractorRossler:
				return fmt.Sprintf("ẋ = -y - z, ẏ = x + %gy, ż = %g + z(x - %g)", c.A, c.B, c.C)
			case attractorAizawa:
				return "ẋ = (z-0.7)x - 3.5y, ẏ = 3.5x + (z-0.7)y, ż = 0.6 + 0.95z - z³/3 - (x²+y²)(1+0.25z) + 0.1zx³"
			}
			return fmt.Sprintf("ẋ = %g(y - x), ẏ = x(%g - z) - y, ż = xy - %gz", c.Sigma, c.Rho, c.Beta)
		},
	}
}

func generateAttractor(p Params, rng *plotgen.Rng, _ *noise.Field, b plotgen.Bounds) Result {
	c := decode[attractorConfig]("attractor", p, defaultAttractor())
	v := vec3{0.1 + 0.01*rng.Signed(), 0.01 * rng.Signed(), 0.01 * rng.Signed()}

	raw := make([]plotgen.Point, 0, c.Steps)
	for i := range c.Warmup + c.Steps {
		v = c.step(v)
		if !v.finite() {
			plotgen.Logger().Debug("attractor: integration diverged", "step", i)
			break
		}
		if i >= c.Warmup {
			raw = append(raw, c.project(v))
		}
	}
	if len(raw) < 2 {
		return Result{}
	}

	// Fit the projection into the inset, keeping its aspect ratio.
	rot := plotgen.Rotate(c.Rotation * math.Pi / 180)
	raw = rot.TransformPoints(raw)
	box := plotgen.BoundingRect(raw)
	inner := b.Inner()
	extent := math.Max(box.Width()/inner.Width(), box.Height()/inner.Height())
	if !(extent > 0) || math.IsInf(extent, 0) {
		return Result{}
	}
	s := c.Scale / extent
	mid := plotgen.Pt((box.Min.X+box.Max.X)/2, (box.Min.Y+box.Max.Y)/2)
	fit := plotgen.Translate(b.Center().X, b.Center().Y).
		Multiply(plotgen.Scale(s, s)).
		Multiply(plotgen.Translate(-mid.X, -mid.Y))

	path := plotgen.NewPath(fit.TransformPoints(raw))
	path.Group = "attractor"
	path.Label = c.Kind
	return Result{Paths: []plotgen.Path{path}}
}
