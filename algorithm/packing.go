package algorithm

import (
	"fmt"
	"math"

	"github.com/gogpu/plotgen"
	"github.com/gogpu/plotgen/noise"
)

// packingConfig controls randomized circle packing.
type packingConfig struct {
	Count     int     `mapstructure:"count"`     // initial circles, [1, 2000], default 150
	MinRadius float64 `mapstructure:"minRadius"` // [0.5, 500], default 3
	MaxRadius float64 `mapstructure:"maxRadius"` // [minRadius, 1000], default 30
	Padding   float64 `mapstructure:"padding"`   // [0, 50], default 1
	Relax     int     `mapstructure:"relax"`     // relaxation passes, [0, 500], default 40
	MaxTries  int     `mapstructure:"maxTries"`  // gap-filling attempts, [0, 200000], default 2000
	Sides     int     `mapstructure:"sides"`     // 0 draws circles, otherwise [3, 12]-gons
}

func defaultPacking() packingConfig {
	return packingConfig{Count: 150, MinRadius: 3, MaxRadius: 30, Padding: 1, Relax: 40, MaxTries: 2000}
}

func (c *packingConfig) clamp() {
	c.Count = clampI(c.Count, 1, 2000)
	c.MinRadius = clampF(c.MinRadius, 0.5, 500)
	c.MaxRadius = clampF(c.MaxRadius, c.MinRadius, 1000)
	c.Padding = clampF(c.Padding, 0, 50)
	c.Relax = clampI(c.Relax, 0, 500)
	c.MaxTries = clampI(c.MaxTries, 0, 200000)
	if c.Sides != 0 {
		c.Sides = clampI(c.Sides, 3, 12)
	}
}

type disc struct {
	c plotgen.Point
	r float64
}

func circlePackingAlgorithm() Algorithm {
	return Algorithm{
		ID:          "circle-packing",
		Name:        "circle packing",
		Description: "non-overlapping circles by relaxation and gap filling",
		Generate:    generatePacking,
		Formula: func(p Params) string {
			c := decode[packingConfig]("circle-packing", p, defaultPacking())
			return fmt.Sprintf("|cᵢ - cⱼ| ≥ rᵢ + rⱼ + %g, r ∈ [%g, %g]", c.Padding, c.MinRadius, c.MaxRadius)
		},
	}
}

func generatePacking(p Params, rng *plotgen.Rng, _ *noise.Field, b plotgen.Bounds) Result {
	c := decode[packingConfig]("circle-packing", p, defaultPacking())
	inner := b.Inner()
	maxR := math.Min(c.MaxRadius, math.Min(inner.Width(), inner.Height())/2)
	if maxR < c.MinRadius {
		return Result{}
	}
	randomCenter := func(r float64) plotgen.Point {
		return plotgen.Pt(rng.Range(inner.Min.X+r, inner.Max.X-r), rng.Range(inner.Min.Y+r, inner.Max.Y-r))
	}

	discs := make([]disc, c.Count)
	for i := range discs {
		r := rng.Range(c.MinRadius, maxR)
		discs[i] = disc{c: randomCenter(r), r: r}
	}
	relax(discs, c.Padding, c.Relax, inner)

	// Keep circles in order while they stay clear of those already kept.
	kept := make([]disc, 0, len(discs))
	for _, d := range discs {
		if fits(d, kept, c.Padding) {
			kept = append(kept, d)
		}
	}
	for range c.MaxTries {
		pos := randomCenter(c.MinRadius)
		r := math.Min(maxR, clearance(pos, kept, c.Padding, inner))
		if r >= c.MinRadius {
			kept = append(kept, disc{c: pos, r: r})
		}
	}

	var res Result
	for _, d := range kept {
		var path plotgen.Path
		if c.Sides == 0 {
			path = plotgen.NewCircle(d.c, d.r)
		} else {
			path = plotgen.NewPolygon(d.c, d.r, c.Sides, 0)
		}
		path.Group = "packing"
		res.Paths = append(res.Paths, path)
	}
	return res
}

// relax pushes overlapping discs apart for the given number of passes,
// keeping every disc inside r. It stops early once nothing overlaps.
func relax(discs []disc, pad float64, passes int, r plotgen.Rect) {
	for range passes {
		moved := false
		for i := range discs {
			for j := i + 1; j < len(discs); j++ {
				a, b := &discs[i], &discs[j]
				d := b.c.Sub(a.c)
				dist := d.Length()
				overlap := a.r + b.r + pad - dist
				if overlap <= 0 {
					continue
				}
				dir := plotgen.Pt(1, 0)
				if dist > 1e-9 {
					dir = d.Mul(1 / dist)
				}
				push := dir.Mul(overlap / 2)
				a.c = a.c.Sub(push)
				b.c = b.c.Add(push)
				moved = true
			}
		}
		for i := range discs {
			discs[i].c = keepInside(discs[i], r)
		}
		if !moved {
			return
		}
	}
}

func keepInside(d disc, r plotgen.Rect) plotgen.Point {
	return plotgen.Pt(
		clampF(d.c.X, r.Min.X+d.r, math.Max(r.Max.X-d.r, r.Min.X+d.r)),
		clampF(d.c.Y, r.Min.Y+d.r, math.Max(r.Max.Y-d.r, r.Min.Y+d.r)),
	)
}

func fits(d disc, kept []disc, pad float64) bool {
	for _, k := range kept {
		if d.c.Distance(k.c) < d.r+k.r+pad-1e-9 {
			return false
		}
	}
	return true
}

// clearance returns the largest radius a disc at p can take without
// touching kept discs or leaving r.
func clearance(p plotgen.Point, kept []disc, pad float64, r plotgen.Rect) float64 {
	best := math.Min(math.Min(p.X-r.Min.X, r.Max.X-p.X), math.Min(p.Y-r.Min.Y, r.Max.Y-p.Y))
	for _, k := range kept {
		best = math.Min(best, p.Distance(k.c)-k.r-pad)
	}
	return best
}
