package contour

import (
	"math"

	"github.com/gogpu/plotgen"
)

// maxLevels caps the number of thresholds per extraction.
const maxLevels = 512

// Options controls extraction.
type Options struct {
	Levels int     // number of thresholds, clamped to [1, 512]
	Offset float64 // threshold shift in steps, clamped to [-0.5, 0.5]
	Smooth int     // Chaikin iterations, 0 disables
	Refine bool    // one Newton step toward the isoline per point

	// Sampler evaluates the exact field for refinement. When nil the grid
	// is interpolated bilinearly.
	Sampler func(x, y float64) float64
}

// Contour holds the polylines of one threshold.
type Contour struct {
	Level float64
	Index int
	Paths []plotgen.Path
}

// Extract returns one Contour per threshold that produced at least one
// polyline, in ascending threshold order. Every polyline has at least two
// points.
func Extract(f *ScalarField, opts Options) []Contour {
	if f == nil || f.Rows < 1 || f.Cols < 1 {
		return nil
	}
	levels := min(max(opts.Levels, 1), maxLevels)
	sample := opts.Sampler
	if sample == nil {
		sample = func(x, y float64) float64 { return f.Value(plotgen.Pt(x, y)) }
	}

	var out []Contour
	var segments int
	for k, thr := range Thresholds(f.Min, f.Max, levels, opts.Offset) {
		segs := march(f, thr)
		segments += len(segs)
		var paths []plotgen.Path
		for _, line := range link(segs) {
			if opts.Smooth > 0 {
				line = plotgen.Smooth(line, opts.Smooth)
			}
			if opts.Refine {
				line = refine(line, thr, sample, math.Min(math.Abs(f.CellW), math.Abs(f.CellH)))
			}
			if len(line) >= 2 {
				paths = append(paths, plotgen.NewPath(line))
			}
		}
		if len(paths) > 0 {
			out = append(out, Contour{Level: thr, Index: k, Paths: paths})
		}
	}
	plotgen.Logger().Debug("contour: extracted",
		"rows", f.Rows, "cols", f.Cols, "levels", levels,
		"groups", len(out), "segments", segments)
	return out
}

// refine moves each point one Newton step toward the isoline using a
// central-difference gradient. Steps are limited to one cell; flat
// gradients leave the point in place.
func refine(pts []plotgen.Point, thr float64, sample func(x, y float64) float64, cell float64) []plotgen.Point {
	if cell <= 0 {
		return pts
	}
	h := cell / 2
	closed := plotgen.IsClosed(pts)
	out := make([]plotgen.Point, len(pts))
	for i, p := range pts {
		out[i] = p
		g := plotgen.Pt(
			(sample(p.X+h, p.Y)-sample(p.X-h, p.Y))/(2*h),
			(sample(p.X, p.Y+h)-sample(p.X, p.Y-h))/(2*h),
		)
		g2 := g.Dot(g)
		if !(g2 > 1e-12) {
			continue
		}
		step := g.Mul((sample(p.X, p.Y) - thr) / g2)
		if l := step.Length(); l > cell {
			step = step.Mul(cell / l)
		}
		if q := p.Sub(step); q.IsFinite() {
			out[i] = q
		}
	}
	if closed {
		out[len(out)-1] = out[0]
	}
	return out
}
