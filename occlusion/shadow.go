package occlusion

import "github.com/gogpu/plotgen"

// IsShadowed reports whether p is in shadow. A point is lit only when it
// faces the light (the vectors p→light and center→p point the same way) and
// no occluder blocks the straight ray from light to p.
func IsShadowed(p, light, center plotgen.Point, occ []Occluder) bool {
	if light.Sub(p).Dot(p.Sub(center)) <= 0 {
		return true
	}
	for i := range occ {
		o := &occ[i]
		if !o.valid() || !o.Bounds.Overlaps(plotgen.NewRect(light, p)) {
			continue
		}
		if o.Contains(light) || o.blocks(light, p) {
			return true
		}
	}
	return false
}

// Run is a maximal stretch of a path with one shadow state.
type Run struct {
	Path     plotgen.Path
	Shadowed bool
}

// SplitByShadow classifies every segment of p by the shadow state of its
// midpoint and returns the maximal runs in path order. Neighbouring runs
// share their boundary vertex.
func SplitByShadow(p plotgen.Path, light, center plotgen.Point, occ []Occluder) []Run {
	pts := p.Vertices()
	if len(pts) < 2 {
		return nil
	}
	var runs []Run
	var cur []plotgen.Point
	var state bool
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		s := IsShadowed(a.Lerp(b, 0.5), light, center, occ)
		if cur != nil && s != state {
			runs = append(runs, Run{Path: p.WithPoints(cur), Shadowed: state})
			cur = nil
		}
		if cur == nil {
			cur = []plotgen.Point{a}
			state = s
		}
		cur = append(cur, b)
	}
	return append(runs, Run{Path: p.WithPoints(cur), Shadowed: state})
}

// Lit returns the paths of the unshadowed runs.
func Lit(runs []Run) []plotgen.Path {
	var out []plotgen.Path
	for _, r := range runs {
		if !r.Shadowed {
			out = append(out, r.Path)
		}
	}
	return out
}

// Shadowed returns the paths of the shadowed runs.
func Shadowed(runs []Run) []plotgen.Path {
	var out []plotgen.Path
	for _, r := range runs {
		if r.Shadowed {
			out = append(out, r.Path)
		}
	}
	return out
}
