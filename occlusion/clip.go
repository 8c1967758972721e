package occlusion

import (
	"slices"

	"github.com/gogpu/plotgen"
)

// ClipOutside returns the parts of p that lie outside every occluder. Each
// edge is cut at its crossings with the occluder edges; pieces whose
// midpoint is inside an occluder are dropped and the rest are stitched into
// maximal runs. With no occluders p is returned unchanged.
func ClipOutside(p plotgen.Path, occ []Occluder) []plotgen.Path {
	if len(occ) == 0 {
		return []plotgen.Path{p}
	}
	pts := p.Vertices()
	var out []plotgen.Path
	var cur []plotgen.Point
	flush := func() {
		if len(cur) >= 2 {
			out = append(out, p.WithPoints(cur))
		}
		cur = nil
	}

	ts := make([]float64, 0, 8)
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		if a == b {
			continue
		}
		ts = append(ts[:0], 0, 1)
		for j := range occ {
			ts = occ[j].crossings(a, b, ts)
		}
		ts = dedupParams(ts)

		for k := 1; k < len(ts); k++ {
			t0, t1 := ts[k-1], ts[k]
			if insideAny(a.Lerp(b, (t0+t1)/2), occ) {
				flush()
				continue
			}
			start, end := a.Lerp(b, t0), a.Lerp(b, t1)
			if len(cur) == 0 || !cur[len(cur)-1].Near(start, joinEpsilon) {
				flush()
				cur = []plotgen.Point{start}
			}
			cur = append(cur, end)
		}
	}
	flush()
	return out
}

// dedupParams sorts ts and removes values within paramEpsilon of their
// predecessor.
func dedupParams(ts []float64) []float64 {
	slices.Sort(ts)
	out := ts[:1]
	for _, t := range ts[1:] {
		if t-out[len(out)-1] > paramEpsilon {
			out = append(out, t)
		}
	}
	return out
}
