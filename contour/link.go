package contour

import (
	"math"
	"slices"

	"github.com/gogpu/plotgen"
)

// keyScale quantises endpoints for matching.
const keyScale = 1e6

type endpointKey struct{ x, y int64 }

func keyOf(p plotgen.Point) endpointKey {
	return endpointKey{int64(math.Round(p.X * keyScale)), int64(math.Round(p.Y * keyScale))}
}

// link joins segments sharing endpoints into polylines. Each segment is
// consumed exactly once; closed loops end on their first point.
func link(segs []segment) [][]plotgen.Point {
	index := make(map[endpointKey][]int, 2*len(segs))
	for i, s := range segs {
		index[keyOf(s.a)] = append(index[keyOf(s.a)], i)
		index[keyOf(s.b)] = append(index[keyOf(s.b)], i)
	}
	used := make([]bool, len(segs))

	// next consumes an unused segment touching p and returns its far end.
	next := func(p plotgen.Point) (plotgen.Point, bool) {
		k := keyOf(p)
		for _, i := range index[k] {
			if used[i] {
				continue
			}
			used[i] = true
			if keyOf(segs[i].a) == k {
				return segs[i].b, true
			}
			return segs[i].a, true
		}
		return plotgen.Point{}, false
	}

	var lines [][]plotgen.Point
	for i, s := range segs {
		if used[i] {
			continue
		}
		used[i] = true
		fwd := []plotgen.Point{s.a, s.b}
		for {
			p, ok := next(fwd[len(fwd)-1])
			if !ok {
				break
			}
			fwd = append(fwd, p)
		}
		var back []plotgen.Point
		for head := fwd[0]; ; {
			p, ok := next(head)
			if !ok {
				break
			}
			back = append(back, p)
			head = p
		}
		slices.Reverse(back)
		line := append(back, fwd...)
		if n := len(line); n > 2 && keyOf(line[0]) == keyOf(line[n-1]) {
			line[n-1] = line[0]
		}
		lines = append(lines, line)
	}
	return lines
}
