package contour

import "github.com/gogpu/plotgen"

// Corner bits of a cell code and edge indices of a cell.
const (
	bitTL = 8
	bitTR = 4
	bitBR = 2
	bitBL = 1

	edgeTop    = 0
	edgeRight  = 1
	edgeBottom = 2
	edgeLeft   = 3
)

// edgePair is one segment crossing a cell between two of its edges.
type edgePair [2]int

// cases maps a cell code to its crossing segments. Saddles 5 and 10 hold
// the separated resolution; the joined one is in saddleJoined.
var cases = [16][]edgePair{
	0:  nil,
	1:  {{edgeLeft, edgeBottom}},
	2:  {{edgeBottom, edgeRight}},
	3:  {{edgeLeft, edgeRight}},
	4:  {{edgeTop, edgeRight}},
	5:  {{edgeTop, edgeRight}, {edgeLeft, edgeBottom}},
	6:  {{edgeTop, edgeBottom}},
	7:  {{edgeLeft, edgeTop}},
	8:  {{edgeLeft, edgeTop}},
	9:  {{edgeTop, edgeBottom}},
	10: {{edgeLeft, edgeTop}, {edgeBottom, edgeRight}},
	11: {{edgeTop, edgeRight}},
	12: {{edgeLeft, edgeRight}},
	13: {{edgeBottom, edgeRight}},
	14: {{edgeLeft, edgeBottom}},
	15: nil,
}

// saddleJoined is used when the cell centre is inside: the two inside
// corners connect and the segments cut off the outside corners.
var saddleJoined = map[int][]edgePair{
	5:  {{edgeLeft, edgeTop}, {edgeBottom, edgeRight}},
	10: {{edgeTop, edgeRight}, {edgeLeft, edgeBottom}},
}

type segment struct {
	a, b plotgen.Point
}

// cellCode returns the 4-bit inside code for cell (i, j). A corner is
// inside when its value is strictly above the threshold.
func cellCode(tl, tr, br, bl, thr float64) int {
	code := 0
	if tl > thr {
		code |= bitTL
	}
	if tr > thr {
		code |= bitTR
	}
	if br > thr {
		code |= bitBR
	}
	if bl > thr {
		code |= bitBL
	}
	return code
}

// cellPairs returns the crossing segments for a code, resolving saddles by
// the cell average.
func cellPairs(code int, tl, tr, br, bl, thr float64) []edgePair {
	if code == 5 || code == 10 {
		if (tl+tr+br+bl)/4 > thr {
			return saddleJoined[code]
		}
	}
	return cases[code]
}

// march collects the segments of one threshold.
func march(f *ScalarField, thr float64) []segment {
	var segs []segment
	for i := range f.Rows {
		for j := range f.Cols {
			tl, tr := f.At(i, j), f.At(i, j+1)
			br, bl := f.At(i+1, j+1), f.At(i+1, j)
			code := cellCode(tl, tr, br, bl, thr)
			for _, pair := range cellPairs(code, tl, tr, br, bl, thr) {
				a := f.edgePoint(i, j, pair[0], thr)
				b := f.edgePoint(i, j, pair[1], thr)
				if a != b {
					segs = append(segs, segment{a, b})
				}
			}
		}
	}
	return segs
}

// edgePoint interpolates the threshold crossing on one edge of cell (i, j).
// Edges are always walked left-to-right or top-to-bottom so cells sharing
// an edge compute the same point.
func (f *ScalarField) edgePoint(i, j, edge int, thr float64) plotgen.Point {
	var i0, j0, i1, j1 int
	switch edge {
	case edgeTop:
		i0, j0, i1, j1 = i, j, i, j+1
	case edgeRight:
		i0, j0, i1, j1 = i, j+1, i+1, j+1
	case edgeBottom:
		i0, j0, i1, j1 = i+1, j, i+1, j+1
	default:
		i0, j0, i1, j1 = i, j, i+1, j
	}
	v0, v1 := f.At(i0, j0), f.At(i1, j1)
	t := 0.5
	if d := v1 - v0; d != 0 {
		t = min(max((thr-v0)/d, 0), 1)
	}
	return f.pos(i0, j0).Lerp(f.pos(i1, j1), t)
}
