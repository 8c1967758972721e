package plotgen

import "math"

// maxDashRuns caps how many draw runs a single chop may emit.
const maxDashRuns = 1 << 16

// Dash defines a dash pattern for chopping paths.
// A dash pattern consists of alternating draw and skip lengths.
// For example, [5, 3] draws 5 units, skips 3 units.
type Dash struct {
	// Array contains alternating draw/skip lengths.
	// If the array has an odd number of elements, it is logically duplicated
	// to create an even-length pattern (e.g., [5] becomes [5, 5]).
	Array []float64

	// Offset is the starting offset into the pattern.
	Offset float64
}

// NewDash creates a dash pattern from alternating draw/skip lengths.
// Returns nil if no lengths are provided or all lengths are zero.
func NewDash(lengths ...float64) *Dash {
	normalized := make([]float64, len(lengths))
	positive := false
	for i, l := range lengths {
		normalized[i] = math.Abs(l)
		if normalized[i] > 0 {
			positive = true
		}
	}
	if !positive {
		return nil
	}
	return &Dash{Array: normalized}
}

// WithOffset returns a new Dash with the given offset.
func (d *Dash) WithOffset(offset float64) *Dash {
	if d == nil {
		return nil
	}
	return &Dash{Array: d.Array, Offset: offset}
}

// PatternLength returns the total length of one complete pattern cycle.
// For odd-length arrays, this includes the duplicated pattern.
func (d *Dash) PatternLength() float64 {
	var total float64
	for _, l := range d.effectiveArray() {
		total += l
	}
	return total
}

// NormalizedOffset returns the offset normalized into one pattern cycle.
func (d *Dash) NormalizedOffset() float64 {
	patternLen := d.PatternLength()
	if patternLen <= 0 {
		return 0
	}
	offset := math.Mod(d.Offset, patternLen)
	if offset < 0 {
		offset += patternLen
	}
	return offset
}

// effectiveArray returns the array with odd-length arrays duplicated.
func (d *Dash) effectiveArray() []float64 {
	if d == nil || len(d.Array) == 0 {
		return nil
	}
	if len(d.Array)%2 == 0 {
		return d.Array
	}
	result := make([]float64, len(d.Array)*2)
	copy(result, d.Array)
	copy(result[len(d.Array):], d.Array)
	return result
}

// Chop splits pts into the runs covered by the pattern's draw entries.
// A nil dash returns pts whole. Runs with fewer than two points are dropped.
func (d *Dash) Chop(pts []Point) [][]Point {
	table := BuildSegmentTable(pts)
	if table.Empty() {
		return nil
	}
	arr := d.effectiveArray()
	if d.PatternLength() <= 0 {
		return [][]Point{table.Slice(0, table.Total)}
	}

	// Locate the pattern entry containing the offset.
	idx := 0
	remaining := arr[0]
	for off := d.NormalizedOffset(); off > 0; {
		if off < remaining {
			remaining -= off
			break
		}
		off -= remaining
		idx = (idx + 1) % len(arr)
		remaining = arr[idx]
	}

	var runs [][]Point
	pos := 0.0
	for steps := 0; pos < table.Total && len(runs) < maxDashRuns; steps++ {
		end := pos + remaining
		if idx%2 == 0 {
			if run := table.Slice(pos, end); run != nil {
				runs = append(runs, run)
			}
		}
		pos = end
		idx = (idx + 1) % len(arr)
		remaining = arr[idx]
		if steps > 4*maxDashRuns {
			Logger().Debug("dash chop reached step cap", "length", table.Total)
			break
		}
	}
	return runs
}

// ChopByDashPattern alternates draw runs of dashLength and skip runs of
// gapLength along the path. A non-positive dash yields nothing; a
// non-positive gap yields the whole path. Primitives are expanded first.
func ChopByDashPattern(p Path, dashLength, gapLength float64) []Path {
	if dashLength <= 0 {
		return nil
	}
	var d *Dash
	if gapLength > 0 {
		d = &Dash{Array: []float64{dashLength, gapLength}}
	}
	runs := d.Chop(p.Vertices())
	out := make([]Path, 0, len(runs))
	for _, r := range runs {
		out = append(out, p.WithPoints(r))
	}
	return out
}
