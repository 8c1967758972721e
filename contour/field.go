package contour

import (
	"math"

	"github.com/gogpu/plotgen"
)

// Grid size limits.
const (
	minCells = 1
	maxCells = 2048
)

// ScalarField is a (Rows+1)x(Cols+1) grid of samples stored row-major.
// Row 0 is at Origin.Y and rows grow downward.
type ScalarField struct {
	Rows, Cols   int
	Values       []float64
	Min, Max     float64
	Origin       plotgen.Point
	CellW, CellH float64
}

// SampleField samples fn over r on a rows x cols cell grid. Counts are
// clamped to [1, 2048]; non-finite samples are stored as 0.
func SampleField(r plotgen.Rect, rows, cols int, fn func(x, y float64) float64) *ScalarField {
	rows = min(max(rows, minCells), maxCells)
	cols = min(max(cols, minCells), maxCells)
	f := &ScalarField{
		Rows:   rows,
		Cols:   cols,
		Values: make([]float64, (rows+1)*(cols+1)),
		Origin: r.Min,
		CellW:  r.Width() / float64(cols),
		CellH:  r.Height() / float64(rows),
	}
	for i := 0; i <= rows; i++ {
		for j := 0; j <= cols; j++ {
			v := fn(f.Origin.X+float64(j)*f.CellW, f.Origin.Y+float64(i)*f.CellH)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				v = 0
			}
			f.Values[i*(cols+1)+j] = v
		}
	}
	f.updateRange()
	return f
}

// NewScalarField wraps precomputed values. len(values) must be
// (rows+1)*(cols+1); otherwise nil is returned.
func NewScalarField(rows, cols int, values []float64, origin plotgen.Point, cellW, cellH float64) *ScalarField {
	if rows < 1 || cols < 1 || len(values) != (rows+1)*(cols+1) {
		return nil
	}
	f := &ScalarField{Rows: rows, Cols: cols, Values: values, Origin: origin, CellW: cellW, CellH: cellH}
	f.updateRange()
	return f
}

func (f *ScalarField) updateRange() {
	f.Min, f.Max = math.Inf(1), math.Inf(-1)
	for _, v := range f.Values {
		f.Min = math.Min(f.Min, v)
		f.Max = math.Max(f.Max, v)
	}
}

// At returns the sample at row i, column j.
func (f *ScalarField) At(i, j int) float64 {
	return f.Values[i*(f.Cols+1)+j]
}

// pos returns the canvas position of grid node (i, j).
func (f *ScalarField) pos(i, j int) plotgen.Point {
	return plotgen.Pt(f.Origin.X+float64(j)*f.CellW, f.Origin.Y+float64(i)*f.CellH)
}

// Value bilinearly interpolates the field at p, clamped to the grid.
func (f *ScalarField) Value(p plotgen.Point) float64 {
	gx, gy := 0.0, 0.0
	if f.CellW != 0 {
		gx = (p.X - f.Origin.X) / f.CellW
	}
	if f.CellH != 0 {
		gy = (p.Y - f.Origin.Y) / f.CellH
	}
	gx = math.Min(math.Max(gx, 0), float64(f.Cols))
	gy = math.Min(math.Max(gy, 0), float64(f.Rows))
	j := min(int(gx), f.Cols-1)
	i := min(int(gy), f.Rows-1)
	tx, ty := gx-float64(j), gy-float64(i)

	top := f.At(i, j)*(1-tx) + f.At(i, j+1)*tx
	bottom := f.At(i+1, j)*(1-tx) + f.At(i+1, j+1)*tx
	return top*(1-ty) + bottom*ty
}

// Thresholds returns levels evenly spaced iso-values strictly inside
// [lo, hi]: step = (hi-lo)/(levels+1), shifted by offset steps (offset
// clamped to [-0.5, 0.5]). A flat range yields nil.
func Thresholds(lo, hi float64, levels int, offset float64) []float64 {
	if levels < 1 || !(hi-lo > 1e-12) {
		return nil
	}
	offset = math.Min(math.Max(offset, -0.5), 0.5)
	step := (hi - lo) / float64(levels+1)
	out := make([]float64, levels)
	for k := range out {
		out[k] = lo + step*(float64(k+1)+offset)
	}
	return out
}
