package contour

import (
	"math"
	"testing"

	"github.com/gogpu/plotgen"
	"github.com/gogpu/plotgen/noise"
)

var canvas = plotgen.NewRect(plotgen.Pt(0, 0), plotgen.Pt(100, 100))

func radial(x, y float64) float64 {
	return math.Hypot(x-50, y-50)
}

func TestThresholds(t *testing.T) {
	tests := []struct {
		name           string
		lo, hi, offset float64
		levels         int
		want           []float64
	}{
		{"even", 0, 10, 0, 4, []float64{2, 4, 6, 8}},
		{"offset", 0, 10, 0.5, 4, []float64{3, 5, 7, 9}},
		{"offset clamped", 0, 10, 3, 4, []float64{3, 5, 7, 9}},
		{"single", -1, 1, 0, 1, []float64{0}},
		{"flat", 2, 2, 0, 5, nil},
		{"no levels", 0, 1, 0, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Thresholds(tt.lo, tt.hi, tt.levels, tt.offset)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-12 {
					t.Errorf("threshold %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCaseTable(t *testing.T) {
	for code := range 16 {
		pairs := cases[code]
		want := 1
		switch code {
		case 0, 15:
			want = 0
		case 5, 10:
			want = 2
		}
		if len(pairs) != want {
			t.Errorf("code %d has %d segments, want %d", code, len(pairs), want)
		}
	}
}

func TestSaddleTieBreak(t *testing.T) {
	// Code 10: top-left and bottom-right inside.
	sep := cellPairs(10, 1, 0, 1, 0, 0.5)
	if sep[0] != (edgePair{edgeLeft, edgeTop}) {
		t.Errorf("average at threshold must keep corners separated, got %v", sep)
	}
	joined := cellPairs(10, 1, 0, 1, 0.4, 0.5)
	if joined[0] != (edgePair{edgeTop, edgeRight}) {
		t.Errorf("average above threshold must join inside corners, got %v", joined)
	}
}

func TestSampleFieldAndValue(t *testing.T) {
	f := SampleField(canvas, 10, 20, func(x, y float64) float64 { return x + 2*y })
	if f.Rows != 10 || f.Cols != 20 || len(f.Values) != 11*21 {
		t.Fatalf("unexpected grid %dx%d with %d values", f.Rows, f.Cols, len(f.Values))
	}
	if f.Min != 0 || f.Max != 300 {
		t.Errorf("range = [%v, %v], want [0, 300]", f.Min, f.Max)
	}
	// Linear fields are reproduced exactly by bilinear interpolation.
	for _, p := range []plotgen.Point{{X: 12.3, Y: 45.6}, {X: 99, Y: 1}, {X: 0, Y: 0}} {
		if got, want := f.Value(p), p.X+2*p.Y; math.Abs(got-want) > 1e-9 {
			t.Errorf("Value(%v) = %v, want %v", p, got, want)
		}
	}
	if got := f.Value(plotgen.Pt(-50, 500)); got != f.At(10, 0) {
		t.Errorf("out-of-grid Value = %v, want clamped corner %v", got, f.At(10, 0))
	}
	if NewScalarField(2, 2, make([]float64, 4), plotgen.Point{}, 1, 1) != nil {
		t.Error("mismatched value count must be rejected")
	}
}

func TestExtractRadial(t *testing.T) {
	f := SampleField(canvas, 50, 50, radial)
	got := Extract(f, Options{Levels: 3})
	if len(got) == 0 || len(got) > 3 {
		t.Fatalf("groups = %d, want 1..3", len(got))
	}
	// The innermost level is a single closed loop well inside the canvas.
	inner := got[0]
	if inner.Index != 0 || len(inner.Paths) != 1 {
		t.Fatalf("inner contour: index %d, %d paths", inner.Index, len(inner.Paths))
	}
	loop := inner.Paths[0].Points
	if !plotgen.IsClosed(loop) {
		t.Error("inner contour is not closed")
	}
	for _, p := range loop {
		if d := radial(p.X, p.Y); math.Abs(d-inner.Level) > 1 {
			t.Errorf("point %v at distance %v, level %v", p, d, inner.Level)
		}
	}
	for _, c := range got {
		for i, p := range c.Paths {
			if len(p.Points) < 2 {
				t.Errorf("level %d path %d has %d points", c.Index, i, len(p.Points))
			}
		}
	}
}

func TestExtractRefine(t *testing.T) {
	f := SampleField(canvas, 20, 20, radial)
	got := Extract(f, Options{Levels: 1, Refine: true, Sampler: radial})
	if len(got) != 1 {
		t.Fatalf("groups = %d, want 1", len(got))
	}
	for _, p := range got[0].Paths[0].Points {
		if d := radial(p.X, p.Y); math.Abs(d-got[0].Level) > 0.05 {
			t.Errorf("refined point %v at distance %v, level %v", p, d, got[0].Level)
		}
	}
}

func TestExtractSmooth(t *testing.T) {
	f := SampleField(canvas, 20, 20, radial)
	plain := Extract(f, Options{Levels: 1})
	smooth := Extract(f, Options{Levels: 1, Smooth: 2})
	if n, m := len(plain[0].Paths[0].Points), len(smooth[0].Paths[0].Points); m <= n {
		t.Errorf("smoothed contour has %d points, plain %d", m, n)
	}
	if !plotgen.IsClosed(smooth[0].Paths[0].Points) {
		t.Error("smoothing opened a closed contour")
	}
}

func TestExtractFlatAndNil(t *testing.T) {
	flat := SampleField(canvas, 8, 8, func(float64, float64) float64 { return 0.3 })
	if got := Extract(flat, Options{Levels: 5}); len(got) != 0 {
		t.Errorf("flat field produced %d groups", len(got))
	}
	if Extract(nil, Options{Levels: 5}) != nil {
		t.Error("nil field must produce nothing")
	}
}

func TestLinkUsesEverySegmentOnce(t *testing.T) {
	field := noise.NewField(noise.NewSimplex(3))
	f := SampleField(canvas, 40, 40, func(x, y float64) float64 {
		return field.Noise2D(x/17, y/17)
	})
	for _, thr := range Thresholds(f.Min, f.Max, 6, 0) {
		segs := march(f, thr)
		var edges int
		for _, line := range link(segs) {
			if len(line) < 2 {
				t.Fatalf("linked line has %d points", len(line))
			}
			edges += len(line) - 1
		}
		if edges != len(segs) {
			t.Errorf("threshold %v: %d linked edges, %d segments", thr, edges, len(segs))
		}
	}

	// A checkerboard puts four segments on every interior node.
	checker := SampleField(canvas, 6, 6, func(x, y float64) float64 {
		return float64((int(x/100*6+0.5) + int(y/100*6+0.5)) % 2)
	})
	segs := march(checker, 0.5)
	var edges int
	for _, line := range link(segs) {
		edges += len(line) - 1
	}
	if edges != len(segs) {
		t.Errorf("checkerboard: %d linked edges, %d segments", edges, len(segs))
	}
}
