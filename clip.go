package plotgen

// ClipToRect splits pts into the runs that lie inside r, cutting segments
// at the rectangle edges (Liang-Barsky). Runs shorter than two points are
// dropped.
func ClipToRect(pts []Point, r Rect) [][]Point {
	var runs [][]Point
	var cur []Point
	flush := func() {
		if len(cur) >= 2 {
			runs = append(runs, cur)
		}
		cur = nil
	}

	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		t0, t1, ok := clipSegment(a, b, r)
		if !ok {
			flush()
			continue
		}
		enter, exit := a.Lerp(b, t0), a.Lerp(b, t1)
		if len(cur) == 0 || !cur[len(cur)-1].Near(enter, 1e-9) {
			flush()
			cur = []Point{enter}
		}
		cur = append(cur, exit)
		if t1 < 1 {
			flush()
		}
	}
	flush()
	return runs
}

// clipSegment returns the parameter interval of segment ab inside r.
func clipSegment(a, b Point, r Rect) (t0, t1 float64, ok bool) {
	t0, t1 = 0, 1
	d := b.Sub(a)
	checks := [4][2]float64{
		{-d.X, a.X - r.Min.X},
		{d.X, r.Max.X - a.X},
		{-d.Y, a.Y - r.Min.Y},
		{d.Y, r.Max.Y - a.Y},
	}
	for _, c := range checks {
		p, q := c[0], c[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			t0 = max(t0, t)
		} else {
			t1 = min(t1, t)
		}
		if t0 > t1 {
			return 0, 0, false
		}
	}
	return t0, t1, true
}

// TruncatePaths clips every path to r, expanding primitives that cross the
// rectangle. Primitives entirely inside r are kept as-is.
func TruncatePaths(paths []Path, r Rect) []Path {
	out := make([]Path, 0, len(paths))
	for _, p := range paths {
		if p.IsPrimitive() {
			if b := p.Bounds(); r.Contains(b.Min) && r.Contains(b.Max) {
				out = append(out, p)
				continue
			}
		}
		for _, run := range ClipToRect(p.Vertices(), r) {
			out = append(out, p.WithPoints(run))
		}
	}
	return out
}
