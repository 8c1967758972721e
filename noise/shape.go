package noise

import "math"

// Shape functions. Each takes a point already mapped into noise space and
// returns a value in [-1, 1].

func (f *Field) ridged(x, y float64) float64 {
	return (1-math.Abs(f.source.Noise2D(x, y)))*2 - 1
}

func (f *Field) billow(x, y float64) float64 {
	return math.Abs(f.source.Noise2D(x, y))*2 - 1
}

// fbm sums octaves of increasing frequency and decreasing amplitude,
// normalised by the amplitudes actually used.
func (f *Field) fbm(x, y float64, l Layer) float64 {
	var sum, norm float64
	freq, amp := 1.0, 1.0
	for range l.Octaves {
		sum += amp * f.source.Noise2D(x*freq, y*freq)
		norm += amp
		freq *= l.Lacunarity
		amp *= l.Gain
	}
	return sum / norm
}

// turbulence is fbm over |n|, remapped from [0, 1] to [-1, 1].
func (f *Field) turbulence(x, y float64, l Layer) float64 {
	var sum, norm float64
	freq, amp := 1.0, 1.0
	for range l.Octaves {
		sum += amp * math.Abs(f.source.Noise2D(x*freq, y*freq))
		norm += amp
		freq *= l.Lacunarity
		amp *= l.Gain
	}
	return sum/norm*2 - 1
}

// warp offsets the lookup by a second noise evaluation.
func (f *Field) warp(x, y float64, l Layer) float64 {
	qx := f.source.Noise2D(x+5.2, y+1.3)
	qy := f.source.Noise2D(x+1.7, y+9.2)
	return f.source.Noise2D(x+l.Warp*qx, y+l.Warp*qy)
}

// terrace quantises the base noise into Steps flat bands.
func (f *Field) terrace(x, y float64, l Layer) float64 {
	t := (f.source.Noise2D(x, y) + 1) / 2
	steps := float64(l.Steps)
	q := math.Floor(t*steps) / (steps - 1)
	return clampUnit(q*2 - 1)
}

// cellFeature returns the jittered feature point of lattice cell (ix, iy).
func cellFeature(ix, iy int64, seed int64, jitter float64) (float64, float64) {
	h := splitmix64(uint64(ix)*0x8da6b343 ^ uint64(iy)*0xd8163841 ^ uint64(seed)*0xcb1ab31f)
	jx := float64(h&0xffff) / 0xffff
	jy := float64((h>>16)&0xffff) / 0xffff
	return float64(ix) + 0.5 + (jx-0.5)*jitter, float64(iy) + 0.5 + (jy-0.5)*jitter
}

// nearestCell scans the 3x3 neighbourhood for the closest feature point.
func nearestCell(x, y float64, l Layer) (dist float64, cx, cy int64) {
	bx, by := int64(math.Floor(x)), int64(math.Floor(y))
	dist = math.Inf(1)
	for dy := int64(-1); dy <= 1; dy++ {
		for dx := int64(-1); dx <= 1; dx++ {
			fx, fy := cellFeature(bx+dx, by+dy, l.Seed, l.Jitter)
			if d := math.Hypot(fx-x, fy-y); d < dist {
				dist, cx, cy = d, bx+dx, by+dy
			}
		}
	}
	return dist, cx, cy
}

// cellular is the distance to the nearest feature point, -1 at the point
// and saturating at +1 one cell away.
func cellular(x, y float64, l Layer) float64 {
	d, _, _ := nearestCell(x, y, l)
	return clamp01(d)*2 - 1
}

// voronoi is a constant per-cell value keyed by the nearest feature point.
func voronoi(x, y float64, l Layer) float64 {
	_, cx, cy := nearestCell(x, y, l)
	h := splitmix64(uint64(cx)*0x9e3779b1 ^ uint64(cy)*0x85ebca77 ^ uint64(l.Seed))
	return float64(h&0xffffff)/0xffffff*2 - 1
}
