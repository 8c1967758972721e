package algorithm

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/gogpu/plotgen"
	"github.com/gogpu/plotgen/noise"
)

// small keeps every algorithm cheap enough to run in tests.
var small = map[string]Params{
	"hyphae":         {"sources": 2, "steps": 60, "branchProb": 0.1, "wander": 10, "steer": 5},
	"flowfield":      {"lines": 20, "steps": 40},
	"lissajous":      {"resolution": 200},
	"attractor":      {"steps": 2000},
	"harmonograph":   {"duration": 40, "randomPhase": true, "guides": true},
	"phyllotaxis":    {"count": 100},
	"circle-packing": {"count": 30, "maxTries": 200, "relax": 10},
	"petals":         {"petals": 5, "layers": 2, "shading": 4},
	"rings":          {"rings": 5, "resolution": 64},
	"topo":           {"levels": 4, "cell": 10, "refine": true},
}

func newTestField() *noise.Field {
	return noise.NewField(noise.NewSimplex(11), noise.WithLayers(
		noise.Layer{Type: noise.TypeFBM, Zoom: 120},
		noise.Layer{Type: noise.TypeRidged, Blend: noise.BlendMultiply, Zoom: 300, Amplitude: 0.5},
	))
}

func assertFinite(t *testing.T, id string, paths []plotgen.Path) {
	t.Helper()
	for i, p := range paths {
		for j, pt := range p.Points {
			if !pt.IsFinite() {
				t.Fatalf("%s: path %d point %d is %v", id, i, j, pt)
			}
		}
	}
}

func TestRegistryIDs(t *testing.T) {
	reg := NewRegistry()
	ids := reg.IDs()
	if !slices.IsSorted(ids) {
		t.Errorf("IDs not sorted: %v", ids)
	}
	if len(ids) != len(small) {
		t.Errorf("got %d algorithms, want %d", len(ids), len(small))
	}
	for _, id := range ids {
		a, ok := reg.Lookup(id)
		if !ok || a.ID != id || a.Generate == nil || a.Formula == nil {
			t.Errorf("incomplete entry for %q", id)
		}
		if f, err := reg.Formula(id, nil); err != nil || f == "" {
			t.Errorf("Formula(%q) = %q, %v", id, f, err)
		}
	}
}

func TestRegistryUnknown(t *testing.T) {
	reg := NewRegistry()
	if _, err := reg.Generate("nope", nil, nil, nil, plotgen.NewBounds(100, 100, 0)); !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("Generate error = %v, want ErrUnknownAlgorithm", err)
	}
	if _, err := reg.Formula("nope", nil); !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("Formula error = %v, want ErrUnknownAlgorithm", err)
	}
}

func TestRegistryOptions(t *testing.T) {
	custom := Algorithm{
		ID: "dot",
		Generate: func(Params, *plotgen.Rng, *noise.Field, plotgen.Bounds) Result {
			return Result{Paths: []plotgen.Path{plotgen.NewPath([]plotgen.Point{{X: 1, Y: 1}, {X: 2, Y: 2}})}}
		},
	}
	reg := NewRegistry(WithoutBuiltins(), WithAlgorithm(custom))
	if ids := reg.IDs(); len(ids) != 1 || ids[0] != "dot" {
		t.Fatalf("IDs = %v, want [dot]", ids)
	}
	if f, err := reg.Formula("dot", nil); err != nil || f != "" {
		t.Errorf("Formula = %q, %v", f, err)
	}
}

func TestDeterminism(t *testing.T) {
	reg := NewRegistry()
	field := newTestField()
	b := plotgen.NewBounds(300, 240, 12)
	for _, id := range reg.IDs() {
		t.Run(id, func(t *testing.T) {
			first, err := reg.Generate(id, small[id], plotgen.NewRng(42), field, b)
			if err != nil {
				t.Fatal(err)
			}
			second, _ := reg.Generate(id, small[id], plotgen.NewRng(42), field, b)
			if len(first.Paths) == 0 {
				t.Fatal("no paths")
			}
			if len(first.Paths) != len(second.Paths) || len(first.Helpers) != len(second.Helpers) {
				t.Fatalf("path counts differ: %d/%d", len(first.Paths), len(second.Paths))
			}
			for i := range first.Paths {
				a, b := first.Paths[i].Vertices(), second.Paths[i].Vertices()
				if !slices.Equal(a, b) {
					t.Fatalf("path %d differs", i)
				}
			}
			assertFinite(t, id, first.Paths)
		})
	}
}

func TestTruncate(t *testing.T) {
	reg := NewRegistry()
	b := plotgen.NewBounds(200, 200, 20)
	b.Truncate = true
	res, err := reg.Generate("rings", Params{"rings": 6, "inner": 0.5, "amplitude": 0,
		"modifiers": []any{map[string]any{"type": "falloff", "amount": -1}}}, nil, nil, b)
	if err != nil {
		t.Fatal(err)
	}
	inner := b.Inner()
	for i, p := range res.Paths {
		for _, pt := range p.Vertices() {
			if !inner.Contains(pt) && !pt.Near(clampToRect(pt, inner), 1e-9) {
				t.Fatalf("path %d point %v outside %v", i, pt, inner)
			}
		}
	}
}

func clampToRect(p plotgen.Point, r plotgen.Rect) plotgen.Point {
	return plotgen.Pt(math.Min(math.Max(p.X, r.Min.X), r.Max.X), math.Min(math.Max(p.Y, r.Min.Y), r.Max.Y))
}

func TestDecode(t *testing.T) {
	t.Run("weak typing and case", func(t *testing.T) {
		c := decode[lissajousConfig]("lissajous", Params{"FREQX": "5", "damping": 2, "closeLines": "true"}, defaultLissajous())
		if c.FreqX != 5 || c.Damping != 1 || !c.CloseLines {
			t.Errorf("decoded %+v", c)
		}
		if c.FreqY != 2 || c.Resolution != 1000 {
			t.Errorf("defaults lost: %+v", c)
		}
	})
	t.Run("bad value keeps defaults", func(t *testing.T) {
		c := decode[hyphaeConfig]("hyphae", Params{"steps": []int{1, 2}}, defaultHyphae())
		if c != defaultHyphae() {
			t.Errorf("decoded %+v, want defaults", c)
		}
	})
	t.Run("clamped", func(t *testing.T) {
		c := decode[attractorConfig]("attractor", Params{"kind": "bogus", "dt": 5, "steps": -3}, defaultAttractor())
		if c.Kind != attractorLorenz || c.Dt != 0.05 || c.Steps != 100 {
			t.Errorf("decoded %+v", c)
		}
	})
}

func TestLissajousScenario(t *testing.T) {
	b := plotgen.NewBounds(400, 400, 0)
	params := Params{"freqX": 3, "freqY": 2, "phase": 0, "damping": 0, "closeLines": false, "resolution": 100}
	res, err := NewRegistry().Generate("lissajous", params, plotgen.NewRng(1), nil, b)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Paths) != 1 {
		t.Fatalf("paths = %d, want 1", len(res.Paths))
	}
	pts := res.Paths[0].Points
	if len(pts) < 95 || len(pts) > 105 {
		t.Errorf("points = %d, want about 100", len(pts))
	}
	if plotgen.IsClosed(pts) {
		t.Error("path is closed")
	}
	scale := defaultLissajous().Scale * b.Radius()
	cx := b.Center().X
	for _, p := range pts {
		if p.X < cx-scale-1e-9 || p.X > cx+scale+1e-9 {
			t.Fatalf("x = %v outside [%v, %v]", p.X, cx-scale, cx+scale)
		}
	}
	for i, p := range pts {
		t0 := 2 * math.Pi * float64(i) / float64(len(pts))
		want := plotgen.Pt(cx+scale*math.Sin(3*t0), b.Center().Y+scale*math.Sin(2*t0))
		if !p.Near(want, 1e-9) {
			t.Fatalf("point %d = %v, want %v", i, p, want)
		}
	}
}

func TestLissajousCloseLines(t *testing.T) {
	b := plotgen.NewBounds(400, 400, 0)
	for _, n := range []int{400, 401, 1000} {
		res, _ := NewRegistry().Generate("lissajous", Params{"resolution": n, "closeLines": true}, nil, nil, b)
		pts := res.Paths[0].Points
		if !plotgen.IsClosed(pts) {
			t.Errorf("resolution %d: undamped figure with closeLines must close", n)
		}
		// The 3:2 figure passes its start at t=π heading elsewhere; that
		// pass must not cut the figure in half.
		if len(pts) < n {
			t.Errorf("resolution %d: closed figure kept %d points, want about %d", n, len(pts), n+1)
		}
	}
}

func TestCloseAtCrossing(t *testing.T) {
	// The 3:2 figure meets its start at u=π heading the other way and only
	// returns along the opening segment at u=2π.
	var pts []plotgen.Point
	for i := range 200 {
		u := 2 * math.Pi * float64(i) / 200
		pts = append(pts, plotgen.Pt(math.Sin(3*u), math.Sin(2*u)))
	}
	got := closeAtCrossing(pts, 1e-9)
	if !plotgen.IsClosed(got) || len(got) != 201 {
		t.Errorf("closed to %d points, want 201", len(got))
	}
}

func TestHyphaeScenario(t *testing.T) {
	b := plotgen.NewBounds(200, 200, 0)
	params := Params{"sources": 1, "steps": 50, "branchProb": 0, "segLen": 5}
	res, err := NewRegistry().Generate("hyphae", params, plotgen.NewRng(9), nil, b)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Paths) != 1 {
		t.Fatalf("paths = %d, want 1", len(res.Paths))
	}
	pts := res.Paths[0].Points
	if pts[0] != b.Center() {
		t.Errorf("path starts at %v, want center", pts[0])
	}
	if len(pts) > 51 {
		t.Errorf("path has %d points, more than steps+1", len(pts))
	}
	dir := pts[1].Sub(pts[0]).Normalize()
	for i := 1; i < len(pts); i++ {
		if d := pts[i].Sub(pts[0]).Cross(dir); math.Abs(d) > 1e-9 {
			t.Fatalf("point %d off the line by %v", i, d)
		}
		if !b.Contains(pts[i]) {
			t.Fatalf("point %d outside the inset", i)
		}
	}
	// It stopped because the next step would leave the inset.
	if next := plotgen.Polar(pts[len(pts)-1], 5, dir.Angle()); b.Contains(next) {
		t.Errorf("growth stopped early at %v", pts[len(pts)-1])
	}
}

func TestHyphaeBranchCap(t *testing.T) {
	params := Params{"sources": 2, "steps": 200, "branchProb": 1, "maxAgents": 10, "wander": 30}
	res, _ := NewRegistry().Generate("hyphae", params, plotgen.NewRng(3), nil, plotgen.NewBounds(500, 500, 0))
	if len(res.Paths) > 10 {
		t.Errorf("paths = %d, want at most 10", len(res.Paths))
	}
}

func TestCirclePackingNoOverlap(t *testing.T) {
	res, _ := NewRegistry().Generate("circle-packing", Params{"count": 60, "maxTries": 500, "padding": 2}, plotgen.NewRng(5), nil, plotgen.NewBounds(300, 300, 10))
	inner := plotgen.NewBounds(300, 300, 10).Inner()
	var discs []plotgen.Circle
	for _, p := range res.Paths {
		c, ok := p.Shape.(plotgen.Circle)
		if !ok {
			t.Fatalf("unexpected shape %T", p.Shape)
		}
		discs = append(discs, c)
	}
	if len(discs) == 0 {
		t.Fatal("no circles")
	}
	for i, a := range discs {
		if a.Center.X-a.Radius < inner.Min.X-1e-9 || a.Center.X+a.Radius > inner.Max.X+1e-9 ||
			a.Center.Y-a.Radius < inner.Min.Y-1e-9 || a.Center.Y+a.Radius > inner.Max.Y+1e-9 {
			t.Errorf("circle %d leaves the inset", i)
		}
		for j := i + 1; j < len(discs); j++ {
			b := discs[j]
			if d := a.Center.Distance(b.Center); d < a.Radius+b.Radius+2-1e-6 {
				t.Errorf("circles %d and %d overlap: d=%v r=%v+%v", i, j, d, a.Radius, b.Radius)
			}
		}
	}
}

func TestPhyllotaxis(t *testing.T) {
	reg := NewRegistry()
	b := plotgen.NewBounds(200, 200, 0)
	res, _ := reg.Generate("phyllotaxis", Params{"count": 50}, nil, nil, b)
	if len(res.Paths) != 50 {
		t.Fatalf("paths = %d, want 50", len(res.Paths))
	}
	for _, p := range res.Paths {
		if !p.IsPrimitive() {
			t.Fatal("dots without modifiers must stay primitive")
		}
	}
	res, _ = reg.Generate("phyllotaxis", Params{"count": 50, "sides": 5,
		"modifiers": []any{map[string]any{"type": "twist", "amount": 1}}}, nil, nil, b)
	for _, p := range res.Paths {
		if p.IsPrimitive() || len(p.Points) != 6 {
			t.Fatalf("modified pentagon has %d points, primitive=%v", len(p.Points), p.IsPrimitive())
		}
	}
}

func TestHarmonographModes(t *testing.T) {
	reg := NewRegistry()
	b := plotgen.NewBounds(300, 300, 10)
	lines, _ := reg.Generate("harmonograph", Params{"duration": 50}, nil, nil, b)
	if len(lines.Paths) != 1 || len(lines.Helpers) != 0 {
		t.Fatalf("lines: %d paths %d helpers", len(lines.Paths), len(lines.Helpers))
	}
	total := lines.Paths[0].Length()

	dots, _ := reg.Generate("harmonograph", Params{"duration": 50, "mode": "points", "spacing": 10}, nil, nil, b)
	if want := int(total/10) + 1; len(dots.Paths) != want {
		t.Errorf("points: %d dots, want %d", len(dots.Paths), want)
	}
	dashed, _ := reg.Generate("harmonograph", Params{"duration": 50, "mode": "dashed"}, nil, nil, b)
	var drawn float64
	for _, p := range dashed.Paths {
		drawn += p.Length()
	}
	if drawn > total+1e-6 || len(dashed.Paths) < 2 {
		t.Errorf("dashed: %d runs covering %v of %v", len(dashed.Paths), drawn, total)
	}
	guides, _ := reg.Generate("harmonograph", Params{"duration": 50, "guides": true}, nil, nil, b)
	if len(guides.Helpers) != 5 {
		t.Errorf("helpers = %d, want 5", len(guides.Helpers))
	}
}

func TestHarmonographSettle(t *testing.T) {
	params := Params{
		"x":        []any{map[string]any{"freq": 2, "amp": 1, "damping": 0.5}},
		"y":        []any{map[string]any{"freq": 3, "amp": 1, "damping": 0.5}},
		"duration": 1000,
		"dt":       0.1,
		"settle":   0.01,
	}
	res, _ := NewRegistry().Generate("harmonograph", params, nil, nil, plotgen.NewBounds(300, 300, 0))
	if n := len(res.Paths[0].Points); n >= 10001 {
		t.Errorf("settled curve kept all %d points", n)
	}
}

func TestAttractorFits(t *testing.T) {
	b := plotgen.NewBounds(300, 200, 10)
	for _, kind := range []string{"lorenz", "rossler", "aizawa"} {
		res, _ := NewRegistry().Generate("attractor", Params{"kind": kind, "steps": 3000}, plotgen.NewRng(2), nil, b)
		if len(res.Paths) != 1 {
			t.Fatalf("%s: paths = %d", kind, len(res.Paths))
		}
		inner := b.Inner()
		for _, p := range res.Paths[0].Points {
			if !inner.Contains(p) {
				t.Fatalf("%s: point %v outside the inset", kind, p)
			}
		}
	}
}

func TestTopoLevels(t *testing.T) {
	res, _ := NewRegistry().Generate("topo", Params{"levels": 5, "cell": 8}, nil, newTestField(), plotgen.NewBounds(200, 200, 0))
	groups := map[string]bool{}
	for _, p := range res.Paths {
		groups[p.Group] = true
		if len(p.Points) < 2 {
			t.Fatal("contour with fewer than two points")
		}
	}
	if len(groups) == 0 || len(groups) > 5 {
		t.Errorf("groups = %d, want 1..5", len(groups))
	}
}

func TestPetalsOcclusion(t *testing.T) {
	res, _ := NewRegistry().Generate("petals", Params{"petals": 6, "layers": 2, "shading": 0, "core": 0.2},
		nil, nil, plotgen.NewBounds(300, 300, 10))
	if len(res.Paths) == 0 || res.Paths[0].Group != "core" || !res.Paths[0].IsPrimitive() {
		t.Fatal("core disc must be emitted first and whole")
	}
	core := res.Paths[0].Shape.(plotgen.Circle)
	for i, p := range res.Paths[1:] {
		for j := 1; j < len(p.Points); j++ {
			m := p.Points[j-1].Lerp(p.Points[j], 0.5)
			if m.Distance(core.Center) < core.Radius*0.99 {
				t.Fatalf("petal path %d segment %d inside the core", i, j)
			}
		}
	}
}

func TestGenerateBatch(t *testing.T) {
	reg := NewRegistry()
	field := newTestField()
	b := plotgen.NewBounds(200, 200, 10)
	var jobs []Job
	for seed := range uint64(8) {
		jobs = append(jobs, Job{ID: "flowfield", Params: small["flowfield"], Seed: seed, Bounds: b})
	}
	jobs = append(jobs, Job{ID: "missing", Bounds: b})

	got := GenerateBatch(reg, field, jobs, 3)
	if len(got) != len(jobs) {
		t.Fatalf("results = %d, want %d", len(got), len(jobs))
	}
	for i, r := range got[:8] {
		want, _ := reg.Generate("flowfield", small["flowfield"], plotgen.NewRng(uint64(i)), field, b)
		if r.Err != nil || r.Job.Seed != uint64(i) || len(r.Result.Paths) != len(want.Paths) {
			t.Fatalf("job %d: err=%v paths=%d want %d", i, r.Err, len(r.Result.Paths), len(want.Paths))
		}
		for k := range want.Paths {
			if !slices.Equal(r.Result.Paths[k].Points, want.Paths[k].Points) {
				t.Fatalf("job %d path %d differs from serial generation", i, k)
			}
		}
	}
	if !errors.Is(got[8].Err, ErrUnknownAlgorithm) {
		t.Errorf("missing job error = %v", got[8].Err)
	}
}
