package noise

import (
	"errors"
	"fmt"
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Source is the base coherent-noise primitive. Noise2D returns values in
// [-1, 1] and must be a pure function of its arguments.
type Source interface {
	Noise2D(x, y float64) float64
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func(x, y float64) float64

// Noise2D calls f(x, y).
func (f SourceFunc) Noise2D(x, y float64) float64 { return f(x, y) }

// ErrUnknownSource is returned by NewSource for an unrecognised kind.
var ErrUnknownSource = errors.New("noise: unknown source")

// Source kinds accepted by NewSource.
const (
	SourceSimplex = "simplex"
	SourcePerlin  = "perlin"
)

// NewSource creates a base primitive by kind name. An empty kind selects
// simplex.
func NewSource(kind string, seed int64) (Source, error) {
	switch kind {
	case "", SourceSimplex:
		return NewSimplex(seed), nil
	case SourcePerlin:
		return NewPerlin(seed), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSource, kind)
}

type simplexSource struct {
	noise opensimplex.Noise
}

// NewSimplex returns OpenSimplex noise seeded with seed.
func NewSimplex(seed int64) Source {
	return simplexSource{noise: opensimplex.New(seed)}
}

func (s simplexSource) Noise2D(x, y float64) float64 {
	return clampUnit(s.noise.Eval2(x, y))
}

// Perlin parameters: alpha and beta set the octave falloff and frequency
// step, perlinOctaves the octave count.
const (
	perlinAlpha   = 2
	perlinBeta    = 2
	perlinOctaves = 3
	perlinScale   = 1.5
)

type perlinSource struct {
	p *perlin.Perlin
}

// NewPerlin returns three-octave Perlin noise seeded with seed.
func NewPerlin(seed int64) Source {
	return perlinSource{p: perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, seed)}
}

func (s perlinSource) Noise2D(x, y float64) float64 {
	return clampUnit(s.p.Noise2D(x, y) * perlinScale)
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-1, math.Min(1, v))
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
