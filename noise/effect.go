package noise

import (
	"errors"
	"fmt"
	"math"
)

// Sample is one image lookup: luminance and alpha, both in [0, 1].
type Sample struct {
	Luma  float64
	Alpha float64
}

// Effect is one step of an image layer's processing chain.
type Effect interface {
	Apply(s Sample) Sample
}

// ApplyEffects runs the chain in order.
func ApplyEffects(s Sample, effects []Effect) Sample {
	for _, e := range effects {
		s = e.Apply(s)
		s.Luma, s.Alpha = clamp01(s.Luma), clamp01(s.Alpha)
	}
	return s
}

// Invert flips luminance.
type Invert struct{}

func (Invert) Apply(s Sample) Sample {
	s.Luma = 1 - s.Luma
	return s
}

// Levels remaps [Black, White] to [0, 1].
type Levels struct {
	Black, White float64
}

func (e Levels) Apply(s Sample) Sample {
	span := e.White - e.Black
	if math.Abs(span) < 1e-6 {
		span = 1e-6
	}
	s.Luma = (s.Luma - e.Black) / span
	return s
}

// Gamma raises luminance to 1/Value.
type Gamma struct {
	Value float64
}

func (e Gamma) Apply(s Sample) Sample {
	g := math.Max(e.Value, 1e-3)
	s.Luma = math.Pow(clamp01(s.Luma), 1/g)
	return s
}

// Contrast scales luminance around mid-grey; 1 is unchanged.
type Contrast struct {
	Amount float64
}

func (e Contrast) Apply(s Sample) Sample {
	s.Luma = (s.Luma-0.5)*e.Amount + 0.5
	return s
}

// Posterize quantises luminance into Steps bands.
type Posterize struct {
	Steps int
}

func (e Posterize) Apply(s Sample) Sample {
	n := float64(max(e.Steps, 2))
	s.Luma = math.Min(math.Floor(s.Luma*n), n-1) / (n - 1)
	return s
}

// Threshold maps luminance to 0 or 1 at Level.
type Threshold struct {
	Level float64
}

func (e Threshold) Apply(s Sample) Sample {
	if s.Luma >= e.Level {
		s.Luma = 1
	} else {
		s.Luma = 0
	}
	return s
}

// AlphaMask treats pixels with alpha below Cutoff as blank paper (white,
// opaque) so transparent regions carry no tone.
type AlphaMask struct {
	Cutoff float64
}

func (e AlphaMask) Apply(s Sample) Sample {
	if s.Alpha < e.Cutoff {
		return Sample{Luma: 1, Alpha: 1}
	}
	s.Alpha = 1
	return s
}

// ErrUnknownEffect is returned for an unrecognised effect kind.
var ErrUnknownEffect = errors.New("noise: unknown effect")

// EffectSpec is the serialisable form of an Effect, used by configuration
// files. Value and Value2 carry the effect's parameters in declaration
// order.
type EffectSpec struct {
	Kind   string  `mapstructure:"kind"`
	Value  float64 `mapstructure:"value"`
	Value2 float64 `mapstructure:"value2"`
}

// Effect converts the spec into its variant.
func (s EffectSpec) Effect() (Effect, error) {
	switch s.Kind {
	case "invert":
		return Invert{}, nil
	case "levels":
		white := s.Value2
		if white == 0 {
			white = 1
		}
		return Levels{Black: s.Value, White: white}, nil
	case "gamma":
		return Gamma{Value: s.Value}, nil
	case "contrast":
		return Contrast{Amount: s.Value}, nil
	case "posterize":
		return Posterize{Steps: int(s.Value)}, nil
	case "threshold":
		return Threshold{Level: s.Value}, nil
	case "alpha-mask":
		return AlphaMask{Cutoff: s.Value}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEffect, s.Kind)
}

// ParseEffects converts specs in order, stopping at the first unknown kind.
func ParseEffects(specs []EffectSpec) ([]Effect, error) {
	out := make([]Effect, 0, len(specs))
	for _, s := range specs {
		e, err := s.Effect()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
