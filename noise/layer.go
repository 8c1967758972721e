package noise

import "math"

// Type selects the shape function applied to the base noise.
type Type string

// Layer shape types.
const (
	TypeSimplex    Type = "simplex"
	TypeRidged     Type = "ridged"
	TypeBillow     Type = "billow"
	TypeTurbulence Type = "turbulence"
	TypeFBM        Type = "fbm"
	TypeCellular   Type = "cellular"
	TypeVoronoi    Type = "voronoi"
	TypeWarp       Type = "warp"
	TypeTerrace    Type = "terrace"
	TypeImage      Type = "image"
)

// Blend selects how a layer folds into the running value.
type Blend string

// Blend ops.
const (
	BlendAdd        Blend = "add"
	BlendSubtract   Blend = "subtract"
	BlendMultiply   Blend = "multiply"
	BlendMin        Blend = "min"
	BlendMax        Blend = "max"
	BlendHatchDark  Blend = "hatch-dark"
	BlendHatchLight Blend = "hatch-light"
)

// TileMode selects how image coordinates outside [0, 1] are resolved.
type TileMode string

// Tile modes.
const (
	TileClamp  TileMode = "clamp"
	TileWrap   TileMode = "wrap"
	TileMirror TileMode = "mirror"
)

// Layer describes one noise layer. Zero numeric fields select the default
// noted on each field; out-of-range values are clamped.
type Layer struct {
	Type     Type  `mapstructure:"type"`  // default simplex
	Blend    Blend `mapstructure:"blend"` // default add; ignored on the first enabled layer
	Disabled bool  `mapstructure:"disabled"`

	// Amplitude scales the layer, (0, 1], default 1. Zero selects the
	// default like every other numeric field; set Disabled to silence a layer.
	Amplitude float64 `mapstructure:"amplitude"`
	Zoom      float64 `mapstructure:"zoom"`      // canvas units per noise unit, default 100
	Angle     float64 `mapstructure:"angle"`     // domain rotation, degrees
	ShiftX    float64 `mapstructure:"shiftX"`
	ShiftY    float64 `mapstructure:"shiftY"`
	Seed      int64   `mapstructure:"seed"` // offsets the domain and the cellular lattice

	Octaves    int     `mapstructure:"octaves"`    // fbm, turbulence: [1, 12], default 4
	Lacunarity float64 `mapstructure:"lacunarity"` // fbm, turbulence: [1, 4], default 2
	Gain       float64 `mapstructure:"gain"`       // fbm, turbulence: (0, 1], default 0.5
	Jitter     float64 `mapstructure:"jitter"`     // cellular, voronoi: [0, 1], default 1
	Warp       float64 `mapstructure:"warp"`       // warp strength in noise units, default 1
	Steps      int     `mapstructure:"steps"`      // terrace: [2, 64], default 5
	HatchAngle float64 `mapstructure:"hatchAngle"` // hatch blends: stroke direction, degrees

	Image      string   `mapstructure:"image"`      // image id for TypeImage
	Resolution int      `mapstructure:"resolution"` // image grid size, [8, 4096], default 256
	Tile       TileMode `mapstructure:"tile"`       // default clamp
	Effects    []Effect `mapstructure:"-"`
}

const (
	defaultZoom       = 100
	defaultOctaves    = 4
	defaultLacunarity = 2
	defaultGain       = 0.5
	defaultSteps      = 5
	defaultResolution = 256
	minZoom           = 1e-3
)

// normalized resolves defaults and clamps every field into its range.
func (l Layer) normalized() Layer {
	if l.Type == "" {
		l.Type = TypeSimplex
	}
	if l.Blend == "" {
		l.Blend = BlendAdd
	}
	if l.Tile == "" {
		l.Tile = TileClamp
	}
	l.Amplitude = defaultIfZero(l.Amplitude, 1, 0, 1)
	if l.Zoom != 0 || l.Type != TypeImage {
		l.Zoom = defaultIfZero(math.Abs(l.Zoom), defaultZoom, minZoom, math.MaxFloat64)
	}
	l.Octaves = clampInt(defaultIfZeroInt(l.Octaves, defaultOctaves), 1, 12)
	l.Lacunarity = defaultIfZero(l.Lacunarity, defaultLacunarity, 1, 4)
	l.Gain = defaultIfZero(l.Gain, defaultGain, 1e-3, 1)
	l.Jitter = defaultIfZero(l.Jitter, 1, 0, 1)
	l.Warp = defaultIfZero(l.Warp, 1, -8, 8)
	l.Steps = clampInt(defaultIfZeroInt(l.Steps, defaultSteps), 2, 64)
	l.Resolution = clampInt(defaultIfZeroInt(l.Resolution, defaultResolution), 8, 4096)
	return l
}

func defaultIfZero(v, def, lo, hi float64) float64 {
	if v == 0 || math.IsNaN(v) {
		v = def
	}
	return math.Max(lo, math.Min(hi, v))
}

func defaultIfZeroInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

// domain maps canvas coordinates into the layer's noise space: rotate by
// Angle, shift, divide by Zoom, then offset by the seed.
func (l Layer) domain(x, y float64) (float64, float64) {
	if l.Angle != 0 {
		sin, cos := math.Sincos(l.Angle * math.Pi / 180)
		x, y = x*cos-y*sin, x*sin+y*cos
	}
	x = (x + l.ShiftX) / l.Zoom
	y = (y + l.ShiftY) / l.Zoom
	ox, oy := seedOffset(l.Seed)
	return x + ox, y + oy
}

// seedOffset turns a seed into a stable domain offset in [0, 1024).
func seedOffset(seed int64) (float64, float64) {
	if seed == 0 {
		return 0, 0
	}
	h := splitmix64(uint64(seed))
	return float64(h&0xfffff) / 1024, float64((h>>20)&0xfffff) / 1024
}

// splitmix64 is the SplitMix64 finaliser, used as a stateless integer hash.
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
