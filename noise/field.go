package noise

import "math"

// Field is the composed noise field handed to generators: one base Source
// plus an ordered layer stack. A Field holds no mutable state after
// construction.
type Field struct {
	source Source
	layers []Layer
	images ImageSampler
	width  float64
	height float64
}

// FieldOption configures a Field during creation.
type FieldOption func(*Field)

// WithLayers sets the layer stack sampled by Field.Sample.
func WithLayers(layers ...Layer) FieldOption {
	return func(f *Field) {
		f.layers = append([]Layer(nil), layers...)
	}
}

// WithImages sets the sampler used by image layers.
func WithImages(images ImageSampler) FieldOption {
	return func(f *Field) {
		f.images = images
	}
}

// WithExtent sets the canvas size that image layers with no Zoom stretch
// across.
func WithExtent(width, height float64) FieldOption {
	return func(f *Field) {
		f.width, f.height = width, height
	}
}

// NewField creates a field over source. A nil source selects simplex noise
// with seed 0.
func NewField(source Source, opts ...FieldOption) *Field {
	if source == nil {
		source = NewSimplex(0)
	}
	f := &Field{source: source}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Noise2D evaluates the base primitive.
func (f *Field) Noise2D(x, y float64) float64 {
	return f.source.Noise2D(x, y)
}

// Layers returns a copy of the configured layer stack.
func (f *Field) Layers() []Layer {
	return append([]Layer(nil), f.layers...)
}

// Sample combines the configured layer stack at (x, y). A field without
// layers samples one default simplex layer.
func (f *Field) Sample(x, y float64) float64 {
	if len(f.layers) == 0 {
		return f.SampleLayer(x, y, Layer{})
	}
	return f.Combine(f.layers, x, y)
}

// SampleLayer evaluates a single layer at canvas position (x, y),
// scaled by its amplitude. The result is in [-1, 1].
func (f *Field) SampleLayer(x, y float64, l Layer) float64 {
	l = l.normalized()
	if l.Type == TypeImage {
		return clampUnit(f.image(x, y, l) * l.Amplitude)
	}

	nx, ny := l.domain(x, y)
	var v float64
	switch l.Type {
	case TypeRidged:
		v = f.ridged(nx, ny)
	case TypeBillow:
		v = f.billow(nx, ny)
	case TypeTurbulence:
		v = f.turbulence(nx, ny, l)
	case TypeFBM:
		v = f.fbm(nx, ny, l)
	case TypeCellular:
		v = cellular(nx, ny, l)
	case TypeVoronoi:
		v = voronoi(nx, ny, l)
	case TypeWarp:
		v = f.warp(nx, ny, l)
	case TypeTerrace:
		v = f.terrace(nx, ny, l)
	default:
		v = f.source.Noise2D(nx, ny)
	}
	return clampUnit(v * l.Amplitude)
}

// image samples an image layer; missing images and samplers read as 0.
func (f *Field) image(x, y float64, l Layer) float64 {
	if f.images == nil || l.Image == "" {
		return 0
	}
	var u, v float64
	switch {
	case l.Zoom > 0:
		u, v = l.domain(x, y)
	case f.width > 0 && f.height > 0:
		u, v = x/f.width, y/f.height
	default:
		return 0
	}
	s, ok := f.images.SampleImage(l.Image, u, v, l.Tile, l.Resolution)
	if !ok {
		return 0
	}
	s = ApplyEffects(s, l.Effects)
	return (s.Luma*2 - 1) * s.Alpha
}

// Combine folds layers left to right at (x, y). The running value starts
// at the first enabled layer; disabled layers are skipped. With no enabled
// layer the result is 0. The result is clamped to [-1, 1].
func (f *Field) Combine(layers []Layer, x, y float64) float64 {
	var acc float64
	started := false
	for _, l := range layers {
		if l.Disabled {
			continue
		}
		v := f.SampleLayer(x, y, l)
		if !started {
			acc, started = v, true
			continue
		}
		acc = blend(l.normalized(), acc, v, x, y)
	}
	return clampUnit(acc)
}

// blend applies l's op to the running value acc and the incoming value v.
func blend(l Layer, acc, v, x, y float64) float64 {
	switch l.Blend {
	case BlendSubtract:
		return acc - v
	case BlendMultiply:
		return acc * v
	case BlendMin:
		return math.Min(acc, v)
	case BlendMax:
		return math.Max(acc, v)
	case BlendHatchDark, BlendHatchLight:
		return hatch(l, acc, v, x, y)
	}
	return acc + v
}

// hatch weights the incoming value by the running tone and a directional
// stripe bias across HatchAngle. hatch-dark adds more where the running
// tone is dark, hatch-light where it is light.
func hatch(l Layer, acc, v, x, y float64) float64 {
	tone := (clampUnit(acc) + 1) / 2
	weight := tone
	if l.Blend == BlendHatchDark {
		weight = 1 - tone
	}
	sin, cos := math.Sincos(l.HatchAngle * math.Pi / 180)
	zoom := l.Zoom
	if zoom <= 0 {
		zoom = defaultZoom
	}
	s := (x*cos + y*sin) / zoom
	bias := 0.5 + 0.5*math.Cos(2*math.Pi*s)
	return acc + v*weight*bias
}
