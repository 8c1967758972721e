package noise

import (
	"image"
	"math"
	"sync"

	"golang.org/x/image/draw"

	"github.com/gogpu/plotgen"
	"github.com/gogpu/plotgen/internal/cache"
)

// ImageSampler looks up image luminance for image layers. u and v span
// [0, 1] across the image; values outside are resolved by tile. resolution
// is the requested grid size along the longer image side. Implementations
// must be safe for concurrent use.
type ImageSampler interface {
	SampleImage(id string, u, v float64, tile TileMode, resolution int) (Sample, bool)
}

// Rec. 709 luminance weights.
const (
	lumR = 0.2126
	lumG = 0.7152
	lumB = 0.0722
)

// lumaGrid is an image rescaled to a fixed resolution and reduced to
// luminance and alpha.
type lumaGrid struct {
	w, h  int
	luma  []float64
	alpha []float64
}

type gridKey struct {
	id         string
	generation uint64
	resolution int
}

type imageEntry struct {
	img        image.Image
	generation uint64
}

// ImageSet is an ImageSampler over registered image.Image values. Grids are
// built lazily per (id, resolution) with bilinear rescaling and kept in an
// LRU cache.
type ImageSet struct {
	mu         sync.RWMutex
	sources    map[string]imageEntry
	generation uint64
	grids      *cache.Cache[gridKey, *lumaGrid]
}

// NewImageSet creates an empty set caching at most capacity grids
// (0 means unlimited).
func NewImageSet(capacity int) *ImageSet {
	return &ImageSet{
		sources: make(map[string]imageEntry),
		grids:   cache.New[gridKey, *lumaGrid](capacity),
	}
}

// Add registers img under id. Replacing an image drops its cached grids.
func (s *ImageSet) Add(id string, img image.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	if _, ok := s.sources[id]; ok {
		s.grids.DeleteFunc(func(k gridKey) bool { return k.id == id })
	}
	s.sources[id] = imageEntry{img: img, generation: s.generation}
}

// Has reports whether id is registered.
func (s *ImageSet) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sources[id]
	return ok
}

// SampleImage implements ImageSampler with bilinear interpolation.
func (s *ImageSet) SampleImage(id string, u, v float64, tile TileMode, resolution int) (Sample, bool) {
	s.mu.RLock()
	e, ok := s.sources[id]
	s.mu.RUnlock()
	if !ok {
		return Sample{}, false
	}

	if resolution <= 0 {
		resolution = defaultResolution
	}
	key := gridKey{id: id, generation: e.generation, resolution: resolution}
	g := s.grids.GetOrCreate(key, func() *lumaGrid {
		return buildLumaGrid(e.img, resolution)
	})
	if g.w == 0 || g.h == 0 {
		return Sample{}, false
	}
	return g.sample(u, v, tile), true
}

// buildLumaGrid rescales img so its longer side is resolution pixels.
func buildLumaGrid(img image.Image, resolution int) *lumaGrid {
	sb := img.Bounds()
	if sb.Dx() <= 0 || sb.Dy() <= 0 {
		return &lumaGrid{}
	}
	scale := float64(resolution) / float64(max(sb.Dx(), sb.Dy()))
	w := max(int(math.Round(float64(sb.Dx())*scale)), 1)
	h := max(int(math.Round(float64(sb.Dy())*scale)), 1)

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, sb, draw.Src, nil)

	g := &lumaGrid{w: w, h: h, luma: make([]float64, w*h), alpha: make([]float64, w*h)}
	for i := range w * h {
		px := dst.Pix[i*4 : i*4+4]
		g.luma[i] = (lumR*float64(px[0]) + lumG*float64(px[1]) + lumB*float64(px[2])) / 255
		g.alpha[i] = float64(px[3]) / 255
	}
	plotgen.Logger().Debug("noise: built luma grid", "width", w, "height", h)
	return g
}

// texel resolves an integer coordinate against size n with the tile mode.
func texel(i, n int, tile TileMode) int {
	switch tile {
	case TileWrap:
		i %= n
		if i < 0 {
			i += n
		}
		return i
	case TileMirror:
		period := 2 * n
		i %= period
		if i < 0 {
			i += period
		}
		if i >= n {
			i = period - 1 - i
		}
		return i
	}
	return max(0, min(n-1, i))
}

func (g *lumaGrid) at(x, y int, tile TileMode) (float64, float64) {
	i := texel(y, g.h, tile)*g.w + texel(x, g.w, tile)
	return g.luma[i], g.alpha[i]
}

func (g *lumaGrid) sample(u, v float64, tile TileMode) Sample {
	fx := u*float64(g.w) - 0.5
	fy := v*float64(g.h) - 0.5
	x0, y0 := int(math.Floor(fx)), int(math.Floor(fy))
	tx, ty := fx-float64(x0), fy-float64(y0)

	l00, a00 := g.at(x0, y0, tile)
	l10, a10 := g.at(x0+1, y0, tile)
	l01, a01 := g.at(x0, y0+1, tile)
	l11, a11 := g.at(x0+1, y0+1, tile)
	return Sample{
		Luma:  lerp2D(l00, l10, l01, l11, tx, ty),
		Alpha: lerp2D(a00, a10, a01, a11, tx, ty),
	}
}

func lerp2D(v00, v10, v01, v11, tx, ty float64) float64 {
	top := v00 + (v10-v00)*tx
	bottom := v01 + (v11-v01)*tx
	return top + (bottom-top)*ty
}
