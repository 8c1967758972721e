// Package noise provides the layered coherent-noise field sampled by
// generators.
//
// A [Field] wraps one base primitive ([Source], opensimplex by default) and
// an ordered stack of [Layer] specs. Each layer shapes the base noise
// (ridged, billow, fbm, cellular, ...) or samples an image through an
// [ImageSampler], and the stack folds left to right with a [Blend] op.
//
//	field := noise.NewField(noise.NewSimplex(7),
//	    noise.WithLayers(
//	        noise.Layer{Type: noise.TypeFBM, Zoom: 240, Octaves: 5},
//	        noise.Layer{Type: noise.TypeRidged, Blend: noise.BlendMultiply, Zoom: 90},
//	    ))
//	v := field.Sample(x, y) // always in [-1, 1]
//
// Every shape and blend is a pure function of (x, y, layer), so a Field
// may be shared by concurrent generators.
package noise
