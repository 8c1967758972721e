// Package algorithm is the catalog of path generators.
//
// A Registry maps stable ids to Algorithms. Each algorithm decodes its
// Params into a typed config (missing keys take defaults, out-of-range
// values are clamped) and produces paths from a seeded Rng, a noise Field
// and canvas Bounds. Output is bit-for-bit reproducible for a fixed
// (id, params, seed, field, bounds).
//
// Example:
//
//	reg := algorithm.NewRegistry()
//	res, err := reg.Generate("lissajous", algorithm.Params{"freqX": 3, "freqY": 2},
//		plotgen.NewRng(1), noise.NewField(nil), plotgen.NewBounds(400, 400, 20))
package algorithm
