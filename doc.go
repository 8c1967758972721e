// Package plotgen is a deterministic procedural-geometry kernel for vector
// artwork and pen plotters.
//
// # Overview
//
// A generator takes a parameter set, a seeded [Rng], a coherent-noise field
// and canvas [Bounds] and returns ordered point sequences ([Path]). The root
// package holds the shared geometry: points, affine matrices, Bezier
// flattening, primitive paths, arc-length resampling and dash chopping.
//
//	rng := plotgen.NewRng(42)
//	table := plotgen.BuildSegmentTable(points)
//	for pos, tangent := range table.Samples(5, 0, 0.2, rng) {
//	    ...
//	}
//
// # Architecture
//
// The kernel is organized into:
//   - plotgen: Point, Rect, Matrix, CubicBez, Path, Bounds, Rng, resampling
//   - noise: layered coherent noise and image-luma sampling
//   - modifier: polar and local-frame point transforms
//   - occlusion: painter's-order clipping and light/shadow splitting
//   - contour: marching-squares isolines
//   - algorithm: the registry of generators
//
// # Determinism
//
// For a fixed algorithm, parameters, seed, noise configuration and bounds,
// output is bit-for-bit reproducible. Only [Rng] carries mutable state; the
// noise field is safe for concurrent reads.
//
// # Coordinate System
//
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Angles in radians unless a parameter says degrees
package plotgen

// Version is the current version of the kernel.
const Version = "0.3.0"
