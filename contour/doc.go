// Package contour extracts isolines from a sampled scalar field with
// marching squares.
//
// Extract links the per-cell segments of each threshold into open or closed
// polylines and can smooth them (Chaikin) or pull them onto the isoline with
// one Newton step along the field gradient. Work is bounded by
// rows*cols*levels; every segment is linked exactly once.
package contour
