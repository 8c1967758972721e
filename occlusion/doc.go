// Package occlusion hides parts of shapes behind shapes emitted earlier and
// splits strokes into lit and shadowed runs under a point light.
//
// Occluders are processed in emission order: a Stack clips each new shape
// against everything pushed before it, never the reverse.
package occlusion
