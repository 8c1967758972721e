package occlusion

import "github.com/gogpu/plotgen"

// Stack is the append-only list of occluders for one generation call, in
// emission order.
type Stack struct {
	occ []Occluder
}

// Push appends p as an occluder.
func (s *Stack) Push(p plotgen.Path) {
	s.occ = append(s.occ, NewOccluder(p))
}

// Emit clips p against every occluder pushed so far, then pushes p.
// It returns the visible parts of p.
func (s *Stack) Emit(p plotgen.Path) []plotgen.Path {
	visible := s.Clip(p)
	s.Push(p)
	return visible
}

// Clip clips p against the current occluders without pushing it.
func (s *Stack) Clip(p plotgen.Path) []plotgen.Path {
	return ClipOutside(p, s.occ)
}

// Occluders returns the occluders in emission order. The slice must not be
// modified.
func (s *Stack) Occluders() []Occluder {
	return s.occ
}

// Len returns the number of occluders.
func (s *Stack) Len() int {
	return len(s.occ)
}
