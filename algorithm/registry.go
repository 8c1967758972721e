package algorithm

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/plotgen"
	"github.com/gogpu/plotgen/noise"
)

// ErrUnknownAlgorithm is returned for ids not present in the registry.
var ErrUnknownAlgorithm = errors.New("algorithm: unknown id")

// Result is the output of one generation.
type Result struct {
	Paths []plotgen.Path
	// Helpers are auxiliary guide paths that are not part of the artwork.
	Helpers []plotgen.Path
}

// GenerateFunc produces paths for one invocation. It must draw randomness
// only from rng and must not retain any argument.
type GenerateFunc func(p Params, rng *plotgen.Rng, field *noise.Field, b plotgen.Bounds) Result

// FormulaFunc describes the construction of an algorithm for display.
type FormulaFunc func(p Params) string

// Algorithm is one catalog entry.
type Algorithm struct {
	ID          string
	Name        string
	Description string
	Generate    GenerateFunc
	Formula     FormulaFunc
}

// Registry maps ids to algorithms. It is built once and read concurrently.
type Registry struct {
	algs map[string]Algorithm
}

// RegistryOption configures a Registry during creation.
type RegistryOption func(*Registry)

// WithAlgorithm registers a, replacing any entry with the same id.
func WithAlgorithm(a Algorithm) RegistryOption {
	return func(r *Registry) {
		r.algs[a.ID] = a
	}
}

// WithoutBuiltins starts from an empty catalog.
func WithoutBuiltins() RegistryOption {
	return func(r *Registry) {
		clear(r.algs)
	}
}

// NewRegistry returns a registry holding the built-in catalog, then
// applies opts in order.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{algs: make(map[string]Algorithm)}
	for _, a := range builtins() {
		r.algs[a.ID] = a
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// builtins lists the catalog shipped with the module.
func builtins() []Algorithm {
	return []Algorithm{
		hyphaeAlgorithm(),
		flowfieldAlgorithm(),
		lissajousAlgorithm(),
		attractorAlgorithm(),
		harmonographAlgorithm(),
		phyllotaxisAlgorithm(),
		circlePackingAlgorithm(),
		petalsAlgorithm(),
		ringsAlgorithm(),
		topoAlgorithm(),
	}
}

// IDs returns the registered ids in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.algs))
	for id := range r.algs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Lookup returns the algorithm registered under id.
func (r *Registry) Lookup(id string) (Algorithm, bool) {
	a, ok := r.algs[id]
	return a, ok
}

// Generate runs algorithm id. A nil rng is seeded with 0 and a nil field
// uses simplex noise with seed 0. When b.Truncate is set every path is
// clipped to the inset rectangle.
func (r *Registry) Generate(id string, p Params, rng *plotgen.Rng, field *noise.Field, b plotgen.Bounds) (Result, error) {
	a, ok := r.algs[id]
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, id)
	}
	if rng == nil {
		rng = plotgen.NewRng(0)
	}
	if field == nil {
		field = noise.NewField(nil)
	}
	res := a.Generate(p, rng, field, b)
	if b.Truncate {
		res.Paths = plotgen.TruncatePaths(res.Paths, b.Inner())
	}
	plotgen.Logger().Debug("algorithm: generated",
		"algorithm", id, "seed", rng.Seed(), "paths", len(res.Paths), "helpers", len(res.Helpers))
	return res, nil
}

// Formula returns the formula string of algorithm id.
func (r *Registry) Formula(id string, p Params) (string, error) {
	a, ok := r.algs[id]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, id)
	}
	if a.Formula == nil {
		return "", nil
	}
	return a.Formula(p), nil
}
