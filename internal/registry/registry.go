// Package registry implements the SOC Function Registry (spec.md §4.5): a
// closed table of builtin functions built once at engine startup, consulted
// only when no Environment binding shadows the identifier. The
// split-by-concern file layout (builtins_*.go) mirrors the teacher's
// internal/interp/builtins/*.go, and Lookup/Suggest is adapted from the
// teacher's ardnew-aenv-inspired name-resolution helper that backs
// "did you mean" diagnostics.
package registry

import (
	"sort"

	"github.com/sahilm/fuzzy"

	"github.com/eddndev/achronyme-go/internal/value"
)

// Apply invokes a Function or NativeFunc Value with the given arguments.
// Higher-order builtins (map/filter/reduce/compose) take this as a
// constructor argument instead of importing package eval directly, which
// would otherwise create an import cycle (eval already imports registry).
type Apply func(callee value.Value, args []value.Value) (value.Value, error)

// Registry is the closed, read-only-after-build builtin table.
type Registry struct {
	funcs map[string]*value.NativeFunc
	names []string // sorted, cached for fuzzy suggestion
}

// New builds the full builtin table (spec.md §4.5/§4.6-§4.10's operation
// catalogue). It is called once per Evaluator/Engine instance; apply is the
// evaluator's function-call entry point, used by higher-order builtins.
func New(apply Apply) *Registry {
	r := &Registry{funcs: make(map[string]*value.NativeFunc)}
	registerMath(r)
	registerComplexFns(r)
	registerTensor(r)
	registerVecOps(r)
	registerPiecewise(r)
	registerReduce(r)
	registerHigherOrder(r, apply)
	registerDSP(r)
	registerLinalg(r)
	registerCalc(r, apply)
	registerOptimize(r)
	registerSolveDispatch(r, apply)

	names := make([]string, 0, len(r.funcs))
	for n := range r.funcs {
		names = append(names, n)
	}
	sort.Strings(names)
	r.names = names
	return r
}

// register adds a builtin under name; it panics on a duplicate registration
// since that indicates a programmer error in the table construction, not a
// runtime condition (spec.md §4.5: the table is closed and built once).
func (r *Registry) register(name string, minArity, maxArity int, fn func(args []value.Value) (value.Value, error)) {
	if _, exists := r.funcs[name]; exists {
		panic("registry: duplicate builtin " + name)
	}
	r.funcs[name] = &value.NativeFunc{Name: name, MinArity: minArity, MaxArity: maxArity, Call: fn}
}

// Lookup resolves name to its builtin Function value. Callers must have
// already confirmed no Environment binding shadows name (spec.md §4.5).
func (r *Registry) Lookup(name string) (*value.NativeFunc, bool) {
	fn, ok := r.funcs[name]
	return fn, ok
}

// Suggest returns the closest builtin name to an unresolved identifier, or
// "" if nothing is close enough to be useful (spec.md §4.9 "did you mean").
func (r *Registry) Suggest(name string) string {
	matches := fuzzy.Find(name, r.names)
	if len(matches) == 0 {
		// No builtin contains name as a subsequence; fall back to the longest
		// builtin contained in name, at most two characters shorter ("sqrtt").
		best := ""
		for _, n := range r.names {
			if len(n) > len(best) && len(name)-len(n) <= 2 && len(fuzzy.Find(n, []string{name})) > 0 {
				best = n
			}
		}
		return best
	}
	return matches[0].Str
}

// Names returns every registered builtin name, sorted.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}
