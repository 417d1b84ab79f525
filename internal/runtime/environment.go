// Package runtime implements the lexically scoped Environment that backs
// both named variables and Function closures (spec.md §4.4). The
// store-plus-outer-pointer shape is adapted from the teacher's
// internal/interp/runtime/environment.go; unlike DWScript, SOC is
// case-sensitive, so no normalized identifier map is needed.
package runtime

import (
	"github.com/eddndev/achronyme-go/internal/value"
)

// Environment is a mapping from identifier to Value plus an optional
// parent link (spec.md §3).
type Environment struct {
	store map[string]value.Value
	outer *Environment
}

// New creates a root environment with no parent.
func New() *Environment {
	return &Environment{store: make(map[string]value.Value)}
}

// NewChild creates an environment enclosed by e (spec.md §4.4
// push_child/pop via normal Go scoping — there is no explicit pop, the
// child is simply dropped when no longer referenced). It returns the
// value.Env interface so Environment satisfies that contract directly;
// NewChildEnv below returns the concrete type for in-package callers.
func (e *Environment) NewChild() value.Env {
	return e.NewChildEnv()
}

// NewChildEnv is the concrete-typed counterpart of NewChild, used by
// callers (the evaluator, the CLI) that need *Environment-specific methods
// like Assign or Names on the result.
func (e *Environment) NewChildEnv() *Environment {
	return &Environment{store: make(map[string]value.Value), outer: e}
}

// Get walks the scope chain from e outward (spec.md §4.4 lookup).
func (e *Environment) Get(name string) (value.Value, bool) {
	for env := e; env != nil; env = env.outer {
		if v, ok := env.store[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// GetLocal looks up name only in e's own scope, without walking outward.
func (e *Environment) GetLocal(name string) (value.Value, bool) {
	v, ok := e.store[name]
	return v, ok
}

// Define binds name in the current scope, shadowing any outer binding
// (spec.md §4.4 `bind`/`let`).
func (e *Environment) Define(name string, v value.Value) {
	e.store[name] = v
}

// Assign updates the nearest enclosing binding of name (spec.md §4.4
// `assign`/reassignment). It reports whether an existing binding was found.
func (e *Environment) Assign(name string, v value.Value) bool {
	for env := e; env != nil; env = env.outer {
		if _, ok := env.store[name]; ok {
			env.store[name] = v
			return true
		}
	}
	return false
}

// Names returns the identifiers bound directly in this scope (used by
// list_variables() at the top level, spec.md §6).
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.store))
	for n := range e.store {
		names = append(names, n)
	}
	return names
}
