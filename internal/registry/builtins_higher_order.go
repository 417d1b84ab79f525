package registry

import (
	"fmt"

	"github.com/eddndev/achronyme-go/internal/ast"
	"github.com/eddndev/achronyme-go/internal/runtime"
	"github.com/eddndev/achronyme-go/internal/soerr"
	"github.com/eddndev/achronyme-go/internal/value"
)

// registerHigherOrder wires spec.md §9's function-valued combinators: map,
// filter, reduce, fold, pipe, and compose. Each borrows apply to invoke the
// user-supplied Function or NativeFunc argument, resolving the §9 open
// question of what `compose`/`pipe` produce: real Function values with a
// synthetic AST body closing over the composed functions, not a
// pre-evaluated Go closure wearing a Function-shaped costume.
func registerHigherOrder(r *Registry, apply Apply) {
	r.register("map", 2, 2, func(args []value.Value) (value.Value, error) {
		fn, err := callable("map", args, 0)
		if err != nil {
			return nil, err
		}
		t, err := tensor("map", args, 1)
		if err != nil {
			return nil, err
		}
		out := t.Clone()
		for i, d := range t.Data {
			v, err := apply(fn, []value.Value{value.Number(d)})
			if err != nil {
				return nil, err
			}
			f, ok := v.(value.Number)
			if !ok {
				return nil, soerr.New(soerr.Type, "map: function must return a Number, got %s", v.Type())
			}
			out.Data[i] = float64(f)
		}
		return out, nil
	})

	r.register("filter", 2, 2, func(args []value.Value) (value.Value, error) {
		fn, err := callable("filter", args, 0)
		if err != nil {
			return nil, err
		}
		t, err := tensor("filter", args, 1)
		if err != nil {
			return nil, err
		}
		var data []float64
		for _, d := range t.Data {
			v, err := apply(fn, []value.Value{value.Number(d)})
			if err != nil {
				return nil, err
			}
			if value.Truthy(v) {
				data = append(data, d)
			}
		}
		return value.NewVector(data...), nil
	})

	r.register("reduce", 3, 3, func(args []value.Value) (value.Value, error) {
		fn, err := callable("reduce", args, 0)
		if err != nil {
			return nil, err
		}
		init := args[1]
		t, err := tensor("reduce", args, 2)
		if err != nil {
			return nil, err
		}
		acc := init
		for _, d := range t.Data {
			acc, err = apply(fn, []value.Value{acc, value.Number(d)})
			if err != nil {
				return nil, err
			}
		}
		return acc, nil
	})

	r.register("fold", 3, 3, func(args []value.Value) (value.Value, error) {
		fn, err := callable("fold", args, 0)
		if err != nil {
			return nil, err
		}
		init := args[1]
		t, err := tensor("fold", args, 2)
		if err != nil {
			return nil, err
		}
		acc := init
		for _, d := range t.Data {
			acc, err = apply(fn, []value.Value{acc, value.Number(d)})
			if err != nil {
				return nil, err
			}
		}
		return acc, nil
	})

	// compose(f, g, ...) builds f(g(...(x))); pipe(f, g, ...) builds the
	// reverse, g(...(f(x))) — left-to-right data-flow order. Both return a
	// genuine *value.Function closing over the argument functions through a
	// synthetic AST body, rather than a NativeFunc that merely behaves like
	// one, so the result is indistinguishable from a function the user wrote
	// by hand (spec.md §9).
	r.register("compose", 2, -1, func(args []value.Value) (value.Value, error) {
		return buildChain("compose", args, false)
	})
	r.register("pipe", 2, -1, func(args []value.Value) (value.Value, error) {
		return buildChain("pipe", args, true)
	})
}

// buildChain validates that every argument is callable, binds each under a
// synthetic name in a fresh Environment, and wires a nested CallExpr body
// applying them in the order leftToRight determines: false = rightmost first
// (compose), true = leftmost first (pipe).
func buildChain(name string, args []value.Value, leftToRight bool) (value.Value, error) {
	env := runtime.New()
	names := make([]string, len(args))
	for i := range args {
		fn, err := callable(name, args, i)
		if err != nil {
			return nil, err
		}
		names[i] = fmt.Sprintf("__%s_fn%d", name, i)
		env.Define(names[i], fn)
	}

	order := make([]int, len(names))
	for i := range order {
		if leftToRight {
			order[i] = i
		} else {
			order[i] = len(names) - 1 - i
		}
	}

	const paramName = "x"
	var body ast.Expr = &ast.Identifier{Name: paramName}
	for _, idx := range order {
		body = &ast.CallExpr{
			Callee: &ast.Identifier{Name: names[idx]},
			Args:   []ast.Expr{body},
		}
	}

	return &value.Function{
		Name:     "<" + name + ">",
		Params:   []string{paramName},
		Body:     body,
		Captured: env,
	}, nil
}
