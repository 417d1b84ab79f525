package registry

import (
	"github.com/eddndev/achronyme-go/internal/kernels/calc"
	"github.com/eddndev/achronyme-go/internal/kernels/linalg"
	"github.com/eddndev/achronyme-go/internal/soerr"
	"github.com/eddndev/achronyme-go/internal/value"
)

// registerSolveDispatch resolves spec.md §9's `solve` name collision
// between linear-system solving and bisection root-finding once, here, at
// registry-build time: a single builtin inspects its first argument's
// dynamic type and dispatches, so no caller anywhere else in the evaluator
// needs a runtime type switch on `solve`'s identity.
func registerSolveDispatch(r *Registry, apply Apply) {
	r.register("solve", 2, 5, func(args []value.Value) (value.Value, error) {
		switch args[0].(type) {
		case *value.Tensor:
			if len(args) != 2 {
				return nil, soerr.New(soerr.Arity, "solve: matrix form expects 2 arguments, got %d", len(args))
			}
			a, err := toMatrix("solve", args, 0)
			if err != nil {
				return nil, err
			}
			b, err := toVector("solve", args, 1)
			if err != nil {
				return nil, err
			}
			x, serr := linalg.Solve(a, b)
			if serr != nil {
				return nil, soerr.New(soerr.Singular, "solve: %v", serr)
			}
			return fromVector(x), nil

		case *value.Function, *value.NativeFunc:
			if len(args) < 3 {
				return nil, soerr.New(soerr.Arity, "solve: root-finding form expects at least 3 arguments (f, a, b), got %d", len(args))
			}
			a, b, err := num2("solve", args[1:3])
			if err != nil {
				return nil, err
			}
			tol, maxIter := rootOptionalArgs(args, 3)
			fn := func(x float64) float64 {
				v, err := apply(args[0], []value.Value{value.Number(x)})
				if err != nil {
					return 0
				}
				f, _ := asFloatValue(v)
				return f
			}
			root, rerr := calc.Bisection(calc.Func(fn), a, b, tol, maxIter)
			if rerr != nil {
				return nil, convergenceErr("solve", rerr)
			}
			return value.Number(root), nil

		default:
			return nil, soerr.New(soerr.Type, "solve: first argument must be a Tensor (linear system) or Function (root finding), got %s", args[0].Type())
		}
	})
}
