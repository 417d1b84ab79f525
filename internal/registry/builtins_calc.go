package registry

import (
	"github.com/eddndev/achronyme-go/internal/kernels/calc"
	"github.com/eddndev/achronyme-go/internal/soerr"
	"github.com/eddndev/achronyme-go/internal/value"
)

// registerCalc wires spec.md §4.8's numerical calculus builtins onto
// package kernels/calc, bridging each SOC Function argument to calc.Func
// via apply.
func registerCalc(r *Registry, apply Apply) {
	toFunc := func(fnArg value.Value) calc.Func {
		return func(x float64) float64 {
			v, err := apply(fnArg, []value.Value{value.Number(x)})
			if err != nil {
				return 0
			}
			f, _ := asFloatValue(v)
			return f
		}
	}

	r.register("diff", 2, 3, func(args []value.Value) (value.Value, error) {
		fn, err := callable("diff", args, 0)
		if err != nil {
			return nil, err
		}
		x, err := number("diff", args, 1)
		if err != nil {
			return nil, err
		}
		h := 1e-5
		if len(args) == 3 {
			h, err = number("diff", args, 2)
			if err != nil {
				return nil, err
			}
		}
		return value.Number(calc.Diff(toFunc(fn), x, h)), nil
	})
	r.register("diff2", 2, 3, func(args []value.Value) (value.Value, error) {
		fn, err := callable("diff2", args, 0)
		if err != nil {
			return nil, err
		}
		x, err := number("diff2", args, 1)
		if err != nil {
			return nil, err
		}
		h := 1e-4
		if len(args) == 3 {
			h, err = number("diff2", args, 2)
			if err != nil {
				return nil, err
			}
		}
		return value.Number(calc.Diff2(toFunc(fn), x, h)), nil
	})
	r.register("diff3", 2, 3, func(args []value.Value) (value.Value, error) {
		fn, err := callable("diff3", args, 0)
		if err != nil {
			return nil, err
		}
		x, err := number("diff3", args, 1)
		if err != nil {
			return nil, err
		}
		h := 1e-3
		if len(args) == 3 {
			h, err = number("diff3", args, 2)
			if err != nil {
				return nil, err
			}
		}
		return value.Number(calc.Diff3(toFunc(fn), x, h)), nil
	})

	r.register("integrate_trapezoid", 3, 4, func(args []value.Value) (value.Value, error) {
		fn, a, b, n, err := integrateArgs("integrate_trapezoid", args, 100)
		if err != nil {
			return nil, err
		}
		return value.Number(calc.Trapezoid(toFunc(fn), a, b, n)), nil
	})
	r.register("integrate_simpson", 3, 4, func(args []value.Value) (value.Value, error) {
		fn, a, b, n, err := integrateArgs("integrate_simpson", args, 100)
		if err != nil {
			return nil, err
		}
		return value.Number(calc.Simpson(toFunc(fn), a, b, n)), nil
	})
	r.register("integrate_romberg", 3, 4, func(args []value.Value) (value.Value, error) {
		fn, a, b, n, err := integrateArgs("integrate_romberg", args, 8)
		if err != nil {
			return nil, err
		}
		return value.Number(calc.Romberg(toFunc(fn), a, b, n)), nil
	})
	r.register("integrate_adaptive", 3, 4, func(args []value.Value) (value.Value, error) {
		fn, err := callable("integrate_adaptive", args, 0)
		if err != nil {
			return nil, err
		}
		a, err := number("integrate_adaptive", args, 1)
		if err != nil {
			return nil, err
		}
		b, err := number("integrate_adaptive", args, 2)
		if err != nil {
			return nil, err
		}
		tol := 1e-8
		if len(args) == 4 {
			tol, err = number("integrate_adaptive", args, 3)
			if err != nil {
				return nil, err
			}
		}
		return value.Number(calc.AdaptiveQuad(toFunc(fn), a, b, tol, 30)), nil
	})

	// integral, simpson, romberg, and quad expose the same kernels above
	// under spec.md §4.8's literal names.
	r.register("integral", 3, 4, func(args []value.Value) (value.Value, error) {
		fn, a, b, n, err := integrateArgs("integral", args, 100)
		if err != nil {
			return nil, err
		}
		return value.Number(calc.Trapezoid(toFunc(fn), a, b, n)), nil
	})
	r.register("simpson", 3, 4, func(args []value.Value) (value.Value, error) {
		fn, a, b, n, err := integrateArgs("simpson", args, 100)
		if err != nil {
			return nil, err
		}
		return value.Number(calc.Simpson(toFunc(fn), a, b, n)), nil
	})
	r.register("romberg", 3, 4, func(args []value.Value) (value.Value, error) {
		fn, err := callable("romberg", args, 0)
		if err != nil {
			return nil, err
		}
		a, err := number("romberg", args, 1)
		if err != nil {
			return nil, err
		}
		b, err := number("romberg", args, 2)
		if err != nil {
			return nil, err
		}
		tol := 1e-8
		if len(args) == 4 {
			tol, err = number("romberg", args, 3)
			if err != nil {
				return nil, err
			}
		}
		return value.Number(calc.RombergTol(toFunc(fn), a, b, tol, 16)), nil
	})
	r.register("quad", 3, 4, func(args []value.Value) (value.Value, error) {
		fn, err := callable("quad", args, 0)
		if err != nil {
			return nil, err
		}
		a, err := number("quad", args, 1)
		if err != nil {
			return nil, err
		}
		b, err := number("quad", args, 2)
		if err != nil {
			return nil, err
		}
		tol := 1e-8
		if len(args) == 4 {
			tol, err = number("quad", args, 3)
			if err != nil {
				return nil, err
			}
		}
		return value.Number(calc.AdaptiveQuad(toFunc(fn), a, b, tol, 30)), nil
	})
	// newton takes an explicit derivative function fp, unlike root_newton's
	// numerically differentiated form (spec.md §4.8).
	r.register("newton", 3, 5, func(args []value.Value) (value.Value, error) {
		fn, err := callable("newton", args, 0)
		if err != nil {
			return nil, err
		}
		fp, err := callable("newton", args, 1)
		if err != nil {
			return nil, err
		}
		x0, err := number("newton", args, 2)
		if err != nil {
			return nil, err
		}
		tol, maxIter := rootOptionalArgs(args, 3)
		root, rerr := calc.NewtonWithDerivative(toFunc(fn), toFunc(fp), x0, tol, maxIter)
		if rerr != nil {
			return nil, convergenceErr("newton", rerr)
		}
		return value.Number(root), nil
	})
	r.register("secant", 3, 5, func(args []value.Value) (value.Value, error) {
		fn, err := callable("secant", args, 0)
		if err != nil {
			return nil, err
		}
		x0, x1, err := num2("secant", args[1:3])
		if err != nil {
			return nil, err
		}
		tol, maxIter := rootOptionalArgs(args, 3)
		root, rerr := calc.Secant(toFunc(fn), x0, x1, tol, maxIter)
		if rerr != nil {
			return nil, convergenceErr("secant", rerr)
		}
		return value.Number(root), nil
	})
	// solve is not registered here: it is registered once, in
	// builtins_solve.go, where registerSolveDispatch picks a bisection
	// root-find or a linear solve by argument shape (callable+two bounds
	// vs. matrix+vector).

	r.register("root_bisection", 3, 5, func(args []value.Value) (value.Value, error) {
		fn, err := callable("root_bisection", args, 0)
		if err != nil {
			return nil, err
		}
		a, b, err := num2("root_bisection", args[1:3])
		if err != nil {
			return nil, err
		}
		tol, maxIter := rootOptionalArgs(args, 3)
		root, rerr := calc.Bisection(toFunc(fn), a, b, tol, maxIter)
		if rerr != nil {
			return nil, convergenceErr("root_bisection", rerr)
		}
		return value.Number(root), nil
	})
	r.register("root_newton", 2, 4, func(args []value.Value) (value.Value, error) {
		fn, err := callable("root_newton", args, 0)
		if err != nil {
			return nil, err
		}
		x0, err := number("root_newton", args, 1)
		if err != nil {
			return nil, err
		}
		tol, maxIter := rootOptionalArgs(args, 2)
		root, rerr := calc.Newton(toFunc(fn), x0, tol, maxIter)
		if rerr != nil {
			return nil, convergenceErr("root_newton", rerr)
		}
		return value.Number(root), nil
	})
	r.register("root_secant", 3, 5, func(args []value.Value) (value.Value, error) {
		fn, err := callable("root_secant", args, 0)
		if err != nil {
			return nil, err
		}
		x0, x1, err := num2("root_secant", args[1:3])
		if err != nil {
			return nil, err
		}
		tol, maxIter := rootOptionalArgs(args, 3)
		root, rerr := calc.Secant(toFunc(fn), x0, x1, tol, maxIter)
		if rerr != nil {
			return nil, convergenceErr("root_secant", rerr)
		}
		return value.Number(root), nil
	})
}

func asFloatValue(v value.Value) (float64, bool) {
	switch x := v.(type) {
	case value.Number:
		return float64(x), true
	default:
		return 0, false
	}
}

func integrateArgs(name string, args []value.Value, defaultN int) (value.Value, float64, float64, int, error) {
	fn, err := callable(name, args, 0)
	if err != nil {
		return nil, 0, 0, 0, err
	}
	a, err := number(name, args, 1)
	if err != nil {
		return nil, 0, 0, 0, err
	}
	b, err := number(name, args, 2)
	if err != nil {
		return nil, 0, 0, 0, err
	}
	n := defaultN
	if len(args) == 4 {
		nf, err := number(name, args, 3)
		if err != nil {
			return nil, 0, 0, 0, err
		}
		n = int(nf)
	}
	return fn, a, b, n, nil
}

func rootOptionalArgs(args []value.Value, from int) (tol float64, maxIter int) {
	tol, maxIter = 1e-10, 200
	if len(args) > from {
		if v, err := number("", args, from); err == nil {
			tol = v
		}
	}
	if len(args) > from+1 {
		if v, err := number("", args, from+1); err == nil {
			maxIter = int(v)
		}
	}
	return tol, maxIter
}

func convergenceErr(name string, cause error) error {
	if cause == calc.ErrDomain {
		return soerr.New(soerr.Domain, "%s: %v", name, cause)
	}
	return soerr.New(soerr.Convergence, "%s: %v", name, cause)
}
