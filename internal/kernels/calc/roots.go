package calc

import (
	"errors"
	"math"
)

// ErrConvergence is returned when a root finder exhausts its iteration
// budget without satisfying its tolerance (spec.md §7's Convergence kind).
var ErrConvergence = errors.New("root finder did not converge")

// ErrDomain is returned when a method's preconditions are violated (e.g.
// bisection's bracket not actually bracketing a root).
var ErrDomain = errors.New("invalid domain for root finding")

// Bisection finds a root of f in [a, b], requiring f(a) and f(b) to have
// opposite signs (spec.md §4.8).
func Bisection(f Func, a, b, tol float64, maxIter int) (float64, error) {
	fa, fb := f(a), f(b)
	if fa == 0 {
		return a, nil
	}
	if fb == 0 {
		return b, nil
	}
	if sameSign(fa, fb) {
		return 0, ErrDomain
	}
	for i := 0; i < maxIter; i++ {
		mid := (a + b) / 2
		fm := f(mid)
		if math.Abs(fm) < tol || (b-a)/2 < tol {
			return mid, nil
		}
		if sameSign(fm, fa) {
			a, fa = mid, fm
		} else {
			b, fb = mid, fm
		}
	}
	return 0, ErrConvergence
}

func sameSign(a, b float64) bool { return (a > 0 && b > 0) || (a < 0 && b < 0) }

// Newton finds a root of f near x0 using Newton-Raphson with a numerically
// approximated derivative (spec.md §4.8).
func Newton(f Func, x0, tol float64, maxIter int) (float64, error) {
	x := x0
	h := 1e-6
	for i := 0; i < maxIter; i++ {
		fx := f(x)
		if math.Abs(fx) < tol {
			return x, nil
		}
		deriv := Diff(f, x, h)
		if math.Abs(deriv) < 1e-14 {
			return 0, ErrConvergence
		}
		x -= fx / deriv
	}
	return 0, ErrConvergence
}

// NewtonWithDerivative finds a root of f near x0 using Newton-Raphson with
// an explicitly supplied derivative fp, rather than Newton's numerically
// approximated one (spec.md §4.8's newton(f, fp, x0, tol, max_iter)).
func NewtonWithDerivative(f, fp Func, x0, tol float64, maxIter int) (float64, error) {
	x := x0
	for i := 0; i < maxIter; i++ {
		fx := f(x)
		if math.Abs(fx) < tol {
			return x, nil
		}
		deriv := fp(x)
		if math.Abs(deriv) < 1e-14 {
			return 0, ErrConvergence
		}
		x -= fx / deriv
	}
	return 0, ErrConvergence
}

// Secant finds a root of f using the secant method seeded with x0, x1
// (spec.md §4.8).
func Secant(f Func, x0, x1, tol float64, maxIter int) (float64, error) {
	f0, f1 := f(x0), f(x1)
	for i := 0; i < maxIter; i++ {
		if math.Abs(f1) < tol {
			return x1, nil
		}
		if f1 == f0 {
			return 0, ErrConvergence
		}
		x2 := x1 - f1*(x1-x0)/(f1-f0)
		x0, f0 = x1, f1
		x1 = x2
		f1 = f(x1)
	}
	return 0, ErrConvergence
}
