// Package calc implements spec.md §4.8's numerical calculus kernels:
// finite-difference derivatives, quadrature, and root finding. As with
// package linalg and dsp, nothing in the retrieved corpus exercises a
// numerics library for this, so the package is stdlib-only (math) — see
// DESIGN.md.
package calc

// Func is a scalar real function, the shape every calc kernel operates on.
type Func func(x float64) float64

// Diff approximates f'(x) with a central difference (spec.md §4.8).
func Diff(f Func, x, h float64) float64 {
	return (f(x+h) - f(x-h)) / (2 * h)
}

// Diff2 approximates f''(x) with a central second difference.
func Diff2(f Func, x, h float64) float64 {
	return (f(x+h) - 2*f(x) + f(x-h)) / (h * h)
}

// Diff3 approximates f'''(x) with a central third difference.
func Diff3(f Func, x, h float64) float64 {
	return (f(x+2*h) - 2*f(x+h) + 2*f(x-h) - f(x-2*h)) / (2 * h * h * h)
}
