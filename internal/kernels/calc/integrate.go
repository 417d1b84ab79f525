package calc

import "math"

// Trapezoid integrates f over [a, b] with n subintervals via the composite
// trapezoidal rule (spec.md §4.8).
func Trapezoid(f Func, a, b float64, n int) float64 {
	h := (b - a) / float64(n)
	sum := (f(a) + f(b)) / 2
	for i := 1; i < n; i++ {
		sum += f(a + float64(i)*h)
	}
	return sum * h
}

// Simpson integrates f over [a, b] with n subintervals (n made even if odd)
// via the composite Simpson's rule (spec.md §4.8).
func Simpson(f Func, a, b float64, n int) float64 {
	if n%2 != 0 {
		n++
	}
	h := (b - a) / float64(n)
	sum := f(a) + f(b)
	for i := 1; i < n; i++ {
		x := a + float64(i)*h
		if i%2 == 0 {
			sum += 2 * f(x)
		} else {
			sum += 4 * f(x)
		}
	}
	return sum * h / 3
}

// Romberg integrates f over [a, b] via Richardson extrapolation of the
// trapezoidal rule, to the given number of levels (spec.md §4.8).
func Romberg(f Func, a, b float64, maxLevel int) float64 {
	r := make([][]float64, maxLevel)
	for i := range r {
		r[i] = make([]float64, maxLevel)
	}
	h := b - a
	r[0][0] = h / 2 * (f(a) + f(b))
	for i := 1; i < maxLevel; i++ {
		h /= 2
		var sum float64
		n := 1 << (i - 1)
		for k := 0; k < n; k++ {
			sum += f(a + h*float64(2*k+1))
		}
		r[i][0] = r[i-1][0]/2 + sum*h
		for j := 1; j <= i; j++ {
			factor := math.Pow(4, float64(j))
			r[i][j] = (factor*r[i][j-1] - r[i-1][j-1]) / (factor - 1)
		}
	}
	return r[maxLevel-1][maxLevel-1]
}

// RombergTol integrates f over [a, b] via Romberg extrapolation, growing the
// table one level at a time until consecutive diagonal entries agree within
// tol or maxLevel is reached (spec.md §4.8's romberg(f, a, b, tol)).
func RombergTol(f Func, a, b, tol float64, maxLevel int) float64 {
	prev := Romberg(f, a, b, 1)
	for level := 2; level <= maxLevel; level++ {
		cur := Romberg(f, a, b, level)
		if math.Abs(cur-prev) < tol {
			return cur
		}
		prev = cur
	}
	return prev
}

// AdaptiveQuad integrates f over [a, b] to within tol using recursive
// adaptive Simpson quadrature (spec.md §4.8).
func AdaptiveQuad(f Func, a, b, tol float64, maxDepth int) float64 {
	fa, fb, fm := f(a), f(b), f((a+b)/2)
	whole := simpsonTerm(a, b, fa, fb, fm)
	return adaptiveSimpsonRec(f, a, b, fa, fb, fm, whole, tol, maxDepth)
}

func simpsonTerm(a, b, fa, fb, fm float64) float64 {
	return (b - a) / 6 * (fa + 4*fm + fb)
}

func adaptiveSimpsonRec(f Func, a, b, fa, fb, fm, whole, tol float64, depth int) float64 {
	mid := (a + b) / 2
	lm := (a + mid) / 2
	rm := (mid + b) / 2
	flm := f(lm)
	frm := f(rm)
	left := simpsonTerm(a, mid, fa, fm, flm)
	right := simpsonTerm(mid, b, fm, fb, frm)
	if depth <= 0 || math.Abs(left+right-whole) <= 15*tol {
		return left + right + (left+right-whole)/15
	}
	return adaptiveSimpsonRec(f, a, mid, fa, fm, flm, left, tol/2, depth-1) +
		adaptiveSimpsonRec(f, mid, b, fm, fb, frm, right, tol/2, depth-1)
}
