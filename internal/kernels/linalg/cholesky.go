package linalg

import (
	"errors"
	"math"
)

// ErrNotPositiveDefinite is returned by Cholesky when a would require
// taking the square root of a non-positive pivot (spec.md §7's
// NotPositiveDefinite error kind).
var ErrNotPositiveDefinite = errors.New("matrix is not positive definite")

// Cholesky computes the lower-triangular L such that A = L L^T, requiring a
// symmetric positive-definite input (spec.md §4.6).
func Cholesky(a [][]float64) ([][]float64, error) {
	n := len(a)
	l := make([][]float64, n)
	for i := range l {
		l[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			sum := a[i][j]
			for k := 0; k < j; k++ {
				sum -= l[i][k] * l[j][k]
			}
			if i == j {
				if sum <= 0 {
					return nil, ErrNotPositiveDefinite
				}
				l[i][j] = math.Sqrt(sum)
			} else {
				l[i][j] = sum / l[j][j]
			}
		}
	}
	return l, nil
}

// IsSymmetric reports whether a equals its own transpose within tol.
func IsSymmetric(a [][]float64, tol float64) bool {
	n := len(a)
	for i := 0; i < n; i++ {
		if len(a[i]) != n {
			return false
		}
		for j := i + 1; j < n; j++ {
			if math.Abs(a[i][j]-a[j][i]) > tol {
				return false
			}
		}
	}
	return true
}

// IsPositiveDefinite reports whether a is symmetric positive definite by
// attempting a Cholesky factorization (spec.md §4.6).
func IsPositiveDefinite(a [][]float64) bool {
	if !IsSymmetric(a, 1e-9) {
		return false
	}
	_, err := Cholesky(a)
	return err == nil
}
