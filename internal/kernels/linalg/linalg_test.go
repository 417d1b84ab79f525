package linalg

import (
	"math"
	"testing"
)

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func matApproxEqual(t *testing.T, got, want [][]float64, tol float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("row count mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if len(got[i]) != len(want[i]) {
			t.Fatalf("row %d col count mismatch: got %d, want %d", i, len(got[i]), len(want[i]))
		}
		for j := range got[i] {
			if !approxEqual(got[i][j], want[i][j], tol) {
				t.Fatalf("[%d][%d]: got %v, want %v", i, j, got[i][j], want[i][j])
			}
		}
	}
}

func TestLUReconstructsPA(t *testing.T) {
	a := [][]float64{
		{2, 1, 1},
		{4, 3, 3},
		{8, 7, 9},
	}
	res, err := LU(a)
	if err != nil {
		t.Fatalf("LU: %v", err)
	}
	lu := matMul(res.L, res.U)
	pa := make([][]float64, len(a))
	for i, p := range res.Perm {
		pa[i] = a[p]
	}
	matApproxEqual(t, lu, pa, 1e-9)
}

func TestSolveLinearSystem(t *testing.T) {
	a := [][]float64{
		{2, 1},
		{1, 3},
	}
	b := []float64{3, 5}
	x, err := Solve(a, b)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	got := matVec(a, x)
	for i := range got {
		if !approxEqual(got[i], b[i], 1e-9) {
			t.Fatalf("A*x != b: got %v, want %v", got, b)
		}
	}
}

func TestSolveSingularReturnsError(t *testing.T) {
	a := [][]float64{
		{1, 2},
		{2, 4},
	}
	if _, err := Solve(a, []float64{1, 2}); err == nil {
		t.Fatal("expected ErrSingular for a singular matrix")
	}
}

func TestDeterminant(t *testing.T) {
	a := [][]float64{
		{1, 2},
		{3, 4},
	}
	det, err := Det(a)
	if err != nil {
		t.Fatalf("Det: %v", err)
	}
	if !approxEqual(det, -2, 1e-9) {
		t.Fatalf("got %v, want -2", det)
	}
}

func TestInverseRoundTrips(t *testing.T) {
	a := [][]float64{
		{4, 7},
		{2, 6},
	}
	inv, err := Inverse(a)
	if err != nil {
		t.Fatalf("Inverse: %v", err)
	}
	product := matMul(a, inv)
	matApproxEqual(t, product, identity(2), 1e-9)
}

func TestQRReconstructsA(t *testing.T) {
	a := [][]float64{
		{1, 2},
		{3, 4},
		{5, 6},
	}
	res := QR(a)
	got := matMul(res.Q, res.R)
	matApproxEqual(t, got, a, 1e-9)
}

func TestCholeskyOnPositiveDefinite(t *testing.T) {
	a := [][]float64{
		{4, 12, -16},
		{12, 37, -43},
		{-16, -43, 98},
	}
	l, err := Cholesky(a)
	if err != nil {
		t.Fatalf("Cholesky: %v", err)
	}
	lt := transpose(l)
	got := matMul(l, lt)
	matApproxEqual(t, got, a, 1e-6)
}

func TestCholeskyRejectsNonPositiveDefinite(t *testing.T) {
	a := [][]float64{
		{1, 2},
		{2, 1},
	}
	if _, err := Cholesky(a); err == nil {
		t.Fatal("expected an error for a non-positive-definite matrix")
	}
}

func TestEigenSymmetricReconstructsSpectrum(t *testing.T) {
	a := [][]float64{
		{2, 1},
		{1, 2},
	}
	values, _ := EigenSymmetric(a, 100)
	sum := values[0] + values[1]
	if !approxEqual(sum, 4, 1e-6) {
		t.Fatalf("trace mismatch: got sum %v, want 4", sum)
	}
}

func TestSVDOfIdentityHasUnitSingularValues(t *testing.T) {
	a := [][]float64{
		{1, 0},
		{0, 1},
	}
	res := SVD(a, 200)
	if len(res.S) != 2 {
		t.Fatalf("expected 2 singular values, got %d", len(res.S))
	}
	for _, s := range res.S {
		if !approxEqual(s, 1, 1e-6) {
			t.Fatalf("singular values of the identity should be 1, got %v", res.S)
		}
	}
}
