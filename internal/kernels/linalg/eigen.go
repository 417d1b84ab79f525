package linalg

import (
	"errors"
	"math"
	"math/cmplx"
)

// EigenSymmetric computes eigenvalues and eigenvectors of a symmetric
// matrix via the classical Jacobi rotation method, rotating away the
// largest off-diagonal entry at each step (spec.md §4.6's symmetric
// fast path), converging quadratically and returning eigenvectors as
// columns of v.
func EigenSymmetric(a [][]float64, maxIter int) (values []float64, vectors [][]float64) {
	n := len(a)
	m := cloneMatrix(a)
	v := identity(n)

	for iter := 0; iter < maxIter; iter++ {
		p, q, maxOff := 0, 1, 0.0
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if math.Abs(m[i][j]) > maxOff {
					maxOff = math.Abs(m[i][j])
					p, q = i, j
				}
			}
		}
		if maxOff < 1e-12 {
			break
		}
		theta := (m[q][q] - m[p][p]) / (2 * m[p][q])
		t := sign1(theta) / (math.Abs(theta) + math.Sqrt(theta*theta+1))
		if theta == 0 {
			t = 1
		}
		c := 1 / math.Sqrt(t*t+1)
		s := t * c

		mpp, mqq, mpq := m[p][p], m[q][q], m[p][q]
		m[p][p] = c*c*mpp - 2*s*c*mpq + s*s*mqq
		m[q][q] = s*s*mpp + 2*s*c*mpq + c*c*mqq
		m[p][q] = 0
		m[q][p] = 0
		for i := 0; i < n; i++ {
			if i != p && i != q {
				mip, miq := m[i][p], m[i][q]
				m[i][p] = c*mip - s*miq
				m[p][i] = m[i][p]
				m[i][q] = s*mip + c*miq
				m[q][i] = m[i][q]
			}
		}
		for i := 0; i < n; i++ {
			vip, viq := v[i][p], v[i][q]
			v[i][p] = c*vip - s*viq
			v[i][q] = s*vip + c*viq
		}
	}

	values = make([]float64, n)
	for i := range values {
		values[i] = m[i][i]
	}
	sortEigenPairs(values, v)
	return values, v
}

func sign1(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}

// sortEigenPairs sorts eigenvalues descending, permuting the corresponding
// eigenvector columns of v to match.
func sortEigenPairs(values []float64, v [][]float64) {
	n := len(values)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < n; i++ {
		best := i
		for j := i + 1; j < n; j++ {
			if values[idx[j]] > values[idx[best]] {
				best = j
			}
		}
		idx[i], idx[best] = idx[best], idx[i]
	}
	newValues := make([]float64, n)
	newV := make([][]float64, n)
	for i := range newV {
		newV[i] = make([]float64, n)
	}
	for col, src := range idx {
		newValues[col] = values[src]
		for row := 0; row < n; row++ {
			newV[row][col] = v[row][src]
		}
	}
	copy(values, newValues)
	for i := range v {
		copy(v[i], newV[i])
	}
}

// PowerIteration estimates the dominant eigenvalue/eigenvector pair of a via
// repeated multiplication and normalization (spec.md §4.6).
func PowerIteration(a [][]float64, maxIter int, tol float64) (value float64, vector []float64) {
	n := len(a)
	v := make([]float64, n)
	for i := range v {
		v[i] = 1
	}
	normalize(v)
	var lambda float64
	for iter := 0; iter < maxIter; iter++ {
		nv := matVec(a, v)
		newLambda := dot(v, nv)
		normalize(nv)
		if math.Abs(newLambda-lambda) < tol {
			v = nv
			lambda = newLambda
			break
		}
		v = nv
		lambda = newLambda
	}
	return lambda, v
}

// Eigen computes the eigenvalues and eigenvectors of a general real square
// matrix (spec.md §4.8's eigenvalues/eigenvectors). It drives single-shift
// QR iteration to a real Schur form — upper triangular except for 2x2
// blocks along the diagonal where the matrix has a complex-conjugate
// eigenvalue pair — reads the spectrum off that form with explicit 2x2
// handling (so a genuinely complex pair comes back as a Complex conjugate
// pair rather than a meaningless diagonal entry), and recovers each
// eigenvector by complex inverse iteration against the original matrix.
func Eigen(a [][]float64, maxIter int) (values []complex128, vectors [][]complex128) {
	n := len(a)
	t := cloneMatrix(a)
	for iter := 0; iter < maxIter; iter++ {
		mu := t[n-1][n-1]
		shifted := cloneMatrix(t)
		for i := 0; i < n; i++ {
			shifted[i][i] -= mu
		}
		qr := QR(shifted)
		t = matMul(qr.R, qr.Q)
		for i := 0; i < n; i++ {
			t[i][i] += mu
		}
		if iter%8 == 7 && quasiTriangularResidual(t) < 1e-10 {
			break
		}
	}
	values = schurEigenvalues(t)
	vectors = eigenvectorsFor(a, values)
	return values, vectors
}

// quasiTriangularResidual sums the magnitude of every entry more than one
// row below the diagonal — these must vanish for t to be a real Schur
// form; entries exactly one row below the diagonal are legitimate (they
// mark a 2x2 complex-conjugate-pair block) and are excluded.
func quasiTriangularResidual(t [][]float64) float64 {
	var s float64
	for i := range t {
		for j := 0; j < i-1; j++ {
			s += math.Abs(t[i][j])
		}
	}
	return s
}

// schurEigenvalues reads eigenvalues off a real Schur form, resolving each
// 2x2 diagonal block's pair of roots (real or complex) from its trace and
// determinant.
func schurEigenvalues(t [][]float64) []complex128 {
	n := len(t)
	values := make([]complex128, n)
	for i := 0; i < n; {
		isBlock := i+1 < n && math.Abs(t[i+1][i]) > 1e-9*(math.Abs(t[i][i])+math.Abs(t[i+1][i+1])+1e-300)
		if !isBlock {
			values[i] = complex(t[i][i], 0)
			i++
			continue
		}
		a, b, c, d := t[i][i], t[i][i+1], t[i+1][i], t[i+1][i+1]
		tr := a + d
		det := a*d - b*c
		disc := tr*tr - 4*det
		if disc >= 0 {
			sq := math.Sqrt(disc)
			values[i] = complex((tr+sq)/2, 0)
			values[i+1] = complex((tr-sq)/2, 0)
		} else {
			sq := math.Sqrt(-disc)
			values[i] = complex(tr/2, sq/2)
			values[i+1] = complex(tr/2, -sq/2)
		}
		i += 2
	}
	return values
}

// eigenvectorsFor recovers one eigenvector per eigenvalue via complex
// inverse iteration directly against the original (unshifted) matrix,
// placing each as a column of the returned n×n matrix.
func eigenvectorsFor(a [][]float64, values []complex128) [][]complex128 {
	n := len(values)
	vectors := make([][]complex128, n)
	for i := range vectors {
		vectors[i] = make([]complex128, n)
	}
	for col, lambda := range values {
		v := eigenvectorFor(a, lambda, 25)
		for row := 0; row < n; row++ {
			vectors[row][col] = v[row]
		}
	}
	return vectors
}

// eigenvectorFor estimates the eigenvector for lambda by repeatedly
// solving (A − (λ+ε)I) v_{k+1} = v_k and renormalizing: the solution is
// dominated by the component along the eigenvector whose eigenvalue is
// closest to λ, which converges quickly since λ is already an accurate
// Schur-form estimate.
func eigenvectorFor(a [][]float64, lambda complex128, iters int) []complex128 {
	n := len(a)
	shifted := make([][]complex128, n)
	for i := range shifted {
		shifted[i] = make([]complex128, n)
		for j := range shifted[i] {
			shifted[i][j] = complex(a[i][j], 0)
		}
		shifted[i][i] -= lambda + complex(1e-10, 0)
	}
	v := make([]complex128, n)
	for i := range v {
		v[i] = complex(1, 0)
	}
	normalizeComplex(v)
	for k := 0; k < iters; k++ {
		nv, err := solveComplexLinear(shifted, v)
		if err != nil {
			break
		}
		v = nv
		normalizeComplex(v)
	}
	return v
}

var errSingularComplex = errors.New("singular complex system in inverse iteration")

// solveComplexLinear solves A x = b over complex128 via Gaussian
// elimination with partial pivoting, the same pivoting strategy LU/Solve
// use for the real case.
func solveComplexLinear(a [][]complex128, b []complex128) ([]complex128, error) {
	n := len(a)
	m := make([][]complex128, n)
	for i := range m {
		m[i] = append([]complex128(nil), a[i]...)
	}
	x := append([]complex128(nil), b...)
	for col := 0; col < n; col++ {
		pivot := col
		maxAbs := cmplx.Abs(m[col][col])
		for row := col + 1; row < n; row++ {
			if mag := cmplx.Abs(m[row][col]); mag > maxAbs {
				pivot, maxAbs = row, mag
			}
		}
		if maxAbs < 1e-300 {
			return nil, errSingularComplex
		}
		m[col], m[pivot] = m[pivot], m[col]
		x[col], x[pivot] = x[pivot], x[col]
		for row := col + 1; row < n; row++ {
			f := m[row][col] / m[col][col]
			for c := col; c < n; c++ {
				m[row][c] -= f * m[col][c]
			}
			x[row] -= f * x[col]
		}
	}
	out := make([]complex128, n)
	for row := n - 1; row >= 0; row-- {
		s := x[row]
		for c := row + 1; c < n; c++ {
			s -= m[row][c] * out[c]
		}
		out[row] = s / m[row][row]
	}
	return out, nil
}

func normalizeComplex(v []complex128) {
	var n float64
	for _, x := range v {
		n += real(x)*real(x) + imag(x)*imag(x)
	}
	n = math.Sqrt(n)
	if n == 0 {
		return
	}
	for i := range v {
		v[i] /= complex(n, 0)
	}
}

func matVec(a [][]float64, x []float64) []float64 {
	out := make([]float64, len(a))
	for i, row := range a {
		var s float64
		for j, v := range row {
			s += v * x[j]
		}
		out[i] = s
	}
	return out
}

func matMul(a, b [][]float64) [][]float64 {
	n := len(a)
	k := len(b)
	m := len(b[0])
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, m)
		for p := 0; p < k; p++ {
			if a[i][p] == 0 {
				continue
			}
			for j := 0; j < m; j++ {
				out[i][j] += a[i][p] * b[p][j]
			}
		}
	}
	return out
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func normalize(v []float64) {
	var n float64
	for _, x := range v {
		n += x * x
	}
	n = math.Sqrt(n)
	if n == 0 {
		return
	}
	for i := range v {
		v[i] /= n
	}
}
