package registry

import (
	"github.com/eddndev/achronyme-go/internal/kernels/linalg"
	"github.com/eddndev/achronyme-go/internal/soerr"
	"github.com/eddndev/achronyme-go/internal/value"
)

// registerLinalg wires spec.md §4.6's dense linear algebra builtins onto
// package kernels/linalg, translating that package's Go errors into the
// closed soerr.Kind taxonomy (Singular, NotPositiveDefinite).
func registerLinalg(r *Registry) {
	r.register("lu", 1, 1, func(args []value.Value) (value.Value, error) {
		a, err := toMatrix("lu", args, 0)
		if err != nil {
			return nil, err
		}
		res, lerr := linalg.LU(a)
		if lerr != nil {
			return nil, soerr.New(soerr.Singular, "lu: %v", lerr)
		}
		rec := value.NewRecord()
		rec.Fields["L"] = fromMatrix(res.L)
		rec.Fields["U"] = fromMatrix(res.U)
		perm := make([]float64, len(res.Perm))
		for i, p := range res.Perm {
			perm[i] = float64(p)
		}
		rec.Fields["P"] = fromVector(perm)
		return rec, nil
	})

	r.register("qr", 1, 1, func(args []value.Value) (value.Value, error) {
		a, err := toMatrix("qr", args, 0)
		if err != nil {
			return nil, err
		}
		res := linalg.QR(a)
		rec := value.NewRecord()
		rec.Fields["Q"] = fromMatrix(res.Q)
		rec.Fields["R"] = fromMatrix(res.R)
		return rec, nil
	})

	r.register("cholesky", 1, 1, func(args []value.Value) (value.Value, error) {
		a, err := toMatrix("cholesky", args, 0)
		if err != nil {
			return nil, err
		}
		l, lerr := linalg.Cholesky(a)
		if lerr != nil {
			return nil, soerr.New(soerr.NotPositiveDefinite, "cholesky: %v", lerr)
		}
		return fromMatrix(l), nil
	})

	r.register("svd", 1, 1, func(args []value.Value) (value.Value, error) {
		a, err := toMatrix("svd", args, 0)
		if err != nil {
			return nil, err
		}
		res := linalg.SVD(a, 200)
		rec := value.NewRecord()
		rec.Fields["U"] = fromMatrix(res.U)
		rec.Fields["S"] = fromVector(res.S)
		rec.Fields["V"] = fromMatrix(res.V)
		return rec, nil
	})

	r.register("eigen_symmetric", 1, 1, func(args []value.Value) (value.Value, error) {
		a, err := toMatrix("eigen_symmetric", args, 0)
		if err != nil {
			return nil, err
		}
		values, vectors := linalg.EigenSymmetric(a, 200)
		rec := value.NewRecord()
		rec.Fields["values"] = fromVector(values)
		rec.Fields["vectors"] = fromMatrix(vectors)
		return rec, nil
	})

	// eigenvalues and eigenvectors both take the symmetric fast path
	// (Jacobi rotation, real-valued) when the input is symmetric, and the
	// general complex-capable path (shifted QR to real Schur form plus
	// inverse iteration) otherwise, per spec.md §4.8.
	r.register("eigenvalues", 1, 1, func(args []value.Value) (value.Value, error) {
		a, err := toMatrix("eigenvalues", args, 0)
		if err != nil {
			return nil, err
		}
		if linalg.IsSymmetric(a, 1e-9) {
			values, _ := linalg.EigenSymmetric(a, 200)
			return fromComplexVector(toComplex128s(values)), nil
		}
		values, _ := linalg.Eigen(a, 500)
		return fromComplexVector(values), nil
	})
	r.register("eigenvectors", 1, 1, func(args []value.Value) (value.Value, error) {
		a, err := toMatrix("eigenvectors", args, 0)
		if err != nil {
			return nil, err
		}
		rec := value.NewRecord()
		if linalg.IsSymmetric(a, 1e-9) {
			values, vectors := linalg.EigenSymmetric(a, 200)
			rec.Fields["values"] = fromComplexVector(toComplex128s(values))
			rec.Fields["vectors"] = fromComplexMatrix(toComplex128Matrix(vectors))
			return rec, nil
		}
		values, vectors := linalg.Eigen(a, 500)
		rec.Fields["values"] = fromComplexVector(values)
		rec.Fields["vectors"] = fromComplexMatrix(vectors)
		return rec, nil
	})
	r.register("trace", 1, 1, func(args []value.Value) (value.Value, error) {
		a, err := toMatrix("trace", args, 0)
		if err != nil {
			return nil, err
		}
		return value.Number(linalg.Trace(a)), nil
	})

	r.register("power_iteration", 1, 2, func(args []value.Value) (value.Value, error) {
		a, err := toMatrix("power_iteration", args, 0)
		if err != nil {
			return nil, err
		}
		maxIter := 1000
		if len(args) == 2 {
			n, err := number("power_iteration", args, 1)
			if err != nil {
				return nil, err
			}
			maxIter = int(n)
		}
		lambda, vector := linalg.PowerIteration(a, maxIter, 1e-10)
		rec := value.NewRecord()
		rec.Fields["value"] = value.Number(lambda)
		rec.Fields["vector"] = fromVector(vector)
		return rec, nil
	})

	r.register("inverse", 1, 1, func(args []value.Value) (value.Value, error) {
		a, err := toMatrix("inverse", args, 0)
		if err != nil {
			return nil, err
		}
		inv, ierr := linalg.Inverse(a)
		if ierr != nil {
			return nil, soerr.New(soerr.Singular, "inverse: %v", ierr)
		}
		return fromMatrix(inv), nil
	})

	r.register("det", 1, 1, func(args []value.Value) (value.Value, error) {
		a, err := toMatrix("det", args, 0)
		if err != nil {
			return nil, err
		}
		d, _ := linalg.Det(a)
		return value.Number(d), nil
	})

	r.register("is_symmetric", 1, 1, func(args []value.Value) (value.Value, error) {
		a, err := toMatrix("is_symmetric", args, 0)
		if err != nil {
			return nil, err
		}
		return value.Bool(linalg.IsSymmetric(a, 1e-9)), nil
	})

	r.register("is_positive_definite", 1, 1, func(args []value.Value) (value.Value, error) {
		a, err := toMatrix("is_positive_definite", args, 0)
		if err != nil {
			return nil, err
		}
		return value.Bool(linalg.IsPositiveDefinite(a)), nil
	})
}

// toComplex128s and toComplex128Matrix lift the symmetric eigensolver's
// real-valued results onto the Complex representation spec.md §4.8
// requires eigenvalues/eigenvectors to return uniformly.
func toComplex128s(v []float64) []complex128 {
	out := make([]complex128, len(v))
	for i, x := range v {
		out[i] = complex(x, 0)
	}
	return out
}

func toComplex128Matrix(m [][]float64) [][]complex128 {
	out := make([][]complex128, len(m))
	for i, row := range m {
		out[i] = toComplex128s(row)
	}
	return out
}
