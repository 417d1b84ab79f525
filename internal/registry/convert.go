package registry

import (
	"github.com/eddndev/achronyme-go/internal/soerr"
	"github.com/eddndev/achronyme-go/internal/value"
)

// toMatrix converts a rank-2 Tensor to a [][]float64 for the linalg/
// optimize kernels, which operate on plain Go slices.
func toMatrix(name string, args []value.Value, i int) ([][]float64, error) {
	t, err := tensor(name, args, i)
	if err != nil {
		return nil, err
	}
	if t.Rank() != 2 {
		return nil, soerr.New(soerr.Shape, "%s: argument %d must be a rank-2 Tensor, got rank %d", name, i+1, t.Rank())
	}
	rows := t.Shape[0]
	out := make([][]float64, rows)
	for r := 0; r < rows; r++ {
		out[r] = append([]float64(nil), t.Row(r)...)
	}
	return out, nil
}

func fromMatrix(m [][]float64) *value.Tensor {
	return value.NewMatrix(m)
}

func toVector(name string, args []value.Value, i int) ([]float64, error) {
	t, err := tensor(name, args, i)
	if err != nil {
		return nil, err
	}
	if t.Rank() != 1 {
		return nil, soerr.New(soerr.Shape, "%s: argument %d must be a vector, got rank %d", name, i+1, t.Rank())
	}
	return append([]float64(nil), t.Data...), nil
}

func fromVector(v []float64) *value.Tensor {
	return value.NewVector(v...)
}

func toComplexVector(name string, args []value.Value, i int) ([]complex128, error) {
	switch x := args[i].(type) {
	case *value.ComplexTensor:
		if x.Rank() != 1 {
			return nil, soerr.New(soerr.Shape, "%s: argument %d must be a ComplexTensor vector", name, i+1)
		}
		return append([]complex128(nil), x.Data...), nil
	case *value.Tensor:
		if x.Rank() != 1 {
			return nil, soerr.New(soerr.Shape, "%s: argument %d must be a vector", name, i+1)
		}
		out := make([]complex128, len(x.Data))
		for j, d := range x.Data {
			out[j] = complex(d, 0)
		}
		return out, nil
	default:
		return nil, soerr.New(soerr.Type, "%s: argument %d must be a Tensor or ComplexTensor, got %s", name, i+1, args[i].Type())
	}
}

func fromComplexVector(v []complex128) *value.ComplexTensor {
	return value.NewComplexVector(v...)
}

func fromComplexMatrix(m [][]complex128) *value.ComplexTensor {
	rows := len(m)
	cols := 0
	if rows > 0 {
		cols = len(m[0])
	}
	t := value.NewComplexTensor(rows, cols)
	for i, row := range m {
		for j, v := range row {
			t.Set2(i, j, v)
		}
	}
	return t
}
