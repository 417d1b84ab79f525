package registry

import (
	"github.com/eddndev/achronyme-go/internal/soerr"
	"github.com/eddndev/achronyme-go/internal/value"
)

// registerTensor wires spec.md §4.6's shape-manipulation and construction
// kernels; broadcasting/elementwise arithmetic itself lives in the
// evaluator's operator dispatch, not here.
func registerTensor(r *Registry) {
	r.register("shape", 1, 1, func(args []value.Value) (value.Value, error) {
		t, err := vec1("shape", args)
		if err != nil {
			return nil, err
		}
		data := make([]float64, len(t.Shape))
		for i, d := range t.Shape {
			data[i] = float64(d)
		}
		return value.NewVector(data...), nil
	})
	r.register("reshape", 2, 2, func(args []value.Value) (value.Value, error) {
		t, err := vec1("reshape", args)
		if err != nil {
			return nil, err
		}
		shapeVec, err := tensor("reshape", args, 1)
		if err != nil {
			return nil, err
		}
		shape := make([]int, len(shapeVec.Data))
		for i, d := range shapeVec.Data {
			shape[i] = int(d)
		}
		if value.Size(shape) != len(t.Data) {
			return nil, soerr.New(soerr.Shape, "reshape: cannot reshape %s into %s", value.Describe(t.Shape), value.Describe(shape))
		}
		data := append([]float64(nil), t.Data...)
		return value.NewTensorFromData(shape, data), nil
	})
	r.register("transpose", 1, 1, func(args []value.Value) (value.Value, error) {
		t, err := vec1("transpose", args)
		if err != nil {
			return nil, err
		}
		if t.Rank() != 2 {
			return nil, soerr.New(soerr.Shape, "transpose: expected a rank-2 Tensor, got rank %d", t.Rank())
		}
		rows, cols := t.Shape[0], t.Shape[1]
		out := value.NewTensor(cols, rows)
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				out.Set2(j, i, t.At2(i, j))
			}
		}
		return out, nil
	})
	r.register("zeros", 1, -1, func(args []value.Value) (value.Value, error) {
		shape, err := shapeFromArgs("zeros", args)
		if err != nil {
			return nil, err
		}
		return value.NewTensor(shape...), nil
	})
	r.register("ones", 1, -1, func(args []value.Value) (value.Value, error) {
		shape, err := shapeFromArgs("ones", args)
		if err != nil {
			return nil, err
		}
		t := value.NewTensor(shape...)
		for i := range t.Data {
			t.Data[i] = 1
		}
		return t, nil
	})
	r.register("fill", 2, 2, func(args []value.Value) (value.Value, error) {
		shape, err := shapeFromArgs("fill", args[:1])
		if err != nil {
			return nil, err
		}
		v, err := number("fill", args, 1)
		if err != nil {
			return nil, err
		}
		t := value.NewTensor(shape...)
		for i := range t.Data {
			t.Data[i] = v
		}
		return t, nil
	})
	r.register("identity", 1, 1, func(args []value.Value) (value.Value, error) {
		n, err := number("identity", args, 0)
		if err != nil {
			return nil, err
		}
		size := int(n)
		out := value.NewTensor(size, size)
		for i := 0; i < size; i++ {
			out.Set2(i, i, 1)
		}
		return out, nil
	})
	// vector builds a rank-1 Tensor from scalar components (a single
	// existing Tensor argument passes through unchanged, so vector(xs)
	// also works when xs is already a vector).
	r.register("vector", 1, -1, func(args []value.Value) (value.Value, error) {
		if len(args) == 1 {
			if t, ok := args[0].(*value.Tensor); ok {
				return t, nil
			}
		}
		data := make([]float64, len(args))
		for i := range args {
			n, err := number("vector", args, i)
			if err != nil {
				return nil, err
			}
			data[i] = n
		}
		return value.NewVector(data...), nil
	})
	// matrix builds a rank-2 Tensor from row vectors, the same
	// Record-as-rows convention vstack uses.
	r.register("matrix", 1, -1, func(args []value.Value) (value.Value, error) {
		if len(args) == 1 {
			if t, ok := args[0].(*value.Tensor); ok && t.Rank() == 2 {
				return t, nil
			}
		}
		var rows [][]float64
		cols := -1
		for i := range args {
			t, err := tensor("matrix", args, i)
			if err != nil {
				return nil, err
			}
			if t.Rank() != 1 {
				return nil, soerr.New(soerr.Shape, "matrix: all arguments must be row vectors")
			}
			if cols == -1 {
				cols = t.Shape[0]
			} else if t.Shape[0] != cols {
				return nil, soerr.New(soerr.Shape, "matrix: rows must share length")
			}
			rows = append(rows, t.Data)
		}
		return value.NewMatrix(rows), nil
	})
	r.register("range", 2, 3, func(args []value.Value) (value.Value, error) {
		start, stop, err := num2("range", args)
		if err != nil {
			return nil, err
		}
		step := 1.0
		if len(args) == 3 {
			step, err = number("range", args, 2)
			if err != nil {
				return nil, err
			}
		}
		if step == 0 {
			return nil, soerr.New(soerr.Domain, "range: step must be non-zero")
		}
		var data []float64
		if step > 0 {
			for x := start; x < stop; x += step {
				data = append(data, x)
			}
		} else {
			for x := start; x > stop; x += step {
				data = append(data, x)
			}
		}
		return value.NewVector(data...), nil
	})
	r.register("linspace", 3, 3, func(args []value.Value) (value.Value, error) {
		start, err := number("linspace", args, 0)
		if err != nil {
			return nil, err
		}
		stop, err := number("linspace", args, 1)
		if err != nil {
			return nil, err
		}
		nArg, err := number("linspace", args, 2)
		if err != nil {
			return nil, err
		}
		n := int(nArg)
		if n < 2 {
			return nil, soerr.New(soerr.Domain, "linspace: count must be at least 2")
		}
		data := make([]float64, n)
		step := (stop - start) / float64(n-1)
		for i := range data {
			data[i] = start + float64(i)*step
		}
		return value.NewVector(data...), nil
	})
	r.register("concat", 2, -1, func(args []value.Value) (value.Value, error) {
		var data []float64
		for i := range args {
			t, err := tensor("concat", args, i)
			if err != nil {
				return nil, err
			}
			if t.Rank() != 1 {
				return nil, soerr.New(soerr.Shape, "concat: all arguments must be vectors")
			}
			data = append(data, t.Data...)
		}
		return value.NewVector(data...), nil
	})
	r.register("vstack", 2, -1, func(args []value.Value) (value.Value, error) {
		var rows [][]float64
		cols := -1
		for i := range args {
			t, err := tensor("vstack", args, i)
			if err != nil {
				return nil, err
			}
			if t.Rank() != 1 {
				return nil, soerr.New(soerr.Shape, "vstack: all arguments must be vectors")
			}
			if cols == -1 {
				cols = t.Shape[0]
			} else if t.Shape[0] != cols {
				return nil, soerr.New(soerr.Shape, "vstack: vectors must share length")
			}
			rows = append(rows, t.Data)
		}
		return value.NewMatrix(rows), nil
	})
	r.register("flatten", 1, 1, func(args []value.Value) (value.Value, error) {
		t, err := vec1("flatten", args)
		if err != nil {
			return nil, err
		}
		data := append([]float64(nil), t.Data...)
		return value.NewVector(data...), nil
	})
}

func shapeFromArgs(name string, args []value.Value) ([]int, error) {
	if len(args) == 1 {
		if t, ok := args[0].(*value.Tensor); ok {
			shape := make([]int, len(t.Data))
			for i, d := range t.Data {
				shape[i] = int(d)
			}
			return shape, nil
		}
	}
	shape := make([]int, len(args))
	for i := range args {
		n, err := number(name, args, i)
		if err != nil {
			return nil, err
		}
		shape[i] = int(n)
	}
	return shape, nil
}
