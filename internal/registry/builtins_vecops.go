package registry

import (
	"github.com/eddndev/achronyme-go/internal/soerr"
	"github.com/eddndev/achronyme-go/internal/value"
)

// registerVecOps wires spec.md §4.5's elementwise vector builtins: vadd,
// vsub, vmul, vdiv, vscale. The same broadcasting operators are also
// reachable through +, -, *, / on Tensors in the evaluator's operator
// dispatch (spec.md §4.6); these named builtins give the same semantics an
// explicit callable identity for use with map/pipe/compose.
func registerVecOps(r *Registry) {
	r.register("vadd", 2, 2, vecBinary("vadd", func(a, b float64) float64 { return a + b }))
	r.register("vsub", 2, 2, vecBinary("vsub", func(a, b float64) float64 { return a - b }))
	r.register("vmul", 2, 2, vecBinary("vmul", func(a, b float64) float64 { return a * b }))
	r.register("vdiv", 2, 2, func(args []value.Value) (value.Value, error) {
		a, err := tensor("vdiv", args, 0)
		if err != nil {
			return nil, err
		}
		b, err := tensor("vdiv", args, 1)
		if err != nil {
			return nil, err
		}
		out, verr := broadcastTensors("vdiv", a, b, func(x, y float64) (float64, error) {
			if y == 0 {
				return 0, soerr.New(soerr.Domain, "vdiv: division by zero")
			}
			return x / y, nil
		})
		if verr != nil {
			return nil, verr
		}
		return out, nil
	})
	r.register("vscale", 2, 2, func(args []value.Value) (value.Value, error) {
		t, err := tensor("vscale", args, 0)
		if err != nil {
			return nil, err
		}
		s, err := number("vscale", args, 1)
		if err != nil {
			return nil, err
		}
		out := t.Clone()
		for i := range out.Data {
			out.Data[i] *= s
		}
		return out, nil
	})
}

func vecBinary(name string, op func(a, b float64) float64) func([]value.Value) (value.Value, error) {
	return func(args []value.Value) (value.Value, error) {
		a, err := tensor(name, args, 0)
		if err != nil {
			return nil, err
		}
		b, err := tensor(name, args, 1)
		if err != nil {
			return nil, err
		}
		out, verr := broadcastTensors(name, a, b, func(x, y float64) (float64, error) { return op(x, y), nil })
		if verr != nil {
			return nil, verr
		}
		return out, nil
	}
}

// broadcastTensors applies op elementwise over a and b under spec.md
// §4.6's broadcasting rule: shapes are right-aligned, a size-1 dimension
// extends to match the other operand, mismatched non-1 dimensions are an
// error. Equal shapes are the common case and skip index translation.
func broadcastTensors(name string, a, b *value.Tensor, op func(x, y float64) (float64, error)) (*value.Tensor, error) {
	if shapeEqual(a.Shape, b.Shape) {
		out := a.Clone()
		for i := range out.Data {
			v, err := op(a.Data[i], b.Data[i])
			if err != nil {
				return nil, err
			}
			out.Data[i] = v
		}
		return out, nil
	}
	shape, err := broadcastShape(name, a.Shape, b.Shape)
	if err != nil {
		return nil, err
	}
	out := value.NewTensor(shape...)
	idx := make([]int, len(shape))
	for i := range out.Data {
		unravel(idx, i, shape)
		av := a.Data[broadcastIndex(idx, a.Shape)]
		bv := b.Data[broadcastIndex(idx, b.Shape)]
		v, err := op(av, bv)
		if err != nil {
			return nil, err
		}
		out.Data[i] = v
	}
	return out, nil
}

func shapeEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func broadcastShape(name string, a, b []int) ([]int, error) {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	shape := make([]int, n)
	for i := 0; i < n; i++ {
		da, db := 1, 1
		if i < len(a) {
			da = a[len(a)-1-i]
		}
		if i < len(b) {
			db = b[len(b)-1-i]
		}
		switch {
		case da == db:
			shape[n-1-i] = da
		case da == 1:
			shape[n-1-i] = db
		case db == 1:
			shape[n-1-i] = da
		default:
			return nil, soerr.New(soerr.Shape, "%s: cannot broadcast %s with %s", name, value.Describe(a), value.Describe(b))
		}
	}
	return shape, nil
}

func unravel(idx []int, flat int, shape []int) {
	for i := len(shape) - 1; i >= 0; i-- {
		idx[i] = flat % shape[i]
		flat /= shape[i]
	}
}

func broadcastIndex(idx []int, shape []int) int {
	offset := len(idx) - len(shape)
	flat := 0
	for i, dim := range shape {
		j := idx[offset+i]
		if dim == 1 {
			j = 0
		}
		flat = flat*dim + j
	}
	return flat
}
