package eval

import (
	"github.com/eddndev/achronyme-go/internal/ast"
	"github.com/eddndev/achronyme-go/internal/soerr"
	"github.com/eddndev/achronyme-go/internal/value"
)

// evalIndex implements spec.md §4.3's indexing rules: v[i] (0-based),
// m[i, j] and the chained m[i][j] form (which falls out of repeated
// single-index application), and half-open slicing v[a:b]/v[:b]/v[a:].
func (e *Evaluator) evalIndex(n *ast.IndexExpr, env value.Env) (value.Value, error) {
	obj, err := e.evalExpr(n.Object, env, false)
	if err != nil {
		return nil, err
	}
	t, ok := obj.(*value.Tensor)
	if !ok {
		return nil, e.errAt(soerr.Type, n, "cannot index into %s", obj.Type())
	}

	if n.IsSlice {
		return e.evalSlice(n, t, env)
	}

	i, err := e.indexValue(n.Index, env)
	if err != nil {
		return nil, err
	}
	if n.Index2 != nil {
		j, err := e.indexValue(n.Index2, env)
		if err != nil {
			return nil, err
		}
		if t.Rank() != 2 {
			return nil, e.errAt(soerr.Shape, n, "m[i, j] requires a rank-2 Tensor, got rank %d", t.Rank())
		}
		if i < 0 || i >= t.Shape[0] || j < 0 || j >= t.Shape[1] {
			return nil, e.errAt(soerr.Domain, n, "index [%d, %d] out of bounds for shape %s", i, j, value.Describe(t.Shape))
		}
		return value.Number(t.At2(i, j)), nil
	}

	if t.Rank() == 1 {
		if i < 0 || i >= t.Shape[0] {
			return nil, e.errAt(soerr.Domain, n, "index %d out of bounds for length %d", i, t.Shape[0])
		}
		return value.Number(t.Data[i]), nil
	}
	// Rank >= 2 single-index: select the i-th sub-tensor along axis 0
	// (enables the m[i][j] chained form via a second IndexExpr application).
	if i < 0 || i >= t.Shape[0] {
		return nil, e.errAt(soerr.Domain, n, "index %d out of bounds for shape %s", i, value.Describe(t.Shape))
	}
	subShape := append([]int(nil), t.Shape[1:]...)
	size := value.Size(subShape)
	start := i * size
	data := append([]float64(nil), t.Data[start:start+size]...)
	if len(subShape) == 0 {
		return value.Number(data[0]), nil
	}
	return value.NewTensorFromData(subShape, data), nil
}

func (e *Evaluator) indexValue(expr ast.Expr, env value.Env) (int, error) {
	v, err := e.evalExpr(expr, env, false)
	if err != nil {
		return 0, err
	}
	f, ok := asFloat(v)
	if !ok {
		return 0, e.errAt(soerr.Type, expr, "index must be a Number, got %s", v.Type())
	}
	return int(f), nil
}

func (e *Evaluator) evalSlice(n *ast.IndexExpr, t *value.Tensor, env value.Env) (value.Value, error) {
	if t.Rank() != 1 {
		return nil, e.errAt(soerr.Shape, n, "slicing requires a vector, got rank %d", t.Rank())
	}
	length := t.Shape[0]
	from := 0
	if n.Index != nil {
		v, err := e.indexValue(n.Index, env)
		if err != nil {
			return nil, err
		}
		from = v
	}
	to := length
	if n.SliceTo != nil {
		v, err := e.indexValue(n.SliceTo, env)
		if err != nil {
			return nil, err
		}
		to = v
	}
	if from < 0 || to > length || from > to {
		return nil, e.errAt(soerr.Domain, n, "slice [%d:%d] out of bounds for length %d", from, to, length)
	}
	data := append([]float64(nil), t.Data[from:to]...)
	return value.NewVector(data...), nil
}

// evalField implements `.key` access on Records, and on Edges via their
// flattened Record view (spec.md §4.3).
func (e *Evaluator) evalField(n *ast.FieldExpr, env value.Env) (value.Value, error) {
	obj, err := e.evalExpr(n.Object, env, false)
	if err != nil {
		return nil, err
	}
	switch x := obj.(type) {
	case *value.Record:
		v, ok := x.Fields[n.Name]
		if !ok {
			return nil, e.errAt(soerr.Name, n, "record has no field %q", n.Name)
		}
		return v, nil
	case *value.Edge:
		rec := x.AsRecord()
		v, ok := rec.Fields[n.Name]
		if !ok {
			return nil, e.errAt(soerr.Name, n, "edge has no field %q", n.Name)
		}
		return v, nil
	default:
		return nil, e.errAt(soerr.Type, n, "cannot access field %q on %s", n.Name, obj.Type())
	}
}

// assignIndex writes through v[i], m[i, j], or the chained m[i][j] target
// of an assignment statement (spec.md §4.4).
func (e *Evaluator) assignIndex(n *ast.IndexExpr, v value.Value, env value.Env) error {
	f, ok := asFloat(v)
	if !ok {
		return e.errAt(soerr.Type, n, "cannot assign %s into a Tensor element", v.Type())
	}
	obj, err := e.evalExpr(n.Object, env, false)
	if err != nil {
		return err
	}
	t, ok := obj.(*value.Tensor)
	if !ok {
		return e.errAt(soerr.Type, n, "cannot index-assign into %s", obj.Type())
	}
	i, err := e.indexValue(n.Index, env)
	if err != nil {
		return err
	}
	if n.Index2 != nil {
		j, err := e.indexValue(n.Index2, env)
		if err != nil {
			return err
		}
		if t.Rank() != 2 || i < 0 || i >= t.Shape[0] || j < 0 || j >= t.Shape[1] {
			return e.errAt(soerr.Domain, n, "index [%d, %d] out of bounds for shape %s", i, j, value.Describe(t.Shape))
		}
		t.Set2(i, j, f)
		return nil
	}
	if t.Rank() != 1 || i < 0 || i >= t.Shape[0] {
		return e.errAt(soerr.Domain, n, "index %d out of bounds", i)
	}
	t.Data[i] = f
	return nil
}

// assignField writes through r.key = value (spec.md §4.4); Edges are
// immutable (their Record view is derived), so field assignment only
// applies to Records.
func (e *Evaluator) assignField(n *ast.FieldExpr, v value.Value, env value.Env) error {
	obj, err := e.evalExpr(n.Object, env, false)
	if err != nil {
		return err
	}
	rec, ok := obj.(*value.Record)
	if !ok {
		return e.errAt(soerr.Type, n, "cannot assign field %q on %s", n.Name, obj.Type())
	}
	rec.Fields[n.Name] = v
	return nil
}
