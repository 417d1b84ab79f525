package eval

import (
	"math"
	"math/cmplx"

	"github.com/eddndev/achronyme-go/internal/ast"
	"github.com/eddndev/achronyme-go/internal/soerr"
	"github.com/eddndev/achronyme-go/internal/token"
	"github.com/eddndev/achronyme-go/internal/value"
)

// evalUnary handles unary minus and logical not (spec.md §4.3).
func (e *Evaluator) evalUnary(n *ast.UnaryExpr, env value.Env) (value.Value, error) {
	v, err := e.evalExpr(n.Right, env, false)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case token.MINUS:
		switch x := v.(type) {
		case value.Number:
			return -x, nil
		case value.Complex:
			return -x, nil
		case *value.Tensor:
			out := x.Clone()
			for i, d := range out.Data {
				out.Data[i] = -d
			}
			return out, nil
		case *value.ComplexTensor:
			out := &value.ComplexTensor{Shape: append([]int(nil), x.Shape...), Data: append([]complex128(nil), x.Data...)}
			for i, d := range out.Data {
				out.Data[i] = -d
			}
			return out, nil
		default:
			return nil, e.errAt(soerr.Type, n, "unary - is not defined for %s", v.Type())
		}
	case token.NOT:
		return value.Bool(!value.Truthy(v)), nil
	default:
		return nil, e.errAt(soerr.Type, n, "unsupported unary operator")
	}
}

// evalBinary dispatches the promotion lattice of spec.md §4.3: Number may
// promote to Complex, scalars broadcast against Tensors, `@` is reserved
// exclusively for matrix multiplication, and every other arithmetic operator
// is elementwise.
func (e *Evaluator) evalBinary(n *ast.BinaryExpr, env value.Env) (value.Value, error) {
	left, err := e.evalExpr(n.Left, env, false)
	if err != nil {
		return nil, err
	}
	right, err := e.evalExpr(n.Right, env, false)
	if err != nil {
		return nil, err
	}
	return e.applyBinary(n, left, right)
}

// BinaryOp applies a binary operator to already-evaluated operands, bypassing
// AST evaluation entirely. The handle-based fast path (spec.md §4.11, §9's
// "two surfaces, one semantics") calls this directly so that e.g. vadd_fast
// runs through the exact same promotion/broadcasting logic as the `+`
// operator on the string-eval path.
func (e *Evaluator) BinaryOp(op token.Kind, left, right value.Value) (value.Value, error) {
	return e.applyBinary(&ast.BinaryExpr{Op: op}, left, right)
}

func (e *Evaluator) applyBinary(n *ast.BinaryExpr, left, right value.Value) (value.Value, error) {
	switch n.Op {
	case token.AND:
		return value.Bool(value.Truthy(left) && value.Truthy(right)), nil
	case token.OR:
		return value.Bool(value.Truthy(left) || value.Truthy(right)), nil
	case token.EQ:
		return value.Bool(valuesEqual(left, right)), nil
	case token.NEQ:
		return value.Bool(!valuesEqual(left, right)), nil
	case token.LT, token.LE, token.GT, token.GE:
		return e.evalCompare(n, left, right)
	case token.AT:
		return e.evalMatmul(n, left, right)
	}

	// String concatenation with +.
	if n.Op == token.PLUS {
		if ls, ok := left.(value.String); ok {
			if rs, ok := right.(value.String); ok {
				return ls + rs, nil
			}
		}
	}

	if lt, ok := left.(*value.Tensor); ok {
		if rt, ok := right.(*value.Tensor); ok {
			return e.evalTensorOp(n, lt, rt)
		}
		if rs, ok := asFloat(right); ok {
			return e.evalTensorScalarOp(n, lt, rs, false)
		}
	}
	if rt, ok := right.(*value.Tensor); ok {
		if ls, ok := asFloat(left); ok {
			return e.evalTensorScalarOp(n, rt, ls, true)
		}
	}

	lc, lok := asComplex(left)
	rc, rok := asComplex(right)
	if lok && rok {
		if _, lIsComplex := left.(value.Complex); lIsComplex {
			return e.evalComplexOp(n, lc, rc)
		}
		if _, rIsComplex := right.(value.Complex); rIsComplex {
			return e.evalComplexOp(n, lc, rc)
		}
		lf, lfok := asFloat(left)
		rf, rfok := asFloat(right)
		if lfok && rfok {
			return e.evalNumberOp(n, lf, rf)
		}
	}

	return nil, e.errAt(soerr.Type, n, "operator %s is not defined for %s and %s", token.Kind(n.Op), left.Type(), right.Type())
}

func (e *Evaluator) evalCompare(n *ast.BinaryExpr, left, right value.Value) (value.Value, error) {
	lf, lok := asFloat(left)
	rf, rok := asFloat(right)
	if !lok || !rok {
		if ls, ok := left.(value.String); ok {
			if rs, ok := right.(value.String); ok {
				return e.stringCompare(n, string(ls), string(rs))
			}
		}
		return nil, e.errAt(soerr.Type, n, "comparison is not defined for %s and %s", left.Type(), right.Type())
	}
	switch n.Op {
	case token.LT:
		return value.Bool(lf < rf), nil
	case token.LE:
		return value.Bool(lf <= rf), nil
	case token.GT:
		return value.Bool(lf > rf), nil
	case token.GE:
		return value.Bool(lf >= rf), nil
	}
	return nil, e.errAt(soerr.Type, n, "unsupported comparison operator")
}

func (e *Evaluator) stringCompare(n *ast.BinaryExpr, l, r string) (value.Value, error) {
	switch n.Op {
	case token.LT:
		return value.Bool(l < r), nil
	case token.LE:
		return value.Bool(l <= r), nil
	case token.GT:
		return value.Bool(l > r), nil
	case token.GE:
		return value.Bool(l >= r), nil
	}
	return nil, e.errAt(soerr.Type, n, "unsupported comparison operator")
}

func valuesEqual(l, r value.Value) bool {
	if lf, lok := asFloat(l); lok {
		if rf, rok := asFloat(r); rok {
			return lf == rf
		}
	}
	if lc, lok := l.(value.Complex); lok {
		if rc, rok := asComplex(r); rok {
			return complex128(lc) == rc
		}
	}
	if ls, ok := l.(value.String); ok {
		if rs, ok := r.(value.String); ok {
			return ls == rs
		}
	}
	if lt, ok := l.(*value.Tensor); ok {
		if rt, ok := r.(*value.Tensor); ok {
			if !value.SameShape(lt.Shape, rt.Shape) {
				return false
			}
			for i := range lt.Data {
				if lt.Data[i] != rt.Data[i] {
					return false
				}
			}
			return true
		}
	}
	return false
}

func asComplex(v value.Value) (complex128, bool) {
	switch x := v.(type) {
	case value.Complex:
		return complex128(x), true
	case value.Number:
		return complex(float64(x), 0), true
	default:
		return 0, false
	}
}

func (e *Evaluator) evalNumberOp(n *ast.BinaryExpr, l, r float64) (value.Value, error) {
	switch n.Op {
	case token.PLUS:
		return value.Number(l + r), nil
	case token.MINUS:
		return value.Number(l - r), nil
	case token.STAR:
		return value.Number(l * r), nil
	case token.SLASH:
		if r == 0 {
			return nil, e.errAt(soerr.Domain, n, "division by zero")
		}
		return value.Number(l / r), nil
	case token.PERCENT:
		return value.Number(math.Mod(l, r)), nil
	case token.CARET:
		return value.Number(math.Pow(l, r)), nil
	}
	return nil, e.errAt(soerr.Type, n, "unsupported numeric operator")
}

func (e *Evaluator) evalComplexOp(n *ast.BinaryExpr, l, r complex128) (value.Value, error) {
	switch n.Op {
	case token.PLUS:
		return value.Complex(l + r), nil
	case token.MINUS:
		return value.Complex(l - r), nil
	case token.STAR:
		return value.Complex(l * r), nil
	case token.SLASH:
		if r == 0 {
			return nil, e.errAt(soerr.Domain, n, "division by zero")
		}
		return value.Complex(l / r), nil
	case token.CARET:
		return value.Complex(cmplx.Pow(l, r)), nil
	}
	return nil, e.errAt(soerr.Type, n, "operator %s is not defined on Complex", token.Kind(n.Op))
}

// evalTensorOp applies an elementwise binary op to two Tensors with
// right-aligned size-1-permissive broadcasting (spec.md §3).
func (e *Evaluator) evalTensorOp(n *ast.BinaryExpr, l, r *value.Tensor) (value.Value, error) {
	shape, err := broadcastShape(l.Shape, r.Shape)
	if err != nil {
		return nil, e.errAt(soerr.Shape, n, "cannot broadcast shapes %s and %s", value.Describe(l.Shape), value.Describe(r.Shape))
	}
	out := value.NewTensor(shape...)
	strides := value.Strides(shape)
	idx := make([]int, len(shape))
	for flat := range out.Data {
		unflatten(flat, shape, strides, idx)
		a := l.Data[broadcastIndex(idx, shape, l.Shape)]
		b := r.Data[broadcastIndex(idx, shape, r.Shape)]
		v, err := e.scalarBinOp(n, a, b)
		if err != nil {
			return nil, err
		}
		out.Data[flat] = v
	}
	return out, nil
}

func (e *Evaluator) evalTensorScalarOp(n *ast.BinaryExpr, t *value.Tensor, s float64, scalarOnLeft bool) (value.Value, error) {
	out := t.Clone()
	for i, d := range t.Data {
		var v float64
		var err error
		if scalarOnLeft {
			v, err = e.scalarBinOp(n, s, d)
		} else {
			v, err = e.scalarBinOp(n, d, s)
		}
		if err != nil {
			return nil, err
		}
		out.Data[i] = v
	}
	return out, nil
}

func (e *Evaluator) scalarBinOp(n *ast.BinaryExpr, a, b float64) (float64, error) {
	switch n.Op {
	case token.PLUS:
		return a + b, nil
	case token.MINUS:
		return a - b, nil
	case token.STAR:
		return a * b, nil
	case token.SLASH:
		if b == 0 {
			return 0, e.errAt(soerr.Domain, n, "division by zero")
		}
		return a / b, nil
	case token.PERCENT:
		return math.Mod(a, b), nil
	case token.CARET:
		return math.Pow(a, b), nil
	}
	return 0, e.errAt(soerr.Type, n, "unsupported tensor operator")
}

// evalMatmul implements `@`, the sole matrix-multiplication operator
// (spec.md §3): (m x k) @ (k x n) -> (m x n); a rank-1 operand is treated as
// a row or column vector as appropriate.
func (e *Evaluator) evalMatmul(n *ast.BinaryExpr, left, right value.Value) (value.Value, error) {
	lt, ok := left.(*value.Tensor)
	if !ok {
		return nil, e.errAt(soerr.Type, n, "@ requires Tensor operands, got %s", left.Type())
	}
	rt, ok := right.(*value.Tensor)
	if !ok {
		return nil, e.errAt(soerr.Type, n, "@ requires Tensor operands, got %s", right.Type())
	}

	lRows, lCols, lShape := matShape(lt)
	rRows, rCols, rShape := matShape(rt)
	if lCols != rRows {
		return nil, e.errAt(soerr.Shape, n, "@ shape mismatch: %s @ %s", value.Describe(lt.Shape), value.Describe(rt.Shape))
	}
	out := make([]float64, lRows*rCols)
	for i := 0; i < lRows; i++ {
		for k := 0; k < lCols; k++ {
			a := lt.Data[i*lCols+k]
			if a == 0 {
				continue
			}
			for j := 0; j < rCols; j++ {
				out[i*rCols+j] += a * rt.Data[k*rCols+j]
			}
		}
	}
	resultShape := matmulResultShape(lShape, rShape, lRows, rCols)
	return value.NewTensorFromData(resultShape, out), nil
}

func matShape(t *value.Tensor) (rows, cols int, original int) {
	switch t.Rank() {
	case 1:
		return 1, t.Shape[0], 1
	default:
		return t.Shape[0], t.Shape[1], 2
	}
}

func matmulResultShape(lRank, rRank, rows, cols int) []int {
	if lRank == 1 && rRank == 1 {
		return []int{cols}
	}
	if lRank == 1 {
		return []int{cols}
	}
	if rRank == 1 {
		return []int{rows}
	}
	return []int{rows, cols}
}

// broadcastShape computes the right-aligned, size-1-permissive broadcast
// shape of two shapes (spec.md §3), or an error if incompatible.
func broadcastShape(a, b []int) ([]int, error) {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]int, n)
	for i := 0; i < n; i++ {
		ai := dimAt(a, i, n)
		bi := dimAt(b, i, n)
		switch {
		case ai == bi:
			out[n-1-i] = ai
		case ai == 1:
			out[n-1-i] = bi
		case bi == 1:
			out[n-1-i] = ai
		default:
			return nil, soerr.New(soerr.Shape, "incompatible shapes")
		}
	}
	return out, nil
}

func dimAt(shape []int, iFromEnd, outLen int) int {
	pos := len(shape) - 1 - iFromEnd
	if pos < 0 {
		return 1
	}
	return shape[pos]
}

func unflatten(flat int, shape, strides, idx []int) {
	rem := flat
	for i := range shape {
		idx[i] = rem / strides[i]
		rem %= strides[i]
	}
}

// broadcastIndex maps a multi-index in the broadcast result shape down to a
// flat offset in a smaller operand shape, treating size-1 dims as stride 0.
func broadcastIndex(idx, outShape, opShape []int) int {
	offset := 0
	opRank := len(opShape)
	outRank := len(outShape)
	opStrides := value.Strides(opShape)
	for i := 0; i < opRank; i++ {
		outDim := outRank - opRank + i
		d := opShape[i]
		if d == 1 {
			continue
		}
		offset += idx[outDim] * opStrides[i]
	}
	return offset
}
