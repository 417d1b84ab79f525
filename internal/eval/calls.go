package eval

import (
	"github.com/eddndev/achronyme-go/internal/ast"
	"github.com/eddndev/achronyme-go/internal/soerr"
	"github.com/eddndev/achronyme-go/internal/value"
)

// evalCall evaluates a call expression. When it sits in tail position and
// the callee resolves to a user-defined Function, it returns a *TailCall
// marker instead of recursing, so callFunction's trampoline can loop in
// place (spec.md §4.3's tail-call requirement).
func (e *Evaluator) evalCall(n *ast.CallExpr, env value.Env, tail bool) (value.Value, error) {
	callee, err := e.evalExpr(n.Callee, env, false)
	if err != nil {
		return nil, err
	}
	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := e.evalExpr(a, env, false)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	if tail {
		if _, ok := callee.(*value.Function); ok {
			return &value.TailCall{Callee: callee, Args: args}, nil
		}
	}
	v, err := e.Call(callee, args)
	if err != nil {
		return nil, wrapPos(err, n, e.Source, e.File)
	}
	return v, nil
}

// Call applies callee to args regardless of tail position; this is the
// entry point both evalCall (non-tail) and the higher-order builtins
// (spec.md §9's map/filter/reduce/compose, via registry.Apply) go through.
func (e *Evaluator) Call(callee value.Value, args []value.Value) (value.Value, error) {
	switch fn := callee.(type) {
	case *value.NativeFunc:
		if !fn.Arity(len(args)) {
			return nil, soerr.New(soerr.Arity, "%s expects %s argument(s), got %d", fn.Name, arityDesc(fn), len(args))
		}
		return fn.Call(args)
	case *value.Function:
		return e.callFunction(fn, args)
	default:
		return nil, soerr.New(soerr.Type, "value of type %s is not callable", callee.Type())
	}
}

func arityDesc(fn *value.NativeFunc) string {
	if fn.MaxArity < 0 {
		return "at least " + itoa(fn.MinArity)
	}
	if fn.MinArity == fn.MaxArity {
		return itoa(fn.MinArity)
	}
	return "between " + itoa(fn.MinArity) + " and " + itoa(fn.MaxArity)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// callFunction applies a user-defined closure, trampolining through any
// chain of tail calls in constant Go stack depth (spec.md §4.3/§4.4).
func (e *Evaluator) callFunction(fn *value.Function, args []value.Value) (value.Value, error) {
	for {
		if len(args) != len(fn.Params) {
			name := fn.Name
			if name == "" {
				name = "<lambda>"
			}
			return nil, soerr.New(soerr.Arity, "%s expects %d argument(s), got %d", name, len(fn.Params), len(args))
		}
		childEnv := fn.Captured.NewChild()
		for i, p := range fn.Params {
			childEnv.Define(p, args[i])
		}
		result, err := e.evalExpr(fn.Body, childEnv, true)
		if err != nil {
			return nil, err
		}
		if tc, ok := result.(*value.TailCall); ok {
			if nextFn, ok := tc.Callee.(*value.Function); ok {
				fn = nextFn
				args = tc.Args
				continue
			}
			return e.Call(tc.Callee, tc.Args)
		}
		if er, ok := result.(*value.EarlyReturn); ok {
			return er.Value, nil
		}
		return result, nil
	}
}

// wrapPos attaches source position to an error surfaced from a builtin or
// a Function call, if it doesn't already carry one (builtins raise
// position-less soerr.Errors; the call site is the most useful anchor).
func wrapPos(err error, n ast.Node, source, file string) error {
	se, ok := err.(*soerr.Error)
	if !ok || se.HasPos {
		return err
	}
	return se.At(n.Pos(), source, file)
}
