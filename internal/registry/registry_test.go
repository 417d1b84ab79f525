package registry

import (
	"errors"
	"testing"

	"github.com/eddndev/achronyme-go/internal/ast"
	"github.com/eddndev/achronyme-go/internal/value"
)

// testApply is a minimal Apply that only knows how to invoke NativeFunc
// values, enough to exercise map/filter/reduce/compose without pulling in
// package eval (which would be an import cycle anyway).
func testApply(callee value.Value, args []value.Value) (value.Value, error) {
	fn, ok := callee.(*value.NativeFunc)
	if !ok {
		return nil, errors.New("testApply: callee is not a NativeFunc")
	}
	return fn.Call(args)
}

// callTestFunction drives a *value.Function the same way package eval's
// callFunction does, but only understands the Identifier/CallExpr shapes
// compose/pipe synthesize — just enough to exercise them without pulling in
// package eval (an import cycle, since eval imports registry).
func callTestFunction(fn *value.Function, args []value.Value) (value.Value, error) {
	childEnv := fn.Captured.NewChild()
	for i, p := range fn.Params {
		childEnv.Define(p, args[i])
	}
	return evalTestExpr(fn.Body, childEnv)
}

func evalTestExpr(n ast.Expr, env value.Env) (value.Value, error) {
	switch node := n.(type) {
	case *ast.Identifier:
		v, ok := env.Get(node.Name)
		if !ok {
			return nil, errors.New("evalTestExpr: unbound identifier " + node.Name)
		}
		return v, nil
	case *ast.CallExpr:
		callee, err := evalTestExpr(node.Callee, env)
		if err != nil {
			return nil, err
		}
		args := make([]value.Value, len(node.Args))
		for i, a := range node.Args {
			v, err := evalTestExpr(a, env)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		return testApply(callee, args)
	default:
		return nil, errors.New("evalTestExpr: unsupported node")
	}
}

func double() *value.NativeFunc {
	return &value.NativeFunc{
		Name: "double", MinArity: 1, MaxArity: 1,
		Call: func(args []value.Value) (value.Value, error) {
			n := args[0].(value.Number)
			return value.Number(float64(n) * 2), nil
		},
	}
}

func isPositive() *value.NativeFunc {
	return &value.NativeFunc{
		Name: "isPositive", MinArity: 1, MaxArity: 1,
		Call: func(args []value.Value) (value.Value, error) {
			n := args[0].(value.Number)
			return value.Bool(n > 0), nil
		},
	}
}

func addAcc() *value.NativeFunc {
	return &value.NativeFunc{
		Name: "add", MinArity: 2, MaxArity: 2,
		Call: func(args []value.Value) (value.Value, error) {
			a := args[0].(value.Number)
			b := args[1].(value.Number)
			return value.Number(float64(a) + float64(b)), nil
		},
	}
}

func TestLookupKnownAndUnknownBuiltin(t *testing.T) {
	r := New(testApply)
	if _, ok := r.Lookup("sqrt"); !ok {
		t.Fatal("expected sqrt to be registered")
	}
	if _, ok := r.Lookup("not_a_builtin"); ok {
		t.Fatal("expected not_a_builtin to be absent")
	}
}

func TestNamesIsSortedAndNonEmpty(t *testing.T) {
	r := New(testApply)
	names := r.Names()
	if len(names) == 0 {
		t.Fatal("expected at least one builtin name")
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("names not sorted: %q before %q", names[i-1], names[i])
		}
	}
}

func TestSuggestFindsCloseMatch(t *testing.T) {
	r := New(testApply)
	got := r.Suggest("sqrtt")
	if got != "sqrt" {
		t.Fatalf("got suggestion %q, want sqrt", got)
	}
}

func TestSuggestReturnsEmptyForNoMatch(t *testing.T) {
	r := New(testApply)
	if got := r.Suggest("zzzzzzzzzzzzzzzzzzzz"); got != "" {
		t.Fatalf("expected no suggestion, got %q", got)
	}
}

func TestSqrtBuiltinAppliesToScalar(t *testing.T) {
	r := New(testApply)
	fn, _ := r.Lookup("sqrt")
	v, err := fn.Call([]value.Value{value.Number(9)})
	if err != nil {
		t.Fatalf("sqrt: %v", err)
	}
	if n, ok := v.(value.Number); !ok || float64(n) != 3 {
		t.Fatalf("got %v, want 3", v)
	}
}

func TestSqrtBuiltinAppliesElementwiseToTensor(t *testing.T) {
	r := New(testApply)
	fn, _ := r.Lookup("sqrt")
	v, err := fn.Call([]value.Value{value.NewVector(4, 9, 16)})
	if err != nil {
		t.Fatalf("sqrt: %v", err)
	}
	tensor, ok := v.(*value.Tensor)
	if !ok {
		t.Fatalf("expected a Tensor, got %T", v)
	}
	if tensor.String() != "[2, 3, 4]" {
		t.Fatalf("got %s", tensor.String())
	}
}

func TestMapAppliesFunctionElementwise(t *testing.T) {
	r := New(testApply)
	fn, _ := r.Lookup("map")
	v, err := fn.Call([]value.Value{double(), value.NewVector(1, 2, 3)})
	if err != nil {
		t.Fatalf("map: %v", err)
	}
	if v.String() != "[2, 4, 6]" {
		t.Fatalf("got %s", v.String())
	}
}

func TestFilterKeepsMatchingElements(t *testing.T) {
	r := New(testApply)
	fn, _ := r.Lookup("filter")
	v, err := fn.Call([]value.Value{isPositive(), value.NewVector(-2, 3, -1, 4)})
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if v.String() != "[3, 4]" {
		t.Fatalf("got %s", v.String())
	}
}

func TestReduceFoldsToSingleValue(t *testing.T) {
	r := New(testApply)
	fn, _ := r.Lookup("reduce")
	v, err := fn.Call([]value.Value{addAcc(), value.Number(0), value.NewVector(1, 2, 3, 4)})
	if err != nil {
		t.Fatalf("reduce: %v", err)
	}
	if n, ok := v.(value.Number); !ok || float64(n) != 10 {
		t.Fatalf("got %v, want 10", v)
	}
}

func TestComposeChainsRightToLeft(t *testing.T) {
	r := New(testApply)
	fn, _ := r.Lookup("compose")
	addOne := &value.NativeFunc{
		Name: "addOne", MinArity: 1, MaxArity: 1,
		Call: func(args []value.Value) (value.Value, error) {
			return value.Number(float64(args[0].(value.Number)) + 1), nil
		},
	}
	composed, err := fn.Call([]value.Value{double(), addOne})
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	cf, ok := composed.(*value.Function)
	if !ok {
		t.Fatalf("expected compose to return a *value.Function, got %T", composed)
	}
	// compose(double, addOne)(3) == double(addOne(3)) == double(4) == 8
	got, err := callTestFunction(cf, []value.Value{value.Number(3)})
	if err != nil {
		t.Fatalf("calling composed function: %v", err)
	}
	if n, ok := got.(value.Number); !ok || float64(n) != 8 {
		t.Fatalf("got %v, want 8", got)
	}
}

func TestPipeChainsLeftToRight(t *testing.T) {
	r := New(testApply)
	fn, _ := r.Lookup("pipe")
	addOne := &value.NativeFunc{
		Name: "addOne", MinArity: 1, MaxArity: 1,
		Call: func(args []value.Value) (value.Value, error) {
			return value.Number(float64(args[0].(value.Number)) + 1), nil
		},
	}
	piped, err := fn.Call([]value.Value{double(), addOne})
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	pf, ok := piped.(*value.Function)
	if !ok {
		t.Fatalf("expected pipe to return a *value.Function, got %T", piped)
	}
	// pipe(double, addOne)(3) == addOne(double(3)) == addOne(6) == 7
	got, err := callTestFunction(pf, []value.Value{value.Number(3)})
	if err != nil {
		t.Fatalf("calling piped function: %v", err)
	}
	if n, ok := got.(value.Number); !ok || float64(n) != 7 {
		t.Fatalf("got %v, want 7", got)
	}
}

func TestFoldMatchesReduce(t *testing.T) {
	r := New(testApply)
	fn, _ := r.Lookup("fold")
	got, err := fn.Call([]value.Value{addAcc(), value.Number(0), value.NewVector(1, 2, 3)})
	if err != nil {
		t.Fatalf("fold: %v", err)
	}
	if n, ok := got.(value.Number); !ok || float64(n) != 6 {
		t.Fatalf("got %v, want 6", got)
	}
}
