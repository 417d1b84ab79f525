package registry

import (
	"github.com/eddndev/achronyme-go/internal/soerr"
	"github.com/eddndev/achronyme-go/internal/value"
)

func number(name string, args []value.Value, i int) (float64, error) {
	switch n := args[i].(type) {
	case value.Number:
		return float64(n), nil
	case value.Bool:
		if n {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, soerr.New(soerr.Type, "%s: argument %d must be a Number, got %s", name, i+1, args[i].Type())
	}
}

func complexArg(name string, args []value.Value, i int) (complex128, error) {
	switch n := args[i].(type) {
	case value.Complex:
		return complex128(n), nil
	case value.Number:
		return complex(float64(n), 0), nil
	default:
		return 0, soerr.New(soerr.Type, "%s: argument %d must be a Number or Complex, got %s", name, i+1, args[i].Type())
	}
}

func tensor(name string, args []value.Value, i int) (*value.Tensor, error) {
	t, ok := args[i].(*value.Tensor)
	if !ok {
		return nil, soerr.New(soerr.Type, "%s: argument %d must be a Tensor, got %s", name, i+1, args[i].Type())
	}
	return t, nil
}

func str(name string, args []value.Value, i int) (string, error) {
	s, ok := args[i].(value.String)
	if !ok {
		return "", soerr.New(soerr.Type, "%s: argument %d must be a String, got %s", name, i+1, args[i].Type())
	}
	return string(s), nil
}

func record(name string, args []value.Value, i int) (*value.Record, error) {
	rec, ok := args[i].(*value.Record)
	if !ok {
		return nil, soerr.New(soerr.Type, "%s: argument %d must be a Record, got %s", name, i+1, args[i].Type())
	}
	return rec, nil
}

func callable(name string, args []value.Value, i int) (value.Value, error) {
	switch args[i].(type) {
	case *value.Function, *value.NativeFunc:
		return args[i], nil
	default:
		return nil, soerr.New(soerr.Type, "%s: argument %d must be a Function, got %s", name, i+1, args[i].Type())
	}
}

func vec1(name string, a []value.Value) (*value.Tensor, error)     { return tensor(name, a, 0) }
func num1(name string, a []value.Value) (float64, error)           { return number(name, a, 0) }
func num2(name string, a []value.Value) (float64, float64, error) {
	x, err := number(name, a, 0)
	if err != nil {
		return 0, 0, err
	}
	y, err := number(name, a, 1)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func wrap1(f func(float64) float64) func(args []value.Value) (value.Value, error) {
	return func(args []value.Value) (value.Value, error) {
		x, err := num1("", args)
		if err != nil {
			return nil, err
		}
		return value.Number(f(x)), nil
	}
}
