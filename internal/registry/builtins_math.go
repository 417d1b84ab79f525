package registry

import (
	"math"

	"github.com/eddndev/achronyme-go/internal/soerr"
	"github.com/eddndev/achronyme-go/internal/value"
)

// registerMath wires spec.md §4.6's elementwise scalar kernels: the
// single-argument entries also apply elementwise to Tensor arguments via
// elementwiseNumeric, mirroring how the teacher's math_basic.go builtins
// dispatch on a numeric Value's dynamic type.
func registerMath(r *Registry) {
	unary := map[string]func(float64) float64{
		"sqrt": math.Sqrt, "cbrt": math.Cbrt,
		"exp": math.Exp, "ln": math.Log, "log": math.Log, "log2": math.Log2, "log10": math.Log10,
		"sin": math.Sin, "cos": math.Cos, "tan": math.Tan,
		"asin": math.Asin, "acos": math.Acos, "atan": math.Atan,
		"sinh": math.Sinh, "cosh": math.Cosh, "tanh": math.Tanh,
		"floor": math.Floor, "ceil": math.Ceil, "round": math.Round, "trunc": math.Trunc,
		"sign": sign, "deg": toDegrees, "rad": toRadians,
	}
	for name, fn := range unary {
		fn := fn
		r.register(name, 1, 1, func(args []value.Value) (value.Value, error) {
			return elementwiseNumeric(name, args[0], fn)
		})
	}

	r.register("atan2", 2, 2, func(args []value.Value) (value.Value, error) {
		y, x, err := num2("atan2", args)
		if err != nil {
			return nil, err
		}
		return value.Number(math.Atan2(y, x)), nil
	})
	r.register("pow", 2, 2, func(args []value.Value) (value.Value, error) {
		x, y, err := num2("pow", args)
		if err != nil {
			return nil, err
		}
		return value.Number(math.Pow(x, y)), nil
	})
	r.register("mod", 2, 2, func(args []value.Value) (value.Value, error) {
		x, y, err := num2("mod", args)
		if err != nil {
			return nil, err
		}
		if y == 0 {
			return nil, soerr.New(soerr.Domain, "mod: division by zero")
		}
		return value.Number(math.Mod(x, y)), nil
	})
	r.register("min", 1, -1, func(args []value.Value) (value.Value, error) {
		return minMax("min", args, func(a, b float64) float64 { return math.Min(a, b) })
	})
	r.register("max", 1, -1, func(args []value.Value) (value.Value, error) {
		return minMax("max", args, func(a, b float64) float64 { return math.Max(a, b) })
	})
	r.register("clamp", 3, 3, func(args []value.Value) (value.Value, error) {
		x, err := number("clamp", args, 0)
		if err != nil {
			return nil, err
		}
		lo, err := number("clamp", args, 1)
		if err != nil {
			return nil, err
		}
		hi, err := number("clamp", args, 2)
		if err != nil {
			return nil, err
		}
		if x < lo {
			x = lo
		}
		if x > hi {
			x = hi
		}
		return value.Number(x), nil
	})
	r.register("lerp", 3, 3, func(args []value.Value) (value.Value, error) {
		a, err := number("lerp", args, 0)
		if err != nil {
			return nil, err
		}
		b, err := number("lerp", args, 1)
		if err != nil {
			return nil, err
		}
		t, err := number("lerp", args, 2)
		if err != nil {
			return nil, err
		}
		return value.Number(a + (b-a)*t), nil
	})
	r.register("gcd", 2, 2, func(args []value.Value) (value.Value, error) {
		a, b, err := num2("gcd", args)
		if err != nil {
			return nil, err
		}
		return value.Number(float64(gcdInt(int64(a), int64(b)))), nil
	})
	r.register("lcm", 2, 2, func(args []value.Value) (value.Value, error) {
		a, b, err := num2("lcm", args)
		if err != nil {
			return nil, err
		}
		ai, bi := int64(a), int64(b)
		g := gcdInt(ai, bi)
		if g == 0 {
			return value.Number(0), nil
		}
		return value.Number(float64(ai / g * bi)), nil
	})
	r.register("factorial", 1, 1, func(args []value.Value) (value.Value, error) {
		n, err := number("factorial", args, 0)
		if err != nil {
			return nil, err
		}
		if n < 0 || n != math.Trunc(n) {
			return nil, soerr.New(soerr.Domain, "factorial: argument must be a non-negative integer")
		}
		result := 1.0
		for i := 2.0; i <= n; i++ {
			result *= i
		}
		return value.Number(result), nil
	})
	r.register("abs", 1, 1, func(args []value.Value) (value.Value, error) {
		switch x := args[0].(type) {
		case value.Number:
			return value.Number(math.Abs(float64(x))), nil
		case value.Complex:
			return value.Number(cmplxAbs(complex128(x))), nil
		case *value.Tensor:
			out := x.Clone()
			for i, d := range out.Data {
				out.Data[i] = math.Abs(d)
			}
			return out, nil
		default:
			return nil, soerr.New(soerr.Type, "abs: argument must be a Number, Complex, or Tensor, got %s", args[0].Type())
		}
	})
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

func toDegrees(x float64) float64 { return x * 180 / math.Pi }
func toRadians(x float64) float64 { return x * math.Pi / 180 }

func gcdInt(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// minMax implements spec.md §4.5's min/max: variadic over scalar arguments,
// or a single Tensor argument reduced over all of its elements.
func minMax(name string, args []value.Value, op func(a, b float64) float64) (value.Value, error) {
	if len(args) == 1 {
		if t, ok := args[0].(*value.Tensor); ok {
			if len(t.Data) == 0 {
				return nil, soerr.New(soerr.Shape, "%s: tensor argument must have at least one element", name)
			}
			result := t.Data[0]
			for _, v := range t.Data[1:] {
				result = op(result, v)
			}
			return value.Number(result), nil
		}
	}
	result, err := number(name, args, 0)
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(args); i++ {
		v, err := number(name, args, i)
		if err != nil {
			return nil, err
		}
		result = op(result, v)
	}
	return value.Number(result), nil
}

// elementwiseNumeric applies fn to a Number directly, or to every element of
// a Tensor, producing a fresh Tensor of the same shape (spec.md §3: kernels
// never mutate their input).
func elementwiseNumeric(name string, v value.Value, fn func(float64) float64) (value.Value, error) {
	switch x := v.(type) {
	case value.Number:
		return value.Number(fn(float64(x))), nil
	case *value.Tensor:
		out := x.Clone()
		for i, d := range out.Data {
			out.Data[i] = fn(d)
		}
		return out, nil
	default:
		return nil, soerr.New(soerr.Type, "%s: argument must be a Number or Tensor, got %s", name, v.Type())
	}
}
