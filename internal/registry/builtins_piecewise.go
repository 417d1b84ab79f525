package registry

import (
	"math"

	"github.com/eddndev/achronyme-go/internal/soerr"
	"github.com/eddndev/achronyme-go/internal/value"
)

// registerPiecewise wires spec.md §4.5's piecewise-and-predicate builtins.
// `if` is a syntactic form handled directly by the evaluator (ast.IfExpr),
// not a registry entry; `clamp` is registered alongside the other scalar
// math builtins in builtins_math.go.
func registerPiecewise(r *Registry) {
	r.register("heaviside", 1, 1, func(args []value.Value) (value.Value, error) {
		return elementwiseNumeric("heaviside", args[0], heavisideOf)
	})
	r.register("rect", 1, 1, func(args []value.Value) (value.Value, error) {
		return elementwiseNumeric("rect", args[0], rectOf)
	})
	r.register("triangle", 1, 1, func(args []value.Value) (value.Value, error) {
		return elementwiseNumeric("triangle", args[0], triangleOf)
	})
	r.register("square_wave", 1, 2, func(args []value.Value) (value.Value, error) {
		period := 2 * math.Pi
		if len(args) == 2 {
			p, err := number("square_wave", args, 1)
			if err != nil {
				return nil, err
			}
			if p == 0 {
				return nil, soerr.New(soerr.Domain, "square_wave: period must be non-zero")
			}
			period = p
		}
		return elementwiseNumeric("square_wave", args[0], func(x float64) float64 {
			return squareWaveOf(x, period)
		})
	})
	r.register("relu", 1, 1, func(args []value.Value) (value.Value, error) {
		return elementwiseNumeric("relu", args[0], reluOf)
	})
	r.register("leaky_relu", 1, 2, func(args []value.Value) (value.Value, error) {
		alpha := 0.01
		if len(args) == 2 {
			a, err := number("leaky_relu", args, 1)
			if err != nil {
				return nil, err
			}
			alpha = a
		}
		return elementwiseNumeric("leaky_relu", args[0], func(x float64) float64 {
			return leakyReluOf(x, alpha)
		})
	})
	// piecewise takes alternating condition/value pairs plus a trailing
	// default: the value of the first true condition, or the default if
	// none match.
	r.register("piecewise", 3, -1, func(args []value.Value) (value.Value, error) {
		if len(args)%2 == 0 {
			return nil, soerr.New(soerr.Arity, "piecewise: expects alternating condition/value pairs plus a trailing default")
		}
		for i := 0; i+1 < len(args); i += 2 {
			if value.Truthy(args[i]) {
				return args[i+1], nil
			}
		}
		return args[len(args)-1], nil
	})
}

// heavisideOf is the unit step function, H(0) = 0.5 by convention.
func heavisideOf(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return 0
	default:
		return 0.5
	}
}

// rectOf is the boxcar function, rect(±0.5) = 0.5 by convention.
func rectOf(x float64) float64 {
	ax := math.Abs(x)
	switch {
	case ax < 0.5:
		return 1
	case ax == 0.5:
		return 0.5
	default:
		return 0
	}
}

func triangleOf(x float64) float64 {
	v := 1 - math.Abs(x)
	if v < 0 {
		return 0
	}
	return v
}

func squareWaveOf(x, period float64) float64 {
	s := math.Sin(2 * math.Pi * x / period)
	if s >= 0 {
		return 1
	}
	return -1
}

func reluOf(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}

func leakyReluOf(x, alpha float64) float64 {
	if x > 0 {
		return x
	}
	return alpha * x
}
