package registry

import (
	"math/cmplx"

	"github.com/eddndev/achronyme-go/internal/value"
)

func cmplxAbs(c complex128) float64 { return cmplx.Abs(c) }

// registerComplexFns wires spec.md §4.5's Complex accessors: real, imag,
// conj, arg (principal phase), and complex construction from two reals.
func registerComplexFns(r *Registry) {
	r.register("real", 1, 1, func(args []value.Value) (value.Value, error) {
		c, err := complexArg("real", args, 0)
		if err != nil {
			return nil, err
		}
		return value.Number(real(c)), nil
	})
	r.register("imag", 1, 1, func(args []value.Value) (value.Value, error) {
		c, err := complexArg("imag", args, 0)
		if err != nil {
			return nil, err
		}
		return value.Number(imag(c)), nil
	})
	r.register("conj", 1, 1, func(args []value.Value) (value.Value, error) {
		c, err := complexArg("conj", args, 0)
		if err != nil {
			return nil, err
		}
		return value.Complex(cmplx.Conj(c)), nil
	})
	r.register("arg", 1, 1, func(args []value.Value) (value.Value, error) {
		c, err := complexArg("arg", args, 0)
		if err != nil {
			return nil, err
		}
		return value.Number(cmplx.Phase(c)), nil
	})
	r.register("complex", 2, 2, func(args []value.Value) (value.Value, error) {
		re, im, err := num2("complex", args)
		if err != nil {
			return nil, err
		}
		return value.Complex(complex(re, im)), nil
	})
	r.register("polar", 2, 2, func(args []value.Value) (value.Value, error) {
		rho, theta, err := num2("polar", args)
		if err != nil {
			return nil, err
		}
		return value.Complex(cmplx.Rect(rho, theta)), nil
	})
	r.register("csqrt", 1, 1, func(args []value.Value) (value.Value, error) {
		c, err := complexArg("csqrt", args, 0)
		if err != nil {
			return nil, err
		}
		return value.Complex(cmplx.Sqrt(c)), nil
	})
	r.register("cexp", 1, 1, func(args []value.Value) (value.Value, error) {
		c, err := complexArg("cexp", args, 0)
		if err != nil {
			return nil, err
		}
		return value.Complex(cmplx.Exp(c)), nil
	})
}
