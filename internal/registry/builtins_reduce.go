package registry

import (
	"math"
	"sort"

	"github.com/eddndev/achronyme-go/internal/soerr"
	"github.com/eddndev/achronyme-go/internal/value"
)

// registerReduce wires spec.md §4.6's reduction kernels: sum/mean/std/
// variance/median/percentile/argmin/argmax/cov/corr/norm/normalize/dot/cross.
func registerReduce(r *Registry) {
	r.register("sum", 1, 1, reduceFn("sum", sumOf))
	r.register("mean", 1, 1, reduceFn("mean", meanOf))
	r.register("variance", 1, 1, reduceFn("variance", varianceOf))
	r.register("std", 1, 1, reduceFn("std", func(d []float64) float64 { return math.Sqrt(varianceOf(d)) }))
	r.register("median", 1, 1, reduceFn("median", medianOf))

	r.register("percentile", 2, 2, func(args []value.Value) (value.Value, error) {
		t, err := vec1("percentile", args)
		if err != nil {
			return nil, err
		}
		p, err := number("percentile", args, 1)
		if err != nil {
			return nil, err
		}
		if p < 0 || p > 100 {
			return nil, soerr.New(soerr.Domain, "percentile: p must be in [0, 100]")
		}
		return value.Number(percentileOf(t.Data, p)), nil
	})

	r.register("argmin", 1, 1, argFn("argmin", func(a, b float64) bool { return a < b }))
	r.register("argmax", 1, 1, argFn("argmax", func(a, b float64) bool { return a > b }))

	r.register("dot", 2, 2, func(args []value.Value) (value.Value, error) {
		a, err := tensor("dot", args, 0)
		if err != nil {
			return nil, err
		}
		b, err := tensor("dot", args, 1)
		if err != nil {
			return nil, err
		}
		if a.Rank() != 1 || b.Rank() != 1 || len(a.Data) != len(b.Data) {
			return nil, soerr.New(soerr.Shape, "dot: operands must be vectors of equal length")
		}
		var s float64
		for i := range a.Data {
			s += a.Data[i] * b.Data[i]
		}
		return value.Number(s), nil
	})

	r.register("cross", 2, 2, func(args []value.Value) (value.Value, error) {
		a, err := tensor("cross", args, 0)
		if err != nil {
			return nil, err
		}
		b, err := tensor("cross", args, 1)
		if err != nil {
			return nil, err
		}
		if a.Rank() != 1 || b.Rank() != 1 || len(a.Data) != 3 || len(b.Data) != 3 {
			return nil, soerr.New(soerr.Shape, "cross: operands must be 3-vectors")
		}
		return value.NewVector(
			a.Data[1]*b.Data[2]-a.Data[2]*b.Data[1],
			a.Data[2]*b.Data[0]-a.Data[0]*b.Data[2],
			a.Data[0]*b.Data[1]-a.Data[1]*b.Data[0],
		), nil
	})

	r.register("norm", 1, 1, func(args []value.Value) (value.Value, error) {
		t, err := vec1("norm", args)
		if err != nil {
			return nil, err
		}
		var s float64
		for _, d := range t.Data {
			s += d * d
		}
		return value.Number(math.Sqrt(s)), nil
	})
	r.register("normL1", 1, 1, func(args []value.Value) (value.Value, error) {
		t, err := vec1("normL1", args)
		if err != nil {
			return nil, err
		}
		var s float64
		for _, d := range t.Data {
			s += math.Abs(d)
		}
		return value.Number(s), nil
	})
	r.register("normalize", 1, 1, func(args []value.Value) (value.Value, error) {
		t, err := vec1("normalize", args)
		if err != nil {
			return nil, err
		}
		var s float64
		for _, d := range t.Data {
			s += d * d
		}
		n := math.Sqrt(s)
		if n == 0 {
			return nil, soerr.New(soerr.Domain, "normalize: zero vector has no direction")
		}
		out := t.Clone()
		for i := range out.Data {
			out.Data[i] /= n
		}
		return out, nil
	})
	r.register("cov", 2, 2, func(args []value.Value) (value.Value, error) {
		x, err := vec1("cov", args)
		if err != nil {
			return nil, err
		}
		y, err := tensor("cov", args, 1)
		if err != nil {
			return nil, err
		}
		if len(x.Data) != len(y.Data) || len(x.Data) < 2 {
			return nil, soerr.New(soerr.Shape, "cov: vectors must share length and have at least 2 elements")
		}
		return value.Number(covOf(x.Data, y.Data)), nil
	})
	r.register("corr", 2, 2, func(args []value.Value) (value.Value, error) {
		x, err := vec1("corr", args)
		if err != nil {
			return nil, err
		}
		y, err := tensor("corr", args, 1)
		if err != nil {
			return nil, err
		}
		if len(x.Data) != len(y.Data) || len(x.Data) < 2 {
			return nil, soerr.New(soerr.Shape, "corr: vectors must share length and have at least 2 elements")
		}
		sx := math.Sqrt(varianceOf(x.Data))
		sy := math.Sqrt(varianceOf(y.Data))
		if sx == 0 || sy == 0 {
			return nil, soerr.New(soerr.Domain, "corr: undefined for a constant vector")
		}
		return value.Number(covOf(x.Data, y.Data) / (sx * sy)), nil
	})
}

func reduceFn(name string, f func([]float64) float64) func([]value.Value) (value.Value, error) {
	return func(args []value.Value) (value.Value, error) {
		t, err := vec1(name, args)
		if err != nil {
			return nil, err
		}
		if len(t.Data) == 0 {
			return nil, soerr.New(soerr.Domain, "%s: empty Tensor", name)
		}
		return value.Number(f(t.Data)), nil
	}
}

func argFn(name string, better func(a, b float64) bool) func([]value.Value) (value.Value, error) {
	return func(args []value.Value) (value.Value, error) {
		t, err := vec1(name, args)
		if err != nil {
			return nil, err
		}
		if len(t.Data) == 0 {
			return nil, soerr.New(soerr.Domain, "%s: empty Tensor", name)
		}
		best := 0
		for i, d := range t.Data {
			if better(d, t.Data[best]) {
				best = i
			}
		}
		return value.Number(float64(best)), nil
	}
}

func sumOf(d []float64) float64 {
	var s float64
	for _, v := range d {
		s += v
	}
	return s
}

func meanOf(d []float64) float64 { return sumOf(d) / float64(len(d)) }

func varianceOf(d []float64) float64 {
	m := meanOf(d)
	var s float64
	for _, v := range d {
		diff := v - m
		s += diff * diff
	}
	return s / float64(len(d))
}

func medianOf(d []float64) float64 {
	sorted := append([]float64(nil), d...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func percentileOf(d []float64, p float64) float64 {
	sorted := append([]float64(nil), d...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	rank := p / 100 * float64(n-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

func covOf(x, y []float64) float64 {
	mx, my := meanOf(x), meanOf(y)
	var s float64
	for i := range x {
		s += (x[i] - mx) * (y[i] - my)
	}
	return s / float64(len(x)-1)
}
