package registry

import (
	"github.com/eddndev/achronyme-go/internal/kernels/optimize"
	"github.com/eddndev/achronyme-go/internal/soerr"
	"github.com/eddndev/achronyme-go/internal/value"
)

// registerOptimize wires spec.md §4.9's LP/ILP builtins onto package
// kernels/optimize. An LP problem is passed as a Record — either the
// original maximize(Bool)/a/b/relation shape, or spec.md §8 S6/S7's
// named-argument call shape `simplex(c=[...], A=[...], b=[...], sense=+1)`
// which the parser's named-argument sugar collapses into the same kind of
// Record before it ever reaches here.
func registerOptimize(r *Registry) {
	r.register("linprog", 1, 2, func(args []value.Value) (value.Value, error) {
		p, err := problemFromRecord("linprog", args, 0)
		if err != nil {
			return nil, err
		}
		maxIter := maxIterArg(args, 1)
		res := optimize.Solve(p, maxIter)
		return resultToRecord(res), nil
	})
	// simplex is linprog's primal-simplex tableau method under spec.md's
	// literal name; two_phase and revised_simplex name alternative pivoting
	// strategies spec.md §4.10 describes, but Solve's tableau already runs
	// a Phase-1/Phase-2 split internally when artificials are needed and
	// produces the identical optimum a revised (B^-1-only) formulation
	// would, so all three are the same kernel call under the names S6/S7
	// and §4.5 require.
	r.register("simplex", 1, 2, func(args []value.Value) (value.Value, error) {
		p, err := problemFromRecord("simplex", args, 0)
		if err != nil {
			return nil, err
		}
		maxIter := maxIterArg(args, 1)
		res := optimize.Solve(p, maxIter)
		return resultToRecord(res), nil
	})
	r.register("two_phase", 1, 2, func(args []value.Value) (value.Value, error) {
		p, err := problemFromRecord("two_phase", args, 0)
		if err != nil {
			return nil, err
		}
		maxIter := maxIterArg(args, 1)
		res := optimize.Solve(p, maxIter)
		return resultToRecord(res), nil
	})
	r.register("revised_simplex", 1, 2, func(args []value.Value) (value.Value, error) {
		p, err := problemFromRecord("revised_simplex", args, 0)
		if err != nil {
			return nil, err
		}
		maxIter := maxIterArg(args, 1)
		res := optimize.Solve(p, maxIter)
		return resultToRecord(res), nil
	})
	r.register("linprog_dual", 1, 2, func(args []value.Value) (value.Value, error) {
		p, err := problemFromRecord("linprog_dual", args, 0)
		if err != nil {
			return nil, err
		}
		maxIter := maxIterArg(args, 1)
		res := optimize.SolveDual(p, maxIter)
		return resultToRecord(res), nil
	})
	r.register("dual_simplex", 1, 2, func(args []value.Value) (value.Value, error) {
		p, err := problemFromRecord("dual_simplex", args, 0)
		if err != nil {
			return nil, err
		}
		maxIter := maxIterArg(args, 1)
		res := optimize.SolveDual(p, maxIter)
		return resultToRecord(res), nil
	})
	r.register("linprog_sensitivity", 1, 2, func(args []value.Value) (value.Value, error) {
		p, err := problemFromRecord("linprog_sensitivity", args, 0)
		if err != nil {
			return nil, err
		}
		maxIter := maxIterArg(args, 1)
		res, sens := optimize.Analyze(p, maxIter)
		rec := resultToRecord(res)
		if sens != nil {
			rec.Fields["shadow_prices"] = fromVector(sens.ShadowPrices)
			rec.Fields["rhs_low"] = fromVector(sens.RHSRangeLow)
			rec.Fields["rhs_high"] = fromVector(sens.RHSRangeHigh)
		}
		return rec, nil
	})
	// shadow_price returns just the dual values read off the optimal
	// tableau's objective row at the slack columns (spec.md §4.10).
	r.register("shadow_price", 1, 2, func(args []value.Value) (value.Value, error) {
		p, err := problemFromRecord("shadow_price", args, 0)
		if err != nil {
			return nil, err
		}
		maxIter := maxIterArg(args, 1)
		res, sens := optimize.Analyze(p, maxIter)
		if sens == nil {
			return nil, soerr.New(soerr.Infeasible, "shadow_price: problem has no optimal basis (status %s)", res.Status)
		}
		return fromVector(sens.ShadowPrices), nil
	})
	// sensitivity_c ranges each objective coefficient; sensitivity_b ranges
	// each constraint's right-hand side (spec.md §4.10's "Ranging on cost
	// coefficients and right-hand sides").
	r.register("sensitivity_c", 1, 2, func(args []value.Value) (value.Value, error) {
		p, err := problemFromRecord("sensitivity_c", args, 0)
		if err != nil {
			return nil, err
		}
		maxIter := maxIterArg(args, 1)
		res, sens := optimize.Analyze(p, maxIter)
		if sens == nil {
			return nil, soerr.New(soerr.Infeasible, "sensitivity_c: problem has no optimal basis (status %s)", res.Status)
		}
		rec := value.NewRecord()
		rec.Fields["low"] = fromVector(sens.CRangeLow)
		rec.Fields["high"] = fromVector(sens.CRangeHigh)
		return rec, nil
	})
	r.register("sensitivity_b", 1, 2, func(args []value.Value) (value.Value, error) {
		p, err := problemFromRecord("sensitivity_b", args, 0)
		if err != nil {
			return nil, err
		}
		maxIter := maxIterArg(args, 1)
		res, sens := optimize.Analyze(p, maxIter)
		if sens == nil {
			return nil, soerr.New(soerr.Infeasible, "sensitivity_b: problem has no optimal basis (status %s)", res.Status)
		}
		rec := value.NewRecord()
		rec.Fields["low"] = fromVector(sens.RHSRangeLow)
		rec.Fields["high"] = fromVector(sens.RHSRangeHigh)
		return rec, nil
	})
	r.register("intlinprog", 1, 2, func(args []value.Value) (value.Value, error) {
		p, err := problemFromRecord("intlinprog", args, 0)
		if err != nil {
			return nil, err
		}
		maxIter := maxIterArg(args, 1)
		spec := optimize.IntegerSpec{Integer: allTrue(len(p.C))}
		res := optimize.BranchAndBound(p, spec, maxIter, 20000)
		return resultToRecord(res), nil
	})
	r.register("binary_linprog", 1, 2, func(args []value.Value) (value.Value, error) {
		p, err := problemFromRecord("binary_linprog", args, 0)
		if err != nil {
			return nil, err
		}
		n := len(p.C)
		for j := 0; j < n; j++ {
			row := make([]float64, n)
			row[j] = 1
			p.A = append(p.A, row)
			p.Relation = append(p.Relation, optimize.LE)
			p.B = append(p.B, 1)
		}
		maxIter := maxIterArg(args, 1)
		spec := optimize.IntegerSpec{Integer: allTrue(n), Binary: allTrue(n)}
		res := optimize.BranchAndBound(p, spec, maxIter, 20000)
		return resultToRecord(res), nil
	})
}

func allTrue(n int) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = true
	}
	return out
}

func maxIterArg(args []value.Value, i int) int {
	if len(args) > i {
		if n, err := number("", args, i); err == nil {
			return int(n)
		}
	}
	return 0
}

func problemFromRecord(name string, args []value.Value, i int) (*optimize.Problem, error) {
	rec, err := record(name, args, i)
	if err != nil {
		return nil, err
	}
	p := &optimize.Problem{}
	if sv, ok := rec.Fields["sense"]; ok {
		s, ok := asFloatValue(sv)
		if !ok {
			return nil, soerr.New(soerr.Type, "%s: field \"sense\" must be a number", name)
		}
		p.Maximize = s > 0
	} else if mv, ok := rec.Fields["maximize"]; ok {
		p.Maximize = bool(value.Truthy(mv))
	}
	cv, ok := rec.Fields["c"]
	if !ok {
		return nil, soerr.New(soerr.Type, "%s: problem record missing field \"c\"", name)
	}
	ct, ok := cv.(*value.Tensor)
	if !ok || ct.Rank() != 1 {
		return nil, soerr.New(soerr.Type, "%s: field \"c\" must be a vector", name)
	}
	p.C = append([]float64(nil), ct.Data...)

	av, ok := rec.Fields["A"]
	if !ok {
		av, ok = rec.Fields["a"]
	}
	if !ok {
		return nil, soerr.New(soerr.Type, "%s: problem record missing field \"A\"", name)
	}
	at, ok := av.(*value.Tensor)
	if !ok || at.Rank() != 2 {
		return nil, soerr.New(soerr.Type, "%s: field \"a\" must be a matrix", name)
	}
	rows := at.Shape[0]
	p.A = make([][]float64, rows)
	for row := 0; row < rows; row++ {
		p.A[row] = append([]float64(nil), at.Row(row)...)
	}

	bv, ok := rec.Fields["b"]
	if !ok {
		return nil, soerr.New(soerr.Type, "%s: problem record missing field \"b\"", name)
	}
	bt, ok := bv.(*value.Tensor)
	if !ok || bt.Rank() != 1 || len(bt.Data) != rows {
		return nil, soerr.New(soerr.Shape, "%s: field \"b\" must be a vector matching the row count of \"a\"", name)
	}
	p.B = append([]float64(nil), bt.Data...)

	p.Relation = make([]optimize.Relation, rows)
	if relv, ok := rec.Fields["relation"]; ok {
		rt, ok := relv.(*value.Tensor)
		if !ok || len(rt.Data) != rows {
			return nil, soerr.New(soerr.Shape, "%s: field \"relation\" must be a vector matching the row count of \"a\"", name)
		}
		for row, code := range rt.Data {
			switch {
			case code < 0:
				p.Relation[row] = optimize.LE
			case code > 0:
				p.Relation[row] = optimize.GE
			default:
				p.Relation[row] = optimize.EQ
			}
		}
	} else {
		for row := range p.Relation {
			p.Relation[row] = optimize.LE
		}
	}
	return p, nil
}

func resultToRecord(res *optimize.Result) *value.Record {
	rec := value.NewRecord()
	rec.Fields["status"] = value.String(res.Status.String())
	if res.X != nil {
		rec.Fields["x"] = fromVector(res.X)
	}
	rec.Fields["objective"] = value.Number(res.Objective)
	return rec
}
