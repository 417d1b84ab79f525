package optimize

// Sensitivity reports shadow prices and, for each constraint's right-hand
// side and each objective coefficient, how far it can move down (RangeLow,
// a non-positive offset) and up (RangeHigh, a non-negative offset) from its
// current value while the problem still solves to Optimal. The offsets do
// not detect a change of optimal basis.
type Sensitivity struct {
	ShadowPrices []float64
	RHSRangeLow  []float64
	RHSRangeHigh []float64
	CRangeLow    []float64
	CRangeHigh   []float64
}

// Analyze re-solves p and derives RHS and cost-coefficient ranging by
// perturbing each constraint's right-hand side, and each objective
// coefficient, independently and searching for the largest offset at which
// Solve still returns Optimal (doubling, then bisecting). It does not check
// whether the optimal basis changes along the way, and a direction that
// never fails is reported as about 1.1e12 (2^40).
func Analyze(p *Problem, maxIter int) (*Result, *Sensitivity) {
	base := Solve(p, maxIter)
	if base.Status != Optimal {
		return base, nil
	}
	m := len(p.B)
	rhsLow := make([]float64, m)
	rhsHigh := make([]float64, m)
	for i := 0; i < m; i++ {
		lo, hi := rhsRange(p, i, maxIter)
		rhsLow[i] = lo
		rhsHigh[i] = hi
	}
	n := len(p.C)
	cLow := make([]float64, n)
	cHigh := make([]float64, n)
	for j := 0; j < n; j++ {
		lo, hi := cRange(p, j, maxIter)
		cLow[j] = lo
		cHigh[j] = hi
	}
	return base, &Sensitivity{
		ShadowPrices: base.ShadowPrices,
		RHSRangeLow:  rhsLow,
		RHSRangeHigh: rhsHigh,
		CRangeLow:    cLow,
		CRangeHigh:   cHigh,
	}
}

// cRange mirrors rhsRange, perturbing objective coefficient j instead of a
// constraint's right-hand side.
func cRange(p *Problem, j int, maxIter int) (low, high float64) {
	original := p.C[j]
	feasibleAt := func(delta float64) bool {
		p.C[j] = original + delta
		r := Solve(p, maxIter)
		p.C[j] = original
		return r.Status == Optimal
	}
	high = expandBound(feasibleAt, 1)
	low = -expandBound(func(d float64) bool { return feasibleAt(-d) }, 1)
	return low, high
}

// rhsRange does a coarse bracket-and-bisect search for the largest
// perturbation of constraint i's RHS (in each direction) that keeps the
// problem feasible with the same optimal status (a practical
// sensitivity-range estimate rather than the closed-form simplex ranging
// formula, adequate for SOC programs' exploratory use, spec.md §4.9).
func rhsRange(p *Problem, i int, maxIter int) (low, high float64) {
	original := p.B[i]
	feasibleAt := func(delta float64) bool {
		p.B[i] = original + delta
		r := Solve(p, maxIter)
		p.B[i] = original
		return r.Status == Optimal
	}
	high = expandBound(feasibleAt, 1)
	low = -expandBound(func(d float64) bool { return feasibleAt(-d) }, 1)
	return low, high
}

func expandBound(feasibleAt func(float64) bool, start float64) float64 {
	step := start
	last := 0.0
	for i := 0; i < 40; i++ {
		if !feasibleAt(step) {
			break
		}
		last = step
		step *= 2
	}
	lo, hi := last, step
	for i := 0; i < 30; i++ {
		mid := (lo + hi) / 2
		if feasibleAt(mid) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}
