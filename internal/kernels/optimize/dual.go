package optimize

import "math"

// DualSimplex re-optimizes a tableau that is dual-feasible (objective row
// has no negative entries) but primal-infeasible (some RHS is negative) —
// the situation spec.md §4.9 describes for re-solving after an RHS change
// without restarting from scratch. It selects the most negative RHS as the
// leaving row and the entering column via the dual ratio test.
func (t *tableau) dualSimplex(maxIter int) Status {
	objRow := t.m
	for iter := 0; iter < maxIter; iter++ {
		row := -1
		mostNeg := -1e-9
		for i := 0; i < t.m; i++ {
			if t.rows[i][t.n] < mostNeg {
				mostNeg = t.rows[i][t.n]
				row = i
			}
		}
		if row == -1 {
			return Optimal
		}
		col := -1
		bestRatio := math.Inf(1)
		for j := 0; j < t.n; j++ {
			if t.rows[row][j] >= -1e-12 {
				continue
			}
			ratio := t.rows[objRow][j] / -t.rows[row][j]
			if ratio < bestRatio {
				bestRatio = ratio
				col = j
			}
		}
		if col == -1 {
			return Infeasible
		}
		t.pivot(row, col)
	}
	return MaxIterations
}

// SolveDual builds p's standard form, runs a dual simplex pass, then
// finishes with the primal simplex, using a large negative cost on the
// artificial columns (big-M) in place of a separate Phase 1. The standard
// form always has non-negative right-hand sides, so the dual simplex pass
// finds no leaving row and performs no pivots; the primal simplex does all
// of the optimization. Shadow prices are not filled in.
func SolveDual(p *Problem, maxIter int) *Result {
	if maxIter <= 0 {
		maxIter = defaultMaxIterations
	}
	b := buildStandardForm(p)
	t := b.t
	total := b.n + b.numSlack + len(b.artificial)

	sign := 1.0
	if !p.Maximize {
		sign = -1.0
	}
	cost := make([]float64, total)
	for j, c := range p.C {
		cost[j] = sign * c
	}
	for _, col := range b.artificial {
		cost[col] = -1e12
	}
	t.canonicalizeObjective(cost)

	status := t.dualSimplex(maxIter)
	if status != Optimal {
		return &Result{Status: status}
	}
	status = t.runSimplex(maxIter)

	x := t.solutionVector(total)
	obj := 0.0
	for j, c := range p.C {
		obj += c * x[j]
	}
	return &Result{X: x[:b.n], Objective: obj, Status: status}
}
