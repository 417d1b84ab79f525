package optimize

import "math"

// IntegerSpec marks which structural variables must take integer values;
// an all-true spec over a 0/1-bounded problem is binary_linprog, per
// spec.md §4.9's two named entry points sharing one branch-and-bound core.
type IntegerSpec struct {
	Integer []bool
	Binary  []bool // if true for index j, 0 <= x_j <= 1 is enforced alongside integrality
}

const integerTolerance = 1e-6

// BranchAndBound solves the mixed-integer program obtained by relaxing the
// integrality of p per spec and branching on the most-fractional variable,
// depth-first, pruning on bound and infeasibility (spec.md §4.9).
func BranchAndBound(p *Problem, spec IntegerSpec, maxIter, maxNodes int) *Result {
	best := &Result{Status: Infeasible}
	bestObj := math.Inf(-1)
	if !p.Maximize {
		bestObj = math.Inf(1)
	}
	nodes := 0

	var explore func(bounds []boundPair)
	explore = func(bounds []boundPair) {
		nodes++
		if nodes > maxNodes {
			return
		}
		sub := applyBounds(p, bounds)
		r := Solve(sub, maxIter)
		if r.Status != Optimal {
			return
		}
		if p.Maximize && r.Objective <= bestObj+1e-9 {
			return
		}
		if !p.Maximize && r.Objective >= bestObj-1e-9 {
			return
		}

		idx, frac := mostFractional(r.X, spec)
		if idx == -1 {
			best = r
			bestObj = r.Objective
			return
		}
		floorVal := math.Floor(frac)
		ceilVal := math.Ceil(frac)

		lowBounds := append(append([]boundPair(nil), bounds...), boundPair{idx: idx, upper: true, value: floorVal})
		highBounds := append(append([]boundPair(nil), bounds...), boundPair{idx: idx, upper: false, value: ceilVal})
		explore(lowBounds)
		explore(highBounds)
	}

	var initial []boundPair
	for j, isBin := range spec.Binary {
		if isBin {
			initial = append(initial, boundPair{idx: j, upper: true, value: 1})
		}
	}
	explore(initial)
	return best
}

type boundPair struct {
	idx   int
	upper bool
	value float64
}

// applyBounds returns a copy of p with extra <= / >= rows encoding the
// accumulated branch bounds.
func applyBounds(p *Problem, bounds []boundPair) *Problem {
	sub := &Problem{
		Maximize: p.Maximize,
		C:        p.C,
		A:        append([][]float64(nil), p.A...),
		Relation: append([]Relation(nil), p.Relation...),
		B:        append([]float64(nil), p.B...),
	}
	for _, b := range bounds {
		row := make([]float64, len(p.C))
		row[b.idx] = 1
		sub.A = append(sub.A, row)
		sub.B = append(sub.B, b.value)
		if b.upper {
			sub.Relation = append(sub.Relation, LE)
		} else {
			sub.Relation = append(sub.Relation, GE)
		}
	}
	return sub
}

// mostFractional returns the index of the integer-constrained variable
// furthest from an integer value, and that value, or -1 if the relaxed
// solution is already integral within tolerance (spec.md §4.9's
// most-fractional branching rule).
func mostFractional(x []float64, spec IntegerSpec) (int, float64) {
	best := -1
	bestDist := integerTolerance
	for j, v := range x {
		if j >= len(spec.Integer) || !spec.Integer[j] {
			continue
		}
		frac := v - math.Floor(v)
		dist := math.Min(frac, 1-frac)
		if dist > bestDist {
			bestDist = dist
			best = j
		}
	}
	if best == -1 {
		return -1, 0
	}
	return best, x[best]
}
