package optimize

import "math"

// build assembles the standard-form tableau for p: one slack/surplus column
// per constraint, plus an artificial column for every GE/EQ row (and any row
// whose RHS needed sign-flipping), so that Phase 1 always has a ready-made
// feasible basis (spec.md §4.9 two-phase method).
type build struct {
	t            *tableau
	n            int // structural variable count
	numSlack     int
	artificial   []int // column indices of artificial variables
	slackSign    []float64
}

func buildStandardForm(p *Problem) *build {
	m := len(p.A)
	n := len(p.C)

	numArtificial := 0
	for i := range p.Relation {
		rel := p.Relation[i]
		if p.B[i] < 0 {
			switch rel {
			case LE:
				rel = GE
			case GE:
				rel = LE
			}
		}
		if rel != LE {
			numArtificial++
		}
	}
	total := n + m + numArtificial // n structural + one slack/surplus per row + artificials
	t := newTableau(m, total)

	artificial := make([]int, 0, numArtificial)
	slackSign := make([]float64, m)
	artCol := n + m

	for i := 0; i < m; i++ {
		row := t.rows[i]
		a := append([]float64(nil), p.A[i]...)
		b := p.B[i]
		rel := p.Relation[i]
		if b < 0 {
			for j := range a {
				a[j] = -a[j]
			}
			b = -b
			switch rel {
			case LE:
				rel = GE
			case GE:
				rel = LE
			}
		}
		copy(row[:n], a)
		row[total] = b

		slackCol := n + i
		switch rel {
		case LE:
			row[slackCol] = 1
			slackSign[i] = 1
			t.basis[i] = slackCol
		case GE:
			row[slackCol] = -1
			slackSign[i] = -1
			row[artCol] = 1
			t.basis[i] = artCol
			artificial = append(artificial, artCol)
			artCol++
		case EQ:
			row[artCol] = 1
			t.basis[i] = artCol
			artificial = append(artificial, artCol)
			artCol++
		}
	}

	return &build{t: t, n: n, numSlack: m, artificial: artificial, slackSign: slackSign}
}

// canonicalizeObjective installs rawCost (a maximize-sense cost vector over
// all total columns) as the tableau's objective row, reduced against the
// current basis so basic columns read zero (the standard simplex setup
// step, reused for Phase 1, Phase 2, and post-pivot restarts).
func (t *tableau) canonicalizeObjective(rawCost []float64) {
	objRow := t.rows[t.m]
	for j := 0; j < t.n; j++ {
		objRow[j] = -rawCost[j]
	}
	objRow[t.n] = 0
	for i := 0; i < t.m; i++ {
		b := t.basis[i]
		coef := objRow[b]
		if coef == 0 {
			continue
		}
		for j := range objRow {
			objRow[j] -= coef * t.rows[i][j]
		}
	}
}

// Solve runs the two-phase primal simplex method on p (spec.md §4.9): Phase
// 1 minimizes the sum of artificial variables to find a feasible basis (or
// proves infeasibility); Phase 2 optimizes the real objective from there.
func Solve(p *Problem, maxIter int) *Result {
	if maxIter <= 0 {
		maxIter = defaultMaxIterations
	}
	b := buildStandardForm(p)
	t := b.t
	total := b.n + b.numSlack + len(b.artificial)

	if len(b.artificial) > 0 {
		phase1Cost := make([]float64, total)
		for _, col := range b.artificial {
			phase1Cost[col] = -1 // minimize sum(a) == maximize -sum(a)
		}
		t.canonicalizeObjective(phase1Cost)
		status := t.runSimplex(maxIter)
		if status == MaxIterations {
			return &Result{Status: MaxIterations}
		}
		artificialSum := 0.0
		x := t.solutionVector(total)
		for _, col := range b.artificial {
			artificialSum += x[col]
		}
		if artificialSum > 1e-7 {
			return &Result{Status: Infeasible}
		}
		driveArtificialsOut(t, b.artificial)
	}

	sign := 1.0
	if !p.Maximize {
		sign = -1.0
	}
	cost := make([]float64, total)
	for j, c := range p.C {
		cost[j] = sign * c
	}
	for _, col := range b.artificial {
		cost[col] = -1e12 // forbid artificials from re-entering in Phase 2
	}
	t.canonicalizeObjective(cost)
	status := t.runSimplex(maxIter)

	x := t.solutionVector(total)
	obj := 0.0
	for j, c := range p.C {
		obj += c * x[j]
	}

	shadow := make([]float64, b.numSlack)
	for i := 0; i < b.numSlack; i++ {
		shadow[i] = sign * t.rows[t.m][b.n+i] * b.slackSign[i]
	}

	return &Result{
		X:            x[:b.n],
		Objective:    obj,
		Status:       status,
		ShadowPrices: shadow,
	}
}

// driveArtificialsOut pivots any artificial variable still basic at a
// degenerate zero level out of the basis where a structural/slack column
// offers a usable pivot; rows where none exists are structurally redundant
// constraints and are left as-is (their artificial stays basic at 0, which
// does not affect the Phase 2 solution since Phase 2 forbids it reentering
// at a nonzero level).
func driveArtificialsOut(t *tableau, artificial []int) {
	isArtificial := make(map[int]bool, len(artificial))
	for _, c := range artificial {
		isArtificial[c] = true
	}
	for i, b := range t.basis {
		if !isArtificial[b] {
			continue
		}
		for j := 0; j < t.n; j++ {
			if isArtificial[j] {
				continue
			}
			if math.Abs(t.rows[i][j]) > 1e-8 {
				t.pivot(i, j)
				break
			}
		}
	}
}
