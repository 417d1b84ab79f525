package optimize

import (
	"math"
	"testing"
)

func approx(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

// maximize 3x + 2y subject to x + y <= 4, x + 3y <= 6, x,y >= 0.
func sampleLP() *Problem {
	return &Problem{
		Maximize: true,
		C:        []float64{3, 2},
		A: [][]float64{
			{1, 1},
			{1, 3},
		},
		Relation: []Relation{LE, LE},
		B:        []float64{4, 6},
	}
}

func TestSimplexSolvesSampleLP(t *testing.T) {
	res := Solve(sampleLP(), 1000)
	if res.Status != Optimal {
		t.Fatalf("expected Optimal, got %s", res.Status)
	}
	if !approx(res.Objective, 12, 1e-6) {
		t.Fatalf("got objective %v, want 12", res.Objective)
	}
}

func TestDualSimplexAgreesWithPrimal(t *testing.T) {
	primal := Solve(sampleLP(), 1000)
	dual := SolveDual(sampleLP(), 1000)
	if dual.Status != Optimal {
		t.Fatalf("expected Optimal, got %s", dual.Status)
	}
	if !approx(primal.Objective, dual.Objective, 1e-6) {
		t.Fatalf("primal/dual disagree: %v vs %v", primal.Objective, dual.Objective)
	}
}

func TestInfeasibleProblemReported(t *testing.T) {
	p := &Problem{
		Maximize: true,
		C:        []float64{1, 1},
		A: [][]float64{
			{1, 0},
			{1, 0},
		},
		Relation: []Relation{GE, LE},
		B:        []float64{10, 2},
	}
	res := Solve(p, 1000)
	if res.Status != Infeasible {
		t.Fatalf("expected Infeasible, got %s", res.Status)
	}
}

func TestUnboundedProblemReported(t *testing.T) {
	p := &Problem{
		Maximize: true,
		C:        []float64{1},
		A:        [][]float64{{-1}},
		Relation: []Relation{LE},
		B:        []float64{1},
	}
	res := Solve(p, 1000)
	if res.Status != Unbounded {
		t.Fatalf("expected Unbounded, got %s", res.Status)
	}
}

func TestBranchAndBoundRoundsToIntegers(t *testing.T) {
	p := sampleLP()
	spec := IntegerSpec{Integer: []bool{true, true}}
	res := BranchAndBound(p, spec, 1000, 10000)
	if res.Status != Optimal {
		t.Fatalf("expected Optimal, got %s", res.Status)
	}
	for _, x := range res.X {
		if math.Abs(x-math.Round(x)) > 1e-6 {
			t.Fatalf("expected integral solution, got %v", res.X)
		}
	}
}

func TestSensitivityAnalysisReturnsShadowPrices(t *testing.T) {
	res, sens := Analyze(sampleLP(), 1000)
	if res.Status != Optimal {
		t.Fatalf("expected Optimal, got %s", res.Status)
	}
	if sens == nil {
		t.Fatal("expected non-nil sensitivity report")
	}
}
