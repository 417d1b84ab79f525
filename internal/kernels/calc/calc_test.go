package calc

import (
	"math"
	"testing"
)

func TestDiffApproximatesDerivative(t *testing.T) {
	f := Func(func(x float64) float64 { return x * x })
	got := Diff(f, 3, 1e-4)
	if math.Abs(got-6) > 1e-4 {
		t.Fatalf("got %v, want ~6", got)
	}
}

func TestDiff2ApproximatesSecondDerivative(t *testing.T) {
	f := Func(func(x float64) float64 { return x * x * x })
	got := Diff2(f, 2, 1e-3)
	if math.Abs(got-12) > 1e-2 {
		t.Fatalf("got %v, want ~12", got)
	}
}

func TestTrapezoidAndSimpsonAgree(t *testing.T) {
	f := Func(math.Sin)
	trap := Trapezoid(f, 0, math.Pi, 1000)
	simp := Simpson(f, 0, math.Pi, 1000)
	if math.Abs(trap-2) > 1e-4 {
		t.Fatalf("trapezoid: got %v, want ~2", trap)
	}
	if math.Abs(simp-2) > 1e-9 {
		t.Fatalf("simpson: got %v, want ~2", simp)
	}
}

func TestRombergConverges(t *testing.T) {
	f := Func(func(x float64) float64 { return x * x })
	got := Romberg(f, 0, 1, 8)
	if math.Abs(got-1.0/3.0) > 1e-9 {
		t.Fatalf("got %v, want ~1/3", got)
	}
}

func TestAdaptiveQuad(t *testing.T) {
	f := Func(math.Sin)
	got := AdaptiveQuad(f, 0, math.Pi, 1e-9, 20)
	if math.Abs(got-2) > 1e-6 {
		t.Fatalf("got %v, want ~2", got)
	}
}

func TestBisectionFindsRoot(t *testing.T) {
	f := Func(func(x float64) float64 { return x*x - 2 })
	root, err := Bisection(f, 0, 2, 1e-10, 100)
	if err != nil {
		t.Fatalf("Bisection: %v", err)
	}
	if math.Abs(root-math.Sqrt2) > 1e-6 {
		t.Fatalf("got %v, want ~sqrt(2)", root)
	}
}

func TestBisectionRejectsNonBracketingInterval(t *testing.T) {
	f := Func(func(x float64) float64 { return x*x + 1 })
	if _, err := Bisection(f, 0, 2, 1e-10, 100); err != ErrDomain {
		t.Fatalf("expected ErrDomain, got %v", err)
	}
}

func TestNewtonFindsRoot(t *testing.T) {
	f := Func(func(x float64) float64 { return x*x - 2 })
	root, err := Newton(f, 1, 1e-10, 100)
	if err != nil {
		t.Fatalf("Newton: %v", err)
	}
	if math.Abs(root-math.Sqrt2) > 1e-6 {
		t.Fatalf("got %v, want ~sqrt(2)", root)
	}
}

func TestSecantFindsRoot(t *testing.T) {
	f := Func(func(x float64) float64 { return x*x - 2 })
	root, err := Secant(f, 0, 2, 1e-10, 100)
	if err != nil {
		t.Fatalf("Secant: %v", err)
	}
	if math.Abs(root-math.Sqrt2) > 1e-6 {
		t.Fatalf("got %v, want ~sqrt(2)", root)
	}
}

func TestAllRootFindersAgree(t *testing.T) {
	f := Func(func(x float64) float64 { return x*x*x - x - 2 })
	bisect, err := Bisection(f, 1, 2, 1e-10, 200)
	if err != nil {
		t.Fatalf("Bisection: %v", err)
	}
	newton, err := Newton(f, 1.5, 1e-10, 200)
	if err != nil {
		t.Fatalf("Newton: %v", err)
	}
	secant, err := Secant(f, 1, 2, 1e-10, 200)
	if err != nil {
		t.Fatalf("Secant: %v", err)
	}
	if math.Abs(bisect-newton) > 1e-6 || math.Abs(bisect-secant) > 1e-6 {
		t.Fatalf("root finders disagree: bisect=%v newton=%v secant=%v", bisect, newton, secant)
	}
}
