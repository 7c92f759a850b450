package dcf

import (
	"math"
	"testing"
)

func TestInterpolatorExactAtKnots(t *testing.T) {
	xs := []float64{0, 1, 2, 3}
	ys := []float64{1, 2, 4, 8}
	schemes := []Scheme{Flat, Left, Right, Nearest, Linear, LogLinear, SquaredLinear, NaturalSpline, NotAKnotSpline}
	for _, s := range schemes {
		interp, err := Build(Uniform(s), xs, ys)
		if err != nil {
			t.Fatalf("scheme %v: Build error: %v", s, err)
		}
		for i, x := range xs {
			if s == Flat {
				continue // flat only reproduces the first knot everywhere
			}
			got, err := interp.At(x)
			if err != nil {
				t.Fatalf("scheme %v: At(%v): %v", s, x, err)
			}
			if !almostEq(got, ys[i], 1e-9) {
				t.Errorf("scheme %v: At(%v) = %v, want %v", s, x, got, ys[i])
			}
		}
	}
}

func TestNoInterpolationOnlyAnswersAtKnots(t *testing.T) {
	interp, err := Build(Uniform(NoInterpolation), []float64{0, 1}, []float64{10, 20})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got, err := interp.At(0)
	if err != nil || got != 10 {
		t.Errorf("At(0) = %v, %v, want 10, nil", got, err)
	}
	if _, err := interp.At(0.5); err == nil {
		t.Error("expected DomainError for an off-knot query under NoInterpolation")
	}
}

func TestZeroSchemeIsZeroOffKnots(t *testing.T) {
	interp, err := Build(Uniform(Zero), []float64{0, 1}, []float64{10, 20})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got, _ := interp.At(0.5)
	if got != 0 {
		t.Errorf("Zero scheme off-knot = %v, want 0", got)
	}
	got, _ = interp.At(1)
	if got != 20 {
		t.Errorf("Zero scheme at knot = %v, want 20", got)
	}
}

func TestConstantSchemeAliasesLeft(t *testing.T) {
	interp, err := Build(Uniform(Constant), []float64{0, 1, 2}, []float64{10, 20, 30})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got, _ := interp.At(1.5)
	if got != 20 {
		t.Errorf("Constant at 1.5 = %v, want 20 (same as Left)", got)
	}
}

func TestNegLogLinearInvertsSign(t *testing.T) {
	xs := []float64{0, 1, 2}
	ys := []float64{1, math.Exp(0.1), math.Exp(0.2)}
	interp, err := Build(Uniform(NegLogLinear), xs, ys)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got, err := interp.At(1)
	if err != nil {
		t.Fatalf("At: %v", err)
	}
	if !almostEq(got, ys[1], 1e-9) {
		t.Errorf("NegLogLinear at knot = %v, want %v", got, ys[1])
	}
}

func TestLogConstantHoldsLogFlat(t *testing.T) {
	interp, err := Build(Uniform(LogConstant), []float64{0, 1, 2}, []float64{1, 2, 4})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got, err := interp.At(1.5)
	if err != nil {
		t.Fatalf("At: %v", err)
	}
	if !almostEq(got, 2, 1e-9) {
		t.Errorf("LogConstant should hold the left knot's value, got %v, want 2", got)
	}
}

func TestNegLogConstantHoldsLogFlat(t *testing.T) {
	interp, err := Build(Uniform(NegLogConstant), []float64{0, 1, 2}, []float64{1, math.Exp(0.1), math.Exp(0.2)})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got, err := interp.At(1.5)
	if err != nil {
		t.Fatalf("At: %v", err)
	}
	if !almostEq(got, math.Exp(0.1), 1e-9) {
		t.Errorf("NegLogConstant should hold the left knot's value, got %v", got)
	}
}

func TestLogLinearRateInterpolatesBetweenKnots(t *testing.T) {
	xs := []float64{0, 1, 2}
	ys := []float64{1, math.Exp(-0.05), math.Exp(-0.1)}
	interp, err := Build(Uniform(LogLinearRate), xs, ys)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got, err := interp.At(1)
	if err != nil {
		t.Fatalf("At: %v", err)
	}
	if !almostEq(got, ys[1], 1e-9) {
		t.Errorf("LogLinearRate at knot = %v, want %v", got, ys[1])
	}
}

func TestSquaredConstantHoldsSquaredFlat(t *testing.T) {
	interp, err := Build(Uniform(SquaredConstant), []float64{0, 1, 2}, []float64{1, 2, 3})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got, err := interp.At(1.5)
	if err != nil {
		t.Fatalf("At: %v", err)
	}
	if !almostEq(got, 2, 1e-9) {
		t.Errorf("SquaredConstant should hold the left knot's value, got %v, want 2", got)
	}
}

func TestLinearInterpolationMidpoint(t *testing.T) {
	interp, err := Build(Uniform(Linear), []float64{0, 2}, []float64{0, 10})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got, err := interp.At(1)
	if err != nil {
		t.Fatalf("At: %v", err)
	}
	if !almostEq(got, 5, epsilon) {
		t.Errorf("midpoint linear = %v, want 5", got)
	}
}

func TestLeftInterpolationConstant(t *testing.T) {
	interp, _ := Build(Uniform(Left), []float64{0, 1, 2}, []float64{10, 20, 30})
	got, _ := interp.At(1.5)
	if got != 20 {
		t.Errorf("left at 1.5 = %v, want 20", got)
	}
	got, _ = interp.At(-1)
	if got != 10 {
		t.Errorf("left below grid = %v, want 10 (edge extension)", got)
	}
}

func TestNearestTieBreaksLeft(t *testing.T) {
	interp, _ := Build(Uniform(Nearest), []float64{0, 2}, []float64{100, 200})
	got, _ := interp.At(1)
	if got != 100 {
		t.Errorf("nearest tie should break left, got %v", got)
	}
}

func TestLogLinearPositivity(t *testing.T) {
	_, err := Build(Uniform(LogLinear), []float64{0, 1}, []float64{1, -1})
	if err == nil {
		t.Error("expected error for non-positive value under log interpolation")
	}
}

func TestLogConstantRateZeroSpecialCase(t *testing.T) {
	xs := []float64{0, 1, 2}
	ys := []float64{1, math.Exp(-0.05), math.Exp(-0.1)}
	interp, err := Build(Uniform(LogConstantRate), xs, ys)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got, err := interp.At(0)
	if err != nil {
		t.Fatalf("At(0): %v", err)
	}
	if !almostEq(got, 1, epsilon) {
		t.Errorf("LogConstantRate at x=0 = %v, want 1", got)
	}
}

func TestDuplicateKnotsLastValueWins(t *testing.T) {
	interp, err := Build(Uniform(Left), []float64{1, 1, 2}, []float64{10, 20, 30})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got, _ := interp.At(1)
	if got != 20 {
		t.Errorf("duplicate knot should keep last value, got %v, want 20", got)
	}
}

func TestCompositeSchemeAppliesPerRegion(t *testing.T) {
	scheme := CompositeScheme{LeftScheme: Flat, MidScheme: Linear, RightScheme: Flat}
	interp, err := Build(scheme, []float64{0, 1, 2}, []float64{10, 20, 30})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	below, _ := interp.At(-5)
	if below != 10 {
		t.Errorf("left region should use flat at first knot value, got %v", below)
	}
	above, _ := interp.At(50)
	if above != 10 {
		t.Errorf("right region (flat) should reuse left-knot value from its own scheme's fit, got %v", above)
	}
	mid, _ := interp.At(0.5)
	if !almostEq(mid, 15, epsilon) {
		t.Errorf("mid region should interpolate linearly, got %v", mid)
	}
}

func TestEmptyKnotGridErrors(t *testing.T) {
	c, err := NewCurve(nil, nil, Uniform(Linear))
	if err != nil {
		t.Fatalf("NewCurve with empty knots: %v", err)
	}
	if _, err := c.At(0); err == nil {
		t.Error("expected DomainError for empty curve")
	}
}

func TestNaturalSplineExactAtKnots(t *testing.T) {
	xs := []float64{0, 1, 2, 3}
	ys := []float64{0, 1, 0, 1}
	interp, err := newSpline(xs, ys, true)
	if err != nil {
		t.Fatalf("newSpline: %v", err)
	}
	for i, x := range xs {
		got, err := interp.At(x)
		if err != nil {
			t.Fatalf("At(%v): %v", x, err)
		}
		if !almostEq(got, ys[i], 1e-9) {
			t.Errorf("spline exactness at knot %v = %v, want %v", x, got, ys[i])
		}
	}
}
