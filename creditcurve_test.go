package dcf

import (
	"math"
	"testing"
)

func TestFlatIntensitySurvivalRoundTrip(t *testing.T) {
	origin, oneYear, _ := flatDates(t)
	curve, err := NewFlatIntensityCurve([]Date{origin, oneYear}, []float64{0.01, 0.01}, origin, Act365)
	if err != nil {
		t.Fatalf("NewFlatIntensityCurve: %v", err)
	}
	surv, err := curve.SurvivalProbability(origin, oneYear)
	if err != nil {
		t.Fatalf("SurvivalProbability: %v", err)
	}
	want := math.Exp(-0.01 * Act365(origin, oneYear))
	if !almostEq(surv, want, 1e-6) {
		t.Errorf("survival probability = %v, want %v", surv, want)
	}
	def, err := curve.DefaultProbability(origin, oneYear)
	if err != nil {
		t.Fatalf("DefaultProbability: %v", err)
	}
	if !almostEq(def, 1-surv, 1e-12) {
		t.Errorf("default probability should be 1 - survival, got %v and %v", def, surv)
	}
}

func TestHazardRateCurveFlatIntensityIntegratesHazard(t *testing.T) {
	origin, oneYear, _ := flatDates(t)
	curve, err := NewHazardRateCurve([]Date{origin, oneYear}, []float64{0.02, 0.02}, origin, Act365)
	if err != nil {
		t.Fatalf("NewHazardRateCurve: %v", err)
	}
	h, err := curve.HazardRate(origin)
	if err != nil {
		t.Fatalf("HazardRate: %v", err)
	}
	if !almostEq(h, 0.02, 1e-9) {
		t.Errorf("HazardRate(origin) = %v, want 0.02", h)
	}
	lam, err := curve.FlatIntensity(origin, oneYear)
	if err != nil {
		t.Fatalf("FlatIntensity: %v", err)
	}
	if !almostEq(lam, 0.02, 1e-3) {
		t.Errorf("flat hazard curve's average intensity = %v, want ~0.02", lam)
	}
	surv, err := curve.SurvivalProbability(origin, oneYear)
	if err != nil {
		t.Fatalf("SurvivalProbability: %v", err)
	}
	want := math.Exp(-lam * Act365(origin, oneYear))
	if !almostEq(surv, want, 1e-9) {
		t.Errorf("survival probability = %v, want %v", surv, want)
	}
}

func TestSurvivalProbabilityClampedAtFloor(t *testing.T) {
	origin, oneYear, _ := flatDates(t)
	curve, err := NewSurvivalProbabilityCurve([]Date{origin, oneYear}, []float64{1, -0.5}, origin, Act365)
	if err != nil {
		t.Fatalf("NewSurvivalProbabilityCurve: %v", err)
	}
	surv, err := curve.SurvivalProbability(origin, oneYear)
	if err != nil {
		t.Fatalf("SurvivalProbability: %v", err)
	}
	if surv < 0 || surv > 1 {
		t.Errorf("clamped survival probability out of [0,1]: %v", surv)
	}
}

func TestDefaultProbabilityCurveDefersToSurvival(t *testing.T) {
	origin, oneYear, _ := flatDates(t)
	curve, err := NewDefaultProbabilityCurve([]Date{origin, oneYear}, []float64{0, 0.1}, origin, Act365)
	if err != nil {
		t.Fatalf("NewDefaultProbabilityCurve: %v", err)
	}
	def, err := curve.DefaultProbability(origin, oneYear)
	if err != nil {
		t.Fatalf("DefaultProbability: %v", err)
	}
	if !almostEq(def, 0.1, 1e-6) {
		t.Errorf("default probability round trip = %v, want ~0.1", def)
	}
}

func TestMarginalSurvivalChainsTenors(t *testing.T) {
	origin, oneYear, twoYear := flatDates(t)
	curve, err := NewMarginalSurvivalCurve([]Date{origin, oneYear}, []float64{0.98, 0.98}, 1.0, origin, Act365)
	if err != nil {
		t.Fatalf("NewMarginalSurvivalCurve: %v", err)
	}
	surv, err := curve.SurvivalProbability(origin, twoYear)
	if err != nil {
		t.Fatalf("SurvivalProbability: %v", err)
	}
	want := math.Pow(0.98, Act365(origin, twoYear))
	if !almostEq(surv, want, 1e-6) {
		t.Errorf("chained marginal survival = %v, want %v", surv, want)
	}
}

func TestMarginalDefaultCurveDefersToSurvival(t *testing.T) {
	origin, oneYear, _ := flatDates(t)
	curve, err := NewMarginalDefaultCurve([]Date{origin, oneYear}, []float64{0.02, 0.02}, 1.0, origin, Act365)
	if err != nil {
		t.Fatalf("NewMarginalDefaultCurve: %v", err)
	}
	def, err := curve.DefaultProbability(origin, oneYear)
	if err != nil {
		t.Fatalf("DefaultProbability: %v", err)
	}
	want := 1 - math.Pow(0.98, Act365(origin, oneYear))
	if !almostEq(def, want, 1e-6) {
		t.Errorf("marginal default round trip = %v, want %v", def, want)
	}
}
