package dcf

import (
	"math"
	"testing"
)

func TestIntrinsicCallBoundary(t *testing.T) {
	i := Intrinsic{}
	itm, err := i.Call(1, 90, 100, 0.2)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if !almostEq(itm, 10, epsilon) {
		t.Errorf("intrinsic ITM call = %v, want 10", itm)
	}
	otm, err := i.Call(1, 110, 100, 0.2)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if otm != 0 {
		t.Errorf("intrinsic OTM call = %v, want 0", otm)
	}
}

func TestPutCallParity(t *testing.T) {
	formulas := []OptionPricingFormula{Intrinsic{}, Bachelier{}, Black76{}, DisplacedBlack76{Displacement: 0.03}}
	tau, strike, forward, vol := 1.0, 100.0, 105.0, 0.2
	for _, f := range formulas {
		call, err := f.Call(tau, strike, forward, vol)
		if err != nil {
			t.Fatalf("%T.Call: %v", f, err)
		}
		put, err := Put(f, tau, strike, forward, vol)
		if err != nil {
			t.Fatalf("%T.Put: %v", f, err)
		}
		// call - put = F - K (put-call parity for forward-settled options)
		if !almostEq(call-put, forward-strike, 1e-9) {
			t.Errorf("%T: call-put parity failed: call=%v put=%v F-K=%v", f, call, put, forward-strike)
		}
	}
}

func TestBlack76MatchesClosedForm(t *testing.T) {
	tau, strike, forward, vol := 2.0, 100.0, 110.0, 0.25
	got, err := Black76{}.Call(tau, strike, forward, vol)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	v := vol * math.Sqrt(tau)
	d1 := (math.Log(forward/strike) + v*v/2) / v
	d2 := d1 - v
	want := forward*NormalCDF(d1) - strike*NormalCDF(d2)
	if !almostEq(got, want, 1e-9) {
		t.Errorf("Black76.Call = %v, want %v", got, want)
	}
}

func TestBlack76DegenerateZeroVolIsIntrinsic(t *testing.T) {
	got, err := Black76{}.Call(1, 90, 100, 0)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if !almostEq(got, 10, epsilon) {
		t.Errorf("zero-vol Black76 call should equal intrinsic, got %v", got)
	}
}

func TestGenericDeltaFallsBackToFiniteDifference(t *testing.T) {
	// DisplacedBlack76 implements Deltaer, so exercise the fallback via a
	// formula that only implements Call.
	f := onlyCallFormula{}
	d, err := Delta(f, 1, 100, 105, 0.2)
	if err != nil {
		t.Fatalf("Delta: %v", err)
	}
	if d <= 0 {
		t.Errorf("finite-difference delta of an increasing call price should be positive, got %v", d)
	}
}

type onlyCallFormula struct{}

func (onlyCallFormula) Call(tau, strike, forward, vol float64) (float64, error) {
	return Black76{}.Call(tau, strike, forward, vol)
}

func TestBinaryFallsBackToCallSpread(t *testing.T) {
	f := onlyCallFormula{}
	b, err := Binary(f, 1, 100, 150, 0.2)
	if err != nil {
		t.Fatalf("Binary: %v", err)
	}
	if b <= 0.9 || b > 1 {
		t.Errorf("deep ITM binary call should be close to 1, got %v", b)
	}
}

func TestGammaFallsBackToFiniteDifferenceForBlack76(t *testing.T) {
	g, err := Gamma(Black76{}, 1, 100, 105, 0.2)
	if err != nil {
		t.Fatalf("Gamma: %v", err)
	}
	if g <= 0 {
		t.Errorf("Black76 gamma should be positive near at-the-money, got %v", g)
	}
}

func TestVegaAnalyticBachelier(t *testing.T) {
	v, err := Vega(Bachelier{}, 1, 100, 102, 15)
	if err != nil {
		t.Fatalf("Vega: %v", err)
	}
	if v <= 0 {
		t.Errorf("Bachelier vega should be positive, got %v", v)
	}
}

func TestThetaFallsBackToFiniteDifference(t *testing.T) {
	theta, err := Theta(onlyCallFormula{}, 1, 100, 105, 0.2)
	if err != nil {
		t.Fatalf("Theta: %v", err)
	}
	if theta >= 0 {
		t.Errorf("a call losing time value as tau shrinks should have negative theta, got %v", theta)
	}
}

func TestBachelierGreeksAnalyticVsFallback(t *testing.T) {
	tau, strike, forward, vol := 1.0, 100.0, 102.0, 15.0
	analytic, err := Delta(Bachelier{}, tau, strike, forward, vol)
	if err != nil {
		t.Fatalf("Delta: %v", err)
	}
	fd, err := Delta(onlyCallFormula{}, tau, strike, forward, vol)
	if err != nil {
		t.Fatalf("Delta fallback: %v", err)
	}
	_ = fd // different model (Black76), just confirms fallback path runs
	if analytic <= 0 || analytic > DeltaScale {
		t.Errorf("Bachelier analytic delta (scaled) out of expected range: %v", analytic)
	}
}
