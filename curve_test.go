package dcf

import "testing"

func TestCurveArithmetic(t *testing.T) {
	a, err := NewCurve([]float64{0, 1, 2}, []float64{1, 2, 3}, Uniform(Linear))
	if err != nil {
		t.Fatalf("NewCurve: %v", err)
	}
	b, err := NewCurve([]float64{0, 1, 2}, []float64{10, 10, 10}, Uniform(Linear))
	if err != nil {
		t.Fatalf("NewCurve: %v", err)
	}
	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	got, _ := sum.At(1)
	if !almostEq(got, 12, epsilon) {
		t.Errorf("a+b at 1 = %v, want 12", got)
	}

	scaled := a.MulScalar(2)
	got, _ = scaled.At(1)
	if !almostEq(got, 4, epsilon) {
		t.Errorf("a*2 at 1 = %v, want 4", got)
	}

	quotient, err := b.Div(a)
	if err != nil {
		t.Fatalf("Div: %v", err)
	}
	got, _ = quotient.At(1)
	if !almostEq(got, 5, epsilon) {
		t.Errorf("b/a at 1 = %v, want 5", got)
	}

	bumped := a.AddScalar(10)
	got, _ = bumped.At(1)
	if !almostEq(got, 12, epsilon) {
		t.Errorf("a+10 at 1 = %v, want 12", got)
	}
}

func TestCurveIntegrateConstant(t *testing.T) {
	c, err := NewCurve([]float64{0, 10}, []float64{5, 5}, Uniform(Linear))
	if err != nil {
		t.Fatalf("NewCurve: %v", err)
	}
	avg, err := c.Integrate(0, 5)
	if err != nil {
		t.Fatalf("Integrate: %v", err)
	}
	if !almostEq(avg, 5, 1e-6) {
		t.Errorf("average of constant curve = %v, want 5", avg)
	}
}

func TestCurveDerivativeOfLinear(t *testing.T) {
	c, err := NewCurve([]float64{0, 10}, []float64{0, 20}, Uniform(Linear))
	if err != nil {
		t.Fatalf("NewCurve: %v", err)
	}
	d, err := c.Derivative(3)
	if err != nil {
		t.Fatalf("Derivative: %v", err)
	}
	if !almostEq(d, 2, 1e-3) {
		t.Errorf("derivative of slope-2 line = %v, want ~2", d)
	}
}

func TestDateCurveRoundTripsOriginalKnots(t *testing.T) {
	d0, _ := ParseDate("2024-01-01")
	d1, _ := ParseDate("2025-01-01")
	d2, _ := ParseDate("2026-01-01")
	dates := []Date{d0, d1, d2}
	values := []float64{0.01, 0.02, 0.03}
	dc, err := NewDateCurve(dates, values, Uniform(Linear), d0, Act365)
	if err != nil {
		t.Fatalf("NewDateCurve: %v", err)
	}
	for i, d := range dates {
		got, err := dc.At(d)
		if err != nil {
			t.Fatalf("At: %v", err)
		}
		if !almostEq(got, values[i], 1e-9) {
			t.Errorf("At(%v) = %v, want %v", d.Time(), got, values[i])
		}
	}
	gotDates := dc.Dates()
	if len(gotDates) != len(dates) {
		t.Fatalf("Dates() length = %d, want %d", len(gotDates), len(dates))
	}
	for i, d := range gotDates {
		if !d.Equal(dates[i]) {
			t.Errorf("Dates()[%d] = %v, want %v", i, d.Time(), dates[i].Time())
		}
	}
}

func TestDateCurveWithFixingOverridesInterpolator(t *testing.T) {
	d0, _ := ParseDate("2024-01-01")
	d1, _ := ParseDate("2025-01-01")
	dc, err := NewDateCurve([]Date{d0, d1}, []float64{0.01, 0.02}, Uniform(Linear), d0, Act365)
	if err != nil {
		t.Fatalf("NewDateCurve: %v", err)
	}
	fixingDate, _ := ParseDate("2024-06-01")
	fixed := dc.WithFixing(fixingDate, 0.99)
	got, err := fixed.At(fixingDate)
	if err != nil {
		t.Fatalf("At: %v", err)
	}
	if got != 0.99 {
		t.Errorf("fixing override = %v, want 0.99", got)
	}
	// original curve must remain untouched
	orig, _ := dc.At(fixingDate)
	if orig == 0.99 {
		t.Errorf("WithFixing mutated the original curve")
	}
}
