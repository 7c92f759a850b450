package dcf

import "testing"

func TestCashFlowLegListFlattenConcatenatesInLegOrder(t *testing.T) {
	_, oneYear, twoYear := flatDates(t)
	fixed, err := NewFixedCashFlowList([]Date{oneYear}, []float64{10}, nil)
	if err != nil {
		t.Fatalf("NewFixedCashFlowList: %v", err)
	}
	redemption, err := NewFixedCashFlowList([]Date{twoYear}, []float64{100}, nil)
	if err != nil {
		t.Fatalf("NewFixedCashFlowList: %v", err)
	}
	legs := NewCashFlowLegList(fixed, redemption)
	if len(legs.Legs()) != 2 {
		t.Fatalf("Legs() length = %d, want 2", len(legs.Legs()))
	}
	flat := legs.Flatten()
	if len(flat.Payoffs) != 2 {
		t.Fatalf("Flatten payoff count = %d, want 2", len(flat.Payoffs))
	}
	if !flat.Payoffs[0].PayDate().Equal(oneYear) {
		t.Errorf("first flattened payoff should come from the first leg")
	}
	// fixed-only legs have no separate accrual start, so Origin is the
	// earliest leg's own earliest pay date.
	if !legs.Origin().Equal(oneYear) {
		t.Errorf("Origin() = %v, want %v", legs.Origin().Time(), oneYear.Time())
	}
}

func TestCashFlowLegListPayDatesIsSortedUnion(t *testing.T) {
	_, oneYear, twoYear := flatDates(t)
	a, _ := NewFixedCashFlowList([]Date{twoYear}, []float64{1}, nil)
	b, _ := NewFixedCashFlowList([]Date{oneYear, twoYear}, []float64{1, 1}, nil)
	legs := NewCashFlowLegList(a, b)
	dates := legs.PayDates()
	if len(dates) != 2 {
		t.Fatalf("PayDates length = %d, want 2 (de-duplicated)", len(dates))
	}
	if !dates[0].Equal(oneYear) || !dates[1].Equal(twoYear) {
		t.Errorf("PayDates should be sorted ascending, got %v, %v", dates[0].Time(), dates[1].Time())
	}
}

func TestCashFlowLegListLegReturnsUnderlyingList(t *testing.T) {
	_, oneYear, _ := flatDates(t)
	a, _ := NewFixedCashFlowList([]Date{oneYear}, []float64{5}, nil)
	b, _ := NewFixedCashFlowList([]Date{oneYear}, []float64{7}, nil)
	legs := NewCashFlowLegList(a, b)
	if legs.Leg(0).Payoffs[0].Notional() != 5 {
		t.Errorf("Leg(0) should be the first constructor argument")
	}
	if legs.Leg(1).Payoffs[0].Notional() != 7 {
		t.Errorf("Leg(1) should be the second constructor argument")
	}
}
