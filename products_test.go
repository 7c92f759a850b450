package dcf

import "testing"

func TestScheduleStepsBackwardFromEnd(t *testing.T) {
	origin, _, twoYear := flatDates(t)
	dates := Schedule(origin, twoYear, Period{Months: 12})
	if len(dates) != 2 {
		t.Fatalf("Schedule length = %d, want 2", len(dates))
	}
	if !dates[len(dates)-1].Equal(twoYear) {
		t.Errorf("last scheduled date = %v, want maturity %v", dates[len(dates)-1].Time(), twoYear.Time())
	}
	for i := 1; i < len(dates); i++ {
		if !dates[i].After(dates[i-1]) {
			t.Errorf("Schedule dates must be strictly ascending: %v then %v", dates[i-1].Time(), dates[i].Time())
		}
	}
}

func TestBondHasCouponsAndRedemption(t *testing.T) {
	origin, _, twoYear := flatDates(t)
	bond, err := Bond(origin, twoYear, Period{Months: 12}, 100, 0.05, Act365)
	if err != nil {
		t.Fatalf("Bond: %v", err)
	}
	// coupon leg, redemption leg
	if len(bond.Legs()) != 2 {
		t.Fatalf("Bond leg count = %d, want 2", len(bond.Legs()))
	}
	flat := bond.Flatten()
	// 2 coupons + 1 redemption
	if len(flat.Payoffs) != 3 {
		t.Fatalf("Bond payoff count = %d, want 3", len(flat.Payoffs))
	}
	redemption := bond.Leg(1)
	last := redemption.Payoffs[len(redemption.Payoffs)-1]
	if last.Notional() != 100 {
		t.Errorf("redemption notional = %v, want 100", last.Notional())
	}
	if !last.PayDate().Equal(twoYear) {
		t.Errorf("redemption pay date = %v, want maturity %v", last.PayDate().Time(), twoYear.Time())
	}
}

func TestBondPricesAtParWhenCouponEqualsYield(t *testing.T) {
	origin, _, twoYear := flatDates(t)
	flatRate := 0.04
	bond, err := Bond(origin, twoYear, Period{Months: 12}, 100, flatRate, Act365)
	if err != nil {
		t.Fatalf("Bond: %v", err)
	}
	curve, err := NewZeroRateCurve([]Date{origin}, []float64{flatRate}, origin, Act365)
	if err != nil {
		t.Fatalf("NewZeroRateCurve: %v", err)
	}
	ctx := ValuationContext{Now: origin, DayCount: Act365}
	pv, err := PresentValue(bond.Flatten(), curve, origin, ctx, false)
	if err != nil {
		t.Fatalf("PresentValue: %v", err)
	}
	// not exactly par under continuous vs annual compounding mismatch in the
	// coupon accrual convention, but should be close for a short bond
	if pv < 95 || pv > 105 {
		t.Errorf("near-par bond priced far from par: %v", pv)
	}
}

func TestInterestRateSwapLegsOffset(t *testing.T) {
	origin, _, twoYear := flatDates(t)
	forward := constantRate{0.03}
	swap, err := InterestRateSwap(origin, twoYear, Period{Months: 12}, Period{Months: 12}, 1000, 0.03, forward, Act365)
	if err != nil {
		t.Fatalf("InterestRateSwap: %v", err)
	}
	ctx := ValuationContext{Now: origin, DayCount: Act365}
	curve, err := NewZeroRateCurve([]Date{origin}, []float64{0.03}, origin, Act365)
	if err != nil {
		t.Fatalf("NewZeroRateCurve: %v", err)
	}
	if len(swap.Legs()) != 2 {
		t.Fatalf("InterestRateSwap leg count = %d, want 2", len(swap.Legs()))
	}
	pv, err := PresentValue(swap.Flatten(), curve, origin, ctx, false)
	if err != nil {
		t.Fatalf("PresentValue: %v", err)
	}
	// fixed rate equals floating forward on every period, so the swap should
	// price close to flat (pay leg negated cancels receive leg)
	if !almostEq(pv, 0, 1e-6) {
		t.Errorf("equal fixed/floating swap should price near zero, got %v", pv)
	}
}

func TestAssetSwapBondLegPlusNegatedFloatLeg(t *testing.T) {
	origin, _, twoYear := flatDates(t)
	forward := constantRate{0.02}
	sw, err := AssetSwap(origin, twoYear, Period{Months: 12}, 100, 0.03, forward, Act365)
	if err != nil {
		t.Fatalf("AssetSwap: %v", err)
	}
	// bond leg, float leg
	if len(sw.Legs()) != 2 {
		t.Fatalf("AssetSwap leg count = %d, want 2", len(sw.Legs()))
	}
	flat := sw.Flatten()
	// bond leg (2 coupons + redemption) + float leg (2 payments, negated) = 5
	if len(flat.Payoffs) != 5 {
		t.Fatalf("AssetSwap payoff count = %d, want 5", len(flat.Payoffs))
	}
	foundNegativeFloat := false
	for _, p := range flat.Payoffs {
		if rp, ok := p.(RateCashFlowPayOff); ok && rp.Forward != nil && rp.Amount < 0 {
			foundNegativeFloat = true
		}
	}
	if !foundNegativeFloat {
		t.Error("expected a negated floating-leg payoff in the asset swap")
	}
}
