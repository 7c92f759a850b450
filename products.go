package dcf

// Schedule steps backward from end by period until reaching (or passing)
// start, returning the dates in ascending order. This is the library's
// simple fallback schedule generator — the holiday-calendar-aware
// business-date stepping a full calendar package would add is out of
// scope here.
func Schedule(start, end Date, period Period) []Date {
	var dates []Date
	cur := end
	for cur.After(start) {
		dates = append(dates, cur)
		cur = cur.AddPeriod(period.Negate())
	}
	// reverse into ascending order
	for i, j := 0, len(dates)-1; i < j; i, j = i+1, j-1 {
		dates[i], dates[j] = dates[j], dates[i]
	}
	return dates
}

// Bond builds a fixed-rate coupon leg plus a final redemption payment of
// notional, from a coupon schedule, as a two-leg CashFlowLegList
// (coupon leg, then redemption leg).
func Bond(issue, maturity Date, period Period, notional, couponRate float64, dayCount DayCount) (*CashFlowLegList, error) {
	dates := Schedule(issue, maturity, period)
	origin := issue
	coupons, err := NewRateCashFlowList(dates, []float64{notional}, couponRate, dayCount, Period{}, nil, &origin)
	if err != nil {
		return nil, err
	}
	redemption, err := NewFixedCashFlowList([]Date{maturity}, []float64{notional}, nil)
	if err != nil {
		return nil, err
	}
	return NewCashFlowLegList(coupons, redemption), nil
}

// InterestRateSwap builds a pay leg (fixed) and a receive leg (floating,
// referencing forward) between the same start and maturity, each leg on its
// own schedule (payPeriod, receivePeriod), as a two-leg
// CashFlowLegList (pay leg amounts negated, matching the "pay" convention).
func InterestRateSwap(start, maturity Date, payPeriod, receivePeriod Period, notional, fixedRate float64, forward RateSource, dayCount DayCount) (*CashFlowLegList, error) {
	payDates := Schedule(start, maturity, payPeriod)
	receiveDates := Schedule(start, maturity, receivePeriod)
	origin := start

	payLeg, err := NewRateCashFlowList(payDates, []float64{notional}, fixedRate, dayCount, Period{}, nil, &origin)
	if err != nil {
		return nil, err
	}
	receiveLeg, err := NewRateCashFlowList(receiveDates, []float64{notional}, 0, dayCount, Period{}, forward, &origin)
	if err != nil {
		return nil, err
	}
	return NewCashFlowLegList(payLeg.Negate(), receiveLeg), nil
}

// AssetSwap wraps a fixed-rate bond's coupon-plus-redemption leg against a
// floating leg paying the forward rate (no spread) on the bond's schedule,
// as a two-leg CashFlowLegList (bond leg, then negated float leg). No
// spread is solved for.
func AssetSwap(issue, maturity Date, period Period, notional, couponRate float64, forward RateSource, dayCount DayCount) (*CashFlowLegList, error) {
	bond, err := Bond(issue, maturity, period, notional, couponRate, dayCount)
	if err != nil {
		return nil, err
	}
	origin := issue
	floatLeg, err := NewRateCashFlowList(Schedule(issue, maturity, period), []float64{notional}, 0, dayCount, Period{}, forward, &origin)
	if err != nil {
		return nil, err
	}
	return NewCashFlowLegList(bond.Flatten(), floatLeg.Negate()), nil
}
