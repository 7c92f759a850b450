package dcf

import "fmt"

// CashFlowList is an ordered, time-sliceable container of payoffs,
// supporting arithmetic with scalars and concatenation with other lists.
type CashFlowList struct {
	Payoffs []Payoff
}

// PayDates returns the pay date of every payoff, in list order.
func (l *CashFlowList) PayDates() []Date {
	out := make([]Date, len(l.Payoffs))
	for i, p := range l.Payoffs {
		out[i] = p.PayDate()
	}
	return out
}

// Origin returns the earliest date referenced by the list: the minimum of
// every payoff's pay date (and, for rate payoffs, its accrual start).
func (l *CashFlowList) Origin() Date {
	var origin Date
	first := true
	consider := func(d Date) {
		if first || d.Before(origin) {
			origin = d
			first = false
		}
	}
	for _, p := range l.Payoffs {
		consider(p.PayDate())
		if rp, ok := p.(RateCashFlowPayOff); ok {
			consider(rp.Start)
		}
		if crp, ok := p.(ContingentRateCashFlowPayOff); ok {
			consider(crp.Rate.Start)
		}
	}
	return origin
}

// Slice returns the sub-list of payoffs with pay date in [from, to].
func (l *CashFlowList) Slice(from, to Date) *CashFlowList {
	out := &CashFlowList{}
	for _, p := range l.Payoffs {
		d := p.PayDate()
		if !d.Before(from) && !d.After(to) {
			out.Payoffs = append(out.Payoffs, p)
		}
	}
	return out
}

// Concat returns a new list containing this list's payoffs followed by
// other's.
func (l *CashFlowList) Concat(other *CashFlowList) *CashFlowList {
	out := &CashFlowList{Payoffs: make([]Payoff, 0, len(l.Payoffs)+len(other.Payoffs))}
	out.Payoffs = append(out.Payoffs, l.Payoffs...)
	out.Payoffs = append(out.Payoffs, other.Payoffs...)
	return out
}

// scaleAmount returns a payoff identical to p but with its notional/amount
// multiplied by k. Only payoff kinds that carry a scalar amount can be
// scaled; others are returned unchanged.
func scaleAmount(p Payoff, k float64) Payoff {
	switch v := p.(type) {
	case FixedCashFlowPayOff:
		v.Amount *= k
		return v
	case RateCashFlowPayOff:
		v.Amount *= k
		return v
	case OptionCashFlowPayOff:
		v.Amount *= k
		return v
	case DigitalOptionCashFlowPayOff:
		v.Amount *= k
		return v
	case OptionStrategyCashFlowPayOff:
		v.CallAmounts = scaleSlice(v.CallAmounts, k)
		v.PutAmounts = scaleSlice(v.PutAmounts, k)
		return v
	case ContingentRateCashFlowPayOff:
		v.Rate.Amount *= k
		return v
	default:
		return p
	}
}

func scaleSlice(xs []float64, k float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = x * k
	}
	return out
}

// MulScalar returns a new list with every payoff's amount scaled by k.
func (l *CashFlowList) MulScalar(k float64) *CashFlowList {
	out := &CashFlowList{Payoffs: make([]Payoff, len(l.Payoffs))}
	for i, p := range l.Payoffs {
		out.Payoffs[i] = scaleAmount(p, k)
	}
	return out
}

// DivScalar returns a new list with every payoff's amount divided by k.
func (l *CashFlowList) DivScalar(k float64) *CashFlowList {
	return l.MulScalar(1 / k)
}

// AddScalar returns a new list with k added to every fixed-amount payoff's
// amount (rate, option, and strategy payoffs are notional-weighted, not
// amount-additive, so they pass through unchanged).
func (l *CashFlowList) AddScalar(k float64) *CashFlowList {
	out := &CashFlowList{Payoffs: make([]Payoff, len(l.Payoffs))}
	for i, p := range l.Payoffs {
		if fp, ok := p.(FixedCashFlowPayOff); ok {
			fp.Amount += k
			out.Payoffs[i] = fp
			continue
		}
		out.Payoffs[i] = p
	}
	return out
}

// Negate flips the sign of every payoff's amount, the CashFlowList
// equivalent of unary minus.
func (l *CashFlowList) Negate() *CashFlowList {
	return l.MulScalar(-1)
}

// FixedRate returns the common fixed rate shared by every rate-bearing
// payoff in the list, erroring with AmbiguousFixedRate if they disagree.
func (l *CashFlowList) FixedRate() (float64, error) {
	found := false
	rate := 0.0
	for _, p := range l.Payoffs {
		var r float64
		switch v := p.(type) {
		case RateCashFlowPayOff:
			r = v.FixedRate
		case ContingentRateCashFlowPayOff:
			r = v.Rate.FixedRate
		default:
			continue
		}
		if !found {
			rate, found = r, true
			continue
		}
		if rate != r {
			return 0, newErr("CashFlowList.FixedRate", AmbiguousFixedRate,
				fmt.Sprintf("rate-bearing payoffs disagree: %v vs %v", rate, r))
		}
	}
	return rate, nil
}

// WithFixedRate returns a new list with every rate-bearing payoff's fixed
// rate set to r.
func (l *CashFlowList) WithFixedRate(r float64) *CashFlowList {
	out := &CashFlowList{Payoffs: make([]Payoff, len(l.Payoffs))}
	for i, p := range l.Payoffs {
		switch v := p.(type) {
		case RateCashFlowPayOff:
			v.FixedRate = r
			out.Payoffs[i] = v
		case ContingentRateCashFlowPayOff:
			v.Rate.FixedRate = r
			out.Payoffs[i] = v
		default:
			out.Payoffs[i] = p
		}
	}
	return out
}

// inferStart returns the accrual start for period i of a schedule whose
// payment dates are dates: the previous payment date, or — for the first
// period — origin if supplied, else payment_dates[0] minus the first
// step inferred from the schedule.
func inferStart(dates []Date, i int, origin *Date) Date {
	if i > 0 {
		return dates[i-1]
	}
	if origin != nil {
		return *origin
	}
	if len(dates) > 1 {
		step := Period{Days: dates[1].DiffDays(dates[0])}
		return dates[0].AddPeriod(step.Negate())
	}
	return dates[0]
}

// NewFixedCashFlowList builds a list of FixedCashFlowPayOff from payment
// dates and either a single broadcast amount or one amount per date.
func NewFixedCashFlowList(dates []Date, amounts []float64, forward RateSource) (*CashFlowList, error) {
	amounts, err := broadcast(len(dates), amounts)
	if err != nil {
		return nil, err
	}
	out := &CashFlowList{Payoffs: make([]Payoff, len(dates))}
	for i, d := range dates {
		out.Payoffs[i] = FixedCashFlowPayOff{Pay: d, Amount: amounts[i], Forward: forward}
	}
	return out, nil
}

// NewRateCashFlowList builds a list of RateCashFlowPayOff whose accrual
// periods are consecutive payment dates, anchored at origin (or inferred
// from the schedule's first step if origin is nil).
func NewRateCashFlowList(dates []Date, amounts []float64, fixedRate float64, dayCount DayCount, fixingOffset Period, forward RateSource, origin *Date) (*CashFlowList, error) {
	amounts, err := broadcast(len(dates), amounts)
	if err != nil {
		return nil, err
	}
	out := &CashFlowList{Payoffs: make([]Payoff, len(dates))}
	for i, d := range dates {
		start := inferStart(dates, i, origin)
		out.Payoffs[i] = RateCashFlowPayOff{
			Pay: d, Start: start, End: d, Amount: amounts[i],
			DayCount: dayCount, FixingOffset: fixingOffset,
			FixedRate: fixedRate, Forward: forward,
		}
	}
	return out, nil
}

// NewOptionCashFlowList builds a list of OptionCashFlowPayOff at a single
// expiry-per-pay-date schedule with a single strike or one per date.
func NewOptionCashFlowList(dates []Date, amounts, strikes []float64, optType OptionType, forward RateSource, vol VolatilityCurve, formula OptionPricingFormula) (*CashFlowList, error) {
	amounts, err := broadcast(len(dates), amounts)
	if err != nil {
		return nil, err
	}
	strikes, err = broadcast(len(dates), strikes)
	if err != nil {
		return nil, err
	}
	out := &CashFlowList{Payoffs: make([]Payoff, len(dates))}
	for i, d := range dates {
		out.Payoffs[i] = OptionCashFlowPayOff{
			Pay: d, Expiry: d, Amount: amounts[i], Strike: strikes[i],
			Type: optType, Forward: forward, Volatility: vol, Formula: formula,
		}
	}
	return out, nil
}

// NewContingentRateCashFlowList builds a list of ContingentRateCashFlowPayOff
// sharing a single cap/floor strike pair, built atop the same schedule
// NewRateCashFlowList uses.
func NewContingentRateCashFlowList(dates []Date, amounts []float64, fixedRate, capStrike, floorStrike float64, dayCount DayCount, fixingOffset Period, forward RateSource, vol VolatilityCurve, formula OptionPricingFormula, origin *Date) (*CashFlowList, error) {
	rates, err := NewRateCashFlowList(dates, amounts, fixedRate, dayCount, fixingOffset, forward, origin)
	if err != nil {
		return nil, err
	}
	out := &CashFlowList{Payoffs: make([]Payoff, len(rates.Payoffs))}
	for i, p := range rates.Payoffs {
		out.Payoffs[i] = ContingentRateCashFlowPayOff{
			Rate: p.(RateCashFlowPayOff), CapStrike: capStrike, FloorStrike: floorStrike,
			Volatility: vol, Formula: formula,
		}
	}
	return out, nil
}

// broadcast expands a scalar amount vector (length 1) to n entries, passes
// a length-n vector through unchanged, and errors on any other length.
func broadcast(n int, amounts []float64) ([]float64, error) {
	switch len(amounts) {
	case n:
		return amounts, nil
	case 1:
		out := make([]float64, n)
		for i := range out {
			out[i] = amounts[0]
		}
		return out, nil
	default:
		return nil, newErr("CashFlowList", ShapeError, "amount vector length does not match date count or 1")
	}
}
