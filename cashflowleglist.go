package dcf

import "sort"

// CashFlowLegList is a multi-leg container, grouping several CashFlowLists
// (e.g. the pay and receive legs of a swap) while keeping each leg
// individually addressable. Pricing and sensitivity routines that expect a
// single CashFlowList operate on Flatten's concatenation of every leg.
type CashFlowLegList struct {
	legs []*CashFlowList
}

// NewCashFlowLegList wraps legs into a CashFlowLegList, in the given order.
func NewCashFlowLegList(legs ...*CashFlowList) *CashFlowLegList {
	return &CashFlowLegList{legs: legs}
}

// Legs returns the individual legs, in construction order.
func (l *CashFlowLegList) Legs() []*CashFlowList {
	out := make([]*CashFlowList, len(l.legs))
	copy(out, l.legs)
	return out
}

// Leg returns the i-th leg.
func (l *CashFlowLegList) Leg(i int) *CashFlowList {
	return l.legs[i]
}

// Flatten concatenates every leg's payoffs into a single CashFlowList, in
// leg order, for routines (PresentValue, YieldToMaturity, BasisPointValue,
// ...) that price a list as a whole rather than leg by leg.
func (l *CashFlowLegList) Flatten() *CashFlowList {
	out := &CashFlowList{}
	for _, leg := range l.legs {
		out = out.Concat(leg)
	}
	return out
}

// PayDates returns the sorted, de-duplicated union of every leg's pay dates.
func (l *CashFlowLegList) PayDates() []Date {
	var out []Date
	for _, leg := range l.legs {
		for _, d := range leg.PayDates() {
			dup := false
			for _, existing := range out {
				if existing.Equal(d) {
					dup = true
					break
				}
			}
			if !dup {
				out = append(out, d)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Origin returns the earliest origin among the legs.
func (l *CashFlowLegList) Origin() Date {
	origin := l.legs[0].Origin()
	for _, leg := range l.legs[1:] {
		if o := leg.Origin(); o.Before(origin) {
			origin = o
		}
	}
	return origin
}
