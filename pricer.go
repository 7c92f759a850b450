package dcf

import (
	"fmt"

	"github.com/khezen/rootfinding"
)

// YtmBracket and FairRateBracket are the starting search intervals of the
// yield-to-maturity and fair-rate solvers; bracketAndSolve widens the upper
// end until it brackets a root, then hands the bracket to rootfinding.Brent.
var (
	YtmBracket      = [2]float64{-0.1, 0.2}
	FairRateBracket = [2]float64{-0.1, 0.2}
)

// bracketAndSolve expands hi exponentially until f changes sign across
// [lo, hi], then refines the root with Brent's method.
func bracketAndSolve(op string, f func(float64) float64, lo, hi float64, iterations int) (float64, error) {
	flo, fhi := f(lo), f(hi)
	for flo*fhi > 0 && hi < 1e6 {
		hi *= 2
		fhi = f(hi)
	}
	if flo*fhi > 0 {
		return 0, newErr(op, RootNotBracketed, "could not bracket a root")
	}
	root, err := rootfinding.Brent(f, lo, hi, iterations)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return root, nil
}

// PresentValue sums df(valuationDate, payDate)·cashflow over every payoff
// with pay date on or after valuationDate (strictly after if
// excludeValueDate is set).
func PresentValue(list *CashFlowList, discount InterestRateCurve, valuationDate Date, ctx ValuationContext, excludeValueDate bool) (float64, error) {
	pv := 0.0
	for _, p := range list.Payoffs {
		d := p.PayDate()
		if excludeValueDate {
			if !d.After(valuationDate) {
				continue
			}
		} else if d.Before(valuationDate) {
			continue
		}
		details, err := p.Details(ctx)
		if err != nil {
			return 0, fmt.Errorf("PresentValue: %w", err)
		}
		df, err := discount.DiscountFactor(valuationDate, d)
		if err != nil {
			return 0, fmt.Errorf("PresentValue: %w", err)
		}
		pv += df * details.Cashflow()
	}
	return pv, nil
}

func flatZeroCurve(valuationDate Date, r float64) (*ZeroRateCurve, error) {
	return NewZeroRateCurve([]Date{valuationDate}, []float64{r}, valuationDate, Act365)
}

// YieldToMaturity solves pv(list, flatZeroCurve(r)) = targetPV for r,
// bracketed in YtmBracket and refined with Brent's method.
func YieldToMaturity(list *CashFlowList, targetPV float64, valuationDate Date, ctx ValuationContext) (float64, error) {
	npv := func(r float64) float64 {
		curve, err := flatZeroCurve(valuationDate, r)
		if err != nil {
			return 0
		}
		pv, err := PresentValue(list, curve, valuationDate, ctx, false)
		if err != nil {
			return 0
		}
		return pv - targetPV
	}
	return bracketAndSolve("YieldToMaturity", npv, YtmBracket[0], YtmBracket[1], 40)
}

// ParRate solves pv(list, discount) = targetPV for list's shared fixed
// rate, bracketed in FairRateBracket. The caller's list is never mutated;
// apply the result with list.WithFixedRate.
func ParRate(list *CashFlowList, discount InterestRateCurve, targetPV float64, valuationDate Date, ctx ValuationContext) (float64, error) {
	npv := func(r float64) float64 {
		pv, err := PresentValue(list.WithFixedRate(r), discount, valuationDate, ctx, false)
		if err != nil {
			return 0
		}
		return pv - targetPV
	}
	return bracketAndSolve("ParRate", npv, FairRateBracket[0], FairRateBracket[1], 60)
}

// rateLegOf extracts the RateCashFlowPayOff view of p, if p is a rate or
// contingent-rate payoff.
func rateLegOf(p Payoff) (RateCashFlowPayOff, bool) {
	switch v := p.(type) {
	case RateCashFlowPayOff:
		return v, true
	case ContingentRateCashFlowPayOff:
		return v.Rate, true
	}
	return RateCashFlowPayOff{}, false
}

// InterestAccrued returns the pro-rata unpaid portion of the coupon whose
// accrual period straddles valuationDate: next_cf · (1 - remaining/total).
// Zero if valuationDate does not fall strictly inside a rate-bearing
// accrual period.
func InterestAccrued(list *CashFlowList, valuationDate Date, ctx ValuationContext) (float64, error) {
	for _, p := range list.Payoffs {
		leg, ok := rateLegOf(p)
		if !ok {
			continue
		}
		if !leg.Start.Before(valuationDate) || !valuationDate.Before(leg.End) {
			continue
		}
		details, err := p.Details(ctx)
		if err != nil {
			return 0, fmt.Errorf("InterestAccrued: %w", err)
		}
		dc := leg.dayCount()
		total := dc(leg.Start, leg.End)
		remaining := dc(valuationDate, leg.End)
		if total == 0 {
			return 0, nil
		}
		return details.Cashflow() * (1 - remaining/total), nil
	}
	return 0, nil
}

// shiftParallel rebuilds curve with every stored knot value shifted by bp
// (1bp = 0.0001), preserving the curve's concrete storage kind.
func shiftParallel(curve InterestRateCurve, bp float64) (InterestRateCurve, error) {
	switch c := curve.(type) {
	case *DiscountFactorCurve:
		dates, vals := c.dc.Dates(), c.dc.Values()
		shifted := make([]float64, len(vals))
		for i, d := range dates {
			tau := c.dc.DayCount()(c.Origin(), d)
			shifted[i] = vals[i] * ContinuousCompounding(bp, tau)
		}
		return NewDiscountFactorCurve(dates, shifted, c.Origin(), c.dc.DayCount())
	case *ZeroRateCurve:
		dates, vals := c.dc.Dates(), c.dc.Values()
		shifted := make([]float64, len(vals))
		for i, v := range vals {
			shifted[i] = v + bp
		}
		return NewZeroRateCurve(dates, shifted, c.Origin(), c.dc.DayCount())
	case *ShortRateCurve:
		dates, vals := c.dc.Dates(), c.dc.Values()
		shifted := make([]float64, len(vals))
		for i, v := range vals {
			shifted[i] = v + bp
		}
		return NewShortRateCurve(dates, shifted, c.Origin(), c.dc.DayCount())
	case *CashRateCurve:
		dates, vals := c.dc.Dates(), c.dc.Values()
		shifted := make([]float64, len(vals))
		for i, v := range vals {
			shifted[i] = v + bp
		}
		return NewCashRateCurve(dates, shifted, c.tenor, c.Origin(), c.dc.DayCount())
	default:
		return nil, newErr("shiftParallel", ConfigError, "unsupported curve kind for shifting")
	}
}

// BasisPointValue shifts discount by +1 basis point in parallel, reprices,
// and returns the delta from the unshifted present value.
func BasisPointValue(list *CashFlowList, discount InterestRateCurve, valuationDate Date, ctx ValuationContext) (float64, error) {
	base, err := PresentValue(list, discount, valuationDate, ctx, false)
	if err != nil {
		return 0, err
	}
	shifted, err := shiftParallel(discount, 1e-4)
	if err != nil {
		return 0, err
	}
	bumped, err := PresentValue(list, shifted, valuationDate, ctx, false)
	if err != nil {
		return 0, err
	}
	return bumped - base, nil
}

// BucketedDelta approximates BasisPointValue's parallel shift with a sum of
// localized 1bp tent perturbations, one per bucket date. Zero-width
// buckets (fewer than two distinct dates) are skipped and logged, per the
// library's tolerant bucket-sensitivity semantics.
func BucketedDelta(list *CashFlowList, discount InterestRateCurve, valuationDate Date, ctx ValuationContext, bucketDates []Date) ([]float64, error) {
	base, err := PresentValue(list, discount, valuationDate, ctx, false)
	if err != nil {
		return nil, err
	}
	dates, vals, dayCount := curveKnots(discount)
	if dates == nil {
		return nil, newErr("BucketedDelta", ConfigError, "unsupported curve kind for bucketing")
	}
	deltas := make([]float64, len(bucketDates))
	for j, bucket := range bucketDates {
		if len(dates) < 2 {
			Logger.WithField("bucket", bucket.Time()).Warn("zero-width bucket skipped")
			continue
		}
		tent := tentPerturbation(dates, bucket)
		shifted := make([]float64, len(vals))
		for i, v := range vals {
			shifted[i] = v + 1e-4*tent[i]
		}
		bumpedCurve, err := rebuildCurveLike(discount, dates, shifted, dayCount)
		if err != nil {
			return nil, err
		}
		bumped, err := PresentValue(list, bumpedCurve, valuationDate, ctx, false)
		if err != nil {
			return nil, err
		}
		deltas[j] = bumped - base
	}
	return deltas, nil
}

// tentPerturbation returns a 1-at-bucket, 0-at-neighbors tent shape over
// dates, the bump profile BucketedDelta applies around a single pillar.
func tentPerturbation(dates []Date, bucket Date) []float64 {
	out := make([]float64, len(dates))
	idx := -1
	for i, d := range dates {
		if d.Equal(bucket) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return out
	}
	out[idx] = 1
	return out
}

func curveKnots(curve InterestRateCurve) ([]Date, []float64, DayCount) {
	switch c := curve.(type) {
	case *DiscountFactorCurve:
		return c.dc.Dates(), c.dc.Values(), c.dc.DayCount()
	case *ZeroRateCurve:
		return c.dc.Dates(), c.dc.Values(), c.dc.DayCount()
	case *ShortRateCurve:
		return c.dc.Dates(), c.dc.Values(), c.dc.DayCount()
	case *CashRateCurve:
		return c.dc.Dates(), c.dc.Values(), c.dc.DayCount()
	default:
		return nil, nil, nil
	}
}

func rebuildCurveLike(curve InterestRateCurve, dates []Date, values []float64, dayCount DayCount) (InterestRateCurve, error) {
	switch c := curve.(type) {
	case *DiscountFactorCurve:
		return NewDiscountFactorCurve(dates, values, c.Origin(), dayCount)
	case *ZeroRateCurve:
		return NewZeroRateCurve(dates, values, c.Origin(), dayCount)
	case *ShortRateCurve:
		return NewShortRateCurve(dates, values, c.Origin(), dayCount)
	case *CashRateCurve:
		return NewCashRateCurve(dates, values, c.tenor, c.Origin(), dayCount)
	default:
		return nil, newErr("rebuildCurveLike", ConfigError, "unsupported curve kind")
	}
}

// FitCurve calibrates n curve values at n pillar dates so that each
// calibration product's present value matches its target, by successive
// univariate bracketing at each pillar (no Jacobian).
func FitCurve(pillars []Date, products []*CashFlowList, targets []float64, valuationDate Date, ctx ValuationContext, initialGuess float64) ([]float64, error) {
	if len(pillars) != len(products) || len(pillars) != len(targets) {
		return nil, newErr("FitCurve", ShapeError, "pillars, products, and targets must have equal length")
	}
	values := make([]float64, len(pillars))
	for i := range values {
		values[i] = initialGuess
	}
	for i := range pillars {
		f := func(v float64) float64 {
			values[i] = v
			curve, err := NewZeroRateCurve(pillars[:i+1], values[:i+1], valuationDate, Act365)
			if err != nil {
				return 0
			}
			pv, err := PresentValue(products[i], curve, valuationDate, ctx, false)
			if err != nil {
				return 0
			}
			return pv - targets[i]
		}
		root, err := bracketAndSolve("FitCurve", f, FairRateBracket[0], FairRateBracket[1], 60)
		if err != nil {
			return nil, err
		}
		values[i] = root
	}
	return values, nil
}
