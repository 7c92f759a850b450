package dcf

// YieldExtrapolator extends a ForwardCurve beyond its last knot.
type YieldExtrapolator interface {
	Extrapolate(lastDate Date, lastValue float64, t Date, tau DayCount) (float64, error)
}

// ConstantYieldExtrapolator extrapolates under a constant continuous yield:
// F(T) = F(tn)·e^{yield·τ(tn,T)}.
type ConstantYieldExtrapolator struct {
	Yield float64
}

func (e ConstantYieldExtrapolator) Extrapolate(lastDate Date, lastValue float64, t Date, tau DayCount) (float64, error) {
	return lastValue / ContinuousCompounding(e.Yield, tau(lastDate, t)), nil
}

// YieldFunctionExtrapolator extrapolates via a generic decay function γ:
// F(T) = F(tn)·γ(tn)/γ(T).
type YieldFunctionExtrapolator struct {
	Gamma func(Date) (float64, error)
}

func (e YieldFunctionExtrapolator) Extrapolate(lastDate Date, lastValue float64, t Date, tau DayCount) (float64, error) {
	gn, err := e.Gamma(lastDate)
	if err != nil {
		return 0, err
	}
	gt, err := e.Gamma(t)
	if err != nil {
		return 0, err
	}
	return lastValue * gn / gt, nil
}

// DiscountCurveExtrapolator extrapolates via a discount-factor-capable
// curve: F(T) = F(tn) / df(tn, T).
type DiscountCurveExtrapolator struct {
	Curve InterestRateCurve
}

func (e DiscountCurveExtrapolator) Extrapolate(lastDate Date, lastValue float64, t Date, tau DayCount) (float64, error) {
	df, err := e.Curve.DiscountFactor(lastDate, t)
	if err != nil {
		return 0, err
	}
	return lastValue / df, nil
}

// ForwardCurve stores expected asset prices at grid dates and extrapolates
// beyond the last knot via a configurable YieldExtrapolator. Interpolation
// is log-linear by default.
type ForwardCurve struct {
	dc       *DateCurve
	dates    []Date
	lastDate Date
	lastVal  float64
	extrap   YieldExtrapolator
}

// NewForwardCurve builds a ForwardCurve over dates/prices, extrapolating
// beyond the last knot with extrap.
func NewForwardCurve(dates []Date, prices []float64, origin Date, dayCount DayCount, extrap YieldExtrapolator) (*ForwardCurve, error) {
	dc, err := NewDateCurve(dates, prices, Uniform(LogLinear), origin, dayCount)
	if err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return nil, newErr("NewForwardCurve", ShapeError, "forward curve requires at least one knot")
	}
	last := dates[0]
	lastVal := prices[0]
	for i, d := range dates {
		if last.Before(d) {
			last = d
			lastVal = prices[i]
		}
	}
	return &ForwardCurve{dc: dc, dates: dates, lastDate: last, lastVal: lastVal, extrap: extrap}, nil
}

// Origin returns the curve's anchor date.
func (f *ForwardCurve) Origin() Date { return f.dc.Origin() }

// At returns the expected asset price at t, delegating to the yield
// extrapolator beyond the last knot.
func (f *ForwardCurve) At(t Date) (float64, error) {
	if !t.After(f.lastDate) {
		return f.dc.At(t)
	}
	if f.extrap == nil {
		return 0, newErr("ForwardCurve.At", MissingCurve, "no yield extrapolator configured beyond last knot")
	}
	return f.extrap.Extrapolate(f.lastDate, f.lastVal, t, f.dc.DayCount())
}
