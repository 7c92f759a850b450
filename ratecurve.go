package dcf

import "math"

// ForwardTenor is the default simple-compounded forward tenor (in years)
// used by CashRate when no explicit step is given. 3 months.
var ForwardTenor = 0.25

// InterestRateCurve is the common interface every interest-rate curve
// storage variant implements, regardless of what it stores internally.
type InterestRateCurve interface {
	Origin() Date
	DiscountFactor(s, e Date) (float64, error)
	ZeroRate(s, e Date) (float64, error)
	ShortRate(t Date) (float64, error)
	CashRate(t Date, step *float64) (float64, error)
	SwapAnnuity(dates []Date) (float64, error)
}

// swapAnnuity computes Σ df(origin, tᵢ)·τ(tᵢ, tᵢ₊₁), the year-fraction
// weighted form (the correct one per the resolved storage contract — the
// unweighted "sum of discount factors" variant found in one source copy is
// not used here).
func swapAnnuity(curve InterestRateCurve, origin Date, dates []Date, dayCount DayCount) (float64, error) {
	if len(dates) < 2 {
		return 0, nil
	}
	sum := 0.0
	for i := 0; i+1 < len(dates); i++ {
		df, err := curve.DiscountFactor(origin, dates[i])
		if err != nil {
			return 0, err
		}
		sum += df * dayCount(dates[i], dates[i+1])
	}
	return sum, nil
}

// DiscountFactorCurve stores df(origin, d) directly and derives every other
// view from it.
type DiscountFactorCurve struct {
	dc *DateCurve
}

// NewDiscountFactorCurve builds a curve storing discount factors df(origin,
// d) at dates, using a log-linear-in-rate scheme by default to keep zero
// rates piecewise linear between pillars.
func NewDiscountFactorCurve(dates []Date, dfs []float64, origin Date, dayCount DayCount) (*DiscountFactorCurve, error) {
	dc, err := NewDateCurve(dates, dfs, Uniform(LogLinearRate), origin, dayCount)
	if err != nil {
		return nil, err
	}
	return &DiscountFactorCurve{dc: dc}, nil
}

func (c *DiscountFactorCurve) Origin() Date { return c.dc.Origin() }

func (c *DiscountFactorCurve) dfFromOrigin(d Date) (float64, error) {
	if d.Equal(c.dc.Origin()) {
		return 1, nil
	}
	return c.dc.At(d)
}

func (c *DiscountFactorCurve) DiscountFactor(s, e Date) (float64, error) {
	if s.Equal(e) {
		return 1, nil
	}
	dfS, err := c.dfFromOrigin(s)
	if err != nil {
		return 0, err
	}
	dfE, err := c.dfFromOrigin(e)
	if err != nil {
		return 0, err
	}
	return dfE / dfS, nil
}

func (c *DiscountFactorCurve) ZeroRate(s, e Date) (float64, error) {
	df, err := c.DiscountFactor(s, e)
	if err != nil {
		return 0, err
	}
	return ContinuousRate(df, c.dc.Tau(s, e)), nil
}

func (c *DiscountFactorCurve) ShortRate(t Date) (float64, error) {
	shiftDays := Period{Days: int(math.Round(TimeShift * DaysInYear))}
	return c.ZeroRate(t, t.AddPeriod(shiftDays))
}

func (c *DiscountFactorCurve) CashRate(t Date, step *float64) (float64, error) {
	tau := ForwardTenor
	if step != nil {
		tau = *step
	}
	end := t.AddPeriod(Period{Days: int(math.Round(tau * DaysInYear))})
	df, err := c.DiscountFactor(t, end)
	if err != nil {
		return 0, err
	}
	return SimpleRate(df, tau), nil
}

func (c *DiscountFactorCurve) SwapAnnuity(dates []Date) (float64, error) {
	return swapAnnuity(c, c.Origin(), dates, c.dc.DayCount())
}

// ZeroRateCurve stores z(origin, d), continuously compounded zero rates.
type ZeroRateCurve struct {
	dc *DateCurve
}

func NewZeroRateCurve(dates []Date, zeros []float64, origin Date, dayCount DayCount) (*ZeroRateCurve, error) {
	dc, err := NewDateCurve(dates, zeros, Uniform(Linear), origin, dayCount)
	if err != nil {
		return nil, err
	}
	return &ZeroRateCurve{dc: dc}, nil
}

func (c *ZeroRateCurve) Origin() Date { return c.dc.Origin() }

func (c *ZeroRateCurve) zeroFromOrigin(d Date) (float64, error) {
	if d.Equal(c.dc.Origin()) {
		return 0, nil
	}
	return c.dc.At(d)
}

func (c *ZeroRateCurve) ZeroRate(s, e Date) (float64, error) {
	if s.Equal(e) {
		return 0, nil
	}
	tauSE := c.dc.Tau(s, e)
	zS, err := c.zeroFromOrigin(s)
	if err != nil {
		return 0, err
	}
	zE, err := c.zeroFromOrigin(e)
	if err != nil {
		return 0, err
	}
	tauOS := c.dc.Tau(c.dc.Origin(), s)
	tauOE := c.dc.Tau(c.dc.Origin(), e)
	return (zE*tauOE - zS*tauOS) / tauSE, nil
}

func (c *ZeroRateCurve) DiscountFactor(s, e Date) (float64, error) {
	if s.Equal(e) {
		return 1, nil
	}
	z, err := c.ZeroRate(s, e)
	if err != nil {
		return 0, err
	}
	return ContinuousCompounding(z, c.dc.Tau(s, e)), nil
}

func (c *ZeroRateCurve) ShortRate(t Date) (float64, error) {
	shiftDays := Period{Days: int(math.Round(TimeShift * DaysInYear))}
	return c.ZeroRate(t, t.AddPeriod(shiftDays))
}

func (c *ZeroRateCurve) CashRate(t Date, step *float64) (float64, error) {
	tau := ForwardTenor
	if step != nil {
		tau = *step
	}
	end := t.AddPeriod(Period{Days: int(math.Round(tau * DaysInYear))})
	df, err := c.DiscountFactor(t, end)
	if err != nil {
		return 0, err
	}
	return SimpleRate(df, tau), nil
}

func (c *ZeroRateCurve) SwapAnnuity(dates []Date) (float64, error) {
	return swapAnnuity(c, c.Origin(), dates, c.dc.DayCount())
}

// ShortRateCurve stores r(d), the instantaneous rate, and obtains zero
// rates by discrete integration of short rates along the grid.
type ShortRateCurve struct {
	dc *DateCurve
}

func NewShortRateCurve(dates []Date, shortRates []float64, origin Date, dayCount DayCount) (*ShortRateCurve, error) {
	dc, err := NewDateCurve(dates, shortRates, Uniform(Linear), origin, dayCount)
	if err != nil {
		return nil, err
	}
	return &ShortRateCurve{dc: dc}, nil
}

func (c *ShortRateCurve) Origin() Date { return c.dc.Origin() }

func (c *ShortRateCurve) ZeroRate(s, e Date) (float64, error) {
	if s.Equal(e) {
		return 0, nil
	}
	avg, err := c.dc.curve.Integrate(c.dc.Tau(c.dc.Origin(), s), c.dc.Tau(c.dc.Origin(), e))
	if err != nil {
		return 0, err
	}
	return avg, nil
}

func (c *ShortRateCurve) DiscountFactor(s, e Date) (float64, error) {
	if s.Equal(e) {
		return 1, nil
	}
	z, err := c.ZeroRate(s, e)
	if err != nil {
		return 0, err
	}
	return ContinuousCompounding(z, c.dc.Tau(s, e)), nil
}

func (c *ShortRateCurve) ShortRate(t Date) (float64, error) {
	return c.dc.At(t)
}

func (c *ShortRateCurve) CashRate(t Date, step *float64) (float64, error) {
	tau := ForwardTenor
	if step != nil {
		tau = *step
	}
	end := t.AddPeriod(Period{Days: int(math.Round(tau * DaysInYear))})
	df, err := c.DiscountFactor(t, end)
	if err != nil {
		return 0, err
	}
	return SimpleRate(df, tau), nil
}

func (c *ShortRateCurve) SwapAnnuity(dates []Date) (float64, error) {
	return swapAnnuity(c, c.Origin(), dates, c.dc.DayCount())
}

// CashRateCurve stores simple-compounded forward rates over the tenor given
// to NewCashRateCurve (ForwardTenor when that is not positive) and composes
// them period by period to obtain a discount
// factor, from which a zero rate is extracted.
type CashRateCurve struct {
	dc    *DateCurve
	tenor float64
}

func NewCashRateCurve(dates []Date, cashRates []float64, tenor float64, origin Date, dayCount DayCount) (*CashRateCurve, error) {
	dc, err := NewDateCurve(dates, cashRates, Uniform(Linear), origin, dayCount)
	if err != nil {
		return nil, err
	}
	if tenor <= 0 {
		tenor = ForwardTenor
	}
	return &CashRateCurve{dc: dc, tenor: tenor}, nil
}

func (c *CashRateCurve) Origin() Date { return c.dc.Origin() }

// compoundFromOrigin composes simple-compounded steps of length c.tenor
// from the curve's origin to d, using the curve's own cash rate at each
// step's start.
func (c *CashRateCurve) compoundFromOrigin(d Date) (float64, error) {
	if d.Equal(c.dc.Origin()) {
		return 1, nil
	}
	total := c.dc.Tau(c.dc.Origin(), d)
	if total <= 0 {
		return 1, nil
	}
	steps := int(math.Ceil(total / c.tenor))
	if steps < 1 {
		steps = 1
	}
	stepYears := total / float64(steps)
	factor := 1.0
	cur := c.dc.Origin()
	stepPeriod := Period{Days: int(math.Round(stepYears * DaysInYear))}
	for i := 0; i < steps; i++ {
		next := cur.AddPeriod(stepPeriod)
		if i == steps-1 {
			next = d
		}
		rate, err := c.dc.At(cur)
		if err != nil {
			return 0, err
		}
		tau := c.dc.Tau(cur, next)
		factor *= SimpleCompounding(rate, tau)
		cur = next
	}
	return factor, nil
}

func (c *CashRateCurve) DiscountFactor(s, e Date) (float64, error) {
	if s.Equal(e) {
		return 1, nil
	}
	dfS, err := c.compoundFromOrigin(s)
	if err != nil {
		return 0, err
	}
	dfE, err := c.compoundFromOrigin(e)
	if err != nil {
		return 0, err
	}
	return dfE / dfS, nil
}

func (c *CashRateCurve) ZeroRate(s, e Date) (float64, error) {
	df, err := c.DiscountFactor(s, e)
	if err != nil {
		return 0, err
	}
	return ContinuousRate(df, c.dc.Tau(s, e)), nil
}

func (c *CashRateCurve) ShortRate(t Date) (float64, error) {
	shiftDays := Period{Days: int(math.Round(TimeShift * DaysInYear))}
	return c.ZeroRate(t, t.AddPeriod(shiftDays))
}

func (c *CashRateCurve) CashRate(t Date, step *float64) (float64, error) {
	if step == nil {
		return c.dc.At(t)
	}
	end := t.AddPeriod(Period{Days: int(math.Round(*step * DaysInYear))})
	df, err := c.DiscountFactor(t, end)
	if err != nil {
		return 0, err
	}
	return SimpleRate(df, *step), nil
}

func (c *CashRateCurve) SwapAnnuity(dates []Date) (float64, error) {
	return swapAnnuity(c, c.Origin(), dates, c.dc.DayCount())
}
