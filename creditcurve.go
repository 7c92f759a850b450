package dcf

import "math"

// SurvivalFloor bounds survival probabilities away from 0 and 1 to prevent
// singularities in -ln(S) and 1/(1-S), mirroring the source library's
// clamp against sys.float_info.min.
var SurvivalFloor = 1e-10

func clampProbability(p float64) float64 {
	if p < SurvivalFloor {
		return SurvivalFloor
	}
	if p > 1-SurvivalFloor {
		return 1 - SurvivalFloor
	}
	return p
}

// CreditCurve is the common interface every credit curve storage variant
// implements. It mirrors InterestRateCurve under the substitution
// df ↔ S, zero rate ↔ flat intensity, short rate ↔ hazard rate.
type CreditCurve interface {
	Origin() Date
	SurvivalProbability(s, e Date) (float64, error)
	FlatIntensity(s, e Date) (float64, error)
	HazardRate(t Date) (float64, error)
	DefaultProbability(s, e Date) (float64, error)
}

func defaultProbabilityFrom(cc CreditCurve, s, e Date) (float64, error) {
	surv, err := cc.SurvivalProbability(s, e)
	if err != nil {
		return 0, err
	}
	return 1 - surv, nil
}

// FlatIntensityCurve stores λ(origin, d), the average default intensity.
type FlatIntensityCurve struct {
	dc *DateCurve
}

func NewFlatIntensityCurve(dates []Date, intensities []float64, origin Date, dayCount DayCount) (*FlatIntensityCurve, error) {
	dc, err := NewDateCurve(dates, intensities, Uniform(Linear), origin, dayCount)
	if err != nil {
		return nil, err
	}
	return &FlatIntensityCurve{dc: dc}, nil
}

func (c *FlatIntensityCurve) Origin() Date { return c.dc.Origin() }

func (c *FlatIntensityCurve) flatFromOrigin(d Date) (float64, error) {
	if d.Equal(c.dc.Origin()) {
		return 0, nil
	}
	return c.dc.At(d)
}

func (c *FlatIntensityCurve) FlatIntensity(s, e Date) (float64, error) {
	if s.Equal(e) {
		return 0, nil
	}
	tauSE := c.dc.Tau(s, e)
	lS, err := c.flatFromOrigin(s)
	if err != nil {
		return 0, err
	}
	lE, err := c.flatFromOrigin(e)
	if err != nil {
		return 0, err
	}
	tauOS := c.dc.Tau(c.dc.Origin(), s)
	tauOE := c.dc.Tau(c.dc.Origin(), e)
	return (lE*tauOE - lS*tauOS) / tauSE, nil
}

func (c *FlatIntensityCurve) SurvivalProbability(s, e Date) (float64, error) {
	if s.Equal(e) {
		return 1, nil
	}
	lam, err := c.FlatIntensity(s, e)
	if err != nil {
		return 0, err
	}
	return clampProbability(math.Exp(-lam * c.dc.Tau(s, e))), nil
}

func (c *FlatIntensityCurve) HazardRate(t Date) (float64, error) {
	shiftDays := Period{Days: int(math.Round(TimeShift * DaysInYear))}
	return c.FlatIntensity(t, t.AddPeriod(shiftDays))
}

func (c *FlatIntensityCurve) DefaultProbability(s, e Date) (float64, error) {
	return defaultProbabilityFrom(c, s, e)
}

// HazardRateCurve stores h(d), the instantaneous default intensity.
type HazardRateCurve struct {
	dc *DateCurve
}

func NewHazardRateCurve(dates []Date, hazards []float64, origin Date, dayCount DayCount) (*HazardRateCurve, error) {
	dc, err := NewDateCurve(dates, hazards, Uniform(Linear), origin, dayCount)
	if err != nil {
		return nil, err
	}
	return &HazardRateCurve{dc: dc}, nil
}

func (c *HazardRateCurve) Origin() Date { return c.dc.Origin() }

func (c *HazardRateCurve) FlatIntensity(s, e Date) (float64, error) {
	if s.Equal(e) {
		return 0, nil
	}
	return c.dc.curve.Integrate(c.dc.Tau(c.dc.Origin(), s), c.dc.Tau(c.dc.Origin(), e))
}

func (c *HazardRateCurve) SurvivalProbability(s, e Date) (float64, error) {
	if s.Equal(e) {
		return 1, nil
	}
	lam, err := c.FlatIntensity(s, e)
	if err != nil {
		return 0, err
	}
	return clampProbability(math.Exp(-lam * c.dc.Tau(s, e))), nil
}

func (c *HazardRateCurve) HazardRate(t Date) (float64, error) {
	return c.dc.At(t)
}

func (c *HazardRateCurve) DefaultProbability(s, e Date) (float64, error) {
	return defaultProbabilityFrom(c, s, e)
}

// SurvivalProbabilityCurve stores S(origin, d) directly, clamped on
// construction.
type SurvivalProbabilityCurve struct {
	dc *DateCurve
}

func NewSurvivalProbabilityCurve(dates []Date, survival []float64, origin Date, dayCount DayCount) (*SurvivalProbabilityCurve, error) {
	clamped := make([]float64, len(survival))
	for i, s := range survival {
		clamped[i] = clampProbability(s)
	}
	dc, err := NewDateCurve(dates, clamped, Uniform(LogLinear), origin, dayCount)
	if err != nil {
		return nil, err
	}
	return &SurvivalProbabilityCurve{dc: dc}, nil
}

func (c *SurvivalProbabilityCurve) Origin() Date { return c.dc.Origin() }

func (c *SurvivalProbabilityCurve) survFromOrigin(d Date) (float64, error) {
	if d.Equal(c.dc.Origin()) {
		return 1, nil
	}
	return c.dc.At(d)
}

func (c *SurvivalProbabilityCurve) SurvivalProbability(s, e Date) (float64, error) {
	if s.Equal(e) {
		return 1, nil
	}
	sS, err := c.survFromOrigin(s)
	if err != nil {
		return 0, err
	}
	sE, err := c.survFromOrigin(e)
	if err != nil {
		return 0, err
	}
	return clampProbability(sE / sS), nil
}

func (c *SurvivalProbabilityCurve) FlatIntensity(s, e Date) (float64, error) {
	surv, err := c.SurvivalProbability(s, e)
	if err != nil {
		return 0, err
	}
	return ContinuousRate(surv, c.dc.Tau(s, e)), nil
}

func (c *SurvivalProbabilityCurve) HazardRate(t Date) (float64, error) {
	shiftDays := Period{Days: int(math.Round(TimeShift * DaysInYear))}
	return c.FlatIntensity(t, t.AddPeriod(shiftDays))
}

func (c *SurvivalProbabilityCurve) DefaultProbability(s, e Date) (float64, error) {
	return defaultProbabilityFrom(c, s, e)
}

// DefaultProbabilityCurve stores 1 - S(origin, d) and defers every query to
// the equivalent SurvivalProbabilityCurve.
type DefaultProbabilityCurve struct {
	inner *SurvivalProbabilityCurve
}

func NewDefaultProbabilityCurve(dates []Date, defaults []float64, origin Date, dayCount DayCount) (*DefaultProbabilityCurve, error) {
	surv := make([]float64, len(defaults))
	for i, d := range defaults {
		surv[i] = 1 - d
	}
	inner, err := NewSurvivalProbabilityCurve(dates, surv, origin, dayCount)
	if err != nil {
		return nil, err
	}
	return &DefaultProbabilityCurve{inner: inner}, nil
}

func (c *DefaultProbabilityCurve) Origin() Date { return c.inner.Origin() }
func (c *DefaultProbabilityCurve) SurvivalProbability(s, e Date) (float64, error) {
	return c.inner.SurvivalProbability(s, e)
}
func (c *DefaultProbabilityCurve) FlatIntensity(s, e Date) (float64, error) {
	return c.inner.FlatIntensity(s, e)
}
func (c *DefaultProbabilityCurve) HazardRate(t Date) (float64, error) {
	return c.inner.HazardRate(t)
}
func (c *DefaultProbabilityCurve) DefaultProbability(s, e Date) (float64, error) {
	return defaultProbabilityFrom(c, s, e)
}

// MarginalSurvivalCurve stores S(d, d+τ*), per-tenor conditional survival,
// and chains consecutive tenors forward to answer arbitrary intervals.
type MarginalSurvivalCurve struct {
	dc    *DateCurve
	tenor float64
}

func NewMarginalSurvivalCurve(dates []Date, marginals []float64, tenor float64, origin Date, dayCount DayCount) (*MarginalSurvivalCurve, error) {
	clamped := make([]float64, len(marginals))
	for i, m := range marginals {
		clamped[i] = clampProbability(m)
	}
	dc, err := NewDateCurve(dates, clamped, Uniform(Linear), origin, dayCount)
	if err != nil {
		return nil, err
	}
	if tenor <= 0 {
		tenor = ForwardTenor
	}
	return &MarginalSurvivalCurve{dc: dc, tenor: tenor}, nil
}

func (c *MarginalSurvivalCurve) Origin() Date { return c.dc.Origin() }

func (c *MarginalSurvivalCurve) SurvivalProbability(s, e Date) (float64, error) {
	if s.Equal(e) {
		return 1, nil
	}
	total := c.dc.Tau(s, e)
	if total <= 0 {
		return 1, nil
	}
	steps := int(math.Ceil(total / c.tenor))
	if steps < 1 {
		steps = 1
	}
	stepYears := total / float64(steps)
	stepPeriod := Period{Days: int(math.Round(stepYears * DaysInYear))}
	factor := 1.0
	cur := s
	for i := 0; i < steps; i++ {
		next := cur.AddPeriod(stepPeriod)
		if i == steps-1 {
			next = e
		}
		m, err := c.dc.At(cur)
		if err != nil {
			return 0, err
		}
		factor *= math.Pow(clampProbability(m), c.dc.Tau(cur, next)/c.tenor)
		cur = next
	}
	return clampProbability(factor), nil
}

func (c *MarginalSurvivalCurve) FlatIntensity(s, e Date) (float64, error) {
	surv, err := c.SurvivalProbability(s, e)
	if err != nil {
		return 0, err
	}
	return ContinuousRate(surv, c.dc.Tau(s, e)), nil
}

func (c *MarginalSurvivalCurve) HazardRate(t Date) (float64, error) {
	shiftDays := Period{Days: int(math.Round(TimeShift * DaysInYear))}
	return c.FlatIntensity(t, t.AddPeriod(shiftDays))
}

func (c *MarginalSurvivalCurve) DefaultProbability(s, e Date) (float64, error) {
	return defaultProbabilityFrom(c, s, e)
}

// MarginalDefaultCurve stores 1 - S(d, d+τ*) and defers to the equivalent
// MarginalSurvivalCurve.
type MarginalDefaultCurve struct {
	inner *MarginalSurvivalCurve
}

func NewMarginalDefaultCurve(dates []Date, marginalDefaults []float64, tenor float64, origin Date, dayCount DayCount) (*MarginalDefaultCurve, error) {
	surv := make([]float64, len(marginalDefaults))
	for i, d := range marginalDefaults {
		surv[i] = 1 - d
	}
	inner, err := NewMarginalSurvivalCurve(dates, surv, tenor, origin, dayCount)
	if err != nil {
		return nil, err
	}
	return &MarginalDefaultCurve{inner: inner}, nil
}

func (c *MarginalDefaultCurve) Origin() Date { return c.inner.Origin() }
func (c *MarginalDefaultCurve) SurvivalProbability(s, e Date) (float64, error) {
	return c.inner.SurvivalProbability(s, e)
}
func (c *MarginalDefaultCurve) FlatIntensity(s, e Date) (float64, error) {
	return c.inner.FlatIntensity(s, e)
}
func (c *MarginalDefaultCurve) HazardRate(t Date) (float64, error) {
	return c.inner.HazardRate(t)
}
func (c *MarginalDefaultCurve) DefaultProbability(s, e Date) (float64, error) {
	return defaultProbabilityFrom(c, s, e)
}
