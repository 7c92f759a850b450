package dcf

import "math"

// VolatilityCurve is the common interface the instantaneous and terminal
// volatility storage variants implement.
type VolatilityCurve interface {
	Origin() Date
	ForwardVolatility(a, b Date) (float64, error)
}

// InstantaneousVolatilityCurve stores σ(d), the spot volatility; its
// terminal vol on [a, b] is the integral (average) of σ over the interval.
type InstantaneousVolatilityCurve struct {
	dc *DateCurve
}

func NewInstantaneousVolatilityCurve(dates []Date, vols []float64, origin Date, dayCount DayCount) (*InstantaneousVolatilityCurve, error) {
	dc, err := NewDateCurve(dates, vols, Uniform(Linear), origin, dayCount)
	if err != nil {
		return nil, err
	}
	return &InstantaneousVolatilityCurve{dc: dc}, nil
}

func (c *InstantaneousVolatilityCurve) Origin() Date { return c.dc.Origin() }

func (c *InstantaneousVolatilityCurve) ForwardVolatility(a, b Date) (float64, error) {
	if a.Equal(b) {
		return c.dc.At(a)
	}
	return c.dc.Integrate(a, b)
}

// VarianceFloor, when non-nil, clips a negative forward variance at
// max(var, *VarianceFloor^2) instead of raising NegativeVariance. nil means
// no floor is configured, matching the source library's default.
var VarianceFloor *float64

// TerminalVolatilityCurve stores σ(origin, d) and derives forward vol on
// [a, b] by variance differencing.
type TerminalVolatilityCurve struct {
	dc    *DateCurve
	floor *float64
}

// NewTerminalVolatilityCurve builds a curve storing σ(origin, d). floor, if
// non-nil, overrides the package-level VarianceFloor for this curve.
func NewTerminalVolatilityCurve(dates []Date, vols []float64, origin Date, dayCount DayCount, floor *float64) (*TerminalVolatilityCurve, error) {
	dc, err := NewDateCurve(dates, vols, Uniform(Linear), origin, dayCount)
	if err != nil {
		return nil, err
	}
	return &TerminalVolatilityCurve{dc: dc, floor: floor}, nil
}

func (c *TerminalVolatilityCurve) Origin() Date { return c.dc.Origin() }

func (c *TerminalVolatilityCurve) termFromOrigin(d Date) (float64, error) {
	if d.Equal(c.dc.Origin()) {
		return 0, nil
	}
	return c.dc.At(d)
}

// ForwardVolatility derives σ on [a, b] from variance differencing:
// σ_fwd² = (τ(origin,b)·σ(origin,b)² − τ(origin,a)·σ(origin,a)²) / τ(a,b).
// A negative result is floored (and logged as a warning) if a floor is
// configured; otherwise it is a fatal NegativeVariance.
func (c *TerminalVolatilityCurve) ForwardVolatility(a, b Date) (float64, error) {
	if a.Equal(b) {
		return c.dc.At(a)
	}
	sigA, err := c.termFromOrigin(a)
	if err != nil {
		return 0, err
	}
	sigB, err := c.termFromOrigin(b)
	if err != nil {
		return 0, err
	}
	tauOA := c.dc.Tau(c.dc.Origin(), a)
	tauOB := c.dc.Tau(c.dc.Origin(), b)
	tauAB := c.dc.Tau(a, b)
	variance := (tauOB*sigB*sigB - tauOA*sigA*sigA) / tauAB

	floor := c.floor
	if floor == nil {
		floor = VarianceFloor
	}

	if variance < 0 {
		if floor == nil {
			return 0, newErr("TerminalVolatilityCurve.ForwardVolatility", NegativeVariance,
				"negative forward variance and no floor configured")
		}
		Logger.WithFields(map[string]interface{}{
			"a": a.Time(), "b": b.Time(), "variance": variance,
		}).Warn("forward variance negative, clipping to floor")
		floored := (*floor) * (*floor)
		if variance < floored {
			variance = floored
		}
	}
	return math.Sqrt(variance), nil
}
