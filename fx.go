package dcf

import "fmt"

// FxRate is a spot exchange rate: one unit of Foreign buys Value units of
// Domestic.
type FxRate struct {
	Value    float64
	Domestic string
	Foreign  string
}

// Invert returns the reciprocal rate quoted the other way round.
func (r FxRate) Invert() FxRate {
	return FxRate{Value: 1 / r.Value, Domestic: r.Foreign, Foreign: r.Domestic}
}

// FxForwardCurve is a ForwardCurve parameterized by a domestic and a
// foreign discount curve; beyond the last knot,
// F(T) = F(tn)·df_dom(tn,T)/df_for(tn,T).
type FxForwardCurve struct {
	forward  *ForwardCurve
	domestic InterestRateCurve
	foreign  InterestRateCurve
}

type fxExtrapolator struct {
	domestic InterestRateCurve
	foreign  InterestRateCurve
}

func (e fxExtrapolator) Extrapolate(lastDate Date, lastValue float64, t Date, _ DayCount) (float64, error) {
	dfDom, err := e.domestic.DiscountFactor(lastDate, t)
	if err != nil {
		return 0, err
	}
	dfFor, err := e.foreign.DiscountFactor(lastDate, t)
	if err != nil {
		return 0, err
	}
	return lastValue * dfDom / dfFor, nil
}

// NewFxForwardCurve builds an FxForwardCurve over known forward points,
// extrapolating via covered interest-rate parity beyond the last knot.
func NewFxForwardCurve(dates []Date, points []float64, origin Date, dayCount DayCount, domestic, foreign InterestRateCurve) (*FxForwardCurve, error) {
	fwd, err := NewForwardCurve(dates, points, origin, dayCount, fxExtrapolator{domestic: domestic, foreign: foreign})
	if err != nil {
		return nil, err
	}
	return &FxForwardCurve{forward: fwd, domestic: domestic, foreign: foreign}, nil
}

// Origin returns the curve's anchor date.
func (f *FxForwardCurve) Origin() Date { return f.forward.Origin() }

// At returns the forward FX rate at t.
func (f *FxForwardCurve) At(t Date) (float64, error) { return f.forward.At(t) }

// FxContainer is a registry of currency-pair forward curves that triangulates
// any two registered currencies through a designated base currency.
type FxContainer struct {
	base   string
	curves map[string]*FxForwardCurve // keyed by foreign currency, quoted in base
}

// NewFxContainer creates an empty registry anchored at base.
func NewFxContainer(base string) *FxContainer {
	return &FxContainer{base: base, curves: make(map[string]*FxForwardCurve)}
}

// Add registers a forward curve quoting foreign in terms of the container's
// base currency. The curve's own currencies are not checked against base.
func (c *FxContainer) Add(foreign string, curve *FxForwardCurve) {
	c.curves[foreign] = curve
}

// Rate returns the forward rate at t converting 1 unit of foreign into
// domestic, triangulating through the base currency when neither currency
// is the base or there is no direct quote.
func (c *FxContainer) Rate(domestic, foreign string, t Date) (float64, error) {
	if domestic == foreign {
		return 1, nil
	}
	if domestic == c.base {
		curve, ok := c.curves[foreign]
		if !ok {
			return 0, newErr("FxContainer.Rate", MissingCurve, fmt.Sprintf("no forward curve registered for %s", foreign))
		}
		return curve.At(t)
	}
	if foreign == c.base {
		rate, err := c.Rate(c.base, domestic, t)
		if err != nil {
			return 0, err
		}
		return 1 / rate, nil
	}
	toBase, err := c.Rate(c.base, foreign, t)
	if err != nil {
		return 0, err
	}
	fromBase, err := c.Rate(domestic, c.base, t)
	if err != nil {
		return 0, err
	}
	return toBase * fromBase, nil
}
