package dcf

import "sort"

// TimeShift is the step (in years) used by the fixed-step numerical
// integration and finite-difference derivative routines that stand in for
// the scipy.integrate/numpy.gradient backends the source library falls
// back to. One calendar day.
var TimeShift = 1.0 / 365.25

// Curve is a named, interpolated, real-valued function of a float domain,
// closed under +, -, *, / via named constructors (Go has no operator
// overloading to replace Python's __add__ family).
type Curve struct {
	xs     []float64
	ys     []float64
	scheme CompositeScheme
	interp Interpolator
}

// NewCurve builds a Curve over (xs, ys) under scheme. Returns a ShapeError
// if xs and ys have different lengths.
func NewCurve(xs, ys []float64, scheme CompositeScheme) (*Curve, error) {
	interp, err := Build(scheme, xs, ys)
	if err != nil {
		return nil, err
	}
	sx, sy, err := sortKnots(xs, ys)
	if err != nil {
		return nil, err
	}
	return &Curve{xs: sx, ys: sy, scheme: scheme, interp: interp}, nil
}

// At evaluates the curve at x.
func (c *Curve) At(x float64) (float64, error) {
	if c == nil || len(c.xs) == 0 {
		return 0, newErr("Curve.At", DomainError, "curve has no knots")
	}
	return c.interp.At(x)
}

// X returns the sorted knot grid.
func (c *Curve) X() []float64 { return append([]float64(nil), c.xs...) }

// Y returns the values at the knot grid.
func (c *Curve) Y() []float64 { return append([]float64(nil), c.ys...) }

// Set rebuilds the curve with y at knot x inserted or replacing the
// existing value there, the Go analogue of Python's f[x] = y.
func (c *Curve) Set(x, y float64) (*Curve, error) {
	xs := append(append([]float64(nil), c.xs...), x)
	ys := append(append([]float64(nil), c.ys...), y)
	return NewCurve(xs, ys, c.scheme)
}

func unionSorted(a, b []float64) []float64 {
	set := make(map[float64]struct{}, len(a)+len(b))
	out := make([]float64, 0, len(a)+len(b))
	for _, xs := range [2][]float64{a, b} {
		for _, x := range xs {
			if _, ok := set[x]; !ok {
				set[x] = struct{}{}
				out = append(out, x)
			}
		}
	}
	sort.Float64s(out)
	return out
}

// combine samples both curves on the sorted union of their domains and
// applies op, re-interpolating under the left operand's scheme.
func (c *Curve) combine(op func(a, b float64) float64, other *Curve) (*Curve, error) {
	grid := unionSorted(c.xs, other.xs)
	ys := make([]float64, len(grid))
	for i, x := range grid {
		a, err := c.At(x)
		if err != nil {
			return nil, err
		}
		b, err := other.At(x)
		if err != nil {
			return nil, err
		}
		ys[i] = op(a, b)
	}
	return NewCurve(grid, ys, c.scheme)
}

// Add returns a new curve whose value at x is c(x) + other(x).
func (c *Curve) Add(other *Curve) (*Curve, error) {
	return c.combine(func(a, b float64) float64 { return a + b }, other)
}

// AddScalar returns a new curve with k added to every knot value.
func (c *Curve) AddScalar(k float64) *Curve {
	ys := make([]float64, len(c.ys))
	for i, y := range c.ys {
		ys[i] = y + k
	}
	cc, _ := NewCurve(c.xs, ys, c.scheme)
	return cc
}

// Sub returns a new curve whose value at x is c(x) - other(x).
func (c *Curve) Sub(other *Curve) (*Curve, error) {
	return c.combine(func(a, b float64) float64 { return a - b }, other)
}

// Mul returns a new curve whose value at x is c(x) * other(x).
func (c *Curve) Mul(other *Curve) (*Curve, error) {
	return c.combine(func(a, b float64) float64 { return a * b }, other)
}

// MulScalar returns a new curve with every knot value scaled by k.
func (c *Curve) MulScalar(k float64) *Curve {
	ys := make([]float64, len(c.ys))
	for i, y := range c.ys {
		ys[i] = y * k
	}
	cc, _ := NewCurve(c.xs, ys, c.scheme)
	return cc
}

// Div returns a new curve whose value at x is c(x) / other(x).
func (c *Curve) Div(other *Curve) (*Curve, error) {
	return c.combine(func(a, b float64) float64 { return a / b }, other)
}

// Integrate returns the average value of the curve over [a, b]:
// (∫ₐᵇ f dt) / τ(a,b), via a fixed-step Riemann sum with step TimeShift —
// the library's single numerical-integration backend, there being no
// scipy.integrate.quad equivalent to delegate to.
func (c *Curve) Integrate(a, b float64) (float64, error) {
	if a == b {
		return c.At(a)
	}
	lo, hi := a, b
	if hi < lo {
		lo, hi = hi, lo
	}
	steps := int((hi - lo) / TimeShift)
	if steps < 1 {
		steps = 1
	}
	h := (hi - lo) / float64(steps)
	sum := 0.0
	for i := 0; i < steps; i++ {
		mid := lo + h*(float64(i)+0.5)
		v, err := c.At(mid)
		if err != nil {
			return 0, err
		}
		sum += v * h
	}
	return sum / (hi - lo), nil
}

// Derivative returns (f(t+Δ) - f(t))/Δ with Δ = TimeShift — the library's
// single finite-difference derivative backend.
func (c *Curve) Derivative(t float64) (float64, error) {
	f0, err := c.At(t)
	if err != nil {
		return 0, err
	}
	f1, err := c.At(t + TimeShift)
	if err != nil {
		return 0, err
	}
	return (f1 - f0) / TimeShift, nil
}

// DateCurve wraps a float Curve whose x-grid is τ(origin, dᵢ) for a chosen
// day count, with an optional fixings override that shadows the
// interpolator at specific dates.
type DateCurve struct {
	origin   Date
	dayCount DayCount
	curve    *Curve
	dates    []Date
	values   []float64
	fixings  map[int64]float64 // keyed by the date's Unix seconds (fixingKey)
}

// NewDateCurve builds a DateCurve over dates with values ys, anchored at
// origin (defaults to dates[0] if dates is non-empty and origin is the
// zero Date) using dayCount to convert dates to year fractions.
func NewDateCurve(dates []Date, ys []float64, scheme CompositeScheme, origin Date, dayCount DayCount) (*DateCurve, error) {
	if len(dates) != len(ys) {
		return nil, newErr("NewDateCurve", ShapeError, "len(dates) != len(ys)")
	}
	if dayCount == nil {
		dayCount = Act365
	}
	if origin.Equal(Date{}) && len(dates) > 0 {
		origin = dates[0]
	}
	xs := make([]float64, len(dates))
	for i, d := range dates {
		xs[i] = dayCount(origin, d)
	}
	curve, err := NewCurve(xs, ys, scheme)
	if err != nil {
		return nil, err
	}
	return &DateCurve{
		origin: origin, dayCount: dayCount, curve: curve,
		dates: append([]Date(nil), dates...), values: append([]float64(nil), ys...),
	}, nil
}

// Origin returns the curve's anchor date.
func (dc *DateCurve) Origin() Date { return dc.origin }

// DayCount returns the curve's year-fraction convention.
func (dc *DateCurve) DayCount() DayCount { return dc.dayCount }

// Dates returns the curve's original knot dates, in the order supplied at
// construction — used to rebuild a shifted copy of a curve variant (see
// the pricer's basis-point-value and bucketed-delta routines).
func (dc *DateCurve) Dates() []Date { return append([]Date(nil), dc.dates...) }

// Values returns the curve's original knot values, in the same order as
// Dates.
func (dc *DateCurve) Values() []float64 { return append([]float64(nil), dc.values...) }

func (dc *DateCurve) fixingKey(d Date) int64 {
	return int64(d.Time().Unix())
}

// WithFixing returns a new DateCurve identical to dc but with a fixing at d
// that shadows the interpolator there. The override map is immutable: this
// never mutates dc or any curve shared with other payoffs.
func (dc *DateCurve) WithFixing(d Date, value float64) *DateCurve {
	next := &DateCurve{origin: dc.origin, dayCount: dc.dayCount, curve: dc.curve, dates: dc.dates, values: dc.values}
	next.fixings = make(map[int64]float64, len(dc.fixings)+1)
	for k, v := range dc.fixings {
		next.fixings[k] = v
	}
	next.fixings[dc.fixingKey(d)] = value
	return next
}

// At evaluates the curve at date d, honoring any fixing override first.
func (dc *DateCurve) At(d Date) (float64, error) {
	if v, ok := dc.fixings[dc.fixingKey(d)]; ok {
		return v, nil
	}
	return dc.curve.At(dc.dayCount(dc.origin, d))
}

// Tau is the curve's day-count applied to (s, e).
func (dc *DateCurve) Tau(s, e Date) float64 { return dc.dayCount(s, e) }

// Integrate returns the average curve value over [a, b] in date space.
func (dc *DateCurve) Integrate(a, b Date) (float64, error) {
	return dc.curve.Integrate(dc.dayCount(dc.origin, a), dc.dayCount(dc.origin, b))
}

// Derivative returns the curve's derivative at date t.
func (dc *DateCurve) Derivative(t Date) (float64, error) {
	return dc.curve.Derivative(dc.dayCount(dc.origin, t))
}
