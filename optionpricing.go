package dcf

import "math"

// Tunable bump sizes and scales for finite-difference Greeks, shared by
// every option pricing formula. Mirrors the source library's
// OptionPayOffModel class constants.
var (
	StrikeShift = 1e-4
	ForwardBump = 1e-4
	VolBump     = 1e-4
	TauBump     = 1.0 / 365.25

	DeltaScale = 1e-4
	VegaScale  = 1e-2
	ThetaScale = 1.0 / 365.25
)

// OptionPricingFormula prices a European call under a model-specific
// (τ, K, F, σ) parameterization. Put prices are always derived via
// put-call parity rather than a second formula.
type OptionPricingFormula interface {
	Call(tau, strike, forward, vol float64) (float64, error)
}

// Deltaer, Gammaer, Vegaer, Thetaer are optional interfaces a formula may
// implement for an analytic Greek; absent one, Delta/Gamma/Vega/Theta fall
// back to a finite difference of Call.
type Deltaer interface {
	Delta(tau, strike, forward, vol float64) (float64, error)
}
type Gammaer interface {
	Gamma(tau, strike, forward, vol float64) (float64, error)
}
type Vegaer interface {
	Vega(tau, strike, forward, vol float64) (float64, error)
}
type Thetaer interface {
	Theta(tau, strike, forward, vol float64) (float64, error)
}

// BinaryCaller is an optional interface a formula may implement for an
// analytic cash-or-nothing binary call price; absent one, Binary derives
// it from a centered call spread.
type BinaryCaller interface {
	BinaryCall(tau, strike, forward, vol float64) (float64, error)
}

// Put returns the put price implied by put-call parity: put = K - F + call.
func Put(f OptionPricingFormula, tau, strike, forward, vol float64) (float64, error) {
	call, err := f.Call(tau, strike, forward, vol)
	if err != nil {
		return 0, err
	}
	return call - forward + strike, nil
}

// Delta returns ∂Call/∂F, scaled by DeltaScale, using the formula's
// analytic implementation when available.
func Delta(f OptionPricingFormula, tau, strike, forward, vol float64) (float64, error) {
	if d, ok := f.(Deltaer); ok {
		v, err := d.Delta(tau, strike, forward, vol)
		if err != nil {
			return 0, err
		}
		return v * DeltaScale, nil
	}
	up, err := f.Call(tau, strike, forward+ForwardBump, vol)
	if err != nil {
		return 0, err
	}
	down, err := f.Call(tau, strike, forward-ForwardBump, vol)
	if err != nil {
		return 0, err
	}
	return (up - down) / (2 * ForwardBump) * DeltaScale, nil
}

// Gamma returns ∂²Call/∂F², using the formula's analytic implementation
// when available. Not scaled (the source library does not configure a
// gamma scale).
func Gamma(f OptionPricingFormula, tau, strike, forward, vol float64) (float64, error) {
	if g, ok := f.(Gammaer); ok {
		return g.Gamma(tau, strike, forward, vol)
	}
	up, err := f.Call(tau, strike, forward+ForwardBump, vol)
	if err != nil {
		return 0, err
	}
	mid, err := f.Call(tau, strike, forward, vol)
	if err != nil {
		return 0, err
	}
	down, err := f.Call(tau, strike, forward-ForwardBump, vol)
	if err != nil {
		return 0, err
	}
	return (up - 2*mid + down) / (ForwardBump * ForwardBump), nil
}

// Vega returns ∂Call/∂σ, scaled by VegaScale.
func Vega(f OptionPricingFormula, tau, strike, forward, vol float64) (float64, error) {
	if v, ok := f.(Vegaer); ok {
		val, err := v.Vega(tau, strike, forward, vol)
		if err != nil {
			return 0, err
		}
		return val * VegaScale, nil
	}
	up, err := f.Call(tau, strike, forward, vol+VolBump)
	if err != nil {
		return 0, err
	}
	down, err := f.Call(tau, strike, forward, math.Max(vol-VolBump, 0))
	if err != nil {
		return 0, err
	}
	return (up - down) / (2 * VolBump) * VegaScale, nil
}

// Theta returns the time-decay sensitivity, scaled by ThetaScale.
func Theta(f OptionPricingFormula, tau, strike, forward, vol float64) (float64, error) {
	if t, ok := f.(Thetaer); ok {
		val, err := t.Theta(tau, strike, forward, vol)
		if err != nil {
			return 0, err
		}
		return val * ThetaScale, nil
	}
	up, err := f.Call(tau+TauBump, strike, forward, vol)
	if err != nil {
		return 0, err
	}
	down, err := f.Call(math.Max(tau-TauBump, 0), strike, forward, vol)
	if err != nil {
		return 0, err
	}
	return -(up - down) / (2 * TauBump) * ThetaScale, nil
}

// Binary returns the cash-or-nothing binary call price, using the
// formula's analytic implementation when available, else a centered
// call-spread finite difference of width 2·StrikeShift.
func Binary(f OptionPricingFormula, tau, strike, forward, vol float64) (float64, error) {
	if b, ok := f.(BinaryCaller); ok {
		return b.BinaryCall(tau, strike, forward, vol)
	}
	up, err := f.Call(tau, strike+StrikeShift, forward, vol)
	if err != nil {
		return 0, err
	}
	down, err := f.Call(tau, strike-StrikeShift, forward, vol)
	if err != nil {
		return 0, err
	}
	return -(up - down) / (2 * StrikeShift), nil
}

// Intrinsic is the zero-volatility pricing formula: call = max(F-K, 0).
// Gamma, vega and theta are zero since the payoff is piecewise linear in F
// with no curvature away from the strike; delta (and the binary call) is a
// step: 1 when F > K, else 0.
type Intrinsic struct{}

func (Intrinsic) Call(_, strike, forward, _ float64) (float64, error) {
	return math.Max(forward-strike, 0), nil
}

func (Intrinsic) Delta(_, strike, forward, _ float64) (float64, error) {
	if forward > strike {
		return 1, nil
	}
	return 0, nil
}
func (Intrinsic) Gamma(_, _, _, _ float64) (float64, error) { return 0, nil }
func (Intrinsic) Vega(_, _, _, _ float64) (float64, error)  { return 0, nil }
func (Intrinsic) Theta(_, _, _, _ float64) (float64, error) { return 0, nil }

func (Intrinsic) BinaryCall(_, strike, forward, _ float64) (float64, error) {
	if forward > strike {
		return 1, nil
	}
	return 0, nil
}

// Bachelier is the normal-model (additive) option pricing formula.
type Bachelier struct{}

func bachelierD(tau, strike, forward, vol float64) (v, d float64, degenerate bool) {
	v = vol * math.Sqrt(tau)
	if v <= 0 {
		return 0, 0, true
	}
	return v, (forward - strike) / v, false
}

func (Bachelier) Call(tau, strike, forward, vol float64) (float64, error) {
	v, d, degenerate := bachelierD(tau, strike, forward, vol)
	if degenerate {
		return math.Max(forward-strike, 0), nil
	}
	return (forward-strike)*NormalCDF(d) + v*NormalPDF(d), nil
}

func (Bachelier) Delta(tau, strike, forward, vol float64) (float64, error) {
	_, d, degenerate := bachelierD(tau, strike, forward, vol)
	if degenerate {
		if forward > strike {
			return 1, nil
		}
		return 0, nil
	}
	return NormalCDF(d), nil
}

func (Bachelier) Gamma(tau, strike, forward, vol float64) (float64, error) {
	v, d, degenerate := bachelierD(tau, strike, forward, vol)
	if degenerate {
		return 0, nil
	}
	return NormalPDF(d) / v, nil
}

func (Bachelier) Vega(tau, strike, forward, vol float64) (float64, error) {
	_, d, degenerate := bachelierD(tau, strike, forward, vol)
	if degenerate {
		return 0, nil
	}
	return math.Sqrt(tau) * NormalPDF(d), nil
}

func (Bachelier) BinaryCall(tau, strike, forward, vol float64) (float64, error) {
	_, d, degenerate := bachelierD(tau, strike, forward, vol)
	if degenerate {
		if forward > strike {
			return 1, nil
		}
		return 0, nil
	}
	return NormalCDF(d), nil
}

// Black76 is the log-normal forward-measure option pricing formula.
type Black76 struct{}

func black76D(tau, strike, forward, vol float64) (v, d float64, degenerate bool) {
	if forward <= 0 || strike <= 0 {
		return 0, 0, true
	}
	v = vol * math.Sqrt(tau)
	if v <= 0 {
		return 0, 0, true
	}
	return v, (math.Log(forward/strike) + v*v/2) / v, false
}

func (Black76) Call(tau, strike, forward, vol float64) (float64, error) {
	v, d, degenerate := black76D(tau, strike, forward, vol)
	if degenerate {
		return math.Max(forward-strike, 0), nil
	}
	return forward*NormalCDF(d) - strike*NormalCDF(d-v), nil
}

func (Black76) Delta(tau, strike, forward, vol float64) (float64, error) {
	_, d, degenerate := black76D(tau, strike, forward, vol)
	if degenerate {
		if forward > strike {
			return 1, nil
		}
		return 0, nil
	}
	return NormalCDF(d), nil
}

// Black76 has no closed-form gamma in the source library (left unfinished
// there too); callers fall through to the generic finite-difference Gamma.

func (Black76) Vega(tau, strike, forward, vol float64) (float64, error) {
	v, d, degenerate := black76D(tau, strike, forward, vol)
	if degenerate {
		return 0, nil
	}
	return forward * math.Sqrt(tau) * NormalPDF(d-v), nil
}

func (Black76) BinaryCall(tau, strike, forward, vol float64) (float64, error) {
	v, d, degenerate := black76D(tau, strike, forward, vol)
	if degenerate {
		if forward > strike {
			return 1, nil
		}
		return 0, nil
	}
	return NormalCDF(d - v), nil
}

// DisplacedBlack76 applies Black76 to (F+α, K+α) for a displacement α,
// extending the log-normal model to negative forwards/strikes.
type DisplacedBlack76 struct {
	Displacement float64
}

func (d DisplacedBlack76) Call(tau, strike, forward, vol float64) (float64, error) {
	return Black76{}.Call(tau, strike+d.Displacement, forward+d.Displacement, vol)
}

func (d DisplacedBlack76) Delta(tau, strike, forward, vol float64) (float64, error) {
	return Black76{}.Delta(tau, strike+d.Displacement, forward+d.Displacement, vol)
}

func (d DisplacedBlack76) Vega(tau, strike, forward, vol float64) (float64, error) {
	return Black76{}.Vega(tau, strike+d.Displacement, forward+d.Displacement, vol)
}

func (d DisplacedBlack76) BinaryCall(tau, strike, forward, vol float64) (float64, error) {
	return Black76{}.BinaryCall(tau, strike+d.Displacement, forward+d.Displacement, vol)
}
