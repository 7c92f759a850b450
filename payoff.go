package dcf

import "fmt"

// RateSource is anything payoffs can sample a forward value from at a
// date: a price ForwardCurve, an InterestRateCurve's cash rate, or any
// other DateCurve-shaped quantity.
type RateSource interface {
	At(Date) (float64, error)
}

// OptionType distinguishes calls from puts. Cap and Floor are the rate-
// option vocabulary for the same two payoff shapes (a cap is a call on a
// rate, a floor a put).
type OptionType int

const (
	Call OptionType = iota
	Put
)

const (
	Cap   = Call
	Floor = Put
)

// DetailValue is the type of a single entry in a Details record: f64,
// Date, string, or int.
type DetailValue interface{}

// Details is a key-ordered record describing a priced cashflow. The only
// required key is "cashflow".
type Details struct {
	order []string
	data  map[string]DetailValue
}

// NewDetails returns an empty Details record.
func NewDetails() *Details {
	return &Details{data: make(map[string]DetailValue)}
}

// Set stores value under key, appending key to the iteration order the
// first time it is used.
func (d *Details) Set(key string, value DetailValue) *Details {
	if _, ok := d.data[key]; !ok {
		d.order = append(d.order, key)
	}
	d.data[key] = value
	return d
}

// Get returns the value stored under key, if any.
func (d *Details) Get(key string) (DetailValue, bool) {
	v, ok := d.data[key]
	return v, ok
}

// Keys returns the detail keys in insertion order.
func (d *Details) Keys() []string {
	return append([]string(nil), d.order...)
}

// Cashflow returns the required "cashflow" entry.
func (d *Details) Cashflow() float64 {
	v, _ := d.data["cashflow"]
	f, _ := v.(float64)
	return f
}

// ValuationContext carries the curves a payoff may need to price itself,
// supplied at call time. A non-nil field here always takes priority over
// the same kind of curve stored on the payoff itself — the pricing ladder
// is: context argument > payoff field > none.
type ValuationContext struct {
	Now       Date
	DayCount  DayCount
	Forward   RateSource
	Volatility VolatilityCurve
	Formula   OptionPricingFormula
}

func resolveForward(ctx RateSource, field RateSource) RateSource {
	if ctx != nil {
		return ctx
	}
	return field
}

func resolveFormula(ctx, field OptionPricingFormula) OptionPricingFormula {
	if ctx != nil {
		return ctx
	}
	return field
}

func resolveVol(ctx, field VolatilityCurve) VolatilityCurve {
	if ctx != nil {
		return ctx
	}
	return field
}

// Payoff is a contingent amount payable at a pay date.
type Payoff interface {
	PayDate() Date
	Notional() float64
	Details(ctx ValuationContext) (*Details, error)
}

// FixedCashFlowPayOff pays Amount at Pay, optionally bumped by a price
// forward curve: cashflow = amount + forward_curve(pay_date).
type FixedCashFlowPayOff struct {
	Pay     Date
	Amount  float64
	Forward RateSource
}

func (p FixedCashFlowPayOff) PayDate() Date     { return p.Pay }
func (p FixedCashFlowPayOff) Notional() float64 { return p.Amount }

func (p FixedCashFlowPayOff) Details(ctx ValuationContext) (*Details, error) {
	fwd := resolveForward(ctx.Forward, p.Forward)
	cashflow := p.Amount
	if fwd != nil {
		v, err := fwd.At(p.Pay)
		if err != nil {
			return nil, fmt.Errorf("FixedCashFlowPayOff.Details: %w", err)
		}
		cashflow += v
	}
	d := NewDetails()
	d.Set("cashflow", cashflow).Set("pay date", p.Pay).Set("notional", p.Amount)
	return d, nil
}

// RateCashFlowPayOff pays a notional-weighted rate accrual:
// cashflow = (fixed_rate + forward_rate) · τ(start, end) · amount.
type RateCashFlowPayOff struct {
	Pay          Date
	Start, End   Date
	Amount       float64
	DayCount     DayCount
	FixingOffset Period
	FixedRate    float64
	Forward      RateSource
}

func (p RateCashFlowPayOff) PayDate() Date     { return p.Pay }
func (p RateCashFlowPayOff) Notional() float64 { return p.Amount }

func (p RateCashFlowPayOff) dayCount() DayCount {
	if p.DayCount != nil {
		return p.DayCount
	}
	return Act365
}

func (p RateCashFlowPayOff) Details(ctx ValuationContext) (*Details, error) {
	fwd := resolveForward(ctx.Forward, p.Forward)
	forwardRate := 0.0
	if fwd != nil {
		fixingDate := p.Start.AddPeriod(p.FixingOffset.Negate())
		v, err := fwd.At(fixingDate)
		if err != nil {
			return nil, fmt.Errorf("RateCashFlowPayOff.Details: %w", err)
		}
		forwardRate = v
	}
	tau := p.dayCount()(p.Start, p.End)
	cashflow := (p.FixedRate + forwardRate) * tau * p.Amount
	d := NewDetails()
	d.Set("cashflow", cashflow).
		Set("pay date", p.Pay).
		Set("notional", p.Amount).
		Set("fixed rate", p.FixedRate).
		Set("forward rate", forwardRate).
		Set("start date", p.Start).
		Set("end date", p.End).
		Set("year fraction", tau)
	return d, nil
}

// OptionCashFlowPayOff pays a European option payoff on a forward price:
// cashflow = amount · price(option_type, F, K, τ, σ), priced via the
// context/field option formula and forward/volatility curves.
type OptionCashFlowPayOff struct {
	Pay, Expiry Date
	Amount      float64
	Strike      float64
	Type        OptionType
	Forward     RateSource
	Volatility  VolatilityCurve
	Formula     OptionPricingFormula
}

func (p OptionCashFlowPayOff) PayDate() Date     { return p.Pay }
func (p OptionCashFlowPayOff) Notional() float64 { return p.Amount }

// resolvedForwardVol prices F and σ for an option payoff given the
// resolved curves, using ctx.Now as the vol curve's valuation-start date.
func resolvedForwardVol(ctx ValuationContext, expiry Date, fwd RateSource, vol VolatilityCurve) (forward, tau, sigma float64, err error) {
	if fwd == nil {
		return 0, 0, 0, newErr("OptionCashFlowPayOff.Details", MissingCurve, "no forward curve available")
	}
	forward, err = fwd.At(expiry)
	if err != nil {
		return 0, 0, 0, err
	}
	dc := ctx.DayCount
	if dc == nil {
		dc = Act365
	}
	tau = dc(ctx.Now, expiry)
	if vol == nil {
		return forward, tau, 0, nil
	}
	sigma, err = vol.ForwardVolatility(ctx.Now, expiry)
	return forward, tau, sigma, err
}

func (p OptionCashFlowPayOff) Details(ctx ValuationContext) (*Details, error) {
	fwd := resolveForward(ctx.Forward, p.Forward)
	vol := resolveVol(ctx.Volatility, p.Volatility)
	formula := resolveFormula(ctx.Formula, p.Formula)
	if formula == nil {
		formula = Intrinsic{}
	}
	forward, tau, sigma, err := resolvedForwardVol(ctx, p.Expiry, fwd, vol)
	if err != nil {
		return nil, err
	}
	var price float64
	if p.Type == Call {
		price, err = formula.Call(tau, p.Strike, forward, sigma)
	} else {
		price, err = Put(formula, tau, p.Strike, forward, sigma)
	}
	if err != nil {
		return nil, err
	}
	cashflow := p.Amount * price
	d := NewDetails()
	d.Set("cashflow", cashflow).
		Set("pay date", p.Pay).
		Set("notional", p.Amount).
		Set("strike", p.Strike).
		Set("forward", forward).
		Set("volatility", sigma).
		Set("expiry date", p.Expiry)
	if p.Type == Call {
		d.Set("option type", "call")
	} else {
		d.Set("option type", "put")
	}
	return d, nil
}

// DigitalOptionCashFlowPayOff pays a fixed amount if the option finishes
// in the money, priced via the formula's binary call (or a call-spread
// finite difference when the formula has none).
type DigitalOptionCashFlowPayOff struct {
	Pay, Expiry Date
	Amount      float64
	Strike      float64
	Type        OptionType
	Forward     RateSource
	Volatility  VolatilityCurve
	Formula     OptionPricingFormula
}

func (p DigitalOptionCashFlowPayOff) PayDate() Date     { return p.Pay }
func (p DigitalOptionCashFlowPayOff) Notional() float64 { return p.Amount }

func (p DigitalOptionCashFlowPayOff) Details(ctx ValuationContext) (*Details, error) {
	fwd := resolveForward(ctx.Forward, p.Forward)
	vol := resolveVol(ctx.Volatility, p.Volatility)
	formula := resolveFormula(ctx.Formula, p.Formula)
	if formula == nil {
		formula = Intrinsic{}
	}
	forward, tau, sigma, err := resolvedForwardVol(ctx, p.Expiry, fwd, vol)
	if err != nil {
		return nil, err
	}
	price, err := Binary(formula, tau, p.Strike, forward, sigma)
	if err != nil {
		return nil, err
	}
	if p.Type == Put {
		price = 1 - price
	}
	cashflow := p.Amount * price
	d := NewDetails()
	d.Set("cashflow", cashflow).
		Set("pay date", p.Pay).
		Set("notional", p.Amount).
		Set("strike", p.Strike).
		Set("forward", forward).
		Set("volatility", sigma).
		Set("expiry date", p.Expiry).
		Set("is digital", true)
	return d, nil
}

// OptionStrategyCashFlowPayOff sums a book of calls and puts sharing a
// single expiry, each with its own strike and amount.
type OptionStrategyCashFlowPayOff struct {
	Pay, Expiry  Date
	CallStrikes  []float64
	CallAmounts  []float64
	PutStrikes   []float64
	PutAmounts   []float64
	Forward      RateSource
	Volatility   VolatilityCurve
	Formula      OptionPricingFormula
}

func (p OptionStrategyCashFlowPayOff) PayDate() Date { return p.Pay }

func (p OptionStrategyCashFlowPayOff) Notional() float64 {
	total := 0.0
	for _, a := range p.CallAmounts {
		total += a
	}
	for _, a := range p.PutAmounts {
		total += a
	}
	return total
}

func (p OptionStrategyCashFlowPayOff) Details(ctx ValuationContext) (*Details, error) {
	fwd := resolveForward(ctx.Forward, p.Forward)
	vol := resolveVol(ctx.Volatility, p.Volatility)
	formula := resolveFormula(ctx.Formula, p.Formula)
	if formula == nil {
		formula = Intrinsic{}
	}
	forward, tau, sigma, err := resolvedForwardVol(ctx, p.Expiry, fwd, vol)
	if err != nil {
		return nil, err
	}
	cashflow := 0.0
	for i, k := range p.CallStrikes {
		price, err := formula.Call(tau, k, forward, sigma)
		if err != nil {
			return nil, err
		}
		cashflow += p.CallAmounts[i] * price
	}
	for i, k := range p.PutStrikes {
		price, err := Put(formula, tau, k, forward, sigma)
		if err != nil {
			return nil, err
		}
		cashflow += p.PutAmounts[i] * price
	}
	d := NewDetails()
	d.Set("cashflow", cashflow).
		Set("pay date", p.Pay).
		Set("forward", forward).
		Set("volatility", sigma).
		Set("expiry date", p.Expiry)
	return d, nil
}

// ContingentRateCashFlowPayOff is a rate payoff plus a long floorlet at
// FloorStrike minus a short caplet at CapStrike, collaring the effective
// rate into [FloorStrike, CapStrike].
type ContingentRateCashFlowPayOff struct {
	Rate                   RateCashFlowPayOff
	CapStrike, FloorStrike float64
	Volatility             VolatilityCurve
	Formula                OptionPricingFormula
}

func (p ContingentRateCashFlowPayOff) PayDate() Date     { return p.Rate.Pay }
func (p ContingentRateCashFlowPayOff) Notional() float64 { return p.Rate.Amount }

func (p ContingentRateCashFlowPayOff) Details(ctx ValuationContext) (*Details, error) {
	rateDetails, err := p.Rate.Details(ctx)
	if err != nil {
		return nil, err
	}
	fwd := resolveForward(ctx.Forward, p.Rate.Forward)
	vol := resolveVol(ctx.Volatility, p.Volatility)
	formula := resolveFormula(ctx.Formula, p.Formula)
	if formula == nil {
		formula = Intrinsic{}
	}
	tau := p.Rate.dayCount()(p.Rate.Start, p.Rate.End)
	cashflow := rateDetails.Cashflow()
	if fwd != nil {
		forward, err := fwd.At(p.Rate.Start.AddPeriod(p.Rate.FixingOffset.Negate()))
		if err != nil {
			return nil, err
		}
		dc := ctx.DayCount
		if dc == nil {
			dc = p.Rate.dayCount()
		}
		expiryTau := dc(ctx.Now, p.Rate.Start)
		sigma := 0.0
		if vol != nil {
			sigma, err = vol.ForwardVolatility(ctx.Now, p.Rate.Start)
			if err != nil {
				return nil, err
			}
		}
		floorPrice, err := Put(formula, expiryTau, p.FloorStrike, forward, sigma)
		if err != nil {
			return nil, err
		}
		capPrice, err := formula.Call(expiryTau, p.CapStrike, forward, sigma)
		if err != nil {
			return nil, err
		}
		cashflow += (floorPrice - capPrice) * tau * p.Rate.Amount
	}
	d := NewDetails()
	d.Set("cashflow", cashflow).
		Set("pay date", p.Rate.Pay).
		Set("notional", p.Rate.Amount).
		Set("fixed rate", p.Rate.FixedRate).
		Set("start date", p.Rate.Start).
		Set("end date", p.Rate.End).
		Set("year fraction", tau).
		Set("cap strike", p.CapStrike).
		Set("floor strike", p.FloorStrike)
	return d, nil
}
