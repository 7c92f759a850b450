// Package dcf implements a discounted-cashflow toolkit: interpolation
// schemes and curve algebra, interest-rate/credit/volatility/forward curve
// families, option pricing formulas, a cashflow payoff model, and a pricer
// built on top of them.
//
// # Sub-packages
//
// The public API is flat. Implementation is split across files like
// compounding.go and curve.go, but callers import only this package.
package dcf
