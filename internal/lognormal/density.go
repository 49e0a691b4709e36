// Package lognormal models the terminal asset price S_T under Black-Scholes
// dynamics: ln(S_T) is normally distributed with mean
// m = ln(S0) + (r - sigma^2/2)*T and standard deviation sigma*sqrt(T).
package lognormal

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

const sqrt2Pi = 2.5066282746310002

// ErrInvalidParameter is wrapped by every parameter validation failure.
// Callers match it with errors.Is.
var ErrInvalidParameter = errors.New("invalid parameter")

// TerminalDist is the distribution of the terminal price. The zero value is
// not usable; Validate must pass before Density or CDF are meaningful.
type TerminalDist struct {
	Spot    float64 // S0, spot price, > 0
	Rate    float64 // r, drift / risk-free rate
	Vol     float64 // sigma, volatility per unit time, > 0
	Horizon float64 // T, time horizon in years, > 0
}

// Validate rejects parameter combinations that would make the density
// undefined (division by zero or log of a non-positive spot).
func (d TerminalDist) Validate() error {
	if !(d.Spot > 0) {
		return fmt.Errorf("%w: spot must be > 0, got %g", ErrInvalidParameter, d.Spot)
	}
	if !(d.Vol > 0) {
		return fmt.Errorf("%w: vol must be > 0, got %g", ErrInvalidParameter, d.Vol)
	}
	if !(d.Horizon > 0) {
		return fmt.Errorf("%w: horizon must be > 0, got %g", ErrInvalidParameter, d.Horizon)
	}
	return nil
}

// LogMean returns m, the mean of ln(S_T).
func (d TerminalDist) LogMean() float64 {
	return math.Log(d.Spot) + (d.Rate-0.5*d.Vol*d.Vol)*d.Horizon
}

// LogStd returns the standard deviation of ln(S_T), sigma*sqrt(T).
func (d TerminalDist) LogStd() float64 {
	return d.Vol * math.Sqrt(d.Horizon)
}

// Mean returns E[S_T] = S0*exp(r*T).
func (d TerminalDist) Mean() float64 {
	return d.Spot * math.Exp(d.Rate*d.Horizon)
}

// Density returns the probability density of S_T at s.
//
// The support is strictly positive: for s <= 0 the density is exactly 0.
// The check comes before any logarithm, so integrators that sample the
// lower boundary s=0 get 0.0 rather than NaN.
func (d TerminalDist) Density(s float64) float64 {
	if s <= 0 {
		return 0
	}
	sd := d.LogStd()
	z := (math.Log(s) - d.LogMean()) / sd
	return math.Exp(-0.5*z*z) / (s * sd * sqrt2Pi)
}

// CDF returns P(S_T <= s).
func (d TerminalDist) CDF(s float64) float64 {
	if s <= 0 {
		return 0
	}
	return distuv.UnitNormal.CDF((math.Log(s) - d.LogMean()) / d.LogStd())
}

// TailProb returns P(S_T >= s), the complement used by the closed-form tail.
func (d TerminalDist) TailProb(s float64) float64 {
	return 1 - d.CDF(s)
}
