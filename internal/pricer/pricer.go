// Package pricer computes the expected value of a capped-gain payoff on a
// lognormally distributed terminal price by direct quadrature of the
// payoff-weighted density.
package pricer

import (
	"errors"
	"fmt"
	"math"

	"github.com/openquant/capgain/internal/lognormal"
	"github.com/openquant/capgain/internal/quadrature"
)

// CappedGain is the payoff alpha*(S_T - S0) for S_T below the cap H and the
// constant alpha*(H - S0) at or above it.
type CappedGain struct {
	Alpha float64 // scaling factor
	Cap   float64 // cap threshold H, > 0
}

// Validate checks the payoff parameters. Cap > Spot is deliberately not
// required: a cap at or below spot degenerates to an almost-surely capped
// payoff, which the integrals handle as-is.
func (p CappedGain) Validate() error {
	if !(p.Cap > 0) {
		return fmt.Errorf("%w: cap must be > 0, got %g", lognormal.ErrInvalidParameter, p.Cap)
	}
	return nil
}

// Valuation is the expected payoff together with the combined quadrature
// error bound of the two regions.
type Valuation struct {
	Value    float64 `json:"value"`
	AbsError float64 `json:"abs_error"`
}

// ExpectedPayoff computes E[payoff(S_T)] as the sum of two integrals:
// alpha*(s-S0)*density(s) over the bounded region [0, H] and
// alpha*(H-S0)*density(s) over the tail [H, inf).
//
// The lower bound of the bounded region is exactly 0; the density's explicit
// zero return for s <= 0 makes sampling the boundary safe. Parameters are
// validated once here, before any integration.
//
// A tolerance failure in either region is returned as an error wrapping
// quadrature.ErrTolerance, together with the summed best estimate and its
// error bound, so the caller decides whether the precision is acceptable.
func ExpectedPayoff(dist lognormal.TerminalDist, pay CappedGain, opt quadrature.Options) (Valuation, error) {
	if err := dist.Validate(); err != nil {
		return Valuation{}, err
	}
	if err := pay.Validate(); err != nil {
		return Valuation{}, err
	}

	below, errBelow := integrateBounded(func(s float64) float64 {
		return pay.Alpha * (s - dist.Spot) * dist.Density(s)
	}, dist, pay.Cap, opt)

	capped := pay.Alpha * (pay.Cap - dist.Spot)
	above, errAbove := quadrature.Integrate(func(s float64) float64 {
		return capped * dist.Density(s)
	}, quadrature.NewSemiInfinite(pay.Cap), opt)

	val := Valuation{
		Value:    below.Value + above.Value,
		AbsError: below.AbsError + above.AbsError,
	}
	if err := errors.Join(errBelow, errAbove); err != nil {
		return val, err
	}
	return val, nil
}

// TailClosedForm returns alpha*(H-S0)*P(S_T >= H), the closed-form value of
// the tail integral. The production path integrates the tail directly;
// this is the cross-check the two must agree with to within tolerance.
func TailClosedForm(dist lognormal.TerminalDist, pay CappedGain) float64 {
	return pay.Alpha * (pay.Cap - dist.Spot) * dist.TailProb(pay.Cap)
}

// DensityMass integrates the bare density over [0, inf). It should be 1 for
// any valid parameter set and serves as a normalization self-check. The
// domain is split at the distribution mean so the adaptive loop localizes
// the mode quickly.
func DensityMass(dist lognormal.TerminalDist, opt quadrature.Options) (quadrature.Result, error) {
	if err := dist.Validate(); err != nil {
		return quadrature.Result{}, err
	}
	cut := dist.Mean()
	head, errHead := integrateBounded(dist.Density, dist, cut, opt)
	tail, errTail := quadrature.Integrate(dist.Density, quadrature.NewSemiInfinite(cut), opt)
	res := quadrature.Result{
		Value:        head.Value + tail.Value,
		AbsError:     head.AbsError + tail.AbsError,
		Subdivisions: head.Subdivisions + tail.Subdivisions,
	}
	if err := errors.Join(errHead, errTail); err != nil {
		return res, err
	}
	return res, nil
}

// integrateBounded integrates f over [0, hi] with breakpoints at eight log
// standard deviations either side of the density's center. Without them a
// cap far in the tail leaves the sharply peaked density invisible to the
// first quadrature panels, which would then agree on zero and stop early.
func integrateBounded(f func(float64) float64, dist lognormal.TerminalDist, hi float64, opt quadrature.Options) (quadrature.Result, error) {
	m, v := dist.LogMean(), dist.LogStd()
	pts := []float64{0}
	for _, p := range []float64{math.Exp(m - 8*v), math.Exp(m + 8*v)} {
		if p < hi && !math.IsInf(p, 0) {
			pts = append(pts, p)
		}
	}
	pts = append(pts, hi)

	var res quadrature.Result
	var errs []error
	for i := 1; i < len(pts); i++ {
		seg, err := quadrature.Integrate(f, quadrature.NewBounded(pts[i-1], pts[i]), opt)
		res.Value += seg.Value
		res.AbsError += seg.AbsError
		res.Subdivisions += seg.Subdivisions
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return res, err
	}
	return res, nil
}
