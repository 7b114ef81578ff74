// Package utility implements CRRA expected-utility math and the
// indifference-price search used for one-shot gamble pricing.
package utility

import (
	"errors"
	"fmt"
	"math"
)

// Custom errors
var (
	ErrDomain      = errors.New("utility domain violation")
	ErrConvergence = errors.New("indifference price search did not converge")
)

// probabilitySumTolerance is the allowed deviation of a probability
// vector from summing to exactly 1.
const probabilitySumTolerance = 1e-6

// CRRA returns the constant relative risk aversion utility of wealth.
// At riskAversion == 1 it degenerates to log utility.
func CRRA(wealth, riskAversion float64) (float64, error) {
	if wealth <= 0 {
		return 0, fmt.Errorf("%w: wealth must be positive, got %v", ErrDomain, wealth)
	}
	if riskAversion == 1 {
		return math.Log(wealth), nil
	}
	return (math.Pow(wealth, 1-riskAversion) - 1) / (1 - riskAversion), nil
}

// Expected returns the expected CRRA utility of entering a discrete gamble
// at entryPrice: sum over outcomes of p_i * CRRA(wealth - entryPrice + o_i).
// Every post-outcome wealth must be positive and probabilities must sum to 1.
func Expected(outcomes, probabilities []float64, currentWealth, entryPrice, riskAversion float64) (float64, error) {
	if len(outcomes) != len(probabilities) {
		return 0, fmt.Errorf("%w: %d outcomes vs %d probabilities", ErrDomain, len(outcomes), len(probabilities))
	}
	if len(outcomes) == 0 {
		return 0, fmt.Errorf("%w: empty gamble", ErrDomain)
	}

	sum := 0.0
	for _, p := range probabilities {
		if p < 0 {
			return 0, fmt.Errorf("%w: negative probability %v", ErrDomain, p)
		}
		sum += p
	}
	if math.Abs(sum-1) > probabilitySumTolerance {
		return 0, fmt.Errorf("%w: probabilities sum to %v", ErrDomain, sum)
	}

	eu := 0.0
	for i, outcome := range outcomes {
		wealth := currentWealth - entryPrice + outcome
		u, err := CRRA(wealth, riskAversion)
		if err != nil {
			return 0, fmt.Errorf("outcome %d leaves non-positive wealth %v: %w", i, wealth, err)
		}
		eu += probabilities[i] * u
	}
	return eu, nil
}

// Search parameters for IndifferencePrice. The iteration cap bounds the
// bisection so the search always terminates.
const (
	DefaultTolerance         = 1e-6
	DefaultMaxSearchFraction = 0.5
	maxSearchIterations      = 200
)

// IndifferencePrice finds the entry price at which the expected utility of
// playing the gamble equals the utility of keeping currentWealth, by
// bisection over [0, maxSearchFraction*currentWealth]. A gamble not worth
// playing at any price returns 0; a gamble still worth playing at the search
// bound returns the bound.
func IndifferencePrice(outcomes, probabilities []float64, currentWealth, riskAversion, tolerance, maxSearchFraction float64) (float64, error) {
	if currentWealth <= 0 {
		return 0, fmt.Errorf("%w: wealth must be positive, got %v", ErrDomain, currentWealth)
	}
	if len(outcomes) == 0 {
		return 0, fmt.Errorf("%w: empty gamble", ErrDomain)
	}
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	if maxSearchFraction <= 0 || maxSearchFraction > 1 {
		maxSearchFraction = DefaultMaxSearchFraction
	}

	baseline, err := CRRA(currentWealth, riskAversion)
	if err != nil {
		return 0, err
	}

	// The upper bound must keep every post-outcome wealth positive or the
	// expected-utility evaluations inside the search would fail.
	hi := maxSearchFraction * currentWealth
	minOutcome := outcomes[0]
	for _, o := range outcomes[1:] {
		if o < minOutcome {
			minOutcome = o
		}
	}
	if limit := currentWealth + minOutcome; hi >= limit {
		hi = limit * (1 - 1e-9)
	}
	if hi <= 0 {
		return 0, nil
	}

	euFree, err := Expected(outcomes, probabilities, currentWealth, 0, riskAversion)
	if err != nil {
		return 0, err
	}
	if euFree <= baseline {
		// Not worth playing even for free.
		return 0, nil
	}

	euBound, err := Expected(outcomes, probabilities, currentWealth, hi, riskAversion)
	if err != nil {
		return 0, err
	}
	if euBound >= baseline {
		// Still attractive at the search bound; the bound is the answer.
		return hi, nil
	}

	lo := 0.0
	for i := 0; i < maxSearchIterations; i++ {
		if hi-lo <= tolerance {
			return lo, nil
		}
		mid := (lo + hi) / 2
		eu, err := Expected(outcomes, probabilities, currentWealth, mid, riskAversion)
		if err != nil {
			return 0, err
		}
		if eu >= baseline {
			lo = mid
		} else {
			hi = mid
		}
	}
	return 0, fmt.Errorf("%w: interval %v after %d iterations exceeds tolerance %v",
		ErrConvergence, hi-lo, maxSearchIterations, tolerance)
}
