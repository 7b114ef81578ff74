// Package strategy implements the family of bet-sizing rules evaluated
// against a bankroll: Kelly variants, Optimal f, CPPI, Merton share and
// simpler fixed or naive rules.
package strategy

import (
	"errors"

	"github.com/yourusername/bankroller/internal/utility"
)

// Custom errors
var (
	ErrInvalidParameter = errors.New("invalid strategy parameter")
)

// Strategy is the capability shared by every bet-sizing rule. Evaluate
// returns the fraction of bettable funds to stake for a given win
// probability, always in [0, 1] and never above MaxSafeBet. MaxEntryPrice
// prices a one-shot discrete gamble: the highest entry price at which the
// strategy would still play.
type Strategy interface {
	Name() string
	Evaluate(probability, currentBankroll float64) float64
	MaxEntryPrice(outcomes, probabilities []float64, currentWealth float64, opts ...PriceOption) (float64, error)
}

// BankrollTracker is implemented by strategies whose sizing depends on an
// externally maintained view of the bankroll (CPPI). Simulators must call
// UpdateBankroll before each Evaluate.
type BankrollTracker interface {
	UpdateBankroll(currentBankroll float64)
}

// ResultRecorder is implemented by strategies that adapt to recent outcomes
// (dynamic bankroll management). Simulators feed it each settled bet.
type ResultRecorder interface {
	RecordResult(won bool, returnPct float64)
}

// PriceOption adjusts the entry-price search.
type PriceOption func(*priceOptions)

type priceOptions struct {
	tolerance         float64
	maxSearchFraction float64
}

// WithTolerance sets the convergence tolerance of the indifference-price
// search.
func WithTolerance(tolerance float64) PriceOption {
	return func(o *priceOptions) {
		o.tolerance = tolerance
	}
}

// WithMaxSearchFraction caps the entry price at a fraction of current wealth.
func WithMaxSearchFraction(fraction float64) PriceOption {
	return func(o *priceOptions) {
		o.maxSearchFraction = fraction
	}
}

func applyPriceOptions(opts []PriceOption) priceOptions {
	o := priceOptions{
		tolerance:         utility.DefaultTolerance,
		maxSearchFraction: utility.DefaultMaxSearchFraction,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
