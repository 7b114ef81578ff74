package strategy

import (
	"fmt"
	"math"

	"github.com/yourusername/bankroller/internal/utility"
)

// base carries the economic parameters every variant shares and the safety
// clamp applied to every evaluated fraction. Variants embed it rather than
// inheriting behaviour: each supplies its own sizing rule on top.
type base struct {
	payoff          float64
	loss            float64
	transactionCost float64
}

func newBase(payoff, loss, transactionCost float64) (base, error) {
	if payoff <= 0 {
		return base{}, fmt.Errorf("%w: payoff must be greater than 0, got %v", ErrInvalidParameter, payoff)
	}
	if loss < 0 {
		return base{}, fmt.Errorf("%w: loss must be non-negative, got %v", ErrInvalidParameter, loss)
	}
	if transactionCost < 0 {
		return base{}, fmt.Errorf("%w: transaction cost must be non-negative, got %v", ErrInvalidParameter, transactionCost)
	}
	if loss+transactionCost <= 0 {
		return base{}, fmt.Errorf("%w: total cost per losing bet must be greater than 0", ErrInvalidParameter)
	}
	return base{payoff: payoff, loss: loss, transactionCost: transactionCost}, nil
}

// Payoff returns the gain per unit staked on a win.
func (b base) Payoff() float64 { return b.payoff }

// Loss returns the loss per unit staked on a losing bet.
func (b base) Loss() float64 { return b.loss }

// TransactionCost returns the fixed cost charged per non-zero bet.
func (b base) TransactionCost() float64 { return b.transactionCost }

// MaxSafeBet returns the largest fraction of the bankroll whose worst-case
// loss (full stake times loss multiplier plus transaction cost) cannot drive
// the balance negative.
func (b base) MaxSafeBet(currentBankroll float64) float64 {
	if currentBankroll <= b.transactionCost {
		return 0
	}
	if b.loss == 0 {
		return 1
	}
	safe := (currentBankroll - b.transactionCost) / (currentBankroll * b.loss)
	if safe > 1 {
		return 1
	}
	if safe < 0 {
		return 0
	}
	return safe
}

// clamp restricts a raw fraction to [0, min(1, MaxSafeBet)]. No variant may
// return a negative fraction or one that could bankrupt the caller.
func (b base) clamp(fraction, currentBankroll float64) float64 {
	if math.IsNaN(fraction) || fraction <= 0 {
		return 0
	}
	if fraction > 1 {
		fraction = 1
	}
	if safe := b.MaxSafeBet(currentBankroll); fraction > safe {
		return safe
	}
	return fraction
}

// expectedValue is the per-unit expected value of a single bet at
// probability p, net of the transaction cost.
func (b base) expectedValue(p float64) float64 {
	return p*b.payoff - (1-p)*b.loss - b.transactionCost
}

// costAdjusted folds the fixed transaction cost into the per-unit payoff and
// loss, the form the Kelly and Merton rules operate on.
func (b base) costAdjusted() (payoff, loss float64) {
	return b.payoff - b.transactionCost, b.loss + b.transactionCost
}

func (b base) indifferencePrice(outcomes, probabilities []float64, currentWealth, riskAversion float64, o priceOptions) (float64, error) {
	return utility.IndifferencePrice(outcomes, probabilities, currentWealth, riskAversion, o.tolerance, o.maxSearchFraction)
}

// gambleEV returns the raw expected value of a discrete gamble.
func gambleEV(outcomes, probabilities []float64) (float64, error) {
	if len(outcomes) != len(probabilities) || len(outcomes) == 0 {
		return 0, fmt.Errorf("%w: %d outcomes vs %d probabilities", ErrInvalidParameter, len(outcomes), len(probabilities))
	}
	sum, ev := 0.0, 0.0
	for i, p := range probabilities {
		if p < 0 {
			return 0, fmt.Errorf("%w: negative probability %v", ErrInvalidParameter, p)
		}
		sum += p
		ev += p * outcomes[i]
	}
	if math.Abs(sum-1) > 1e-6 {
		return 0, fmt.Errorf("%w: probabilities sum to %v", ErrInvalidParameter, sum)
	}
	return ev, nil
}
