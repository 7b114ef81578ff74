package strategy

import "fmt"

// fullKellyDrawdown is the expected peak-to-trough drawdown of betting full
// Kelly, used as the reference when scaling for a tighter drawdown tolerance.
const fullKellyDrawdown = 0.5

// KellyCriterion sizes bets to maximize the expected logarithm of wealth.
// For asymmetric per-unit payoff and loss the fraction is
//
//	f* = (p*payoff - (1-p)*loss) / (payoff*loss)
//
// computed on cost-adjusted payoff and loss so the fixed transaction cost
// shrinks the bet.
type KellyCriterion struct {
	base
}

// NewKellyCriterion creates a full-Kelly strategy.
func NewKellyCriterion(payoff, loss, transactionCost float64) (*KellyCriterion, error) {
	b, err := newBase(payoff, loss, transactionCost)
	if err != nil {
		return nil, err
	}
	return &KellyCriterion{base: b}, nil
}

// Name returns the strategy name.
func (s *KellyCriterion) Name() string { return "kelly" }

// Evaluate returns the Kelly fraction for a win probability, clamped to
// [0, MaxSafeBet].
func (s *KellyCriterion) Evaluate(probability, currentBankroll float64) float64 {
	return s.clamp(s.fraction(probability), currentBankroll)
}

// fraction is the unclamped Kelly fraction; negative for negative-edge bets.
func (s *KellyCriterion) fraction(probability float64) float64 {
	if probability <= 0 {
		return 0
	}
	payoff, loss := s.costAdjusted()
	if payoff <= 0 {
		return 0
	}
	q := 1 - probability
	return (probability*payoff - q*loss) / (payoff * loss)
}

// MaxEntryPrice prices a one-shot gamble at the log-utility indifference
// point, the price at which a Kelly bettor is indifferent to playing.
func (s *KellyCriterion) MaxEntryPrice(outcomes, probabilities []float64, currentWealth float64, opts ...PriceOption) (float64, error) {
	return s.indifferencePrice(outcomes, probabilities, currentWealth, 1.0, applyPriceOptions(opts))
}

// FractionalKellyCriterion bets a fixed fraction of the full Kelly size,
// trading growth rate for lower volatility.
type FractionalKellyCriterion struct {
	kelly    KellyCriterion
	fraction float64
}

// NewFractionalKelly creates a fractional Kelly strategy; fraction must be
// in (0, 1].
func NewFractionalKelly(payoff, loss, transactionCost, fraction float64) (*FractionalKellyCriterion, error) {
	if fraction <= 0 || fraction > 1 {
		return nil, fmt.Errorf("%w: fraction must be in (0, 1], got %v", ErrInvalidParameter, fraction)
	}
	kelly, err := NewKellyCriterion(payoff, loss, transactionCost)
	if err != nil {
		return nil, err
	}
	return &FractionalKellyCriterion{kelly: *kelly, fraction: fraction}, nil
}

// Name returns the strategy name.
func (s *FractionalKellyCriterion) Name() string { return "fractional_kelly" }

// Evaluate returns fraction times the full Kelly size.
func (s *FractionalKellyCriterion) Evaluate(probability, currentBankroll float64) float64 {
	return s.kelly.clamp(s.fraction*s.kelly.fraction(probability), currentBankroll)
}

// MaxEntryPrice scales the full-Kelly indifference price by the configured
// fraction.
func (s *FractionalKellyCriterion) MaxEntryPrice(outcomes, probabilities []float64, currentWealth float64, opts ...PriceOption) (float64, error) {
	price, err := s.kelly.MaxEntryPrice(outcomes, probabilities, currentWealth, opts...)
	if err != nil {
		return 0, err
	}
	return s.fraction * price, nil
}

// DrawdownAdjustedKelly scales full Kelly down to honor a drawdown tolerance
// tighter than the roughly 50% expected of full Kelly.
type DrawdownAdjustedKelly struct {
	kelly                 KellyCriterion
	maxAcceptableDrawdown float64
}

// NewDrawdownAdjustedKelly creates a drawdown-adjusted Kelly strategy;
// maxAcceptableDrawdown must be in (0, 1).
func NewDrawdownAdjustedKelly(payoff, loss, transactionCost, maxAcceptableDrawdown float64) (*DrawdownAdjustedKelly, error) {
	if maxAcceptableDrawdown <= 0 || maxAcceptableDrawdown >= 1 {
		return nil, fmt.Errorf("%w: max acceptable drawdown must be in (0, 1), got %v", ErrInvalidParameter, maxAcceptableDrawdown)
	}
	kelly, err := NewKellyCriterion(payoff, loss, transactionCost)
	if err != nil {
		return nil, err
	}
	return &DrawdownAdjustedKelly{kelly: *kelly, maxAcceptableDrawdown: maxAcceptableDrawdown}, nil
}

// Name returns the strategy name.
func (s *DrawdownAdjustedKelly) Name() string { return "drawdown_adjusted_kelly" }

func (s *DrawdownAdjustedKelly) scale() float64 {
	scale := s.maxAcceptableDrawdown / fullKellyDrawdown
	if scale > 1 {
		return 1
	}
	return scale
}

// Evaluate returns the drawdown-scaled Kelly fraction.
func (s *DrawdownAdjustedKelly) Evaluate(probability, currentBankroll float64) float64 {
	return s.kelly.clamp(s.scale()*s.kelly.fraction(probability), currentBankroll)
}

// MaxEntryPrice scales the full-Kelly indifference price by the drawdown
// adjustment.
func (s *DrawdownAdjustedKelly) MaxEntryPrice(outcomes, probabilities []float64, currentWealth float64, opts ...PriceOption) (float64, error) {
	price, err := s.kelly.MaxEntryPrice(outcomes, probabilities, currentWealth, opts...)
	if err != nil {
		return 0, err
	}
	return s.scale() * price, nil
}
