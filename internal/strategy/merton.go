package strategy

import "fmt"

// MertonShare sizes bets with the Merton share from CRRA utility theory:
//
//	f* = mu / (gamma * sigma^2)
//
// where mu is the cost-adjusted expected return of the binary bet, sigma^2
// its variance and gamma the risk-aversion coefficient. Higher gamma gives
// strictly smaller bets; gamma = 1 recovers a Kelly-like log-utility bettor.
type MertonShare struct {
	base
	riskAversion float64
	maxFraction  float64
}

// NewMertonShare creates a Merton-share strategy. riskAversion must be
// positive and maxFraction in (0, 1], with 1 applied when 0.
func NewMertonShare(payoff, loss, transactionCost, riskAversion, maxFraction float64) (*MertonShare, error) {
	if riskAversion <= 0 {
		return nil, fmt.Errorf("%w: risk aversion must be greater than 0, got %v", ErrInvalidParameter, riskAversion)
	}
	if maxFraction == 0 {
		maxFraction = 1
	}
	if maxFraction <= 0 || maxFraction > 1 {
		return nil, fmt.Errorf("%w: maximum fraction must be in (0, 1], got %v", ErrInvalidParameter, maxFraction)
	}
	b, err := newBase(payoff, loss, transactionCost)
	if err != nil {
		return nil, err
	}
	return &MertonShare{base: b, riskAversion: riskAversion, maxFraction: maxFraction}, nil
}

// Name returns the strategy name.
func (s *MertonShare) Name() string { return "merton_share" }

// Evaluate returns the Merton share of the bankroll for a win probability.
// Bets with non-positive expected return or zero variance (certain outcomes)
// size to zero.
func (s *MertonShare) Evaluate(probability, currentBankroll float64) float64 {
	if probability <= 0 || probability >= 1 {
		return 0
	}
	payoff, loss := s.costAdjusted()
	if payoff <= 0 {
		return 0
	}
	q := 1 - probability
	mu := probability*payoff - q*loss
	if mu <= 0 {
		return 0
	}
	secondMoment := probability*payoff*payoff + q*loss*loss
	variance := secondMoment - mu*mu
	if variance <= 0 {
		return 0
	}
	f := mu / (s.riskAversion * variance)
	if f > s.maxFraction {
		f = s.maxFraction
	}
	return s.clamp(f, currentBankroll)
}

// MaxEntryPrice prices the gamble at the CRRA indifference point using the
// strategy's own risk aversion.
func (s *MertonShare) MaxEntryPrice(outcomes, probabilities []float64, currentWealth float64, opts ...PriceOption) (float64, error) {
	return s.indifferencePrice(outcomes, probabilities, currentWealth, s.riskAversion, applyPriceOptions(opts))
}
