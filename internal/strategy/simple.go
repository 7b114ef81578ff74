package strategy

import "fmt"

// Naive bets the full bettable amount whenever the expected value of the bet
// is positive, and nothing otherwise. Risk-neutral, and a useful baseline for
// the Kelly variants.
type Naive struct {
	base
}

// NewNaive creates a naive expected-value strategy.
func NewNaive(payoff, loss, transactionCost float64) (*Naive, error) {
	b, err := newBase(payoff, loss, transactionCost)
	if err != nil {
		return nil, err
	}
	return &Naive{base: b}, nil
}

// Name returns the strategy name.
func (s *Naive) Name() string { return "naive" }

// Evaluate returns 1 when the bet has positive expected value, 0 otherwise.
func (s *Naive) Evaluate(probability, currentBankroll float64) float64 {
	if s.expectedValue(probability) <= 0 {
		return 0
	}
	return s.clamp(1, currentBankroll)
}

// MaxEntryPrice of a risk-neutral bettor is the raw expected value of the
// gamble.
func (s *Naive) MaxEntryPrice(outcomes, probabilities []float64, currentWealth float64, opts ...PriceOption) (float64, error) {
	_ = currentWealth
	ev, err := gambleEV(outcomes, probabilities)
	if err != nil {
		return 0, err
	}
	if ev < 0 {
		return 0, nil
	}
	return ev, nil
}

// FixedFraction bets a constant fraction of bettable funds whenever the win
// probability clears a threshold. It ignores expected value entirely.
type FixedFraction struct {
	base
	fraction       float64
	minProbability float64
}

// NewFixedFraction creates a fixed-fraction strategy. fraction must be in
// (0, 1] and minProbability in [0, 1].
func NewFixedFraction(payoff, loss, transactionCost, fraction, minProbability float64) (*FixedFraction, error) {
	if fraction <= 0 || fraction > 1 {
		return nil, fmt.Errorf("%w: fraction must be in (0, 1], got %v", ErrInvalidParameter, fraction)
	}
	if minProbability < 0 || minProbability > 1 {
		return nil, fmt.Errorf("%w: minimum probability must be in [0, 1], got %v", ErrInvalidParameter, minProbability)
	}
	b, err := newBase(payoff, loss, transactionCost)
	if err != nil {
		return nil, err
	}
	return &FixedFraction{base: b, fraction: fraction, minProbability: minProbability}, nil
}

// Name returns the strategy name.
func (s *FixedFraction) Name() string { return "fixed_fraction" }

// Evaluate returns the configured fraction when probability clears the
// threshold, 0 otherwise.
func (s *FixedFraction) Evaluate(probability, currentBankroll float64) float64 {
	if probability < s.minProbability {
		return 0
	}
	return s.clamp(s.fraction, currentBankroll)
}

// MaxEntryPrice applies the mechanical fraction to current wealth.
func (s *FixedFraction) MaxEntryPrice(outcomes, probabilities []float64, currentWealth float64, opts ...PriceOption) (float64, error) {
	if _, err := gambleEV(outcomes, probabilities); err != nil {
		return 0, err
	}
	return s.fraction * currentWealth, nil
}

// OptimalF implements Ralph Vince's optimal-f sizing: the fraction that
// maximizes geometric growth given a win rate and the reward-to-risk ratio,
// hard-capped at a maximum risk fraction. The continuous closed form is used;
// Vince's discrete search over trade history is a documented alternative.
type OptimalF struct {
	base
	winRate         float64
	maxRiskFraction float64
}

// DefaultMaxRiskFraction caps optimal-f bets when no explicit cap is given.
const DefaultMaxRiskFraction = 0.2

// NewOptimalF creates an optimal-f strategy. winRate must be in [0, 1];
// maxRiskFraction in (0, 1], with DefaultMaxRiskFraction applied when 0.
func NewOptimalF(payoff, loss, transactionCost, winRate, maxRiskFraction float64) (*OptimalF, error) {
	if winRate < 0 || winRate > 1 {
		return nil, fmt.Errorf("%w: win rate must be in [0, 1], got %v", ErrInvalidParameter, winRate)
	}
	if maxRiskFraction == 0 {
		maxRiskFraction = DefaultMaxRiskFraction
	}
	if maxRiskFraction <= 0 || maxRiskFraction > 1 {
		return nil, fmt.Errorf("%w: maximum risk fraction must be in (0, 1], got %v", ErrInvalidParameter, maxRiskFraction)
	}
	b, err := newBase(payoff, loss, transactionCost)
	if err != nil {
		return nil, err
	}
	return &OptimalF{base: b, winRate: winRate, maxRiskFraction: maxRiskFraction}, nil
}

// Name returns the strategy name.
func (s *OptimalF) Name() string { return "optimal_f" }

// Evaluate sizes with optimal f computed from the configured historical win
// rate, capped by the maximum risk fraction. The per-trial probability
// estimate only gates the bet: nothing is staked when the current estimate
// carries non-positive expected value.
func (s *OptimalF) Evaluate(probability, currentBankroll float64) float64 {
	if s.expectedValue(probability) <= 0 {
		return 0
	}
	var f float64
	if s.loss == 0 {
		// No downside: optimal f degenerates to the win rate itself.
		f = s.winRate
	} else {
		r := s.payoff / s.loss
		f = (s.winRate*r - (1 - s.winRate)) / r
	}
	f -= s.transactionCost / s.payoff
	if f > s.maxRiskFraction {
		f = s.maxRiskFraction
	}
	return s.clamp(f, currentBankroll)
}

// MaxEntryPrice prices at the log-utility indifference point; optimal f, like
// Kelly, targets geometric growth.
func (s *OptimalF) MaxEntryPrice(outcomes, probabilities []float64, currentWealth float64, opts ...PriceOption) (float64, error) {
	return s.indifferencePrice(outcomes, probabilities, currentWealth, 1.0, applyPriceOptions(opts))
}
