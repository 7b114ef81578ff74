package strategy

import "fmt"

// DynamicBankrollManagement adjusts a base betting fraction with the average
// return over a rolling window of recent outcomes: winning streaks push the
// fraction up towards maxFraction, losing streaks pull it down towards
// minFraction.
//
// The window is mutated only through RecordResult; Evaluate never infers
// outcomes from bankroll movements. Simulators must feed it every settled
// bet.
type DynamicBankrollManagement struct {
	base
	baseFraction float64
	windowSize   int
	minFraction  float64
	maxFraction  float64
	returns      []float64
}

// NewDynamicBankrollManagement creates a dynamic bankroll management
// strategy. baseFraction must lie within [minFraction, maxFraction], all
// three in (0, 1], and windowSize must be positive.
func NewDynamicBankrollManagement(payoff, loss, transactionCost, baseFraction float64, windowSize int, minFraction, maxFraction float64) (*DynamicBankrollManagement, error) {
	if windowSize <= 0 {
		return nil, fmt.Errorf("%w: window size must be positive, got %d", ErrInvalidParameter, windowSize)
	}
	if minFraction <= 0 || maxFraction > 1 || minFraction > maxFraction {
		return nil, fmt.Errorf("%w: need 0 < min fraction <= max fraction <= 1, got [%v, %v]", ErrInvalidParameter, minFraction, maxFraction)
	}
	if baseFraction < minFraction || baseFraction > maxFraction {
		return nil, fmt.Errorf("%w: base fraction %v outside [%v, %v]", ErrInvalidParameter, baseFraction, minFraction, maxFraction)
	}
	b, err := newBase(payoff, loss, transactionCost)
	if err != nil {
		return nil, err
	}
	return &DynamicBankrollManagement{
		base:         b,
		baseFraction: baseFraction,
		windowSize:   windowSize,
		minFraction:  minFraction,
		maxFraction:  maxFraction,
	}, nil
}

// Name returns the strategy name.
func (s *DynamicBankrollManagement) Name() string { return "dynamic_bankroll" }

// RecordResult appends a settled outcome to the rolling window. returnPct is
// the fractional gain or loss of the bet (positive for wins, negative for
// losses); the oldest entry falls off once the window is full.
func (s *DynamicBankrollManagement) RecordResult(won bool, returnPct float64) {
	if won && returnPct < 0 || !won && returnPct > 0 {
		// Sign must agree with the outcome; trust the outcome.
		returnPct = -returnPct
	}
	s.returns = append(s.returns, returnPct)
	if len(s.returns) > s.windowSize {
		s.returns = s.returns[len(s.returns)-s.windowSize:]
	}
}

// WindowLen returns the number of outcomes currently in the window.
func (s *DynamicBankrollManagement) WindowLen() int { return len(s.returns) }

// adjustedFraction is the base fraction scaled by recent performance,
// bounded to [minFraction, maxFraction]. An empty window returns the base
// fraction untouched.
func (s *DynamicBankrollManagement) adjustedFraction() float64 {
	if len(s.returns) == 0 {
		return s.baseFraction
	}
	sum := 0.0
	for _, r := range s.returns {
		sum += r
	}
	performance := 1 + sum/float64(len(s.returns))
	if performance < 0 {
		performance = 0
	}
	return s.bound(s.baseFraction * performance)
}

func (s *DynamicBankrollManagement) bound(f float64) float64 {
	if f < s.minFraction {
		return s.minFraction
	}
	if f > s.maxFraction {
		return s.maxFraction
	}
	return f
}

// Evaluate returns the performance-adjusted fraction, additionally scaled by
// the win probability relative to a coin flip once outcomes have been
// observed.
func (s *DynamicBankrollManagement) Evaluate(probability, currentBankroll float64) float64 {
	f := s.adjustedFraction()
	if len(s.returns) > 0 {
		f = s.bound(f * 2 * probability)
	}
	return s.clamp(f, currentBankroll)
}

// MaxEntryPrice applies the current performance-adjusted fraction to wealth.
func (s *DynamicBankrollManagement) MaxEntryPrice(outcomes, probabilities []float64, currentWealth float64, opts ...PriceOption) (float64, error) {
	if _, err := gambleEV(outcomes, probabilities); err != nil {
		return 0, err
	}
	return s.adjustedFraction() * currentWealth, nil
}
