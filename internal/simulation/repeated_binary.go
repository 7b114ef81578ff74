package simulation

import (
	"fmt"
	"math/rand"

	"github.com/yourusername/bankroller/internal/bankroll"
	"github.com/yourusername/bankroller/internal/strategy"
)

// RepeatedBinarySimulator bets on the same event over and over: every trial
// has the same win probability and the strategy knows it exactly.
type RepeatedBinarySimulator struct {
	engine
	probability float64
}

// NewRepeatedBinarySimulator creates a fixed-probability simulator.
// probability must be in [0, 1]; trials of 0 uses DefaultTrials.
func NewRepeatedBinarySimulator(payoff, loss, transactionCost, probability float64, trials int, opts ...Option) (*RepeatedBinarySimulator, error) {
	if probability < 0 || probability > 1 {
		return nil, fmt.Errorf("%w: probability must be in [0, 1], got %v", ErrInvalidParameter, probability)
	}
	e, err := newEngine(payoff, loss, transactionCost, trials, opts)
	if err != nil {
		return nil, err
	}
	return &RepeatedBinarySimulator{engine: e, probability: probability}, nil
}

// Name returns the simulator name.
func (s *RepeatedBinarySimulator) Name() string { return "repeated_binary" }

// Run evaluates the strategy over the configured number of trials.
func (s *RepeatedBinarySimulator) Run(strat strategy.Strategy, br *bankroll.Bankroll) (*Report, error) {
	return s.engine.run(s.Name(), strat, br, func(_ *rand.Rand) (float64, float64) {
		return s.probability, s.probability
	})
}
