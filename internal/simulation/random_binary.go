package simulation

import (
	"fmt"
	"math/rand"

	"github.com/yourusername/bankroller/internal/bankroll"
	"github.com/yourusername/bankroller/internal/strategy"
)

// RandomBinarySimulator draws a fresh win probability for every trial from a
// normal distribution centered on a coin flip. The strategy sees the true
// probability of each trial.
type RandomBinarySimulator struct {
	engine
	stdev float64
}

// NewRandomBinarySimulator creates a random-probability simulator. stdev of 0
// uses DefaultStdev; trials of 0 uses DefaultTrials.
func NewRandomBinarySimulator(payoff, loss, transactionCost, stdev float64, trials int, opts ...Option) (*RandomBinarySimulator, error) {
	if stdev == 0 {
		stdev = DefaultStdev
	}
	if stdev < 0 {
		return nil, fmt.Errorf("%w: stdev must be positive, got %v", ErrInvalidParameter, stdev)
	}
	e, err := newEngine(payoff, loss, transactionCost, trials, opts)
	if err != nil {
		return nil, err
	}
	return &RandomBinarySimulator{engine: e, stdev: stdev}, nil
}

// Name returns the simulator name.
func (s *RandomBinarySimulator) Name() string { return "random_binary" }

// Run evaluates the strategy over the configured number of trials.
func (s *RandomBinarySimulator) Run(strat strategy.Strategy, br *bankroll.Bankroll) (*Report, error) {
	return s.engine.run(s.Name(), strat, br, func(rng *rand.Rand) (float64, float64) {
		p := clampProbability(0.5 + rng.NormFloat64()*s.stdev)
		return p, p
	})
}

func clampProbability(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
