package simulation

import (
	"fmt"
	"math/rand"

	"github.com/yourusername/bankroller/internal/bankroll"
	"github.com/yourusername/bankroller/internal/strategy"
)

// RandomUncertainBinarySimulator models imperfect information: the strategy
// sees a probability drawn around a coin flip, but the outcome is governed by
// that probability plus independent noise. Strategies that over-bet on their
// estimates suffer here.
type RandomUncertainBinarySimulator struct {
	engine
	stdev            float64
	uncertaintyStdev float64
}

// NewRandomUncertainBinarySimulator creates an uncertain-probability
// simulator. stdev and uncertaintyStdev of 0 use DefaultStdev and
// DefaultUncertaintyStdev; trials of 0 uses DefaultTrials.
func NewRandomUncertainBinarySimulator(payoff, loss, transactionCost, stdev, uncertaintyStdev float64, trials int, opts ...Option) (*RandomUncertainBinarySimulator, error) {
	if stdev == 0 {
		stdev = DefaultStdev
	}
	if uncertaintyStdev == 0 {
		uncertaintyStdev = DefaultUncertaintyStdev
	}
	if stdev < 0 || uncertaintyStdev < 0 {
		return nil, fmt.Errorf("%w: stdev and uncertainty stdev must be positive", ErrInvalidParameter)
	}
	e, err := newEngine(payoff, loss, transactionCost, trials, opts)
	if err != nil {
		return nil, err
	}
	return &RandomUncertainBinarySimulator{engine: e, stdev: stdev, uncertaintyStdev: uncertaintyStdev}, nil
}

// Name returns the simulator name.
func (s *RandomUncertainBinarySimulator) Name() string { return "random_uncertain_binary" }

// Run evaluates the strategy over the configured number of trials.
func (s *RandomUncertainBinarySimulator) Run(strat strategy.Strategy, br *bankroll.Bankroll) (*Report, error) {
	return s.engine.run(s.Name(), strat, br, func(rng *rand.Rand) (float64, float64) {
		estimated := clampProbability(0.5 + rng.NormFloat64()*s.stdev)
		actual := clampProbability(estimated + rng.NormFloat64()*s.uncertaintyStdev)
		return estimated, actual
	})
}
