package simulation

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/yourusername/bankroller/internal/bankroll"
	"github.com/yourusername/bankroller/internal/strategy"
)

// MonteCarloConfig configures a batch of independently seeded runs.
type MonteCarloConfig struct {
	Runs int
	Seed int64
}

// MonteCarloResult aggregates the outcome distribution over many runs of the
// same strategy and simulator, each with its own random seed.
type MonteCarloResult struct {
	Runs                int                `json:"runs"`
	MeanReturn          float64            `json:"mean_return"`
	StdReturn           float64            `json:"std_return"`
	VaR95               float64            `json:"var_95"`
	VaR99               float64            `json:"var_99"`
	ProbabilityOfProfit float64            `json:"probability_of_profit"`
	ProbabilityOfRuin   float64            `json:"probability_of_ruin"`
	ConfidenceIntervals map[string]float64 `json:"confidence_intervals"`
	Distribution        []float64          `json:"distribution"`
}

// RunMonteCarlo executes cfg.Runs independent simulation runs and aggregates
// their final bankrolls. Strategies carry per-run state (rolling windows,
// tracked bankrolls), so a fresh strategy and bankroll are built for every
// run; the simulator is rebuilt with a seed derived from cfg.Seed.
func RunMonteCarlo(
	cfg MonteCarloConfig,
	newSimulator func(seed int64) (Simulator, error),
	newStrategy func() (strategy.Strategy, error),
	newBankroll func() (*bankroll.Bankroll, error),
) (MonteCarloResult, error) {
	if cfg.Runs <= 0 {
		cfg.Runs = 100
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	seeds := rand.New(rand.NewSource(seed))

	distribution := make([]float64, cfg.Runs)
	initialFunds := 0.0
	ruined := 0

	for i := 0; i < cfg.Runs; i++ {
		sim, err := newSimulator(seeds.Int63())
		if err != nil {
			return MonteCarloResult{}, fmt.Errorf("building simulator for run %d: %w", i, err)
		}
		strat, err := newStrategy()
		if err != nil {
			return MonteCarloResult{}, fmt.Errorf("building strategy for run %d: %w", i, err)
		}
		br, err := newBankroll()
		if err != nil {
			return MonteCarloResult{}, fmt.Errorf("building bankroll for run %d: %w", i, err)
		}
		initialFunds = br.InitialFunds()

		report, err := sim.Run(strat, br)
		if err != nil {
			return MonteCarloResult{}, fmt.Errorf("run %d: %w", i, err)
		}
		distribution[i] = report.FinalFunds
		if report.Ruined {
			ruined++
		}
	}

	if initialFunds <= 0 {
		return MonteCarloResult{}, fmt.Errorf("%w: initial funds must be positive", ErrInvalidParameter)
	}

	mean, std := meanStd(distribution)
	return MonteCarloResult{
		Runs:                cfg.Runs,
		MeanReturn:          (mean - initialFunds) / initialFunds,
		StdReturn:           std / initialFunds,
		VaR95:               (percentile(distribution, 0.05) - initialFunds) / initialFunds,
		VaR99:               (percentile(distribution, 0.01) - initialFunds) / initialFunds,
		ProbabilityOfProfit: probabilityAbove(distribution, initialFunds),
		ProbabilityOfRuin:   float64(ruined) / float64(cfg.Runs),
		ConfidenceIntervals: confidenceIntervals(distribution, []float64{0.9, 0.95, 0.99}),
		Distribution:        distribution,
	}, nil
}

// confidenceIntervals computes the width of central intervals of the
// distribution at the given levels.
func confidenceIntervals(distribution []float64, levels []float64) map[string]float64 {
	results := make(map[string]float64)
	for _, level := range levels {
		p := (1.0 - level) / 2.0
		low := percentile(distribution, p)
		high := percentile(distribution, 1.0-p)
		results[fmt.Sprintf("%.0f%%", level*100)] = high - low
	}
	return results
}

func meanStd(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(values))
	return mean, math.Sqrt(variance)
}

func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64{}, values...)
	sort.Float64s(sorted)
	idx := int(math.Floor(p * float64(len(sorted)-1)))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func probabilityAbove(values []float64, threshold float64) float64 {
	if len(values) == 0 {
		return 0
	}
	count := 0
	for _, v := range values {
		if v > threshold {
			count++
		}
	}
	return float64(count) / float64(len(values))
}
