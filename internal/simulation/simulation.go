// Package simulation runs bet-sizing strategies against a bankroll over
// sequences of binary outcomes and reports how the bankroll fared.
package simulation

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/bankroller/internal/bankroll"
	"github.com/yourusername/bankroller/internal/logger"
	"github.com/yourusername/bankroller/internal/metrics"
	"github.com/yourusername/bankroller/internal/strategy"
)

// Custom errors
var (
	ErrInvalidParameter = errors.New("invalid simulation parameter")
)

// Default simulation parameters
const (
	DefaultTrials           = 1000
	DefaultStdev            = 0.1
	DefaultUncertaintyStdev = 0.05
)

// Simulator evaluates a strategy against a bankroll over repeated bets. A run
// stops early when the bankroll is ruined; the report records how far it got.
type Simulator interface {
	Name() string
	Run(strat strategy.Strategy, br *bankroll.Bankroll) (*Report, error)
}

// Option configures a simulator.
type Option func(*engine)

// WithSeed fixes the random source so a run can be reproduced exactly.
func WithSeed(seed int64) Option {
	return func(e *engine) {
		e.seed = seed
	}
}

// WithLogger sets the base logger for run events.
func WithLogger(baseLogger *logrus.Logger) Option {
	return func(e *engine) {
		e.log = logger.NewSimulationLogger(baseLogger)
	}
}

// WithMetrics enables Prometheus metrics recording for the run.
func WithMetrics() Option {
	return func(e *engine) {
		e.metricsOn = true
	}
}

// engine holds the economics and plumbing shared by every simulator. Each
// simulator supplies a draw function producing the probability the strategy
// sees and the probability that actually drives the outcome.
type engine struct {
	payoff          float64
	loss            float64
	transactionCost float64
	trials          int
	seed            int64
	log             *logger.SimulationLogger
	metricsOn       bool
}

func newEngine(payoff, loss, transactionCost float64, trials int, opts []Option) (engine, error) {
	if payoff <= 0 {
		return engine{}, fmt.Errorf("%w: payoff must be greater than 0, got %v", ErrInvalidParameter, payoff)
	}
	if loss < 0 || transactionCost < 0 {
		return engine{}, fmt.Errorf("%w: loss and transaction cost must be non-negative", ErrInvalidParameter)
	}
	if trials == 0 {
		trials = DefaultTrials
	}
	if trials < 0 {
		return engine{}, fmt.Errorf("%w: trials must be positive, got %d", ErrInvalidParameter, trials)
	}
	e := engine{
		payoff:          payoff,
		loss:            loss,
		transactionCost: transactionCost,
		trials:          trials,
	}
	for _, opt := range opts {
		opt(&e)
	}
	if e.seed == 0 {
		e.seed = time.Now().UnixNano()
	}
	if e.log == nil {
		e.log = logger.NewSimulationLogger(logrus.StandardLogger())
	}
	return e, nil
}

// run executes the trial loop. draw returns the probability shown to the
// strategy and the probability governing the actual outcome; for perfect
// information simulators the two are equal.
func (e *engine) run(simulatorName string, strat strategy.Strategy, br *bankroll.Bankroll, draw func(rng *rand.Rand) (estimated, actual float64)) (*Report, error) {
	if strat == nil || br == nil {
		return nil, fmt.Errorf("%w: strategy and bankroll are required", ErrInvalidParameter)
	}

	rng := rand.New(rand.NewSource(e.seed))
	runID := uuid.NewString()
	started := time.Now()

	e.log.LogRunStart(runID, strat.Name(), simulatorName, e.trials, br.InitialFunds(), e.seed)

	report := &Report{
		RunID:         runID,
		StrategyName:  strat.Name(),
		SimulatorName: simulatorName,
		Trials:        e.trials,
		InitialFunds:  br.InitialFunds(),
		Seed:          e.seed,
	}

	betsPlaced, wins := 0, 0
	for trial := 0; trial < e.trials; trial++ {
		if tracker, ok := strat.(strategy.BankrollTracker); ok {
			tracker.UpdateBankroll(br.TotalFunds())
		}

		estimated, actual := draw(rng)
		proportion := strat.Evaluate(estimated, br.TotalFunds())
		stake := proportion * br.BettableFunds()
		won := rng.Float64() < actual

		err := br.SettleBet(bankroll.Settlement{
			Stake:           stake,
			Won:             won,
			Payoff:          e.payoff,
			Loss:            e.loss,
			TransactionCost: e.transactionCost,
		})
		report.TrialsRun = trial + 1

		if err != nil {
			var ruin *bankroll.RuinError
			if errors.As(err, &ruin) {
				report.Ruined = true
				report.RuinReason = ruin.Reason
				e.log.LogRuin(runID, trial, br.TotalFunds(), br.DrawdownFloor(), ruin.Reason)
				if e.metricsOn {
					metrics.RecordRuin(strat.Name(), ruin.Reason)
				}
				break
			}
			return nil, fmt.Errorf("settling trial %d: %w", trial, err)
		}

		if stake > 0 {
			betsPlaced++
			if won {
				wins++
			}
			if recorder, ok := strat.(strategy.ResultRecorder); ok {
				returnPct := -e.loss
				if won {
					returnPct = e.payoff
				}
				recorder.RecordResult(won, returnPct)
			}
		}
		if e.metricsOn {
			metrics.RecordBetSettled(strat.Name(), won, proportion, br.TotalFunds())
		}
		e.log.LogBetSettled(runID, trial, stake, won, br.TotalFunds())
	}

	report.finish(br, betsPlaced, wins)

	outcome := "completed"
	if report.Ruined {
		outcome = "ruined"
	}
	if e.metricsOn {
		metrics.RecordSimulationRun(strat.Name(), outcome, time.Since(started).Seconds())
	}
	e.log.LogRunComplete(runID, report.TrialsRun, report.FinalFunds, report.TotalReturn, report.MaxDrawdown, report.WinRate, report.Ruined)

	return report, nil
}
