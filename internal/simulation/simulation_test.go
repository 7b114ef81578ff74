package simulation

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/bankroller/internal/bankroll"
	"github.com/yourusername/bankroller/internal/strategy"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// stubStrategy bets a constant fraction regardless of probability and records
// the callbacks the engine makes.
type stubStrategy struct {
	fraction float64
	updates  []float64
	results  []float64
}

func (s *stubStrategy) Name() string { return "stub" }

func (s *stubStrategy) Evaluate(probability, currentBankroll float64) float64 {
	return s.fraction
}

func (s *stubStrategy) MaxEntryPrice(outcomes, probabilities []float64, currentWealth float64, opts ...strategy.PriceOption) (float64, error) {
	return 0, nil
}

func (s *stubStrategy) UpdateBankroll(currentBankroll float64) {
	s.updates = append(s.updates, currentBankroll)
}

func (s *stubStrategy) RecordResult(won bool, returnPct float64) {
	s.results = append(s.results, returnPct)
}

func newBankroll(t *testing.T, initialFunds, percentBettable, maxDrawDown float64) *bankroll.Bankroll {
	t.Helper()
	br, err := bankroll.New(initialFunds, percentBettable, maxDrawDown)
	require.NoError(t, err)
	return br
}

func TestRepeatedBinaryDeterministicWithSeed(t *testing.T) {
	run := func() *Report {
		sim, err := NewRepeatedBinarySimulator(1, 1, 0, 0.55, 200, WithSeed(42), WithLogger(quietLogger()))
		require.NoError(t, err)
		strat, err := strategy.NewKellyCriterion(1, 1, 0)
		require.NoError(t, err)

		report, err := sim.Run(strat, newBankroll(t, 1000, 1, 1))
		require.NoError(t, err)
		return report
	}

	first, second := run(), run()
	assert.Equal(t, first.FinalFunds, second.FinalFunds)
	assert.Equal(t, first.History, second.History)
	assert.Equal(t, first.WinRate, second.WinRate)
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestNegativeEdgeStrategyNeverBets(t *testing.T) {
	sim, err := NewRepeatedBinarySimulator(1, 1, 0, 0.4, 100, WithSeed(1), WithLogger(quietLogger()))
	require.NoError(t, err)
	strat, err := strategy.NewNaive(1, 1, 0)
	require.NoError(t, err)

	br := newBankroll(t, 1000, 1, 1)
	report, err := sim.Run(strat, br)
	require.NoError(t, err)

	assert.Equal(t, 100, report.TrialsRun)
	assert.Equal(t, 0, report.BetsPlaced)
	assert.Equal(t, 1000.0, report.FinalFunds)
	assert.Equal(t, 0.0, report.WinRate)
	assert.False(t, report.Ruined)
}

func TestKellyRunRespectsDrawdownFloor(t *testing.T) {
	sim, err := NewRepeatedBinarySimulator(1, 1, 0.01, 0.55, 1000, WithSeed(7), WithLogger(quietLogger()))
	require.NoError(t, err)
	strat, err := strategy.NewKellyCriterion(1, 1, 0.01)
	require.NoError(t, err)

	br := newBankroll(t, 1000, 1, 0.3)
	report, err := sim.Run(strat, br)
	require.NoError(t, err)

	floor := br.DrawdownFloor()
	for i, balance := range report.History {
		if balance < floor {
			// Only the final committed balance of a ruined run may sit
			// below the floor.
			assert.True(t, report.Ruined, "balance %v below floor at index %d without ruin", balance, i)
			assert.Equal(t, len(report.History)-1, i)
		}
		assert.GreaterOrEqual(t, balance, 0.0)
	}
	assert.Equal(t, report.History[len(report.History)-1], report.FinalFunds)
	if !report.Ruined {
		assert.Equal(t, 1000, report.TrialsRun)
	} else {
		assert.NotEmpty(t, report.RuinReason)
	}
}

func TestEngineFeedsBankrollTracker(t *testing.T) {
	sim, err := NewRepeatedBinarySimulator(1, 1, 0, 0.5, 25, WithSeed(3), WithLogger(quietLogger()))
	require.NoError(t, err)

	stub := &stubStrategy{fraction: 0}
	report, err := sim.Run(stub, newBankroll(t, 1000, 1, 1))
	require.NoError(t, err)

	require.Len(t, stub.updates, 25)
	for _, balance := range stub.updates {
		assert.Equal(t, 1000.0, balance)
	}
	assert.Equal(t, 25, report.TrialsRun)
}

func TestEngineFeedsResultRecorder(t *testing.T) {
	// probability 1 means every bet wins.
	sim, err := NewRepeatedBinarySimulator(2, 1, 0, 1, 10, WithSeed(3), WithLogger(quietLogger()))
	require.NoError(t, err)

	stub := &stubStrategy{fraction: 0.01}
	report, err := sim.Run(stub, newBankroll(t, 1000, 1, 1))
	require.NoError(t, err)

	require.Len(t, stub.results, 10)
	for _, r := range stub.results {
		assert.Equal(t, 2.0, r)
	}
	assert.Equal(t, 10, report.BetsPlaced)
	assert.Equal(t, 1.0, report.WinRate)
	assert.Greater(t, report.FinalFunds, 1000.0)
}

func TestDrawdownRuinStopsRun(t *testing.T) {
	// probability 0 means every bet loses; an all-in strategy breaches the
	// drawdown floor on the first settlement.
	sim, err := NewRepeatedBinarySimulator(1, 1, 0, 0, 100, WithSeed(3), WithLogger(quietLogger()))
	require.NoError(t, err)

	stub := &stubStrategy{fraction: 0.5}
	br := newBankroll(t, 1000, 1, 0.3)
	report, err := sim.Run(stub, br)
	require.NoError(t, err)

	assert.True(t, report.Ruined)
	assert.Equal(t, "drawdown limit breached", report.RuinReason)
	assert.Equal(t, 1, report.TrialsRun)
	assert.Equal(t, 500.0, report.FinalFunds)
	assert.True(t, br.Ruined())
}

func TestBankruptcyRuinLeavesBalanceIntact(t *testing.T) {
	// A full-stake loss plus the transaction cost would overdraw the
	// balance, so the settlement is rejected before commit.
	sim, err := NewRepeatedBinarySimulator(1, 1, 0.01, 0, 100, WithSeed(3), WithLogger(quietLogger()))
	require.NoError(t, err)

	stub := &stubStrategy{fraction: 1}
	br := newBankroll(t, 1000, 1, 1)
	report, err := sim.Run(stub, br)
	require.NoError(t, err)

	assert.True(t, report.Ruined)
	assert.Equal(t, "settlement would bankrupt the bankroll", report.RuinReason)
	assert.Equal(t, 1000.0, report.FinalFunds)
	assert.Equal(t, []float64{1000}, report.History)
}

func TestRandomBinaryDeterministicWithSeed(t *testing.T) {
	run := func() *Report {
		sim, err := NewRandomBinarySimulator(1, 1, 0, 0.1, 200, WithSeed(11), WithLogger(quietLogger()))
		require.NoError(t, err)
		strat, err := strategy.NewFractionalKelly(1, 1, 0, 0.5)
		require.NoError(t, err)

		report, err := sim.Run(strat, newBankroll(t, 1000, 1, 1))
		require.NoError(t, err)
		return report
	}

	assert.Equal(t, run().History, run().History)
}

func TestRandomUncertainBinaryRuns(t *testing.T) {
	sim, err := NewRandomUncertainBinarySimulator(1, 1, 0, 0.1, 0.05, 200, WithSeed(11), WithLogger(quietLogger()))
	require.NoError(t, err)
	strat, err := strategy.NewFractionalKelly(1, 1, 0, 0.25)
	require.NoError(t, err)

	report, err := sim.Run(strat, newBankroll(t, 1000, 1, 1))
	require.NoError(t, err)

	assert.Equal(t, "random_uncertain_binary", report.SimulatorName)
	assert.NotEmpty(t, report.RunID)
	for _, balance := range report.History {
		assert.GreaterOrEqual(t, balance, 0.0)
	}
}

func TestSimulatorValidation(t *testing.T) {
	_, err := NewRepeatedBinarySimulator(0, 1, 0, 0.5, 100)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = NewRepeatedBinarySimulator(1, 1, 0, 1.5, 100)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = NewRepeatedBinarySimulator(1, 1, 0, 0.5, -1)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = NewRandomBinarySimulator(1, 1, 0, -0.1, 100)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = NewRandomUncertainBinarySimulator(1, 1, 0, -0.1, 0.05, 100)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestRunRequiresStrategyAndBankroll(t *testing.T) {
	sim, err := NewRepeatedBinarySimulator(1, 1, 0, 0.5, 10, WithLogger(quietLogger()))
	require.NoError(t, err)

	_, err = sim.Run(nil, nil)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
