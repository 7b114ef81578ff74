package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/bankroller/internal/config"
	"github.com/yourusername/bankroller/internal/strategy"
)

func TestNewStrategyBuildsEveryVariant(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.StrategyConfig
		want string
	}{
		{
			name: "kelly",
			cfg:  config.StrategyConfig{Name: "kelly", Payoff: 1, Loss: 1},
			want: "kelly",
		},
		{
			name: "fractional kelly",
			cfg:  config.StrategyConfig{Name: "fractional_kelly", Payoff: 1, Loss: 1, Fraction: 0.5},
			want: "fractional_kelly",
		},
		{
			name: "drawdown adjusted kelly",
			cfg:  config.StrategyConfig{Name: "drawdown_adjusted_kelly", Payoff: 1, Loss: 1, MaxAcceptableDrawdown: 0.2},
			want: "drawdown_adjusted_kelly",
		},
		{
			name: "naive",
			cfg:  config.StrategyConfig{Name: "naive", Payoff: 1, Loss: 1},
			want: "naive",
		},
		{
			name: "fixed fraction",
			cfg:  config.StrategyConfig{Name: "fixed_fraction", Payoff: 1, Loss: 1, Fraction: 0.05, MinProbability: 0.5},
			want: "fixed_fraction",
		},
		{
			name: "optimal f",
			cfg:  config.StrategyConfig{Name: "optimal_f", Payoff: 2, Loss: 1, WinRate: 0.6},
			want: "optimal_f",
		},
		{
			name: "cppi",
			cfg:  config.StrategyConfig{Name: "cppi", Payoff: 1, Loss: 1, FloorFraction: 0.5, Multiplier: 2},
			want: "cppi",
		},
		{
			name: "dynamic bankroll",
			cfg:  config.StrategyConfig{Name: "dynamic_bankroll", Payoff: 1, Loss: 1, BaseFraction: 0.1, WindowSize: 5, MinFraction: 0.05, MaxFraction: 0.2},
			want: "dynamic_bankroll",
		},
		{
			name: "merton share",
			cfg:  config.StrategyConfig{Name: "merton_share", Payoff: 1, Loss: 1, RiskAversion: 2},
			want: "merton_share",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strat, err := NewStrategy(tt.cfg, 1000)
			require.NoError(t, err)
			assert.Equal(t, tt.want, strat.Name())
		})
	}
}

func TestNewStrategyUnknownName(t *testing.T) {
	_, err := NewStrategy(config.StrategyConfig{Name: "martingale", Payoff: 1, Loss: 1}, 1000)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown strategy")
}

func TestNewStrategyPropagatesParameterErrors(t *testing.T) {
	_, err := NewStrategy(config.StrategyConfig{Name: "fractional_kelly", Payoff: 1, Loss: 1, Fraction: 2}, 1000)
	assert.ErrorIs(t, err, strategy.ErrInvalidParameter)
}

func TestNewSimulatorBuildsEveryVariant(t *testing.T) {
	base := &config.Config{
		Strategy: config.StrategyConfig{Name: "kelly", Payoff: 1, Loss: 1},
		Simulation: config.SimulationConfig{
			Trials:      100,
			Probability: 0.55,
			Stdev:       0.1,
			Seed:        42,
		},
	}

	for _, name := range []string{"repeated_binary", "random_binary", "random_uncertain_binary"} {
		cfg := *base
		cfg.Simulation.Simulator = name

		sim, err := NewSimulator(&cfg)
		require.NoError(t, err, name)
		assert.Equal(t, name, sim.Name())
	}
}

func TestNewSimulatorPassesUncertaintyStdev(t *testing.T) {
	cfg := &config.Config{
		Strategy: config.StrategyConfig{Name: "kelly", Payoff: 1, Loss: 1},
		Simulation: config.SimulationConfig{
			Simulator:        "random_uncertain_binary",
			Trials:           100,
			Stdev:            0.1,
			UncertaintyStdev: 0.2,
		},
	}

	sim, err := NewSimulator(cfg)
	require.NoError(t, err)
	uncertain, ok := sim.(*RandomUncertainBinarySimulator)
	require.True(t, ok)
	assert.Equal(t, 0.2, uncertain.uncertaintyStdev)

	// Left unset, the constructor default applies.
	cfg.Simulation.UncertaintyStdev = 0
	sim, err = NewSimulator(cfg)
	require.NoError(t, err)
	assert.Equal(t, DefaultUncertaintyStdev, sim.(*RandomUncertainBinarySimulator).uncertaintyStdev)
}

func TestNewSimulatorUnknownName(t *testing.T) {
	cfg := &config.Config{
		Strategy:   config.StrategyConfig{Name: "kelly", Payoff: 1, Loss: 1},
		Simulation: config.SimulationConfig{Simulator: "roulette", Trials: 100},
	}

	_, err := NewSimulator(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown simulator")
}

func TestFactoryWiredRunEndToEnd(t *testing.T) {
	cfg := &config.Config{
		Bankroll: config.BankrollConfig{InitialFunds: 1000, PercentBettable: 1, MaxDrawDown: 0.3},
		Strategy: config.StrategyConfig{Name: "fractional_kelly", Payoff: 1, Loss: 1, TransactionCost: 0.01, Fraction: 0.5},
		Simulation: config.SimulationConfig{
			Simulator:   "repeated_binary",
			Trials:      500,
			Probability: 0.55,
			Seed:        42,
		},
	}

	strat, err := NewStrategy(cfg.Strategy, cfg.Bankroll.InitialFunds)
	require.NoError(t, err)
	sim, err := NewSimulator(cfg, WithLogger(quietLogger()))
	require.NoError(t, err)

	br, err := NewBankroll(cfg.Bankroll)
	require.NoError(t, err)

	report, err := sim.Run(strat, br)
	require.NoError(t, err)

	assert.Equal(t, "fractional_kelly", report.StrategyName)
	assert.Equal(t, int64(42), report.Seed)
	assert.LessOrEqual(t, report.TrialsRun, 500)

	floor := br.DrawdownFloor()
	for i, balance := range report.History {
		if balance < floor {
			assert.True(t, report.Ruined)
			assert.Equal(t, len(report.History)-1, i)
		}
	}
}
