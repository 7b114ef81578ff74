package simulation

import (
	"fmt"

	"github.com/yourusername/bankroller/internal/bankroll"
	"github.com/yourusername/bankroller/internal/config"
	"github.com/yourusername/bankroller/internal/strategy"
)

// NewBankroll builds the bankroll described by the configuration.
func NewBankroll(cfg config.BankrollConfig) (*bankroll.Bankroll, error) {
	return bankroll.New(cfg.InitialFunds, cfg.PercentBettable, cfg.MaxDrawDown)
}

// NewStrategy builds the strategy named by the configuration.
// initialBankroll is needed by strategies that anchor to the starting balance
// (CPPI's floor).
func NewStrategy(cfg config.StrategyConfig, initialBankroll float64) (strategy.Strategy, error) {
	switch cfg.Name {
	case "kelly":
		return strategy.NewKellyCriterion(cfg.Payoff, cfg.Loss, cfg.TransactionCost)

	case "fractional_kelly":
		return strategy.NewFractionalKelly(cfg.Payoff, cfg.Loss, cfg.TransactionCost, cfg.Fraction)

	case "drawdown_adjusted_kelly":
		return strategy.NewDrawdownAdjustedKelly(cfg.Payoff, cfg.Loss, cfg.TransactionCost, cfg.MaxAcceptableDrawdown)

	case "naive":
		return strategy.NewNaive(cfg.Payoff, cfg.Loss, cfg.TransactionCost)

	case "fixed_fraction":
		return strategy.NewFixedFraction(cfg.Payoff, cfg.Loss, cfg.TransactionCost, cfg.Fraction, cfg.MinProbability)

	case "optimal_f":
		return strategy.NewOptimalF(cfg.Payoff, cfg.Loss, cfg.TransactionCost, cfg.WinRate, cfg.MaxRiskFraction)

	case "cppi":
		return strategy.NewCPPI(cfg.Payoff, cfg.Loss, cfg.TransactionCost, cfg.FloorFraction, cfg.Multiplier, initialBankroll)

	case "dynamic_bankroll":
		return strategy.NewDynamicBankrollManagement(cfg.Payoff, cfg.Loss, cfg.TransactionCost, cfg.BaseFraction, cfg.WindowSize, cfg.MinFraction, cfg.MaxFraction)

	case "merton_share":
		return strategy.NewMertonShare(cfg.Payoff, cfg.Loss, cfg.TransactionCost, cfg.RiskAversion, cfg.MaxFraction)

	default:
		return nil, fmt.Errorf("unknown strategy: %s", cfg.Name)
	}
}

// NewSimulator builds the simulator named by the configuration.
func NewSimulator(cfg *config.Config, opts ...Option) (Simulator, error) {
	s := cfg.Strategy
	sim := cfg.Simulation
	if sim.Seed != 0 {
		opts = append(opts, WithSeed(sim.Seed))
	}

	switch sim.Simulator {
	case "repeated_binary":
		return NewRepeatedBinarySimulator(s.Payoff, s.Loss, s.TransactionCost, sim.Probability, sim.Trials, opts...)

	case "random_binary":
		return NewRandomBinarySimulator(s.Payoff, s.Loss, s.TransactionCost, sim.Stdev, sim.Trials, opts...)

	case "random_uncertain_binary":
		return NewRandomUncertainBinarySimulator(s.Payoff, s.Loss, s.TransactionCost, sim.Stdev, sim.UncertaintyStdev, sim.Trials, opts...)

	default:
		return nil, fmt.Errorf("unknown simulator: %s", sim.Simulator)
	}
}
