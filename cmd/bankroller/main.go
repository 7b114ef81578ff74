// Package main provides the entry point for the bankroller simulation CLI.
package main

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/bankroller/internal/bankroll"
	"github.com/yourusername/bankroller/internal/config"
	"github.com/yourusername/bankroller/internal/health"
	"github.com/yourusername/bankroller/internal/logger"
	"github.com/yourusername/bankroller/internal/simulation"
	"github.com/yourusername/bankroller/internal/strategy"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string

	// run flags
	outputPath    string
	trialsFlag    int
	seedFlag      int64
	strategyFlag  string
	simulatorFlag string

	// price flags
	outcomesFlag      string
	probabilitiesFlag string
	wealthFlag        float64

	// montecarlo flags
	runsFlag int
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")

	runCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the run report as JSON to this path")
	runCmd.Flags().IntVar(&trialsFlag, "trials", 0, "Override the number of trials")
	runCmd.Flags().Int64Var(&seedFlag, "seed", 0, "Override the random seed")
	runCmd.Flags().StringVar(&strategyFlag, "strategy", "", "Override the strategy name")
	runCmd.Flags().StringVar(&simulatorFlag, "simulator", "", "Override the simulator name")

	priceCmd.Flags().StringVar(&outcomesFlag, "outcomes", "", "Comma-separated gamble outcomes, e.g. 100,-50")
	priceCmd.Flags().StringVar(&probabilitiesFlag, "probabilities", "", "Comma-separated outcome probabilities, e.g. 0.6,0.4")
	priceCmd.Flags().Float64Var(&wealthFlag, "wealth", 0, "Current wealth to price against")

	montecarloCmd.Flags().IntVar(&runsFlag, "runs", 100, "Number of independent simulation runs")
	montecarloCmd.Flags().Int64Var(&seedFlag, "seed", 0, "Base seed for the run batch")
	montecarloCmd.Flags().IntVar(&trialsFlag, "trials", 0, "Override the number of trials per run")
	montecarloCmd.Flags().StringVar(&strategyFlag, "strategy", "", "Override the strategy name")
	montecarloCmd.Flags().StringVar(&simulatorFlag, "simulator", "", "Override the simulator name")

	rootCmd.AddCommand(runCmd, priceCmd, montecarloCmd, versionCmd)
}

var rootCmd = &cobra.Command{
	Use:   "bankroller",
	Short: "Simulate bet-sizing strategies against a bankroll",
	Long:  `Runs Kelly-family, CPPI and related bet-sizing strategies through binary-outcome simulations and reports how the bankroll fared.`,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation described by the configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, baseLogger, err := loadConfig()
		if err != nil {
			return err
		}

		strat, err := simulation.NewStrategy(cfg.Strategy, cfg.Bankroll.InitialFunds)
		if err != nil {
			return fmt.Errorf("building strategy: %w", err)
		}
		br, err := simulation.NewBankroll(cfg.Bankroll)
		if err != nil {
			return fmt.Errorf("building bankroll: %w", err)
		}

		opts := []simulation.Option{simulation.WithLogger(baseLogger)}
		if cfg.Metrics.Enabled {
			opts = append(opts, simulation.WithMetrics())
			monitor := health.NewServer(health.Config{
				ServiceName: cfg.App.Name,
				Version:     Version,
				Commit:      GitCommit,
				Address:     cfg.Metrics.Address,
				Logger:      baseLogger,
			})
			if err := monitor.Start(cmd.Context()); err != nil {
				return fmt.Errorf("starting metrics server: %w", err)
			}
			monitor.SetReady(true)
			defer monitor.Shutdown()
		}

		sim, err := simulation.NewSimulator(cfg, opts...)
		if err != nil {
			return fmt.Errorf("building simulator: %w", err)
		}

		report, err := sim.Run(strat, br)
		if err != nil {
			return fmt.Errorf("running simulation: %w", err)
		}

		if outputPath == "" {
			outputPath = cfg.Simulation.OutputPath
		}
		if outputPath != "" {
			if err := report.Save(outputPath); err != nil {
				return err
			}
			baseLogger.WithField("path", outputPath).Info("Report written")
		}

		fmt.Printf("run %s: %s over %d trials (%s)\n", report.RunID, report.StrategyName, report.TrialsRun, report.SimulatorName)
		fmt.Printf("  final funds:  %.2f (return %+.2f%%)\n", report.FinalFunds, report.TotalReturn*100)
		fmt.Printf("  max drawdown: %.2f%%\n", report.MaxDrawdown*100)
		fmt.Printf("  win rate:     %.2f%% over %d bets\n", report.WinRate*100, report.BetsPlaced)
		if report.Ruined {
			fmt.Printf("  RUINED: %s\n", report.RuinReason)
		}
		return nil
	},
}

var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "Compute the maximum entry price for a one-shot gamble",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}

		outcomes, err := parseFloats(outcomesFlag)
		if err != nil {
			return fmt.Errorf("parsing --outcomes: %w", err)
		}
		probabilities, err := parseFloats(probabilitiesFlag)
		if err != nil {
			return fmt.Errorf("parsing --probabilities: %w", err)
		}
		wealth := wealthFlag
		if wealth == 0 {
			wealth = cfg.Bankroll.InitialFunds
		}

		strat, err := simulation.NewStrategy(cfg.Strategy, cfg.Bankroll.InitialFunds)
		if err != nil {
			return fmt.Errorf("building strategy: %w", err)
		}

		price, err := strat.MaxEntryPrice(outcomes, probabilities, wealth)
		if err != nil {
			return fmt.Errorf("pricing gamble: %w", err)
		}
		fmt.Printf("%s would pay at most %.4f at wealth %.2f\n", strat.Name(), price, wealth)
		return nil
	},
}

var montecarloCmd = &cobra.Command{
	Use:   "montecarlo",
	Short: "Aggregate the outcome distribution over many independently seeded runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, baseLogger, err := loadConfig()
		if err != nil {
			return err
		}

		// Each run gets its own seed; the configured seed only anchors
		// the batch.
		perRun := *cfg
		perRun.Simulation.Seed = 0

		newSim := func(seed int64) (simulation.Simulator, error) {
			return simulation.NewSimulator(&perRun, simulation.WithLogger(baseLogger), simulation.WithSeed(seed))
		}
		newStrat := func() (strategy.Strategy, error) {
			return simulation.NewStrategy(cfg.Strategy, cfg.Bankroll.InitialFunds)
		}
		newBr := func() (*bankroll.Bankroll, error) {
			return simulation.NewBankroll(cfg.Bankroll)
		}

		result, err := simulation.RunMonteCarlo(simulation.MonteCarloConfig{
			Runs: runsFlag,
			Seed: cfg.Simulation.Seed,
		}, newSim, newStrat, newBr)
		if err != nil {
			return fmt.Errorf("running monte carlo batch: %w", err)
		}

		fmt.Printf("%s over %d runs of %d trials (%s)\n", cfg.Strategy.Name, result.Runs, cfg.Simulation.Trials, cfg.Simulation.Simulator)
		fmt.Printf("  mean return:   %+.2f%% (std %.2f%%)\n", result.MeanReturn*100, result.StdReturn*100)
		fmt.Printf("  VaR 95%%/99%%:   %+.2f%% / %+.2f%%\n", result.VaR95*100, result.VaR99*100)
		fmt.Printf("  P(profit):     %.2f%%\n", result.ProbabilityOfProfit*100)
		fmt.Printf("  P(ruin):       %.2f%%\n", result.ProbabilityOfRuin*100)
		for _, level := range []string{"90%", "95%", "99%"} {
			fmt.Printf("  CI %s width:  %.2f\n", level, result.ConfidenceIntervals[level])
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("bankroller %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.LoadWithDefaults(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	applyOverrides(cfg)
	if err := config.Validate(cfg); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, logger.NewLogger(cfg.App.LogLevel, cfg.IsProduction()), nil
}

func applyOverrides(cfg *config.Config) {
	if trialsFlag > 0 {
		cfg.Simulation.Trials = trialsFlag
	}
	if seedFlag != 0 {
		cfg.Simulation.Seed = seedFlag
	}
	if strategyFlag != "" {
		cfg.Strategy.Name = strategyFlag
	}
	if simulatorFlag != "" {
		cfg.Simulation.Simulator = simulatorFlag
	}
}

func parseFloats(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("no values given")
	}
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
