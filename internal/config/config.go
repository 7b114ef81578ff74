// Package config provides configuration management for the Bankroller
// simulation engine.
package config

// Config represents the complete application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app" validate:"required"`
	Bankroll   BankrollConfig   `mapstructure:"bankroll" validate:"required"`
	Strategy   StrategyConfig   `mapstructure:"strategy" validate:"required"`
	Simulation SimulationConfig `mapstructure:"simulation" validate:"required"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// BankrollConfig represents the bankroll the simulation manages
type BankrollConfig struct {
	InitialFunds    float64 `mapstructure:"initial_funds" validate:"required,gt=0"`
	PercentBettable float64 `mapstructure:"percent_bettable" validate:"required,gt=0,lte=1"`
	MaxDrawDown     float64 `mapstructure:"max_draw_down" validate:"required,gt=0,lte=1"`
}

// StrategyConfig selects a bet-sizing strategy and its parameters. Fields not
// used by the selected strategy are ignored.
type StrategyConfig struct {
	Name            string  `mapstructure:"name" validate:"required,oneof=kelly fractional_kelly drawdown_adjusted_kelly naive fixed_fraction optimal_f cppi dynamic_bankroll merton_share"`
	Payoff          float64 `mapstructure:"payoff" validate:"required,gt=0"`
	Loss            float64 `mapstructure:"loss" validate:"gte=0"`
	TransactionCost float64 `mapstructure:"transaction_cost" validate:"gte=0"`

	// fractional_kelly, fixed_fraction
	Fraction float64 `mapstructure:"fraction" validate:"omitempty,gt=0,lte=1"`
	// drawdown_adjusted_kelly
	MaxAcceptableDrawdown float64 `mapstructure:"max_acceptable_drawdown" validate:"omitempty,gt=0,lt=1"`
	// fixed_fraction
	MinProbability float64 `mapstructure:"min_probability" validate:"gte=0,lte=1"`
	// optimal_f
	WinRate         float64 `mapstructure:"win_rate" validate:"gte=0,lte=1"`
	MaxRiskFraction float64 `mapstructure:"max_risk_fraction" validate:"gte=0,lte=1"`
	// cppi
	FloorFraction float64 `mapstructure:"floor_fraction" validate:"omitempty,gt=0,lt=1"`
	Multiplier    float64 `mapstructure:"multiplier" validate:"omitempty,gt=0"`
	// dynamic_bankroll
	BaseFraction float64 `mapstructure:"base_fraction" validate:"omitempty,gt=0,lte=1"`
	WindowSize   int     `mapstructure:"window_size" validate:"omitempty,gt=0"`
	MinFraction  float64 `mapstructure:"min_fraction" validate:"omitempty,gt=0,lte=1"`
	// max_fraction also caps merton_share
	MaxFraction float64 `mapstructure:"max_fraction" validate:"omitempty,gt=0,lte=1"`
	// merton_share
	RiskAversion float64 `mapstructure:"risk_aversion" validate:"omitempty,gt=0"`
}

// SimulationConfig represents a simulation run
type SimulationConfig struct {
	Simulator   string  `mapstructure:"simulator" validate:"required,oneof=repeated_binary random_binary random_uncertain_binary"`
	Trials      int     `mapstructure:"trials" validate:"required,gt=0"`
	Probability float64 `mapstructure:"probability" validate:"gte=0,lte=1"`
	Stdev       float64 `mapstructure:"stdev" validate:"gte=0"`
	// random_uncertain_binary noise on the actual outcome; 0 uses the default
	UncertaintyStdev float64 `mapstructure:"uncertainty_stdev" validate:"gte=0"`
	Seed        int64   `mapstructure:"seed"`
	OutputPath  string  `mapstructure:"output_path"`
}

// MetricsConfig represents Prometheus metrics exposure
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}

// IsProduction returns true when running in the production environment
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsDevelopment returns true when running in the development environment
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}
