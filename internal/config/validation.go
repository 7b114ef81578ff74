// Package config provides configuration management for the Bankroller
// simulation engine.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	// Register custom validation functions; these never fail for the tags
	// registered here.
	_ = v.RegisterValidation("environment", validateEnvironment)
	_ = v.RegisterValidation("loglevel", validateLogLevel)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	cv := NewValidator()
	return cv.Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	err := cv.validator.Struct(cfg)
	if err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	if err := validateCrossField(cfg); err != nil {
		return err
	}

	return nil
}

// validateEnvironment validates the environment field
func validateEnvironment(fl validator.FieldLevel) bool {
	env := fl.Field().String()
	switch env {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

// validateLogLevel validates the log level field
func validateLogLevel(fl validator.FieldLevel) bool {
	level := fl.Field().String()
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// validateCrossField performs cross-field validations
func validateCrossField(cfg *Config) error {
	s := cfg.Strategy

	if s.Loss+s.TransactionCost <= 0 {
		return fmt.Errorf("strategy loss and transaction_cost cannot both be zero")
	}

	switch s.Name {
	case "fractional_kelly", "fixed_fraction":
		if s.Fraction <= 0 {
			return fmt.Errorf("strategy %q requires fraction", s.Name)
		}
	case "drawdown_adjusted_kelly":
		if s.MaxAcceptableDrawdown <= 0 {
			return fmt.Errorf("strategy %q requires max_acceptable_drawdown", s.Name)
		}
	case "optimal_f":
		if s.WinRate <= 0 {
			return fmt.Errorf("strategy %q requires win_rate", s.Name)
		}
	case "cppi":
		if s.FloorFraction <= 0 || s.Multiplier <= 0 {
			return fmt.Errorf("strategy %q requires floor_fraction and multiplier", s.Name)
		}
	case "dynamic_bankroll":
		if s.BaseFraction <= 0 || s.WindowSize <= 0 || s.MinFraction <= 0 || s.MaxFraction <= 0 {
			return fmt.Errorf("strategy %q requires base_fraction, window_size, min_fraction and max_fraction", s.Name)
		}
		if s.MinFraction > s.MaxFraction {
			return fmt.Errorf("min_fraction cannot exceed max_fraction")
		}
	case "merton_share":
		if s.RiskAversion <= 0 {
			return fmt.Errorf("strategy %q requires risk_aversion", s.Name)
		}
	}

	if cfg.Simulation.Simulator != "repeated_binary" && cfg.Simulation.Stdev <= 0 {
		return fmt.Errorf("simulator %q requires stdev", cfg.Simulation.Simulator)
	}

	if cfg.Metrics.Enabled && cfg.Metrics.Address == "" {
		return fmt.Errorf("metrics address is required when metrics are enabled")
	}

	return nil
}

// formatValidationErrors formats validation errors into a readable string
func formatValidationErrors(validationErrors validator.ValidationErrors) error {
	var errMsg string
	for _, fieldError := range validationErrors {
		field := fieldError.StructField()
		tag := fieldError.Tag()
		value := fieldError.Value()

		switch tag {
		case "required":
			errMsg += fmt.Sprintf("- Field '%s' is required\n", field)
		case "min", "max":
			errMsg += fmt.Sprintf("- Field '%s' validation failed: %s constraint violated\n", field, tag)
		case "gt", "gte", "lt", "lte":
			errMsg += fmt.Sprintf("- Field '%s' validation failed: numeric constraint %s violated\n", field, tag)
		case "environment":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: development, staging, production\n", field)
		case "loglevel":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: debug, info, warn, error\n", field)
		case "oneof":
			errMsg += fmt.Sprintf("- Field '%s' has invalid value '%v'\n", field, value)
		default:
			errMsg += fmt.Sprintf("- Field '%s' failed validation: %s\n", field, tag)
		}
	}
	return fmt.Errorf("configuration validation failed:\n%s", errMsg)
}
