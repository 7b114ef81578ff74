// Package logger provides a wrapper around logrus for structured logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// SimulationLogger provides dedicated logging for simulation runs.
type SimulationLogger struct {
	*logrus.Entry
}

// NewSimulationLogger creates a new simulation logger.
func NewSimulationLogger(baseLogger *logrus.Logger) *SimulationLogger {
	return &SimulationLogger{
		Entry: baseLogger.WithField("component", "simulation"),
	}
}

// LogRunStart logs the start of a simulation run.
func (sl *SimulationLogger) LogRunStart(runID, strategyName, simulatorName string, trials int, initialFunds float64, seed int64) {
	sl.WithFields(logrus.Fields{
		"run_id":         runID,
		"strategy_name":  strategyName,
		"simulator_name": simulatorName,
		"trials":         trials,
		"initial_funds":  initialFunds,
		"seed":           seed,
	}).Info("Simulation run started")
}

// LogBetSettled logs a settled bet.
func (sl *SimulationLogger) LogBetSettled(runID string, trial int, stake float64, won bool, balance float64) {
	sl.WithFields(logrus.Fields{
		"run_id":  runID,
		"trial":   trial,
		"stake":   stake,
		"won":     won,
		"balance": balance,
	}).Debug("Bet settled")
}

// LogRuin logs a run ending in ruin.
func (sl *SimulationLogger) LogRuin(runID string, trial int, balance, floor float64, reason string) {
	sl.WithFields(logrus.Fields{
		"run_id":  runID,
		"trial":   trial,
		"balance": balance,
		"floor":   floor,
		"reason":  reason,
	}).Warn("Bankroll ruined, stopping run")
}

// LogRunComplete logs the completion of a simulation run.
func (sl *SimulationLogger) LogRunComplete(runID string, trialsRun int, finalFunds, totalReturn, maxDrawdown, winRate float64, ruined bool) {
	sl.WithFields(logrus.Fields{
		"run_id":       runID,
		"trials_run":   trialsRun,
		"final_funds":  finalFunds,
		"total_return": totalReturn,
		"max_drawdown": maxDrawdown,
		"win_rate":     winRate,
		"ruined":       ruined,
	}).Info("Simulation run completed")
}
