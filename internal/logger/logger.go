// Package logger builds the logrus instances used across the simulation
// engine.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds a stdout logger at the given level. Production runs emit
// JSON for log ingestion; everything else gets colored text for a terminal.
// The caller decides what counts as production (see config.IsProduction).
func NewLogger(logLevel string, production bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		log.Warnf("Invalid log level '%s', defaulting to info", logLevel)
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if production {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	return log
}
