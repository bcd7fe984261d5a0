package shared

import (
	"os"

	"github.com/charmbracelet/log"
)

// SetupLogger configures a console logger
func SetupLogger(debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}

	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})
}

// SetupLoggerWithLevel configures a console logger from a level name,
// falling back to info for unknown names.
func SetupLoggerWithLevel(levelName string) *log.Logger {
	level, err := log.ParseLevel(levelName)
	if err != nil {
		level = log.InfoLevel
	}

	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})
}
