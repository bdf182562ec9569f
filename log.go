package tabletop

import (
	"os"

	"github.com/sirupsen/logrus"
)

// logger receives warnings from the core (dangling transform patches, bad
// grid sizes) and, in debug mode, routing traces. Replace it with SetLogger.
var logger logrus.FieldLogger = newDefaultLogger()

// defaultLogger is the logger owned by this package, or nil once the caller
// has supplied their own with SetLogger.
var defaultLogger *logrus.Logger

func newDefaultLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	if globalDebug {
		l.SetLevel(logrus.DebugLevel)
	}
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	defaultLogger = l
	return l.WithField("component", "tabletop")
}

// SetLogger replaces the package logger. Passing nil restores the default
// stderr logger. The level of a caller-supplied logger is never changed.
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		l = newDefaultLogger()
	} else {
		defaultLogger = nil
	}
	logger = l
}

// Logger returns the package logger.
func Logger() logrus.FieldLogger {
	return logger
}

// globalDebug enables per-event routing traces at debug level. Only valid
// with a single router; the most recent SetDebugMode call wins.
var globalDebug bool

// SetDebugMode enables or disables debug tracing. When enabled the default
// logger is lowered to debug level so traces are visible; a logger installed
// with SetLogger must be set to debug level by its owner.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
	if defaultLogger == nil {
		return
	}
	if enabled {
		defaultLogger.SetLevel(logrus.DebugLevel)
	} else {
		defaultLogger.SetLevel(logrus.InfoLevel)
	}
}
