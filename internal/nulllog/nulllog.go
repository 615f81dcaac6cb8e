// Package nulllog provides a [ledsign.Logger] that discards everything.
package nulllog

import "github.com/basso-labs/ledsign"

// Logger is a [ledsign.Logger] that does not emit logs.
type Logger struct{}

// Debug implements ledsign.Logger.
func (*Logger) Debug(message string) {
	// nothing
}

// Debugf implements ledsign.Logger.
func (*Logger) Debugf(format string, v ...any) {
	// nothing
}

// Info implements ledsign.Logger.
func (*Logger) Info(message string) {
	// nothing
}

// Infof implements ledsign.Logger.
func (*Logger) Infof(format string, v ...any) {
	// nothing
}

// Warn implements ledsign.Logger.
func (*Logger) Warn(message string) {
	// nothing
}

// Warnf implements ledsign.Logger.
func (*Logger) Warnf(format string, v ...any) {
	// nothing
}

var _ ledsign.Logger = &Logger{}
