package ledsign

//
// Shared types used across the sign's packages.
//

// Logger is the logger used throughout this module. Each long-running
// process wires a concrete implementation (cmd/* binaries use
// github.com/apex/log); tests use a no-op implementation.
type Logger interface {
	// Debugf formats and emits a debug message.
	Debugf(format string, v ...any)

	// Debug emits a debug message.
	Debug(message string)

	// Infof formats and emits an informational message.
	Infof(format string, v ...any)

	// Info emits an informational message.
	Info(message string)

	// Warnf formats and emits a warning message.
	Warnf(format string, v ...any)

	// Warn emits a warning message.
	Warn(message string)
}
