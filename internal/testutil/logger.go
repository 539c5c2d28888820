package testutil

import "log/slog"

// NopLogger returns a logger that discards everything, keeping test output
// free of log noise.
func NopLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
