package telemetry

import (
	"log/slog"
	"os"
)

// InitSlog replaces the default logger; verbose turns on debug logging,
// which also makes the resty instrumentation dump full HTTP messages.
func InitSlog(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}
