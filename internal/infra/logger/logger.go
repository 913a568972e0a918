// Package logger builds the process-wide slog logger. Everything the
// service emits is JSON on stdout so the warehouse deployment can ship
// it straight to the log collector.
package logger

import (
	"log/slog"
	"os"
)

// New returns the root logger. The dev environment lowers the level to
// debug; every other environment logs info and above.
func New(env string) *slog.Logger {
	level := slog.LevelInfo
	if env == "dev" {
		level = slog.LevelDebug
	}
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(h)
}
