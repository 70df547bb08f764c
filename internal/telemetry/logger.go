// Package telemetry builds the structured logger used across the
// simulation: a slog.Logger over stdout by default, or over a rotating
// lumberjack file sink when a file path is configured.
package telemetry

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures logger construction.
type Options struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string
	// FilePath, if set, routes logs to a rotating file instead of stdout.
	FilePath string
}

// New builds a logger per opts. An empty FilePath logs to stdout with a
// text handler, matching the CLI's plain-terminal output; a non-empty
// FilePath logs JSON to a lumberjack-rotated file, suited to long
// unattended runs.
func New(opts Options) *slog.Logger {
	level := parseLevel(opts.Level)

	if opts.FilePath == "" {
		h := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		return slog.New(h)
	}

	w := &lumberjack.Logger{
		Filename: opts.FilePath,
		MaxSize:  32, // MB
		MaxAge:   14,
		Compress: true,
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h)
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info", "":
		return slog.LevelInfo
	default:
		fmt.Fprintf(os.Stderr, "telemetry: unrecognized level %q, defaulting to info\n", level)
		return slog.LevelInfo
	}
}
