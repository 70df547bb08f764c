package telemetry

import (
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewWithoutFileLogsToStdout(t *testing.T) {
	logger := New(Options{Level: "debug"})
	if logger == nil {
		t.Fatal("New() returned nil")
	}
	if !logger.Enabled(nil, slog.LevelDebug) {
		t.Error("expected debug level to be enabled")
	}
}

func TestNewWithFileRoutesToLumberjack(t *testing.T) {
	dir := t.TempDir()
	logger := New(Options{Level: "info", FilePath: dir + "/run.log"})
	if logger == nil {
		t.Fatal("New() returned nil")
	}
	if logger.Enabled(nil, slog.LevelDebug) {
		t.Error("expected debug level to be disabled at info level")
	}
}
