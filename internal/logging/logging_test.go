package logging

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
)

func TestValidLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		if !ValidLevel(level) {
			t.Errorf("expected %q to be valid", level)
		}
	}
	for _, level := range []string{"", "trace", "INFO", "verbose"} {
		if ValidLevel(level) {
			t.Errorf("expected %q to be invalid", level)
		}
	}
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"info":  slog.LevelInfo,
		"":      slog.LevelInfo,
		"bogus": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestReconfigureChangesLevel(t *testing.T) {
	m, logger := NewManager(Config{Level: "info", Format: "text"})
	defer m.Close()

	ctx := context.Background()
	if logger.Enabled(ctx, slog.LevelDebug) {
		t.Fatal("debug should be disabled at info level")
	}

	m.Reconfigure(Config{Level: "debug", Format: "text"})
	if !logger.Enabled(ctx, slog.LevelDebug) {
		t.Error("debug should be enabled after reconfiguration")
	}

	m.Reconfigure(Config{Level: "error", Format: "text"})
	if logger.Enabled(ctx, slog.LevelWarn) {
		t.Error("warn should be disabled at error level")
	}
}

func TestReconfigureUpdatesSnapshot(t *testing.T) {
	m, _ := NewManager(Config{Level: "info", Format: "json"})
	defer m.Close()

	next := Config{Level: "debug", Format: "text", FileMaxSizeMB: 10}
	m.Reconfigure(next)
	if got := m.Config(); got != next {
		t.Errorf("config snapshot = %+v, want %+v", got, next)
	}
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	m, logger := NewManager(Config{Level: "info", Format: "json", FilePath: path})

	logger.Info("hello")
	if err := m.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	// Closing again is a no-op.
	if err := m.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestDerivedLoggerSurvivesReconfigure(t *testing.T) {
	m, logger := NewManager(Config{Level: "info", Format: "text"})
	defer m.Close()

	derived := logger.With(slog.String("component", "test"))
	m.Reconfigure(Config{Level: "debug", Format: "text"})

	// The derived logger shares the LevelVar, so the new level applies.
	if !derived.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("derived logger did not pick up the new level")
	}
}
