package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config describes the desired logging configuration.
type Config struct {
	Level         string
	Format        string
	FilePath      string
	FileMaxSizeMB int
	FileMaxFiles  int
}

// Manager owns the logger lifecycle and supports runtime reconfiguration:
// level changes apply instantly through a LevelVar, format or output changes
// swap the handler atomically.
type Manager struct {
	levelVar *slog.LevelVar
	handler  *swapHandler
	mu       sync.Mutex
	config   Config
	closer   io.Closer // rotating file writer, if any
}

// NewManager creates a Manager and returns it along with a ready-to-use logger.
func NewManager(cfg Config) (*Manager, *slog.Logger) {
	lvl := &slog.LevelVar{}
	lvl.Set(parseLevel(cfg.Level))

	inner, closer := buildHandler(cfg, lvl)
	handler := newSwapHandler(inner)

	m := &Manager{
		levelVar: lvl,
		handler:  handler,
		config:   cfg,
		closer:   closer,
	}
	return m, slog.New(handler)
}

// Reconfigure applies a new configuration at runtime.
func (m *Manager) Reconfigure(cfg Config) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.levelVar.Set(parseLevel(cfg.Level))

	sameOutput := cfg.Format == m.config.Format &&
		cfg.FilePath == m.config.FilePath &&
		cfg.FileMaxSizeMB == m.config.FileMaxSizeMB &&
		cfg.FileMaxFiles == m.config.FileMaxFiles
	if !sameOutput {
		if m.closer != nil {
			m.closer.Close() //nolint:errcheck
			m.closer = nil
		}
		inner, closer := buildHandler(cfg, m.levelVar)
		m.handler.swap(inner)
		m.closer = closer
	}

	m.config = cfg
}

// Config returns the current configuration snapshot.
func (m *Manager) Config() Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.config
}

// Close releases the log file writer, if any.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closer != nil {
		err := m.closer.Close()
		m.closer = nil
		return err
	}
	return nil
}

// buildHandler creates the slog.Handler for cfg. When a file path is set the
// handler writes to stdout and a size-rotated file, and the returned closer
// owns the file writer.
func buildHandler(cfg Config, leveler slog.Leveler) (slog.Handler, io.Closer) {
	var w io.Writer = os.Stdout
	var closer io.Closer
	if cfg.FilePath != "" {
		maxSize := cfg.FileMaxSizeMB
		if maxSize <= 0 {
			maxSize = 100
		}
		maxFiles := cfg.FileMaxFiles
		if maxFiles <= 0 {
			maxFiles = 3
		}
		lj := &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    maxSize,
			MaxBackups: maxFiles,
		}
		w = io.MultiWriter(os.Stdout, lj)
		closer = lj
	}

	opts := &slog.HandlerOptions{Level: leveler}
	if cfg.Format == "text" {
		return slog.NewTextHandler(w, opts), closer
	}
	return slog.NewJSONHandler(w, opts), closer
}

// parseLevel converts a string to slog.Level, defaulting to Info.
func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ValidLevel returns true if s is a recognized log level.
func ValidLevel(s string) bool {
	switch s {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

// swapHandler is a thread-safe slog.Handler whose inner handler can be
// replaced atomically at runtime.
type swapHandler struct {
	inner atomic.Pointer[slog.Handler]
}

func newSwapHandler(h slog.Handler) *swapHandler {
	s := &swapHandler{}
	s.inner.Store(&h)
	return s
}

func (s *swapHandler) swap(h slog.Handler) {
	s.inner.Store(&h)
}

// Enabled delegates to the inner handler.
func (s *swapHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return (*s.inner.Load()).Enabled(ctx, level)
}

// Handle delegates to the inner handler.
func (s *swapHandler) Handle(ctx context.Context, r slog.Record) error {
	return (*s.inner.Load()).Handle(ctx, r)
}

// WithAttrs returns a new swapHandler whose inner handler has the attrs.
func (s *swapHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newSwapHandler((*s.inner.Load()).WithAttrs(attrs))
}

// WithGroup returns a new swapHandler whose inner handler has the group.
func (s *swapHandler) WithGroup(name string) slog.Handler {
	return newSwapHandler((*s.inner.Load()).WithGroup(name))
}
