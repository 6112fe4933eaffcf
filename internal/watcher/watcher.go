// Package watcher reloads runtime-tunable settings when the config file
// changes on disk. Only the logging section is applied live; everything else
// requires a restart.
package watcher

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/MetalDetectorRocks/metal-detector/internal/config"
	"github.com/MetalDetectorRocks/metal-detector/internal/logging"
)

// Service watches the config file and applies logging changes through the
// logging Manager.
type Service struct {
	path     string
	logMgr   *logging.Manager
	logger   *slog.Logger
	debounce time.Duration
}

// NewService creates a config file watcher.
func NewService(path string, logMgr *logging.Manager, logger *slog.Logger) *Service {
	return &Service{
		path:     path,
		logMgr:   logMgr,
		logger:   logger.With(slog.String("component", "config-watcher")),
		debounce: 500 * time.Millisecond,
	}
}

// SetDebounce overrides the default debounce interval (for testing).
func (s *Service) SetDebounce(d time.Duration) {
	s.debounce = d
}

// Start blocks until ctx is canceled. The parent directory is watched rather
// than the file itself because editors and config tools typically replace the
// file, which drops a watch on the file's inode.
func (s *Service) Start(ctx context.Context) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		s.logger.Warn("fsnotify unavailable, config reload disabled", "error", err)
		return
	}
	defer w.Close() //nolint:errcheck

	dir := filepath.Dir(s.path)
	if err := w.Add(dir); err != nil {
		s.logger.Warn("watching config directory failed", "path", dir, "error", err)
		return
	}

	s.logger.Debug("config watcher starting", slog.String("path", s.path))

	// Debounce timer coalesces bursts of write events into a single reload.
	// Starts stopped; reset on each relevant event.
	debounceTimer := time.NewTimer(0)
	if !debounceTimer.Stop() {
		<-debounceTimer.C
	}

	base := filepath.Base(s.path)
	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("config watcher stopping")
			return

		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			debounceTimer.Reset(s.debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			s.logger.Warn("config watcher error", "error", err)

		case <-debounceTimer.C:
			s.reload()
		}
	}
}

func (s *Service) reload() {
	cfg, err := config.Load(s.path)
	if err != nil {
		s.logger.Warn("config reload failed", "error", err)
		return
	}

	s.logMgr.Reconfigure(logging.Config{
		Level:         cfg.Logging.Level,
		Format:        cfg.Logging.Format,
		FilePath:      cfg.Logging.FilePath,
		FileMaxSizeMB: cfg.Logging.FileMaxSizeMB,
		FileMaxFiles:  cfg.Logging.FileMaxFiles,
	})
	s.logger.Info("logging settings reloaded",
		slog.String("level", cfg.Logging.Level),
		slog.String("format", cfg.Logging.Format))
}
