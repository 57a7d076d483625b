package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/marcus/usermenu/internal/models"
)

// DefaultWatchDebounce coalesces the burst of events an atomic save produces.
const DefaultWatchDebounce = 100 * time.Millisecond

// Watch calls onChange with the freshly loaded config whenever config.json
// is written or replaced. It blocks until ctx is done and calls onChange from
// its own goroutine, one call at a time. Load errors are logged and skipped.
func Watch(ctx context.Context, baseDir string, debounce time.Duration, onChange func(*models.Config)) error {
	dir := filepath.Join(baseDir, filepath.Dir(configFile))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer w.Close()

	// The directory is watched rather than the file because Save replaces
	// config.json with a rename.
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	slog.Debug("watching config", "dir", dir)

	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}
	target := filepath.Base(configFile)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(debounce)
			fire = timer.C

		case <-fire:
			fire = nil
			cfg, err := Load(baseDir)
			if err != nil {
				slog.Warn("reload config", "err", err)
				continue
			}
			onChange(cfg)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Warn("config watcher", "err", err)
		}
	}
}
