package config

import (
	"context"
	"testing"
	"time"

	"github.com/marcus/usermenu/internal/models"
)

func TestWatchReportsSavedConfig(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *models.Config, 4)
	ready := make(chan error, 1)
	go func() {
		ready <- Watch(ctx, dir, 10*time.Millisecond, func(cfg *models.Config) {
			changes <- cfg
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	if err := SetAppMode(dir, models.AppModeOSS); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-changes:
		if cfg.AppMode != models.AppModeOSS {
			t.Errorf("AppMode = %q, want oss", cfg.AppMode)
		}
	case err := <-ready:
		t.Fatalf("Watch returned early: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	select {
	case err := <-ready:
		if err != nil {
			t.Errorf("Watch = %v", err)
		}
	case <-time.After(time.Second):
		t.Error("Watch did not stop after cancel")
	}
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *models.Config, 4)
	go Watch(ctx, dir, 10*time.Millisecond, func(cfg *models.Config) { changes <- cfg })
	time.Sleep(100 * time.Millisecond)

	if err := withConfigLock(dir, func() error { return nil }); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-changes:
		t.Errorf("unexpected change: %+v", cfg)
	case <-time.After(200 * time.Millisecond):
	}
}
