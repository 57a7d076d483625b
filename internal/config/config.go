package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/marcus/usermenu/internal/models"
)

const configFile = ".usermenu/config.json"
const lockFile = ".usermenu/config.json.lock"

// DefaultCloseDelay mirrors the controller's grace period
const DefaultCloseDelay = 350 * time.Millisecond

// Load reads the config from disk
func Load(baseDir string) (*models.Config, error) {
	configPath := filepath.Join(baseDir, configFile)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &models.Config{}, nil
		}
		return nil, err
	}

	var cfg models.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", configFile, err)
	}

	return &cfg, nil
}

// Save writes the config to disk using atomic write (temp file + rename)
func Save(baseDir string, cfg *models.Config) error {
	configPath := filepath.Join(baseDir, configFile)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	// Atomic write: temp file in same dir, then rename
	tmp, err := os.CreateTemp(dir, "config-*.json.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, configPath)
}

// withConfigLock serializes read-modify-write cycles on config.json
func withConfigLock(baseDir string, fn func() error) error {
	lockPath := filepath.Join(baseDir, lockFile)

	if err := os.MkdirAll(filepath.Dir(lockPath), 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := lockFileExclusive(f); err != nil {
		return fmt.Errorf("lock config: %w", err)
	}
	defer unlockFile(f)

	return fn()
}

// update applies fn to the current config under the lock and saves it
func update(baseDir string, fn func(cfg *models.Config) error) error {
	return withConfigLock(baseDir, func() error {
		cfg, err := Load(baseDir)
		if err != nil {
			return err
		}
		if err := fn(cfg); err != nil {
			return err
		}
		return Save(baseDir, cfg)
	})
}

// SetAppMode sets the deployment mode
func SetAppMode(baseDir string, mode models.AppMode) error {
	if _, err := models.ParseAppMode(string(mode)); err != nil {
		return err
	}
	return update(baseDir, func(cfg *models.Config) error {
		cfg.AppMode = mode
		return nil
	})
}

// GetAppMode returns the configured deployment mode, defaulting to saas
func GetAppMode(baseDir string) (models.AppMode, error) {
	cfg, err := Load(baseDir)
	if err != nil {
		return "", err
	}
	return AppModeOf(cfg), nil
}

// AppModeOf returns the config's mode, defaulting to saas when unset
func AppModeOf(cfg *models.Config) models.AppMode {
	if cfg == nil || cfg.AppMode == "" {
		return models.AppModeSaaS
	}
	return cfg.AppMode
}

// SetFeatureFlag stores a project-level feature override
func SetFeatureFlag(baseDir, name string, enabled bool) error {
	return update(baseDir, func(cfg *models.Config) error {
		if cfg.FeatureFlags == nil {
			cfg.FeatureFlags = make(map[string]bool)
		}
		cfg.FeatureFlags[name] = enabled
		return nil
	})
}

// UnsetFeatureFlag removes a project-level feature override
func UnsetFeatureFlag(baseDir, name string) error {
	return update(baseDir, func(cfg *models.Config) error {
		delete(cfg.FeatureFlags, name)
		if len(cfg.FeatureFlags) == 0 {
			cfg.FeatureFlags = nil
		}
		return nil
	})
}

// SetCloseDelay sets the menu close grace period
func SetCloseDelay(baseDir string, d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("close delay must be positive, got %v", d)
	}
	return update(baseDir, func(cfg *models.Config) error {
		cfg.CloseDelayMS = int(d / time.Millisecond)
		return nil
	})
}

// CloseDelay returns the configured grace period or the default
func CloseDelay(cfg *models.Config) time.Duration {
	if cfg == nil || cfg.CloseDelayMS <= 0 {
		return DefaultCloseDelay
	}
	return time.Duration(cfg.CloseDelayMS) * time.Millisecond
}

// SetUser sets the displayed identity; nil clears it
func SetUser(baseDir string, user *models.User) error {
	return update(baseDir, func(cfg *models.Config) error {
		cfg.User = user
		return nil
	})
}
