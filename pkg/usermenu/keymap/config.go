// Package keymap provides user-configurable key bindings for the account
// menu, loaded from .usermenu/keymap.json.
package keymap

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// Config represents user key binding configuration.
type Config struct {
	// Bindings maps "context:key" to command ID
	// Example: {"menu:x": "logout", "global:m": "toggle-menu"}
	Bindings map[string]string `json:"bindings"`
}

// ConfigPath returns the path to the keymap config file
func ConfigPath(baseDir string) string {
	return filepath.Join(baseDir, ".usermenu", "keymap.json")
}

// LoadConfig loads key binding overrides from a JSON file.
// Returns an empty config if the file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{Bindings: make(map[string]string)}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if cfg.Bindings == nil {
		cfg.Bindings = make(map[string]string)
	}
	return &cfg, nil
}

// ApplyConfig applies user configuration overrides to the registry.
// Malformed entries are skipped.
func ApplyConfig(r *Registry, cfg *Config) {
	for binding, cmdStr := range cfg.Bindings {
		ctx, key, ok := strings.Cut(binding, ":")
		if !ok || ctx == "" || key == "" {
			continue
		}
		r.SetUserOverride(Context(ctx), key, Command(cmdStr))
	}
}
