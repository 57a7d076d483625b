package models

import (
	"fmt"
	"strings"
	"time"
)

// AppMode represents the deployment mode the host is running in
type AppMode string

const (
	AppModeOSS    AppMode = "oss"    // open / self-hosted
	AppModeSaaS   AppMode = "saas"   // multi-tenant cloud
	AppModeHosted AppMode = "hosted" // single-tenant managed
)

// AllAppModes lists every known deployment mode
func AllAppModes() []AppMode {
	return []AppMode{AppModeOSS, AppModeSaaS, AppModeHosted}
}

// IsOpen reports whether the mode is the open/self-hosted deployment
func (m AppMode) IsOpen() bool {
	return m == AppModeOSS
}

// String implements pflag.Value
func (m *AppMode) String() string {
	if m == nil {
		return ""
	}
	return string(*m)
}

// Set implements pflag.Value
func (m *AppMode) Set(s string) error {
	parsed, err := ParseAppMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Type implements pflag.Value
func (m *AppMode) Type() string {
	return "mode"
}

// ParseAppMode validates a deployment mode name
func ParseAppMode(s string) (AppMode, error) {
	mode := AppMode(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllAppModes() {
		if mode == known {
			return mode, nil
		}
	}
	return "", fmt.Errorf("unknown app mode %q (want oss, saas or hosted)", s)
}

// User is the optional identity shown by the avatar
type User struct {
	Name      string `json:"name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Initials returns up to two uppercase initials for the avatar glyph
func (u *User) Initials() string {
	if u == nil {
		return ""
	}
	var out []rune
	for _, word := range strings.Fields(u.Name) {
		for _, r := range word {
			out = append(out, r)
			break
		}
		if len(out) == 2 {
			break
		}
	}
	return strings.ToUpper(string(out))
}

// Config represents the project configuration
type Config struct {
	AppMode      AppMode         `json:"app_mode,omitempty"`
	FeatureFlags map[string]bool `json:"feature_flags,omitempty"`
	CloseDelayMS int             `json:"close_delay_ms,omitempty"`
	User         *User           `json:"user,omitempty"`
}

// Session is a local login session
type Session struct {
	ID        string    `json:"id"`
	UserName  string    `json:"user_name,omitempty"`
	StartedAt time.Time `json:"started_at"`
}
