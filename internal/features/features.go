package features

import (
	"os"
	"sort"
	"strings"
	"unicode"

	"github.com/marcus/usermenu/internal/config"
	"github.com/marcus/usermenu/internal/models"
)

const envPrefix = "USERMENU_"

// Feature describes a named feature flag.
type Feature struct {
	Name        string
	Default     bool
	Description string
}

// Source names where a resolved feature value came from.
type Source string

const (
	SourceEnv     Source = "env"
	SourceConfig  Source = "config"
	SourceDefault Source = "default"
)

var (
	// AccountFeatures decides whether this class of user sees account
	// features such as the account menu.
	AccountFeatures = Feature{
		Name:        "account_features",
		Default:     false,
		Description: "Show account features (settings, logout) to this user",
	}

	// LogoutAck gates the brief acknowledgement shown after logout.
	LogoutAck = Feature{
		Name:        "logout_ack",
		Default:     true,
		Description: "Show a logout acknowledgement before the menu collapses",
	}
)

var allFeatures = []Feature{
	AccountFeatures,
	LogoutAck,
}

var defaultValues = buildDefaultMap()

func buildDefaultMap() map[string]bool {
	values := make(map[string]bool, len(allFeatures))
	for _, feature := range allFeatures {
		values[feature.Name] = feature.Default
	}
	return values
}

// ListAll returns all known features sorted by name.
func ListAll() []Feature {
	items := make([]Feature, len(allFeatures))
	copy(items, allFeatures)
	sort.Slice(items, func(i, j int) bool {
		return items[i].Name < items[j].Name
	})
	return items
}

// IsKnownFeature returns true when the feature exists in the registry.
func IsKnownFeature(name string) bool {
	_, ok := defaultValues[normalizeName(name)]
	return ok
}

// IsEnabled resolves a feature using env overrides, then project config, then defaults.
func IsEnabled(baseDir, name string) bool {
	enabled, _ := Resolve(baseDir, name)
	return enabled
}

// Resolve returns the resolved feature state and where it came from.
func Resolve(baseDir, name string) (bool, Source) {
	var cfg *models.Config
	if baseDir != "" {
		if loaded, err := config.Load(baseDir); err == nil {
			cfg = loaded
		}
	}
	return ResolveWith(cfg, name)
}

// ResolveWith resolves a feature against an already loaded config.
// A nil config skips the config layer.
func ResolveWith(cfg *models.Config, name string) (bool, Source) {
	canonical := normalizeName(name)

	if enabled, ok := resolveEnvOverride(canonical); ok {
		return enabled, SourceEnv
	}

	if cfg != nil && cfg.FeatureFlags != nil {
		if enabled, ok := cfg.FeatureFlags[canonical]; ok {
			return enabled, SourceConfig
		}
	}

	return getDefault(canonical), SourceDefault
}

// Resolution is one row of a full feature report.
type Resolution struct {
	Feature  Feature
	Enabled  bool
	Source   Source
	Surfaces []string
}

// ResolveAll resolves every known feature against cfg.
func ResolveAll(cfg *models.Config) []Resolution {
	features := ListAll()
	out := make([]Resolution, 0, len(features))
	for _, f := range features {
		enabled, src := ResolveWith(cfg, f.Name)
		out = append(out, Resolution{
			Feature:  f,
			Enabled:  enabled,
			Source:   src,
			Surfaces: SurfacesFor(f.Name),
		})
	}
	return out
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func getDefault(name string) bool {
	if enabled, ok := defaultValues[name]; ok {
		return enabled
	}
	return false
}

func resolveEnvOverride(name string) (bool, bool) {
	// Kill-switch for everything that is off by default.
	if disabled, ok := parseBoolEnv(envPrefix + "DISABLE_EXPERIMENTAL"); ok && disabled && !getDefault(name) {
		return false, true
	}

	if enabled, ok := parseBoolEnv(envPrefix + "FEATURE_" + normalizeForEnvKey(name)); ok {
		return enabled, true
	}

	if containsFeatureName(os.Getenv(envPrefix+"DISABLE_FEATURES"), name) {
		return false, true
	}
	if containsFeatureName(os.Getenv(envPrefix+"ENABLE_FEATURES"), name) {
		return true, true
	}

	return false, false
}

func normalizeForEnvKey(name string) string {
	upper := strings.ToUpper(strings.TrimSpace(name))
	var b strings.Builder
	for _, r := range upper {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('_')
	}
	return b.String()
}

func parseBoolEnv(key string) (bool, bool) {
	value := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	switch value {
	case "1", "true", "on", "yes":
		return true, true
	case "0", "false", "off", "no":
		return false, true
	default:
		return false, false
	}
}

func containsFeatureName(raw, target string) bool {
	if raw == "" {
		return false
	}
	target = normalizeName(target)
	for _, item := range strings.Split(raw, ",") {
		if normalizeName(item) == target {
			return true
		}
	}
	return false
}
