// Package gating decides whether the account menu may exist at all for the
// current user and deployment.
package gating

import (
	"github.com/marcus/usermenu/internal/config"
	"github.com/marcus/usermenu/internal/features"
	"github.com/marcus/usermenu/internal/models"
)

// Signals is a snapshot of the two inputs that decide menu permission.
type Signals struct {
	UserHasAccountFeatures bool           `json:"user_has_account_features"`
	DeploymentMode         models.AppMode `json:"deployment_mode"`
}

// Allowed is the raw permission rule.
func Allowed(userHasAccountFeatures, isOpenDeploymentMode bool) bool {
	return userHasAccountFeatures || isOpenDeploymentMode
}

// Permitted reports whether the menu may be mounted for s.
func Permitted(s Signals) bool {
	return Allowed(s.UserHasAccountFeatures, s.DeploymentMode.IsOpen())
}

// FromConfig builds signals from an already loaded config.
func FromConfig(cfg *models.Config) Signals {
	enabled, _ := features.ResolveWith(cfg, features.AccountFeatures.Name)
	return Signals{
		UserHasAccountFeatures: enabled,
		DeploymentMode:         config.AppModeOf(cfg),
	}
}

// Resolve reads both signals for the project at baseDir.
func Resolve(baseDir string) (Signals, error) {
	cfg, err := config.Load(baseDir)
	if err != nil {
		return Signals{}, err
	}
	return FromConfig(cfg), nil
}
