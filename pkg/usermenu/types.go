package usermenu

import (
	"time"

	"github.com/marcus/usermenu/internal/gating"
	"github.com/marcus/usermenu/internal/models"
)

// Rect represents a rectangular region for hit-testing
type Rect struct {
	X, Y, W, H int
}

// Contains returns true if the point (x, y) is within the rectangle
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region identifies what the pointer is over
type Region int

const (
	RegionNone Region = iota
	RegionTrigger
	RegionMenu
)

func (r Region) String() string {
	switch r {
	case RegionTrigger:
		return "trigger"
	case RegionMenu:
		return "menu"
	default:
		return "none"
	}
}

// MenuItem is one entry of the account menu
type MenuItem struct {
	ID    string
	Label string
}

const (
	ItemSettings = "settings"
	ItemLogout   = "logout"
)

// DefaultItems is the account menu contents
var DefaultItems = []MenuItem{
	{ID: ItemSettings, Label: "Account settings"},
	{ID: ItemLogout, Label: "Logout"},
}

// Message types

// closeTimerMsg is delivered when a scheduled close elapses
type closeTimerMsg struct {
	ID uint64
}

// logoutDoneMsg reports the logout collaborator's outcome
type logoutDoneMsg struct {
	Err error
}

// ClearStatusMsg clears the status line
type ClearStatusMsg struct{}

// SignalsMsg replaces the gating inputs, e.g. after the config changed
type SignalsMsg struct {
	Signals gating.Signals
}

// UserMsg replaces the displayed identity; nil means no user
type UserMsg struct {
	User *models.User
}

// LoadingMsg toggles the avatar loading indicator
type LoadingMsg struct {
	Loading bool
}

// SettingsMsg is emitted when the settings item is activated
type SettingsMsg struct{}

const statusDuration = 2 * time.Second
