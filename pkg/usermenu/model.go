// Package usermenu is a bubbletea component: an avatar button that reveals
// an account-actions menu on hover or click and hides it after a grace
// period.
package usermenu

import (
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/usermenu/internal/gating"
	"github.com/marcus/usermenu/internal/models"
	"github.com/marcus/usermenu/internal/visibility"
	"github.com/marcus/usermenu/pkg/usermenu/keymap"
)

// Options configures a Model.
type Options struct {
	Signals    gating.Signals
	User       *models.User
	Loading    bool
	CloseDelay time.Duration

	// Logout terminates the session. It runs off the event loop; its error
	// only affects the status line.
	Logout func() error

	// LogoutAck shows "Logged out" while the menu waits to collapse.
	LogoutAck bool

	Keymap  *keymap.Registry
	Logger  *slog.Logger
	Version string
}

// effects collects side effects requested by the controller during one
// Update so they can be returned as commands.
type effects struct {
	logout bool
}

// Model is the account menu component.
type Model struct {
	Width  int
	Height int

	signals gating.Signals
	user    *models.User
	loading bool
	spinner spinner.Model

	sched   *visibility.Deferred
	ctrl    *visibility.Controller
	effects *effects
	tick    func(d time.Duration, id uint64) tea.Cmd

	hover    Region
	cursor   int
	items    []MenuItem
	showHelp bool
	helpText string

	StatusMessage string
	StatusIsError bool

	keys      *keymap.Registry
	logout    func() error
	logoutAck bool
	version   string
	log       *slog.Logger

	triggerBounds Rect
	menuBounds    Rect
}

// NewModel creates the component in the Closed state.
func NewModel(opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	keys := opts.Keymap
	if keys == nil {
		keys = keymap.NewRegistry()
		keymap.RegisterDefaults(keys)
	}

	sched := visibility.NewDeferred()
	fx := &effects{}
	ctrl := visibility.New(sched,
		visibility.WithCloseDelay(opts.CloseDelay),
		visibility.WithLogout(func() { fx.logout = true }),
		visibility.WithLogger(log),
	)

	m := Model{
		signals:   opts.Signals,
		user:      opts.User,
		loading:   opts.Loading,
		spinner:   spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(helpStyle)),
		sched:     sched,
		ctrl:      ctrl,
		effects:   fx,
		tick:      tickClose,
		items:     DefaultItems,
		keys:      keys,
		logout:    opts.Logout,
		logoutAck: opts.LogoutAck,
		version:   opts.Version,
		log:       log,
	}
	m.layout()
	return m
}

func tickClose(d time.Duration, id uint64) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return closeTimerMsg{ID: id}
	})
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.loading {
		return m.spinner.Tick
	}
	return nil
}

// Permitted reports whether the menu may exist for the current signals.
func (m Model) Permitted() bool {
	return gating.Permitted(m.signals)
}

// MenuVisible reports the effective visibility of the menu.
func (m Model) MenuVisible() bool {
	return m.ctrl.EffectiveVisible(m.Permitted())
}

// State reports the controller state.
func (m Model) State() visibility.State {
	return m.ctrl.State()
}

// Hover reports the region currently under the pointer.
func (m Model) Hover() Region {
	return m.hover
}

// Cursor returns the index of the highlighted menu item.
func (m Model) Cursor() int {
	return m.cursor
}

// Dispose releases the pending close timer. The program calls it on quit;
// embedders call it when they drop the component.
func (m Model) Dispose() {
	m.ctrl.Dispose()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case closeTimerMsg:
		m.sched.Fire(msg.ID)
		return m, m.flush()

	case logoutDoneMsg:
		if msg.Err != nil {
			m.log.Warn("logout failed", "err", msg.Err)
			m.StatusMessage = "Logout failed: " + msg.Err.Error()
			m.StatusIsError = true
		} else if m.logoutAck {
			m.StatusMessage = "Logged out"
			m.StatusIsError = false
		} else {
			return m, nil
		}
		return m, tea.Tick(statusDuration, func(time.Time) tea.Msg { return ClearStatusMsg{} })

	case ClearStatusMsg:
		m.StatusMessage = ""
		m.StatusIsError = false
		return m, nil

	case SignalsMsg:
		m.signals = msg.Signals
		m.layout()
		return m, nil

	case UserMsg:
		m.user = msg.User
		m.layout()
		return m, nil

	case LoadingMsg:
		wasLoading := m.loading
		m.loading = msg.Loading
		m.layout()
		if m.loading && !wasLoading {
			return m, m.spinner.Tick
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// flush turns scheduled closes and requested side effects into commands.
func (m Model) flush() tea.Cmd {
	var cmds []tea.Cmd
	for _, p := range m.sched.Drain() {
		cmds = append(cmds, m.tick(p.Delay, p.ID))
	}
	if m.effects.logout {
		m.effects.logout = false
		logout := m.logout
		cmds = append(cmds, func() tea.Msg {
			if logout == nil {
				return logoutDoneMsg{}
			}
			return logoutDoneMsg{Err: logout()}
		})
	}
	return tea.Batch(cmds...)
}

// quit disposes the controller before stopping the program.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.ctrl.Dispose()
	return m, tea.Quit
}
