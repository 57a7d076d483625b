package usermenu

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/usermenu/internal/output"
	"github.com/marcus/usermenu/pkg/usermenu/keymap"
)

// activeContext returns the keymap context for the current state
func (m Model) activeContext() keymap.Context {
	switch {
	case m.showHelp:
		return keymap.ContextHelp
	case m.MenuVisible():
		return keymap.ContextMenu
	default:
		return keymap.ContextClosed
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd, ok := m.keys.Lookup(msg, m.activeContext())
	if !ok {
		return m, nil
	}

	switch cmd {
	case keymap.CmdQuit:
		return m.quit()

	case keymap.CmdToggleHelp:
		m.showHelp = !m.showHelp
		if m.showHelp {
			m.helpText = m.renderHelp()
		}
		return m, nil

	case keymap.CmdCloseHelp:
		m.showHelp = false
		return m, nil

	case keymap.CmdToggleMenu:
		m.ctrl.Toggle()

	case keymap.CmdCloseMenu:
		m.ctrl.MenuClose()

	case keymap.CmdCursorDown:
		m.cursor = (m.cursor + 1) % len(m.items)

	case keymap.CmdCursorUp:
		m.cursor = (m.cursor - 1 + len(m.items)) % len(m.items)

	case keymap.CmdActivate:
		return m.activate(m.cursor)

	case keymap.CmdLogout:
		m.ctrl.Logout()
	}

	return m, m.flush()
}

// handleMouse tracks hover transitions and clicks
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		return m, nil
	}

	region := m.hitTest(msg.X, msg.Y)
	m.setHover(region)

	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		switch region {
		case RegionTrigger:
			m.ctrl.Toggle()
		case RegionMenu:
			if idx, ok := m.itemAt(msg.Y); ok {
				m.cursor = idx
				return m.activate(idx)
			}
		}
	}

	return m, m.flush()
}

// hitTest maps a point to a region. The menu only receives pointer events
// while it is effectively visible.
func (m Model) hitTest(x, y int) Region {
	if m.triggerBounds.Contains(x, y) {
		return RegionTrigger
	}
	if m.MenuVisible() && m.menuBounds.Contains(x, y) {
		return RegionMenu
	}
	return RegionNone
}

// setHover emits leave/enter events when the pointer crosses a boundary
func (m *Model) setHover(region Region) {
	if region == m.hover {
		return
	}
	switch m.hover {
	case RegionTrigger:
		m.ctrl.LeaveTrigger()
	case RegionMenu:
		m.ctrl.LeaveMenu()
	}
	switch region {
	case RegionTrigger:
		m.ctrl.EnterTrigger()
	case RegionMenu:
		m.ctrl.EnterMenu()
	}
	m.hover = region
}

// itemAt returns the menu item on screen row y
func (m Model) itemAt(y int) (int, bool) {
	// One border row sits above the first item.
	idx := y - m.menuBounds.Y - 1
	if idx < 0 || idx >= len(m.items) {
		return 0, false
	}
	return idx, true
}

// activate runs the menu item at idx
func (m Model) activate(idx int) (tea.Model, tea.Cmd) {
	if !m.MenuVisible() || idx < 0 || idx >= len(m.items) {
		return m, m.flush()
	}

	switch m.items[idx].ID {
	case ItemLogout:
		m.ctrl.Logout()
		return m, m.flush()
	case ItemSettings:
		m.ctrl.MenuClose()
		return m, tea.Batch(m.flush(), func() tea.Msg { return SettingsMsg{} })
	}
	return m, m.flush()
}

func (m Model) renderHelp() string {
	md := m.keys.HelpMarkdown(keymap.ContextGlobal, keymap.ContextMenu)
	width := m.Width
	if width <= 0 {
		width = 60
	}
	rendered, err := output.RenderMarkdownStyled(md, width, "notty")
	if err != nil {
		m.log.Debug("render help", "err", err)
		return md
	}
	return rendered
}
