package usermenu

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const placeholderGlyph = "?"

// layout recomputes hit-test bounds. The avatar sits at the top-left and
// the menu directly below it.
func (m *Model) layout() {
	avatar := m.renderAvatar()
	m.triggerBounds = Rect{X: 0, Y: 0, W: lipgloss.Width(avatar), H: lipgloss.Height(avatar)}

	if !m.Permitted() {
		m.menuBounds = Rect{}
		return
	}
	menu := m.renderMenuBox()
	m.menuBounds = Rect{
		X: 0,
		Y: m.triggerBounds.H,
		W: lipgloss.Width(menu),
		H: lipgloss.Height(menu),
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.showHelp {
		return m.helpText + "\n" + helpStyle.Render("esc close help")
	}

	sections := []string{m.renderAvatar()}
	if menu := m.renderMenu(); menu != "" {
		sections = append(sections, menu)
	}
	sections = append(sections, m.renderStatus(), m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderAvatar draws the trigger. Loading and missing users only change
// the glyph.
func (m Model) renderAvatar() string {
	glyph := placeholderGlyph
	switch {
	case m.loading:
		glyph = m.spinner.View()
	case m.user != nil && m.user.Initials() != "":
		glyph = m.user.Initials()
	}

	style := avatarStyle
	if m.hover == RegionTrigger || m.MenuVisible() {
		style = avatarHoverStyle
	}
	return style.Render(glyph)
}

// renderMenu returns the menu subtree. Nothing exists when the menu is not
// permitted; a blank block of the same size keeps the layout stable while
// the menu is hidden.
func (m Model) renderMenu() string {
	if !m.Permitted() {
		return ""
	}
	if !m.MenuVisible() {
		return lipgloss.NewStyle().
			Width(m.menuBounds.W).
			Height(m.menuBounds.H).
			Render("")
	}
	return m.renderMenuBox()
}

func (m Model) renderMenuBox() string {
	lines := make([]string, len(m.items))
	for i, item := range m.items {
		if i == m.cursor {
			lines[i] = menuSelectedStyle.Render("› " + item.Label)
		} else {
			lines[i] = menuItemStyle.Render("  " + item.Label)
		}
	}
	return menuStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderStatus() string {
	if m.StatusMessage == "" {
		return ""
	}
	if m.StatusIsError {
		return errorStyle.Render(m.StatusMessage)
	}
	return successStyle.Render(m.StatusMessage)
}

func (m Model) renderFooter() string {
	parts := []string{"hover or space: menu", "?: help", "q: quit"}
	if m.version != "" {
		parts = append(parts, m.version)
	}
	return helpStyle.Render(strings.Join(parts, " · "))
}
