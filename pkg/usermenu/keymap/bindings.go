package keymap

// DefaultBindings returns the default key bindings for the account menu.
func DefaultBindings() []Binding {
	return []Binding{
		// Global
		{Key: "q", Command: CmdQuit, Context: ContextGlobal, Description: "Quit"},
		{Key: "ctrl+c", Command: CmdQuit, Context: ContextGlobal, Description: "Quit"},
		{Key: "?", Command: CmdToggleHelp, Context: ContextGlobal, Description: "Toggle help"},
		{Key: "space", Command: CmdToggleMenu, Context: ContextGlobal, Description: "Toggle account menu"},
		{Key: "a", Command: CmdToggleMenu, Context: ContextGlobal, Description: "Toggle account menu"},

		// Menu visible
		{Key: "j", Command: CmdCursorDown, Context: ContextMenu, Description: "Next item"},
		{Key: "down", Command: CmdCursorDown, Context: ContextMenu, Description: "Next item"},
		{Key: "tab", Command: CmdCursorDown, Context: ContextMenu, Description: "Next item"},
		{Key: "k", Command: CmdCursorUp, Context: ContextMenu, Description: "Previous item"},
		{Key: "up", Command: CmdCursorUp, Context: ContextMenu, Description: "Previous item"},
		{Key: "shift+tab", Command: CmdCursorUp, Context: ContextMenu, Description: "Previous item"},
		{Key: "enter", Command: CmdActivate, Context: ContextMenu, Description: "Activate item"},
		{Key: "esc", Command: CmdCloseMenu, Context: ContextMenu, Description: "Close menu"},
		{Key: "L", Command: CmdLogout, Context: ContextMenu, Description: "Logout"},

		// Help overlay
		{Key: "esc", Command: CmdCloseHelp, Context: ContextHelp, Description: "Close help"},
		{Key: "?", Command: CmdCloseHelp, Context: ContextHelp, Description: "Close help"},
	}
}

// RegisterDefaults registers all default bindings with the registry
func RegisterDefaults(r *Registry) {
	r.RegisterBindings(DefaultBindings())
}
