package keymap

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestRegisterDefaults(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	if len(r.BindingsForContext(ContextGlobal)) == 0 {
		t.Error("no global bindings registered")
	}
	if len(r.BindingsForContext(ContextMenu)) <= len(r.BindingsForContext(ContextGlobal)) {
		t.Error("menu context should add bindings on top of global ones")
	}
}

func TestLookup(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	tests := []struct {
		name    string
		key     tea.KeyMsg
		context Context
		want    Command
		found   bool
	}{
		{"quit in menu", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, ContextMenu, CmdQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, ContextClosed, CmdQuit, true},
		{"space toggles", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, ContextClosed, CmdToggleMenu, true},
		{"j in menu", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}, ContextMenu, CmdCursorDown, true},
		{"j while closed", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}, ContextClosed, "", false},
		{"esc in menu", tea.KeyMsg{Type: tea.KeyEsc}, ContextMenu, CmdCloseMenu, true},
		{"esc in help", tea.KeyMsg{Type: tea.KeyEsc}, ContextHelp, CmdCloseHelp, true},
		{"? in help wins over global", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}}, ContextHelp, CmdCloseHelp, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := r.Lookup(tt.key, tt.context)
			if found != tt.found || got != tt.want {
				t.Errorf("Lookup = %q, %v; want %q, %v", got, found, tt.want, tt.found)
			}
		})
	}
}

func TestUserOverride(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)
	r.SetUserOverride(ContextMenu, "x", CmdLogout)

	got, ok := r.Lookup(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, ContextMenu)
	if !ok || got != CmdLogout {
		t.Errorf("override lookup = %q, %v", got, ok)
	}
	if _, ok := r.Lookup(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, ContextClosed); ok {
		t.Error("menu override leaked into closed context")
	}
}

func TestLoadAndApplyConfig(t *testing.T) {
	dir := t.TempDir()
	path := ConfigPath(dir)

	cfg, err := LoadConfig(path)
	if err != nil || len(cfg.Bindings) != 0 {
		t.Fatalf("missing file: cfg=%+v err=%v", cfg, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	data := `{"bindings": {"global:m": "toggle-menu", "broken": "quit", ":x": "quit"}}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	r := NewRegistry()
	ApplyConfig(r, cfg)
	if len(r.userOverrides) != 1 {
		t.Errorf("overrides = %v, want only global:m", r.userOverrides)
	}
	got, ok := r.Lookup(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}}, ContextClosed)
	if !ok || got != CmdToggleMenu {
		t.Errorf("lookup = %q, %v", got, ok)
	}
}

func TestHelpMarkdown(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)
	md := r.HelpMarkdown(ContextGlobal, ContextMenu, Context("empty"))

	for _, want := range []string{"## Global", "## Menu", "`space` / `a`", "Logout"} {
		if !strings.Contains(md, want) {
			t.Errorf("help missing %q:\n%s", want, md)
		}
	}
	if strings.Contains(md, "## Empty") {
		t.Error("contexts without bindings should be skipped")
	}
}
