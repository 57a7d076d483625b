package workdir

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveBaseDirNoState(t *testing.T) {
	dir := t.TempDir()
	if got := ResolveBaseDir(dir); got != dir {
		t.Errorf("ResolveBaseDir = %q, want %q", got, dir)
	}
}

func TestResolveBaseDirWalksUp(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, stateDir), 0755); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	if got := ResolveBaseDir(nested); got != root {
		t.Errorf("ResolveBaseDir = %q, want %q", got, root)
	}
}

func TestResolveBaseDirRedirect(t *testing.T) {
	dir := t.TempDir()
	target := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, rootFile), []byte(target+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if got := ResolveBaseDir(dir); got != target {
		t.Errorf("ResolveBaseDir = %q, want %q", got, target)
	}
}

func TestResolveBaseDirEmptyRedirect(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, rootFile), []byte("  \n"), 0644); err != nil {
		t.Fatal(err)
	}
	if got := ResolveBaseDir(dir); got != dir {
		t.Errorf("ResolveBaseDir = %q, want %q", got, dir)
	}
}
