// Package workdir locates the project directory that holds .usermenu state.
package workdir

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	stateDir = ".usermenu"
	rootFile = ".usermenu-root"
)

// ResolveBaseDir finds the project root for start. Walking upward, the first
// directory containing .usermenu wins. A .usermenu-root file redirects to the
// path it contains. With neither present, start is returned unchanged.
func ResolveBaseDir(start string) string {
	dir := start
	for {
		if redirect := readRootFile(dir); redirect != "" {
			return redirect
		}
		if info, err := os.Stat(filepath.Join(dir, stateDir)); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start
		}
		dir = parent
	}
}

func readRootFile(dir string) string {
	content, err := os.ReadFile(filepath.Join(dir, rootFile))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(content))
}
