package e2e

import (
	"os"
	"path/filepath"
	"testing"
)

// Fixture writes input text, fonts and config files under one directory.
type Fixture struct {
	t   *testing.T
	dir string
}

// HomeFixture is rooted at the harness's GFXWRAP_HOME, where config.yaml
// and profiles.toml are read from.
func (h *Harness) HomeFixture() *Fixture {
	return &Fixture{t: h.t, dir: h.homeDir}
}

// TempFixture is rooted at a fresh directory outside GFXWRAP_HOME.
func (h *Harness) TempFixture() *Fixture {
	return &Fixture{t: h.t, dir: h.t.TempDir()}
}

// Path joins rel onto the fixture directory.
func (f *Fixture) Path(rel string) string {
	return filepath.Join(f.dir, rel)
}

// WriteFile creates rel with content, making parent directories, and
// returns its full path.
func (f *Fixture) WriteFile(rel, content string) string {
	f.t.Helper()
	path := f.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		f.t.Fatalf("create dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		f.t.Fatalf("write %s: %v", path, err)
	}
	return path
}
