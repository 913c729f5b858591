package cli

import (
	"encoding/json"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/klauern/gfxwrap/internal/font"
	"github.com/klauern/gfxwrap/internal/util"
)

func TestVersionCommand(t *testing.T) {
	out, _, err := runCLI(t, "", "version")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	want := []string{
		"gfxwrap version " + Version,
		"  commit: " + Commit,
		"  built: " + BuildDate,
		"  go: " + runtime.Version(),
		"  fonts: " + strings.Join(font.Names(), ", "),
		"  config: " + util.ConfigFilePath(),
	}
	if d := cmp.Diff(want, lines); d != "" {
		t.Errorf("version output mismatch (-want +got):\n%s", d)
	}
}

func TestVersionCommandJSON(t *testing.T) {
	custom := filepath.Join(t.TempDir(), "panel.toml")

	out, _, err := runCLI(t, "", "--config", custom, "version", "--json")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var got buildInfo
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	want := buildInfo{
		Version: Version,
		Commit:  Commit,
		Built:   BuildDate,
		Go:      runtime.Version(),
		Fonts:   font.Names(),
		Config:  custom,
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("version JSON mismatch (-want +got):\n%s", d)
	}
}
