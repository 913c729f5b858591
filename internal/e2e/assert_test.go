package e2e

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestAssertResultHelpers(t *testing.T) {
	ok := &Result{Stdout: "Temperature\n21C\n", Stderr: "warning: line truncated\n"}
	AssertSuccess(t, ok)
	AssertExitCode(t, ok, 0)
	AssertOutputEquals(t, ok, "Temperature\n21C\n")
	AssertOutputContains(t, ok, "21C")
	AssertOutputNotContains(t, ok, "==>")
	AssertStderrContains(t, ok, "truncated")

	failed := &Result{Err: errors.New(`unknown profile "st7375"`), ExitCode: 1}
	AssertExitCode(t, failed, 1)
	AssertErrorContains(t, failed, "st7375")
}

func TestAssertFileHelpers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("wrap:\n  max_width: 84\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	AssertFileExists(t, path)
	AssertFileContains(t, path, "max_width: 84")
	AssertFileEquals(t, path, "wrap:\n  max_width: 84\n")
	AssertFileNotExists(t, filepath.Join(dir, "profiles.toml"))
}

func TestAssertOutputMatchesUpdates(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "testdata")
	r := &Result{Stdout: "+--+\n|##|\n+--+\n"}

	SetUpdateGolden(true)
	AssertOutputMatches(t, r, dir, "render")
	SetUpdateGolden(false)

	AssertOutputMatches(t, r, dir, "render")
}
