package e2e

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// AssertSuccess stops the test if the command failed.
func AssertSuccess(t *testing.T, r *Result) {
	t.Helper()
	if !r.Success() {
		t.Fatalf("gfxwrap failed: %v\nstdout: %s\nstderr: %s", r.Err, r.Stdout, r.Stderr)
	}
}

// AssertError stops the test if the command succeeded.
func AssertError(t *testing.T, r *Result) {
	t.Helper()
	if r.Success() {
		t.Fatalf("gfxwrap succeeded, want an error\nstdout: %s", r.Stdout)
	}
}

// AssertExitCode checks the exit status main would report.
func AssertExitCode(t *testing.T, r *Result, want int) {
	t.Helper()
	if r.ExitCode != want {
		t.Errorf("exit code = %d, want %d (err: %v)", r.ExitCode, want, r.Err)
	}
}

// AssertErrorContains checks the returned error's message.
func AssertErrorContains(t *testing.T, r *Result, substr string) {
	t.Helper()
	AssertError(t, r)
	contains(t, "error", r.Err.Error(), substr, true)
}

// AssertOutputContains checks stdout, where wrapped text and reports go.
func AssertOutputContains(t *testing.T, r *Result, substr string) {
	t.Helper()
	contains(t, "stdout", r.Stdout, substr, true)
}

// AssertOutputNotContains checks that stdout lacks substr.
func AssertOutputNotContains(t *testing.T, r *Result, substr string) {
	t.Helper()
	contains(t, "stdout", r.Stdout, substr, false)
}

// AssertStderrContains checks stderr, where truncation warnings and logs go.
func AssertStderrContains(t *testing.T, r *Result, substr string) {
	t.Helper()
	contains(t, "stderr", r.Stderr, substr, true)
}

// AssertOutputEquals compares the whole of stdout.
func AssertOutputEquals(t *testing.T, r *Result, want string) {
	t.Helper()
	if r.Stdout != want {
		t.Errorf("stdout = %q, want %q", r.Stdout, want)
	}
}

// AssertOutputMatches compares stdout with testdataDir/name.golden,
// rewriting the file instead when -update is set.
func AssertOutputMatches(t *testing.T, r *Result, testdataDir, name string) {
	t.Helper()
	golden := filepath.Join(testdataDir, name+".golden")

	if updateGolden {
		if err := os.MkdirAll(testdataDir, 0o750); err != nil {
			t.Fatalf("create %s: %v", testdataDir, err)
		}
		if err := os.WriteFile(golden, []byte(r.Stdout), 0o600); err != nil {
			t.Fatalf("write %s: %v", golden, err)
		}
		return
	}

	want, err := os.ReadFile(golden) // #nosec G304 - testdata path
	if err != nil {
		t.Fatalf("read %s: %v (run with -update to create it)", golden, err)
	}
	if r.Stdout != string(want) {
		t.Errorf("%s mismatch\n--- got ---\n%s--- want ---\n%s", name, r.Stdout, want)
	}
}

// AssertFileExists checks that a config or backup file was written.
func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected %s to exist: %v", path, err)
	}
}

// AssertFileNotExists checks that a command left path untouched.
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected %s not to exist", path)
	}
}

// AssertFileContains checks a file's content for substr.
func AssertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	contains(t, path, readFile(t, path), substr, true)
}

// AssertFileEquals compares a file's whole content.
func AssertFileEquals(t *testing.T, path, want string) {
	t.Helper()
	if got := readFile(t, path); got != want {
		t.Errorf("%s = %q, want %q", path, got, want)
	}
}

func contains(t *testing.T, what, got, substr string, want bool) {
	t.Helper()
	if strings.Contains(got, substr) == want {
		return
	}
	if want {
		t.Errorf("%s does not contain %q\ngot: %s", what, substr, got)
	} else {
		t.Errorf("%s unexpectedly contains %q\ngot: %s", what, substr, got)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) // #nosec G304 - test-provided path
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

var updateGolden bool

// SetUpdateGolden turns golden rewriting on; call it from TestMain.
func SetUpdateGolden(update bool) {
	updateGolden = update
}
