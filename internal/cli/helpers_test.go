package cli

import (
	"bytes"
	"context"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var update = flag.Bool("update", false, "update golden files")

// runCLI runs the application with colors off, feeding stdin and capturing
// stdout and stderr.
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	inR, inW, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create stdin pipe: %v", err)
	}
	outR, outW, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create stdout pipe: %v", err)
	}
	errR, errW, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create stderr pipe: %v", err)
	}

	go func() {
		_, _ = io.WriteString(inW, stdin)
		_ = inW.Close()
	}()

	var stdout, stderr bytes.Buffer
	done := make(chan struct{}, 2)
	go func() {
		_, _ = io.Copy(&stdout, outR)
		done <- struct{}{}
	}()
	go func() {
		_, _ = io.Copy(&stderr, errR)
		done <- struct{}{}
	}()

	oldIn, oldOut, oldErr := os.Stdin, os.Stdout, os.Stderr
	os.Stdin, os.Stdout, os.Stderr = inR, outW, errW

	runErr := Run(context.Background(), append([]string{"gfxwrap", "--no-color"}, args...))

	os.Stdin, os.Stdout, os.Stderr = oldIn, oldOut, oldErr
	if err := outW.Close(); err != nil {
		t.Fatalf("failed to close stdout pipe writer: %v", err)
	}
	if err := errW.Close(); err != nil {
		t.Fatalf("failed to close stderr pipe writer: %v", err)
	}
	<-done
	<-done
	_ = inR.Close()
	_ = outR.Close()
	_ = errR.Close()

	return stdout.String(), stderr.String(), runErr
}

// assertGolden compares got with testdata/<name>.golden, rewriting the file
// when -update is set.
func assertGolden(t *testing.T, name, got string) {
	t.Helper()
	path := filepath.Join("testdata", name+".golden")
	if *update {
		if err := os.WriteFile(path, []byte(got), 0o600); err != nil {
			t.Fatalf("failed to update golden file: %v", err)
		}
		return
	}
	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read golden file: %v", err)
	}
	if diff := cmp.Diff(string(want), got); diff != "" {
		t.Errorf("%s mismatch (-want +got):\n%s", path, diff)
	}
}

// writeFile writes contents to name inside a temp dir and returns the path.
func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}
