// Package e2e provides testing infrastructure for end-to-end CLI tests.
// It includes test harness for running CLI commands, fixture management,
// and utilities for setting up isolated test environments.
package e2e

import (
	"bytes"
	"context"
	"io"
	"os"
	"testing"

	"github.com/klauern/gfxwrap/internal/cli"
	"github.com/klauern/gfxwrap/internal/util"
)

// programName is prepended to the arguments of every run.
const programName = "gfxwrap"

// Result contains the outcome of running a CLI command.
type Result struct {
	// Stdout contains the captured standard output.
	Stdout string
	// Stderr contains warnings, status lines and logs.
	Stderr string
	// Err is the error returned by the CLI command, if any.
	Err error
	// ExitCode is the inferred exit code (0 for success, 1 for error).
	ExitCode int
}

// Success returns true if the command completed without error.
func (r *Result) Success() bool {
	return r.Err == nil
}

// Harness provides a test harness for running E2E CLI tests.
// It manages environment isolation, temp directories, and output capture.
type Harness struct {
	t       *testing.T
	homeDir string
	env     map[string]string
}

// NewHarness creates a new E2E test harness with an isolated GFXWRAP_HOME,
// so no user config or profiles leak into the run. Colors are off.
func NewHarness(t *testing.T) *Harness {
	t.Helper()

	homeDir := t.TempDir()

	h := &Harness{
		t:       t,
		homeDir: homeDir,
		env:     make(map[string]string),
	}

	h.SetEnv(util.HomeEnv, homeDir)
	h.SetEnv("GFXWRAP_OUTPUT_COLOR", "never")

	return h
}

// SetEnv sets an environment variable for CLI commands run through this harness.
// The environment will be restored after the test completes.
func (h *Harness) SetEnv(key, value string) {
	h.t.Helper()
	h.env[key] = value
	h.t.Setenv(key, value)
}

// HomeDir returns the isolated home directory for this test harness.
func (h *Harness) HomeDir() string {
	return h.homeDir
}

// Run executes a CLI command with the given arguments and empty stdin.
func (h *Harness) Run(args ...string) *Result {
	h.t.Helper()
	return h.RunWithStdin("", args...)
}

// RunWithStdin executes a CLI command with stdin input and captures stdout
// and stderr.
func (h *Harness) RunWithStdin(stdin string, args ...string) *Result {
	h.t.Helper()

	if len(args) == 0 || args[0] != programName {
		args = append([]string{programName}, args...)
	}

	// Set up stdin
	oldStdin := os.Stdin
	stdinR, stdinW, err := os.Pipe()
	if err != nil {
		h.t.Fatalf("failed to create stdin pipe: %v", err)
	}
	go func() {
		defer func() {
			_ = stdinW.Close()
		}()
		_, _ = stdinW.WriteString(stdin)
	}()
	os.Stdin = stdinR

	stdout := h.capture(&os.Stdout)
	stderr := h.capture(&os.Stderr)

	ctx := context.Background()
	cmdErr := cli.Run(ctx, args)

	os.Stdin = oldStdin
	_ = stdinR.Close()

	exitCode := 0
	if cmdErr != nil {
		exitCode = 1
	}

	return &Result{
		Stdout:   stdout(),
		Stderr:   stderr(),
		Err:      cmdErr,
		ExitCode: exitCode,
	}
}

// capture redirects *f into a pipe and returns a function that restores it
// and yields everything written. The pipe is drained concurrently so that
// output larger than the pipe buffer does not block the command.
func (h *Harness) capture(f **os.File) func() string {
	h.t.Helper()

	old := *f
	r, w, err := os.Pipe()
	if err != nil {
		h.t.Fatalf("failed to create pipe: %v", err)
	}
	*f = w

	var buf bytes.Buffer
	var copyErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, copyErr = io.Copy(&buf, r)
	}()

	return func() string {
		if err := w.Close(); err != nil {
			h.t.Fatalf("failed to close pipe writer: %v", err)
		}
		*f = old
		<-done
		_ = r.Close()
		if copyErr != nil {
			h.t.Fatalf("failed to read captured output: %v", copyErr)
		}
		return buf.String()
	}
}
