package progress

import (
	"bytes"
	"os"
	"testing"
)

func TestNewDisabledForNonTerminal(t *testing.T) {
	tests := map[string]struct {
		writer func(t *testing.T) *os.File
	}{
		"regular file": {
			writer: func(t *testing.T) *os.File {
				f, err := os.CreateTemp(t.TempDir(), "progress-")
				if err != nil {
					t.Fatalf("failed to create temp file: %v", err)
				}
				t.Cleanup(func() { _ = f.Close() })
				return f
			},
		},
		"pipe": {
			writer: func(t *testing.T) *os.File {
				r, w, err := os.Pipe()
				if err != nil {
					t.Fatalf("failed to create pipe: %v", err)
				}
				t.Cleanup(func() {
					_ = r.Close()
					_ = w.Close()
				})
				return w
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			b := New(Options{Max: 3, Description: "Wrapping", Writer: tt.writer(t)})
			if b.Enabled() {
				t.Error("expected bar to be disabled")
			}
		})
	}
}

func TestDisabledBarIsSilent(t *testing.T) {
	var buf bytes.Buffer
	b := New(Options{Max: 2, Description: "Wrapping", Writer: &buf})

	if err := b.Add(1); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	b.Describe("Wrapping b.txt")
	if err := b.Add(1); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := b.Finish(); err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}
