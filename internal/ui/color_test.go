package ui

import (
	"testing"
)

func TestStatusFunctions(t *testing.T) {
	// Disable colors for consistent test output
	DisableColors()
	defer EnableColors()

	tests := []struct {
		name     string
		fn       func(string) string
		input    string
		contains string
	}{
		{"StatusSuccess empty", StatusSuccess, "", SymbolSuccess},
		{"StatusSuccess with msg", StatusSuccess, "fits", SymbolSuccess + " fits"},
		{"StatusError empty", StatusError, "", SymbolError},
		{"StatusError with msg", StatusError, "clipped", SymbolError + " clipped"},
		{"StatusWarning empty", StatusWarning, "", SymbolWarning},
		{"StatusWarning with msg", StatusWarning, "truncated", SymbolWarning + " truncated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fn(tt.input)
			if got != tt.contains {
				t.Errorf("got %q, want %q", got, tt.contains)
			}
		})
	}
}

func TestColorToggle(t *testing.T) {
	// Save initial state
	initial := IsColorEnabled()

	DisableColors()
	if IsColorEnabled() {
		t.Error("expected colors to be disabled")
	}

	EnableColors()
	if !IsColorEnabled() {
		t.Error("expected colors to be enabled")
	}

	// Restore initial state
	if !initial {
		DisableColors()
	}
}

func TestColorFunctions(t *testing.T) {
	// Disable colors for consistent test output
	DisableColors()
	defer EnableColors()

	// When colors are disabled, these should return the plain text
	if got := Success("test"); got != "test" {
		t.Errorf("Success() = %q, want %q", got, "test")
	}
	if got := Error("test"); got != "test" {
		t.Errorf("Error() = %q, want %q", got, "test")
	}
	if got := Warning("test"); got != "test" {
		t.Errorf("Warning() = %q, want %q", got, "test")
	}
	if got := Info("test"); got != "test" {
		t.Errorf("Info() = %q, want %q", got, "test")
	}
	if got := Bold("test"); got != "test" {
		t.Errorf("Bold() = %q, want %q", got, "test")
	}
	if got := Dim("test"); got != "test" {
		t.Errorf("Dim() = %q, want %q", got, "test")
	}
	if got := Header("test"); got != "test" {
		t.Errorf("Header() = %q, want %q", got, "test")
	}
}

func TestMarkBreaks(t *testing.T) {
	DisableColors()
	defer EnableColors()

	tests := map[string]struct {
		s      string
		breaks []int
		want   string
	}{
		"no breaks":        {s: "a\nb", breaks: nil, want: "a\nb"},
		"marks listed":     {s: "ab\ncd", breaks: []int{2}, want: "ab" + SymbolBreak + "\ncd"},
		"skips other nl":   {s: "a\nb\nc", breaks: []int{3}, want: "a\nb" + SymbolBreak + "\nc"},
		"ignores non nl":   {s: "a b", breaks: []int{1}, want: "a b"},
		"index past input": {s: "ab", breaks: []int{9}, want: "ab"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := MarkBreaks(tt.s, tt.breaks); got != tt.want {
				t.Errorf("MarkBreaks() = %q, want %q", got, tt.want)
			}
		})
	}
}
