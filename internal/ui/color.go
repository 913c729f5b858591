// Package ui provides terminal output helpers for gfxwrap.
package ui

import (
	"strings"

	"github.com/fatih/color"
)

// Color function types for styled output.
var (
	// Success is used for text that fits (green).
	Success = color.New(color.FgGreen).SprintFunc()
	// Error is used for errors and clipped output (red).
	Error = color.New(color.FgRed).SprintFunc()
	// Warning is used for truncation and other soft failures (yellow).
	Warning = color.New(color.FgYellow).SprintFunc()
	// Info is used for informational messages (cyan).
	Info = color.New(color.FgCyan).SprintFunc()
	// Bold is used for emphasis.
	Bold = color.New(color.Bold).SprintFunc()
	// Dim is used for secondary information such as break markers.
	Dim = color.New(color.Faint).SprintFunc()
	// Header is used for table headers (bold cyan).
	Header = color.New(color.FgCyan, color.Bold).SprintFunc()
)

// Status symbols.
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "⚠"
	SymbolBreak   = "↵"
)

// StatusSuccess returns a green checkmark with optional message.
func StatusSuccess(msg string) string {
	return status(Success, SymbolSuccess, msg)
}

// StatusError returns a red X with optional message.
func StatusError(msg string) string {
	return status(Error, SymbolError, msg)
}

// StatusWarning returns a yellow warning with optional message.
func StatusWarning(msg string) string {
	return status(Warning, SymbolWarning, msg)
}

func status(paint func(...any) string, symbol, msg string) string {
	if msg == "" {
		return paint(symbol)
	}
	return paint(symbol) + " " + msg
}

// MarkBreaks returns s with a dim break marker in front of every line break
// whose byte index is listed in breaks. Other newlines are left alone.
func MarkBreaks(s string, breaks []int) string {
	if len(breaks) == 0 {
		return s
	}
	at := make(map[int]bool, len(breaks))
	for _, i := range breaks {
		at[i] = true
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if at[i] && s[i] == '\n' {
			b.WriteString(Dim(SymbolBreak))
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// DisableColors disables all color output.
func DisableColors() {
	color.NoColor = true
}

// EnableColors enables color output.
func EnableColors() {
	color.NoColor = false
}

// IsColorEnabled returns whether colors are currently enabled.
func IsColorEnabled() bool {
	return !color.NoColor
}
