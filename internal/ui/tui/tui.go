// Package tui provides interactive terminal UI components using BubbleTea.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styles contains reusable lipgloss styles for the TUI.
var Styles = struct {
	Title  lipgloss.Style
	Help   lipgloss.Style
	Status lipgloss.Style
	Warn   lipgloss.Style
	Panel  lipgloss.Style
}{
	Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).Padding(0, 1),
	Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	Status: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1),
	Warn:   lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Italic(true),
	Panel:  lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("4")),
}

// Run starts a BubbleTea program with the given model.
func Run(model tea.Model, opts ...tea.ProgramOption) (tea.Model, error) {
	p := tea.NewProgram(model, opts...)
	return p.Run()
}
