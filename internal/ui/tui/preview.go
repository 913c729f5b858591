package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/klauern/gfxwrap/internal/display"
	"github.com/klauern/gfxwrap/internal/wrap"
)

// capacityStep is how far [ and ] move the buffer capacity.
const capacityStep = 8

// PreviewSettings configures a preview session.
type PreviewSettings struct {
	// Name labels the source, usually a file name.
	Name     string
	Source   string
	Display  *display.Display
	CursorX  int
	CursorY  int
	MaxWidth int
	Capacity int
}

// PreviewResult holds the limits the user settled on.
type PreviewResult struct {
	MaxWidth int
	Capacity int
}

type previewKeyMap struct {
	Wider    key.Binding
	Narrower key.Binding
	Grow     key.Binding
	Shrink   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultPreviewKeyMap() previewKeyMap {
	return previewKeyMap{
		Wider: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "wider"),
		),
		Narrower: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "narrower"),
		),
		Grow: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "more capacity"),
		),
		Shrink: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "less capacity"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// PreviewModel is the BubbleTea model that re-wraps text as the limits
// change and shows it framed at the panel's size.
type PreviewModel struct {
	viewport viewport.Model
	keys     previewKeyMap
	settings PreviewSettings
	step     int

	wrapped string
	result  wrap.Result
	err     error
	clipped int

	showHelp bool
	ready    bool
	quitting bool
}

// NewPreviewModel creates a preview and performs the first wrap. The display
// should have its own text wrap turned off.
func NewPreviewModel(s PreviewSettings) PreviewModel {
	m := PreviewModel{
		keys:     defaultPreviewKeyMap(),
		settings: s,
		step:     max(s.Display.Font().Glyph('M').Advance, 1),
	}
	m.rewrap()
	return m
}

func (m *PreviewModel) rewrap() {
	d := m.settings.Display
	d.Clear()
	d.SetCursor(m.settings.CursorX, m.settings.CursorY)
	m.wrapped, m.result, m.err = wrap.New(d).Wrap(m.settings.Source, m.settings.MaxWidth, m.settings.Capacity)
	if errors.Is(m.err, wrap.ErrTruncated) {
		m.err = nil
	}

	d.Print(m.wrapped)
	m.clipped = len(d.Clipped())
	d.Clear()

	if m.ready {
		m.viewport.SetContent(m.panel())
	}
}

// Init implements tea.Model.
func (m PreviewModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		headerHeight := 2 // Title + spacing
		footerHeight := 3 // Status + help
		viewportHeight := max(msg.Height-headerHeight-footerHeight, 5)

		if !m.ready {
			m.viewport = viewport.New(msg.Width, viewportHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = viewportHeight
		}
		m.viewport.SetContent(m.panel())

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.Wider):
			m.settings.MaxWidth += m.step
			m.rewrap()
			return m, nil

		case key.Matches(msg, m.keys.Narrower):
			m.settings.MaxWidth = max(m.settings.MaxWidth-m.step, 1)
			m.rewrap()
			return m, nil

		case key.Matches(msg, m.keys.Grow):
			m.settings.Capacity += capacityStep
			m.rewrap()
			return m, nil

		case key.Matches(msg, m.keys.Shrink):
			m.settings.Capacity = max(m.settings.Capacity-capacityStep, 1)
			m.rewrap()
			return m, nil
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// panelSize returns the panel in terminal cells, one cell per glyph advance
// and per line.
func (m PreviewModel) panelSize() (cols, rows int) {
	d := m.settings.Display
	cols = max(d.Width()/m.step, 1)
	rows = max(d.Height()/max(d.Font().LineHeight(), 1), 1)
	return cols, rows
}

func (m PreviewModel) panel() string {
	cols, rows := m.panelSize()
	lines, below := splitPanel(m.wrapped, rows)
	body := strings.Join(fitLines(padLines(lines, rows), cols), "\n")

	var b strings.Builder
	b.WriteString(Styles.Panel.Render(body))
	if below > 0 {
		b.WriteString("\n")
		b.WriteString(Styles.Warn.Render(fmt.Sprintf("  %d more line(s) below the panel", below)))
	}
	return b.String()
}

func (m PreviewModel) title() string {
	d := m.settings.Display
	caser := cases.Title(language.English)
	return fmt.Sprintf("Preview: %s • %s on %dx%d", m.settings.Name, caser.String(d.Font().Name()), d.Width(), d.Height())
}

func (m PreviewModel) status() string {
	parts := []string{
		fmt.Sprintf("max width %dpx", m.settings.MaxWidth),
		fmt.Sprintf("capacity %d", m.settings.Capacity),
		fmt.Sprintf("%d break(s)", len(m.result.Breaks)),
	}
	if m.result.Truncated {
		parts = append(parts, "truncated")
	}
	if m.clipped > 0 {
		parts = append(parts, fmt.Sprintf("%d glyph(s) clipped", m.clipped))
	}
	if m.err != nil {
		parts = append(parts, m.err.Error())
	}
	return strings.Join(parts, " • ")
}

// View implements tea.Model.
func (m PreviewModel) View() string {
	if m.quitting {
		return ""
	}

	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(Styles.Title.Render(m.title()))
	b.WriteString("\n\n")

	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	b.WriteString(Styles.Status.Render(m.status()))
	b.WriteString("\n")

	if m.showHelp {
		b.WriteString("\n")
		b.WriteString(m.renderFullHelp())
	} else {
		b.WriteString(m.renderShortHelp())
	}

	return b.String()
}

func (m PreviewModel) renderShortHelp() string {
	keys := []string{
		"+/- width",
		"[/] capacity",
		"? help",
		"q quit",
	}
	return Styles.Help.Render(strings.Join(keys, " • "))
}

func (m PreviewModel) renderFullHelp() string {
	help := fmt.Sprintf(`Wrapping:
  +        Widen by one glyph (%dpx)
  -        Narrow by one glyph
  ]        Grow capacity by %d bytes
  [        Shrink capacity by %d bytes

Navigation:
  ↑/k      Scroll up
  ↓/j      Scroll down

General:
  ?        Toggle full help
  q        Quit`, m.step, capacityStep, capacityStep)
	return Styles.Help.Render(help)
}

// Result returns the limits in effect when the preview closed.
func (m PreviewModel) Result() PreviewResult {
	return PreviewResult{MaxWidth: m.settings.MaxWidth, Capacity: m.settings.Capacity}
}

// Wrapped returns the current wrapped text.
func (m PreviewModel) Wrapped() string {
	return m.wrapped
}

// RunPreview runs the interactive preview and returns the final limits.
func RunPreview(s PreviewSettings, opts ...tea.ProgramOption) (PreviewResult, error) {
	mdl := NewPreviewModel(s)
	finalModel, err := Run(mdl, append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...)
	if err != nil {
		return PreviewResult{}, err
	}

	if m, ok := finalModel.(PreviewModel); ok {
		return m.Result(), nil
	}

	return mdl.Result(), nil
}
