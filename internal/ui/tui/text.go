package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// fitLines pads or cuts each line to exactly width terminal columns so the
// panel border sits where the display edge is. Cut lines end in an ellipsis.
func fitLines(lines []string, width int) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if runewidth.StringWidth(line) > width {
			line = runewidth.Truncate(line, width, "…")
		}
		out[i] = runewidth.FillRight(line, width)
	}
	return out
}

// padLines appends blank lines until there are at least n.
func padLines(lines []string, n int) []string {
	for len(lines) < n {
		lines = append(lines, "")
	}
	return lines
}

// splitPanel splits text into the rows that fit on the panel and the count
// of rows that fall below it.
func splitPanel(text string, rows int) ([]string, int) {
	lines := strings.Split(text, "\n")
	if rows <= 0 || len(lines) <= rows {
		return lines, 0
	}
	return lines[:rows], len(lines) - rows
}
