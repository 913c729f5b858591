// Package display provides an in-memory text display with GFX-style cursor
// and bounding-box semantics. It is the measurement surface the wrapper uses
// in place of real panel hardware.
package display

import (
	"math"
	"strings"
	"unicode"

	"github.com/klauern/gfxwrap/internal/font"
	"github.com/klauern/gfxwrap/internal/wrap"
)

// Placement records a glyph printed at a position.
type Placement struct {
	R    rune
	X, Y int
	// Box is the inked area in panel coordinates. Zero for blank glyphs.
	Box wrap.Rect
}

// Display is a width by height pixel panel drawing text in a single font.
// It is not safe for concurrent use.
type Display struct {
	width, height int
	font          font.Font
	cursorX       int
	cursorY       int
	textWrap      bool
	placed        []Placement
}

var _ wrap.Surface = (*Display)(nil)

// New returns a display with the cursor at the origin and text wrap on, the
// same power-on state as a GFX panel.
func New(width, height int, f font.Font) *Display {
	return &Display{
		width:    width,
		height:   height,
		font:     f,
		textWrap: true,
	}
}

// Width returns the panel width in pixels.
func (d *Display) Width() int { return d.width }

// Height returns the panel height in pixels.
func (d *Display) Height() int { return d.height }

// Font returns the display's font.
func (d *Display) Font() font.Font { return d.font }

// SetCursor moves the text cursor.
func (d *Display) SetCursor(x, y int) {
	d.cursorX, d.cursorY = x, y
}

// Cursor returns the current text cursor.
func (d *Display) Cursor() (int, int) {
	return d.cursorX, d.cursorY
}

// SetTextWrap turns the panel's own character wrapping on or off. It must be
// off when text has been pre-wrapped.
func (d *Display) SetTextWrap(on bool) {
	d.textWrap = on
}

// TextWrap reports whether character wrapping is on.
func (d *Display) TextWrap() bool {
	return d.textWrap
}

// Bounds returns the box s would cover if printed from (x, y), without
// printing it. A newline returns to the left edge; carriage returns are
// ignored. With text wrap on, glyphs that would pass the right edge move to
// the next line first. When nothing is inked the box is empty at (x, y).
func (d *Display) Bounds(s string, x, y int) wrap.Rect {
	r := wrap.Rect{X: x, Y: y}
	minx, miny := math.MaxInt, math.MaxInt
	maxx, maxy := -1, -1
	for _, c := range s {
		g, ok := d.advance(c, &x, &y)
		if !ok || !g.Inked() {
			continue
		}
		minx = min(minx, g.X)
		miny = min(miny, g.Y)
		maxx = max(maxx, g.X+g.W-1)
		maxy = max(maxy, g.Y+g.H-1)
	}
	if maxx >= minx {
		r.X = minx
		r.W = maxx - minx + 1
	}
	if maxy >= miny {
		r.Y = miny
		r.H = maxy - miny + 1
	}
	return r
}

// Print draws s at the cursor and advances it.
func (d *Display) Print(s string) {
	for _, c := range s {
		box, ok := d.advance(c, &d.cursorX, &d.cursorY)
		if !ok {
			continue
		}
		d.placed = append(d.placed, Placement{R: c, X: box.originX, Y: box.originY, Box: inkOnly(box)})
	}
}

// Clear forgets everything printed and homes the cursor.
func (d *Display) Clear() {
	d.placed = nil
	d.cursorX, d.cursorY = 0, 0
}

// Placements returns every glyph printed since the last Clear.
func (d *Display) Placements() []Placement {
	out := make([]Placement, len(d.placed))
	copy(out, d.placed)
	return out
}

// Clipped returns the printed glyphs whose ink falls outside the panel.
func (d *Display) Clipped() []Placement {
	var out []Placement
	for _, p := range d.placed {
		if p.Box.W == 0 {
			continue
		}
		if p.Box.X < 0 || p.Box.Y < 0 || p.Box.X+p.Box.W > d.width || p.Box.Y+p.Box.H > d.height {
			out = append(out, p)
		}
	}
	return out
}

// Raster returns an occupancy map of the panel, one string per row of
// cellH pixels, with '#' where any glyph ink covers a cellW by cellH cell and
// '.' elsewhere. Whitespace is left blank and ink outside the panel is not
// shown.
func (d *Display) Raster(cellW, cellH int) []string {
	if cellW < 1 {
		cellW = 1
	}
	if cellH < 1 {
		cellH = 1
	}
	cols := (d.width + cellW - 1) / cellW
	rows := (d.height + cellH - 1) / cellH
	grid := make([][]byte, rows)
	for i := range grid {
		grid[i] = []byte(strings.Repeat(".", cols))
	}
	for _, p := range d.placed {
		b := p.Box
		if b.W == 0 || unicode.IsSpace(p.R) {
			continue
		}
		for py := max(b.Y, 0); py < min(b.Y+b.H, d.height); py++ {
			for px := max(b.X, 0); px < min(b.X+b.W, d.width); px++ {
				grid[py/cellH][px/cellW] = '#'
			}
		}
	}
	out := make([]string, rows)
	for i, row := range grid {
		out[i] = string(row)
	}
	return out
}

// Text returns the printed runes as lines, one per distinct line origin.
func (d *Display) Text() string {
	var b strings.Builder
	lineY := 0
	first := true
	for _, p := range d.placed {
		if !first && p.Y != lineY {
			b.WriteByte('\n')
		}
		first = false
		lineY = p.Y
		b.WriteRune(p.R)
	}
	return b.String()
}

// glyphBox is a glyph's ink in panel coordinates plus the line origin it was
// placed on.
type glyphBox struct {
	wrap.Rect
	ink              bool
	originX, originY int
}

func (g glyphBox) Inked() bool { return g.ink }

func inkOnly(g glyphBox) wrap.Rect {
	if !g.ink {
		return wrap.Rect{}
	}
	return g.Rect
}

// advance places c at (*x, *y) and moves the position past it. It reports
// false for runes that only move the cursor.
func (d *Display) advance(c rune, x, y *int) (glyphBox, bool) {
	lh := d.font.LineHeight()
	switch c {
	case '\n':
		*x = 0
		*y += lh
		return glyphBox{}, false
	case '\r':
		return glyphBox{}, false
	}
	g := d.font.Glyph(c)
	if d.textWrap && *x+g.XOffset+g.Width > d.width {
		*x = 0
		*y += lh
	}
	box := glyphBox{
		Rect:    wrap.Rect{X: *x + g.XOffset, Y: *y + g.YOffset, W: g.Width, H: g.Height},
		ink:     g.Inked(),
		originX: *x,
		originY: *y,
	}
	*x += g.Advance
	return box, true
}
