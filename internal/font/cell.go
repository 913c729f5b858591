package font

import (
	"strconv"

	"github.com/mattn/go-runewidth"
)

// classic is the GFX built-in font: 5x7 glyphs in a 6x8 cell, scaled by an
// integer text size. Every rune occupies the full cell.
type classic struct {
	size int
}

// Classic returns the GFX built-in font at the given text size.
func Classic(size int) Font {
	if size < 1 {
		size = 1
	}
	return classic{size: size}
}

func (c classic) Name() string {
	if c.size == 1 {
		return NameClassic
	}
	return NameClassic + "x" + strconv.Itoa(c.size)
}

func (c classic) Glyph(rune) Glyph {
	return Glyph{
		Width:   6 * c.size,
		Height:  8 * c.size,
		Advance: 6 * c.size,
	}
}

func (c classic) LineHeight() int {
	return 8 * c.size
}

// cells measures character-cell displays. Wide runes take two cells and
// zero-width runes take none.
type cells struct {
	width, height int
}

// Cells returns a font whose cells are width by height pixels.
func Cells(width, height int) Font {
	return cells{width: width, height: height}
}

func (c cells) Name() string {
	return NameCells
}

func (c cells) Glyph(r rune) Glyph {
	n := runewidth.RuneWidth(r)
	if n == 0 {
		return Glyph{}
	}
	return Glyph{
		Width:   n * c.width,
		Height:  c.height,
		Advance: n * c.width,
	}
}

func (c cells) LineHeight() int {
	return c.height
}
