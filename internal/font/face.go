package font

import (
	"golang.org/x/image/font"
)

// face adapts an x/image font.Face. Glyph boxes come from the face's ink
// bounds, shifted so that YOffset is measured from the top of the line.
// Lookups are memoized; a face is not safe for concurrent use.
type face struct {
	name   string
	face   font.Face
	ascent int
	height int
	cache  map[rune]Glyph
}

// FromFace wraps f under the given name.
func FromFace(name string, f font.Face) Font {
	m := f.Metrics()
	return &face{
		name:   name,
		face:   f,
		ascent: m.Ascent.Ceil(),
		height: m.Height.Ceil(),
		cache:  make(map[rune]Glyph),
	}
}

func (f *face) Name() string {
	return f.name
}

func (f *face) Glyph(r rune) Glyph {
	if g, ok := f.cache[r]; ok {
		return g
	}
	bounds, adv, ok := f.face.GlyphBounds(r)
	if !ok {
		// Faces draw a replacement for missing runes; measure that instead.
		bounds, adv, _ = f.face.GlyphBounds('\uFFFD')
	}
	g := Glyph{Advance: adv.Round()}
	minX, minY := bounds.Min.X.Floor(), bounds.Min.Y.Floor()
	maxX, maxY := bounds.Max.X.Ceil(), bounds.Max.Y.Ceil()
	if maxX > minX && maxY > minY {
		g.XOffset = minX
		g.YOffset = f.ascent + minY
		g.Width = maxX - minX
		g.Height = maxY - minY
	}
	f.cache[r] = g
	return g
}

func (f *face) LineHeight() int {
	return f.height
}

// Close releases the underlying face.
func (f *face) Close() error {
	return f.face.Close()
}
