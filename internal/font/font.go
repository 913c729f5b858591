// Package font provides the glyph metrics used to measure text on a display.
//
// A Font only answers questions about single glyphs; laying glyphs out into
// lines and bounding boxes is the display's job. Three families are provided:
// the GFX classic cell font, character-cell displays measured with
// go-runewidth, and any golang.org/x/image/font.Face.
package font

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/klauern/gfxwrap/internal/similarity"
)

// Font names accepted by Load.
const (
	NameClassic   = "classic"
	NameCells     = "cells"
	NameBasic     = "basic"
	NameGoRegular = "goregular"
	NameTTF       = "ttf"
)

var (
	// ErrUnknownFont is returned by Load for a name it does not know.
	ErrUnknownFont = errors.New("unknown font")
	// ErrInvalidSize is returned by Load for a non-positive size.
	ErrInvalidSize = errors.New("font size must be positive")
)

// Glyph describes the pixels a single rune covers relative to the cursor.
// XOffset and YOffset locate the inked box from the cursor's top-left; a
// glyph with zero Width or Height draws nothing but still advances.
type Glyph struct {
	XOffset, YOffset int
	Width, Height    int
	Advance          int
}

// Inked reports whether the glyph draws any pixels.
func (g Glyph) Inked() bool {
	return g.Width > 0 && g.Height > 0
}

// Font reports per-rune metrics.
type Font interface {
	Name() string
	Glyph(r rune) Glyph
	LineHeight() int
}

// Spec selects and sizes a font.
type Spec struct {
	// Name is one of the Name* constants.
	Name string `yaml:"name" toml:"name"`
	// Size is the integer text size for classic, or the point size for
	// goregular and ttf.
	Size float64 `yaml:"size" toml:"size"`
	// DPI applies to goregular and ttf. Defaults to 72.
	DPI float64 `yaml:"dpi,omitempty" toml:"dpi"`
	// Path is the font file for ttf.
	Path string `yaml:"path,omitempty" toml:"path"`
	// CellWidth and CellHeight size a single cell for the cells font.
	CellWidth  int `yaml:"cell_width,omitempty" toml:"cell_width"`
	CellHeight int `yaml:"cell_height,omitempty" toml:"cell_height"`
}

// Names returns the font names Load accepts, sorted.
func Names() []string {
	names := []string{NameClassic, NameCells, NameBasic, NameGoRegular, NameTTF}
	sort.Strings(names)
	return names
}

// Load builds the font described by spec.
func Load(spec Spec) (Font, error) {
	switch strings.ToLower(strings.TrimSpace(spec.Name)) {
	case "", NameClassic:
		size := int(spec.Size)
		if spec.Size == 0 {
			size = 1
		}
		if size <= 0 {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSize, spec.Size)
		}
		return Classic(size), nil
	case NameCells:
		w, h := spec.CellWidth, spec.CellHeight
		if w == 0 {
			w = 1
		}
		if h == 0 {
			h = 1
		}
		if w < 0 || h < 0 {
			return nil, fmt.Errorf("%w: cell %dx%d", ErrInvalidSize, w, h)
		}
		return Cells(w, h), nil
	case NameBasic:
		return FromFace(NameBasic, basicfont.Face7x13), nil
	case NameGoRegular:
		return loadOpenType(NameGoRegular, goregular.TTF, spec)
	case NameTTF:
		if spec.Path == "" {
			return nil, errors.New("ttf font requires a path")
		}
		// #nosec G304 - path comes from the user's own configuration
		data, err := os.ReadFile(spec.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read font file: %w", err)
		}
		return loadOpenType(NameTTF, data, spec)
	default:
		return nil, fmt.Errorf("%w: %q%s (want one of %s)", ErrUnknownFont, spec.Name,
			similarity.Hint(spec.Name, Names()), strings.Join(Names(), ", "))
	}
}

func loadOpenType(name string, data []byte, spec Spec) (Font, error) {
	size := spec.Size
	if size == 0 {
		size = 12
	}
	if size < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSize, spec.Size)
	}
	dpi := spec.DPI
	if dpi <= 0 {
		dpi = 72
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create face: %w", err)
	}
	return FromFace(name, face), nil
}

// Advance returns the summed advance of s, ignoring line breaks.
func Advance(f Font, s string) int {
	total := 0
	for _, r := range s {
		if r == '\n' || r == '\r' {
			continue
		}
		total += f.Glyph(r).Advance
	}
	return total
}
