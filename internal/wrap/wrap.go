// Package wrap reflows text into a fixed-capacity buffer so that no rendered
// line is wider than a pixel limit.
//
// Wrapping is greedy and single pass. Line breaks are only ever placed on
// spaces, and a break is inserted retroactively at the previous word boundary
// once the text measured at the current boundary overflows. Pixel widths come
// from a Surface, which knows both the cursor position and how wide a string
// renders from that position.
package wrap

import (
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"
)

// Sentinel errors returned by the wrapper.
var (
	// ErrTruncated reports that the destination filled up before the source
	// was exhausted. The destination still holds a valid prefix.
	ErrTruncated = errors.New("destination capacity exhausted")
	// ErrInvalidWidth reports a non-positive maximum width.
	ErrInvalidWidth = errors.New("max width must be positive")
	// ErrInvalidCapacity reports a destination with no room for a terminator.
	ErrInvalidCapacity = errors.New("capacity must be positive")
	// ErrNilSurface reports a wrapper without a measurement surface.
	ErrNilSurface = errors.New("surface is nil")
)

// Result describes what a wrap call wrote.
type Result struct {
	// Written is the number of bytes copied into the destination, excluding
	// the terminator.
	Written int
	// Breaks lists the destination indices whose space became a newline,
	// in ascending order.
	Breaks []int
	// Truncated is set when the destination ran out of room.
	Truncated bool
	// Measurements counts the bounds queries made against the surface.
	Measurements int
}

// Option configures a Wrapper.
type Option func(*Wrapper)

// WithLogger sets the logger used for per-measurement debug output.
func WithLogger(l *slog.Logger) Option {
	return func(w *Wrapper) {
		w.logger = l
	}
}

// Wrapper wraps text against a single Surface.
type Wrapper struct {
	surface Surface
	logger  *slog.Logger
}

// New returns a Wrapper that measures text on surface.
func New(surface Surface, opts ...Option) *Wrapper {
	w := &Wrapper{surface: surface}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WrapInto copies src into dst, replacing selected spaces with newlines so
// that every line measured on the surface fits within maxWidth pixels.
//
// The capacity is len(dst). The whole of dst is zeroed first and at most
// len(dst)-1 bytes are written, so dst is always NUL terminated. A NUL byte in
// src ends the source. When dst fills up the partial result is kept and
// ErrTruncated is returned along with the Result.
func (w *Wrapper) WrapInto(dst []byte, src string, maxWidth int) (Result, error) {
	var res Result
	if w == nil || w.surface == nil {
		return res, ErrNilSurface
	}
	if maxWidth <= 0 {
		return res, fmt.Errorf("%w: got %d", ErrInvalidWidth, maxWidth)
	}
	if len(dst) == 0 {
		return res, ErrInvalidCapacity
	}

	clear(dst)
	limit := len(dst) - 1
	x, y := w.surface.Cursor()

	i := 0
	last := -1
	for j := 0; j < len(src); {
		c, n := utf8.DecodeRuneInString(src[j:])
		if c == 0 {
			break
		}
		// Runes are copied whole; a multi-byte rune that does not fit ends
		// the output just like a single byte would.
		if i+n > limit {
			res.Written = i
			res.Truncated = true
			return res, fmt.Errorf("%w: wrote %d of %d bytes", ErrTruncated, i, len(src))
		}
		if c == ' ' {
			if w.overflows(&res, dst[:i], x, y, maxWidth) && last >= 0 {
				dst[last] = '\n'
				res.Breaks = append(res.Breaks, last)
			}
			last = i
		}
		copy(dst[i:], src[j:j+n])
		i += n
		j += n
	}

	// The trailing word never meets another space, so check it here.
	if w.overflows(&res, dst[:i], x, y, maxWidth) && last >= 0 {
		dst[last] = '\n'
		res.Breaks = append(res.Breaks, last)
	}
	res.Written = i
	return res, nil
}

// Wrap allocates a destination of the given capacity and returns the wrapped
// string. On ErrTruncated the returned string is the truncated prefix.
func (w *Wrapper) Wrap(src string, maxWidth, capacity int) (string, Result, error) {
	if capacity <= 0 {
		return "", Result{}, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	dst := make([]byte, capacity)
	res, err := w.WrapInto(dst, src, maxWidth)
	return string(dst[:res.Written]), res, err
}

func (w *Wrapper) overflows(res *Result, text []byte, x, y, maxWidth int) bool {
	r := w.surface.Bounds(string(text), x, y)
	res.Measurements++
	over := r.W+r.X > maxWidth
	if w.logger != nil {
		w.logger.Debug("measured",
			slog.String("text", string(text)),
			slog.Int("x1", r.X),
			slog.Int("y1", r.Y),
			slog.Int("w", r.W),
			slog.Int("h", r.H),
			slog.Int("max_width", maxWidth),
			slog.Bool("overflow", over),
		)
	}
	return over
}

// Wrap is a convenience for New(surface).Wrap that drops the Result.
func Wrap(surface Surface, src string, maxWidth, capacity int) (string, error) {
	s, _, err := New(surface).Wrap(src, maxWidth, capacity)
	return s, err
}

// CString returns the contents of a NUL-terminated buffer.
func CString(buf []byte) string {
	for i, b := range buf {
		if b == 0 {
			return string(buf[:i])
		}
	}
	return string(buf)
}
