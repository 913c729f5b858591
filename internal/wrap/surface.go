package wrap

// Rect is a pixel bounding box: the top-left corner and the extent.
type Rect struct {
	X, Y int
	W, H int
}

// Measurer computes where a string would render when drawn from (x, y).
// Implementations must be deterministic and must not change any state that
// affects later measurements.
type Measurer interface {
	Bounds(s string, x, y int) Rect
}

// Cursor reports the position text rendering starts from.
type Cursor interface {
	Cursor() (x, y int)
}

// Surface is what the wrapper needs from a display.
type Surface interface {
	Measurer
	Cursor
}

// MeasureFunc adapts a plain function to a Measurer.
type MeasureFunc func(s string, x, y int) Rect

// Bounds calls f.
func (f MeasureFunc) Bounds(s string, x, y int) Rect {
	return f(s, x, y)
}

// Fixed is a Cursor that never moves.
type Fixed struct {
	X, Y int
}

// Cursor returns the fixed position.
func (f Fixed) Cursor() (int, int) {
	return f.X, f.Y
}

type composed struct {
	m Measurer
	c Cursor
}

func (s composed) Bounds(str string, x, y int) Rect {
	return s.m.Bounds(str, x, y)
}

func (s composed) Cursor() (int, int) {
	return s.c.Cursor()
}

// Compose joins a Measurer and a Cursor into a Surface.
func Compose(m Measurer, c Cursor) Surface {
	return composed{m: m, c: c}
}
