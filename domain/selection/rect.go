package selection

import (
	"fmt"
	"image"
)

// Rect is an axis-aligned selection in native image pixel space.
// A valid Rect has W, H >= 1 and a non-negative origin.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Valid reports whether r satisfies the selection invariants.
func (r Rect) Valid() bool {
	return r.W >= 1 && r.H >= 1 && r.X >= 0 && r.Y >= 0
}

// Bounds converts r to an image.Rectangle (Max exclusive).
func (r Rect) Bounds() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

func (r Rect) String() string {
	return fmt.Sprintf("%d,%d %d×%d", r.X, r.Y, r.W, r.H)
}

// Span returns the normalized rectangle spanned by an anchor and the current
// pointer position. Degenerate spans grow to 1 px on the collapsed axis.
func Span(anchor, cur image.Point) Rect {
	return Rect{
		X: min(anchor.X, cur.X),
		Y: min(anchor.Y, cur.Y),
		W: max(1, abs(cur.X-anchor.X)),
		H: max(1, abs(cur.Y-anchor.Y)),
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
