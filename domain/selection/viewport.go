package selection

import (
	"image"
	"math"
)

// Size is an on-screen extent. Displayed sizes may be fractional when the
// surface is scaled by the layout.
type Size struct {
	W, H float64
}

// Geometry describes the drawing surface at the moment of a pointer event:
// where it sits in event coordinates, how large it is drawn, and the size of
// its backing pixel buffer. Build a fresh Geometry for every event; layout may
// change between events.
type Geometry struct {
	Origin    image.Point
	Displayed Size
	Intrinsic image.Point
}

// Scale returns the intrinsic/displayed ratio per axis. ok is false when any
// dimension is zero and no mapping is possible.
func (g Geometry) Scale() (sx, sy float64, ok bool) {
	if g.Displayed.W <= 0 || g.Displayed.H <= 0 || g.Intrinsic.X <= 0 || g.Intrinsic.Y <= 0 {
		return 0, 0, false
	}
	return float64(g.Intrinsic.X) / g.Displayed.W, float64(g.Intrinsic.Y) / g.Displayed.H, true
}

// ToPixel maps a pointer position in event coordinates to native pixel
// coordinates: round((client - origin) * intrinsic / displayed).
func ToPixel(client image.Point, g Geometry) (image.Point, bool) {
	sx, sy, ok := g.Scale()
	if !ok {
		return image.Point{}, false
	}
	x := math.Round(float64(client.X-g.Origin.X) * sx)
	y := math.Round(float64(client.Y-g.Origin.Y) * sy)
	return image.Pt(int(x), int(y)), true
}

// ToDisplay is the inverse of ToPixel, without rounding.
func ToDisplay(p image.Point, g Geometry) (x, y float64, ok bool) {
	sx, sy, ok := g.Scale()
	if !ok {
		return 0, 0, false
	}
	return float64(p.X)/sx + float64(g.Origin.X), float64(p.Y)/sy + float64(g.Origin.Y), true
}
