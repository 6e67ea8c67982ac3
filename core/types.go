// Package core holds the small value types shared by the renderer packages.
package core

// Rect is an integer pixel rectangle, origin at the bottom-left like a GL
// viewport. A pass restricted to a Rect only writes the pixels inside it.
type Rect struct {
	X, Y, Width, Height int
}

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Intersect clips r to the w x h surface.
func (r Rect) Intersect(w, h int) Rect {
	x0, y0 := max(r.X, 0), max(r.Y, 0)
	x1, y1 := min(r.X+r.Width, w), min(r.Y+r.Height, h)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// FullRect returns the rectangle covering a whole w x h surface.
func FullRect(w, h int) Rect {
	return Rect{Width: w, Height: h}
}

// Viewport is the host's current drawable size in pixels.
type Viewport struct {
	Width, Height int
}

// Valid reports whether both dimensions are positive.
func (v Viewport) Valid() bool {
	return v.Width > 0 && v.Height > 0
}
