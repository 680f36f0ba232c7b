package geometry

// Rectangle is an immutable axis-aligned region, either within an input image
// (a source rectangle) or within an output canvas (a destination rectangle).
type Rectangle struct {
	X      int
	Y      int
	Width  int
	Height int
}

// NewRectangle builds a Rectangle.
func NewRectangle(x, y, width, height int) Rectangle {
	return Rectangle{X: x, Y: y, Width: width, Height: height}
}

// X2 returns the exclusive right edge.
func (r Rectangle) X2() int { return r.X + r.Width }

// Y2 returns the exclusive bottom edge.
func (r Rectangle) Y2() int { return r.Y + r.Height }

// Aspect returns width/height as a float64.
func (r Rectangle) Aspect() float64 {
	return float64(r.Width) / float64(r.Height)
}

// WithRescaling scales width and height by factor, rounded per mode. The
// origin is left untouched; callers that need a moved origin compute it
// themselves, since the calculator and planner only ever rescale extents.
func (r Rectangle) WithRescaling(factor float64, mode Rounding) Rectangle {
	return Rectangle{
		X:      r.X,
		Y:      r.Y,
		Width:  mode.Apply(factor * float64(r.Width)),
		Height: mode.Apply(factor * float64(r.Height)),
	}
}

// SwapAxes returns a new Rectangle with x/width and y/height exchanged. Used
// by the placement planner's axis-swap adapter when the resizer reports the
// input is stored rotated.
func (r Rectangle) SwapAxes() Rectangle {
	return Rectangle{X: r.Y, Y: r.X, Width: r.Height, Height: r.Width}
}

// Dimensions returns the rectangle's extent as a Dimensions value.
func (r Rectangle) Dimensions() Dimensions {
	return Dimensions{Width: r.Width, Height: r.Height}
}

// Within reports whether r fits inside bounds: 0 <= r.X, r.X2() <= bounds.Width,
// 0 <= r.Y, r.Y2() <= bounds.Height.
func (r Rectangle) Within(bounds Dimensions) bool {
	return r.X >= 0 && r.X2() <= bounds.Width && r.Y >= 0 && r.Y2() <= bounds.Height
}
