package canvas

import "fmt"

// Reason enumerates why Calculate rejected an input. Closed sum, never
// smuggled as a bare string past this boundary.
type Reason string

const (
	// ReasonDegenerate means a stage collapsed a side to less than one pixel.
	ReasonDegenerate Reason = "canvas dimension collapsed below one pixel"
	// ReasonWidthOutOfRange means the final width falls outside [minWidth, maxWidth].
	ReasonWidthOutOfRange Reason = "canvas width out of range"
	// ReasonAspectOutOfRange means the final aspect falls outside the declared
	// band and allowNewAspectDeviation was false.
	ReasonAspectOutOfRange Reason = "canvas aspect ratio out of range"
)

// InvalidError is returned when no legal canvas can be derived from the
// inputs. It carries the achieved aspect ratio and the declared band so
// callers can report a precise diagnostic (spec.md §7).
type InvalidError struct {
	Reason    Reason
	Width     int
	Height    int
	Aspect    float64
	MinAspect *float64
	MaxAspect *float64
}

func (e *InvalidError) Error() string {
	band := "(-inf, +inf)"
	switch {
	case e.MinAspect != nil && e.MaxAspect != nil:
		band = fmt.Sprintf("[%.4f, %.4f]", *e.MinAspect, *e.MaxAspect)
	case e.MinAspect != nil:
		band = fmt.Sprintf("[%.4f, +inf)", *e.MinAspect)
	case e.MaxAspect != nil:
		band = fmt.Sprintf("(-inf, %.4f]", *e.MaxAspect)
	}
	return fmt.Sprintf("canvas invalid: %s (canvas=%dx%d aspect=%.4f band=%s)",
		e.Reason, e.Width, e.Height, e.Aspect, band)
}
