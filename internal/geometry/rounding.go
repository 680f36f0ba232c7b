// Package geometry provides the immutable value types the canvas calculator
// and placement planner operate on.
package geometry

import "math"

// Rounding selects how a rescaled floating dimension is converted back to an
// integer pixel count. The choice is part of the contract: floor biases
// toward a smaller, wider-ratio result, ceil biases toward a larger,
// taller-ratio result.
type Rounding int

const (
	Floor Rounding = iota
	Ceil
	Round
)

// Apply rounds f according to the mode.
func (r Rounding) Apply(f float64) int {
	switch r {
	case Floor:
		return int(math.Floor(f))
	case Ceil:
		return int(math.Ceil(f))
	default:
		return int(math.Round(f))
	}
}
