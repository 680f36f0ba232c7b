// Package placement implements the placement planner (C3): given a canvas,
// the input dimensions, the requested operation, and flip flags, it computes
// the source rectangle to sample and the destination rectangle to place it
// onto within the canvas.
package placement

import (
	"math"

	"mediaconform/internal/canvas"
	"mediaconform/internal/geometry"
)

// Tracer mirrors canvas.Tracer for the planner's own stages.
type Tracer func(step string, src, dst geometry.Rectangle)

// Params bundles the planner's inputs. Canvas, Mod2WidthDiff, and
// Mod2HeightDiff are exactly the calculator's Result fields.
type Params struct {
	Canvas         geometry.Dimensions
	Mod2WidthDiff  int
	Mod2HeightDiff int
	Input          geometry.Dimensions
	Operation      canvas.Operation
	HorCropFocus   int
	VerCropFocus   int
	HorFlipped     bool
	VerFlipped     bool
	Trace          Tracer
}

// Result is the planner's output: where to sample from, where to place it,
// and the canvas it is placed onto.
type Result struct {
	Src    geometry.Rectangle
	Dst    geometry.Rectangle
	Canvas geometry.Dimensions
}

// ForRenderer returns Result with src, dst, and canvas axes swapped, for the
// case where the Resizer reports the input pixels are stored rotated. The
// planner itself always operates in the logical (upright) space; this
// adapter is applied only at the boundary to the renderer.
func (r Result) ForRenderer(axesSwapped bool) Result {
	if !axesSwapped {
		return r
	}
	return Result{
		Src:    r.Src.SwapAxes(),
		Dst:    r.Dst.SwapAxes(),
		Canvas: r.Canvas.SwapAxes(),
	}
}

func (p Params) trace(step string, src, dst geometry.Rectangle) {
	if p.Trace != nil {
		p.Trace(step, src, dst)
	}
}

// Plan computes the source and destination rectangles for the given canvas.
// It never fails on its own: all validation happens in the canvas
// calculator. Its outputs are guaranteed to satisfy src ⊆ input and
// dst ⊆ canvas.
func Plan(p Params) Result {
	if p.Operation == canvas.Expand {
		return planExpand(p)
	}
	return planCrop(p)
}

func planCrop(p Params) Result {
	inputW, inputH := p.Input.Width, p.Input.Height
	canvasW, canvasH := p.Canvas.Width, p.Canvas.Height

	// The ideal canvas is what Stage A-C of the calculator would have
	// produced without the Mod2 adjustment (spec.md §4.3 step 1).
	idealW := canvasW - p.Mod2WidthDiff
	idealH := canvasH - p.Mod2HeightDiff
	idealCanvas := geometry.NewDimensions(idealW, idealH)

	sw := float64(idealW) / float64(inputW)
	sh := float64(idealH) / float64(inputH)

	idealAR := idealCanvas.Aspect()
	inputAR := p.Input.Aspect()

	var overallRescale float64
	switch {
	case idealAR == inputAR:
		overallRescale = sw
	case idealAR < inputAR:
		// Width was cropped; height is the unaffected axis.
		overallRescale = sh
	default:
		// Height was cropped; width is the unaffected axis.
		overallRescale = sw
	}

	croppedInput := idealCanvas.WithRescaling(1/overallRescale, geometry.Round)

	// Rescale the Mod2 deltas into input space and fold them back in.
	deltaW := geometry.Round.Apply(float64(p.Mod2WidthDiff) / overallRescale)
	deltaH := geometry.Round.Apply(float64(p.Mod2HeightDiff) / overallRescale)
	croppedInput.Width += deltaW
	croppedInput.Height += deltaH

	// Clamp to the input's own extent.
	if croppedInput.Width > inputW {
		croppedInput.Width = inputW
	}
	if croppedInput.Height > inputH {
		croppedInput.Height = inputH
	}

	widthDiff := croppedInput.Width - inputW   // <= 0
	heightDiff := croppedInput.Height - inputH // <= 0

	horFocus := p.HorCropFocus
	if p.HorFlipped {
		horFocus = -horFocus
	}
	verFocus := p.VerCropFocus
	if p.VerFlipped {
		verFocus = -verFocus
	}

	x1, x2 := cropBounds(widthDiff, inputW, horFocus)
	y1, y2 := cropBounds(heightDiff, inputH, verFocus)

	src := geometry.NewRectangle(x1, y1, x2-x1, y2-y1)
	dst := geometry.NewRectangle(0, 0, canvasW, canvasH)

	p.trace("crop_placement", src, dst)
	return Result{Src: src, Dst: dst, Canvas: p.Canvas}
}

// cropBounds derives the [lo, hi) span to sample from a full-length axis of
// size fullLength, given how many pixels must be removed (diff <= 0) and the
// crop focus in [-50, 50]. diff == 0 yields the full [0, fullLength) span.
func cropBounds(diff, fullLength, focus int) (int, int) {
	removed := -diff
	lo := int(math.Floor(float64(removed) * float64(50+focus) / 100))
	hi := fullLength - (removed - lo)
	return lo, hi
}

func planExpand(p Params) Result {
	inputW, inputH := p.Input.Width, p.Input.Height
	canvasW, canvasH := p.Canvas.Width, p.Canvas.Height

	src := geometry.NewRectangle(0, 0, inputW, inputH)

	scale := math.Min(float64(canvasW)/float64(inputW), float64(canvasH)/float64(inputH))
	scaled := src.WithRescaling(scale, geometry.Ceil)

	dstX := int(math.Floor(float64(canvasW-scaled.Width) / 2))
	dstY := int(math.Floor(float64(canvasH-scaled.Height) / 2))
	dst := geometry.NewRectangle(dstX, dstY, scaled.Width, scaled.Height)

	p.trace("expand_placement", src, dst)
	return Result{Src: src, Dst: dst, Canvas: p.Canvas}
}
