package placement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediaconform/internal/canvas"
	"mediaconform/internal/geometry"
)

func TestPlanCropFullFit(t *testing.T) {
	// idealAR == inputAR: no cropping should occur on either axis.
	result := Plan(Params{
		Canvas:    geometry.NewDimensions(800, 500),
		Input:     geometry.NewDimensions(1600, 1000),
		Operation: canvas.Crop,
	})
	assert.Equal(t, geometry.NewRectangle(0, 0, 1600, 1000), result.Src)
	assert.Equal(t, geometry.NewRectangle(0, 0, 800, 500), result.Dst)
}

func TestPlanCropWidthCroppedFocusMonotonic(t *testing.T) {
	// idealAR (1.6) < inputAR (2.0): width is the cropped axis.
	base := Params{
		Canvas:    geometry.NewDimensions(800, 500),
		Input:     geometry.NewDimensions(1000, 500),
		Operation: canvas.Crop,
	}

	leftBiased := base
	leftBiased.HorCropFocus = -50
	resultLeft := Plan(leftBiased)

	centered := base
	resultCenter := Plan(centered)

	rightBiased := base
	rightBiased.HorCropFocus = 50
	resultRight := Plan(rightBiased)

	require.Equal(t, 800, resultLeft.Src.Width)
	require.Equal(t, 800, resultCenter.Src.Width)
	require.Equal(t, 800, resultRight.Src.Width)

	// Increasing the focus monotonically shifts the sampled window right.
	assert.Less(t, resultLeft.Src.X, resultCenter.Src.X)
	assert.Less(t, resultCenter.Src.X, resultRight.Src.X)

	assert.Equal(t, 0, resultLeft.Src.X)
	assert.Equal(t, 100, resultCenter.Src.X)
	assert.Equal(t, 200, resultRight.Src.X)
}

func TestPlanCropHorizontalFlipInvertsFocus(t *testing.T) {
	base := Params{
		Canvas:    geometry.NewDimensions(800, 500),
		Input:     geometry.NewDimensions(1000, 500),
		Operation: canvas.Crop,
	}

	flipped := base
	flipped.HorCropFocus = 50
	flipped.HorFlipped = true

	unflipped := base
	unflipped.HorCropFocus = -50

	assert.Equal(t, Plan(unflipped).Src, Plan(flipped).Src)
}

func TestPlanCropVerticalFlipInvertsFocus(t *testing.T) {
	base := Params{
		Canvas:    geometry.NewDimensions(500, 800),
		Input:     geometry.NewDimensions(500, 1000),
		Operation: canvas.Crop,
	}

	flipped := base
	flipped.VerCropFocus = 50
	flipped.VerFlipped = true

	unflipped := base
	unflipped.VerCropFocus = -50

	assert.Equal(t, Plan(unflipped).Src, Plan(flipped).Src)
}

func TestPlanCropNoCropNeededOnUnaffectedAxis(t *testing.T) {
	// Height is the cropped axis here; width must come through untouched
	// regardless of the (irrelevant) horizontal focus value.
	result := Plan(Params{
		Canvas:       geometry.NewDimensions(500, 800),
		Input:        geometry.NewDimensions(500, 1000),
		Operation:    canvas.Crop,
		HorCropFocus: 50,
	})
	assert.Equal(t, 0, result.Src.X)
	assert.Equal(t, 500, result.Src.Width)
}

func TestPlanExpandCentersAndPreservesAspect(t *testing.T) {
	result := Plan(Params{
		Canvas:    geometry.NewDimensions(1000, 1000),
		Input:     geometry.NewDimensions(400, 200),
		Operation: canvas.Expand,
	})
	assert.Equal(t, geometry.NewRectangle(0, 0, 400, 200), result.Src)
	// scale = min(1000/400, 1000/200) = 2.5 -> dst 1000x500, centered.
	assert.Equal(t, 1000, result.Dst.Width)
	assert.Equal(t, 500, result.Dst.Height)
	assert.Equal(t, 0, result.Dst.X)
	assert.Equal(t, 250, result.Dst.Y)
}

func TestResultForRendererSwapsAxesOnlyWhenRequested(t *testing.T) {
	result := Result{
		Src:    geometry.NewRectangle(1, 2, 300, 400),
		Dst:    geometry.NewRectangle(0, 0, 900, 1600),
		Canvas: geometry.NewDimensions(900, 1600),
	}

	assert.Equal(t, result, result.ForRenderer(false))

	swapped := result.ForRenderer(true)
	assert.Equal(t, geometry.NewRectangle(2, 1, 400, 300), swapped.Src)
	assert.Equal(t, geometry.NewRectangle(0, 0, 1600, 900), swapped.Dst)
	assert.Equal(t, geometry.NewDimensions(1600, 900), swapped.Canvas)
}
