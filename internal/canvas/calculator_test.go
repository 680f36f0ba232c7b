package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediaconform/internal/geometry"
)

func ptr(f float64) *float64 { return &f }

// photoMinWidth and photoMaxWidth mirror the photo resizer's width band used throughout
// spec.md §8's concrete scenarios.
const (
	photoMinWidth = 320
	photoMaxWidth = 1080
)

func TestCalculateCanvasScenarios(t *testing.T) {
	testCases := []struct {
		name           string
		input          geometry.Dimensions
		feed           Feed
		operation      Operation
		minAR, maxAR   *float64
		isMod2Required bool
		allowDeviation bool
		expectedCanvas geometry.Dimensions
	}{
		{
			name: "already square, already legal", input: geometry.NewDimensions(1080, 1080),
			feed: General, operation: Crop, minAR: ptr(1.0), maxAR: ptr(1.0),
			expectedCanvas: geometry.NewDimensions(1080, 1080),
		},
		{
			name: "landscape cropped to narrower band", input: geometry.NewDimensions(1080, 608),
			feed: General, operation: Crop, minAR: ptr(1.2), maxAR: ptr(1.22),
			expectedCanvas: geometry.NewDimensions(741, 608),
		},
		{
			name: "narrow width clamped up to minWidth", input: geometry.NewDimensions(100, 125),
			feed: General, operation: Crop, minAR: ptr(0.8), maxAR: ptr(1.91),
			expectedCanvas: geometry.NewDimensions(320, 400),
		},
		{
			name: "square clamped down to maxWidth", input: geometry.NewDimensions(1100, 1100),
			feed: General, operation: Crop, minAR: ptr(1.0), maxAR: ptr(1.0),
			expectedCanvas: geometry.NewDimensions(1080, 1080),
		},
		{
			name: "story already at ideal ratio, mod2 already satisfied", input: geometry.NewDimensions(720, 1280),
			feed: Story, operation: Crop, minAR: ptr(StoryTightMinAspect), maxAR: ptr(StoryTightMaxAspect),
			isMod2Required: true,
			expectedCanvas: geometry.NewDimensions(720, 1280),
		},
		{
			name: "story odd input, mod2 resolves to even canvas near ideal", input: geometry.NewDimensions(1081, 1921),
			feed: Story, operation: Crop, minAR: ptr(StoryTightMinAspect), maxAR: ptr(StoryTightMaxAspect),
			isMod2Required: true, allowDeviation: true,
			expectedCanvas: geometry.NewDimensions(1080, 1920),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := Calculate(Params{
				Feed: tc.feed, Operation: tc.operation, Input: tc.input,
				IsMod2Required: tc.isMod2Required,
				MinWidth:       photoMinWidth, MaxWidth: photoMaxWidth,
				MinAspect: tc.minAR, MaxAspect: tc.maxAR,
				AllowDeviation: tc.allowDeviation,
			})
			require.NoError(t, err)
			assert.Equal(t, tc.expectedCanvas, result.Canvas)
			if tc.isMod2Required {
				assert.Zero(t, result.Canvas.Width%2, "canvas width must be even")
				assert.Zero(t, result.Canvas.Height%2, "canvas height must be even")
			}
		})
	}
}

func TestCalculateCanvasInvariants(t *testing.T) {
	// A broad sweep of (input, band) combinations; every successful result
	// must satisfy the width band, the aspect band (or allowDeviation), and
	// Mod2 parity when required (spec.md §8).
	inputs := []geometry.Dimensions{
		geometry.NewDimensions(4000, 3000), geometry.NewDimensions(50, 4000),
		geometry.NewDimensions(1920, 1080), geometry.NewDimensions(1, 1),
		geometry.NewDimensions(1081, 1921), geometry.NewDimensions(719, 1281),
	}
	minAR, maxAR := ptr(GeneralMinAspect), ptr(GeneralMaxAspect)

	for _, input := range inputs {
		for _, op := range []Operation{Crop, Expand} {
			for _, mod2 := range []bool{false, true} {
				result, err := Calculate(Params{
					Feed: General, Operation: op, Input: input,
					IsMod2Required: mod2,
					MinWidth:       photoMinWidth, MaxWidth: photoMaxWidth,
					MinAspect: minAR, MaxAspect: maxAR,
					AllowDeviation: true,
				})
				require.NoError(t, err, "input=%v op=%v mod2=%v", input, op, mod2)
				assert.GreaterOrEqual(t, result.Canvas.Width, photoMinWidth)
				assert.LessOrEqual(t, result.Canvas.Width, photoMaxWidth)
				if mod2 {
					assert.Zero(t, result.Canvas.Width%2)
					assert.Zero(t, result.Canvas.Height%2)
				}
			}
		}
	}
}

func TestCalculateCanvasSquareTarget(t *testing.T) {
	// When minAR == maxAR == 1, the returned canvas must have W == H,
	// regardless of the input's own aspect ratio.
	inputs := []geometry.Dimensions{
		geometry.NewDimensions(2000, 500), geometry.NewDimensions(500, 2000),
		geometry.NewDimensions(640, 640),
	}
	for _, input := range inputs {
		for _, op := range []Operation{Crop, Expand} {
			result, err := Calculate(Params{
				Feed: General, Operation: op, Input: input,
				MinWidth: photoMinWidth, MaxWidth: photoMaxWidth,
				MinAspect: ptr(1.0), MaxAspect: ptr(1.0),
			})
			require.NoError(t, err)
			assert.Equal(t, result.Canvas.Width, result.Canvas.Height, "input=%v op=%v", input, op)
		}
	}
}

// A single-point band of 1.37 (= 137/100) is met exactly only by widths that
// are a multiple of 137. Input 2000x700 crops to 959x700; Mod2 cuts the width
// to 958, which is not a multiple of 137, so none of the seven Mod2 offset
// candidates is legal and adjustMod2 lands in the bad bucket. That exercises
// the allowDeviation gate deterministically.
func TestCalculateCanvasRejectsOutOfRangeAspectWithoutDeviation(t *testing.T) {
	_, err := Calculate(Params{
		Feed: General, Operation: Crop, Input: geometry.NewDimensions(2000, 700),
		IsMod2Required: true,
		MinWidth:       320, MaxWidth: 1081,
		MinAspect: ptr(1.37), MaxAspect: ptr(1.37),
		AllowDeviation: false,
	})
	require.Error(t, err)
	var invalid *InvalidError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, ReasonAspectOutOfRange, invalid.Reason)
}

func TestCalculateCanvasAllowsDeviationWhenNoLegalMod2Canvas(t *testing.T) {
	result, err := Calculate(Params{
		Feed: General, Operation: Crop, Input: geometry.NewDimensions(2000, 700),
		IsMod2Required: true,
		MinWidth:       320, MaxWidth: 1081,
		MinAspect: ptr(1.37), MaxAspect: ptr(1.37),
		AllowDeviation: true,
	})
	require.NoError(t, err)
	assert.Zero(t, result.Canvas.Width%2)
	assert.Zero(t, result.Canvas.Height%2)
	assert.GreaterOrEqual(t, result.Canvas.Width, 320)
	assert.LessOrEqual(t, result.Canvas.Width, 1081)
}

func TestCalculateCanvasDebugTrace(t *testing.T) {
	var steps []string
	_, err := Calculate(Params{
		Feed: General, Operation: Crop, Input: geometry.NewDimensions(1080, 608),
		MinWidth: photoMinWidth, MaxWidth: photoMaxWidth,
		MinAspect: ptr(1.2), MaxAspect: ptr(1.22),
		Trace: func(step string, width, height int, aspect float64) {
			steps = append(steps, step)
		},
	})
	require.NoError(t, err)
	assert.Contains(t, steps, "input")
	assert.Contains(t, steps, "stage_a_aspect_conformance")
	assert.Contains(t, steps, "stage_c_width_clamp")
}

func TestSelectBestCandidatePrefersPerfectThenStretchThenBad(t *testing.T) {
	candidates := []mod2Candidate{
		{height: 100, bucket: bucketBad, deviation: 0.0},
		{height: 200, bucket: bucketStretch, deviation: 0.5},
		{height: 300, bucket: bucketPerfect, deviation: 0.9},
		{height: 400, bucket: bucketPerfect, deviation: 0.1},
	}
	h, bucket := selectBestCandidate(candidates)
	assert.Equal(t, 400, h)
	assert.Equal(t, bucketPerfect, bucket)
}

func TestSelectBestCandidateTieBreaksOnInputOrder(t *testing.T) {
	candidates := []mod2Candidate{
		{height: 100, bucket: bucketStretch, deviation: 0.5},
		{height: 200, bucket: bucketStretch, deviation: 0.5},
	}
	h, bucket := selectBestCandidate(candidates)
	assert.Equal(t, 100, h)
	assert.Equal(t, bucketStretch, bucket)
}
