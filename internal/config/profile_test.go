package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediaconform/internal/canvas"
)

func ptr(f float64) *float64 { return &f }
func iptr(i int) *int        { return &i }

func TestNewProfileAppliesFeedDefaultBand(t *testing.T) {
	p, err := NewProfile(ProfileInput{Feed: canvas.General, Operation: canvas.Crop})
	require.NoError(t, err)
	assert.Equal(t, canvas.GeneralMinAspect, *p.MinAspect)
	assert.Equal(t, canvas.GeneralMaxAspect, *p.MaxAspect)
	assert.Equal(t, 0, p.HorCropFocus)
	assert.Equal(t, -50, p.VerCropFocus)
}

func TestNewProfileStoryTightBandWhenRequested(t *testing.T) {
	p, err := NewProfile(ProfileInput{Feed: canvas.Story, Operation: canvas.Crop, UseBestStoryRatio: true})
	require.NoError(t, err)
	assert.Equal(t, canvas.StoryTightMinAspect, *p.MinAspect)
	assert.Equal(t, canvas.StoryTightMaxAspect, *p.MaxAspect)
}

func TestNewProfileRejectsUnknownOperation(t *testing.T) {
	_, err := NewProfile(ProfileInput{Feed: canvas.General, Operation: canvas.Operation(99)})
	require.Error(t, err)
	var invalid *InvalidError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, ReasonUnknownOperation, invalid.Reason)
}

func TestNewProfileRejectsCropFocusOutOfRange(t *testing.T) {
	_, err := NewProfile(ProfileInput{Feed: canvas.General, Operation: canvas.Crop, HorCropFocus: iptr(51)})
	require.Error(t, err)
	var invalid *InvalidError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, ReasonCropFocusRange, invalid.Reason)
}

func TestNewProfileRejectsInvertedBand(t *testing.T) {
	_, err := NewProfile(ProfileInput{Feed: canvas.General, Operation: canvas.Crop, MinAspect: ptr(1.5), MaxAspect: ptr(1.0)})
	require.Error(t, err)
	var invalid *InvalidError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, ReasonAspectInverted, invalid.Reason)
}

func TestNewProfileRejectsBandOutsideFeed(t *testing.T) {
	_, err := NewProfile(ProfileInput{Feed: canvas.General, Operation: canvas.Crop, MinAspect: ptr(0.1), MaxAspect: ptr(1.0)})
	require.Error(t, err)
	var invalid *InvalidError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, ReasonAspectOutOfBand, invalid.Reason)
}
