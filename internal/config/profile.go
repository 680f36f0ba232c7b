package config

import (
	"fmt"

	"mediaconform/internal/canvas"
)

// Reason enumerates a Profile validation failure (spec.md §6
// "Configuration validation errors"). Raised synchronously at construction;
// no cleanup is needed.
type Reason string

const (
	ReasonCropFocusRange   Reason = "crop focus out of [-50, 50]"
	ReasonAspectOutOfBand  Reason = "declared aspect bound outside the feed band"
	ReasonAspectInverted   Reason = "minAspectRatio greater than maxAspectRatio"
	ReasonBadGroundColor   Reason = "bgColor is not a 3-element [R,G,B] triple"
	ReasonUnknownOperation Reason = "operation is neither CROP nor EXPAND"
)

// InvalidError is returned by NewProfile when a Configuration fails
// validation. It is always a caller bug, never a transient failure.
type InvalidError struct {
	Reason Reason
	Detail string
}

func (e *InvalidError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("config invalid: %s", e.Reason)
	}
	return fmt.Sprintf("config invalid: %s (%s)", e.Reason, e.Detail)
}

// Profile is the validated, defaulted Configuration record described in
// spec.md §3: "Configuration must be a record with defaulted fields,
// validated once at construction, not a free-form bag."
type Profile struct {
	Feed                    canvas.Feed
	Operation               canvas.Operation
	MinAspect               *float64
	MaxAspect               *float64
	HorCropFocus            int
	VerCropFocus            int
	UseBestStoryRatio       bool
	AllowNewAspectDeviation bool
	BGColor                 [3]uint8
}

// ProfileInput is the raw, pre-validation shape a caller builds up; nil
// pointers and zero values mean "use the default".
type ProfileInput struct {
	Feed                    canvas.Feed
	Operation               canvas.Operation
	MinAspect               *float64
	MaxAspect               *float64
	HorCropFocus            *int
	VerCropFocus            *int
	UseBestStoryRatio       bool
	AllowNewAspectDeviation bool
	BGColor                 *[3]uint8
}

// NewProfile validates in and returns a defaulted Profile, or an
// *InvalidError describing the first violation found.
func NewProfile(in ProfileInput) (Profile, error) {
	if in.Operation != canvas.Crop && in.Operation != canvas.Expand {
		return Profile{}, &InvalidError{Reason: ReasonUnknownOperation}
	}

	p := Profile{
		Feed:                    in.Feed,
		Operation:               in.Operation,
		UseBestStoryRatio:       in.UseBestStoryRatio,
		AllowNewAspectDeviation: in.AllowNewAspectDeviation,
		BGColor:                 [3]uint8{0, 0, 0},
	}

	if in.BGColor != nil {
		p.BGColor = *in.BGColor
	}

	p.HorCropFocus = 0
	if in.HorCropFocus != nil {
		p.HorCropFocus = *in.HorCropFocus
	}
	p.VerCropFocus = -50
	if in.VerCropFocus != nil {
		p.VerCropFocus = *in.VerCropFocus
	}
	if p.HorCropFocus < -50 || p.HorCropFocus > 50 {
		return Profile{}, &InvalidError{Reason: ReasonCropFocusRange, Detail: fmt.Sprintf("horCropFocus=%d", p.HorCropFocus)}
	}
	if p.VerCropFocus < -50 || p.VerCropFocus > 50 {
		return Profile{}, &InvalidError{Reason: ReasonCropFocusRange, Detail: fmt.Sprintf("verCropFocus=%d", p.VerCropFocus)}
	}

	feedMin, feedMax := canvas.DefaultBand(in.Feed, in.UseBestStoryRatio)
	p.MinAspect, p.MaxAspect = in.MinAspect, in.MaxAspect
	if p.MinAspect == nil {
		p.MinAspect = &feedMin
	}
	if p.MaxAspect == nil {
		p.MaxAspect = &feedMax
	}

	if *p.MinAspect > *p.MaxAspect {
		return Profile{}, &InvalidError{Reason: ReasonAspectInverted,
			Detail: fmt.Sprintf("min=%.4f max=%.4f", *p.MinAspect, *p.MaxAspect)}
	}
	if *p.MinAspect < feedMin || *p.MinAspect > feedMax {
		return Profile{}, &InvalidError{Reason: ReasonAspectOutOfBand,
			Detail: fmt.Sprintf("minAspectRatio=%.4f outside feed band [%.4f, %.4f]", *p.MinAspect, feedMin, feedMax)}
	}
	if *p.MaxAspect < feedMin || *p.MaxAspect > feedMax {
		return Profile{}, &InvalidError{Reason: ReasonAspectOutOfBand,
			Detail: fmt.Sprintf("maxAspectRatio=%.4f outside feed band [%.4f, %.4f]", *p.MaxAspect, feedMin, feedMax)}
	}

	return p, nil
}
