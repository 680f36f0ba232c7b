package canvas

import (
	"math"

	"mediaconform/internal/geometry"
)

// Tracer receives a per-stage debug record when supplied. Enabling it never
// changes the computed result (spec.md §7: "the core performs no logging").
type Tracer func(step string, width, height int, aspect float64)

// Params bundles the numeric inputs to Calculate. Aspect bounds are pointers
// because a nil bound means "no constraint on this side" (spec.md §4.2.1).
type Params struct {
	Feed           Feed
	Operation      Operation
	Input          geometry.Dimensions
	IsMod2Required bool
	MinWidth       int
	MaxWidth       int
	MinAspect      *float64
	MaxAspect      *float64
	AllowDeviation bool
	Trace          Tracer
}

// Result is the calculator's output: the resolved canvas plus how much the
// Mod2 adjustment stage altered it (both fields can be negative).
type Result struct {
	Canvas         geometry.Dimensions
	Mod2WidthDiff  int
	Mod2HeightDiff int
}

// mod2Offsets is the fixed candidate list adjustMod2 evaluates, in priority
// order. Bounded to ±6: beyond that, deviation from the target aspect
// dominates any potential area gain. The 0, +2, −2, … ordering biases toward
// keeping the pre-Mod2 canvas when it is legal.
var mod2Offsets = []int{0, 2, -2, 4, -4, 6, -6}

func (p Params) trace(step string, w, h int) {
	if p.Trace == nil {
		return
	}
	aspect := 0.0
	if h != 0 {
		aspect = float64(w) / float64(h)
	}
	p.Trace(step, w, h, aspect)
}

func legal(aspect float64, minAR, maxAR *float64) bool {
	if minAR != nil && aspect < *minAR {
		return false
	}
	if maxAR != nil && aspect > *maxAR {
		return false
	}
	return true
}

// Calculate derives the output canvas for the given input and constraints,
// running Stages A-D of spec.md §4.2 in order.
func Calculate(p Params) (Result, error) {
	inputW, inputH := p.Input.Width, p.Input.Height
	ar := p.Input.Aspect()
	p.trace("input", inputW, inputH)

	var targetW, targetH int
	var targetAR float64
	var heightBias geometry.Rounding

	switch {
	case p.MinAspect != nil && ar < *p.MinAspect:
		targetAR = *p.MinAspect
		if p.Feed == Story {
			targetAR = StoryIdealAspect
		}
		heightBias = geometry.Floor
		if p.Operation == Crop {
			targetW = inputW
			targetH = geometry.Floor.Apply(float64(inputW) / targetAR)
		} else {
			targetH = inputH
			targetW = geometry.Ceil.Apply(float64(inputH) * targetAR)
		}
	case p.MaxAspect != nil && ar > *p.MaxAspect:
		targetAR = *p.MaxAspect
		if p.Feed == Story {
			targetAR = StoryIdealAspect
		}
		heightBias = geometry.Ceil
		if p.Operation == Crop {
			targetW = geometry.Floor.Apply(float64(inputH) * targetAR)
			targetH = inputH
		} else {
			targetW = inputW
			targetH = geometry.Ceil.Apply(float64(inputW) / targetAR)
		}
	default:
		targetW, targetH = inputW, inputH
		targetAR = ar
		// Legacy minAspectDistance: a null bound contributes a 0 distance,
		// which biases the choice toward the null side. Preserved from the
		// source rather than fixed to use +/-inf.
		var distMin, distMax float64
		if p.MinAspect != nil {
			distMin = math.Abs(ar - *p.MinAspect)
		}
		if p.MaxAspect != nil {
			distMax = math.Abs(ar - *p.MaxAspect)
		}
		if distMin < distMax {
			heightBias = geometry.Floor
		} else {
			heightBias = geometry.Ceil
		}
	}
	p.trace("stage_a_aspect_conformance", targetW, targetH)

	// Stage B - square sanity.
	if targetAR == 1 && targetW != targetH {
		if p.Operation == Crop {
			targetW = min(targetW, targetH)
			targetH = targetW
		} else {
			targetW = max(targetW, targetH)
			targetH = targetW
		}
		p.trace("stage_b_square_sanity", targetW, targetH)
	}

	// Stage C - width clamp.
	if targetW > p.MaxWidth {
		targetW = p.MaxWidth
		targetH = heightBias.Apply(float64(targetW) / targetAR)
	}
	if targetW < p.MinWidth {
		targetW = p.MinWidth
		targetH = heightBias.Apply(float64(targetW) / targetAR)
	}
	p.trace("stage_c_width_clamp", targetW, targetH)

	mod2WidthDiff, mod2HeightDiff := 0, 0

	// Stage D - Mod2 adjustment, only when required and something is odd.
	if p.IsMod2Required && (targetW%2 != 0 || targetH%2 != 0) {
		preW, preH := targetW, targetH
		newW, newH, err := adjustMod2(mod2Params{
			Width:          targetW,
			Height:         targetH,
			InputHeight:    inputH,
			MinWidth:       p.MinWidth,
			MinAspect:      p.MinAspect,
			MaxAspect:      p.MaxAspect,
			TargetAspect:   targetAR,
			HeightBias:     heightBias,
			AllowDeviation: p.AllowDeviation,
		})
		if err != nil {
			return Result{}, err
		}
		targetW, targetH = newW, newH
		mod2WidthDiff = targetW - preW
		mod2HeightDiff = targetH - preH
		p.trace("stage_d_mod2_adjustment", targetW, targetH)
	}

	finalAspect := float64(targetW) / float64(targetH)

	if targetW < 1 || targetH < 1 {
		return Result{}, &InvalidError{
			Reason: ReasonDegenerate, Width: targetW, Height: targetH,
			Aspect: finalAspect, MinAspect: p.MinAspect, MaxAspect: p.MaxAspect,
		}
	}
	if targetW < p.MinWidth || targetW > p.MaxWidth {
		return Result{}, &InvalidError{
			Reason: ReasonWidthOutOfRange, Width: targetW, Height: targetH,
			Aspect: finalAspect, MinAspect: p.MinAspect, MaxAspect: p.MaxAspect,
		}
	}
	if !legal(finalAspect, p.MinAspect, p.MaxAspect) && !p.AllowDeviation {
		return Result{}, &InvalidError{
			Reason: ReasonAspectOutOfRange, Width: targetW, Height: targetH,
			Aspect: finalAspect, MinAspect: p.MinAspect, MaxAspect: p.MaxAspect,
		}
	}

	return Result{
		Canvas:         geometry.NewDimensions(targetW, targetH),
		Mod2WidthDiff:  mod2WidthDiff,
		Mod2HeightDiff: mod2HeightDiff,
	}, nil
}

type mod2Params struct {
	Width          int
	Height         int
	InputHeight    int
	MinWidth       int
	MinAspect      *float64
	MaxAspect      *float64
	TargetAspect   float64
	HeightBias     geometry.Rounding
	AllowDeviation bool
}

type mod2Bucket int

const (
	bucketPerfect mod2Bucket = iota
	bucketStretch
	bucketBad
)

type mod2Candidate struct {
	height     int
	bucket     mod2Bucket
	deviation  float64
}

// adjustMod2 turns (W, H) into an even-even pair as close as possible to the
// target aspect, without exceeding width limits. See spec.md §4.2.1.
func adjustMod2(p mod2Params) (int, int, error) {
	w, h := p.Width, p.Height
	canCutWidth := w > p.MinWidth

	widthStep := -1
	if !canCutWidth {
		widthStep = 1
	}

	if w%2 != 0 {
		w += widthStep
		h = p.HeightBias.Apply(float64(w) / p.TargetAspect)
	}
	if h%2 != 0 {
		h += widthStep
	}

	candidates := make([]mod2Candidate, 0, len(mod2Offsets))
	for _, offset := range mod2Offsets {
		candidateH := h + offset
		if candidateH < 1 {
			continue
		}
		aspect := float64(w) / float64(candidateH)
		stretch := max(0, candidateH-p.InputHeight)
		deviation := math.Abs(aspect - p.TargetAspect)

		bucket := bucketBad
		if legal(aspect, p.MinAspect, p.MaxAspect) {
			if stretch == 0 {
				bucket = bucketPerfect
			} else {
				bucket = bucketStretch
			}
		}
		candidates = append(candidates, mod2Candidate{height: candidateH, bucket: bucket, deviation: deviation})
	}

	chosen, bucket := selectBestCandidate(candidates)
	if bucket == bucketBad && !p.AllowDeviation {
		aspect := float64(w) / float64(chosen)
		return 0, 0, &InvalidError{
			Reason: ReasonAspectOutOfRange, Width: w, Height: chosen,
			Aspect: aspect, MinAspect: p.MinAspect, MaxAspect: p.MaxAspect,
		}
	}
	return w, chosen, nil
}

// selectBestCandidate picks the smallest-deviation candidate from the best
// available bucket (perfect, then stretch, then bad), preserving the input
// order of mod2Offsets on ties.
func selectBestCandidate(candidates []mod2Candidate) (int, mod2Bucket) {
	for _, bucket := range []mod2Bucket{bucketPerfect, bucketStretch, bucketBad} {
		best := -1
		bestDeviation := math.Inf(1)
		for i, c := range candidates {
			if c.bucket != bucket {
				continue
			}
			if c.deviation < bestDeviation {
				bestDeviation = c.deviation
				best = i
			}
		}
		if best >= 0 {
			return candidates[best].height, bucket
		}
	}
	return 0, bucketBad
}
