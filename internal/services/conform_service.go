// filepath: internal/services/conform_service.go
package services

import (
	"context"
	"fmt"
	"os"
	"time"

	"mediaconform/internal/canvas"
	"mediaconform/internal/config"
	"mediaconform/internal/geometry"
	"mediaconform/internal/jobs"
	"mediaconform/internal/placement"
	"mediaconform/internal/resize"
)

// JobLedger is the subset of *jobs.Store the conform service depends on,
// kept as a narrow interface the way housekeeping depends on Ledger instead
// of the concrete store.
type JobLedger interface {
	CreateJob(j jobs.Job) error
	CompleteJob(id string, result canvas.Result, src, dst geometry.Rectangle, outputPath string, outputBytes int64, finishedAt time.Time) error
	FailJob(id string, cause error, finishedAt time.Time) error
	CachedCalculate(key string, compute func() (canvas.Result, error)) (canvas.Result, error)
}

// IDGenerator produces a new job identifier. Satisfied by jobs.NewJobID.
type IDGenerator func() string

// ConformService orchestrates a single conform operation: guard, calculate,
// plan, render, persist, audit — in that order, matching the pipeline
// spec.md §2 describes.
type ConformService struct {
	Ledger  JobLedger
	Auditor Auditor
	NewID   IDGenerator
}

// NewConformService wires a ConformService. ledger and auditor may be nil
// (no persistence / no audit trail); newID defaults to a timestamp-based
// fallback if nil.
func NewConformService(ledger JobLedger, auditor Auditor, newID IDGenerator) *ConformService {
	if newID == nil {
		newID = func() string { return fmt.Sprintf("job-%d", time.Now().UnixNano()) }
	}
	return &ConformService{Ledger: ledger, Auditor: auditor, NewID: newID}
}

// ConformRequest bundles the resolved profile and the concrete resizer
// strategy for a single file.
type ConformRequest struct {
	Profile config.Profile
	Resizer resize.Resizer
	Actor   string
}

// ConformResult is what the caller (HTTP handler or CLI) reports back.
type ConformResult struct {
	JobID      string
	Canvas     geometry.Dimensions
	Src        geometry.Rectangle
	Dst        geometry.Rectangle
	OutputPath string
	Processed  bool
}

// Conform runs the guard, then (if needed) the calculator, the placement
// planner, and the resizer, persisting and auditing the outcome.
func (s *ConformService) Conform(ctx context.Context, req ConformRequest) (*ConformResult, error) {
	input := req.Resizer.GetInputDimensions()
	minW, maxW := req.Resizer.GetMinWidth(), req.Resizer.GetMaxWidth()
	jobID := s.NewID()
	now := time.Now()

	if s.Ledger != nil {
		if err := s.Ledger.CreateJob(jobs.Job{
			ID: jobID, Status: jobs.StatusPending,
			Feed: req.Profile.Feed, Operation: req.Profile.Operation,
			Input: input, CreatedAt: now,
		}); err != nil {
			return nil, fmt.Errorf("create job record: %w", err)
		}
	}

	if !canvas.ShouldProcess(canvas.GuardParams{
		InputWidth: input.Width, InputHeight: input.Height,
		MinWidth: minW, MaxWidth: maxW,
		MinAspect: req.Profile.MinAspect, MaxAspect: req.Profile.MaxAspect,
		Resizer: req.Resizer,
	}) {
		full := geometry.NewRectangle(0, 0, input.Width, input.Height)
		s.audit(ctx, "conform.skip", req.Actor, jobID, nil)
		if s.Ledger != nil {
			_ = s.Ledger.CompleteJob(jobID, canvas.Result{Canvas: input}, full, full, "", 0, time.Now())
		}
		return &ConformResult{JobID: jobID, Canvas: input, Src: full, Dst: full, Processed: false}, nil
	}

	calcParams := canvas.Params{
		Feed: req.Profile.Feed, Operation: req.Profile.Operation, Input: input,
		IsMod2Required: req.Resizer.IsMod2CanvasRequired(),
		MinWidth:       minW, MaxWidth: maxW,
		MinAspect:      req.Profile.MinAspect, MaxAspect: req.Profile.MaxAspect,
		AllowDeviation: req.Profile.AllowNewAspectDeviation,
	}
	compute := func() (canvas.Result, error) { return canvas.Calculate(calcParams) }

	var result canvas.Result
	var err error
	if s.Ledger != nil {
		result, err = s.Ledger.CachedCalculate(cacheKey(calcParams), compute)
	} else {
		result, err = compute()
	}
	if err != nil {
		s.fail(ctx, jobID, req.Actor, err)
		return nil, err
	}

	plan := placement.Plan(placement.Params{
		Canvas: result.Canvas, Mod2WidthDiff: result.Mod2WidthDiff, Mod2HeightDiff: result.Mod2HeightDiff,
		Input: input, Operation: req.Profile.Operation,
		HorCropFocus: req.Profile.HorCropFocus, VerCropFocus: req.Profile.VerCropFocus,
		HorFlipped: req.Resizer.IsHorFlipped(), VerFlipped: req.Resizer.IsVerFlipped(),
	})

	outputPath, err := req.Resizer.Resize(plan.Src, plan.Dst, plan.Canvas)
	if err != nil {
		s.fail(ctx, jobID, req.Actor, err)
		return nil, err
	}

	var outputBytes int64
	if fi, statErr := os.Stat(outputPath); statErr == nil {
		outputBytes = fi.Size()
	}

	if s.Ledger != nil {
		if err := s.Ledger.CompleteJob(jobID, result, plan.Src, plan.Dst, outputPath, outputBytes, time.Now()); err != nil {
			return nil, fmt.Errorf("persist completed job: %w", err)
		}
	}
	s.audit(ctx, "conform.complete", req.Actor, jobID, map[string]interface{}{
		"canvas_width": plan.Canvas.Width, "canvas_height": plan.Canvas.Height,
	})

	return &ConformResult{
		JobID: jobID, Canvas: plan.Canvas, Src: plan.Src, Dst: plan.Dst,
		OutputPath: outputPath, Processed: true,
	}, nil
}

func (s *ConformService) fail(ctx context.Context, jobID, actor string, cause error) {
	if s.Ledger != nil {
		_ = s.Ledger.FailJob(jobID, cause, time.Now())
	}
	s.audit(ctx, "conform.fail", actor, jobID, map[string]interface{}{"error": cause.Error()})
}

func (s *ConformService) audit(ctx context.Context, action, actor, resource string, details map[string]interface{}) {
	if s.Auditor == nil {
		return
	}
	s.Auditor.Log(ctx, action, actor, resource, details)
}

// cacheKey derives a memoization key from calculator inputs. Nil aspect
// bounds are rendered as "-" so two differently-nil-shaped requests never
// collide with a real bound.
func cacheKey(p canvas.Params) string {
	minA, maxA := "-", "-"
	if p.MinAspect != nil {
		minA = fmt.Sprintf("%g", *p.MinAspect)
	}
	if p.MaxAspect != nil {
		maxA = fmt.Sprintf("%g", *p.MaxAspect)
	}
	return fmt.Sprintf("%s|%s|%dx%d|mod2=%t|w=%d-%d|ar=%s..%s|dev=%t",
		p.Feed, p.Operation, p.Input.Width, p.Input.Height,
		p.IsMod2Required, p.MinWidth, p.MaxWidth, minA, maxA, p.AllowDeviation)
}
