// filepath: internal/api/handlers/conform_handler.go
package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"mediaconform/internal/canvas"
	"mediaconform/internal/config"
	"mediaconform/internal/jobs"
	"mediaconform/internal/logging"
	"mediaconform/internal/media"
	"mediaconform/internal/resize"
	"mediaconform/internal/services"
	"mediaconform/internal/storage"
)

// ConformResponse is the JSON shape returned for both processed and skipped
// conform outcomes.
type ConformResponse struct {
	JobID      string `json:"job_id"`
	Processed  bool   `json:"processed"`
	CanvasW    int    `json:"canvas_width"`
	CanvasH    int    `json:"canvas_height"`
	SrcX       int    `json:"src_x"`
	SrcY       int    `json:"src_y"`
	SrcW       int    `json:"src_width"`
	SrcH       int    `json:"src_height"`
	DstX       int    `json:"dst_x"`
	DstY       int    `json:"dst_y"`
	DstW       int    `json:"dst_width"`
	DstH       int    `json:"dst_height"`
	OutputPath string `json:"output_path,omitempty"`
}

func parseOptionalFloat(r *http.Request, key string) *float64 {
	v := r.FormValue(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}

func parseOptionalInt(r *http.Request, key string) *int {
	v := r.FormValue(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

func parseBool(r *http.Request, key string) bool {
	v, err := strconv.ParseBool(r.FormValue(key))
	return err == nil && v
}

func profileFromForm(r *http.Request) config.ProfileInput {
	in := config.ProfileInput{
		Feed:                    canvas.General,
		Operation:               canvas.Crop,
		MinAspect:               parseOptionalFloat(r, "min_aspect"),
		MaxAspect:               parseOptionalFloat(r, "max_aspect"),
		HorCropFocus:            parseOptionalInt(r, "hor_crop_focus"),
		VerCropFocus:            parseOptionalInt(r, "ver_crop_focus"),
		UseBestStoryRatio:       parseBool(r, "use_best_story_ratio"),
		AllowNewAspectDeviation: parseBool(r, "allow_new_aspect_deviation"),
	}
	if r.FormValue("feed") == "story" {
		in.Feed = canvas.Story
	}
	if r.FormValue("operation") == "expand" {
		in.Operation = canvas.Expand
	}
	return in
}

// flippableResizer is the subset every concrete Resizer strategy exposes
// beyond the core interface, for recording caller-supplied orientation.
type flippableResizer interface {
	resize.Resizer
	SetFlipped(hor, ver bool)
}

// @Summary Conform a media file to a canvas profile
// @Description Uploads a photo, video, or thumbnail source and renders it to fit the requested feed/operation/aspect constraints.
// @Tags conform
// @Accept mpfd
// @Produce json
// @Param kind formData string true "photo, video, or thumb"
// @Param file formData file true "Source media file"
// @Success 200 {object} ConformResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /v1/conform [post]
func (h *Handlers) Conform(w http.ResponseWriter, r *http.Request) {
	maxMemory := h.Cfg.MaxSyncUploadSizeBytes
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		respondWithError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	kind := r.FormValue("kind")
	if kind != "photo" && kind != "video" && kind != "thumb" {
		respondWithError(w, http.StatusBadRequest, "kind must be one of: photo, video, thumb")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "missing 'file' part in multipart form")
		return
	}
	defer file.Close()

	profile, err := config.NewProfile(profileFromForm(r))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	jobID := jobs.NewJobID()
	now := time.Now()

	renderer, err := h.buildResizer(kind, jobID, now, file, profile)
	if err != nil {
		logging.Log.Warnf("Conform: failed to build resizer for kind=%s: %v", kind, err)
		respondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	renderer.SetFlipped(parseBool(r, "hor_flipped"), parseBool(r, "ver_flipped"))

	result, err := h.ConformSvc.Conform(r.Context(), services.ConformRequest{
		Profile: profile, Resizer: renderer, Actor: actorFromRequest(r),
	})
	if err != nil {
		var invalid *config.InvalidError
		if errors.As(err, &invalid) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		logging.Log.Errorf("Conform: job %s failed: %v", jobID, err)
		respondWithError(w, http.StatusInternalServerError, "failed to conform media")
		return
	}

	respondWithJSON(w, http.StatusOK, ConformResponse{
		JobID: result.JobID, Processed: result.Processed,
		CanvasW: result.Canvas.Width, CanvasH: result.Canvas.Height,
		SrcX: result.Src.X, SrcY: result.Src.Y, SrcW: result.Src.Width, SrcH: result.Src.Height,
		DstX: result.Dst.X, DstY: result.Dst.Y, DstW: result.Dst.Width, DstH: result.Dst.Height,
		OutputPath: result.OutputPath,
	})
}

func actorFromRequest(r *http.Request) string {
	if actor := r.Header.Get("X-Actor"); actor != "" {
		return actor
	}
	return "anonymous"
}

// buildResizer decodes/stages the upload and returns a Resizer strategy
// bound to the width band the profile's feed and requested kind imply.
// Video is staged to a temp file first: ffmpeg needs a seekable path, not a
// multipart stream.
func (h *Handlers) buildResizer(kind, jobID string, createdAt time.Time, file multipart.File, profile config.Profile) (flippableResizer, error) {
	switch kind {
	case "photo":
		outPath, err := storage.GetOutputPath(h.Cfg.Jobs.OutputRoot, createdAt, jobID, ".jpg")
		if err != nil {
			return nil, err
		}
		minW, maxW := h.Cfg.Resize.PhotoGeneralMinWidth, h.Cfg.Resize.PhotoGeneralMaxWidth
		if profile.Feed == canvas.Story {
			minW, maxW = h.Cfg.Resize.PhotoStoryMinWidth, h.Cfg.Resize.PhotoStoryMaxWidth
		}
		return resize.NewPhotoResizer(file, minW, maxW, profile.BGColor, false, outPath)

	case "thumb":
		outPath, err := storage.GetOutputPath(h.Cfg.Jobs.OutputRoot, createdAt, jobID, ".jpg")
		if err != nil {
			return nil, err
		}
		return resize.NewThumbResizer(file, h.Cfg.Resize.ThumbMinWidth, h.Cfg.Resize.ThumbMaxWidth, profile.BGColor, outPath)

	case "video":
		if !media.IsFFmpegAvailable() {
			return nil, fmt.Errorf("video conforming requires ffmpeg, which is not available")
		}
		tempPath, err := storage.GetTempPath(h.Cfg.Jobs.TempRoot, createdAt, jobID)
		if err != nil {
			return nil, err
		}
		tempPath += ".src"
		if _, err := storage.SaveFile(file, tempPath); err != nil {
			return nil, err
		}
		dims, err := media.ProbeVideoDimensions(tempPath)
		if err != nil {
			return nil, err
		}
		outPath, err := storage.GetOutputPath(h.Cfg.Jobs.OutputRoot, createdAt, jobID, ".mp4")
		if err != nil {
			return nil, err
		}
		return resize.NewVideoResizer(media.GetFFmpegPath(), tempPath, dims, h.Cfg.Resize.VideoMinWidth, h.Cfg.Resize.VideoMaxWidth, profile.BGColor, true, outPath), nil
	}
	return nil, fmt.Errorf("unsupported kind %q", kind)
}
