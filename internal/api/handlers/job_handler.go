// filepath: internal/api/handlers/job_handler.go
package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// JobResponse is the JSON projection of a persisted jobs.Job.
type JobResponse struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	FinishedAt  string `json:"finished_at,omitempty"`
	CanvasW     int    `json:"canvas_width,omitempty"`
	CanvasH     int    `json:"canvas_height,omitempty"`
	OutputPath  string `json:"output_path,omitempty"`
	OutputBytes int64  `json:"output_bytes,omitempty"`
	Error       string `json:"error,omitempty"`
}

// @Summary Get a job's status and result
// @Description Fetches the persisted outcome of a previously submitted conform job.
// @Tags jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} JobResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /v1/jobs/{id} [get]
func (h *Handlers) GetJob(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	job, err := h.JobStore.GetJob(id)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to fetch job")
		return
	}
	if job == nil {
		respondWithError(w, http.StatusNotFound, "job not found")
		return
	}

	resp := JobResponse{
		ID: job.ID, Status: string(job.Status), CreatedAt: job.CreatedAt.Format(timeLayout),
		CanvasW: job.Canvas.Width, CanvasH: job.Canvas.Height,
		OutputPath: job.OutputPath, OutputBytes: job.OutputBytes, Error: job.Error,
	}
	if !job.FinishedAt.IsZero() {
		resp.FinishedAt = job.FinishedAt.Format(timeLayout)
	}
	respondWithJSON(w, http.StatusOK, resp)
}

const timeLayout = "2006-01-02T15:04:05Z07:00"
