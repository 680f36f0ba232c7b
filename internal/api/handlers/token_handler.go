// filepath: internal/api/handlers/token_handler.go
package handlers

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"mediaconform/internal/jobs"
)

// tokenResponse is the JSON body returned on successful token generation.
type tokenResponse struct {
	ResultToken string `json:"result_token"`
}

// @Summary Get a result-retrieval token for a finished job
// @Description Issues a short-lived token scoped to a single completed job, to be passed to the result download endpoint.
// @Tags jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} tokenResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /v1/jobs/{id}/token [post]
func (h *Handlers) GetResultToken(w http.ResponseWriter, r *http.Request) {
	if h.Token == nil {
		respondWithError(w, http.StatusServiceUnavailable, "result tokens are not configured")
		return
	}

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
	if job.Status != jobs.StatusCompleted {
		respondWithError(w, http.StatusConflict, "job has not completed")
		return
	}

	token, err := h.Token.GenerateResultToken(job.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to generate result token")
		return
	}
	respondWithJSON(w, http.StatusOK, tokenResponse{ResultToken: token})
}

// @Summary Download a finished job's rendered output
// @Description Streams the rendered output file for a completed job. Requires a result token obtained from the token endpoint.
// @Tags jobs
// @Produce application/octet-stream
// @Param id path string true "Job ID"
// @Param token query string true "Result token"
// @Success 200 {file} file
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /v1/jobs/{id}/result [get]
func (h *Handlers) GetResult(w http.ResponseWriter, r *http.Request) {
	if h.Token == nil {
		respondWithError(w, http.StatusServiceUnavailable, "result tokens are not configured")
		return
	}

	id := mux.Vars(r)["id"]
	jobID, err := h.Token.ValidateResultToken(r.URL.Query().Get("token"))
	if err != nil || jobID != id {
		respondWithError(w, http.StatusUnauthorized, "invalid or expired result token")
		return
	}

	job, err := h.JobStore.GetJob(id)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to fetch job")
		return
	}
	if job == nil || job.OutputPath == "" {
		respondWithError(w, http.StatusNotFound, "job output not found")
		return
	}

	if _, err := os.Stat(job.OutputPath); err != nil {
		respondWithError(w, http.StatusNotFound, "job output not found")
		return
	}
	http.ServeFile(w, r, job.OutputPath)
}
