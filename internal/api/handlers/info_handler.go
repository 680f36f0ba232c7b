// filepath: internal/api/handlers/info_handler.go
package handlers

import (
	"net/http"
	"time"

	"mediaconform/internal/media"
)

// InfoResponse describes the running service, mirroring what a caller needs
// to decide whether video conforming is available before submitting a job.
type InfoResponse struct {
	Version         string  `json:"version"`
	UptimeSeconds   float64 `json:"uptime_seconds"`
	FFmpegAvailable bool    `json:"ffmpeg_available"`
}

// @Summary Get service information
// @Description Reports the running version, uptime, and whether ffmpeg is available for video conforming. Public endpoint.
// @Tags Info
// @Produce json
// @Success 200 {object} InfoResponse
// @Router /info [get]
func (h *Handlers) GetInfo(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, InfoResponse{
		Version:         h.Version,
		UptimeSeconds:   time.Since(h.StartTime).Seconds(),
		FFmpegAvailable: media.IsFFmpegAvailable(),
	})
}
