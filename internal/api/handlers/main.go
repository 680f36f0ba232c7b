// filepath: internal/api/handlers/main.go
package handlers

import (
	"time"

	"mediaconform/internal/config"
	"mediaconform/internal/jobs"
	"mediaconform/internal/services"
	"mediaconform/internal/services/auth"
)

// Handlers holds the shared dependencies every endpoint needs.
type Handlers struct {
	ConformSvc *services.ConformService
	JobStore   *jobs.Store
	Token      auth.TokenService
	Cfg        *config.Config

	Version   string
	StartTime time.Time
}

// NewHandlers wires a Handlers with its dependencies. token may be nil, in
// which case the result-token endpoints respond 503.
func NewHandlers(conform *services.ConformService, jobStore *jobs.Store, token auth.TokenService, cfg *config.Config, version string, startTime time.Time) *Handlers {
	return &Handlers{
		ConformSvc: conform,
		JobStore:   jobStore,
		Token:      token,
		Cfg:        cfg,
		Version:    version,
		StartTime:  startTime,
	}
}
