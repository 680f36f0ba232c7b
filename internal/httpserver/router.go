// filepath: internal/httpserver/router.go
package httpserver

import (
	"mediaconform/internal/api/handlers"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRouter configures the router: public health/info/swagger endpoints,
// plus the versioned conform API.
func SetupRouter(h *handlers.Handlers) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", handlers.HealthCheck).Methods("GET")
	r.HandleFunc("/api/info", h.GetInfo).Methods("GET")
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/conform", h.Conform).Methods("POST")
	api.HandleFunc("/jobs/{id}", h.GetJob).Methods("GET")
	api.HandleFunc("/jobs/{id}/token", h.GetResultToken).Methods("POST")
	api.HandleFunc("/jobs/{id}/result", h.GetResult).Methods("GET")

	return r
}
