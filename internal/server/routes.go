// Package server exposes editing sessions over an HTTP JSON API.
package server

import (
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// SetupRoutes registers the API on a new router.
func SetupRoutes(h *Handler, logger zerolog.Logger) *mux.Router {
	r := mux.NewRouter()

	r.Use(LoggingMiddleware(logger))
	r.Use(RecoveryMiddleware(logger))

	r.HandleFunc("/healthz", h.Health).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/sessions", h.CreateSession).Methods("POST")
	api.HandleFunc("/sessions/{sessionID}", h.DeleteSession).Methods("DELETE")
	api.HandleFunc("/sessions/{sessionID}/table", h.GetTable).Methods("GET")
	api.HandleFunc("/sessions/{sessionID}/table", h.ReplaceTable).Methods("PUT")
	api.HandleFunc("/sessions/{sessionID}/cells", h.SetCell).Methods("PATCH")
	api.HandleFunc("/sessions/{sessionID}/columns", h.AddColumn).Methods("POST")
	api.HandleFunc("/sessions/{sessionID}/rows", h.AddRow).Methods("POST")
	api.HandleFunc("/sessions/{sessionID}/rows", h.DeleteRows).Methods("DELETE")
	api.HandleFunc("/sessions/{sessionID}/filter-options", h.FilterOptions).Methods("GET")
	api.HandleFunc("/sessions/{sessionID}/charts/counts", h.Counts).Methods("GET")
	api.HandleFunc("/sessions/{sessionID}/charts/treemap", h.Treemap).Methods("GET")
	api.HandleFunc("/sessions/{sessionID}/export", h.Export).Methods("GET")

	return r
}
