// Package handlers implements snowball serve's HTTP handlers.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/nilium/snowball/pkg/catalog"
)

// HealthHandler serves liveness and readiness probes for the snowball
// HTTP server.
//
// Liveness always succeeds once the process is serving requests.
// Readiness additionally checks that the configured catalog store
// responds, since that is the one dependency serve cannot function
// without.
type HealthHandler struct {
	store     catalog.Store
	startTime time.Time
}

// NewHealthHandler creates a health handler backed by store. store may be
// nil, in which case Readiness always reports unhealthy.
func NewHealthHandler(store catalog.Store) *HealthHandler {
	return &HealthHandler{store: store, startTime: time.Now()}
}

type healthResponse struct {
	Status    string         `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
	Data      map[string]any `json:"data,omitempty"`
	Error     string         `json:"error,omitempty"`
}

func writeHealth(w http.ResponseWriter, status int, resp healthResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// Liveness handles GET /healthz - a simple liveness probe.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	uptime := time.Since(h.startTime)
	writeHealth(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Data: map[string]any{
			"service":    "snowball",
			"uptime_sec": int64(uptime.Seconds()),
		},
	})
}

// Readiness handles GET /healthz/ready - a readiness probe that checks the
// catalog store responds.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeHealth(w, http.StatusServiceUnavailable, healthResponse{
			Status:    "unhealthy",
			Timestamp: time.Now().UTC(),
			Error:     "catalog store not initialized",
		})
		return
	}

	if _, err := h.store.List(r.Context()); err != nil {
		writeHealth(w, http.StatusServiceUnavailable, healthResponse{
			Status:    "unhealthy",
			Timestamp: time.Now().UTC(),
			Error:     err.Error(),
		})
		return
	}

	writeHealth(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
	})
}
