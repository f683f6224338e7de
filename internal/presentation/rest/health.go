package rest

import (
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
)

// HealthHandler serves liveness and readiness probes over HTTP.
type HealthHandler struct {
	service string
	ready   atomic.Bool
	logger  *slog.Logger
}

// NewHealthHandler creates a health check HTTP handler. The service reports
// not ready until SetReady(true) is called.
func NewHealthHandler(service string, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{service: service, logger: logger}
}

// SetReady flips the readiness probe.
func (h *HealthHandler) SetReady(ready bool) {
	h.ready.Store(ready)
	h.logger.Info("readiness changed", "ready", ready)
}

// RegisterRoutes attaches health-check routes to the given router.
func (h *HealthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.liveness)
	r.Get("/readyz", h.readiness)
}

func (h *HealthHandler) liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": h.service,
	})
}

func (h *HealthHandler) readiness(w http.ResponseWriter, _ *http.Request) {
	if !h.ready.Load() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":  "unavailable",
			"service": h.service,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ready",
		"service": h.service,
	})
}
