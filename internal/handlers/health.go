package handlers

import (
	"context"
	"net/http"
	"time"

	"COURSEHUB_BACK-END/internal/dto"
	"COURSEHUB_BACK-END/internal/utils"
)

// Pinger is anything the readiness probe can check
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check related requests
type HealthHandler struct {
	checks map[string]Pinger
}

// NewHealthHandler creates a new HealthHandler instance. checks maps a
// dependency name ("storage", "cache") to its probe.
func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// HealthCheck handles basic health check (no dependencies)
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /healthz [get]
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, dto.HealthResponse{Status: "ok"})
}

// LivenessCheck handles process liveness check
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /livez [get]
func (h *HealthHandler) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, dto.HealthResponse{Status: "alive"})
}

// ReadinessCheck pings every registered dependency
// @Summary Readiness probe
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /readyz [get]
func (h *HealthHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	status, code := "ready", http.StatusOK
	details := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			details[name] = err.Error()
			status, code = "degraded", http.StatusServiceUnavailable
			continue
		}
		details[name] = "ok"
	}

	utils.WriteJSONResponse(w, code, dto.HealthResponse{Status: status, Details: details})
}
