// Package handler provides HTTP handlers for the ClimaVista API.
package handler

import (
	"net/http"
	"time"

	"github.com/climavista/climavista/internal/api/models"
	"github.com/climavista/climavista/internal/api/response"
)

// ReadinessCheck reports whether a dependency is ready.
type ReadinessCheck func() error

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	readiness map[string]ReadinessCheck
}

// NewOpsHandler creates a new OpsHandler. The readiness map associates a
// dependency name with its check; a nil or empty map means always ready.
func NewOpsHandler(version, buildTime string, readiness map[string]ReadinessCheck) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		readiness: readiness,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	status := models.HealthStatusOK
	details := make(map[string]interface{}, len(h.readiness))
	for name, check := range h.readiness {
		if err := check(); err != nil {
			status = models.HealthStatusFail
			details[name] = err.Error()
			continue
		}
		details[name] = "ok"
	}

	health := models.Health{
		Status: status,
		Time:   models.Timestamp(time.Now()),
	}
	if len(details) > 0 {
		health.Details = details
	}

	code := http.StatusOK
	if status != models.HealthStatusOK {
		code = http.StatusServiceUnavailable
	}
	response.JSON(w, r, code, health)
}

// SystemStatus handles GET /v1/ops/status - provider status overview.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	// TODO: surface real circuit breaker state per provider
	now := models.Timestamp(time.Now())
	status := models.SystemStatus{
		Status: models.HealthStatusOK,
		Time:   now,
		Providers: []models.ProviderStatus{
			{Provider: "open-meteo-forecast", Status: models.HealthStatusOK, LastSuccessAt: &now},
			{Provider: "open-meteo-air-quality", Status: models.HealthStatusOK, LastSuccessAt: &now},
			{Provider: "open-meteo-archive", Status: models.HealthStatusOK, LastSuccessAt: &now},
			{Provider: "emailjs", Status: models.HealthStatusOK, LastSuccessAt: &now},
		},
	}
	response.JSON(w, r, http.StatusOK, status)
}
