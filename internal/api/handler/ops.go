// Package handler provides HTTP handlers for the GreenWays API.
package handler

import (
	"net/http"
	"time"

	"github.com/greenways/greenways/internal/api/models"
	"github.com/greenways/greenways/internal/api/response"
	"github.com/greenways/greenways/internal/provider/resilience"
)

// StoreMonitor reports database connectivity. Satisfied by
// *database.Monitor.
type StoreMonitor interface {
	Ready() bool
	Status() (ready bool, lastCheck time.Time, lastErr error)
}

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	monitor   StoreMonitor
	registry  *resilience.Registry
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(version, buildTime string, monitor StoreMonitor, registry *resilience.Registry) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		monitor:   monitor,
		registry:  registry,
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

// ReadinessCheck handles GET /v1/ops/ready - readiness check. Reports
// the store monitor's last observed connectivity state.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	status := models.HealthStatusOK
	code := http.StatusOK
	if h.monitor != nil && !h.monitor.Ready() {
		status = models.HealthStatusFail
		code = http.StatusServiceUnavailable
	}

	response.JSON(w, r, code, models.Health{
		Status: status,
		Time:   models.Timestamp(time.Now()),
	})
}

// SystemStatus handles GET /v1/ops/status - subsystem and provider status.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	now := models.Timestamp(time.Now())
	overall := models.HealthStatusOK

	subsystems := make([]models.SubsystemStatus, 0, 1)
	if h.monitor != nil {
		dbStatus := models.HealthStatusOK
		var detail *string
		ready, _, lastErr := h.monitor.Status()
		if !ready {
			dbStatus = models.HealthStatusFail
			overall = models.HealthStatusDegraded
			if lastErr != nil {
				msg := lastErr.Error()
				detail = &msg
			}
		}
		subsystems = append(subsystems, models.SubsystemStatus{
			Name:   "postgres",
			Status: dbStatus,
			Detail: detail,
		})
	}

	providers := make([]models.ProviderStatus, 0)
	if h.registry != nil {
		for _, health := range h.registry.GetAllHealth() {
			status := models.HealthStatusOK
			switch {
			case health.IsUnhealthy():
				status = models.HealthStatusFail
				overall = models.HealthStatusDegraded
			case health.IsDegraded():
				status = models.HealthStatusDegraded
				if overall == models.HealthStatusOK {
					overall = models.HealthStatusDegraded
				}
			}

			provider := models.ProviderStatus{
				Provider: health.Name,
				Status:   status,
			}
			if health.LastSuccessAt != nil {
				ts := models.Timestamp(*health.LastSuccessAt)
				provider.LastSuccessAt = &ts
			}
			if health.LastFailureAt != nil {
				ts := models.Timestamp(*health.LastFailureAt)
				provider.LastFailureAt = &ts
			}
			if health.LastError != "" {
				msg := health.LastError
				provider.Message = &msg
			}
			providers = append(providers, provider)
		}
	}

	response.JSON(w, r, http.StatusOK, models.SystemStatus{
		Status:     overall,
		Time:       now,
		Subsystems: subsystems,
		Providers:  providers,
	})
}
