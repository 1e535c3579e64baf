package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const pingTimeout = 2 * time.Second

type HealthResponse struct {
	Status      string            `json:"status"`
	Timestamp   time.Time         `json:"timestamp"`
	Uptime      float64           `json:"uptime"`
	Environment string            `json:"environment"`
	Version     string            `json:"version"`
	Checks      map[string]string `json:"checks,omitempty"`
}

// HealthReporter pings the backing services named in checks.
type HealthReporter struct {
	environment string
	version     string
	startedAt   time.Time
	checks      map[string]Pinger
}

func NewHealthReporter(environment, version string, checks map[string]Pinger) *HealthReporter {
	return &HealthReporter{
		environment: environment,
		version:     version,
		startedAt:   time.Now(),
		checks:      checks,
	}
}

func (h *HealthReporter) Report(ctx context.Context) (HealthResponse, bool) {
	resp := HealthResponse{
		Status:      "OK",
		Timestamp:   time.Now().UTC(),
		Uptime:      time.Since(h.startedAt).Seconds(),
		Environment: h.environment,
		Version:     h.version,
		Checks:      make(map[string]string, len(h.checks)),
	}

	healthy := true
	for name, pinger := range h.checks {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		err := pinger.PingContext(pingCtx)
		cancel()
		if err != nil {
			resp.Checks[name] = err.Error()
			healthy = false
			continue
		}
		resp.Checks[name] = "OK"
	}
	if !healthy {
		resp.Status = "DEGRADED"
	}
	return resp, healthy
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	report, healthy := s.health.Report(c.Request().Context())
	if !healthy {
		return c.JSON(http.StatusServiceUnavailable, Envelope{Status: statusError, Message: "Server is degraded", Data: report})
	}
	return success(c, http.StatusOK, "Server is healthy", report)
}
