package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dj/customer-service/pkg/database"
	"github.com/dj/customer-service/pkg/version"
)

const (
	healthStatusHealthy   = "healthy"
	healthStatusDegraded  = "degraded"
	healthStatusUnhealthy = "unhealthy"
	healthStatusDisabled  = "disabled"

	healthCheckTimeout = 5 * time.Second
)

// healthHandler handles GET /health. It never passes through the masking
// hooks and carries no customer data.
func (s *Server) healthHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	checks := make(map[string]HealthCheck)
	status := healthStatusHealthy

	if s.dbClient != nil {
		check := s.databaseCheck(ctx)
		checks["database"] = check
		status = check.Status
	}
	if s.maskingService != nil {
		checks["masking"] = s.maskingCheck()
	}

	httpStatus := http.StatusOK
	if status == healthStatusUnhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, &HealthResponse{
		Status:  status,
		Version: version.GitCommit,
		Checks:  checks,
	})
}

func (s *Server) databaseCheck(ctx context.Context) HealthCheck {
	health, err := database.Health(ctx, s.dbClient.DB())
	if err != nil {
		return HealthCheck{Status: healthStatusUnhealthy, Message: err.Error()}
	}
	if health.PoolSaturated {
		return HealthCheck{Status: healthStatusDegraded, Message: "connection pool saturated"}
	}
	return HealthCheck{Status: healthStatusHealthy}
}

// maskingCheck reports which hooks are switched off. It does not affect the
// overall status.
func (s *Server) maskingCheck() HealthCheck {
	cfg := s.maskingService.Config()
	var off []string
	if !cfg.Inbound.Enabled {
		off = append(off, "inbound")
	}
	if !cfg.Outbound.Enabled {
		off = append(off, "outbound")
	}
	if len(off) == 0 {
		return HealthCheck{Status: healthStatusHealthy}
	}
	return HealthCheck{Status: healthStatusDisabled, Message: strings.Join(off, ", ") + " masking disabled"}
}
