package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"launcher/version"
)

// HealthCheck health endpoint
func (h *Handler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	dbHealthy := h.svc.Store.Ping(ctx) == nil

	health := gin.H{
		"status":     "healthy",
		"timestamp":  time.Now().Unix(),
		"db_healthy": dbHealthy,
		"version":    version.GetVersion(),
	}
	if !dbHealthy {
		health["status"] = "degraded"
		c.JSON(http.StatusServiceUnavailable, health)
		return
	}
	c.JSON(http.StatusOK, health)
}

var metricsHandler = promhttp.Handler()

// GetMetrics exposes Prometheus metrics
func GetMetrics(c *gin.Context) {
	metricsHandler.ServeHTTP(c.Writer, c.Request)
}
