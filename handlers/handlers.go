package handlers

import (
	"github.com/gin-gonic/gin"

	"launcher/service"
)

// Handler serves the launcher API over a set of services.
type Handler struct {
	svc *service.Services
}

// New constructs a handler
func New(svc *service.Services) *Handler {
	return &Handler{svc: svc}
}

// Register mounts every API route on api, normally the /api group.
func (h *Handler) Register(api gin.IRouter) {
	api.GET("/apps", h.ListApps)
	api.POST("/apps", h.CreateApp)
	api.GET("/apps/export", h.ExportApps)
	api.POST("/apps/import", h.ImportApps)
	api.GET("/apps/:id", h.GetApp)
	api.PUT("/apps/:id", h.UpdateApp)
	api.DELETE("/apps/:id", h.DeleteApp)
	api.POST("/apps/:id/launch", h.LaunchApp)

	api.GET("/categories", h.ListCategories)
	api.POST("/categories", h.AddCategory)
	api.GET("/categories/:name/apps", h.GetCategoryApps)

	api.GET("/settings", h.GetSettings)
	api.PUT("/settings", h.UpdateSettings)
	api.POST("/settings/reset", h.ResetSettings)

	api.GET("/health", h.HealthCheck)
	api.GET("/metrics", GetMetrics)
}
