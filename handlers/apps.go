package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"launcher/models"
	"launcher/service"
)

// ListApps lists apps, optionally filtered by category and sorted
func (h *Handler) ListApps(c *gin.Context) {
	apps, err := h.svc.Apps.List(c.Request.Context(), service.ListOptions{
		Category: c.Query("category"),
		Sort:     c.Query("sort"),
		Order:    c.Query("order"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"apps": apps})
}

// CreateApp creates an app
func (h *Handler) CreateApp(c *gin.Context) {
	var req models.AppPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}

	app, err := h.svc.Apps.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "app": app})
}

// GetApp returns one app
func (h *Handler) GetApp(c *gin.Context) {
	app, err := h.svc.Apps.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// UpdateApp applies a partial update
func (h *Handler) UpdateApp(c *gin.Context) {
	var req models.AppPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}

	app, err := h.svc.Apps.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "app": app})
}

// DeleteApp deletes an app
func (h *Handler) DeleteApp(c *gin.Context) {
	if err := h.svc.Apps.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// LaunchApp records a launch
func (h *Handler) LaunchApp(c *gin.Context) {
	app, err := h.svc.Apps.Launch(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "launchCount": app.LaunchCount})
}

// ImportApps imports {"apps": [...]} or a bare array of apps
func (h *Handler) ImportApps(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		badRequest(c, "failed to read request body")
		return
	}

	summary, err := h.svc.Apps.Import(c.Request.Context(), body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"imported": summary.Imported,
		"updated":  summary.Updated,
		"total":    summary.Total,
	})
}

// ExportApps dumps all apps and settings in a shape ImportApps accepts
func (h *Handler) ExportApps(c *gin.Context) {
	export, err := h.svc.Export(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, export)
}
