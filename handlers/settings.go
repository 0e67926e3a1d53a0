package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetSettings returns the settings document
func (h *Handler) GetSettings(c *gin.Context) {
	doc, err := h.svc.Settings.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// UpdateSettings merges a partial settings object
func (h *Handler) UpdateSettings(c *gin.Context) {
	var partial map[string]any
	if err := c.ShouldBindJSON(&partial); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}

	doc, err := h.svc.Settings.Update(c.Request.Context(), partial)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "settings": doc.Settings})
}

// ResetSettings restores the default settings
func (h *Handler) ResetSettings(c *gin.Context) {
	doc, err := h.svc.Settings.Reset(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "settings": doc.Settings})
}
