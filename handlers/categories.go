package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type addCategoryRequest struct {
	Name string `json:"name"`
}

// ListCategories lists category names
func (h *Handler) ListCategories(c *gin.Context) {
	names, err := h.svc.Categories.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": names})
}

// AddCategory adds a category; an existing name reports "exists"
func (h *Handler) AddCategory(c *gin.Context) {
	var req addCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}

	name, status, err := h.svc.Categories.Add(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status, "category": name})
}

// GetCategoryApps lists the apps in one category
func (h *Handler) GetCategoryApps(c *gin.Context) {
	apps, err := h.svc.Categories.Apps(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"apps": apps})
}
