package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Catalog handlers

// Categories - GET /api/categories
func (h *Handlers) Categories(c *gin.Context) {
	categories, err := h.services.Events.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": categories})
}

// Banners - GET /api/banners
func (h *Handlers) Banners(c *gin.Context) {
	banners, err := h.services.Events.Banners(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": banners})
}
