package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Events handlers

// ActiveEvents - GET /api/events/active
func (h *Handlers) ActiveEvents(c *gin.Context) {
	events, err := h.services.Events.Active(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": events})
}

// UpcomingEvents - GET /api/events/upcoming
func (h *Handlers) UpcomingEvents(c *gin.Context) {
	events, err := h.services.Events.Upcoming(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": events})
}

// EventByID - GET /api/events/:id
func (h *Handlers) EventByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	event, err := h.services.Events.ByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": event})
}

// EventsByCategory - GET /api/events/active/category/:id
func (h *Handlers) EventsByCategory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
		return
	}

	events, err := h.services.Events.ByCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": events})
}
