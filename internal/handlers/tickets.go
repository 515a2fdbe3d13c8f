package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Tickets handlers

// MyTickets - GET /api/my-tickets
// The optional ?status= filter narrows tickets to one availability bucket;
// an unknown value is ignored rather than rejected.
func (h *Handlers) MyTickets(c *gin.Context) {
	page, err := h.services.Tickets.List(c.Request.Context(), token(c), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
