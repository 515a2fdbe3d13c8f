package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tazkara/internal/models"
)

// CreateOrder - POST /api/order
// Direct order passthrough for clients that assemble their own ticket list
// instead of going through a cart. The backend's confirmation body is
// relayed verbatim.
func (h *Handlers) CreateOrder(c *gin.Context) {
	var order models.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(order.Tickets) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order must contain at least one ticket"})
		return
	}

	body, err := h.client.CreateOrder(c.Request.Context(), order, token(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", body)
}
