package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	errs "tazkara/internal/errors"
	"tazkara/internal/normalize"
)

// Cart handlers

type openCartRequest struct {
	EventID int64 `json:"event_id" binding:"required"`
}

type quantityRequest struct {
	TicketCategoryID int64 `json:"ticket_category_id" binding:"required"`
	Quantity         *int  `json:"quantity" binding:"required"`
}

type holderRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// OpenCart - POST /api/carts
func (h *Handlers) OpenCart(c *gin.Context) {
	var req openCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	crt, err := h.services.Events.OpenCart(c.Request.Context(), req.EventID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, crt.Snapshot(normalize.FormatPrice))
}

// GetCart - GET /api/carts/:id
func (h *Handlers) GetCart(c *gin.Context) {
	crt, ok := h.carts.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
		return
	}
	c.JSON(http.StatusOK, crt.Snapshot(normalize.FormatPrice))
}

// DeleteCart - DELETE /api/carts/:id
func (h *Handlers) DeleteCart(c *gin.Context) {
	h.carts.Delete(c.Param("id"))
	c.Status(http.StatusNoContent)
}

// SetQuantity - PUT /api/carts/:id/quantities
func (h *Handlers) SetQuantity(c *gin.Context) {
	crt, ok := h.carts.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
		return
	}

	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := crt.SetQuantity(req.TicketCategoryID, *req.Quantity); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, crt.Snapshot(normalize.FormatPrice))
}

// UpdateHolder - PATCH /api/carts/:id/holders/:index
func (h *Handlers) UpdateHolder(c *gin.Context) {
	crt, ok := h.carts.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid holder index"})
		return
	}

	var req holderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := crt.UpdateHolder(index, req.Field, req.Value); err != nil {
		// Bad field names are the client's mistake, not an upstream fault.
		var invalid *errs.ValidationError
		if errors.As(err, &invalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Reason})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, crt.Snapshot(normalize.FormatPrice))
}

// Checkout - POST /api/carts/:id/checkout
func (h *Handlers) Checkout(c *gin.Context) {
	body, err := h.services.Checkout.Checkout(c.Request.Context(), token(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", body)
}
