package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tazkara/internal/cart"
	errs "tazkara/internal/errors"
	"tazkara/internal/external"
	"tazkara/internal/middleware"
	"tazkara/internal/service"
)

type Handlers struct {
	services *service.Services
	client   *external.Client
	carts    *cart.Manager
}

func NewHandlers(services *service.Services, client *external.Client, carts *cart.Manager) *Handlers {
	return &Handlers{
		services: services,
		client:   client,
		carts:    carts,
	}
}

// token returns the bearer token of the request, or "" for anonymous calls.
func token(c *gin.Context) string {
	t, _ := middleware.TokenFromContext(c.Request.Context())
	return t
}

// respondError maps the error taxonomy onto HTTP statuses. Upstream rejection
// statuses are relayed; everything the proxy itself detected gets a gateway
// status so the frontend can tell "backend said no" from "backend is broken".
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrAuthRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	case errors.Is(err, errs.ErrSessionExpired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session has expired, please log in again"})
		return
	case errors.Is(err, errs.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	var pre *errs.PreconditionError
	if errors.As(err, &pre) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  pre.Message,
			"reason": pre.Reason,
		})
		return
	}

	var auth *errs.AuthError
	if errors.As(err, &auth) {
		switch auth.Code {
		case errs.AuthRejected:
			msg := auth.Message
			if msg == "" {
				msg = "Invalid credentials"
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
		case errs.AuthInvalidResponse:
			c.JSON(http.StatusBadGateway, gin.H{"error": "Ticketing service returned an unexpected response"})
		default:
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Ticketing service is unreachable"})
		}
		return
	}

	var proto *errs.ProtocolError
	if errors.As(err, &proto) {
		msg := proto.Message
		if msg == "" {
			msg = http.StatusText(proto.StatusCode)
		}
		c.JSON(proto.StatusCode, gin.H{"error": msg})
		return
	}

	var invalid *errs.ValidationError
	if errors.As(err, &invalid) {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Ticketing service returned an unexpected response"})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// Status - GET /api/status
// Reports whether real backend data or the sample catalog is being served.
func (h *Handlers) Status(c *gin.Context) {
	available := h.client.CheckAvailability(c.Request.Context())
	degraded := h.client.Degraded()
	middleware.SetDegraded(degraded)
	c.JSON(http.StatusOK, gin.H{
		"backend_available": available,
		"degraded":          degraded,
	})
}

// Docs - GET /api/docs
// Relays the backend's swagger document. Failure is not an error condition
// for the storefront, so a missing document is a 204.
func (h *Handlers) Docs(c *gin.Context) {
	doc := h.client.Documentation(c.Request.Context())
	if doc == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.Data(http.StatusOK, "application/json", doc)
}
