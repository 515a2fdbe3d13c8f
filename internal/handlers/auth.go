package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Auth handlers

type loginRequest struct {
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login - POST /api/auth/login
func (h *Handlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identifier := req.Phone
	if identifier == "" {
		identifier = req.Email
	}
	if identifier == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phone or email is required"})
		return
	}

	user, err := h.services.Auth.Login(c.Request.Context(), identifier, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": user.Token,
		"user":  user,
	})
}

// Register - POST /api/auth/register
func (h *Handlers) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.services.Auth.Register(c.Request.Context(), req.Name, req.Phone, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": user.Token,
		"user":  user,
	})
}

// Logout - POST /api/auth/logout
// Always succeeds: the local session is cleared even when the backend call
// fails or the request carried no token at all.
func (h *Handlers) Logout(c *gin.Context) {
	h.services.Auth.Logout(c.Request.Context(), token(c))
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me - GET /api/auth/me
func (h *Handlers) Me(c *gin.Context) {
	user, ok := h.services.Auth.Current(c.Request.Context(), token(c))
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
