package handlers

import (
	"errors"
	"net/http"

	"github.com/WilkerGw/LP-OTICA/models"
	"github.com/WilkerGw/LP-OTICA/services"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	Auth *services.AdminAuthService
}

func NewAdminHandler(auth *services.AdminAuthService) *AdminHandler {
	return &AdminHandler{Auth: auth}
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req models.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.Auth.Login(req)
	switch {
	case errors.Is(err, services.ErrAdminDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Admin access not configured"})
		return
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign in"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
