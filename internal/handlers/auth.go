package handlers

import (
	"errors"
	"net/http"

	"github.com/rwibutsoaline9-sudo/cyprus-rental-finder/internal/services"
	"github.com/rwibutsoaline9-sudo/cyprus-rental-finder/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AdminLogin exchanges admin credentials for a bearer token.
func (h *Handler) AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	admin, err := h.adminService.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		h.logger.Error("Admin login failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed. Please try again."})
		return
	}

	token, err := utils.GenerateAdminToken(admin.ID, admin.Email, admin.Role, []byte(h.cfg.JWTSecret))
	if err != nil {
		h.logger.Error("Failed to sign admin token", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed. Please try again."})
		return
	}

	h.auditService.LogAction(&admin.ID, "LOGIN", admin.ID, nil, c.ClientIP())

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"admin": gin.H{
			"id":    admin.ID,
			"email": admin.Email,
			"name":  admin.Name,
			"role":  admin.Role,
		},
	})
}
