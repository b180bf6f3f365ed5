package handlers

import (
	"net/http"
	"strings"

	"github.com/rwibutsoaline9-sudo/cyprus-rental-finder/internal/services"
	"github.com/rwibutsoaline9-sudo/cyprus-rental-finder/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AdminAuthRequired guards the back office with a Bearer token.
func (h *Handler) AdminAuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if strings.HasPrefix(tokenString, "Bearer ") {
			tokenString = strings.TrimPrefix(tokenString, "Bearer ")
		}
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		claims, err := utils.ValidateAdminToken(tokenString, []byte(h.cfg.JWTSecret))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set("admin_id", claims.AdminID)
		c.Set("admin_email", claims.Email)
		c.Next()
	}
}

func (h *Handler) RateLimitMiddleware(limiter *services.IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			return
		}
		c.Next()
	}
}

// adminID returns the authenticated admin's id for audit entries.
func adminID(c *gin.Context) *string {
	if v, ok := c.Get("admin_id"); ok {
		if id, ok := v.(string); ok {
			return &id
		}
	}
	return nil
}
