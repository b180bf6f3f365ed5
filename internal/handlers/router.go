package handlers

import (
	"github.com/rwibutsoaline9-sudo/cyprus-rental-finder/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func (h *Handler) SetupRouter(rateLimiter *services.IPRateLimiter) *gin.Engine {
	r := gin.Default()

	store := cookie.NewStore([]byte(h.cfg.SessionSecret))
	r.Use(sessions.Sessions("rental_session", store))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	api := r.Group("/api/v1")

	// Public Routes
	api.GET("/properties", h.ListProperties)
	api.GET("/properties/:id", h.GetProperty)
	api.GET("/properties/:id/qr", h.PropertyQRCode)
	api.GET("/advertisements", h.ListAdvertisements)
	api.POST("/bookings", h.CreateBooking)

	// Tracking Routes (rate limited)
	track := api.Group("/track")
	if rateLimiter != nil {
		track.Use(h.RateLimitMiddleware(rateLimiter))
	}
	track.POST("/visit", h.TrackVisit)
	track.POST("/property-view", h.TrackPropertyView)

	// Admin Routes
	api.POST("/admin/login", h.AdminLogin)

	admin := api.Group("/admin")
	admin.Use(h.AdminAuthRequired())
	{
		admin.GET("/properties", h.AdminListProperties)
		admin.POST("/properties", h.CreateProperty)
		admin.PUT("/properties/:id", h.UpdateProperty)
		admin.DELETE("/properties/:id", h.DeleteProperty)
		admin.POST("/properties/images", h.UploadPropertyImage)

		admin.GET("/analytics/visitors", h.VisitorAnalytics)
		admin.GET("/analytics/property-views", h.PropertyViewAnalytics)

		admin.GET("/bookings", h.ListBookings)
		admin.PUT("/bookings/:id/status", h.UpdateBookingStatus)

		admin.GET("/advertisements", h.AdminListAdvertisements)
		admin.POST("/advertisements", h.CreateAdvertisement)
		admin.PUT("/advertisements/:id", h.UpdateAdvertisement)
		admin.DELETE("/advertisements/:id", h.DeleteAdvertisement)
	}

	return r
}
