package handlers

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rwibutsoaline9-sudo/cyprus-rental-finder/internal/models"
	"github.com/rwibutsoaline9-sudo/cyprus-rental-finder/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CreatePropertyRequest struct {
	Title        string   `json:"title" binding:"required"`
	PropertyType string   `json:"property_type" binding:"required,oneof=apartment house studio villa"`
	Bedrooms     int      `json:"bedrooms"`
	Bathrooms    int      `json:"bathrooms"`
	Price        float64  `json:"price" binding:"required,gt=0"`
	RentalPeriod string   `json:"rental_period" binding:"required,oneof=short-term long-term"`
	City         string   `json:"city" binding:"required"`
	Area         string   `json:"area"`
	Furnished    bool     `json:"furnished"`
	Amenities    []string `json:"amenities"`
	Description  string   `json:"description"`
	Images       []string `json:"images"`
	Available    *bool    `json:"available"`
}

type UpdatePropertyRequest struct {
	Title        *string   `json:"title"`
	PropertyType *string   `json:"property_type" binding:"omitempty,oneof=apartment house studio villa"`
	Bedrooms     *int      `json:"bedrooms"`
	Bathrooms    *int      `json:"bathrooms"`
	Price        *float64  `json:"price" binding:"omitempty,gt=0"`
	RentalPeriod *string   `json:"rental_period" binding:"omitempty,oneof=short-term long-term"`
	City         *string   `json:"city"`
	Area         *string   `json:"area"`
	Furnished    *bool     `json:"furnished"`
	Amenities    *[]string `json:"amenities"`
	Description  *string   `json:"description"`
	Images       *[]string `json:"images"`
	Available    *bool     `json:"available"`
}

// AdminListProperties returns every property, available or not.
func (h *Handler) AdminListProperties(c *gin.Context) {
	properties, err := h.propertyService.List(services.PropertyFilters{}, false)
	if err != nil {
		h.logger.Error("Failed to list properties for admin", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load properties. Please try again."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"properties": properties})
}

func (h *Handler) CreateProperty(c *gin.Context) {
	var req CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	property := models.Property{
		Title:        req.Title,
		PropertyType: req.PropertyType,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		Price:        req.Price,
		RentalPeriod: req.RentalPeriod,
		City:         req.City,
		Area:         req.Area,
		Furnished:    req.Furnished,
		Amenities:    req.Amenities,
		Description:  req.Description,
		Images:       req.Images,
		Available:    true,
	}
	if req.Available != nil {
		property.Available = *req.Available
	}

	if err := h.propertyService.Create(&property, adminID(c), c.ClientIP()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create property"})
		return
	}

	c.JSON(http.StatusCreated, property)
}

func (h *Handler) UpdateProperty(c *gin.Context) {
	var req UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// When the images list is replaced, the dropped ones get deleted from
	// storage after the row update sticks.
	var droppedImages []string
	if req.Images != nil {
		if old, err := h.propertyService.Get(c.Param("id")); err == nil {
			kept := make(map[string]bool, len(*req.Images))
			for _, url := range *req.Images {
				kept[url] = true
			}
			for _, url := range old.Images {
				if !kept[url] {
					droppedImages = append(droppedImages, url)
				}
			}
		}
	}

	update := services.PropertyUpdate{
		Title:        req.Title,
		PropertyType: req.PropertyType,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		Price:        req.Price,
		RentalPeriod: req.RentalPeriod,
		City:         req.City,
		Area:         req.Area,
		Furnished:    req.Furnished,
		Amenities:    req.Amenities,
		Description:  req.Description,
		Images:       req.Images,
		Available:    req.Available,
	}

	property, err := h.propertyService.Update(c.Param("id"), update, adminID(c), c.ClientIP())
	if err != nil {
		if services.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update property"})
		return
	}

	h.removeStoredImages(c.Request.Context(), droppedImages)

	c.JSON(http.StatusOK, property)
}

func (h *Handler) DeleteProperty(c *gin.Context) {
	property, err := h.propertyService.Get(c.Param("id"))
	if err != nil {
		if services.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete property"})
		return
	}

	if err := h.propertyService.Delete(property.ID, adminID(c), c.ClientIP()); err != nil {
		if services.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete property"})
		return
	}

	h.removeStoredImages(c.Request.Context(), property.Images)

	c.JSON(http.StatusOK, gin.H{"message": "Property deleted"})
}

// removeStoredImages deletes the given image URLs from object storage.
// URLs that do not belong to the configured store (external links) are left
// alone. Removal is best-effort; the row change has already committed.
func (h *Handler) removeStoredImages(ctx context.Context, urls []string) {
	if h.objectStore == nil || len(urls) == 0 {
		return
	}

	prefix := h.objectStore.PublicURL("")
	var keys []string
	for _, url := range urls {
		if key := strings.TrimPrefix(url, prefix); key != url && key != "" {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return
	}

	if err := h.objectStore.Remove(ctx, keys); err != nil {
		h.logger.Warn("Failed to remove stored images", "keys", keys, "error", err)
	}
}

// UploadPropertyImage stores an image and returns its public URL for use in
// a property's images list.
func (h *Handler) UploadPropertyImage(c *gin.Context) {
	if h.objectStore == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image storage is not configured"})
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing image file"})
		return
	}
	defer file.Close()

	ext := filepath.Ext(header.Filename)
	key := fmt.Sprintf("properties/%s%s", uuid.NewString(), ext)

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := h.objectStore.Upload(c.Request.Context(), key, file, contentType); err != nil {
		h.logger.Error("Image upload failed", "key", key, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"key": key,
		"url": h.objectStore.PublicURL(key),
	})
}

// VisitorAnalytics backs the admin dashboard: recent events plus device and
// country breakdowns.
func (h *Handler) VisitorAnalytics(c *gin.Context) {
	limit := 100
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 1000 {
		limit = v
	}

	var recent []models.VisitorEvent
	if err := h.db.Order("created_at desc").Limit(limit).Find(&recent).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load analytics. Please try again."})
		return
	}

	var total int64
	if err := h.db.Model(&models.VisitorEvent{}).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load analytics. Please try again."})
		return
	}

	var today int64
	startOfDay := time.Now().Truncate(24 * time.Hour)
	if err := h.db.Model(&models.VisitorEvent{}).Where("created_at >= ?", startOfDay).Count(&today).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load analytics. Please try again."})
		return
	}

	var deviceStats []struct {
		DeviceType string `json:"device_type"`
		Count      int    `json:"count"`
	}
	if err := h.db.Model(&models.VisitorEvent{}).Select("device_type, count(*) as count").Group("device_type").Order("count desc").Scan(&deviceStats).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load analytics. Please try again."})
		return
	}

	var countryStats []struct {
		Country string `json:"country"`
		Count   int    `json:"count"`
	}
	if err := h.db.Model(&models.VisitorEvent{}).Select("country, count(*) as count").Group("country").Order("count desc").Scan(&countryStats).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load analytics. Please try again."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_visitors": total,
		"today_visitors": today,
		"device_stats":   deviceStats,
		"country_stats":  countryStats,
		"recent":         recent,
	})
}

// PropertyViewAnalytics lists recent booking-intent events and per-property
// totals.
func (h *Handler) PropertyViewAnalytics(c *gin.Context) {
	var recent []models.PropertyView
	if err := h.db.Order("created_at desc").Limit(100).Find(&recent).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load analytics. Please try again."})
		return
	}

	var propertyStats []struct {
		PropertyID string `json:"property_id"`
		Count      int    `json:"count"`
	}
	if err := h.db.Model(&models.PropertyView{}).Select("property_id, count(*) as count").Group("property_id").Order("count desc").Scan(&propertyStats).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load analytics. Please try again."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"property_stats": propertyStats,
		"recent":         recent,
	})
}
