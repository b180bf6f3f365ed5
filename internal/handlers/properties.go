package handlers

import (
	"net/http"
	"strconv"

	"github.com/rwibutsoaline9-sudo/cyprus-rental-finder/internal/services"

	"github.com/gin-gonic/gin"
)

// parsePropertyFilters maps query parameters onto the filter set. A missing
// or unparseable parameter means "no constraint on this dimension".
func parsePropertyFilters(c *gin.Context) services.PropertyFilters {
	f := services.PropertyFilters{
		City:         c.Query("city"),
		RentalPeriod: c.Query("rental_period"),
		PropertyType: c.Query("property_type"),
	}

	if v, err := strconv.ParseFloat(c.Query("min_price"), 64); err == nil {
		f.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(c.Query("max_price"), 64); err == nil {
		f.MaxPrice = &v
	}
	if v, err := strconv.Atoi(c.Query("min_bedrooms")); err == nil {
		f.MinBedrooms = &v
	}
	if v, err := strconv.Atoi(c.Query("max_bedrooms")); err == nil {
		f.MaxBedrooms = &v
	}
	if v, err := strconv.ParseBool(c.Query("furnished")); err == nil {
		f.Furnished = &v
	}

	return f
}

// ListProperties is the public browse endpoint: available properties only.
func (h *Handler) ListProperties(c *gin.Context) {
	properties, err := h.propertyService.List(parsePropertyFilters(c), true)
	if err != nil {
		h.logger.Error("Failed to list properties", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load properties. Please try again."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"properties": properties})
}

func (h *Handler) GetProperty(c *gin.Context) {
	property, err := h.propertyService.Get(c.Param("id"))
	if err != nil {
		if services.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load property. Please try again."})
		return
	}

	c.JSON(http.StatusOK, property)
}

// PropertyQRCode renders a QR code pointing at the public listing page.
func (h *Handler) PropertyQRCode(c *gin.Context) {
	property, err := h.propertyService.Get(c.Param("id"))
	if err != nil {
		if services.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load property. Please try again."})
		return
	}

	png, err := services.GenerateQRCode(services.QROptions{
		Content: h.cfg.PublicBaseURL + "/properties/" + property.ID,
		Size:    256,
		FgColor: c.Query("fg"),
		BgColor: c.Query("bg"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR code"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
