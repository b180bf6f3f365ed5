package handlers

import (
	"net/http"

	"github.com/rwibutsoaline9-sudo/cyprus-rental-finder/internal/models"
	"github.com/rwibutsoaline9-sudo/cyprus-rental-finder/internal/services"

	"github.com/gin-gonic/gin"
)

// ListAdvertisements serves the public ad slots, filtered by placement.
func (h *Handler) ListAdvertisements(c *gin.Context) {
	ads, err := h.adService.ListActive(c.Query("placement"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load advertisements"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"advertisements": ads})
}

func (h *Handler) AdminListAdvertisements(c *gin.Context) {
	ads, err := h.adService.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load advertisements"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"advertisements": ads})
}

type CreateAdvertisementRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	LinkURL     string `json:"link_url" binding:"required,url"`
	AdSize      string `json:"ad_size" binding:"required,oneof=banner rectangle sidebar"`
	Placement   string `json:"placement" binding:"required"`
	IsActive    *bool  `json:"is_active"`
}

func (h *Handler) CreateAdvertisement(c *gin.Context) {
	var req CreateAdvertisementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ad := models.Advertisement{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		LinkURL:     req.LinkURL,
		AdSize:      req.AdSize,
		Placement:   req.Placement,
		IsActive:    true,
	}
	if req.IsActive != nil {
		ad.IsActive = *req.IsActive
	}

	if err := h.adService.Create(&ad); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create advertisement"})
		return
	}

	c.JSON(http.StatusCreated, ad)
}

type UpdateAdvertisementRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	LinkURL     *string `json:"link_url" binding:"omitempty,url"`
	AdSize      *string `json:"ad_size" binding:"omitempty,oneof=banner rectangle sidebar"`
	Placement   *string `json:"placement"`
	IsActive    *bool   `json:"is_active"`
}

func (h *Handler) UpdateAdvertisement(c *gin.Context) {
	var req UpdateAdvertisementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.LinkURL != nil {
		updates["link_url"] = *req.LinkURL
	}
	if req.AdSize != nil {
		updates["ad_size"] = *req.AdSize
	}
	if req.Placement != nil {
		updates["placement"] = *req.Placement
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	ad, err := h.adService.Update(c.Param("id"), updates)
	if err != nil {
		if services.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Advertisement not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update advertisement"})
		return
	}

	c.JSON(http.StatusOK, ad)
}

func (h *Handler) DeleteAdvertisement(c *gin.Context) {
	if err := h.adService.Delete(c.Param("id")); err != nil {
		if services.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Advertisement not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete advertisement"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Advertisement deleted"})
}
