package handlers

import (
	"net/http"
	"time"

	"github.com/rwibutsoaline9-sudo/cyprus-rental-finder/internal/services"

	"github.com/gin-gonic/gin"
)

type CreateBookingRequest struct {
	PropertyID    string `json:"property_id" binding:"required"`
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerEmail string `json:"customer_email" binding:"required,email"`
	CustomerPhone string `json:"customer_phone"`
	CheckInDate   string `json:"check_in_date" binding:"required"`
	CheckOutDate  string `json:"check_out_date"`
	Notes         string `json:"notes"`
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	checkIn, err := time.Parse("2006-01-02", req.CheckInDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "check_in_date must be YYYY-MM-DD"})
		return
	}

	dto := services.BookingDTO{
		PropertyID:    req.PropertyID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		CheckInDate:   checkIn,
		Notes:         req.Notes,
	}
	if req.CheckOutDate != "" {
		checkOut, err := time.Parse("2006-01-02", req.CheckOutDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "check_out_date must be YYYY-MM-DD"})
			return
		}
		dto.CheckOutDate = &checkOut
	}

	booking, err := h.bookingService.Create(dto)
	if err != nil {
		if services.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		h.logger.Error("Failed to create booking", "property_id", req.PropertyID, "error", err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, booking)
}

func (h *Handler) ListBookings(c *gin.Context) {
	bookings, err := h.bookingService.List(c.Query("property_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending paid cancelled"`
}

func (h *Handler) UpdateBookingStatus(c *gin.Context) {
	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.bookingService.UpdateStatus(c.Param("id"), req.Status)
	if err != nil {
		if services.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update booking"})
		return
	}

	c.JSON(http.StatusOK, booking)
}
