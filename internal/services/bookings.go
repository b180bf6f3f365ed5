package services

import (
	"errors"
	"log/slog"
	"time"

	"github.com/rwibutsoaline9-sudo/cyprus-rental-finder/internal/models"

	"gorm.io/gorm"
)

type BookingDTO struct {
	PropertyID    string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	CheckInDate   time.Time
	CheckOutDate  *time.Time
	Notes         string
}

type BookingService struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewBookingService(db *gorm.DB, logger *slog.Logger) *BookingService {
	return &BookingService{db: db, logger: logger}
}

// Create records a booking request for an available property. The booking
// amount is the property's current price; payment settlement happens
// elsewhere, the record starts as pending.
func (s *BookingService) Create(dto BookingDTO) (*models.Booking, error) {
	var property models.Property
	if err := s.db.First(&property, "id = ?", dto.PropertyID).Error; err != nil {
		return nil, err
	}
	if !property.Available {
		return nil, errors.New("property is not available")
	}

	booking := models.Booking{
		PropertyID:    property.ID,
		CustomerName:  dto.CustomerName,
		CustomerEmail: dto.CustomerEmail,
		CustomerPhone: dto.CustomerPhone,
		BookingAmount: property.Price,
		PaymentStatus: "pending",
		BookingDate:   time.Now(),
		CheckInDate:   dto.CheckInDate,
		CheckOutDate:  dto.CheckOutDate,
		Notes:         dto.Notes,
	}

	if err := s.db.Create(&booking).Error; err != nil {
		return nil, err
	}

	return &booking, nil
}

// List returns bookings newest first, optionally limited to one property.
func (s *BookingService) List(propertyID string) ([]models.Booking, error) {
	q := s.db.Order("created_at DESC")
	if propertyID != "" {
		q = q.Where("property_id = ?", propertyID)
	}

	var bookings []models.Booking
	if err := q.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// UpdateStatus moves a booking between pending, paid and cancelled.
func (s *BookingService) UpdateStatus(id, status string) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.First(&booking, "id = ?", id).Error; err != nil {
		return nil, err
	}

	booking.PaymentStatus = status
	if err := s.db.Save(&booking).Error; err != nil {
		return nil, err
	}

	return &booking, nil
}
