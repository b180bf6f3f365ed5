package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Booking struct {
	ID            string     `gorm:"type:uuid;primaryKey" json:"id"`
	PropertyID    string     `gorm:"type:uuid;not null;index" json:"property_id"`
	Property      *Property  `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	CustomerName  string     `gorm:"not null;size:255" json:"customer_name"`
	CustomerEmail string     `gorm:"not null;size:255" json:"customer_email"`
	CustomerPhone string     `gorm:"size:50" json:"customer_phone"`
	BookingAmount float64    `gorm:"not null" json:"booking_amount"`
	PaymentStatus string     `gorm:"not null;size:20;default:'pending'" json:"payment_status"` // pending, paid, cancelled
	BookingDate   time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"booking_date"`
	CheckInDate   time.Time  `gorm:"not null" json:"check_in_date"`
	CheckOutDate  *time.Time `json:"check_out_date,omitempty"`
	Notes         string     `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time  `gorm:"default:CURRENT_TIMESTAMP;index" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
