package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Property struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string    `gorm:"not null;size:255" json:"title"`
	PropertyType string    `gorm:"not null;size:20;index" json:"property_type"` // apartment, house, studio, villa
	Bedrooms     int       `gorm:"not null;default:0" json:"bedrooms"`
	Bathrooms    int       `gorm:"not null;default:0" json:"bathrooms"`
	Price        float64   `gorm:"not null" json:"price"`
	RentalPeriod string    `gorm:"not null;size:20;index" json:"rental_period"` // short-term, long-term
	City         string    `gorm:"not null;size:100;index" json:"city"`
	Area         string    `gorm:"size:100" json:"area"`
	Furnished    bool      `gorm:"default:false" json:"furnished"`
	Amenities    []string  `gorm:"serializer:json;type:text" json:"amenities"`
	Description  string    `gorm:"type:text" json:"description"`
	Images       []string  `gorm:"serializer:json;type:text" json:"images"`
	Available    bool      `gorm:"default:true;index" json:"available"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP;index" json:"created_at"`
	UpdatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
