package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Advertisement struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"not null;size:255" json:"title"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	ImageURL    string    `gorm:"type:text" json:"image_url,omitempty"`
	LinkURL     string    `gorm:"not null;type:text" json:"link_url"`
	AdSize      string    `gorm:"not null;size:20" json:"ad_size"` // banner, rectangle, sidebar
	Placement   string    `gorm:"not null;size:50;index" json:"placement"`
	IsActive    bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP;index" json:"created_at"`
	UpdatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (a *Advertisement) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
