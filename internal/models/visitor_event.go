package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VisitorEvent is one recorded page visit. Rows are append-only; retention
// is handled outside the application.
type VisitorEvent struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	PageURL    string    `gorm:"not null;type:text" json:"page_url"`
	Referrer   *string   `gorm:"type:text" json:"referrer,omitempty"`
	UserAgent  string    `gorm:"type:text" json:"user_agent"`
	DeviceType string    `gorm:"size:20;index" json:"device_type"` // mobile, tablet, desktop
	VisitorID  *string   `gorm:"size:64;index" json:"visitor_id,omitempty"`
	City       string    `gorm:"size:100" json:"city,omitempty"`
	Country    string    `gorm:"size:100" json:"country,omitempty"`
	IPAddress  string    `gorm:"size:45" json:"ip_address,omitempty"`
	CreatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP;index" json:"created_at"`
}

func (VisitorEvent) TableName() string {
	return "visitor_analytics"
}

func (e *VisitorEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// PropertyView records booking intent on a property card ("Book Now" click).
type PropertyView struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	PropertyID string    `gorm:"type:uuid;not null;index" json:"property_id"`
	UserAgent  string    `gorm:"type:text" json:"user_agent"`
	IPAddress  string    `gorm:"size:45" json:"ip_address,omitempty"`
	CreatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP;index" json:"created_at"`
}

func (PropertyView) TableName() string {
	return "property_views"
}

func (v *PropertyView) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}
