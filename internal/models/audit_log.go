package models

import (
	"time"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AdminID   *string   `gorm:"type:uuid;index" json:"admin_id"` // Nullable for failed login attempts
	Action    string    `gorm:"size:50;not null" json:"action"`  // e.g., "LOGIN", "CREATE_PROPERTY", "DELETE_PROPERTY"
	EntityID  string    `gorm:"size:64" json:"entity_id"`        // ID of the object affected
	Details   string    `gorm:"type:text" json:"details"`        // JSON or text description
	IPAddress string    `gorm:"size:45" json:"ip_address"`
	Timestamp time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"timestamp"`
}
