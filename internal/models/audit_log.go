package models

import "time"

// AuditLog records create/delete operations performed by users.
type AuditLog struct {
	Base
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UserID       string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Action       string    `gorm:"not null" json:"action"`
	ResourceType string    `gorm:"not null" json:"resource_type"`
	ResourceID   string    `json:"resource_id"`
	IPAddress    string    `json:"ip_address"`
	Changes      string    `json:"changes,omitempty"`
}

// AllModels lists every table, in creation order, for AutoMigrate.
var AllModels = []interface{}{
	&User{},
	&Category{},
	&Expense{},
	&AuditLog{},
}
