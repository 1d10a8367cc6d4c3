package models

import (
	"time"
)

// User represents a registered account
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	DisplayName  string    `gorm:"not null" json:"display_name"`
	PasswordHash string    `json:"-"`
	SiteAdmin    bool      `gorm:"default:false" json:"site_admin"` // Reserved; no current logic reads it

	// Relationships
	Memberships []GroupMembership `gorm:"foreignKey:UserID" json:"memberships,omitempty"`
}
