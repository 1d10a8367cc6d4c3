package models

import (
	"time"
)

// Group represents a community group that publishes posts.
// Groups are never deleted; there is no delete path in the API.
type Group struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"not null" json:"description"`
	PhotoURL    string    `json:"photo_url,omitempty"`

	// Relationships
	Members []GroupMembership `gorm:"foreignKey:GroupID" json:"members,omitempty"`
	Posts   []Post            `gorm:"foreignKey:GroupID" json:"posts,omitempty"`
}
