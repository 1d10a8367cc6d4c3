package models

import (
	"time"
)

// Post represents an announcement or event published within a group.
// Posts are append-only: there is no update or delete path. Date and
// Location are set together when IsEvent is true and are otherwise
// optional. Username is the author's username at posting time, stored
// as a plain string rather than a foreign key.
type Post struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time  `json:"created_at"`
	GroupID     uint       `gorm:"not null;index" json:"group_id"`
	Name        string     `gorm:"not null" json:"name"`
	Description string     `json:"description"`
	IsEvent     bool       `gorm:"default:false" json:"is_event"`
	Date        *time.Time `json:"date,omitempty"`
	Location    string     `json:"location,omitempty"`
	PhotoURL    string     `json:"photo_url,omitempty"`
	Username    string     `gorm:"not null" json:"username"`

	// Relationships
	Group Group `gorm:"foreignKey:GroupID" json:"group,omitempty"`
}
