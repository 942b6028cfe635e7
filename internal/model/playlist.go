package model

import (
	"time"

	"github.com/google/uuid"
)

// Playlist rows are owned by another part of the product; this service only
// reads them for the public profile page.
type Playlist struct {
	PlaylistID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string    `gorm:"not null;index" json:"user_id"`
	Name        string    `gorm:"not null" json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Playlist) TableName() string {
	return "playlists"
}
