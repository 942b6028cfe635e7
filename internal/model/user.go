package model

import (
	"time"

	"github.com/google/uuid"
)

// User backs the legacy /api/user routes. The table predates the profiles
// schema and is kept only for that surface.
type User struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Username  string    `gorm:"not null" json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// CreateUserRequest is the body for the legacy POST /api/user.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Username string `json:"username" validate:"required"`
}
