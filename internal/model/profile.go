package model

import (
	"time"
)

// Profile is this system's record for a user, one-to-one with an identity
// at the external provider. The primary key is the provider's subject id.
// A profile with a null username is "unclaimed": it was stubbed out during
// the auth callback and is waiting for the completion form.
type Profile struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"not null" json:"email"`
	Name      *string   `json:"name"`
	Username  *string   `gorm:"uniqueIndex" json:"username"`
	Bio       *string   `json:"bio,omitempty"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

// Claimed reports whether the profile holds a non-empty username.
func (p *Profile) Claimed() bool {
	return p.Username != nil && *p.Username != ""
}

// CompleteProfileRequest is the completion-form submission (first claim).
// Bio length is enforced here, at input time; storage does not guarantee it.
type CompleteProfileRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Username string `json:"username" validate:"required,min=1,max=30"`
	Bio      string `json:"bio" validate:"max=150"`
}

// UpdateProfileRequest is the edit-form submission for an already-claimed profile.
type UpdateProfileRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Username string `json:"username" validate:"required,min=1,max=30"`
	Bio      string `json:"bio" validate:"max=150"`
}

// ProfileResponse is the profile representation returned by the API.
type ProfileResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      *string   `json:"name"`
	Username  *string   `json:"username"`
	Bio       *string   `json:"bio,omitempty"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func NewProfileResponse(p *Profile) *ProfileResponse {
	return &ProfileResponse{
		ID:        p.ID,
		Email:     p.Email,
		Name:      p.Name,
		Username:  p.Username,
		Bio:       p.Bio,
		AvatarURL: p.AvatarURL,
		CreatedAt: p.CreatedAt,
	}
}

// ProfilePage is the public profile view: the profile plus its playlists,
// newest first.
type ProfilePage struct {
	Profile   *ProfileResponse `json:"profile"`
	Playlists []*Playlist      `json:"playlists"`
}
