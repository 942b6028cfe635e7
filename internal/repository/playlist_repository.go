//go:generate mockery --name PlaylistRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"fmt"

	"spotfolio/internal/middleware"
	"spotfolio/internal/model"

	"gorm.io/gorm"
)

// PlaylistRepository is read-only: playlists are written elsewhere.
type PlaylistRepository interface {
	ListByUserID(ctx context.Context, db *gorm.DB, userID string) ([]*model.Playlist, error)
}

type gormPlaylistRepository struct{}

func NewGormPlaylistRepository() PlaylistRepository {
	return &gormPlaylistRepository{}
}

func (r *gormPlaylistRepository) ListByUserID(ctx context.Context, db *gorm.DB, userID string) ([]*model.Playlist, error) {
	logger := middleware.GetLogger(ctx)
	var playlists []*model.Playlist

	result := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&playlists)
	if result.Error != nil {
		logger.Error("Error listing playlists", "error", result.Error, "user_id", userID)
		return nil, fmt.Errorf("gormPlaylistRepository.ListByUserID: %w", result.Error)
	}
	return playlists, nil
}
