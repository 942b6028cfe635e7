//go:generate mockery --name UserRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"spotfolio/internal/middleware"
	"spotfolio/internal/model"

	"gorm.io/gorm"
)

// UserRepository backs the legacy /api/user routes only.
type UserRepository interface {
	Create(ctx context.Context, db *gorm.DB, user *model.User) error
	FindFirst(ctx context.Context, db *gorm.DB) (*model.User, error)
}

type gormUserRepository struct{}

func NewGormUserRepository() UserRepository {
	return &gormUserRepository{}
}

func (r *gormUserRepository) Create(ctx context.Context, db *gorm.DB, user *model.User) error {
	logger := middleware.GetLogger(ctx)

	result := db.WithContext(ctx).Create(user)
	if result.Error != nil {
		logger.Error("Error creating user", "error", result.Error, "username", user.Username)
		return fmt.Errorf("gormUserRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormUserRepository) FindFirst(ctx context.Context, db *gorm.DB) (*model.User, error) {
	logger := middleware.GetLogger(ctx)
	var user model.User

	result := db.WithContext(ctx).Order("created_at ASC").First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding first user", "error", result.Error)
		return nil, fmt.Errorf("gormUserRepository.FindFirst: %w", result.Error)
	}
	return &user, nil
}
