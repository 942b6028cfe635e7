package service

import (
	"context"
	"errors"

	"spotfolio/internal/middleware"
	"spotfolio/internal/model"
	"spotfolio/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserService backs the legacy /api/user routes. Kept as the single
// canonical definition of that surface; new code should use profiles.
//
//go:generate mockery --name UserService --output ./mocks --outpkg mocks --case=underscore
type UserService interface {
	CreateUser(ctx context.Context, req *model.CreateUserRequest) (*model.User, error)
	GetFirstUser(ctx context.Context) (*model.User, error)
}

type userService struct {
	db       *gorm.DB
	userRepo repository.UserRepository
}

func NewUserService(db *gorm.DB, userRepo repository.UserRepository) UserService {
	return &userService{db: db, userRepo: userRepo}
}

func (s *userService) CreateUser(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	logger := middleware.GetLogger(ctx)

	user := &model.User{
		UserID:   uuid.New(),
		Name:     req.Name,
		Username: req.Username,
	}
	if err := s.userRepo.Create(ctx, s.db, user); err != nil {
		logger.Error("Legacy user creation failed", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to create user.", "", err)
	}
	return user, nil
}

func (s *userService) GetFirstUser(ctx context.Context) (*model.User, error) {
	user, err := s.userRepo.FindFirst(ctx, s.db)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "No user found.", "", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to fetch user.", "", err)
	}
	return user, nil
}
