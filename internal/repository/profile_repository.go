//go:generate mockery --name ProfileRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"spotfolio/internal/middleware"
	"spotfolio/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// uniqueViolation is the Postgres error code for a unique-constraint breach.
// Username uniqueness lives entirely in the store; this is where a lost
// claim race surfaces.
const uniqueViolation = "23505"

type ProfileRepository interface {
	FindByID(ctx context.Context, db *gorm.DB, id string) (*model.Profile, error)
	FindByUsername(ctx context.Context, db *gorm.DB, username string) (*model.Profile, error)
	// EnsureStub inserts a minimal profile row if none exists for the id.
	// An existing row, claimed or not, is left untouched.
	EnsureStub(ctx context.Context, db *gorm.DB, profile *model.Profile) error
	// Upsert writes the full profile keyed by id in a single statement.
	Upsert(ctx context.Context, db *gorm.DB, profile *model.Profile) error
	// Update sets the given columns on the row matching id, in one statement.
	Update(ctx context.Context, db *gorm.DB, id string, fields map[string]any) error
}

type gormProfileRepository struct{}

func NewGormProfileRepository() ProfileRepository {
	return &gormProfileRepository{}
}

func (r *gormProfileRepository) FindByID(ctx context.Context, db *gorm.DB, id string) (*model.Profile, error) {
	logger := middleware.GetLogger(ctx)
	var profile model.Profile

	result := db.WithContext(ctx).Where("id = ?", id).First(&profile)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding profile by id", "error", result.Error, "profile_id", id)
		return nil, fmt.Errorf("gormProfileRepository.FindByID: %w", result.Error)
	}
	return &profile, nil
}

func (r *gormProfileRepository) FindByUsername(ctx context.Context, db *gorm.DB, username string) (*model.Profile, error) {
	logger := middleware.GetLogger(ctx)
	var profile model.Profile

	result := db.WithContext(ctx).Where("username = ?", username).First(&profile)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			logger.Debug("Profile not found by username", "username", username)
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding profile by username", "error", result.Error, "username", username)
		return nil, fmt.Errorf("gormProfileRepository.FindByUsername: %w", result.Error)
	}
	return &profile, nil
}

func (r *gormProfileRepository) EnsureStub(ctx context.Context, db *gorm.DB, profile *model.Profile) error {
	logger := middleware.GetLogger(ctx)

	result := db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(profile)
	if result.Error != nil {
		logger.Error("Error inserting stub profile", "error", result.Error, "profile_id", profile.ID)
		return fmt.Errorf("gormProfileRepository.EnsureStub: %w", result.Error)
	}
	return nil
}

func (r *gormProfileRepository) Upsert(ctx context.Context, db *gorm.DB, profile *model.Profile) error {
	logger := middleware.GetLogger(ctx)

	result := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"email", "name", "username", "bio", "avatar_url", "updated_at"}),
		}).
		Create(profile)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == uniqueViolation {
			logger.Warn("Duplicate username on profile upsert", "error", result.Error, "profile_id", profile.ID)
			return model.ErrConflict
		}
		logger.Error("Error upserting profile", "error", result.Error, "profile_id", profile.ID)
		return fmt.Errorf("gormProfileRepository.Upsert: %w", result.Error)
	}
	return nil
}

func (r *gormProfileRepository) Update(ctx context.Context, db *gorm.DB, id string, fields map[string]any) error {
	logger := middleware.GetLogger(ctx)

	if _, ok := fields["updated_at"]; !ok {
		fields["updated_at"] = time.Now()
	}

	result := db.WithContext(ctx).Model(&model.Profile{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == uniqueViolation {
			logger.Warn("Duplicate username on profile update", "error", result.Error, "profile_id", id)
			return model.ErrConflict
		}
		logger.Error("Error updating profile", "error", result.Error, "profile_id", id)
		return fmt.Errorf("gormProfileRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
