package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"
	"time"

	"spotfolio/internal/middleware"
	"spotfolio/internal/model"
	"spotfolio/internal/repository"
	"spotfolio/internal/storage"

	"gorm.io/gorm"
)

// NormalizeUsernameLoose is the completion-form normalization: lower-case
// only. Illegal characters pass through untouched.
func NormalizeUsernameLoose(raw string) string {
	return strings.ToLower(raw)
}

var usernameStripPattern = regexp.MustCompile(`[^a-z0-9_]`)

// NormalizeUsernameStrict is the edit-form normalization: lower-case plus
// removal of every character outside [a-z0-9_]. Stricter than the
// completion form; the two are intentionally not unified.
func NormalizeUsernameStrict(raw string) string {
	return usernameStripPattern.ReplaceAllString(strings.ToLower(raw), "")
}

// AvatarUpload is an image submitted with a profile form.
type AvatarUpload struct {
	Filename    string
	ContentType string
	Data        io.Reader
}

//go:generate mockery --name ProfileService --output ./mocks --outpkg mocks --case=underscore
type ProfileService interface {
	// CompleteProfile claims an unclaimed profile: the single upsert writes
	// id, email, name, username, bio and avatar_url keyed by id.
	CompleteProfile(ctx context.Context, ident *model.Identity, req *model.CompleteProfileRequest, avatar *AvatarUpload) (*model.Profile, error)
	// UpdateProfile edits an already-claimed profile owned by identityID and
	// returns the freshly re-read row.
	UpdateProfile(ctx context.Context, identityID string, req *model.UpdateProfileRequest, avatar *AvatarUpload) (*model.Profile, error)
	// GetProfile loads a profile by identity id (edit-form prefill).
	GetProfile(ctx context.Context, id string) (*model.Profile, error)
	// GetProfilePage loads the public view for a username.
	GetProfilePage(ctx context.Context, username string) (*model.ProfilePage, error)
}

type profileService struct {
	db           *gorm.DB
	profileRepo  repository.ProfileRepository
	playlistRepo repository.PlaylistRepository
	media        storage.MediaStore
}

func NewProfileService(db *gorm.DB, profileRepo repository.ProfileRepository, playlistRepo repository.PlaylistRepository, media storage.MediaStore) ProfileService {
	return &profileService{
		db:           db,
		profileRepo:  profileRepo,
		playlistRepo: playlistRepo,
		media:        media,
	}
}

func (s *profileService) CompleteProfile(ctx context.Context, ident *model.Identity, req *model.CompleteProfileRequest, avatar *AvatarUpload) (*model.Profile, error) {
	logger := middleware.GetLogger(ctx)

	username := NormalizeUsernameLoose(req.Username)

	// Avatar first: an upload failure aborts the whole submission before any
	// profile write, so the prior unclaimed state stays intact.
	var avatarURL *string
	if avatar != nil {
		key := mediaKey(ident.ID, avatar.Filename, time.Now())
		if err := s.media.Upload(ctx, key, avatar.ContentType, avatar.Data); err != nil {
			logger.Error("Avatar upload failed during profile completion", "error", err, "identity_id", ident.ID)
			return nil, err
		}
		url := s.media.PublicURL(key)
		avatarURL = &url
	}

	profile := &model.Profile{
		ID:        ident.ID,
		Email:     ident.Email,
		Name:      &req.Name,
		Username:  &username,
		Bio:       optional(req.Bio),
		AvatarURL: avatarURL,
	}

	if err := s.profileRepo.Upsert(ctx, s.db, profile); err != nil {
		if errors.Is(err, model.ErrConflict) {
			return nil, model.NewAppError("USERNAME_TAKEN", "That username is already taken.", "username", model.ErrConflict)
		}
		logger.Error("Profile upsert failed", "error", err, "identity_id", ident.ID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Could not save your profile.", "", err)
	}

	logger.Info("Profile claimed", "identity_id", ident.ID, "username", username)
	return profile, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, identityID string, req *model.UpdateProfileRequest, avatar *AvatarUpload) (*model.Profile, error) {
	logger := middleware.GetLogger(ctx)

	username := NormalizeUsernameStrict(req.Username)
	if username == "" {
		return nil, model.NewAppError("INVALID_USERNAME", "Username must contain letters, numbers or underscores.", "username", model.ErrInvalidInput)
	}

	current, err := s.profileRepo.FindByID(ctx, s.db, identityID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("PROFILE_NOT_FOUND", "Profile not found.", "", model.ErrNotFound)
		}
		logger.Error("Profile load failed before update", "error", err, "identity_id", identityID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Could not load your profile.", "", err)
	}

	avatarURL := current.AvatarURL
	if avatar != nil {
		// Best-effort delete of the old object; a failure is logged inside
		// the store and never blocks the new upload.
		if current.AvatarURL != nil && *current.AvatarURL != "" {
			if oldKey := trailingSegment(*current.AvatarURL); oldKey != "" {
				_ = s.media.Delete(ctx, oldKey)
			}
		}

		key := mediaKey(identityID, avatar.Filename, time.Now())
		if err := s.media.Upload(ctx, key, avatar.ContentType, avatar.Data); err != nil {
			logger.Error("Avatar upload failed during profile update", "error", err, "identity_id", identityID)
			return nil, err
		}
		url := s.media.PublicURL(key)
		avatarURL = &url
	}

	fields := map[string]any{
		"name":       req.Name,
		"username":   username,
		"bio":        optional(req.Bio),
		"avatar_url": avatarURL,
		"updated_at": time.Now(),
	}

	if err := s.profileRepo.Update(ctx, s.db, identityID, fields); err != nil {
		if errors.Is(err, model.ErrConflict) {
			return nil, model.NewAppError("USERNAME_TAKEN", "That username is already taken.", "username", model.ErrConflict)
		}
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("PROFILE_NOT_FOUND", "Profile not found.", "", model.ErrNotFound)
		}
		logger.Error("Profile update failed", "error", err, "identity_id", identityID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Could not save your profile.", "", err)
	}

	// Full reload, not an in-place merge: callers render what the store holds.
	updated, err := s.profileRepo.FindByID(ctx, s.db, identityID)
	if err != nil {
		logger.Error("Profile reload failed after update", "error", err, "identity_id", identityID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Could not reload your profile.", "", err)
	}

	logger.Info("Profile updated", "identity_id", identityID, "username", username)
	return updated, nil
}

func (s *profileService) GetProfile(ctx context.Context, id string) (*model.Profile, error) {
	profile, err := s.profileRepo.FindByID(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("PROFILE_NOT_FOUND", "Profile not found.", "", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Could not load the profile.", "", err)
	}
	return profile, nil
}

func (s *profileService) GetProfilePage(ctx context.Context, username string) (*model.ProfilePage, error) {
	logger := middleware.GetLogger(ctx)

	profile, err := s.profileRepo.FindByUsername(ctx, s.db, username)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("PROFILE_NOT_FOUND", "No profile with that username.", "", model.ErrNotFound)
		}
		logger.Error("Profile lookup failed for public page", "error", err, "username", username)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Could not load the profile.", "", err)
	}

	playlists, err := s.playlistRepo.ListByUserID(ctx, s.db, profile.ID)
	if err != nil {
		// The page renders without playlists rather than failing outright.
		logger.Error("Playlist listing failed for public page", "error", err, "profile_id", profile.ID)
		playlists = []*model.Playlist{}
	}

	return &model.ProfilePage{
		Profile:   model.NewProfileResponse(profile),
		Playlists: playlists,
	}, nil
}

// mediaKey derives the media object name: {identity_id}-{upload_timestamp}.{ext}.
func mediaKey(identityID, filename string, now time.Time) string {
	return fmt.Sprintf("%s-%d%s", identityID, now.UnixMilli(), path.Ext(filename))
}

// trailingSegment extracts the object key from a public URL.
func trailingSegment(url string) string {
	if idx := strings.LastIndex(url, "/"); idx >= 0 {
		return url[idx+1:]
	}
	return url
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
