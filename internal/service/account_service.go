package service

import (
	"context"
	"errors"

	"spotfolio/internal/identity"
	"spotfolio/internal/middleware"
	"spotfolio/internal/model"
	"spotfolio/internal/repository"

	"gorm.io/gorm"
)

// Redirect targets for the claim workflow.
const (
	pathLogin         = "/login"
	pathCreateAccount = "/create-account"
)

//go:generate mockery --name AccountService --output ./mocks --outpkg mocks --case=underscore
type AccountService interface {
	// HandleCallback runs the account-claim workflow for an auth redirect and
	// returns the path the user should land on. Failures are terminal for the
	// request: they are logged and answered with the login path, never retried.
	HandleCallback(ctx context.Context, code string) string
	// GetIdentity resolves the identity behind an access token.
	GetIdentity(ctx context.Context, accessToken string) (*model.Identity, error)
	// ResendConfirmation asks the provider to re-send the sign-up email for
	// the identity behind the token. Has no effect on the claim flow.
	ResendConfirmation(ctx context.Context, accessToken string) error
	// SignOut revokes the session behind the token.
	SignOut(ctx context.Context, accessToken string) error
}

type accountService struct {
	db          *gorm.DB
	provider    identity.Provider
	profileRepo repository.ProfileRepository
}

func NewAccountService(db *gorm.DB, provider identity.Provider, profileRepo repository.ProfileRepository) AccountService {
	return &accountService{
		db:          db,
		provider:    provider,
		profileRepo: profileRepo,
	}
}

func (s *accountService) HandleCallback(ctx context.Context, code string) string {
	logger := middleware.GetLogger(ctx)

	if code == "" {
		logger.Warn("Auth callback without code")
		return pathLogin
	}

	session, err := s.provider.ExchangeCode(ctx, code)
	if err != nil {
		logger.Error("Session exchange failed", "error", err)
		return pathLogin
	}

	ident, err := s.provider.GetUser(ctx, session.AccessToken)
	if err != nil {
		logger.Error("Identity fetch failed after exchange", "error", err)
		return pathLogin
	}

	profile, err := s.profileRepo.FindByID(ctx, s.db, ident.ID)
	if err == nil && profile.Claimed() {
		// Already claimed: never touch the row, always land on the same page.
		return "/" + *profile.Username
	}
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		logger.Error("Profile lookup failed during callback", "error", err, "identity_id", ident.ID)
	}

	stub := &model.Profile{
		ID:    ident.ID,
		Email: ident.Email,
	}
	if name := ident.DisplayName(); name != "" {
		stub.Name = &name
	}
	if err := s.profileRepo.EnsureStub(ctx, s.db, stub); err != nil {
		// The completion form's upsert creates the row anyway; a failed stub
		// insert only costs the pre-filled email.
		logger.Error("Stub profile insert failed", "error", err, "identity_id", ident.ID)
	}

	return pathCreateAccount
}

func (s *accountService) GetIdentity(ctx context.Context, accessToken string) (*model.Identity, error) {
	return s.provider.GetUser(ctx, accessToken)
}

func (s *accountService) ResendConfirmation(ctx context.Context, accessToken string) error {
	logger := middleware.GetLogger(ctx)

	ident, err := s.provider.GetUser(ctx, accessToken)
	if err != nil {
		logger.Warn("Resend confirmation: identity fetch failed", "error", err)
		return err
	}
	if ident.Email == "" {
		return model.NewAppError("RESEND_FAILED", "The signed-in user has no email address.", "", model.ErrInvalidInput)
	}
	return s.provider.ResendConfirmation(ctx, ident.Email)
}

func (s *accountService) SignOut(ctx context.Context, accessToken string) error {
	return s.provider.SignOut(ctx, accessToken)
}
