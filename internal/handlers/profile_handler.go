package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"spotfolio/internal/middleware"
	"spotfolio/internal/model"
	"spotfolio/internal/service"
	"spotfolio/internal/webutil"

	"github.com/go-playground/validator/v10"
)

// maxAvatarFormMemory caps the in-memory portion of multipart parsing.
const maxAvatarFormMemory = 8 << 20

type ProfileHandler struct {
	accounts service.AccountService
	profiles service.ProfileService
}

func NewProfileHandler(accounts service.AccountService, profiles service.ProfileService) *ProfileHandler {
	return &ProfileHandler{accounts: accounts, profiles: profiles}
}

// profileForm is the decoded multipart submission shared by the completion
// and edit forms.
type profileForm struct {
	Name     string
	Username string
	Bio      string
	Avatar   *service.AvatarUpload
	file     multipart.File
}

func (f *profileForm) Close() {
	if f.file != nil {
		f.file.Close()
	}
}

func parseProfileForm(r *http.Request) (*profileForm, error) {
	if err := r.ParseMultipartForm(maxAvatarFormMemory); err != nil {
		return nil, model.NewAppError("INVALID_REQUEST_BODY", "Expected a multipart form submission.", "", model.ErrInvalidInput)
	}

	form := &profileForm{
		Name:     r.FormValue("name"),
		Username: r.FormValue("username"),
		Bio:      r.FormValue("bio"),
	}

	file, header, err := r.FormFile("avatar")
	switch {
	case err == nil:
		form.file = file
		form.Avatar = &service.AvatarUpload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        file,
		}
	case errors.Is(err, http.ErrMissingFile):
		// Avatar is optional.
	default:
		return nil, model.NewAppError("INVALID_REQUEST_BODY", "Could not read the uploaded image.", "avatar", model.ErrInvalidInput)
	}

	return form, nil
}

// CompleteProfile is the first-time claim: it collects name, username,
// optional bio and avatar from a freshly authenticated identity and writes
// the claimed profile in one upsert.
func (h *ProfileHandler) CompleteProfile(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	accessToken, err := middleware.GetAccessTokenFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	// The session guard: without a resolvable identity the form never proceeds.
	ident, err := h.accounts.GetIdentity(r.Context(), accessToken)
	if err != nil {
		logger.Warn("Profile completion without a valid identity", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	form, err := parseProfileForm(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	defer form.Close()

	req := &model.CompleteProfileRequest{
		Name:     form.Name,
		Username: form.Username,
		Bio:      form.Bio,
	}
	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed for profile completion", "errors", validationErrors.Error())
			webutil.HandleError(w, logger, webutil.NewValidationErrorResponse(validationErrors))
		} else {
			webutil.HandleError(w, logger, err)
		}
		return
	}

	profile, err := h.profiles.CompleteProfile(r.Context(), ident, req, form.Avatar)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, map[string]any{
		"profile":  model.NewProfileResponse(profile),
		"location": "/" + *profile.Username,
	})
}

// UpdateProfile edits the signed-in identity's claimed profile. The update
// statement is scoped to that identity's id; there is no cross-user path.
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	identityID, err := middleware.GetIdentityIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	form, err := parseProfileForm(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	defer form.Close()

	req := &model.UpdateProfileRequest{
		Name:     form.Name,
		Username: form.Username,
		Bio:      form.Bio,
	}
	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed for profile update", "errors", validationErrors.Error())
			webutil.HandleError(w, logger, webutil.NewValidationErrorResponse(validationErrors))
		} else {
			webutil.HandleError(w, logger, err)
		}
		return
	}

	profile, err := h.profiles.UpdateProfile(r.Context(), identityID, req, form.Avatar)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, map[string]any{
		"profile":  model.NewProfileResponse(profile),
		"location": "/" + *profile.Username,
	})
}

// GetMyProfile returns the signed-in identity's own profile (edit prefill).
func (h *ProfileHandler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	identityID, err := middleware.GetIdentityIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	profile, err := h.profiles.GetProfile(r.Context(), identityID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, model.NewProfileResponse(profile))
}
