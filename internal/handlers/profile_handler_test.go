package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"spotfolio/internal/handlers"
	"spotfolio/internal/model"
	"spotfolio/internal/service"
	"spotfolio/internal/service/mocks"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func newProfileRouter(accountService *mocks.AccountService, profileService *mocks.ProfileService) *chi.Mux {
	profileHandler := handlers.NewProfileHandler(accountService, profileService)
	router := chi.NewRouter()
	router.Use(withSession("identity-1", "token-1"))
	router.Post("/api/profile", profileHandler.CompleteProfile)
	router.Put("/api/profile", profileHandler.UpdateProfile)
	router.Get("/api/profile", profileHandler.GetMyProfile)
	return router
}

func TestProfileHandler_CompleteProfile(t *testing.T) {
	ident := &model.Identity{ID: "identity-1", Email: "user@example.com"}

	t.Run("claims the profile and points at the new page", func(t *testing.T) {
		accountService := new(mocks.AccountService)
		profileService := new(mocks.ProfileService)

		accountService.On("GetIdentity", mock.Anything, "token-1").Return(ident, nil).Once()
		claimed := &model.Profile{ID: ident.ID, Email: ident.Email, Name: strPtr("Jane"), Username: strPtr("janedoe")}
		profileService.On("CompleteProfile", mock.Anything, ident,
			&model.CompleteProfileRequest{Name: "Jane", Username: "JaneDoe", Bio: "hello"},
			mock.AnythingOfType("*service.AvatarUpload")).
			Return(claimed, nil).Once()

		body, contentType := multipartProfileForm(t, map[string]string{
			"name": "Jane", "username": "JaneDoe", "bio": "hello",
		}, "me.png")
		req := httptest.NewRequest(http.MethodPost, "/api/profile", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()
		newProfileRouter(accountService, profileService).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp struct {
			Profile  *model.ProfileResponse `json:"profile"`
			Location string                 `json:"location"`
		}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, "/janedoe", resp.Location)
		assert.Equal(t, "janedoe", *resp.Profile.Username)
		accountService.AssertExpectations(t)
		profileService.AssertExpectations(t)
	})

	t.Run("unresolvable identity never reaches the service", func(t *testing.T) {
		accountService := new(mocks.AccountService)
		profileService := new(mocks.ProfileService)
		accountService.On("GetIdentity", mock.Anything, "token-1").
			Return(nil, model.NewAppError("AUTH_USER_FETCH_FAILED", "Could not load the signed-in user.", "", model.ErrUnauthorized)).Once()

		body, contentType := multipartProfileForm(t, map[string]string{"name": "Jane", "username": "janedoe"}, "")
		req := httptest.NewRequest(http.MethodPost, "/api/profile", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()
		newProfileRouter(accountService, profileService).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		profileService.AssertNotCalled(t, "CompleteProfile", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("over-long bio fails validation", func(t *testing.T) {
		accountService := new(mocks.AccountService)
		profileService := new(mocks.ProfileService)
		accountService.On("GetIdentity", mock.Anything, "token-1").Return(ident, nil).Once()

		body, contentType := multipartProfileForm(t, map[string]string{
			"name": "Jane", "username": "janedoe", "bio": strings.Repeat("x", 151),
		}, "")
		req := httptest.NewRequest(http.MethodPost, "/api/profile", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()
		newProfileRouter(accountService, profileService).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		errResp := decodeErrorBody(t, rr.Body)
		assert.Equal(t, "VALIDATION_ERROR", errResp.Error.Code)
		profileService.AssertNotCalled(t, "CompleteProfile", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("taken username is a 409 the form can recover from", func(t *testing.T) {
		accountService := new(mocks.AccountService)
		profileService := new(mocks.ProfileService)
		accountService.On("GetIdentity", mock.Anything, "token-1").Return(ident, nil).Once()
		profileService.On("CompleteProfile", mock.Anything, ident, mock.Anything, mock.Anything).
			Return(nil, model.NewAppError("USERNAME_TAKEN", "That username is already taken.", "username", model.ErrConflict)).Once()

		body, contentType := multipartProfileForm(t, map[string]string{"name": "Jane", "username": "janedoe"}, "")
		req := httptest.NewRequest(http.MethodPost, "/api/profile", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()
		newProfileRouter(accountService, profileService).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
		errResp := decodeErrorBody(t, rr.Body)
		assert.Equal(t, "USERNAME_TAKEN", errResp.Error.Code)
		assert.Equal(t, "username", errResp.Error.Field)
	})

	t.Run("non-multipart body is rejected", func(t *testing.T) {
		accountService := new(mocks.AccountService)
		profileService := new(mocks.ProfileService)
		accountService.On("GetIdentity", mock.Anything, "token-1").Return(ident, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/profile", strings.NewReader(`{"name":"Jane"}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		newProfileRouter(accountService, profileService).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestProfileHandler_UpdateProfile(t *testing.T) {
	t.Run("updates and returns the stored profile", func(t *testing.T) {
		accountService := new(mocks.AccountService)
		profileService := new(mocks.ProfileService)

		updated := &model.Profile{ID: "identity-1", Email: "user@example.com", Name: strPtr("Jane"), Username: strPtr("janedoe")}
		profileService.On("UpdateProfile", mock.Anything, "identity-1",
			&model.UpdateProfileRequest{Name: "Jane", Username: "Jane Doe!", Bio: ""},
			(*service.AvatarUpload)(nil)).
			Return(updated, nil).Once()

		body, contentType := multipartProfileForm(t, map[string]string{"name": "Jane", "username": "Jane Doe!"}, "")
		req := httptest.NewRequest(http.MethodPut, "/api/profile", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()
		newProfileRouter(accountService, profileService).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp struct {
			Profile  *model.ProfileResponse `json:"profile"`
			Location string                 `json:"location"`
		}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, "/janedoe", resp.Location)
		profileService.AssertExpectations(t)
	})

	t.Run("missing profile is a 404", func(t *testing.T) {
		accountService := new(mocks.AccountService)
		profileService := new(mocks.ProfileService)
		profileService.On("UpdateProfile", mock.Anything, "identity-1", mock.Anything, mock.Anything).
			Return(nil, model.NewAppError("PROFILE_NOT_FOUND", "Profile not found.", "", model.ErrNotFound)).Once()

		body, contentType := multipartProfileForm(t, map[string]string{"name": "Jane", "username": "janedoe"}, "")
		req := httptest.NewRequest(http.MethodPut, "/api/profile", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()
		newProfileRouter(accountService, profileService).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestProfileHandler_GetMyProfile(t *testing.T) {
	accountService := new(mocks.AccountService)
	profileService := new(mocks.ProfileService)

	profile := &model.Profile{ID: "identity-1", Email: "user@example.com", Username: strPtr("janedoe")}
	profileService.On("GetProfile", mock.Anything, "identity-1").Return(profile, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	rr := httptest.NewRecorder()
	newProfileRouter(accountService, profileService).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp model.ProfileResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "janedoe", *resp.Username)
	profileService.AssertExpectations(t)
}
