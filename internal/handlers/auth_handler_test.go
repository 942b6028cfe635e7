package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"spotfolio/internal/handlers"
	"spotfolio/internal/model"
	"spotfolio/internal/service/mocks"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAuthHandler_Callback(t *testing.T) {
	tests := []struct {
		name         string
		target       string
		setupMock    func(accountService *mocks.AccountService)
		wantLocation string
	}{
		{
			name:   "claimed identity lands on the public profile",
			target: "/auth/callback?code=abc",
			setupMock: func(accountService *mocks.AccountService) {
				accountService.On("HandleCallback", mock.Anything, "abc").
					Return("/janedoe").Once()
			},
			wantLocation: "/janedoe",
		},
		{
			name:   "unclaimed identity lands on the completion form",
			target: "/auth/callback?code=abc",
			setupMock: func(accountService *mocks.AccountService) {
				accountService.On("HandleCallback", mock.Anything, "abc").
					Return("/create-account").Once()
			},
			wantLocation: "/create-account",
		},
		{
			name:   "missing code falls back to login",
			target: "/auth/callback",
			setupMock: func(accountService *mocks.AccountService) {
				accountService.On("HandleCallback", mock.Anything, "").
					Return("/login").Once()
			},
			wantLocation: "/login",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			accountService := new(mocks.AccountService)
			tc.setupMock(accountService)

			authHandler := handlers.NewAuthHandler(accountService)
			router := chi.NewRouter()
			router.Get("/auth/callback", authHandler.Callback)

			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusSeeOther, rr.Code)
			assert.Equal(t, tc.wantLocation, rr.Header().Get("Location"))
			accountService.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_ResendConfirmation(t *testing.T) {
	t.Run("forwards the session token", func(t *testing.T) {
		accountService := new(mocks.AccountService)
		accountService.On("ResendConfirmation", mock.Anything, "token-1").Return(nil).Once()

		authHandler := handlers.NewAuthHandler(accountService)
		router := chi.NewRouter()
		router.Use(withSession("identity-1", "token-1"))
		router.Post("/api/auth/resend", authHandler.ResendConfirmation)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/resend", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		accountService.AssertExpectations(t)
	})

	t.Run("provider failure maps through the error envelope", func(t *testing.T) {
		accountService := new(mocks.AccountService)
		accountService.On("ResendConfirmation", mock.Anything, "token-1").
			Return(model.NewAppError("RESEND_FAILED", "Could not send the confirmation email.", "", model.ErrInternalServer)).Once()

		authHandler := handlers.NewAuthHandler(accountService)
		router := chi.NewRouter()
		router.Use(withSession("identity-1", "token-1"))
		router.Post("/api/auth/resend", authHandler.ResendConfirmation)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/resend", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		errResp := decodeErrorBody(t, rr.Body)
		assert.Equal(t, "RESEND_FAILED", errResp.Error.Code)
	})
}

func TestAuthHandler_SignOut(t *testing.T) {
	accountService := new(mocks.AccountService)
	accountService.On("SignOut", mock.Anything, "token-1").Return(nil).Once()

	authHandler := handlers.NewAuthHandler(accountService)
	router := chi.NewRouter()
	router.Use(withSession("identity-1", "token-1"))
	router.Post("/api/auth/signout", authHandler.SignOut)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signout", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	accountService.AssertExpectations(t)
}
