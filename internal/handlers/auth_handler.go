// Package handlers contains the chi HTTP handlers. Handlers decode and
// validate requests, delegate to the service layer and shape responses;
// they hold no business logic of their own.
package handlers

import (
	"net/http"

	"spotfolio/internal/middleware"
	"spotfolio/internal/service"
	"spotfolio/internal/webutil"
)

type AuthHandler struct {
	service service.AccountService
}

func NewAuthHandler(s service.AccountService) *AuthHandler {
	return &AuthHandler{service: s}
}

// Callback handles the identity provider's redirect after authentication.
// The response is always a redirect: to the public profile, the completion
// form, or back to login on any failure.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	dest := h.service.HandleCallback(r.Context(), code)
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

// ResendConfirmation proxies the provider's re-send of the sign-up email.
// Side affordance for unconfirmed identities; it never gates claiming.
func (h *AuthHandler) ResendConfirmation(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	accessToken, err := middleware.GetAccessTokenFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if err := h.service.ResendConfirmation(r.Context(), accessToken); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Confirmation email sent. Check your inbox.",
	})
}

// SignOut revokes the current session at the provider.
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	accessToken, err := middleware.GetAccessTokenFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if err := h.service.SignOut(r.Context(), accessToken); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Signed out."})
}
