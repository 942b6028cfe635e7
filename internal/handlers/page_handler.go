package handlers

import (
	"net/http"

	"spotfolio/internal/middleware"
	"spotfolio/internal/service"
	"spotfolio/internal/webutil"

	"github.com/go-chi/chi/v5"
)

// PageHandler serves the public profile view.
type PageHandler struct {
	profiles service.ProfileService
}

func NewPageHandler(profiles service.ProfileService) *PageHandler {
	return &PageHandler{profiles: profiles}
}

// GetProfilePage returns the public profile and its playlists for
// GET /{username}. An unknown username is a 404, never an error page.
func (h *PageHandler) GetProfilePage(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	username := chi.URLParam(r, "username")
	page, err := h.profiles.GetProfilePage(r.Context(), username)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, page)
}
