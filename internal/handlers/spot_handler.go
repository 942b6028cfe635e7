package handlers

import (
	"net/http"

	"spotfolio/internal/middleware"
	"spotfolio/internal/model"
	"spotfolio/internal/service"
	"spotfolio/internal/webutil"
)

type SpotHandler struct {
	service service.SpotService
}

func NewSpotHandler(s service.SpotService) *SpotHandler {
	return &SpotHandler{service: s}
}

// SearchSpots handles GET /api/spots/search. 400 only when the query
// parameter is entirely absent; an empty string is forwarded upstream.
func (h *SpotHandler) SearchSpots(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	query := r.URL.Query()
	if !query.Has("query") {
		appErr := model.NewAppError("MISSING_QUERY", "Query parameter is required.", "query", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	spots, err := h.service.Search(r.Context(), query.Get("query"))
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, model.SpotSearchResponse{Places: spots})
}
