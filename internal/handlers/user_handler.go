package handlers

import (
	"errors"
	"net/http"

	"spotfolio/internal/middleware"
	"spotfolio/internal/model"
	"spotfolio/internal/service"
	"spotfolio/internal/webutil"

	"github.com/go-playground/validator/v10"
)

// UserHandler serves the legacy /api/user routes.
type UserHandler struct {
	service service.UserService
}

func NewUserHandler(s service.UserService) *UserHandler {
	return &UserHandler{service: s}
}

// CreateUser handles the legacy POST /api/user.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.CreateUserRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode user request body", "error", err)
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "Name and username are required.", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			webutil.HandleError(w, logger, webutil.NewValidationErrorResponse(validationErrors))
		} else {
			webutil.HandleError(w, logger, err)
		}
		return
	}

	user, err := h.service.CreateUser(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusCreated, user)
}

// GetUser handles the legacy GET /api/user: the first user's name.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	user, err := h.service.GetFirstUser(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{"name": user.Name})
}
