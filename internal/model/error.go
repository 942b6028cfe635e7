package model

import "errors"

// Application-level sentinel errors. Repositories and clients translate
// driver/provider failures into these so the HTTP layer can map them
// to status codes without knowing the underlying stack.
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInternalServer = errors.New("internal server error")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrConflict       = errors.New("resource conflict")
)

// ErrorDetail is the error payload shape returned to clients.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// APIErrorResponse wraps ErrorDetail for JSON error responses.
type APIErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// AppError carries a machine-readable code, a user-facing message and an
// optional field name, wrapping one of the sentinel errors above.
type AppError struct {
	Detail ErrorDetail
	Err    error
}

func NewAppError(code, message, field string, err error) *AppError {
	return &AppError{
		Detail: ErrorDetail{Code: code, Message: message, Field: field},
		Err:    err,
	}
}

func (e *AppError) Error() string {
	return e.Detail.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}
