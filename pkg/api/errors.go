package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dj/customer-service/pkg/services"
)

// httpError is an error already mapped to a status and a client-safe message.
type httpError struct {
	Code    int
	Message string
}

func (e *httpError) Error() string {
	return e.Message
}

func newHTTPError(code int, message string) *httpError {
	return &httpError{Code: code, Message: message}
}

// mapServiceError maps service-layer errors to HTTP error responses.
func mapServiceError(ctx context.Context, err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}
	var validErr *services.ValidationError
	if errors.As(err, &validErr) {
		return newHTTPError(http.StatusBadRequest, validErr.Error())
	}
	if errors.Is(err, services.ErrNotFound) {
		return newHTTPError(http.StatusNotFound, "resource not found")
	}
	if errors.Is(err, services.ErrAlreadyExists) {
		return newHTTPError(http.StatusConflict, "resource already exists")
	}

	// Unexpected error
	slog.ErrorContext(ctx, "Unexpected service error", "error", err)
	return newHTTPError(http.StatusInternalServerError, "internal server error")
}
