package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"campus-auth/internal/model"
	"campus-auth/pkg/apierror"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps classified errors to their status and surfaces the message
// verbatim. Anything unclassified is logged server-side and returned as a
// generic 500 so internal detail never crosses the boundary.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	var apiErr *apierror.APIError
	var missingField *model.MissingProfileFieldError

	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatus
		message = apiErr.Message
	case errors.As(err, &missingField):
		status = http.StatusBadRequest
		message = missingField.Error()
	case errors.Is(err, model.ErrDuplicateUser),
		errors.Is(err, model.ErrMissingPassword):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, model.ErrInvalidCredentials),
		errors.Is(err, model.ErrDeviceMismatch),
		errors.Is(err, model.ErrTokenExpired),
		errors.Is(err, model.ErrTokenInvalidSignature),
		errors.Is(err, model.ErrTokenTypeMismatch),
		errors.Is(err, model.ErrRefreshTokenRevoked),
		errors.Is(err, model.ErrUnauthorized):
		status = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, model.ErrForbidden):
		status = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, model.ErrUserNotFound):
		status = http.StatusNotFound
		message = err.Error()
	default:
		slog.Error("unhandled error in writeError", "error", err.Error())
	}

	writeJSON(w, status, errorResponse{Error: message})
}
