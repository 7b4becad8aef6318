// Package httpjson writes the API's uniform response envelope:
// {success, data?, message, errors?}.
package httpjson

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	apperrors "vincula/internal/errors"
)

type Envelope struct {
	Success bool              `json:"success"`
	Data    any               `json:"data,omitempty"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func WriteSuccess(w http.ResponseWriter, logger *zap.Logger, status int, message string, data any) {
	write(w, logger, status, Envelope{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// WriteError maps the error taxonomy to HTTP status codes:
// validation/insufficient stock 422, not found 404, forbidden 403,
// unauthorized 401, conflict/deadlock 409, anything else 500.
func WriteError(w http.ResponseWriter, logger *zap.Logger, err error) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		fields := make(map[string]string, len(ve.Details))
		for _, d := range ve.Details {
			fields[d.Field] = d.Message
		}
		write(w, logger, http.StatusUnprocessableEntity, Envelope{
			Success: false,
			Message: ve.Message,
			Errors:  fields,
		})
		return
	}

	if ise, ok := apperrors.IsInsufficientStockError(err); ok {
		write(w, logger, http.StatusUnprocessableEntity, Envelope{
			Success: false,
			Message: ise.Message,
			Errors:  map[string]string{"quantity": ise.Message},
		})
		return
	}

	if nf, ok := apperrors.IsNotFoundError(err); ok {
		write(w, logger, http.StatusNotFound, Envelope{Success: false, Message: nf.Message})
		return
	}

	if fe, ok := apperrors.IsForbiddenError(err); ok {
		write(w, logger, http.StatusForbidden, Envelope{Success: false, Message: fe.Message})
		return
	}

	if ue, ok := apperrors.IsUnauthorizedError(err); ok {
		write(w, logger, http.StatusUnauthorized, Envelope{Success: false, Message: ue.Message})
		return
	}

	if ce, ok := apperrors.IsConflictError(err); ok {
		write(w, logger, http.StatusConflict, Envelope{Success: false, Message: ce.Message})
		return
	}

	if de, ok := apperrors.IsDeadlockError(err); ok {
		write(w, logger, http.StatusConflict, Envelope{Success: false, Message: de.Message})
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	write(w, logger, http.StatusInternalServerError, Envelope{
		Success: false,
		Message: "an unexpected error occurred",
	})
}

func write(w http.ResponseWriter, logger *zap.Logger, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}
