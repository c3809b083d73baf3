package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"invoicing-dashboard-backend/internal/models"
)

// handleError maps service errors to HTTP responses
func handleError(w http.ResponseWriter, err error, logger *slog.Logger) {
	// Field-level validation failures carry their messages to the form
	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		respondJSON(w, http.StatusBadRequest, ValidationResponse{
			Errors:  validationErr.FieldErrors,
			Message: validationErr.Message,
		})
		return
	}

	// Storage failures surface only their prepared message; the cause was
	// already logged where it happened
	var persistenceErr *models.PersistenceError
	if errors.As(err, &persistenceErr) {
		respondMessage(w, http.StatusInternalServerError, persistenceErr.Message)
		return
	}

	switch {
	case errors.Is(err, models.ErrNotFound):
		respondError(w, http.StatusNotFound, "NOT_FOUND", err.Error())

	default:
		// Log internal errors but don't expose details to client
		logger.Error("internal server error",
			slog.String("error", err.Error()),
		)
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
	}
}
