package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"catalog-api/internal/apperror"
	"catalog-api/internal/logger"
	"catalog-api/internal/model"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError is the single place domain errors become HTTP responses.
// Internal errors are logged and answered without detail.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	var appErr apperror.AppError
	if errors.As(err, &appErr) && appErr.HTTPStatus() != http.StatusInternalServerError {
		writeJSON(w, appErr.HTTPStatus(), model.ErrorResponse{
			Code:     appErr.HTTPStatus(),
			Category: appErr.Category(),
			Message:  appErr.Error(),
		})
		return
	}

	logger.Error(ctx, "Unhandled error", slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{
		Code:     http.StatusInternalServerError,
		Category: "INTERNAL_ERROR",
		Message:  "unexpected error",
	})
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperror.NewValidationError("invalid request payload")
	}
	return nil
}
