// internal/api/handler/response.go
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"mybudget/internal/api/types"
	"mybudget/internal/util"
)

// DefaultTimeout bounds each request, including any wait for an envelope lock.
const DefaultTimeout = 30 * time.Second

// retryAfterSeconds is advertised on lock contention responses.
const retryAfterSeconds = "1"

func respondWithJSON(w http.ResponseWriter, logger *slog.Logger, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithError maps the util error categories onto status codes.
func respondWithError(w http.ResponseWriter, logger *slog.Logger, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	var validationErr *util.ValidationError
	var notFoundErr *util.NotFoundError
	var fundsErr *util.InsufficientFundsError

	switch {
	case errors.As(err, &validationErr):
		statusCode = http.StatusBadRequest
		message = validationErr.Error()
	case util.IsError(err, util.ErrValidation):
		statusCode = http.StatusBadRequest
		message = util.ErrValidation.Error()
	case errors.As(err, &fundsErr):
		statusCode = http.StatusBadRequest
		message = fundsErr.Error()
	case errors.As(err, &notFoundErr):
		statusCode = http.StatusNotFound
		message = notFoundErr.Error()
	case util.IsError(err, util.ErrNotFound):
		statusCode = http.StatusNotFound
		message = util.ErrNotFound.Error()
	case util.IsError(err, util.ErrConflictTimeout), errors.Is(err, context.DeadlineExceeded):
		statusCode = http.StatusServiceUnavailable
		message = util.ErrConflictTimeout.Error()
		w.Header().Set("Retry-After", retryAfterSeconds)
		logger.Warn("Lock contention", "error", err)
	default:
		logger.Error("Unhandled service error", "error", err)
	}

	respondWithJSON(w, logger, statusCode, types.ErrorResponse{Error: message})
}

// decodeJSON reads a request body into dst. An empty body leaves dst untouched.
func decodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return util.NewValidationError("", "invalid request body: "+err.Error())
}
