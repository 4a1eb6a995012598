// Package httpx holds the JSON and file response helpers shared by controllers and middleware.
package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"tabloide-mp/authz"
	"tabloide-mp/models"
)

// ErrorBody is the JSON body of every error response
type ErrorBody struct {
	Field string `json:"field,omitempty"`
	Error string `json:"error"`
}

// JSON writes v with the given status
func JSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("❌ Error encoding response")
	}
}

// Message writes a plain error message
func Message(ctx context.Context, w http.ResponseWriter, status int, msg string) {
	JSON(ctx, w, status, ErrorBody{Error: msg})
}

// Status maps a service error to its HTTP status.
// ValidationError is checked first because it may wrap ErrNotFound.
func Status(err error) int {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, authz.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, authz.ErrForbidden):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// Error writes err as a JSON error response. Internal errors are logged and hidden.
func Error(ctx context.Context, w http.ResponseWriter, err error) {
	status := Status(err)
	body := ErrorBody{Error: err.Error()}

	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		body = ErrorBody{Field: verr.Field, Error: verr.Message}
	case status == http.StatusNotFound:
		body.Error = "not found"
	case status == http.StatusInternalServerError:
		log.Ctx(ctx).Error().Err(err).Msg("❌ Request failed")
		body.Error = "internal server error"
	}
	JSON(ctx, w, status, body)
}

// File writes a rendered file. inline controls whether browsers display it or download it.
func File(ctx context.Context, w http.ResponseWriter, contentType, fileName string, data []byte, inline bool) {
	disposition := "attachment"
	if inline {
		disposition = "inline"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, fileName))
	w.Header().Set("Content-Length", fmt.Sprint(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("file", fileName).Msg("❌ Error writing file response")
	}
}
