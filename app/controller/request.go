package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"tabloide-mp/models"
)

// maxUploadSize bounds multipart uploads (price tables and images)
const maxUploadSize = 32 << 20

// pathID reads a positive integer URL parameter
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, models.NewValidationError(name, nil, "must be a positive integer")
	}
	return id, nil
}

// decodeJSON decodes the request body into v, rejecting unknown fields
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return models.NewValidationError("", err, "Invalid request body: %v", err)
	}
	return nil
}

// queryPage reads ?page=, defaulting to 1
func queryPage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// queryTemplateID reads ?template=. Missing or invalid ids yield nil, which selects the first template.
func queryTemplateID(r *http.Request) *int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(r.URL.Query().Get("template")), 10, 64)
	if err != nil || id <= 0 {
		return nil
	}
	return &id
}

// readUpload returns the name and content of a multipart file field
func readUpload(r *http.Request, field string) (string, []byte, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxUploadSize+1<<20)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return "", nil, models.NewValidationError(field, err, "file is larger than %d MB", maxUploadSize>>20)
		}
		return "", nil, models.NewValidationError(field, err, "expected a multipart form upload")
	}
	file, header, err := r.FormFile(field)
	if err != nil {
		return "", nil, models.NewValidationError(field, err, "is required")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read upload: %w", err)
	}
	return header.Filename, data, nil
}
