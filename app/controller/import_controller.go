package controller

import (
	"bytes"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"tabloide-mp/app/httpx"
	"tabloide-mp/authz"
	"tabloide-mp/models"
	"tabloide-mp/service"
)

// ImportController handles price table uploads
type ImportController struct {
	imports *service.ImportService
}

// NewImportController creates a new ImportController
func NewImportController(imports *service.ImportService) *ImportController {
	return &ImportController{imports: imports}
}

// Upload handles POST /importacao (multipart field "arquivo").
// A file that could not be applied still answers 201 with processed=false and the error.
func (c *ImportController) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor := authz.ActorFromContext(ctx)
	// Check before reading the upload so anonymous callers do not get to send 32MB
	if err := authz.Check(actor, authz.ImportPrices, authz.Any); err != nil {
		httpx.Error(ctx, w, err)
		return
	}

	name, data, err := readUpload(r, "arquivo")
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}

	imp, err := c.imports.Import(ctx, actor, name, bytes.NewReader(data))
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	httpx.JSON(ctx, w, http.StatusCreated, imp)
}

// List handles GET /importacao
func (c *ImportController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	list, err := c.imports.List(ctx, authz.ActorFromContext(ctx))
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	httpx.JSON(ctx, w, http.StatusOK, list)
}

// Get handles GET /importacao/{id}
func (c *ImportController) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(ctx, w, models.NewValidationError("id", err, "must be a valid UUID"))
		return
	}
	imp, err := c.imports.Get(ctx, authz.ActorFromContext(ctx), id)
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	httpx.JSON(ctx, w, http.StatusOK, imp)
}
