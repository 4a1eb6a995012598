package controller

import (
	"net/http"

	"tabloide-mp/app/httpx"
	"tabloide-mp/authz"
	"tabloide-mp/models"
	"tabloide-mp/service"
)

// TemplateController handles HTTP requests for flyer templates
type TemplateController struct {
	templates *service.TemplateService
}

// NewTemplateController creates a new TemplateController
func NewTemplateController(templates *service.TemplateService) *TemplateController {
	return &TemplateController{templates: templates}
}

// List handles GET /tabloide/templates
func (c *TemplateController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	list, err := c.templates.List(ctx, authz.ActorFromContext(ctx))
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	httpx.JSON(ctx, w, http.StatusOK, list)
}

// Create handles POST /tabloide/templates
func (c *TemplateController) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req := models.TemplateRequest{Columns: models.DefaultColumns, Rows: models.DefaultRows, PrimaryColor: models.DefaultColor}
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	t, err := c.templates.Create(ctx, authz.ActorFromContext(ctx), req)
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	httpx.JSON(ctx, w, http.StatusCreated, t)
}

// Get handles GET /tabloide/templates/{id}, returning placements and the preview grid
func (c *TemplateController) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r, "id")
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	detail, err := c.templates.Detail(ctx, authz.ActorFromContext(ctx), id)
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	httpx.JSON(ctx, w, http.StatusOK, detail)
}

// Update handles PUT /tabloide/templates/{id}
func (c *TemplateController) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r, "id")
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	var req models.TemplateRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	t, err := c.templates.Update(ctx, authz.ActorFromContext(ctx), id, req)
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	httpx.JSON(ctx, w, http.StatusOK, t)
}

// Delete handles DELETE /tabloide/templates/{id}
func (c *TemplateController) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r, "id")
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	if err := c.templates.Delete(ctx, authz.ActorFromContext(ctx), id); err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadBackground handles PUT /tabloide/templates/{id}/background (multipart field "imagem_fundo")
func (c *TemplateController) UploadBackground(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r, "id")
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	_, data, err := readUpload(r, "imagem_fundo")
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	t, err := c.templates.SetBackground(ctx, authz.ActorFromContext(ctx), id, data)
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	httpx.JSON(ctx, w, http.StatusOK, t)
}
