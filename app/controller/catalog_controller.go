package controller

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"tabloide-mp/app/httpx"
	"tabloide-mp/authz"
	"tabloide-mp/models"
	"tabloide-mp/service"
)

// CatalogController handles HTTP requests for catalog items
type CatalogController struct {
	catalog *service.CatalogService
	export  *service.ExportService
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalog *service.CatalogService, export *service.ExportService) *CatalogController {
	return &CatalogController{catalog: catalog, export: export}
}

// List handles GET /produtos?page=
func (c *CatalogController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page, err := c.catalog.List(ctx, authz.ActorFromContext(ctx), queryPage(r))
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	httpx.JSON(ctx, w, http.StatusOK, page)
}

// Create handles POST /produtos
func (c *CatalogController) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req models.CatalogItemRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(ctx, w, err)
		return
	}

	item, err := c.catalog.Create(ctx, authz.ActorFromContext(ctx), req)
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	log.Ctx(ctx).Info().Int64("item_id", item.ID).Str("code", item.Code).Msg("✅ Catalog item created")
	httpx.JSON(ctx, w, http.StatusCreated, item)
}

// Get handles GET /produtos/{id}
func (c *CatalogController) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r, "id")
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	item, err := c.catalog.Get(ctx, authz.ActorFromContext(ctx), id)
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	httpx.JSON(ctx, w, http.StatusOK, item)
}

// Update handles PUT /produtos/{id}
func (c *CatalogController) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r, "id")
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	var req models.CatalogItemRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(ctx, w, err)
		return
	}

	item, err := c.catalog.Update(ctx, authz.ActorFromContext(ctx), id, req)
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	httpx.JSON(ctx, w, http.StatusOK, item)
}

// Delete handles DELETE /produtos/{id}
func (c *CatalogController) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r, "id")
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	if err := c.catalog.Delete(ctx, authz.ActorFromContext(ctx), id); err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadImage handles PUT /produtos/{id}/imagem (multipart field "imagem")
func (c *CatalogController) UploadImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r, "id")
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	_, data, err := readUpload(r, "imagem")
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}

	item, err := c.catalog.SetImage(ctx, authz.ActorFromContext(ctx), id, data)
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	httpx.JSON(ctx, w, http.StatusOK, item)
}

// Export handles GET /produtos/export?format=csv|xlsx
func (c *CatalogController) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	out, err := c.export.Export(ctx, authz.ActorFromContext(ctx), r.URL.Query().Get("format"))
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	httpx.File(ctx, w, out.ContentType, out.FileName, out.Data, false)
}
