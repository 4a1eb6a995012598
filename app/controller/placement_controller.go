package controller

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"tabloide-mp/app/httpx"
	"tabloide-mp/authz"
	"tabloide-mp/models"
	"tabloide-mp/service"
)

// PlacementController handles HTTP requests for the items of a template
type PlacementController struct {
	placements *service.PlacementService
}

// NewPlacementController creates a new PlacementController
func NewPlacementController(placements *service.PlacementService) *PlacementController {
	return &PlacementController{placements: placements}
}

// List handles GET /tabloide/templates/{id}/itens
func (c *PlacementController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	templateID, err := pathID(r, "id")
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}

	placements := []models.Placement{}
	for p, err := range c.placements.List(ctx, authz.ActorFromContext(ctx), templateID) {
		if err != nil {
			httpx.Error(ctx, w, err)
			return
		}
		placements = append(placements, p)
	}
	httpx.JSON(ctx, w, http.StatusOK, placements)
}

// Assign handles POST /tabloide/templates/{id}/itens
func (c *PlacementController) Assign(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	templateID, err := pathID(r, "id")
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	var req models.PlacementRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(ctx, w, err)
		return
	}

	p, err := c.placements.Assign(ctx, authz.ActorFromContext(ctx), templateID, req.ItemID, req.Position)
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).Int64("template_id", templateID).Msg("❌ Assign rejected")
		httpx.Error(ctx, w, err)
		return
	}
	log.Ctx(ctx).Info().Int64("template_id", templateID).Int64("item_id", req.ItemID).Int("position", req.Position).Msg("✅ Item placed")
	httpx.JSON(ctx, w, http.StatusCreated, p)
}

// Update handles PUT /tabloide/templates/{id}/itens/{itemId}, where itemId is the placement id
func (c *PlacementController) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	templateID, err := pathID(r, "id")
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	placementID, err := pathID(r, "itemId")
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	var req models.PlacementRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(ctx, w, err)
		return
	}

	p, err := c.placements.Update(ctx, authz.ActorFromContext(ctx), templateID, placementID, req.ItemID, req.Position)
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	httpx.JSON(ctx, w, http.StatusOK, p)
}

// Delete handles DELETE /tabloide/templates/{id}/itens/{itemId}
func (c *PlacementController) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	templateID, err := pathID(r, "id")
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	placementID, err := pathID(r, "itemId")
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	if err := c.placements.RemoveByID(ctx, authz.ActorFromContext(ctx), templateID, placementID); err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveProduct handles DELETE /tabloide/templates/{id}/produtos/{produtoId}.
// Removing a product that is not placed still answers 204.
func (c *PlacementController) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	templateID, err := pathID(r, "id")
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	itemID, err := pathID(r, "produtoId")
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	if err := c.placements.Remove(ctx, authz.ActorFromContext(ctx), templateID, itemID); err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Available handles GET /tabloide/templates/{id}/disponiveis
func (c *PlacementController) Available(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	templateID, err := pathID(r, "id")
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	items, err := c.placements.AvailableItems(ctx, authz.ActorFromContext(ctx), templateID)
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	httpx.JSON(ctx, w, http.StatusOK, items)
}
