package controller

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"tabloide-mp/app/httpx"
	"tabloide-mp/authz"
	"tabloide-mp/service"
)

// FlyerController serves rendered flyers. All routes are public.
type FlyerController struct {
	flyers *service.FlyerService
}

// NewFlyerController creates a new FlyerController
func NewFlyerController(flyers *service.FlyerService) *FlyerController {
	return &FlyerController{flyers: flyers}
}

// Render returns a handler for GET /{format}/tabloide?template=
func (c *FlyerController) Render(format service.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		templateID := queryTemplateID(r)

		out, err := c.flyers.Render(ctx, authz.ActorFromContext(ctx), templateID, format)
		if err != nil {
			log.Ctx(ctx).Error().Err(err).Str("format", string(format)).Msg("❌ Failed to render flyer")
			httpx.Error(ctx, w, err)
			return
		}
		log.Ctx(ctx).Info().Str("format", string(format)).Int("bytes", len(out.Data)).Msg("✅ Flyer rendered")
		httpx.File(ctx, w, out.ContentType, out.FileName, out.Data, true)
	}
}

// ExampleOrder handles GET /pdf/exemplo
func (c *FlyerController) ExampleOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	out, err := c.flyers.RenderExampleOrder(ctx, authz.ActorFromContext(ctx))
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	httpx.File(ctx, w, out.ContentType, out.FileName, out.Data, true)
}
