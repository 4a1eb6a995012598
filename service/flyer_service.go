package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"tabloide-mp/authz"
	"tabloide-mp/models"
	"tabloide-mp/render"
	"tabloide-mp/repository"
)

// Format is a flyer output format
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatJPEG Format = "jpeg"
	FormatHTML Format = "html"
)

// ParseFormat accepts pdf, jpeg/jpg and html
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pdf":
		return FormatPDF, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	case "html":
		return FormatHTML, nil
	}
	return "", models.NewValidationError("format", nil, "unsupported format %q", s)
}

// Rendered is a finished output file
type Rendered struct {
	ContentType string
	FileName    string
	Data        []byte
}

// FlyerService renders templates into flyers
type FlyerService struct {
	templates  repository.TemplateRepositoryInterface
	placements *PlacementService
	assets     AssetLoader
	printer    PDFPrinter
	layout     render.Layout
	now        func() time.Time
}

// NewFlyerService creates a new FlyerService
func NewFlyerService(
	templates repository.TemplateRepositoryInterface,
	placements *PlacementService,
	assets AssetLoader,
	printer PDFPrinter,
	layout render.Layout,
) *FlyerService {
	return &FlyerService{
		templates:  templates,
		placements: placements,
		assets:     assets,
		printer:    printer,
		layout:     layout,
		now:        time.Now,
	}
}

// Render draws the requested template. A missing or unknown id falls back to the
// first template, and with no template at all the example flyer is drawn.
func (s *FlyerService) Render(ctx context.Context, actor *authz.Actor, templateID *int64, format Format) (*Rendered, error) {
	if err := authz.Check(actor, authz.RenderFlyer, authz.Any); err != nil {
		return nil, err
	}

	tmpl, err := s.resolveTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}

	flyer := render.ExampleFlyer()
	title := "Tabloide"
	if tmpl != nil {
		placements, err := collect(s.placements.ordered(ctx, tmpl.ID))
		if err != nil {
			return nil, err
		}
		flyer = render.NewFlyer(*tmpl, placements, s.loadBackground(ctx, tmpl))
		title = tmpl.Name
	}

	switch format {
	case FormatJPEG:
		return s.renderJPEG(flyer)
	case FormatHTML:
		html, err := s.documentHTML(title, flyer)
		if err != nil {
			return nil, err
		}
		return &Rendered{ContentType: "text/html; charset=utf-8", FileName: "tabloide.html", Data: html}, nil
	case FormatPDF:
		html, err := s.documentHTML(title, flyer)
		if err != nil {
			return nil, err
		}
		m := s.layout.Document
		pdf, err := s.printer.PrintPDF(ctx, html, m.Width/72, m.Height/72)
		if err != nil {
			return nil, err
		}
		return &Rendered{ContentType: "application/pdf", FileName: "relatorio_tabloide.pdf", Data: pdf}, nil
	}
	return nil, models.NewValidationError("format", nil, "unsupported format %q", format)
}

func (s *FlyerService) documentHTML(title string, flyer render.Flyer) ([]byte, error) {
	doc := render.NewDocument(title, s.layout.Document)
	render.Draw(doc, flyer)
	var buf bytes.Buffer
	if err := doc.WriteHTML(&buf); err != nil {
		return nil, fmt.Errorf("failed to render flyer html: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *FlyerService) renderJPEG(flyer render.Flyer) (*Rendered, error) {
	raster, err := render.NewRaster(s.layout.Raster)
	if err != nil {
		return nil, err
	}
	defer raster.Close()

	render.Draw(raster, flyer)
	var buf bytes.Buffer
	if err := raster.EncodeJPEG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode flyer jpeg: %w", err)
	}
	return &Rendered{ContentType: "image/jpeg", FileName: "tabloide.jpg", Data: buf.Bytes()}, nil
}

// resolveTemplate returns nil, nil when no template exists
func (s *FlyerService) resolveTemplate(ctx context.Context, id *int64) (*models.FlyerTemplate, error) {
	if id != nil {
		tmpl, err := s.templates.GetByID(ctx, *id)
		if err == nil {
			return tmpl, nil
		}
		if !errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		log.Ctx(ctx).Debug().Int64("template_id", *id).Msg("Template not found, falling back to the first one")
	}

	tmpl, err := s.templates.First(ctx)
	if errors.Is(err, models.ErrNotFound) {
		return nil, nil
	}
	return tmpl, err
}

// loadBackground never fails: a missing or corrupt image only drops the background
func (s *FlyerService) loadBackground(ctx context.Context, tmpl *models.FlyerTemplate) image.Image {
	if tmpl.BackgroundRef == nil || *tmpl.BackgroundRef == "" || s.assets == nil {
		return nil
	}
	img, err := s.assets.LoadImage(ctx, *tmpl.BackgroundRef)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Int64("template_id", tmpl.ID).Msg("⚠️  Skipping template background")
		return nil
	}
	return img
}

// RenderExampleOrder prints the sample A4 sales order
func (s *FlyerService) RenderExampleOrder(ctx context.Context, actor *authz.Actor) (*Rendered, error) {
	if err := authz.Check(actor, authz.RenderFlyer, authz.Any); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := render.WriteOrderHTML(&buf, s.now(), render.ExampleOrderLines()); err != nil {
		return nil, fmt.Errorf("failed to render order html: %w", err)
	}
	pdf, err := s.printer.PrintPDF(ctx, buf.Bytes(), A4Width, A4Height)
	if err != nil {
		return nil, err
	}
	return &Rendered{ContentType: "application/pdf", FileName: "pedido_exemplo.pdf", Data: pdf}, nil
}
