package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"tabloide-mp/authz"
	"tabloide-mp/models"
	"tabloide-mp/repository"
	"tabloide-mp/validation"
)

// TemplateService handles flyer template management
type TemplateService struct {
	templates  repository.TemplateRepositoryInterface
	placements *PlacementService
	assets     *AssetStore
}

// NewTemplateService creates a new TemplateService
func NewTemplateService(templates repository.TemplateRepositoryInterface, placements *PlacementService, assets *AssetStore) *TemplateService {
	return &TemplateService{templates: templates, placements: placements, assets: assets}
}

func (s *TemplateService) Create(ctx context.Context, actor *authz.Actor, req models.TemplateRequest) (*models.FlyerTemplate, error) {
	if err := authz.Check(actor, authz.ManageTemplates, authz.Any); err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	t := &models.FlyerTemplate{}
	req.Apply(t)
	if err := s.templates.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TemplateService) Get(ctx context.Context, actor *authz.Actor, id int64) (*models.FlyerTemplate, error) {
	if err := authz.Check(actor, authz.ManageTemplates, authz.Any); err != nil {
		return nil, err
	}
	return s.templates.GetByID(ctx, id)
}

func (s *TemplateService) List(ctx context.Context, actor *authz.Actor) ([]models.FlyerTemplate, error) {
	if err := authz.Check(actor, authz.ManageTemplates, authz.Any); err != nil {
		return nil, err
	}
	return s.templates.List(ctx)
}

// Update edits a template. Shrinking the grid below an occupied position is rejected.
func (s *TemplateService) Update(ctx context.Context, actor *authz.Actor, id int64, req models.TemplateRequest) (*models.FlyerTemplate, error) {
	if err := authz.Check(actor, authz.ManageTemplates, authz.Any); err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	t, err := s.templates.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Apply(t)

	maxPos, err := s.templates.MaxPosition(ctx, id)
	if err != nil {
		return nil, err
	}
	if maxPos > t.Capacity() {
		return nil, models.NewValidationError("rows", models.ErrPositionOutOfRange,
			"grid of %d cells cannot hold the item at position %d", t.Capacity(), maxPos)
	}

	if err := s.templates.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TemplateService) Delete(ctx context.Context, actor *authz.Actor, id int64) error {
	if err := authz.Check(actor, authz.ManageTemplates, authz.Any); err != nil {
		return err
	}
	if err := s.templates.Delete(ctx, id); err != nil {
		return err
	}
	log.Ctx(ctx).Info().Int64("template_id", id).Msg("🗑️  Template deleted")
	return nil
}

// SetBackground stores an uploaded background image and attaches it to the template
func (s *TemplateService) SetBackground(ctx context.Context, actor *authz.Actor, id int64, data []byte) (*models.FlyerTemplate, error) {
	if err := authz.Check(actor, authz.ManageTemplates, authz.Any); err != nil {
		return nil, err
	}
	t, err := s.templates.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	optimized, err := OptimizeImage(data, PresetBackground)
	if err != nil {
		return nil, models.NewValidationError("background", err, "is not a valid image")
	}
	ref, err := s.assets.Save(backgroundDir, fmt.Sprintf("template_%d.jpg", id), optimized)
	if err != nil {
		return nil, err
	}
	if err := s.templates.SetBackground(ctx, id, ref); err != nil {
		return nil, err
	}
	t.BackgroundRef = &ref
	return t, nil
}

// Detail returns a template, its placements and the numbered preview grid
func (s *TemplateService) Detail(ctx context.Context, actor *authz.Actor, id int64) (*models.TemplateDetail, error) {
	if err := authz.Check(actor, authz.ManageTemplates, authz.Any); err != nil {
		return nil, err
	}
	t, err := s.templates.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	placements, err := collect(s.placements.List(ctx, actor, id))
	if err != nil {
		return nil, err
	}

	grid := make([]models.GridCell, t.Capacity())
	for i := range grid {
		grid[i].Position = i + 1
	}
	for _, p := range placements {
		if p.Position >= 1 && p.Position <= len(grid) {
			grid[p.Position-1].Item = p.Item
		}
	}

	return &models.TemplateDetail{Template: *t, Placements: placements, Grid: grid}, nil
}
