package service

import (
	"context"
	"errors"
	"iter"

	"github.com/rs/zerolog/log"

	"tabloide-mp/authz"
	"tabloide-mp/models"
	"tabloide-mp/repository"
)

// PlacementService assigns catalog items to numbered cells of a template.
// Every check runs before the write; the storage constraints catch concurrent writers.
type PlacementService struct {
	templates  repository.TemplateRepositoryInterface
	placements repository.PlacementRepositoryInterface
	items      repository.CatalogRepositoryInterface
}

// NewPlacementService creates a new PlacementService
func NewPlacementService(
	templates repository.TemplateRepositoryInterface,
	placements repository.PlacementRepositoryInterface,
	items repository.CatalogRepositoryInterface,
) *PlacementService {
	return &PlacementService{
		templates:  templates,
		placements: placements,
		items:      items,
	}
}

// Assign places itemID at position of templateID
func (s *PlacementService) Assign(ctx context.Context, actor *authz.Actor, templateID, itemID int64, position int) (*models.Placement, error) {
	if err := authz.Check(actor, authz.ManageTemplates, authz.Any); err != nil {
		return nil, err
	}

	p := &models.Placement{TemplateID: templateID, ItemID: itemID, Position: position}
	item, err := s.validate(ctx, p)
	if err != nil {
		return nil, err
	}

	if err := s.placements.Insert(ctx, p); err != nil {
		return nil, err
	}
	p.Item = item
	return p, nil
}

// Update moves an existing placement to another item or position with the same checks as Assign
func (s *PlacementService) Update(ctx context.Context, actor *authz.Actor, templateID, placementID, itemID int64, position int) (*models.Placement, error) {
	if err := authz.Check(actor, authz.ManageTemplates, authz.Any); err != nil {
		return nil, err
	}

	p, err := s.placements.GetByID(ctx, templateID, placementID)
	if err != nil {
		return nil, err
	}
	p.ItemID = itemID
	p.Position = position

	item, err := s.validate(ctx, p)
	if err != nil {
		return nil, err
	}
	if err := s.placements.Update(ctx, p); err != nil {
		return nil, err
	}
	p.Item = item
	log.Ctx(ctx).Info().Int64("placement_id", p.ID).Int("position", position).Msg("✓ Placement updated")
	return p, nil
}

// validate checks the position range and both uniqueness rules, ignoring p itself when it already exists
func (s *PlacementService) validate(ctx context.Context, p *models.Placement) (*models.CatalogItem, error) {
	tmpl, err := s.templates.GetByID(ctx, p.TemplateID)
	if err != nil {
		return nil, err
	}

	if capacity := tmpl.Capacity(); p.Position < 1 || p.Position > capacity {
		return nil, models.NewValidationError("position", models.ErrPositionOutOfRange,
			"position must be between 1 and %d", capacity)
	}

	item, err := s.items.GetByID(ctx, p.ItemID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.NewValidationError("itemId", err, "catalog item %d does not exist", p.ItemID)
	}
	if err != nil {
		return nil, err
	}

	taken, err := s.placements.FindByPosition(ctx, p.TemplateID, p.Position)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}
	if taken != nil && taken.ID != p.ID {
		return nil, models.NewValidationError("position", models.ErrPositionTaken,
			"position %d is already taken", p.Position)
	}

	placed, err := s.placements.FindByItem(ctx, p.TemplateID, p.ItemID)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}
	if placed != nil && placed.ID != p.ID {
		return nil, models.NewValidationError("itemId", models.ErrItemAlreadyPlaced,
			"item is already at position %d", placed.Position)
	}

	return item, nil
}

// Remove deletes the placement of itemID in templateID. Removing an item that is not placed is a no-op.
func (s *PlacementService) Remove(ctx context.Context, actor *authz.Actor, templateID, itemID int64) error {
	if err := authz.Check(actor, authz.ManageTemplates, authz.Any); err != nil {
		return err
	}
	removed, err := s.placements.DeleteByItem(ctx, templateID, itemID)
	if err != nil {
		return err
	}
	if removed {
		log.Ctx(ctx).Info().Int64("template_id", templateID).Int64("item_id", itemID).Msg("🗑️  Item removed from template")
	}
	return nil
}

// RemoveByID deletes one placement by its id
func (s *PlacementService) RemoveByID(ctx context.Context, actor *authz.Actor, templateID, placementID int64) error {
	if err := authz.Check(actor, authz.ManageTemplates, authz.Any); err != nil {
		return err
	}
	return s.placements.DeleteByID(ctx, templateID, placementID)
}

// List yields the placements of templateID ordered by position.
// The sequence can be ranged more than once, each range reads storage again.
func (s *PlacementService) List(ctx context.Context, actor *authz.Actor, templateID int64) iter.Seq2[models.Placement, error] {
	return func(yield func(models.Placement, error) bool) {
		if err := authz.Check(actor, authz.ManageTemplates, authz.Any); err != nil {
			yield(models.Placement{}, err)
			return
		}
		for p, err := range s.ordered(ctx, templateID) {
			if !yield(p, err) {
				return
			}
		}
	}
}

// ordered is List without the capability check, used by public flyer rendering
func (s *PlacementService) ordered(ctx context.Context, templateID int64) iter.Seq2[models.Placement, error] {
	return func(yield func(models.Placement, error) bool) {
		placements, err := s.placements.ListByTemplate(ctx, templateID)
		if err != nil {
			yield(models.Placement{}, err)
			return
		}
		for _, p := range placements {
			if !yield(p, nil) {
				return
			}
		}
	}
}

// AvailableItems lists catalog items not placed in templateID yet
func (s *PlacementService) AvailableItems(ctx context.Context, actor *authz.Actor, templateID int64) ([]models.CatalogItem, error) {
	if err := authz.Check(actor, authz.ManageTemplates, authz.Any); err != nil {
		return nil, err
	}
	if _, err := s.templates.GetByID(ctx, templateID); err != nil {
		return nil, err
	}
	return s.placements.AvailableItems(ctx, templateID)
}

// collect drains a placement sequence into a slice
func collect(seq iter.Seq2[models.Placement, error]) ([]models.Placement, error) {
	placements := []models.Placement{}
	for p, err := range seq {
		if err != nil {
			return nil, err
		}
		placements = append(placements, p)
	}
	return placements, nil
}
