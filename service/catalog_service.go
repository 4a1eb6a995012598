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

// Media sub-directories
const (
	productImageDir = "produtos"
	backgroundDir   = "backgrounds"
	importDir       = "importacoes"
)

// CatalogService handles catalog item management
type CatalogService struct {
	repository repository.CatalogRepositoryInterface
	assets     *AssetStore
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(repo repository.CatalogRepositoryInterface, assets *AssetStore) *CatalogService {
	return &CatalogService{repository: repo, assets: assets}
}

func (s *CatalogService) Create(ctx context.Context, actor *authz.Actor, req models.CatalogItemRequest) (*models.CatalogItem, error) {
	if err := authz.Check(actor, authz.ManageCatalog, authz.Any); err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	item := &models.CatalogItem{}
	req.Apply(item)
	if err := s.repository.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CatalogService) Get(ctx context.Context, actor *authz.Actor, id int64) (*models.CatalogItem, error) {
	if err := authz.Check(actor, authz.ViewCatalog, authz.Any); err != nil {
		return nil, err
	}
	return s.repository.GetByID(ctx, id)
}

// List returns one page of items ordered by name. Pages start at 1.
func (s *CatalogService) List(ctx context.Context, actor *authz.Actor, page int) (*models.Page[models.CatalogItem], error) {
	if err := authz.Check(actor, authz.ViewCatalog, authz.Any); err != nil {
		return nil, err
	}
	page = max(page, 1)
	items, total, err := s.repository.List(ctx, page, models.DefaultPerPage)
	if err != nil {
		return nil, err
	}
	return &models.Page[models.CatalogItem]{Items: items, Page: page, PerPage: models.DefaultPerPage, Total: total}, nil
}

func (s *CatalogService) Update(ctx context.Context, actor *authz.Actor, id int64, req models.CatalogItemRequest) (*models.CatalogItem, error) {
	if err := authz.Check(actor, authz.ManageCatalog, authz.Any); err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	item, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Apply(item)
	if err := s.repository.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CatalogService) Delete(ctx context.Context, actor *authz.Actor, id int64) error {
	if err := authz.Check(actor, authz.ManageCatalog, authz.Any); err != nil {
		return err
	}
	if err := s.repository.Delete(ctx, id); err != nil {
		return err
	}
	log.Ctx(ctx).Info().Int64("item_id", id).Msg("🗑️  Catalog item deleted")
	return nil
}

// SetImage optimizes an uploaded product photo, stores it as produtos/<id>.jpg and links it
func (s *CatalogService) SetImage(ctx context.Context, actor *authz.Actor, id int64, data []byte) (*models.CatalogItem, error) {
	if err := authz.Check(actor, authz.ManageCatalog, authz.Any); err != nil {
		return nil, err
	}
	item, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	optimized, err := OptimizeImage(data, PresetProduct)
	if err != nil {
		return nil, models.NewValidationError("image", err, "is not a valid image")
	}
	ref, err := s.assets.Save(productImageDir, fmt.Sprintf("%d.jpg", item.ID), optimized)
	if err != nil {
		return nil, err
	}
	if err := s.repository.SetImage(ctx, item.ID, ref); err != nil {
		return nil, err
	}
	item.ImageRef = &ref
	log.Ctx(ctx).Info().Int64("item_id", id).Str("ref", ref).Msg("📸 Product image stored")
	return item, nil
}
