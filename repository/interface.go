package repository

import (
	"context"

	"github.com/google/uuid"

	"tabloide-mp/importer"
	"tabloide-mp/models"
)

// CatalogRepositoryInterface defines the contract for catalog item repository operations
type CatalogRepositoryInterface interface {
	Create(ctx context.Context, item *models.CatalogItem) error
	GetByID(ctx context.Context, id int64) (*models.CatalogItem, error)
	GetByCode(ctx context.Context, code string) (*models.CatalogItem, error)
	List(ctx context.Context, page, perPage int) ([]models.CatalogItem, int, error)
	ListAll(ctx context.Context) ([]models.CatalogItem, error)
	Update(ctx context.Context, item *models.CatalogItem) error
	SetImage(ctx context.Context, id int64, ref string) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
	RunImport(ctx context.Context, fn func(store importer.ItemStore) error) error
}

// TemplateRepositoryInterface defines the contract for flyer template repository operations
type TemplateRepositoryInterface interface {
	Create(ctx context.Context, t *models.FlyerTemplate) error
	GetByID(ctx context.Context, id int64) (*models.FlyerTemplate, error)
	First(ctx context.Context) (*models.FlyerTemplate, error)
	List(ctx context.Context) ([]models.FlyerTemplate, error)
	Update(ctx context.Context, t *models.FlyerTemplate) error
	SetBackground(ctx context.Context, id int64, ref string) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
	MaxPosition(ctx context.Context, id int64) (int, error)
}

// PlacementRepositoryInterface defines the contract for placement repository operations
type PlacementRepositoryInterface interface {
	Insert(ctx context.Context, p *models.Placement) error
	Update(ctx context.Context, p *models.Placement) error
	GetByID(ctx context.Context, templateID, id int64) (*models.Placement, error)
	FindByPosition(ctx context.Context, templateID int64, position int) (*models.Placement, error)
	FindByItem(ctx context.Context, templateID, itemID int64) (*models.Placement, error)
	DeleteByItem(ctx context.Context, templateID, itemID int64) (bool, error)
	DeleteByID(ctx context.Context, templateID, id int64) error
	ListByTemplate(ctx context.Context, templateID int64) ([]models.Placement, error)
	AvailableItems(ctx context.Context, templateID int64) ([]models.CatalogItem, error)
}

// ImportRepositoryInterface defines the contract for price import record operations
type ImportRepositoryInterface interface {
	Insert(ctx context.Context, imp *models.PriceImport) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.PriceImport, error)
	List(ctx context.Context, limit int) ([]models.PriceImport, error)
	Count(ctx context.Context) (int, error)
}

// CompanyRepositoryInterface defines the contract for company repository operations
type CompanyRepositoryInterface interface {
	Create(ctx context.Context, c *models.Company) error
	GetByID(ctx context.Context, id int64) (*models.Company, error)
	List(ctx context.Context, page, perPage int) ([]models.Company, int, error)
	Update(ctx context.Context, c *models.Company) error
	Delete(ctx context.Context, id int64) error
}

// CustomerRepositoryInterface defines the contract for customer repository operations
type CustomerRepositoryInterface interface {
	Create(ctx context.Context, c *models.Customer) error
	GetByID(ctx context.Context, id int64) (*models.Customer, error)
	List(ctx context.Context, companyID *int64, page, perPage int) ([]models.Customer, int, error)
	Update(ctx context.Context, c *models.Customer) error
	Delete(ctx context.Context, id int64) error
}
