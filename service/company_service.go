package service

import (
	"context"
	"strings"

	"tabloide-mp/authz"
	"tabloide-mp/models"
	"tabloide-mp/repository"
	"tabloide-mp/utils"
	"tabloide-mp/validation"
)

// CompanyService handles company and customer profiles and their dashboards
type CompanyService struct {
	companies repository.CompanyRepositoryInterface
	customers repository.CustomerRepositoryInterface
	items     repository.CatalogRepositoryInterface
	templates repository.TemplateRepositoryInterface
	imports   repository.ImportRepositoryInterface
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(
	companies repository.CompanyRepositoryInterface,
	customers repository.CustomerRepositoryInterface,
	items repository.CatalogRepositoryInterface,
	templates repository.TemplateRepositoryInterface,
	imports repository.ImportRepositoryInterface,
) *CompanyService {
	return &CompanyService{
		companies: companies,
		customers: customers,
		items:     items,
		templates: templates,
		imports:   imports,
	}
}

// applyCompany copies a validated request, storing documents in their formatted form
func applyCompany(req models.CompanyRequest, c *models.Company) {
	c.UserID = req.UserID
	c.LegalName = strings.TrimSpace(req.LegalName)
	c.TradeName = strings.TrimSpace(req.TradeName)
	c.CNPJ = utils.FormatCNPJ(req.CNPJ)
	c.StateReg = strings.TrimSpace(req.StateReg)
	c.Email = strings.TrimSpace(req.Email)
	c.Phone = utils.FormatPhone(req.Phone)
	c.CEP = utils.FormatCEP(req.CEP)
	c.Address = strings.TrimSpace(req.Address)
	c.City = strings.TrimSpace(req.City)
	c.UF = strings.ToUpper(req.UF)
}

func (s *CompanyService) CreateCompany(ctx context.Context, actor *authz.Actor, req models.CompanyRequest) (*models.Company, error) {
	if err := authz.Check(actor, authz.ManageCompanies, authz.Any); err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	c := &models.Company{}
	applyCompany(req, c)
	if err := s.companies.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CompanyService) GetCompany(ctx context.Context, actor *authz.Actor, id int64) (*models.Company, error) {
	if err := authz.Check(actor, authz.ViewCompanies, authz.Any); err != nil {
		return nil, err
	}
	return s.companies.GetByID(ctx, id)
}

// ListCompanies returns one page of companies ordered by legal name
func (s *CompanyService) ListCompanies(ctx context.Context, actor *authz.Actor, page int) (*models.Page[models.Company], error) {
	if err := authz.Check(actor, authz.ViewCompanies, authz.Any); err != nil {
		return nil, err
	}
	page = max(page, 1)
	companies, total, err := s.companies.List(ctx, page, models.DefaultPerPage)
	if err != nil {
		return nil, err
	}
	return &models.Page[models.Company]{Items: companies, Page: page, PerPage: models.DefaultPerPage, Total: total}, nil
}

// UpdateCompany lets admins edit any company and companies edit their own profile
func (s *CompanyService) UpdateCompany(ctx context.Context, actor *authz.Actor, id int64, req models.CompanyRequest) (*models.Company, error) {
	if err := authz.Check(actor, authz.EditCompany, authz.Resource{CompanyID: id}); err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	c, err := s.companies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	userID := c.UserID
	applyCompany(req, c)
	if actor.Role != authz.RoleAdmin {
		// Only admins relink profiles to users
		c.UserID = userID
	}
	if err := s.companies.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CompanyService) DeleteCompany(ctx context.Context, actor *authz.Actor, id int64) error {
	if err := authz.Check(actor, authz.ManageCompanies, authz.Any); err != nil {
		return err
	}
	return s.companies.Delete(ctx, id)
}

func applyCustomer(req models.CustomerRequest, c *models.Customer) {
	c.UserID = req.UserID
	c.FullName = strings.TrimSpace(req.FullName)
	c.Phone = utils.FormatPhone(req.Phone)
	c.CompanyID = req.CompanyID
	c.CPF = nil
	if req.CPF != "" {
		cpf := utils.FormatCPF(req.CPF)
		c.CPF = &cpf
	}
}

// CreateCustomer registers a customer. Companies may only attach customers to themselves.
func (s *CompanyService) CreateCustomer(ctx context.Context, actor *authz.Actor, req models.CustomerRequest) (*models.Customer, error) {
	if err := authz.Check(actor, authz.ManageCustomers, authz.Any); err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if actor.Role == authz.RoleCompany {
		req.CompanyID = &actor.CompanyID
	}
	c := &models.Customer{}
	applyCustomer(req, c)
	if err := s.customers.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CompanyService) GetCustomer(ctx context.Context, actor *authz.Actor, id int64) (*models.Customer, error) {
	if actor == nil {
		return nil, authz.ErrUnauthenticated
	}
	c, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkCustomerAccess(actor, c); err != nil {
		return nil, err
	}
	return c, nil
}

// checkCustomerAccess lets customers see themselves and companies see their own customers
func (s *CompanyService) checkCustomerAccess(actor *authz.Actor, c *models.Customer) error {
	if authz.Check(actor, authz.EditCustomer, authz.Resource{CustomerID: c.ID}) == nil {
		return nil
	}
	if err := authz.Check(actor, authz.ManageCustomers, authz.Any); err != nil {
		return err
	}
	if actor.Role == authz.RoleCompany && (c.CompanyID == nil || *c.CompanyID != actor.CompanyID) {
		return authz.ErrForbidden
	}
	return nil
}

// ListCustomers returns one page of customers, limited to the caller's own customers for companies
func (s *CompanyService) ListCustomers(ctx context.Context, actor *authz.Actor, page int) (*models.Page[models.Customer], error) {
	if err := authz.Check(actor, authz.ManageCustomers, authz.Any); err != nil {
		return nil, err
	}
	var companyID *int64
	if actor.Role == authz.RoleCompany {
		companyID = &actor.CompanyID
	}
	page = max(page, 1)
	customers, total, err := s.customers.List(ctx, companyID, page, models.DefaultPerPage)
	if err != nil {
		return nil, err
	}
	return &models.Page[models.Customer]{Items: customers, Page: page, PerPage: models.DefaultPerPage, Total: total}, nil
}

func (s *CompanyService) UpdateCustomer(ctx context.Context, actor *authz.Actor, id int64, req models.CustomerRequest) (*models.Customer, error) {
	c, err := s.GetCustomer(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	userID, companyID := c.UserID, c.CompanyID
	applyCustomer(req, c)
	if actor.Role != authz.RoleAdmin {
		c.UserID, c.CompanyID = userID, companyID
	}
	if err := s.customers.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CompanyService) DeleteCustomer(ctx context.Context, actor *authz.Actor, id int64) error {
	c, err := s.GetCustomer(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := authz.Check(actor, authz.ManageCustomers, authz.Any); err != nil {
		return err
	}
	return s.customers.Delete(ctx, c.ID)
}

// CompanyDashboard returns the caller's company profile and catalog counts
func (s *CompanyService) CompanyDashboard(ctx context.Context, actor *authz.Actor) (*models.CompanyDashboard, error) {
	if err := authz.Check(actor, authz.ViewCompanyDash, authz.Any); err != nil {
		return nil, err
	}

	dash := &models.CompanyDashboard{}
	if actor.CompanyID != 0 {
		company, err := s.companies.GetByID(ctx, actor.CompanyID)
		if err != nil {
			return nil, err
		}
		dash.Company = *company
	}

	var err error
	if dash.Catalog.Items, err = s.items.Count(ctx); err != nil {
		return nil, err
	}
	if dash.Catalog.Templates, err = s.templates.Count(ctx); err != nil {
		return nil, err
	}
	if dash.Catalog.Imports, err = s.imports.Count(ctx); err != nil {
		return nil, err
	}
	return dash, nil
}

// CustomerDashboard returns the caller's customer profile
func (s *CompanyService) CustomerDashboard(ctx context.Context, actor *authz.Actor) (*models.Customer, error) {
	if err := authz.Check(actor, authz.ViewCustomerDash, authz.Any); err != nil {
		return nil, err
	}
	if actor.CustomerID == 0 {
		return nil, models.ErrNotFound
	}
	return s.customers.GetByID(ctx, actor.CustomerID)
}
