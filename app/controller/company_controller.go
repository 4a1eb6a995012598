package controller

import (
	"net/http"

	"tabloide-mp/app/httpx"
	"tabloide-mp/authz"
	"tabloide-mp/models"
	"tabloide-mp/service"
)

// CompanyController handles companies, customers and the dashboards
type CompanyController struct {
	companies *service.CompanyService
}

// NewCompanyController creates a new CompanyController
func NewCompanyController(companies *service.CompanyService) *CompanyController {
	return &CompanyController{companies: companies}
}

// CompanyDashboard handles GET /dashboard/empresa
func (c *CompanyController) CompanyDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dash, err := c.companies.CompanyDashboard(ctx, authz.ActorFromContext(ctx))
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	httpx.JSON(ctx, w, http.StatusOK, dash)
}

// CustomerDashboard handles GET /dashboard/cliente
func (c *CompanyController) CustomerDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	customer, err := c.companies.CustomerDashboard(ctx, authz.ActorFromContext(ctx))
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	httpx.JSON(ctx, w, http.StatusOK, customer)
}

func (c *CompanyController) ListCompanies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page, err := c.companies.ListCompanies(ctx, authz.ActorFromContext(ctx), queryPage(r))
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	httpx.JSON(ctx, w, http.StatusOK, page)
}

func (c *CompanyController) CreateCompany(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req models.CompanyRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	company, err := c.companies.CreateCompany(ctx, authz.ActorFromContext(ctx), req)
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	httpx.JSON(ctx, w, http.StatusCreated, company)
}

func (c *CompanyController) GetCompany(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r, "id")
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	company, err := c.companies.GetCompany(ctx, authz.ActorFromContext(ctx), id)
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	httpx.JSON(ctx, w, http.StatusOK, company)
}

func (c *CompanyController) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r, "id")
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	var req models.CompanyRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	company, err := c.companies.UpdateCompany(ctx, authz.ActorFromContext(ctx), id, req)
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	httpx.JSON(ctx, w, http.StatusOK, company)
}

func (c *CompanyController) DeleteCompany(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r, "id")
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	if err := c.companies.DeleteCompany(ctx, authz.ActorFromContext(ctx), id); err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *CompanyController) ListCustomers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page, err := c.companies.ListCustomers(ctx, authz.ActorFromContext(ctx), queryPage(r))
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	httpx.JSON(ctx, w, http.StatusOK, page)
}

func (c *CompanyController) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req models.CustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	customer, err := c.companies.CreateCustomer(ctx, authz.ActorFromContext(ctx), req)
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	httpx.JSON(ctx, w, http.StatusCreated, customer)
}

func (c *CompanyController) GetCustomer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r, "id")
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	customer, err := c.companies.GetCustomer(ctx, authz.ActorFromContext(ctx), id)
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	httpx.JSON(ctx, w, http.StatusOK, customer)
}

func (c *CompanyController) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r, "id")
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	var req models.CustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	customer, err := c.companies.UpdateCustomer(ctx, authz.ActorFromContext(ctx), id, req)
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	httpx.JSON(ctx, w, http.StatusOK, customer)
}

func (c *CompanyController) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r, "id")
	if err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	if err := c.companies.DeleteCustomer(ctx, authz.ActorFromContext(ctx), id); err != nil {
		httpx.Error(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
