package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"tabloide-mp/app/controller"
	"tabloide-mp/app/middleware"
	"tabloide-mp/service"
)

type Controllers struct {
	Catalog   *controller.CatalogController
	ImageSync *controller.ImageSyncController
	Import    *controller.ImportController
	Template  *controller.TemplateController
	Placement *controller.PlacementController
	Flyer     *controller.FlyerController
	Company   *controller.CompanyController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// NewRouter builds the HTTP handler. renderLimit guards the public render endpoints.
func NewRouter(controllers *Controllers, auth *middleware.Authenticator, renderLimit *middleware.RateLimiter) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimw.Recoverer)
	r.Use(auth.Middleware)

	r.Get("/ping", pingHandler)

	// Dashboards
	r.Get("/dashboard/empresa", controllers.Company.CompanyDashboard)
	r.Get("/dashboard/cliente", controllers.Company.CustomerDashboard)

	r.Route("/empresas", func(r chi.Router) {
		r.Get("/", controllers.Company.ListCompanies)
		r.Post("/", controllers.Company.CreateCompany)
		r.Get("/{id}", controllers.Company.GetCompany)
		r.Put("/{id}", controllers.Company.UpdateCompany)
		r.Delete("/{id}", controllers.Company.DeleteCompany)
	})

	r.Route("/clientes", func(r chi.Router) {
		r.Get("/", controllers.Company.ListCustomers)
		r.Post("/", controllers.Company.CreateCustomer)
		r.Get("/{id}", controllers.Company.GetCustomer)
		r.Put("/{id}", controllers.Company.UpdateCustomer)
		r.Delete("/{id}", controllers.Company.DeleteCustomer)
	})

	// Catalog; static paths are registered before /{id}
	r.Route("/produtos", func(r chi.Router) {
		r.Get("/", controllers.Catalog.List)
		r.Post("/", controllers.Catalog.Create)
		r.Get("/export", controllers.Catalog.Export)
		r.Post("/imagens/sync", controllers.ImageSync.SyncImages)
		r.Get("/{id}", controllers.Catalog.Get)
		r.Put("/{id}", controllers.Catalog.Update)
		r.Delete("/{id}", controllers.Catalog.Delete)
		r.Put("/{id}/imagem", controllers.Catalog.UploadImage)
	})

	r.Route("/importacao", func(r chi.Router) {
		r.Get("/", controllers.Import.List)
		r.Post("/", controllers.Import.Upload)
		r.Get("/{id}", controllers.Import.Get)
	})

	r.Route("/tabloide/templates", func(r chi.Router) {
		r.Get("/", controllers.Template.List)
		r.Post("/", controllers.Template.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", controllers.Template.Get)
			r.Put("/", controllers.Template.Update)
			r.Delete("/", controllers.Template.Delete)
			r.Put("/background", controllers.Template.UploadBackground)

			r.Get("/itens", controllers.Placement.List)
			r.Post("/itens", controllers.Placement.Assign)
			r.Put("/itens/{itemId}", controllers.Placement.Update)
			r.Delete("/itens/{itemId}", controllers.Placement.Delete)
			r.Delete("/produtos/{produtoId}", controllers.Placement.RemoveProduct)
			r.Get("/disponiveis", controllers.Placement.Available)
		})
	})

	// Public render endpoints
	r.Group(func(r chi.Router) {
		r.Use(renderLimit.Middleware)
		r.Get("/pdf/tabloide", controllers.Flyer.Render(service.FormatPDF))
		r.Get("/jpeg/tabloide", controllers.Flyer.Render(service.FormatJPEG))
		r.Get("/html/tabloide", controllers.Flyer.Render(service.FormatHTML))
		r.Get("/pdf/exemplo", controllers.Flyer.ExampleOrder)
	})

	return r
}
