package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabloide-mp/app/controller"
	"tabloide-mp/app/httpx"
	"tabloide-mp/app/middleware"
	"tabloide-mp/authz"
	"tabloide-mp/models"
	"tabloide-mp/render"
	"tabloide-mp/repository"
	"tabloide-mp/service"
)

// Stubs embed the interfaces and implement only what the routes under test reach

type stubCatalog struct {
	repository.CatalogRepositoryInterface
	items map[int64]models.CatalogItem
}

func (s *stubCatalog) GetByID(_ context.Context, id int64) (*models.CatalogItem, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &item, nil
}

type stubTemplates struct {
	repository.TemplateRepositoryInterface
	templates []models.FlyerTemplate
}

func (s *stubTemplates) GetByID(_ context.Context, id int64) (*models.FlyerTemplate, error) {
	for _, t := range s.templates {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *stubTemplates) First(_ context.Context) (*models.FlyerTemplate, error) {
	if len(s.templates) == 0 {
		return nil, models.ErrNotFound
	}
	return &s.templates[0], nil
}

type stubPlacements struct {
	repository.PlacementRepositoryInterface
	rows []models.Placement
}

func (s *stubPlacements) Insert(_ context.Context, p *models.Placement) error {
	p.ID = int64(len(s.rows) + 1)
	s.rows = append(s.rows, *p)
	return nil
}

func (s *stubPlacements) find(match func(models.Placement) bool) (*models.Placement, error) {
	for _, p := range s.rows {
		if match(p) {
			return &p, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *stubPlacements) FindByPosition(_ context.Context, templateID int64, position int) (*models.Placement, error) {
	return s.find(func(p models.Placement) bool { return p.TemplateID == templateID && p.Position == position })
}

func (s *stubPlacements) FindByItem(_ context.Context, templateID, itemID int64) (*models.Placement, error) {
	return s.find(func(p models.Placement) bool { return p.TemplateID == templateID && p.ItemID == itemID })
}

func (s *stubPlacements) DeleteByItem(_ context.Context, templateID, itemID int64) (bool, error) {
	for i, p := range s.rows {
		if p.TemplateID == templateID && p.ItemID == itemID {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *stubPlacements) ListByTemplate(_ context.Context, templateID int64) ([]models.Placement, error) {
	list := []models.Placement{}
	for _, p := range s.rows {
		if p.TemplateID == templateID {
			list = append(list, p)
		}
	}
	return list, nil
}

type stubPrinter struct{}

func (stubPrinter) PrintPDF(context.Context, []byte, float64, float64) ([]byte, error) {
	return []byte("%PDF-1.4"), nil
}

type testServer struct {
	handler    http.Handler
	auth       *middleware.Authenticator
	templates  *stubTemplates
	placements *stubPlacements
}

func newTestServer() *testServer {
	catalog := &stubCatalog{items: map[int64]models.CatalogItem{
		1: {ID: 1, Code: "A1", Name: "Arroz"},
		2: {ID: 2, Code: "F2", Name: "Feijão"},
	}}
	templates := &stubTemplates{}
	placements := &stubPlacements{}

	placementService := service.NewPlacementService(templates, placements, catalog)
	flyers := service.NewFlyerService(templates, placementService, nil, stubPrinter{}, render.DefaultLayout())
	auth := middleware.NewAuthenticator("segredo")

	controllers := &Controllers{
		Catalog:   controller.NewCatalogController(nil, nil),
		ImageSync: controller.NewImageSyncController(nil),
		Import:    controller.NewImportController(nil),
		Template:  controller.NewTemplateController(nil),
		Placement: controller.NewPlacementController(placementService),
		Flyer:     controller.NewFlyerController(flyers),
		Company:   controller.NewCompanyController(nil),
	}
	return &testServer{
		handler:    NewRouter(controllers, auth, middleware.NewRateLimiter(nil, "render", 1, time.Minute)),
		auth:       auth,
		templates:  templates,
		placements: placements,
	}
}

func (s *testServer) do(t *testing.T, method, path, body string, actor *authz.Actor) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if actor != nil {
		token, err := s.auth.IssueToken(actor, time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) httpx.ErrorBody {
	t.Helper()
	var body httpx.ErrorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

var admin = &authz.Actor{UserID: 1, Role: authz.RoleAdmin}

func TestPing(t *testing.T) {
	rec := newTestServer().do(t, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestFlyerRoutesArePublic(t *testing.T) {
	s := newTestServer()

	rec := s.do(t, http.MethodGet, "/html/tabloide?template=abc", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), render.ExampleHeading)
	assert.Equal(t, `inline; filename="tabloide.html"`, rec.Header().Get("Content-Disposition"))

	rec = s.do(t, http.MethodGet, "/pdf/tabloide", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF-1.4", rec.Body.String())

	rec = s.do(t, http.MethodGet, "/pdf/exemplo", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "pedido_exemplo.pdf")
}

func TestFlyerUsesFirstTemplate(t *testing.T) {
	s := newTestServer()
	s.templates.templates = []models.FlyerTemplate{{ID: 4, Name: "Quinzena", Columns: 2, Rows: 2, PrimaryColor: "#FFFFFF"}}

	rec := s.do(t, http.MethodGet, "/html/tabloide?template=99", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<title>Quinzena</title>")
}

func TestAssignRoute(t *testing.T) {
	s := newTestServer()
	s.templates.templates = []models.FlyerTemplate{{ID: 1, Name: "Semana", Columns: 3, Rows: 4, PrimaryColor: "#FFFFFF"}}

	rec := s.do(t, http.MethodPost, "/tabloide/templates/1/itens", `{"itemId":1,"position":3}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/tabloide/templates/1/itens", `{"itemId":1,"position":3}`,
		&authz.Actor{UserID: 9, Role: authz.RoleCustomer, CustomerID: 9})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPost, "/tabloide/templates/1/itens", `{"itemId":1,"position":3}`, admin)
	require.Equal(t, http.StatusCreated, rec.Code)
	var placed models.Placement
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&placed))
	assert.Equal(t, 3, placed.Position)
	assert.Equal(t, "Arroz", placed.Item.Name)

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"out of range", `{"itemId":2,"position":13}`, "position"},
		{"position taken", `{"itemId":2,"position":3}`, "position"},
		{"already placed", `{"itemId":1,"position":4}`, "itemId"},
		{"unknown item", `{"itemId":99,"position":4}`, "itemId"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/tabloide/templates/1/itens", tt.body, admin)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.field, decodeError(t, rec).Field)
		})
	}
	assert.Len(t, s.placements.rows, 1)
}

func TestRemoveProductRoute(t *testing.T) {
	s := newTestServer()
	s.placements.rows = []models.Placement{{ID: 1, TemplateID: 1, ItemID: 2, Position: 5}}

	rec := s.do(t, http.MethodDelete, "/tabloide/templates/1/produtos/2", "", admin)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, s.placements.rows)

	// Not placed is still a success
	rec = s.do(t, http.MethodDelete, "/tabloide/templates/1/produtos/2", "", admin)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestBadRequests(t *testing.T) {
	s := newTestServer()

	rec := s.do(t, http.MethodGet, "/tabloide/templates/abc/itens", "", admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "id", decodeError(t, rec).Field)

	rec = s.do(t, http.MethodPost, "/tabloide/templates/1/itens", `{"itemId":`, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/tabloide/templates/1/itens", nil)
	req.Header.Set("Authorization", "Bearer nope")
	rec = httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodGet, "/tabloide/templates/1/itens", "", admin)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
