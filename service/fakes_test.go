package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"tabloide-mp/importer"
	"tabloide-mp/models"
)

type memCatalog struct {
	mu     sync.Mutex
	items  map[int64]*models.CatalogItem
	nextID int64
}

func newMemCatalog(items ...models.CatalogItem) *memCatalog {
	c := &memCatalog{items: map[int64]*models.CatalogItem{}}
	for _, item := range items {
		it := item
		c.nextID++
		if it.ID == 0 {
			it.ID = c.nextID
		}
		c.items[it.ID] = &it
	}
	return c
}

func (c *memCatalog) Create(_ context.Context, item *models.CatalogItem) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, it := range c.items {
		if it.Code == item.Code {
			return models.NewValidationError("code", models.ErrAlreadyExists, "already exists")
		}
	}
	c.nextID++
	item.ID = c.nextID
	cp := *item
	c.items[item.ID] = &cp
	return nil
}

func (c *memCatalog) GetByID(_ context.Context, id int64) (*models.CatalogItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	it, ok := c.items[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *it
	return &cp, nil
}

func (c *memCatalog) GetByCode(_ context.Context, code string) (*models.CatalogItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, it := range c.items {
		if it.Code == code {
			cp := *it
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

func (c *memCatalog) sorted() []models.CatalogItem {
	items := make([]models.CatalogItem, 0, len(c.items))
	for _, it := range c.items {
		items = append(items, *it)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

func (c *memCatalog) List(_ context.Context, page, perPage int) ([]models.CatalogItem, int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	all := c.sorted()
	start := min((page-1)*perPage, len(all))
	end := min(start+perPage, len(all))
	return all[start:end], len(all), nil
}

func (c *memCatalog) ListAll(_ context.Context) ([]models.CatalogItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sorted(), nil
}

func (c *memCatalog) Update(_ context.Context, item *models.CatalogItem) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[item.ID]; !ok {
		return models.ErrNotFound
	}
	cp := *item
	c.items[item.ID] = &cp
	return nil
}

func (c *memCatalog) SetImage(_ context.Context, id int64, ref string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	it, ok := c.items[id]
	if !ok {
		return models.ErrNotFound
	}
	it.ImageRef = &ref
	return nil
}

func (c *memCatalog) Delete(_ context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[id]; !ok {
		return models.ErrNotFound
	}
	delete(c.items, id)
	return nil
}

func (c *memCatalog) Count(_ context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items), nil
}

// RunImport works on a copy and swaps it in only when fn succeeds, like a transaction
func (c *memCatalog) RunImport(ctx context.Context, fn func(store importer.ItemStore) error) error {
	c.mu.Lock()
	tx := &memCatalog{items: map[int64]*models.CatalogItem{}, nextID: c.nextID}
	for id, it := range c.items {
		cp := *it
		tx.items[id] = &cp
	}
	c.mu.Unlock()

	if err := fn(tx); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items, c.nextID = tx.items, tx.nextID
	return nil
}

func (c *memCatalog) GetOrCreateByCode(ctx context.Context, code string) (*models.CatalogItem, bool, error) {
	if it, err := c.GetByCode(ctx, code); err == nil {
		return it, false, nil
	}
	item := &models.CatalogItem{Code: code}
	if err := c.Create(ctx, item); err != nil {
		return nil, false, err
	}
	return item, true, nil
}

func (c *memCatalog) Save(ctx context.Context, item *models.CatalogItem) error {
	return c.Update(ctx, item)
}

type memTemplates struct {
	templates  map[int64]*models.FlyerTemplate
	nextID     int64
	placements *memPlacements
}

func newMemTemplates(templates ...models.FlyerTemplate) *memTemplates {
	m := &memTemplates{templates: map[int64]*models.FlyerTemplate{}}
	for _, t := range templates {
		tt := t
		m.nextID++
		if tt.ID == 0 {
			tt.ID = m.nextID
		}
		m.templates[tt.ID] = &tt
	}
	return m
}

func (m *memTemplates) Create(_ context.Context, t *models.FlyerTemplate) error {
	m.nextID++
	t.ID = m.nextID
	cp := *t
	m.templates[t.ID] = &cp
	return nil
}

func (m *memTemplates) GetByID(_ context.Context, id int64) (*models.FlyerTemplate, error) {
	t, ok := m.templates[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memTemplates) First(ctx context.Context) (*models.FlyerTemplate, error) {
	list, _ := m.List(ctx)
	if len(list) == 0 {
		return nil, models.ErrNotFound
	}
	return &list[0], nil
}

func (m *memTemplates) List(_ context.Context) ([]models.FlyerTemplate, error) {
	list := []models.FlyerTemplate{}
	for _, t := range m.templates {
		list = append(list, *t)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (m *memTemplates) Update(_ context.Context, t *models.FlyerTemplate) error {
	if _, ok := m.templates[t.ID]; !ok {
		return models.ErrNotFound
	}
	cp := *t
	m.templates[t.ID] = &cp
	return nil
}

func (m *memTemplates) SetBackground(_ context.Context, id int64, ref string) error {
	t, ok := m.templates[id]
	if !ok {
		return models.ErrNotFound
	}
	t.BackgroundRef = &ref
	return nil
}

func (m *memTemplates) Delete(_ context.Context, id int64) error {
	if _, ok := m.templates[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.templates, id)
	return nil
}

func (m *memTemplates) Count(_ context.Context) (int, error) {
	return len(m.templates), nil
}

func (m *memTemplates) MaxPosition(_ context.Context, id int64) (int, error) {
	n := 0
	if m.placements != nil {
		for _, p := range m.placements.rows {
			if p.TemplateID == id && p.Position > n {
				n = p.Position
			}
		}
	}
	return n, nil
}

// memPlacements enforces the same unique rules as the itens_tabloide table
type memPlacements struct {
	mu      sync.Mutex
	rows    map[int64]*models.Placement
	nextID  int64
	catalog *memCatalog
	// skipChecks disables Find* so tests can reach the storage constraint
	skipChecks bool
	// unconstrained drops the storage constraint so only the service guards uniqueness
	unconstrained bool
}

func newMemPlacements(catalog *memCatalog) *memPlacements {
	return &memPlacements{rows: map[int64]*models.Placement{}, catalog: catalog}
}

func (m *memPlacements) conflict(p *models.Placement) error {
	if m.unconstrained {
		return nil
	}
	for _, row := range m.rows {
		if row.ID == p.ID || row.TemplateID != p.TemplateID {
			continue
		}
		if row.Position == p.Position {
			return models.NewValidationError("position", models.ErrPositionTaken, "position already taken")
		}
		if row.ItemID == p.ItemID {
			return models.NewValidationError("itemId", models.ErrItemAlreadyPlaced, "item already placed in this template")
		}
	}
	return nil
}

func (m *memPlacements) Insert(_ context.Context, p *models.Placement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.conflict(p); err != nil {
		return err
	}
	m.nextID++
	p.ID = m.nextID
	cp := *p
	cp.Item = nil
	m.rows[p.ID] = &cp
	return nil
}

func (m *memPlacements) Update(_ context.Context, p *models.Placement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[p.ID]
	if !ok || row.TemplateID != p.TemplateID {
		return models.ErrNotFound
	}
	if err := m.conflict(p); err != nil {
		return err
	}
	row.ItemID, row.Position = p.ItemID, p.Position
	return nil
}

func (m *memPlacements) withItem(p models.Placement) models.Placement {
	if item, err := m.catalog.GetByID(context.Background(), p.ItemID); err == nil {
		p.Item = item
	}
	return p
}

func (m *memPlacements) find(match func(*models.Placement) bool) (*models.Placement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if match(row) {
			p := m.withItem(*row)
			return &p, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *memPlacements) GetByID(_ context.Context, templateID, id int64) (*models.Placement, error) {
	return m.find(func(p *models.Placement) bool { return p.TemplateID == templateID && p.ID == id })
}

func (m *memPlacements) FindByPosition(_ context.Context, templateID int64, position int) (*models.Placement, error) {
	if m.skipChecks {
		return nil, models.ErrNotFound
	}
	return m.find(func(p *models.Placement) bool { return p.TemplateID == templateID && p.Position == position })
}

func (m *memPlacements) FindByItem(_ context.Context, templateID, itemID int64) (*models.Placement, error) {
	if m.skipChecks {
		return nil, models.ErrNotFound
	}
	return m.find(func(p *models.Placement) bool { return p.TemplateID == templateID && p.ItemID == itemID })
}

func (m *memPlacements) DeleteByItem(_ context.Context, templateID, itemID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, row := range m.rows {
		if row.TemplateID == templateID && row.ItemID == itemID {
			delete(m.rows, id)
			return true, nil
		}
	}
	return false, nil
}

func (m *memPlacements) DeleteByID(_ context.Context, templateID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok || row.TemplateID != templateID {
		return models.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memPlacements) ListByTemplate(_ context.Context, templateID int64) ([]models.Placement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := []models.Placement{}
	for _, row := range m.rows {
		if row.TemplateID == templateID {
			list = append(list, m.withItem(*row))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Position < list[j].Position })
	return list, nil
}

func (m *memPlacements) AvailableItems(ctx context.Context, templateID int64) ([]models.CatalogItem, error) {
	placed := map[int64]bool{}
	list, _ := m.ListByTemplate(ctx, templateID)
	for _, p := range list {
		placed[p.ItemID] = true
	}
	all, _ := m.catalog.ListAll(ctx)
	items := []models.CatalogItem{}
	for _, it := range all {
		if !placed[it.ID] {
			items = append(items, it)
		}
	}
	return items, nil
}

type memImports struct {
	rows []models.PriceImport
}

func (m *memImports) Insert(_ context.Context, imp *models.PriceImport) error {
	imp.CreatedAt = time.Now()
	m.rows = append(m.rows, *imp)
	return nil
}

func (m *memImports) GetByID(_ context.Context, id uuid.UUID) (*models.PriceImport, error) {
	for _, imp := range m.rows {
		if imp.ID == id {
			cp := imp
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *memImports) List(_ context.Context, limit int) ([]models.PriceImport, error) {
	return m.rows[:min(limit, len(m.rows))], nil
}

func (m *memImports) Count(_ context.Context) (int, error) {
	return len(m.rows), nil
}

type memCompanies struct {
	rows   map[int64]*models.Company
	nextID int64
}

func (m *memCompanies) Create(_ context.Context, c *models.Company) error {
	if m.rows == nil {
		m.rows = map[int64]*models.Company{}
	}
	m.nextID++
	c.ID = m.nextID
	cp := *c
	m.rows[c.ID] = &cp
	return nil
}

func (m *memCompanies) GetByID(_ context.Context, id int64) (*models.Company, error) {
	c, ok := m.rows[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memCompanies) List(_ context.Context, page, perPage int) ([]models.Company, int, error) {
	list := []models.Company{}
	for _, c := range m.rows {
		list = append(list, *c)
	}
	return list, len(list), nil
}

func (m *memCompanies) Update(_ context.Context, c *models.Company) error {
	if _, ok := m.rows[c.ID]; !ok {
		return models.ErrNotFound
	}
	cp := *c
	m.rows[c.ID] = &cp
	return nil
}

func (m *memCompanies) Delete(_ context.Context, id int64) error {
	if _, ok := m.rows[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

type memCustomers struct {
	rows   map[int64]*models.Customer
	nextID int64
}

func (m *memCustomers) Create(_ context.Context, c *models.Customer) error {
	if m.rows == nil {
		m.rows = map[int64]*models.Customer{}
	}
	m.nextID++
	c.ID = m.nextID
	cp := *c
	m.rows[c.ID] = &cp
	return nil
}

func (m *memCustomers) GetByID(_ context.Context, id int64) (*models.Customer, error) {
	c, ok := m.rows[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memCustomers) List(_ context.Context, companyID *int64, page, perPage int) ([]models.Customer, int, error) {
	list := []models.Customer{}
	for _, c := range m.rows {
		if companyID == nil || (c.CompanyID != nil && *c.CompanyID == *companyID) {
			list = append(list, *c)
		}
	}
	return list, len(list), nil
}

func (m *memCustomers) Update(_ context.Context, c *models.Customer) error {
	if _, ok := m.rows[c.ID]; !ok {
		return models.ErrNotFound
	}
	cp := *c
	m.rows[c.ID] = &cp
	return nil
}

func (m *memCustomers) Delete(_ context.Context, id int64) error {
	if _, ok := m.rows[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

type fakePrinter struct {
	html          []byte
	width, height float64
	err           error
}

func (p *fakePrinter) PrintPDF(_ context.Context, html []byte, widthIn, heightIn float64) ([]byte, error) {
	p.html, p.width, p.height = html, widthIn, heightIn
	if p.err != nil {
		return nil, p.err
	}
	return []byte("%PDF-1.4 fake"), nil
}

type fakeDrive struct {
	files     []DriveFile
	content   map[string][]byte
	downloads int
}

func (d *fakeDrive) ListImages(_ context.Context, _ string) ([]DriveFile, error) {
	return d.files, nil
}

func (d *fakeDrive) DownloadImage(_ context.Context, fileID string) ([]byte, error) {
	d.downloads++
	data, ok := d.content[fileID]
	if !ok {
		return nil, fmt.Errorf("file %s not found", fileID)
	}
	return data, nil
}

// failingSaves wraps memCatalog so every Save inside an import fails
type failingSaves struct {
	*memCatalog
}

func (f failingSaves) RunImport(ctx context.Context, fn func(store importer.ItemStore) error) error {
	return f.memCatalog.RunImport(ctx, func(store importer.ItemStore) error {
		return fn(failingStore{store})
	})
}

type failingStore struct {
	importer.ItemStore
}

func (failingStore) Save(context.Context, *models.CatalogItem) error {
	return fmt.Errorf("disk full")
}
