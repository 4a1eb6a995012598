package repository

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"tabloide-mp/db"
	"tabloide-mp/models"
)

// PlacementRepository handles database operations for template placements (itens_tabloide)
type PlacementRepository struct {
	q db.DBTX
}

// NewPlacementRepository creates a new PlacementRepository
func NewPlacementRepository(q db.DBTX) *PlacementRepository {
	return &PlacementRepository{q: q}
}

// Ensure PlacementRepository implements PlacementRepositoryInterface
var _ PlacementRepositoryInterface = (*PlacementRepository)(nil)

const placementSelect = `
	SELECT it.id, it.template_id, it.produto_id, it.ordem,
		p.id, p.codigo, p.codigo_barras, p.nome, p.descricao, p.preco, p.imagem, p.criado_em, p.atualizado_em
	FROM itens_tabloide it
	JOIN produtos p ON p.id = it.produto_id
`

func scanPlacement(row rowScanner) (*models.Placement, error) {
	var p models.Placement
	var item models.CatalogItem
	err := row.Scan(
		&p.ID, &p.TemplateID, &p.ItemID, &p.Position,
		&item.ID, &item.Code, &item.Barcode, &item.Name, &item.Description, &item.Price, &item.ImageRef,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Item = &item
	return &p, nil
}

// Insert creates a placement. Unique violations come back as PositionTaken or ItemAlreadyPlaced.
func (r *PlacementRepository) Insert(ctx context.Context, p *models.Placement) error {
	query := `
		INSERT INTO itens_tabloide (template_id, produto_id, ordem)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	if err := r.q.QueryRowContext(ctx, query, p.TemplateID, p.ItemID, p.Position).Scan(&p.ID); err != nil {
		return mapPgError(err, "insert placement")
	}
	log.Ctx(ctx).Info().Int64("template_id", p.TemplateID).Int64("item_id", p.ItemID).Int("position", p.Position).
		Msg("✓ Item placed")
	return nil
}

func (r *PlacementRepository) Update(ctx context.Context, p *models.Placement) error {
	query := `UPDATE itens_tabloide SET produto_id = $3, ordem = $4 WHERE id = $1 AND template_id = $2`
	res, err := r.q.ExecContext(ctx, query, p.ID, p.TemplateID, p.ItemID, p.Position)
	return expectOne(res, err, "update placement")
}

func (r *PlacementRepository) GetByID(ctx context.Context, templateID, id int64) (*models.Placement, error) {
	p, err := scanPlacement(r.q.QueryRowContext(ctx, placementSelect+` WHERE it.template_id = $1 AND it.id = $2`, templateID, id))
	if err != nil {
		return nil, mapPgError(err, "get placement")
	}
	return p, nil
}

// FindByPosition returns the placement at position, ErrNotFound when the cell is empty
func (r *PlacementRepository) FindByPosition(ctx context.Context, templateID int64, position int) (*models.Placement, error) {
	p, err := scanPlacement(r.q.QueryRowContext(ctx, placementSelect+` WHERE it.template_id = $1 AND it.ordem = $2`, templateID, position))
	if err != nil {
		return nil, mapPgError(err, "find placement by position")
	}
	return p, nil
}

// FindByItem returns the placement of itemID, ErrNotFound when the item is not in the template
func (r *PlacementRepository) FindByItem(ctx context.Context, templateID, itemID int64) (*models.Placement, error) {
	p, err := scanPlacement(r.q.QueryRowContext(ctx, placementSelect+` WHERE it.template_id = $1 AND it.produto_id = $2`, templateID, itemID))
	if err != nil {
		return nil, mapPgError(err, "find placement by item")
	}
	return p, nil
}

// DeleteByItem removes the placement of itemID and reports whether one existed
func (r *PlacementRepository) DeleteByItem(ctx context.Context, templateID, itemID int64) (bool, error) {
	res, err := r.q.ExecContext(ctx, `DELETE FROM itens_tabloide WHERE template_id = $1 AND produto_id = $2`, templateID, itemID)
	if err != nil {
		return false, mapPgError(err, "delete placement")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete placement: %w", err)
	}
	return n > 0, nil
}

func (r *PlacementRepository) DeleteByID(ctx context.Context, templateID, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM itens_tabloide WHERE template_id = $1 AND id = $2`, templateID, id)
	return expectOne(res, err, "delete placement")
}

// ListByTemplate returns the placements with their items ordered by position
func (r *PlacementRepository) ListByTemplate(ctx context.Context, templateID int64) ([]models.Placement, error) {
	rows, err := r.q.QueryContext(ctx, placementSelect+` WHERE it.template_id = $1 ORDER BY it.ordem`, templateID)
	if err != nil {
		return nil, mapPgError(err, "list placements")
	}
	defer rows.Close()

	placements := []models.Placement{}
	for rows.Next() {
		p, err := scanPlacement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan placement: %w", err)
		}
		placements = append(placements, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating placements: %w", err)
	}
	return placements, nil
}

// AvailableItems lists catalog items not yet placed in the template, ordered by name
func (r *PlacementRepository) AvailableItems(ctx context.Context, templateID int64) ([]models.CatalogItem, error) {
	query := `
		SELECT ` + catalogItemColumns + `
		FROM produtos p
		WHERE NOT EXISTS (
			SELECT 1 FROM itens_tabloide it WHERE it.template_id = $1 AND it.produto_id = p.id
		)
		ORDER BY p.nome, p.id
	`
	rows, err := r.q.QueryContext(ctx, query, templateID)
	if err != nil {
		return nil, mapPgError(err, "list available items")
	}
	defer rows.Close()

	items := []models.CatalogItem{}
	for rows.Next() {
		item, err := scanCatalogItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan catalog item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating available items: %w", err)
	}
	return items, nil
}
