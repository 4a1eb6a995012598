package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"

	"tabloide-mp/db"
	"tabloide-mp/importer"
	"tabloide-mp/models"
)

const catalogItemColumns = `id, codigo, codigo_barras, nome, descricao, preco, imagem, criado_em, atualizado_em`

// CatalogRepository handles database operations for catalog items (produtos)
type CatalogRepository struct {
	conn *sql.DB
	q    db.DBTX
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(conn *sql.DB) *CatalogRepository {
	return &CatalogRepository{conn: conn, q: conn}
}

// Ensure CatalogRepository implements CatalogRepositoryInterface
var _ CatalogRepositoryInterface = (*CatalogRepository)(nil)

// Ensure a transaction-bound CatalogRepository can feed the import normalizer
var _ importer.ItemStore = (*CatalogRepository)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCatalogItem(row rowScanner) (*models.CatalogItem, error) {
	var item models.CatalogItem
	err := row.Scan(
		&item.ID,
		&item.Code,
		&item.Barcode,
		&item.Name,
		&item.Description,
		&item.Price,
		&item.ImageRef,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *CatalogRepository) Create(ctx context.Context, item *models.CatalogItem) error {
	query := `
		INSERT INTO produtos (codigo, codigo_barras, nome, descricao, preco, imagem)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, criado_em, atualizado_em
	`
	err := r.q.QueryRowContext(ctx, query, item.Code, item.Barcode, item.Name, item.Description, item.Price, item.ImageRef).
		Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return mapPgError(err, "insert catalog item")
	}
	log.Ctx(ctx).Info().Int64("id", item.ID).Str("code", item.Code).Msg("✓ Catalog item created")
	return nil
}

func (r *CatalogRepository) GetByID(ctx context.Context, id int64) (*models.CatalogItem, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+catalogItemColumns+` FROM produtos WHERE id = $1`, id)
	item, err := scanCatalogItem(row)
	if err != nil {
		return nil, mapPgError(err, "get catalog item")
	}
	return item, nil
}

func (r *CatalogRepository) GetByCode(ctx context.Context, code string) (*models.CatalogItem, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+catalogItemColumns+` FROM produtos WHERE codigo = $1`, code)
	item, err := scanCatalogItem(row)
	if err != nil {
		return nil, mapPgError(err, "get catalog item by code")
	}
	return item, nil
}

// List returns one page of items ordered by name, plus the total count
func (r *CatalogRepository) List(ctx context.Context, page, perPage int) ([]models.CatalogItem, int, error) {
	var total int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM produtos`).Scan(&total); err != nil {
		return nil, 0, mapPgError(err, "count catalog items")
	}

	query := `SELECT ` + catalogItemColumns + ` FROM produtos ORDER BY nome, id LIMIT $1 OFFSET $2`
	items, err := r.query(ctx, query, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListAll returns every item ordered by code
func (r *CatalogRepository) ListAll(ctx context.Context) ([]models.CatalogItem, error) {
	return r.query(ctx, `SELECT `+catalogItemColumns+` FROM produtos ORDER BY codigo`)
}

func (r *CatalogRepository) query(ctx context.Context, query string, args ...any) ([]models.CatalogItem, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapPgError(err, "list catalog items")
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
		return nil, fmt.Errorf("error iterating catalog items: %w", err)
	}
	return items, nil
}

// Update writes every editable column of item
func (r *CatalogRepository) Update(ctx context.Context, item *models.CatalogItem) error {
	query := `
		UPDATE produtos
		SET codigo = $2, codigo_barras = $3, nome = $4, descricao = $5, preco = $6, imagem = $7, atualizado_em = NOW()
		WHERE id = $1
		RETURNING atualizado_em
	`
	err := r.q.QueryRowContext(ctx, query, item.ID, item.Code, item.Barcode, item.Name, item.Description, item.Price, item.ImageRef).
		Scan(&item.UpdatedAt)
	if err != nil {
		return mapPgError(err, "update catalog item")
	}
	return nil
}

func (r *CatalogRepository) SetImage(ctx context.Context, id int64, ref string) error {
	res, err := r.q.ExecContext(ctx, `UPDATE produtos SET imagem = $2, atualizado_em = NOW() WHERE id = $1`, id, ref)
	return expectOne(res, err, "set catalog item image")
}

func (r *CatalogRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM produtos WHERE id = $1`, id)
	return expectOne(res, err, "delete catalog item")
}

func (r *CatalogRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM produtos`).Scan(&n); err != nil {
		return 0, mapPgError(err, "count catalog items")
	}
	return n, nil
}

// GetOrCreateByCode fetches the item with code, inserting an empty one when missing.
// The boolean reports whether the row was created.
func (r *CatalogRepository) GetOrCreateByCode(ctx context.Context, code string) (*models.CatalogItem, bool, error) {
	query := `
		INSERT INTO produtos (codigo) VALUES ($1)
		ON CONFLICT (codigo) DO NOTHING
		RETURNING ` + catalogItemColumns
	item, err := scanCatalogItem(r.q.QueryRowContext(ctx, query, code))
	if err == nil {
		return item, true, nil
	}
	if err != sql.ErrNoRows {
		return nil, false, mapPgError(err, "create catalog item")
	}

	item, err = r.GetByCode(ctx, code)
	if err != nil {
		return nil, false, err
	}
	return item, false, nil
}

// Save persists an item fetched through GetOrCreateByCode
func (r *CatalogRepository) Save(ctx context.Context, item *models.CatalogItem) error {
	return r.Update(ctx, item)
}

// RunImport runs fn with a store bound to a single transaction. Returning an error rolls back every row.
func (r *CatalogRepository) RunImport(ctx context.Context, fn func(store importer.ItemStore) error) error {
	return db.WithTx(ctx, r.conn, func(tx *sql.Tx) error {
		return fn(&CatalogRepository{conn: r.conn, q: tx})
	})
}

func expectOne(res sql.Result, err error, action string) error {
	if err != nil {
		return mapPgError(err, action)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to %s: %w", action, err)
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}
