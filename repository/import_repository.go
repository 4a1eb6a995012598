package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"tabloide-mp/db"
	"tabloide-mp/models"
)

const importColumns = `id, arquivo, caminho, criado_em, processado, erro, criados, atualizados, ignorados`

// ImportRepository stores price import records (importacoes)
type ImportRepository struct {
	q db.DBTX
}

// NewImportRepository creates a new ImportRepository
func NewImportRepository(q db.DBTX) *ImportRepository {
	return &ImportRepository{q: q}
}

// Ensure ImportRepository implements ImportRepositoryInterface
var _ ImportRepositoryInterface = (*ImportRepository)(nil)

func scanImport(row rowScanner) (*models.PriceImport, error) {
	var imp models.PriceImport
	err := row.Scan(&imp.ID, &imp.FileName, &imp.StoredPath, &imp.CreatedAt, &imp.Processed, &imp.Error,
		&imp.Created, &imp.Updated, &imp.Skipped)
	if err != nil {
		return nil, err
	}
	return &imp, nil
}

func (r *ImportRepository) Insert(ctx context.Context, imp *models.PriceImport) error {
	query := `
		INSERT INTO importacoes (id, arquivo, caminho, processado, erro, criados, atualizados, ignorados)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING criado_em
	`
	err := r.q.QueryRowContext(ctx, query, imp.ID, imp.FileName, imp.StoredPath, imp.Processed, imp.Error,
		imp.Created, imp.Updated, imp.Skipped).Scan(&imp.CreatedAt)
	if err != nil {
		return mapPgError(err, "insert import")
	}
	return nil
}

func (r *ImportRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.PriceImport, error) {
	imp, err := scanImport(r.q.QueryRowContext(ctx, `SELECT `+importColumns+` FROM importacoes WHERE id = $1`, id))
	if err != nil {
		return nil, mapPgError(err, "get import")
	}
	return imp, nil
}

// List returns the most recent imports first
func (r *ImportRepository) List(ctx context.Context, limit int) ([]models.PriceImport, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+importColumns+` FROM importacoes ORDER BY criado_em DESC LIMIT $1`, limit)
	if err != nil {
		return nil, mapPgError(err, "list imports")
	}
	defer rows.Close()

	imports := []models.PriceImport{}
	for rows.Next() {
		imp, err := scanImport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan import: %w", err)
		}
		imports = append(imports, *imp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating imports: %w", err)
	}
	return imports, nil
}

func (r *ImportRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM importacoes`).Scan(&n); err != nil {
		return 0, mapPgError(err, "count imports")
	}
	return n, nil
}
