package repository

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"tabloide-mp/db"
	"tabloide-mp/models"
)

const templateColumns = `id, nome, colunas, linhas, cor_fundo_row, cor_fundo_alternada, background_imagem`

// TemplateRepository handles database operations for flyer templates (templates_tabloide)
type TemplateRepository struct {
	q db.DBTX
}

// NewTemplateRepository creates a new TemplateRepository
func NewTemplateRepository(q db.DBTX) *TemplateRepository {
	return &TemplateRepository{q: q}
}

// Ensure TemplateRepository implements TemplateRepositoryInterface
var _ TemplateRepositoryInterface = (*TemplateRepository)(nil)

func scanTemplate(row rowScanner) (*models.FlyerTemplate, error) {
	var t models.FlyerTemplate
	if err := row.Scan(&t.ID, &t.Name, &t.Columns, &t.Rows, &t.PrimaryColor, &t.AlternateColor, &t.BackgroundRef); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TemplateRepository) Create(ctx context.Context, t *models.FlyerTemplate) error {
	query := `
		INSERT INTO templates_tabloide (nome, colunas, linhas, cor_fundo_row, cor_fundo_alternada, background_imagem)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.q.QueryRowContext(ctx, query, t.Name, t.Columns, t.Rows, t.PrimaryColor, t.AlternateColor, t.BackgroundRef).Scan(&t.ID)
	if err != nil {
		return mapPgError(err, "insert template")
	}
	log.Ctx(ctx).Info().Int64("id", t.ID).Str("name", t.Name).Msg("✓ Template created")
	return nil
}

func (r *TemplateRepository) GetByID(ctx context.Context, id int64) (*models.FlyerTemplate, error) {
	t, err := scanTemplate(r.q.QueryRowContext(ctx, `SELECT `+templateColumns+` FROM templates_tabloide WHERE id = $1`, id))
	if err != nil {
		return nil, mapPgError(err, "get template")
	}
	return t, nil
}

// First returns the oldest template, ErrNotFound when there is none
func (r *TemplateRepository) First(ctx context.Context) (*models.FlyerTemplate, error) {
	t, err := scanTemplate(r.q.QueryRowContext(ctx, `SELECT `+templateColumns+` FROM templates_tabloide ORDER BY id LIMIT 1`))
	if err != nil {
		return nil, mapPgError(err, "get first template")
	}
	return t, nil
}

func (r *TemplateRepository) List(ctx context.Context) ([]models.FlyerTemplate, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+templateColumns+` FROM templates_tabloide ORDER BY id`)
	if err != nil {
		return nil, mapPgError(err, "list templates")
	}
	defer rows.Close()

	templates := []models.FlyerTemplate{}
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		templates = append(templates, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating templates: %w", err)
	}
	return templates, nil
}

func (r *TemplateRepository) Update(ctx context.Context, t *models.FlyerTemplate) error {
	query := `
		UPDATE templates_tabloide
		SET nome = $2, colunas = $3, linhas = $4, cor_fundo_row = $5, cor_fundo_alternada = $6
		WHERE id = $1
	`
	res, err := r.q.ExecContext(ctx, query, t.ID, t.Name, t.Columns, t.Rows, t.PrimaryColor, t.AlternateColor)
	return expectOne(res, err, "update template")
}

func (r *TemplateRepository) SetBackground(ctx context.Context, id int64, ref string) error {
	res, err := r.q.ExecContext(ctx, `UPDATE templates_tabloide SET background_imagem = $2 WHERE id = $1`, id, ref)
	return expectOne(res, err, "set template background")
}

func (r *TemplateRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM templates_tabloide WHERE id = $1`, id)
	return expectOne(res, err, "delete template")
}

func (r *TemplateRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM templates_tabloide`).Scan(&n); err != nil {
		return 0, mapPgError(err, "count templates")
	}
	return n, nil
}

// MaxPosition returns the highest occupied position of a template, 0 when it is empty
func (r *TemplateRepository) MaxPosition(ctx context.Context, id int64) (int, error) {
	var n int
	err := r.q.QueryRowContext(ctx, `SELECT COALESCE(MAX(ordem), 0) FROM itens_tabloide WHERE template_id = $1`, id).Scan(&n)
	if err != nil {
		return 0, mapPgError(err, "get template max position")
	}
	return n, nil
}
