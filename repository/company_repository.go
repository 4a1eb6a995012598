package repository

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"tabloide-mp/db"
	"tabloide-mp/models"
)

const companyColumns = `id, user_id, razao_social, nome_fantasia, cnpj, ie, email, telefone, cep, endereco, cidade, uf, logo, criado_em, atualizado_em`

// CompanyRepository handles database operations for company profiles (empresas)
type CompanyRepository struct {
	q db.DBTX
}

// NewCompanyRepository creates a new CompanyRepository
func NewCompanyRepository(q db.DBTX) *CompanyRepository {
	return &CompanyRepository{q: q}
}

// Ensure CompanyRepository implements CompanyRepositoryInterface
var _ CompanyRepositoryInterface = (*CompanyRepository)(nil)

func scanCompany(row rowScanner) (*models.Company, error) {
	var c models.Company
	err := row.Scan(&c.ID, &c.UserID, &c.LegalName, &c.TradeName, &c.CNPJ, &c.StateReg, &c.Email, &c.Phone,
		&c.CEP, &c.Address, &c.City, &c.UF, &c.LogoRef, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CompanyRepository) Create(ctx context.Context, c *models.Company) error {
	query := `
		INSERT INTO empresas (user_id, razao_social, nome_fantasia, cnpj, ie, email, telefone, cep, endereco, cidade, uf, logo)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, criado_em, atualizado_em
	`
	err := r.q.QueryRowContext(ctx, query, c.UserID, c.LegalName, c.TradeName, c.CNPJ, c.StateReg, c.Email, c.Phone,
		c.CEP, c.Address, c.City, c.UF, c.LogoRef).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return mapPgError(err, "insert company")
	}
	log.Ctx(ctx).Info().Int64("id", c.ID).Str("cnpj", c.CNPJ).Msg("✓ Company created")
	return nil
}

func (r *CompanyRepository) GetByID(ctx context.Context, id int64) (*models.Company, error) {
	c, err := scanCompany(r.q.QueryRowContext(ctx, `SELECT `+companyColumns+` FROM empresas WHERE id = $1`, id))
	if err != nil {
		return nil, mapPgError(err, "get company")
	}
	return c, nil
}

// List returns one page of companies ordered by legal name, plus the total count
func (r *CompanyRepository) List(ctx context.Context, page, perPage int) ([]models.Company, int, error) {
	var total int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM empresas`).Scan(&total); err != nil {
		return nil, 0, mapPgError(err, "count companies")
	}

	rows, err := r.q.QueryContext(ctx, `SELECT `+companyColumns+` FROM empresas ORDER BY razao_social, id LIMIT $1 OFFSET $2`,
		perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, mapPgError(err, "list companies")
	}
	defer rows.Close()

	companies := []models.Company{}
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating companies: %w", err)
	}
	return companies, total, nil
}

func (r *CompanyRepository) Update(ctx context.Context, c *models.Company) error {
	query := `
		UPDATE empresas
		SET user_id = $2, razao_social = $3, nome_fantasia = $4, cnpj = $5, ie = $6, email = $7, telefone = $8,
			cep = $9, endereco = $10, cidade = $11, uf = $12, logo = $13, atualizado_em = NOW()
		WHERE id = $1
		RETURNING atualizado_em
	`
	err := r.q.QueryRowContext(ctx, query, c.ID, c.UserID, c.LegalName, c.TradeName, c.CNPJ, c.StateReg, c.Email,
		c.Phone, c.CEP, c.Address, c.City, c.UF, c.LogoRef).Scan(&c.UpdatedAt)
	if err != nil {
		return mapPgError(err, "update company")
	}
	return nil
}

func (r *CompanyRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM empresas WHERE id = $1`, id)
	return expectOne(res, err, "delete company")
}
