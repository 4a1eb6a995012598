package repository

import (
	"context"
	"fmt"

	"tabloide-mp/db"
	"tabloide-mp/models"
)

const customerColumns = `id, user_id, nome_completo, telefone, cpf, empresa_associada_id, criado_em, atualizado_em`

// CustomerRepository handles database operations for customer profiles (clientes)
type CustomerRepository struct {
	q db.DBTX
}

// NewCustomerRepository creates a new CustomerRepository
func NewCustomerRepository(q db.DBTX) *CustomerRepository {
	return &CustomerRepository{q: q}
}

// Ensure CustomerRepository implements CustomerRepositoryInterface
var _ CustomerRepositoryInterface = (*CustomerRepository)(nil)

func scanCustomer(row rowScanner) (*models.Customer, error) {
	var c models.Customer
	if err := row.Scan(&c.ID, &c.UserID, &c.FullName, &c.Phone, &c.CPF, &c.CompanyID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepository) Create(ctx context.Context, c *models.Customer) error {
	query := `
		INSERT INTO clientes (user_id, nome_completo, telefone, cpf, empresa_associada_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, criado_em, atualizado_em
	`
	err := r.q.QueryRowContext(ctx, query, c.UserID, c.FullName, c.Phone, c.CPF, c.CompanyID).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return mapPgError(err, "insert customer")
	}
	return nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	c, err := scanCustomer(r.q.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM clientes WHERE id = $1`, id))
	if err != nil {
		return nil, mapPgError(err, "get customer")
	}
	return c, nil
}

// List returns one page of customers ordered by name, optionally limited to one company
func (r *CustomerRepository) List(ctx context.Context, companyID *int64, page, perPage int) ([]models.Customer, int, error) {
	var total int
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM clientes WHERE $1::BIGINT IS NULL OR empresa_associada_id = $1`, companyID).
		Scan(&total)
	if err != nil {
		return nil, 0, mapPgError(err, "count customers")
	}

	query := `
		SELECT ` + customerColumns + `
		FROM clientes
		WHERE $1::BIGINT IS NULL OR empresa_associada_id = $1
		ORDER BY nome_completo, id
		LIMIT $2 OFFSET $3
	`
	rows, err := r.q.QueryContext(ctx, query, companyID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, mapPgError(err, "list customers")
	}
	defer rows.Close()

	customers := []models.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating customers: %w", err)
	}
	return customers, total, nil
}

func (r *CustomerRepository) Update(ctx context.Context, c *models.Customer) error {
	query := `
		UPDATE clientes
		SET user_id = $2, nome_completo = $3, telefone = $4, cpf = $5, empresa_associada_id = $6, atualizado_em = NOW()
		WHERE id = $1
		RETURNING atualizado_em
	`
	err := r.q.QueryRowContext(ctx, query, c.ID, c.UserID, c.FullName, c.Phone, c.CPF, c.CompanyID).Scan(&c.UpdatedAt)
	if err != nil {
		return mapPgError(err, "update customer")
	}
	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM clientes WHERE id = $1`, id)
	return expectOne(res, err, "delete customer")
}
