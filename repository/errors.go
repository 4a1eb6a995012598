package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"tabloide-mp/models"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// uniqueFields maps unique constraint names to the request field they protect
var uniqueFields = map[string]string{
	"produtos_codigo_key":        "code",
	"produtos_codigo_barras_key": "barcode",
	"empresas_cnpj_key":          "cnpj",
	"empresas_user_id_key":       "userId",
	"clientes_cpf_key":           "cpf",
	"clientes_user_id_key":       "userId",
}

// mapPgError turns constraint violations into domain errors, anything else passes through wrapped.
// Placement conflicts become PositionTaken / ItemAlreadyPlaced so a losing concurrent writer fails cleanly.
func mapPgError(err error, action string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			switch pgErr.ConstraintName {
			case "itens_tabloide_template_ordem_key":
				return models.NewValidationError("position", models.ErrPositionTaken, "position already taken")
			case "itens_tabloide_template_produto_key":
				return models.NewValidationError("itemId", models.ErrItemAlreadyPlaced, "item already placed in this template")
			}
			if field, ok := uniqueFields[pgErr.ConstraintName]; ok {
				return models.NewValidationError(field, models.ErrAlreadyExists, "already exists")
			}
			return fmt.Errorf("%w: %s", models.ErrAlreadyExists, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s", models.ErrNotFound, pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}
