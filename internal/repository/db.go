package repository

import (
	"errors"

	"marketplace/internal/database"
	"marketplace/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolationCode is the SQLSTATE for unique_violation.
const uniqueViolationCode = "23505"

// conflictErrors maps unique constraints to the domain error they signal.
var conflictErrors = map[string]error{
	database.ConstraintUsersUsername:    model.ErrUsernameTaken,
	database.ConstraintUsersEmail:       model.ErrEmailTaken,
	database.ConstraintCatalogsSellerID: model.ErrCatalogExists,
}

// uniqueViolation returns the name of the constraint a unique violation hit.
func uniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return pgErr.ConstraintName, true
	}
	return "", false
}

// conflictError translates a unique violation into its domain error.
// Any other error, or a violation of an unmapped constraint, returns nil.
func conflictError(err error) error {
	constraint, ok := uniqueViolation(err)
	if !ok {
		return nil
	}
	return conflictErrors[constraint]
}

// nonNilProducts keeps JSONB product columns as arrays rather than null.
func nonNilProducts(products []model.Product) []model.Product {
	if products == nil {
		return []model.Product{}
	}
	return products
}
