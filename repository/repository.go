package repository

import (
	"context"
	"errors"
	"fmt"

	"pizzastore/errs"
	"pizzastore/gateway"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL error codes the repository reacts to.
const (
	PgErrUniqueViolation     = "23505" // unique_violation
	PgErrForeignKeyViolation = "23503" // foreign_key_violation
)

// Repository runs the pizza store's queries. All statements bind their
// arguments; nothing user-supplied is ever spliced into SQL text.
type Repository struct {
	gw *gateway.Gateway
}

func New(gw *gateway.Gateway) *Repository {
	return &Repository{gw: gw}
}

// Gateway returns the underlying data gateway.
func (r *Repository) Gateway() *gateway.Gateway {
	return r.gw
}

// WithTx runs fn with a repository bound to a single transaction.
func (r *Repository) WithTx(ctx context.Context, fn func(tx *Repository) error) error {
	return r.gw.Transaction(ctx, func(tx *gateway.Gateway) error {
		return fn(&Repository{gw: tx})
	})
}

func (r *Repository) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int64
	if err := r.gw.DB(ctx).Raw(query, args...).Scan(&n).Error; err != nil {
		return 0, gateway.Wrap(err)
	}
	return int(n), nil
}

// classify turns constraint violations into domain errors and everything else
// into storage errors.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", errs.ErrDuplicateKey, err)
	case errors.As(err, &pgErr) && pgErr.Code == PgErrUniqueViolation:
		return fmt.Errorf("%w: %s", errs.ErrDuplicateKey, pgErr.Detail)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return errs.ErrInUse
	case errors.As(err, &pgErr) && pgErr.Code == PgErrForeignKeyViolation:
		return fmt.Errorf("%w: %s", errs.ErrInUse, pgErr.Detail)
	}
	return gateway.Wrap(err)
}
