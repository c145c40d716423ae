package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/identity-api/internal/application/tenant"
	"github.com/jhoicas/identity-api/internal/domain/repository"
)

var _ tenant.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunTenant inicia una transacción, ejecuta fn con repos de tenants y miembros atados a la tx
// y hace Commit o Rollback.
func (r *TxRunner) RunTenant(ctx context.Context, fn func(
	tenants repository.TenantRepository,
	members repository.TenantAccountRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewTenantRepository(tx), NewTenantAccountRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
