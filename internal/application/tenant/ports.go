package tenant

import (
	"context"

	"github.com/jhoicas/identity-api/internal/domain/repository"
)

// TxRunner ejecuta fn con repositorios atados a una misma transacción.
type TxRunner interface {
	RunTenant(ctx context.Context, fn func(tenants repository.TenantRepository, members repository.TenantAccountRepository) error) error
}
