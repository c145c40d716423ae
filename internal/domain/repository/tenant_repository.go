package repository

import (
	"context"

	"github.com/jhoicas/identity-api/internal/domain/entity"
)

// TenantRepository puerto de persistencia para tenants.
type TenantRepository interface {
	Create(ctx context.Context, tenant *entity.Tenant) error
	FindByID(ctx context.Context, id string) (*entity.Tenant, error)
}
