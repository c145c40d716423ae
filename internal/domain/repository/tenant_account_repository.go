package repository

import (
	"context"
	"time"

	"github.com/jhoicas/identity-api/internal/domain/entity"
)

// Activation datos que se escriben al consumir una invitación.
type Activation struct {
	PasswordHash string
	ActivatedAt  time.Time
}

// TenantAccountRepository puerto de persistencia para miembros de tenants.
// Los métodos Find* devuelven (nil, nil) cuando no hay registro.
type TenantAccountRepository interface {
	Create(ctx context.Context, account *entity.TenantAccount) error
	FindByID(ctx context.Context, id string) (*entity.TenantAccount, error)
	// FindByEmail búsqueda global (cualquier tenant); es la que decide el login.
	FindByEmail(ctx context.Context, email string) (*entity.TenantAccount, error)
	FindByInviteToken(ctx context.Context, token string) (*entity.TenantAccount, error)
	CountActiveByTenant(ctx context.Context, tenantID string) (int, error)
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
	// ConsumeInvite activa la cuenta solo si invite_token sigue siendo token (escritura condicional).
	// Devuelve (nil, nil) si otra petición ya lo consumió.
	ConsumeInvite(ctx context.Context, id, token string, act Activation) (*entity.TenantAccount, error)
}
