package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/identity-api/internal/domain"
	"github.com/jhoicas/identity-api/internal/domain/entity"
	"github.com/jhoicas/identity-api/internal/domain/repository"
)

var _ repository.TenantAccountRepository = (*TenantAccountRepo)(nil)

const tenantAccountColumns = `id, tenant_id, email, name, password_hash, role, permissions, is_active,
	invited_by, invite_token, invite_expires_at, last_login_at, created_at, updated_at`

// TenantAccountRepo implementación del puerto TenantAccountRepository sobre PostgreSQL.
type TenantAccountRepo struct {
	q Querier
}

// NewTenantAccountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTenantAccountRepository(q Querier) *TenantAccountRepo {
	return &TenantAccountRepo{q: q}
}

// Create persiste un miembro. (tenant_id, email) es único.
func (r *TenantAccountRepo) Create(ctx context.Context, a *entity.TenantAccount) error {
	query := `
		INSERT INTO tenant_accounts (` + tenantAccountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	perms := a.Permissions
	if perms == nil {
		perms = entity.Permissions{}
	}
	_, err := r.q.Exec(ctx, query,
		a.ID, a.TenantID, a.Email, a.Name, a.PasswordHash, a.Role, perms, a.IsActive,
		a.InvitedBy, a.InviteToken, a.InviteExpiresAt, a.LastLoginAt, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return tenantAccountInsertErr(err)
	}
	return nil
}

// tenantAccountInsertErr solo la restricción (tenant_id, email) es un email duplicado;
// cualquier otra violación de unicidad (p. ej. invite_token) es un conflicto.
func tenantAccountInsertErr(err error) error {
	if !isUniqueViolation(err) {
		return fmt.Errorf("insert tenant account: %w", err)
	}
	if uniqueConstraint(err) == constraintTenantAccountEmail {
		return domain.ErrDuplicateEmail
	}
	return fmt.Errorf("%w: insert tenant account: %w", domain.ErrConflict, err)
}

// FindByID obtiene un miembro por ID.
func (r *TenantAccountRepo) FindByID(ctx context.Context, id string) (*entity.TenantAccount, error) {
	row := r.q.QueryRow(ctx, `SELECT `+tenantAccountColumns+` FROM tenant_accounts WHERE id = $1`, id)
	return scanTenantAccount(row, "get tenant account")
}

// FindByEmail obtiene el miembro más antiguo con ese email en cualquier tenant.
func (r *TenantAccountRepo) FindByEmail(ctx context.Context, email string) (*entity.TenantAccount, error) {
	query := `SELECT ` + tenantAccountColumns + ` FROM tenant_accounts
		WHERE email = $1 ORDER BY created_at ASC LIMIT 1`
	return scanTenantAccount(r.q.QueryRow(ctx, query, email), "get tenant account by email")
}

// FindByInviteToken obtiene el miembro con esa invitación pendiente.
func (r *TenantAccountRepo) FindByInviteToken(ctx context.Context, token string) (*entity.TenantAccount, error) {
	row := r.q.QueryRow(ctx, `SELECT `+tenantAccountColumns+` FROM tenant_accounts WHERE invite_token = $1`, token)
	return scanTenantAccount(row, "get tenant account by invite")
}

// CountActiveByTenant cuenta los miembros activos de un tenant. Las invitaciones pendientes no cuentan.
func (r *TenantAccountRepo) CountActiveByTenant(ctx context.Context, tenantID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM tenant_accounts WHERE tenant_id = $1 AND is_active`, tenantID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count tenant accounts: %w", err)
	}
	return n, nil
}

// TouchLastLogin registra el último login.
func (r *TenantAccountRepo) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	_, err := r.q.Exec(ctx, `UPDATE tenant_accounts SET last_login_at = $2, updated_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}

// ConsumeInvite activa la cuenta con un UPDATE condicionado al token original.
// Si otra transacción ya lo consumió no hay filas y se devuelve (nil, nil).
func (r *TenantAccountRepo) ConsumeInvite(ctx context.Context, id, token string, act repository.Activation) (*entity.TenantAccount, error) {
	query := `
		UPDATE tenant_accounts
		SET password_hash = $3, is_active = TRUE, invite_token = NULL, invite_expires_at = NULL,
			last_login_at = $4, updated_at = $4
		WHERE id = $1 AND invite_token = $2 AND password_hash IS NULL
		RETURNING ` + tenantAccountColumns
	row := r.q.QueryRow(ctx, query, id, token, act.PasswordHash, act.ActivatedAt)
	return scanTenantAccount(row, "consume invite")
}

func scanTenantAccount(row pgx.Row, op string) (*entity.TenantAccount, error) {
	var a entity.TenantAccount
	err := row.Scan(
		&a.ID, &a.TenantID, &a.Email, &a.Name, &a.PasswordHash, &a.Role, &a.Permissions, &a.IsActive,
		&a.InvitedBy, &a.InviteToken, &a.InviteExpiresAt, &a.LastLoginAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &a, nil
}
