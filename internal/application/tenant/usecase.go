package tenant

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/identity-api/internal/application/dto"
	"github.com/jhoicas/identity-api/internal/domain"
	"github.com/jhoicas/identity-api/internal/domain/entity"
	"github.com/jhoicas/identity-api/internal/domain/repository"
	"github.com/jhoicas/identity-api/pkg/logger"
)

// InviteConfig vigencia y URL base de los enlaces de invitación.
type InviteConfig struct {
	TTL     time.Duration
	BaseURL string
}

// TenantUseCase alta de tenants e invitación de miembros.
type TenantUseCase struct {
	tenants repository.TenantRepository
	members repository.TenantAccountRepository
	tx      TxRunner
	cfg     InviteConfig
	log     *logger.Logger
	now     func() time.Time
}

// NewTenantUseCase construye el caso de uso. now nil = time.Now.
func NewTenantUseCase(tenants repository.TenantRepository, members repository.TenantAccountRepository, tx TxRunner, cfg InviteConfig, log *logger.Logger, now func() time.Time) *TenantUseCase {
	if now == nil {
		now = time.Now
	}
	return &TenantUseCase{
		tenants: tenants,
		members: members,
		tx:      tx,
		cfg:     cfg,
		log:     logger.OrNop(log).Component("tenant"),
		now:     now,
	}
}

// CreateTenant crea el tenant (en trial) y su administrador pendiente de activación,
// en una sola transacción. Devuelve el enlace de onboarding del administrador.
func (uc *TenantUseCase) CreateTenant(ctx context.Context, in dto.CreateTenantRequest) (*dto.CreateTenantResponse, error) {
	now := uc.now()
	plan := in.PlanType
	if plan == "" {
		plan = "starter"
	}
	t := &entity.Tenant{
		ID:         uuid.NewString(),
		Name:       strings.TrimSpace(in.CompanyName),
		PlanType:   plan,
		TenantType: "enterprise",
		Status:     entity.TenantStatusTrial,
		MaxUsers:   entity.DefaultMaxUsers,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if d := strings.TrimSpace(in.Domain); d != "" {
		t.Domain = &d
	}
	admin := uc.newPendingMember(t.ID, in.AdminEmail, in.AdminName, entity.RoleAdmin, nil, nil, now)

	err := uc.tx.RunTenant(ctx, func(tenants repository.TenantRepository, members repository.TenantAccountRepository) error {
		if err := tenants.Create(ctx, t); err != nil {
			return fmt.Errorf("crear tenant: %w", err)
		}
		if err := members.Create(ctx, admin); err != nil {
			return fmt.Errorf("crear administrador: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, uc.storeErr("alta de tenant", err)
	}
	uc.log.Info().Str("tenant_id", t.ID).Str("account_id", admin.ID).Msg("tenant creado")

	return &dto.CreateTenantResponse{
		Tenant:     toTenantResponse(t),
		Invitation: uc.invitation(admin, "onboard"),
	}, nil
}

// InviteMember invita a un nuevo miembro al tenant del llamante.
// El llamante debe tener el permiso canManageUsers y el tenant no debe haber llegado a su límite
// de miembros activos.
func (uc *TenantUseCase) InviteMember(ctx context.Context, caller entity.CallerIdentity, in dto.InviteMemberRequest) (*dto.InvitationResponse, error) {
	if !caller.IsTenant() || !caller.Permissions.Allows(entity.PermManageUsers) {
		return nil, domain.ErrForbidden
	}
	t, err := uc.tenants.FindByID(ctx, caller.TenantID)
	if err != nil {
		return nil, uc.storeErr("buscar tenant", err)
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	count, err := uc.members.CountActiveByTenant(ctx, t.ID)
	if err != nil {
		return nil, uc.storeErr("contar miembros", err)
	}
	limit := t.MaxUsers
	if limit <= 0 {
		limit = entity.DefaultMaxUsers
	}
	if count >= limit {
		return nil, domain.ErrUserLimitReached
	}

	invitedBy := caller.ID
	member := uc.newPendingMember(t.ID, in.Email, in.Name, strings.TrimSpace(in.Role), in.Permissions, &invitedBy, uc.now())
	if err := uc.members.Create(ctx, member); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, uc.storeErr("crear miembro invitado", err)
	}
	uc.log.Info().
		Str("tenant_id", t.ID).
		Str("account_id", member.ID).
		Str("invited_by", caller.ID).
		Str("role", member.Role).
		Msg("miembro invitado")

	out := uc.invitation(member, "join")
	return &out, nil
}

func (uc *TenantUseCase) newPendingMember(tenantID, email, name, role string, perms map[string]any, invitedBy *string, now time.Time) *entity.TenantAccount {
	token := uuid.NewString()
	expires := now.Add(uc.cfg.TTL)
	permissions := entity.Permissions(perms)
	if permissions == nil {
		permissions = entity.DefaultPermissions(role)
	}
	return &entity.TenantAccount{
		ID:              uuid.NewString(),
		TenantID:        tenantID,
		Email:           strings.TrimSpace(email),
		Name:            strings.TrimSpace(name),
		Role:            role,
		Permissions:     permissions,
		IsActive:        false,
		InvitedBy:       invitedBy,
		InviteToken:     &token,
		InviteExpiresAt: &expires,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (uc *TenantUseCase) invitation(m *entity.TenantAccount, path string) dto.InvitationResponse {
	out := dto.InvitationResponse{
		Member:     dto.NewCallerResponse(m.Identity()),
		InviteLink: uc.cfg.BaseURL + "/" + path + "?token=" + url.QueryEscape(*m.InviteToken),
	}
	if m.InviteExpiresAt != nil {
		out.InviteExpiresAt = *m.InviteExpiresAt
	}
	return out
}

func (uc *TenantUseCase) storeErr(op string, err error) error {
	if errors.Is(err, domain.ErrDuplicateEmail) || errors.Is(err, domain.ErrConflict) {
		return err
	}
	uc.log.Error().Err(err).Str("op", op).Msg("fallo del almacenamiento de tenants")
	return fmt.Errorf("%w: %s: %w", domain.ErrStoreUnavailable, op, err)
}

func toTenantResponse(t *entity.Tenant) dto.TenantResponse {
	out := dto.TenantResponse{
		ID:         t.ID,
		Name:       t.Name,
		PlanType:   t.PlanType,
		TenantType: t.TenantType,
		Status:     t.Status,
		MaxUsers:   t.MaxUsers,
		CreatedAt:  t.CreatedAt,
	}
	if t.Domain != nil {
		out.Domain = *t.Domain
	}
	return out
}
