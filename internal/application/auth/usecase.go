package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/identity-api/internal/application/dto"
	"github.com/jhoicas/identity-api/internal/domain"
	"github.com/jhoicas/identity-api/internal/domain/entity"
	"github.com/jhoicas/identity-api/internal/domain/repository"
	"github.com/jhoicas/identity-api/pkg/jwt"
	"github.com/jhoicas/identity-api/pkg/logger"
)

// Deps dependencias del caso de uso de auth.
type Deps struct {
	Individuals repository.IndividualAccountRepository
	Members     repository.TenantAccountRepository
	Tenants     repository.TenantRepository
	Hasher      PasswordHasher
	Tokens      TokenIssuer
	Logger      *logger.Logger
	Now         func() time.Time // nil = time.Now
}

// AuthUseCase casos de uso de identidad: registro, login, resolución del llamante,
// activación de invitaciones y logout.
type AuthUseCase struct {
	individuals repository.IndividualAccountRepository
	members     repository.TenantAccountRepository
	tenants     repository.TenantRepository
	hasher      PasswordHasher
	tokens      TokenIssuer
	log         *logger.Logger
	now         func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(d Deps) *AuthUseCase {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	return &AuthUseCase{
		individuals: d.Individuals,
		members:     d.Members,
		tenants:     d.Tenants,
		hasher:      d.Hasher,
		tokens:      d.Tokens,
		log:         logger.OrNop(d.Logger).Component("auth"),
		now:         now,
	}
}

// Signup crea una cuenta individual y devuelve su token. ErrDuplicateEmail si el email ya existe
// entre las cuentas individuales.
func (uc *AuthUseCase) Signup(ctx context.Context, in dto.SignupRequest) (*dto.AuthResponse, error) {
	email := normalizeEmail(in.Email)
	existing, err := uc.individuals.FindByEmail(ctx, email)
	if err != nil {
		return nil, uc.storeErr("buscar cuenta individual por email", err)
	}
	if existing != nil {
		return nil, domain.ErrDuplicateEmail
	}

	hash, err := uc.hasher.Hash(ctx, in.Password)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	account := &entity.IndividualAccount{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(in.Name),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.individuals.Create(ctx, account); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, uc.storeErr("crear cuenta individual", err)
	}
	uc.log.Info().Str("account_id", account.ID).Str("kind", string(entity.KindIndividual)).Msg("cuenta creada")
	return uc.issue(account.Identity())
}

// Login resuelve la identidad a partir de email y contraseña y emite un token.
//
// Precedencia fija: primero cuentas individuales; solo si no hay coincidencia de contraseña
// ahí se intenta con los miembros de tenants.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	identity, err := uc.authenticate(ctx, normalizeEmail(in.Email), in.Password)
	if err != nil {
		return nil, err
	}
	return uc.issue(identity)
}

func (uc *AuthUseCase) authenticate(ctx context.Context, email, plain string) (entity.CallerIdentity, error) {
	individual, err := uc.individuals.FindByEmail(ctx, email)
	if err != nil {
		return entity.CallerIdentity{}, uc.storeErr("buscar cuenta individual por email", err)
	}
	if individual != nil && uc.hasher.Verify(ctx, plain, individual.PasswordHash) {
		return individual.Identity(), nil
	}

	member, err := uc.members.FindByEmail(ctx, email)
	if err != nil {
		return entity.CallerIdentity{}, uc.storeErr("buscar miembro por email", err)
	}
	if member == nil {
		return entity.CallerIdentity{}, domain.ErrInvalidCredentials
	}
	// Una invitación pendiente se informa como tal aunque is_active sea false:
	// ninguna contraseña puede autenticarla y el usuario debe ir al flujo de invitación.
	if !member.Activated() {
		return entity.CallerIdentity{}, domain.ErrAccountNotActivated
	}
	if !member.IsActive {
		uc.log.Debug().Str("account_id", member.ID).Str("reason", "inactive").Msg("login denegado")
		return entity.CallerIdentity{}, domain.ErrInvalidCredentials
	}
	if !uc.hasher.Verify(ctx, plain, *member.PasswordHash) {
		return entity.CallerIdentity{}, domain.ErrInvalidCredentials
	}
	ok, err := uc.tenantAllowsLogin(ctx, member.TenantID)
	if err != nil {
		return entity.CallerIdentity{}, err
	}
	if !ok {
		uc.log.Debug().Str("account_id", member.ID).Str("reason", "tenant_suspended").Msg("login denegado")
		return entity.CallerIdentity{}, domain.ErrInvalidCredentials
	}

	now := uc.now()
	if err := uc.members.TouchLastLogin(ctx, member.ID, now); err != nil {
		return entity.CallerIdentity{}, uc.storeErr("registrar último login", err)
	}
	member.LastLoginAt = &now
	return member.Identity(), nil
}

// ResolveCaller valida el token y vuelve a resolver la cuenta en el almacenamiento.
// Rol, permisos y estado se leen siempre frescos: un token con firma válida de una cuenta
// desactivada o eliminada devuelve ErrUnauthorized.
func (uc *AuthUseCase) ResolveCaller(ctx context.Context, token string) (*entity.CallerIdentity, error) {
	claims, err := uc.tokens.Verify(token)
	if err != nil {
		cause := domain.ErrTokenInvalid
		if errors.Is(err, jwt.ErrTokenExpired) {
			cause = domain.ErrTokenExpired
		}
		uc.log.Debug().Err(err).Str("reason", cause.Error()).Msg("token rechazado")
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, cause)
	}

	switch entity.AccountKind(claims.Kind) {
	case entity.KindIndividual:
		account, err := uc.individuals.FindByID(ctx, claims.Subject)
		if err != nil {
			return nil, uc.storeErr("resolver cuenta individual", err)
		}
		if account == nil {
			return nil, uc.unauthorized(claims, "account_missing")
		}
		identity := account.Identity()
		return &identity, nil

	case entity.KindTenant:
		member, err := uc.members.FindByID(ctx, claims.Subject)
		if err != nil {
			return nil, uc.storeErr("resolver miembro", err)
		}
		if member == nil {
			return nil, uc.unauthorized(claims, "account_missing")
		}
		if !member.IsActive || !member.Activated() {
			return nil, uc.unauthorized(claims, "inactive")
		}
		if member.TenantID != claims.TenantID {
			return nil, uc.unauthorized(claims, "tenant_mismatch")
		}
		ok, err := uc.tenantAllowsLogin(ctx, member.TenantID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, uc.unauthorized(claims, "tenant_suspended")
		}
		identity := member.Identity()
		return &identity, nil

	default:
		uc.log.Debug().Str("kind", claims.Kind).Msg("token con kind desconocido")
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, domain.ErrTokenInvalid)
	}
}

// ActivateInvite convierte una invitación pendiente en una cuenta activa con contraseña.
//
// La escritura es condicional sobre el token original: si dos peticiones concurrentes usan
// la misma invitación, solo una activa la cuenta y las demás reciben ErrInvalidInvite.
func (uc *AuthUseCase) ActivateInvite(ctx context.Context, in dto.ActivateInviteRequest) (*dto.AuthResponse, error) {
	token := strings.TrimSpace(in.InviteToken)
	if token == "" {
		return nil, domain.ErrInvalidInvite
	}
	member, err := uc.members.FindByInviteToken(ctx, token)
	if err != nil {
		return nil, uc.storeErr("buscar invitación", err)
	}
	if member == nil {
		return nil, domain.ErrInvalidInvite
	}
	now := uc.now()
	if member.InviteExpired(now) {
		// El token se conserva para auditoría; no se limpia aquí.
		uc.log.Info().Str("account_id", member.ID).Msg("invitación expirada")
		return nil, domain.ErrInviteExpired
	}

	hash, err := uc.hasher.Hash(ctx, in.Password)
	if err != nil {
		return nil, err
	}
	activated, err := uc.members.ConsumeInvite(ctx, member.ID, token, repository.Activation{
		PasswordHash: hash,
		ActivatedAt:  now,
	})
	if err != nil {
		return nil, uc.storeErr("consumir invitación", err)
	}
	if activated == nil {
		return nil, domain.ErrInvalidInvite
	}
	uc.log.Info().Str("account_id", activated.ID).Str("tenant_id", activated.TenantID).Msg("invitación activada")
	return uc.issue(activated.Identity())
}

// Logout solo confirma: los tokens no tienen estado en el servidor y siguen siendo válidos
// hasta su vencimiento (salvo que la cuenta se desactive).
func (uc *AuthUseCase) Logout(_ context.Context, token string) error {
	if claims, err := uc.tokens.Verify(token); err == nil {
		uc.log.Info().Str("account_id", claims.Subject).Str("kind", claims.Kind).Msg("logout")
	}
	return nil
}

func (uc *AuthUseCase) issue(identity entity.CallerIdentity) (*dto.AuthResponse, error) {
	claims := jwt.SessionClaims{
		Subject: identity.ID,
		Email:   identity.Email,
		Kind:    string(identity.Kind),
	}
	if identity.IsTenant() {
		claims.TenantID = identity.TenantID
	}
	token, err := uc.tokens.Issue(claims)
	if err != nil {
		return nil, fmt.Errorf("emitir token: %w", err)
	}
	return &dto.AuthResponse{
		Token:     token,
		ExpiresAt: uc.now().Add(uc.tokens.TTL()),
		User:      dto.NewCallerResponse(identity),
	}, nil
}

// tenantAllowsLogin consulta el estado del tenant. Un tenant inexistente no permite login.
func (uc *AuthUseCase) tenantAllowsLogin(ctx context.Context, tenantID string) (bool, error) {
	if uc.tenants == nil {
		return true, nil
	}
	tenant, err := uc.tenants.FindByID(ctx, tenantID)
	if err != nil {
		return false, uc.storeErr("buscar tenant", err)
	}
	return tenant != nil && tenant.AllowsLogin(), nil
}

func (uc *AuthUseCase) unauthorized(claims *jwt.SessionClaims, reason string) error {
	uc.log.Info().
		Str("account_id", claims.Subject).
		Str("kind", claims.Kind).
		Str("reason", reason).
		Msg("token válido rechazado en la re-resolución")
	return domain.ErrUnauthorized
}

// storeErr registra el fallo real y devuelve un error opaco envuelto en ErrStoreUnavailable.
func (uc *AuthUseCase) storeErr(op string, err error) error {
	uc.log.Error().Err(err).Str("op", op).Msg("fallo del almacenamiento de credenciales")
	return fmt.Errorf("%w: %s: %w", domain.ErrStoreUnavailable, op, err)
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}
