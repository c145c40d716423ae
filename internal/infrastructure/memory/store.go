package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/identity-api/internal/domain"
	"github.com/jhoicas/identity-api/internal/domain/entity"
	"github.com/jhoicas/identity-api/internal/domain/repository"
)

var (
	_ repository.IndividualAccountRepository = (*IndividualAccountRepo)(nil)
	_ repository.TenantAccountRepository     = (*TenantAccountRepo)(nil)
	_ repository.TenantRepository            = (*TenantRepo)(nil)
)

// Store almacenamiento en memoria de cuentas y tenants, para desarrollo local y tests.
// Todas las colecciones comparten un único mutex, así una operación es atómica frente a las demás.
type Store struct {
	mu          sync.RWMutex
	individuals map[string]*entity.IndividualAccount
	members     map[string]*entity.TenantAccount
	tenants     map[string]*entity.Tenant
	failWith    error
}

// NewStore construye un almacenamiento vacío.
func NewStore() *Store {
	return &Store{
		individuals: make(map[string]*entity.IndividualAccount),
		members:     make(map[string]*entity.TenantAccount),
		tenants:     make(map[string]*entity.Tenant),
	}
}

// FailWith hace que toda operación posterior devuelva err (nil restablece). Simula caídas del almacenamiento.
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = err
}

// Individuals repositorio de cuentas individuales.
func (s *Store) Individuals() *IndividualAccountRepo { return &IndividualAccountRepo{s: s} }

// Members repositorio de miembros de tenants.
func (s *Store) Members() *TenantAccountRepo { return &TenantAccountRepo{s: s} }

// Tenants repositorio de tenants.
func (s *Store) Tenants() *TenantRepo { return &TenantRepo{s: s} }

// IndividualAccountRepo implementación en memoria de repository.IndividualAccountRepository.
type IndividualAccountRepo struct{ s *Store }

// Create persiste una cuenta individual. El email es único.
func (r *IndividualAccountRepo) Create(_ context.Context, a *entity.IndividualAccount) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWith != nil {
		return r.s.failWith
	}
	for _, ex := range r.s.individuals {
		if ex.Email == a.Email {
			return domain.ErrDuplicateEmail
		}
	}
	cp := *a
	r.s.individuals[a.ID] = &cp
	return nil
}

// FindByID obtiene una cuenta por ID.
func (r *IndividualAccountRepo) FindByID(_ context.Context, id string) (*entity.IndividualAccount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	a, ok := r.s.individuals[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

// FindByEmail obtiene una cuenta por email.
func (r *IndividualAccountRepo) FindByEmail(_ context.Context, email string) (*entity.IndividualAccount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	for _, a := range r.s.individuals {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

// TenantAccountRepo implementación en memoria de repository.TenantAccountRepository.
type TenantAccountRepo struct{ s *Store }

// Create persiste un miembro. El par (tenant, email) es único.
func (r *TenantAccountRepo) Create(_ context.Context, a *entity.TenantAccount) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWith != nil {
		return r.s.failWith
	}
	for _, ex := range r.s.members {
		if ex.TenantID == a.TenantID && ex.Email == a.Email {
			return domain.ErrDuplicateEmail
		}
	}
	r.s.members[a.ID] = cloneMember(a)
	return nil
}

// FindByID obtiene un miembro por ID.
func (r *TenantAccountRepo) FindByID(_ context.Context, id string) (*entity.TenantAccount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	a, ok := r.s.members[id]
	if !ok {
		return nil, nil
	}
	return cloneMember(a), nil
}

// FindByEmail búsqueda global; ante duplicados entre tenants devuelve el más antiguo.
func (r *TenantAccountRepo) FindByEmail(_ context.Context, email string) (*entity.TenantAccount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	var found *entity.TenantAccount
	for _, a := range r.s.members {
		if a.Email != email {
			continue
		}
		if found == nil || a.CreatedAt.Before(found.CreatedAt) {
			found = a
		}
	}
	if found == nil {
		return nil, nil
	}
	return cloneMember(found), nil
}

// FindByInviteToken obtiene el miembro con esa invitación pendiente.
func (r *TenantAccountRepo) FindByInviteToken(_ context.Context, token string) (*entity.TenantAccount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	if token == "" {
		return nil, nil
	}
	for _, a := range r.s.members {
		if a.InviteToken != nil && *a.InviteToken == token {
			return cloneMember(a), nil
		}
	}
	return nil, nil
}

// CountActiveByTenant número de miembros activos del tenant. Las invitaciones pendientes no cuentan.
func (r *TenantAccountRepo) CountActiveByTenant(_ context.Context, tenantID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.failWith != nil {
		return 0, r.s.failWith
	}
	n := 0
	for _, a := range r.s.members {
		if a.TenantID == tenantID && a.IsActive {
			n++
		}
	}
	return n, nil
}

// TouchLastLogin registra la fecha del último login.
func (r *TenantAccountRepo) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWith != nil {
		return r.s.failWith
	}
	a, ok := r.s.members[id]
	if !ok {
		return domain.ErrNotFound
	}
	t := at
	a.LastLoginAt = &t
	a.UpdatedAt = at
	return nil
}

// ConsumeInvite activa el miembro solo si sigue sin contraseña y su invite_token sigue siendo token.
func (r *TenantAccountRepo) ConsumeInvite(_ context.Context, id, token string, act repository.Activation) (*entity.TenantAccount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	a, ok := r.s.members[id]
	if !ok || a.Activated() || a.InviteToken == nil || *a.InviteToken != token {
		return nil, nil
	}
	hash := act.PasswordHash
	at := act.ActivatedAt
	a.PasswordHash = &hash
	a.IsActive = true
	a.InviteToken = nil
	a.InviteExpiresAt = nil
	a.LastLoginAt = &at
	a.UpdatedAt = at
	return cloneMember(a), nil
}

// SetActive cambia el estado activo de un miembro (administración y tests).
func (r *TenantAccountRepo) SetActive(_ context.Context, id string, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.members[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.IsActive = active
	return nil
}

// TenantRepo implementación en memoria de repository.TenantRepository.
type TenantRepo struct{ s *Store }

// Create persiste un tenant.
func (r *TenantRepo) Create(_ context.Context, t *entity.Tenant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWith != nil {
		return r.s.failWith
	}
	if _, ok := r.s.tenants[t.ID]; ok {
		return domain.ErrConflict
	}
	cp := *t
	r.s.tenants[t.ID] = &cp
	return nil
}

// FindByID obtiene un tenant por ID.
func (r *TenantRepo) FindByID(_ context.Context, id string) (*entity.Tenant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	t, ok := r.s.tenants[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

// SetStatus cambia el estado de un tenant (administración y tests).
func (r *TenantRepo) SetStatus(_ context.Context, id, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tenants[id]
	if !ok {
		return domain.ErrNotFound
	}
	t.Status = status
	return nil
}

// SetMaxUsers cambia el límite de usuarios de un tenant.
func (r *TenantRepo) SetMaxUsers(_ context.Context, id string, n int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tenants[id]
	if !ok {
		return domain.ErrNotFound
	}
	t.MaxUsers = n
	return nil
}

// RunTenant ejecuta fn con los repositorios del store. No hay rollback: si fn falla a mitad,
// lo ya escrito queda.
func (s *Store) RunTenant(ctx context.Context, fn func(tenants repository.TenantRepository, members repository.TenantAccountRepository) error) error {
	return fn(s.Tenants(), s.Members())
}

func cloneMember(a *entity.TenantAccount) *entity.TenantAccount {
	cp := *a
	if a.Permissions != nil {
		cp.Permissions = make(entity.Permissions, len(a.Permissions))
		for k, v := range a.Permissions {
			cp.Permissions[k] = v
		}
	}
	cp.PasswordHash = clonePtr(a.PasswordHash)
	cp.InvitedBy = clonePtr(a.InvitedBy)
	cp.InviteToken = clonePtr(a.InviteToken)
	cp.InviteExpiresAt = clonePtr(a.InviteExpiresAt)
	cp.LastLoginAt = clonePtr(a.LastLoginAt)
	return &cp
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
