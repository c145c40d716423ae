package entity

import "time"

// Roles conocidos para TenantAccount. El campo es libre; estos son los que tienen permisos por defecto.
const (
	RoleAdmin     = "admin"
	RoleManager   = "manager"
	RoleDeveloper = "developer"
	RoleViewer    = "viewer"
	RoleFreelance = "freelance"
	RoleUser      = "user"
)

// TenantAccount representa un miembro invitado de un tenant.
// PasswordHash nil significa "invitado pero no activado".
type TenantAccount struct {
	ID              string
	TenantID        string
	Email           string
	Name            string
	PasswordHash    *string
	Role            string
	Permissions     Permissions
	IsActive        bool
	InvitedBy       *string
	InviteToken     *string
	InviteExpiresAt *time.Time
	LastLoginAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Activated indica si la cuenta ya tiene contraseña.
func (a *TenantAccount) Activated() bool {
	return a.PasswordHash != nil && *a.PasswordHash != ""
}

// InviteExpired indica si la invitación venció respecto a now. Sin fecha de vencimiento no expira.
func (a *TenantAccount) InviteExpired(now time.Time) bool {
	return a.InviteExpiresAt != nil && a.InviteExpiresAt.Before(now)
}

// Identity construye la identidad de llamante para el miembro del tenant.
func (a *TenantAccount) Identity() CallerIdentity {
	return CallerIdentity{
		ID:          a.ID,
		Kind:        KindTenant,
		Name:        a.Name,
		Email:       a.Email,
		TenantID:    a.TenantID,
		Role:        a.Role,
		Permissions: a.Permissions,
		IsActive:    a.IsActive,
	}
}
