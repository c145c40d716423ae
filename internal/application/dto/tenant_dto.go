package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// CreateTenantRequest alta de un tenant con su administrador (invitado).
type CreateTenantRequest struct {
	CompanyName string `json:"companyName"`
	Domain      string `json:"domain"`
	PlanType    string `json:"planType"`
	AdminEmail  string `json:"adminEmail"`
	AdminName   string `json:"adminName"`
}

// Validate valida el payload de alta de tenant.
func (r CreateTenantRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CompanyName, validation.Required, validation.Length(2, 200)),
		validation.Field(&r.Domain, validation.Length(0, 253), is.Domain),
		validation.Field(&r.PlanType, validation.In("starter", "professional", "enterprise")),
		validation.Field(&r.AdminEmail, validation.Required, is.Email),
		validation.Field(&r.AdminName, validation.Required, validation.Length(1, 200)),
	)
}

// InviteMemberRequest invitación de un nuevo miembro al tenant del llamante.
type InviteMemberRequest struct {
	Email       string         `json:"email"`
	Name        string         `json:"name"`
	Role        string         `json:"role"`
	Permissions map[string]any `json:"permissions,omitempty"`
}

// Validate valida el payload de invitación.
func (r InviteMemberRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Role, validation.Required, validation.Length(1, 50)),
	)
}

// TenantResponse salida de un tenant.
type TenantResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Domain     string    `json:"domain,omitempty"`
	PlanType   string    `json:"planType"`
	TenantType string    `json:"tenantType"`
	Status     string    `json:"status"`
	MaxUsers   int       `json:"maxUsers"`
	CreatedAt  time.Time `json:"createdAt"`
}

// InvitationResponse miembro invitado y enlace de activación. Nunca incluye el token por separado.
type InvitationResponse struct {
	Member          CallerResponse `json:"member"`
	InviteLink      string         `json:"inviteLink"`
	InviteExpiresAt time.Time      `json:"inviteExpiresAt"`
}

// CreateTenantResponse salida del alta de tenant.
type CreateTenantResponse struct {
	Tenant     TenantResponse     `json:"tenant"`
	Invitation InvitationResponse `json:"invitation"`
}
