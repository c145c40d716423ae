package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/jhoicas/identity-api/internal/domain/entity"
)

// SignupRequest entrada para el registro de una cuenta individual.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate valida el payload de registro.
func (r SignupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(2, 200)),
		validation.Field(&r.Email, validation.Required, validation.Length(3, 254), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 72)),
	)
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate valida el payload de login. La contraseña no se valida en longitud
// para no dar pistas sobre la política.
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// ActivateInviteRequest entrada para activar una invitación de tenant.
type ActivateInviteRequest struct {
	InviteToken string `json:"inviteToken"`
	Password    string `json:"password"`
}

// Validate valida el payload de activación.
func (r ActivateInviteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.InviteToken, validation.Required),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 72)),
	)
}

// CallerResponse identidad resuelta expuesta a los consumidores de la API (sin secretos).
type CallerResponse struct {
	ID          string         `json:"id"`
	Kind        string         `json:"kind"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	TenantID    string         `json:"tenantId,omitempty"`
	Role        string         `json:"role,omitempty"`
	Permissions map[string]any `json:"permissions,omitempty"`
	IsActive    bool           `json:"isActive"`
}

// AuthResponse salida de signup, login y activación.
type AuthResponse struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expiresAt"`
	User      CallerResponse `json:"user"`
}

// MessageResponse acuse simple (logout).
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NewCallerResponse mapea la identidad de dominio a la respuesta HTTP.
func NewCallerResponse(id entity.CallerIdentity) CallerResponse {
	out := CallerResponse{
		ID:       id.ID,
		Kind:     string(id.Kind),
		Name:     id.Name,
		Email:    id.Email,
		TenantID: id.TenantID,
		Role:     id.Role,
		IsActive: id.IsActive,
	}
	if id.IsTenant() {
		out.Permissions = map[string]any(id.Permissions)
		if out.Permissions == nil {
			out.Permissions = map[string]any{}
		}
	}
	return out
}
