package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/identity-api/internal/application/dto"
	"github.com/jhoicas/identity-api/internal/application/tenant"
)

// TenantHandler maneja el alta de tenants y las invitaciones de miembros.
type TenantHandler struct {
	uc *tenant.TenantUseCase
}

// NewTenantHandler construye el handler de tenants.
func NewTenantHandler(uc *tenant.TenantUseCase) *TenantHandler {
	return &TenantHandler{uc: uc}
}

// Create godoc
// @Summary      Crear tenant
// @Description  Crea el tenant en trial y devuelve el enlace de onboarding del administrador.
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTenantRequest  true  "companyName, adminEmail, adminName"
// @Success      201   {object}  dto.CreateTenantResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/tenants [post]
func (h *TenantHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTenantRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := in.Validate(); err != nil {
		return validationFailed(c, err)
	}
	out, err := h.uc.CreateTenant(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Invite godoc
// @Summary      Invitar miembro
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.InviteMemberRequest  true  "email, name, role"
// @Success      201   {object}  dto.InvitationResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tenants/invitations [post]
func (h *TenantHandler) Invite(c *fiber.Ctx) error {
	caller := GetCaller(c)
	if caller == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "no autenticado"})
	}
	var in dto.InviteMemberRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := in.Validate(); err != nil {
		return validationFailed(c, err)
	}
	out, err := h.uc.InviteMember(c.UserContext(), *caller, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
