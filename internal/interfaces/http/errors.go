package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/identity-api/internal/application/dto"
	"github.com/jhoicas/identity-api/internal/domain"
)

type errorMapping struct {
	target  error
	status  int
	code    string
	message string // vacío = err.Error() del sentinel
}

// errorTable orden importa: ErrStoreUnavailable envuelve la causa real y debe evaluarse antes que el resto.
var errorTable = []errorMapping{
	{domain.ErrStoreUnavailable, fiber.StatusServiceUnavailable, "INTERNAL", "servicio no disponible, intente más tarde"},
	{domain.ErrDuplicateEmail, fiber.StatusConflict, "EMAIL_EXISTS", ""},
	{domain.ErrInvalidCredentials, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", ""},
	{domain.ErrAccountNotActivated, fiber.StatusForbidden, "ACCOUNT_NOT_ACTIVATED", ""},
	{domain.ErrInvalidInvite, fiber.StatusBadRequest, "INVALID_INVITE", ""},
	{domain.ErrInviteExpired, fiber.StatusBadRequest, "INVITE_EXPIRED", ""},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED", "token inválido o expirado"},
	{domain.ErrTokenInvalid, fiber.StatusUnauthorized, "UNAUTHORIZED", "token inválido o expirado"},
	{domain.ErrTokenExpired, fiber.StatusUnauthorized, "UNAUTHORIZED", "token inválido o expirado"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN", ""},
	{domain.ErrUserLimitReached, fiber.StatusForbidden, "USER_LIMIT_REACHED", ""},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", ""},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT", ""},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION", ""},
}

// respondError traduce un error de dominio a dto.ErrorResponse. Los errores no reconocidos
// se responden como 500 sin exponer el detalle.
func respondError(c *fiber.Ctx, err error) error {
	for _, m := range errorTable {
		if errors.Is(err, m.target) {
			msg := m.message
			if msg == "" {
				msg = m.target.Error()
			}
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: msg})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func validationFailed(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
}
