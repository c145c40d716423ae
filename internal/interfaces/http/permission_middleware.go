package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/identity-api/internal/application/dto"
)

// RequirePermission devuelve un middleware Fiber que exige que el llamante tenga el permiso
// name en true. Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 401 si no hay identidad en el contexto.
//   - 403 si el llamante es una cuenta individual o su blob de permisos no lo habilita.
func RequirePermission(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller := GetCaller(c)
		if caller == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "identidad no encontrada en el contexto",
			})
		}
		if !caller.IsTenant() || !caller.Permissions.Allows(name) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "permiso requerido: " + name,
			})
		}
		return c.Next()
	}
}
