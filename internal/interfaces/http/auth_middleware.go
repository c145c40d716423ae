package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/identity-api/internal/application/dto"
	"github.com/jhoicas/identity-api/internal/domain/entity"
)

// Locals keys para la identidad resuelta y el token en Fiber.
const (
	LocalCaller = "caller"
	LocalToken  = "token"
)

// CallerResolver resuelve un bearer token a la identidad vigente del llamante.
// Lo implementa *auth.AuthUseCase.
type CallerResolver interface {
	ResolveCaller(ctx context.Context, token string) (*entity.CallerIdentity, error)
}

// AuthMiddleware valida el Bearer Token, re-resuelve la cuenta y deja la identidad en c.Locals.
func AuthMiddleware(resolver CallerResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		caller, err := resolver.ResolveCaller(c.UserContext(), tokenString)
		if err != nil {
			return respondError(c, err)
		}
		c.Locals(LocalCaller, caller)
		c.Locals(LocalToken, tokenString)
		return c.Next()
	}
}

// GetCaller devuelve la identidad del llamante (después del middleware de auth), o nil.
func GetCaller(c *fiber.Ctx) *entity.CallerIdentity {
	v, _ := c.Locals(LocalCaller).(*entity.CallerIdentity)
	return v
}

// GetToken devuelve el bearer token ya validado.
func GetToken(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalToken).(string)
	return s
}
