package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/identity-api/internal/application/auth"
	"github.com/jhoicas/identity-api/internal/application/tenant"
	"github.com/jhoicas/identity-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC   *auth.AuthUseCase
	TenantUC *tenant.TenantUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.AuthUC)

	// Auth
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/activate", authHandler.Activate)
	authGroup.Get("/user", requireAuth, authHandler.Me)
	authGroup.Post("/logout", requireAuth, authHandler.Logout)

	// Tenants: alta pública, invitaciones protegidas por permiso
	if deps.TenantUC != nil {
		tenants := api.Group("/tenants")
		tenantHandler := NewTenantHandler(deps.TenantUC)
		tenants.Post("/", tenantHandler.Create)
		tenants.Post("/invitations", requireAuth, RequirePermission(entity.PermManageUsers), tenantHandler.Invite)
	}
}
