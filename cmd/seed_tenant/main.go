// seed_tenant crea un tenant con su administrador pendiente e imprime el enlace de onboarding.
//
// Uso: go run ./cmd/seed_tenant -company "Acme" -email admin@acme.io -name "Admin" [-plan starter] [-domain acme.io]
// Usa la misma configuración que la API (DATABASE_URL / DB_*, INVITE_*).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/identity-api/internal/application/dto"
	"github.com/jhoicas/identity-api/internal/application/tenant"
	"github.com/jhoicas/identity-api/internal/infrastructure/postgres"
	"github.com/jhoicas/identity-api/pkg/config"
	"github.com/jhoicas/identity-api/pkg/logger"
)

func main() {
	var in dto.CreateTenantRequest
	flag.StringVar(&in.CompanyName, "company", "", "nombre de la empresa")
	flag.StringVar(&in.AdminEmail, "email", "", "email del administrador")
	flag.StringVar(&in.AdminName, "name", "", "nombre del administrador")
	flag.StringVar(&in.PlanType, "plan", "starter", "plan: starter, professional, enterprise")
	flag.StringVar(&in.Domain, "domain", "", "dominio de la empresa (opcional)")
	flag.Parse()

	if err := in.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Parámetros inválidos: %v\n", err)
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed_tenant", Output: os.Stderr})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	uc := tenant.NewTenantUseCase(
		postgres.NewTenantRepository(pool),
		postgres.NewTenantAccountRepository(pool),
		postgres.NewTxRunner(pool),
		tenant.InviteConfig{TTL: cfg.Invite.TTL(), BaseURL: cfg.Invite.BaseURL},
		log, nil,
	)
	out, err := uc.CreateTenant(ctx, in)
	if err != nil {
		log.Fatal().Err(err).Msg("crear tenant")
	}

	fmt.Printf("Tenant:     %s (%s)\n", out.Tenant.Name, out.Tenant.ID)
	fmt.Printf("Admin:      %s\n", out.Invitation.Member.Email)
	fmt.Printf("Onboarding: %s\n", out.Invitation.InviteLink)
	fmt.Printf("Vence:      %s\n", out.Invitation.InviteExpiresAt.Format(time.RFC3339))
}
