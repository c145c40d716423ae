package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/identity-api/docs"
	"github.com/jhoicas/identity-api/internal/application/auth"
	"github.com/jhoicas/identity-api/internal/application/tenant"
	"github.com/jhoicas/identity-api/internal/domain/repository"
	"github.com/jhoicas/identity-api/internal/infrastructure/memory"
	"github.com/jhoicas/identity-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/identity-api/internal/interfaces/http"
	"github.com/jhoicas/identity-api/pkg/config"
	"github.com/jhoicas/identity-api/pkg/jwt"
	"github.com/jhoicas/identity-api/pkg/logger"
	"github.com/jhoicas/identity-api/pkg/password"
)

// stores repositorios y runner transaccional según STORE_DRIVER.
type stores struct {
	individuals repository.IndividualAccountRepository
	members     repository.TenantAccountRepository
	tenants     repository.TenantRepository
	tx          tenant.TxRunner
	close       func()
}

// @title                       Identity API
// @version                     1.0
// @description                 Cuentas individuales, miembros de tenants e invitaciones.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.StoreDriver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de credenciales")
	}
	defer st.close()

	issuer, err := jwt.NewIssuer(jwt.Config{
		Secret: cfg.JWT.Secret,
		TTL:    cfg.JWT.TTL(),
		Issuer: cfg.JWT.Issuer,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("configuración JWT")
	}
	hasher := password.NewHasher(
		password.WithCost(cfg.Hash.Cost),
		password.WithConcurrency(cfg.Hash.Concurrency),
	)

	authUC := auth.NewAuthUseCase(auth.Deps{
		Individuals: st.individuals,
		Members:     st.members,
		Tenants:     st.tenants,
		Hasher:      hasher,
		Tokens:      issuer,
		Logger:      log,
	})
	tenantUC := tenant.NewTenantUseCase(st.tenants, st.members, st.tx, tenant.InviteConfig{
		TTL:     cfg.Invite.TTL(),
		BaseURL: cfg.Invite.BaseURL,
	}, log, nil)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Identity API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:   authUC,
		TenantUC: tenantUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	if cfg.App.StoreDriver == config.StoreDriverMemory {
		log.Warn().Msg("STORE_DRIVER=memory: los datos se pierden al reiniciar")
		mem := memory.NewStore()
		return &stores{
			individuals: mem.Individuals(),
			members:     mem.Members(),
			tenants:     mem.Tenants(),
			tx:          mem,
			close:       func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	return &stores{
		individuals: postgres.NewIndividualAccountRepository(pool),
		members:     postgres.NewTenantAccountRepository(pool),
		tenants:     postgres.NewTenantRepository(pool),
		tx:          postgres.NewTxRunner(pool),
		close:       pool.Close,
	}, nil
}
