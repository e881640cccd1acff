package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/cache"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Almacen-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/telemetry"
	httpRouter "github.com/jhoicas/Almacen-api/internal/interfaces/http"
	"github.com/jhoicas/Almacen-api/pkg/config"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

const version = "1.0.0"

// repositories puertos de persistencia que usa la aplicación, sobre PostgreSQL o en memoria.
type repositories struct {
	tx          inventory.TxRunner
	products    repository.ProductRepository
	movements   repository.StockMovementRepository
	categories  repository.CategoryRepository
	units       repository.UnitRepository
	users       repository.UserRepository
	reportCodes repository.ReportCodeRepository
	close       func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("timezone", cfg.App.Location().String()).
		Msg("iniciando aplicación")

	ctx := context.Background()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTel, version)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar OpenTelemetry")
	}

	repos, err := openRepositories(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer repos.close()

	var reportCache inventory.ReportCache
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible; los reportes se calcularán sin caché hasta que responda")
		}
		reportCache = cache.NewReportCache(client, cfg.Report.CacheTTL, log)
	}

	registerMovementUC := inventory.NewRegisterMovementUseCase(repos.tx, repos.products, repos.movements, reportCache, log)
	reportUC := inventory.NewReportUseCase(repos.products, repos.movements, repos.reportCodes, reportCache, log)
	productUC := usecase.NewProductUseCase(repos.tx, repos.products, repos.categories, repos.units, nil, reportCache)
	authUC := auth.NewAuthUseCase(repos.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	bootstrapContador(ctx, authUC, cfg.Admin, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.Tracing())
	app.Use(httpRouter.RequestLogger(log))
	app.Use(httpRouter.SecureHeaders(cfg.App.Env == "development"))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Almacén API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "version": version})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:         productUC,
		CategoryUC:        usecase.NewCategoryUseCase(repos.categories, reportCache),
		UnitUC:            usecase.NewUnitUseCase(repos.units, reportCache),
		UserUC:            usecase.NewUserUseCase(repos.users),
		ReportCodeUC:      usecase.NewReportCodeUseCase(repos.reportCodes),
		RegisterMovement:  registerMovementUC,
		Report:            reportUC,
		AuthUC:            authUC,
		PDF:               infrapdf.NewMarotoPDFGenerator(),
		JWTSecret:         cfg.JWT.Secret,
		Location:          cfg.App.Location(),
		PasswordRateLimit: cfg.Report.PasswordRateLimit,
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
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado de OpenTelemetry")
	}

	log.Info().Msg("aplicación detenida")
}

func openRepositories(ctx context.Context, cfg *config.Config, log *logger.Logger) (*repositories, error) {
	if cfg.DB.InMemory {
		log.Warn().Msg("DB_IN_MEMORY activo: los datos se pierden al reiniciar")
		s := memory.New()
		return &repositories{
			tx:          s,
			products:    s.Products(),
			movements:   s.Movements(),
			categories:  s.Categories(),
			units:       s.Units(),
			users:       s.Users(),
			reportCodes: s.ReportCodes(),
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
		log.Info().Msg("esquema de base de datos aplicado")
	}
	return &repositories{
		tx:          postgres.NewTxRunner(pool),
		products:    postgres.NewProductRepository(pool),
		movements:   postgres.NewStockMovementRepository(pool),
		categories:  postgres.NewCategoryRepository(pool),
		units:       postgres.NewUnitRepository(pool),
		users:       postgres.NewUserRepository(pool),
		reportCodes: postgres.NewReportCodeRepository(pool),
		close:       pool.Close,
	}, nil
}

// bootstrapContador crea el contador inicial configurado; si ya existe no hace nada.
func bootstrapContador(ctx context.Context, uc *auth.AuthUseCase, admin config.AdminConfig, log *logger.Logger) {
	if admin.Username == "" {
		return
	}
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{
		Username: admin.Username,
		Password: admin.Password,
		Role:     entity.RoleContador,
	})
	switch {
	case err == nil:
		log.Info().Str("username", admin.Username).Msg("contador inicial creado")
	case errors.Is(err, domain.ErrUsernameAlreadyExists):
	default:
		log.Error().Err(err).Msg("crear contador inicial")
	}
}
