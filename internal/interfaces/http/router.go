package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/pdf"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC         *usecase.ProductUseCase
	CategoryUC        *usecase.CategoryUseCase
	UnitUC            *usecase.UnitUseCase
	UserUC            *usecase.UserUseCase
	ReportCodeUC      *usecase.ReportCodeUseCase
	RegisterMovement  *inventory.RegisterMovementUseCase
	Report            *inventory.ReportUseCase
	AuthUC            *auth.AuthUseCase
	PDF               *pdf.MarotoPDFGenerator
	JWTSecret         string
	Location          *time.Location
	PasswordRateLimit int // intentos por minuto y por IP al reporte compartido
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login público; registro solo contador)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleContador), authHandler.Register)

	// Reporte con contraseña compartida (sin token, limitado por IP)
	reportHandler := NewReportHandler(deps.Report, deps.PDF, deps.Location)
	api.Get("/reports/stock/shared", PasswordRateLimit(deps.PasswordRateLimit), reportHandler.Shared)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleContador, entity.RoleBodeguero))
	contador := RequireRole(entity.RoleContador)

	protected.Get("/reports/stock", reportHandler.Stock)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.PDF)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id/label.pdf", productHandler.Label)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	registerCatalog(protected.Group("/categories"), NewCatalogHandler(deps.CategoryUC))
	registerCatalog(protected.Group("/units"), NewCatalogHandler(deps.UnitUC))

	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement)
	invGroup.Post("/inputs", inventoryHandler.RegisterInput)
	invGroup.Get("/inputs", inventoryHandler.ListInputs)
	invGroup.Post("/outputs", inventoryHandler.RegisterOutput)
	invGroup.Get("/outputs", inventoryHandler.ListOutputs)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Get("/verify/:id", inventoryHandler.VerifyProduct)

	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/me", userHandler.Me)
	users.Post("/", contador, userHandler.Create)
	users.Get("/", contador, userHandler.List)
	users.Get("/:id", contador, userHandler.GetByID)
	users.Put("/:id", contador, userHandler.Update)

	reportCodeHandler := NewReportCodeHandler(deps.ReportCodeUC)
	protected.Put("/report-code", contador, reportCodeHandler.Set)
	protected.Get("/report-code", contador, reportCodeHandler.Get)
}

func registerCatalog(g fiber.Router, h *CatalogHandler) {
	g.Post("/", h.Create)
	g.Get("/", h.List)
	g.Get("/:id", h.GetByID)
	g.Put("/:id", h.Update)
	g.Delete("/:id", h.Delete)
}
