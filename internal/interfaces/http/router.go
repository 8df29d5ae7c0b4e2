package http

import (
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/viverodavinci/vivero-api/internal/application/analytics"
	"github.com/viverodavinci/vivero-api/internal/application/auth"
	"github.com/viverodavinci/vivero-api/internal/application/sales"
	"github.com/viverodavinci/vivero-api/internal/application/usecase"
	"github.com/viverodavinci/vivero-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	EmployeeUC  *usecase.EmployeeUseCase
	CategoryUC  *usecase.CategoryUseCase
	ClientUC    *usecase.ClientUseCase
	ProductUC   *usecase.ProductUseCase
	SaleUC      *sales.SaleUseCase
	ReceiptUC   *sales.ReceiptUseCase
	DashboardUC *analytics.DashboardUseCase
	JWTSecret   string
	ServiceName string

	// Imágenes de productos servidas en estático (vacío = no se sirven).
	UploadDir       string
	UploadURLPrefix string

	// Env y FrontendDist controlan qué se responde fuera de /api y /auth.
	Env          string
	FrontendDist string
}

// crudHandler lo que tiene cada recurso del catálogo.
type crudHandler interface {
	List(*fiber.Ctx) error
	GetByID(*fiber.Ctx) error
	Create(*fiber.Ctx) error
	Update(*fiber.Ctx) error
	Delete(*fiber.Ctx) error
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	if deps.UploadDir != "" && deps.UploadURLPrefix != "" {
		app.Static(deps.UploadURLPrefix, deps.UploadDir)
	}

	// Auth (público)
	authGroup := app.Group("/auth")
	authGroup.Post("/login", NewAuthHandler(deps.AuthUC).Login)
	authGroup.Use(NotFound)

	// Todo /api requiere Bearer Token; los DELETE además rol admin.
	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.JWTSecret)
	adminOnly := RequireRole(entity.RoleAdmin)

	mountCRUD(api.Group("/employees", requireAuth), NewEmployeeHandler(deps.EmployeeUC), adminOnly)
	mountCRUD(api.Group("/products", requireAuth), NewProductHandler(deps.ProductUC), adminOnly)
	mountCRUD(api.Group("/categories", requireAuth), NewCategoryHandler(deps.CategoryUC), adminOnly)
	mountCRUD(api.Group("/clients", requireAuth), NewClientHandler(deps.ClientUC), adminOnly)

	salesGroup := api.Group("/sales", requireAuth)
	saleHandler := NewSaleHandler(deps.SaleUC, deps.ReceiptUC)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/:id/pdf", saleHandler.PDF)
	salesGroup.Get("/:id/xml", saleHandler.XML)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Delete("/:id", adminOnly, saleHandler.Delete)

	api.Get("/dashboard", requireAuth, NewDashboardHandler(deps.DashboardUC).GetSummary)

	api.Use(NotFound)

	registerFrontend(app, deps.Env, deps.FrontendDist)
}

func mountCRUD(g fiber.Router, h crudHandler, adminOnly fiber.Handler) {
	g.Get("/", h.List)
	g.Post("/", h.Create)
	g.Get("/:id", h.GetByID)
	g.Put("/:id", h.Update)
	g.Delete("/:id", adminOnly, h.Delete)
}

// registerFrontend en producción sirve la SPA compilada con fallback a index.html;
// en otro entorno solo responde un mensaje en "/".
func registerFrontend(app *fiber.App, env, dist string) {
	if env == "production" && dist != "" {
		app.Static("/", dist)
		index := filepath.Join(dist, "index.html")
		app.Get("*", func(c *fiber.Ctx) error {
			return c.SendFile(index)
		})
		return
	}
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Backend funcionando en modo " + env)
	})
	app.Use(NotFound)
}
