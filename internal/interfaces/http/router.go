package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/ingest"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/application/reports"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	ComponentUC    *usecase.ComponentUseCase
	LocationUC     *usecase.LocationUseCase
	ItemsUC        *usecase.ItemsUseCase
	TransactionsUC *usecase.TransactionsUseCase
	Engine         *ledger.Engine
	BulkUC         *ingest.BulkUseCase
	Verifier       *ledger.Verifier
	Aggregator     *reports.Aggregator
	PDFUC          *reports.PDFUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Plantas y ubicaciones (protegido; creación solo admin)
	locationHandler := NewLocationHandler(deps.LocationUC)
	facilities := protected.Group("/facilities")
	facilities.Post("/", RequireRole(entity.RoleAdmin), locationHandler.CreateFacility)
	locations := protected.Group("/locations")
	locations.Post("/", RequireRole(entity.RoleAdmin), locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)

	// Componentes (protegido; escritura admin/almacenista)
	components := protected.Group("/components")
	componentHandler := NewComponentHandler(deps.ComponentUC)
	components.Post("/", RequireRole(entity.RoleAdmin, entity.RoleAlmacenista), componentHandler.Create)
	components.Get("/", componentHandler.List)
	components.Get("/:id", componentHandler.GetByID)
	components.Put("/:id", RequireRole(entity.RoleAdmin, entity.RoleAlmacenista), componentHandler.Update)
	components.Delete("/:id", RequireRole(entity.RoleAdmin), componentHandler.Deactivate)

	// Motor de inventario (protegido). Consume lo puede invocar el operario de
	// línea; el resto de mutaciones requiere almacenista o admin.
	ledgerGroup := protected.Group("/ledger")
	ledgerHandler := NewLedgerHandler(deps.Engine, deps.BulkUC, deps.Verifier)
	ledgerGroup.Post("/add", RequireRole(entity.RoleAdmin, entity.RoleAlmacenista), ledgerHandler.AddStock)
	ledgerGroup.Post("/remove", RequireRole(entity.RoleAdmin, entity.RoleAlmacenista), ledgerHandler.RemoveStock)
	ledgerGroup.Post("/transfer", RequireRole(entity.RoleAdmin, entity.RoleAlmacenista), ledgerHandler.Transfer)
	ledgerGroup.Post("/consume", ledgerHandler.Consume)
	ledgerGroup.Post("/bulk", RequireRole(entity.RoleAdmin, entity.RoleAlmacenista), ledgerHandler.BulkIngest)
	ledgerGroup.Get("/verify", RequireRole(entity.RoleAdmin), ledgerHandler.Verify)

	// Filas del ledger (protegido)
	itemsHandler := NewItemsHandler(deps.ItemsUC)
	items := protected.Group("/items")
	items.Get("/", itemsHandler.Get)
	items.Put("/min-stock", RequireRole(entity.RoleAdmin, entity.RoleAlmacenista), itemsHandler.SetMinStock)
	locations.Get("/:id/items", itemsHandler.ListByLocation)

	// Log de transacciones (protegido, solo lectura)
	transactionsHandler := NewTransactionsHandler(deps.TransactionsUC)
	transactions := protected.Group("/transactions")
	transactions.Get("/", transactionsHandler.ListRecent)
	transactions.Get("/:id", transactionsHandler.GetByID)
	components.Get("/:id/transactions", transactionsHandler.ListByComponent)

	// Dashboard (protegido, solo lectura)
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.Aggregator, deps.PDFUC)
	dashboard.Get("/stats", dashboardHandler.Stats)
	dashboard.Get("/low-stock", dashboardHandler.LowStock)
	dashboard.Get("/low-stock/pdf", dashboardHandler.LowStockPDF)
	dashboard.Get("/recent", dashboardHandler.Recent)
}
