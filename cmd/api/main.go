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
	"github.com/gofiber/websocket/v2"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/ingest"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/application/reports"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/almacen-api/internal/infrastructure/pdf"
	"github.com/jhoicas/almacen-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/almacen-api/internal/interfaces/http"
	"github.com/jhoicas/almacen-api/internal/interfaces/ws"
	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// repos agrupa las implementaciones elegidas por DB_DRIVER.
type repos struct {
	components repository.ComponentRepository
	locations  repository.LocationRepository
	facilities repository.FacilityRepository
	users      repository.UserRepository
	items      repository.InventoryItemRepository
	txLog      repository.TransactionRepository
	reports    repository.ReportRepository
	txRunner   ledger.TxRunner
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var r repos
	switch cfg.DB.Driver {
	case "memory":
		// Sin base de datos: estado en memoria (desarrollo y demos).
		store := memory.NewStore()
		r = repos{
			components: store.Components(),
			locations:  store.Locations(),
			facilities: store.Facilities(),
			users:      store.Users(),
			items:      store.Items(),
			txLog:      store.Transactions(),
			reports:    store.Reports(),
			txRunner:   memory.NewTxRunner(store),
		}
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		r = repos{
			components: postgres.NewComponentRepository(pool),
			locations:  postgres.NewLocationRepository(pool),
			facilities: postgres.NewFacilityRepository(pool),
			users:      postgres.NewUserRepository(pool),
			items:      postgres.NewInventoryItemRepository(pool),
			txLog:      postgres.NewTransactionRepository(pool),
			reports:    postgres.NewReportRepository(pool),
			txRunner:   postgres.NewTxRunner(pool),
		}
	}

	// Fan-out de eventos de stock por WebSocket.
	hub := ws.NewHub(cfg.JWT.Secret, cfg.Ledger.EventBufferSize, log)
	hubCtx, stopHub := context.WithCancel(ctx)
	go hub.Run(hubCtx)

	// Motor de inventario y casos de uso.
	engine := ledger.NewEngine(r.txRunner, r.components, r.locations, hub)
	bulkUC := ingest.NewBulkUseCase(engine, r.components)
	verifier := ledger.NewVerifier(r.items, r.txLog)
	componentUC := usecase.NewComponentUseCase(r.components)
	locationUC := usecase.NewLocationUseCase(r.locations, r.facilities)
	itemsUC := usecase.NewItemsUseCase(r.items)
	transactionsUC := usecase.NewTransactionsUseCase(r.txLog)
	aggregator := reports.NewAggregator(r.reports, cfg.Ledger.MainLocationName, cfg.Ledger.LineLocationName)
	pdfUC := reports.NewPDFUseCase(r.reports, infrapdf.NewMarotoPDFGenerator())
	authUC := auth.NewAuthUseCase(r.users, r.facilities, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "Almacén API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	// WebSocket de eventos de stock: ws://host/ws/stock?token=<jwt>
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/stock", websocket.New(hub.HandleWebSocket))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		ComponentUC:    componentUC,
		LocationUC:     locationUC,
		ItemsUC:        itemsUC,
		TransactionsUC: transactionsUC,
		Engine:         engine,
		BulkUC:         bulkUC,
		Verifier:       verifier,
		Aggregator:     aggregator,
		PDFUC:          pdfUC,
		JWTSecret:      cfg.JWT.Secret,
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
	stopHub()

	log.Info().Msg("aplicación detenida")
}
