// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	appctx "inventaris/internal/core/context"
	"inventaris/internal/domain/auth"
	"inventaris/internal/domain/backup"
	"inventaris/internal/domain/catalogs/division"
	"inventaris/internal/domain/catalogs/group"
	"inventaris/internal/domain/catalogs/item"
	"inventaris/internal/domain/events"
	"inventaris/internal/domain/mutations"
	"inventaris/internal/domain/rebuild"
	"inventaris/internal/domain/reports"
	"inventaris/internal/domain/scope"
	"inventaris/internal/domain/stock"
	"inventaris/internal/infrastructure/http/v1/handlers"
	"inventaris/internal/infrastructure/http/v1/middleware"
	"inventaris/internal/infrastructure/storage/postgres"
	"inventaris/internal/infrastructure/storage/postgres/auth_repo"
	"inventaris/internal/infrastructure/storage/postgres/backup_repo"
	"inventaris/internal/infrastructure/storage/postgres/catalog_repo"
	"inventaris/internal/infrastructure/storage/postgres/event_repo"
	"inventaris/internal/infrastructure/storage/postgres/report_repo"
	"inventaris/internal/infrastructure/storage/postgres/stock_repo"
	"inventaris/pkg/logger"
	"inventaris/pkg/sequence"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Pool is the database connection pool (health checks, counters).
	Pool *postgres.Pool

	// TxManager provides transaction scoping for repositories.
	TxManager *postgres.TxManager

	// Logger for request logging.
	Logger *logger.Logger

	// AuthService issues and verifies tokens.
	AuthService *auth.Service

	// RebuildLocker is the tenant-level single-flight guard.
	RebuildLocker rebuild.Locker
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// Repositories share one TxManager; transaction scoping rides the
	// request context.
	divisionRepo := catalog_repo.NewDivisionRepo(cfg.TxManager)
	groupRepo := catalog_repo.NewGroupRepo(cfg.TxManager)
	itemRepo := catalog_repo.NewItemRepo(cfg.TxManager)
	eventRepo := event_repo.NewEventRepo(cfg.TxManager)
	reportRepo := report_repo.NewReportRepo(cfg.TxManager)
	stockRepo := stock_repo.NewStockRepo(cfg.TxManager)
	backupRepo := backup_repo.NewBackupRepo(cfg.TxManager)
	userRepo := auth_repo.NewUserRepo(cfg.TxManager)
	rebuildStore := event_repo.NewRebuildStore(cfg.TxManager)

	engine := reports.NewService(reportRepo)
	stockService := stock.NewService(engine, stockRepo)
	seqGen := sequence.NewService(cfg.Pool)

	divisionService := division.NewService(divisionRepo)
	groupService := group.NewService(groupRepo, stockService)
	itemService := item.NewService(itemRepo, seqGen, stockService)
	eventService := events.NewService(eventRepo)
	ledgerService := mutations.NewService(engine, eventRepo)
	rebuildService := rebuild.NewService(engine, rebuildStore, cfg.TxManager, cfg.RebuildLocker)
	backupService := backup.NewService(backupRepo, engine, cfg.TxManager)
	resolver := scope.NewResolver(userRepo)

	base := handlers.NewBaseHandler()
	authHandler := handlers.NewAuthHandler(base, cfg.AuthService)
	divisionHandler := handlers.NewDivisionHandler(base, divisionService)
	groupHandler := handlers.NewGroupHandler(base, groupService)
	itemHandler := handlers.NewItemHandler(base, itemService)
	eventsHandler := handlers.NewEventsHandler(base, eventService)
	reportsHandler := handlers.NewReportsHandler(base, engine, ledgerService)
	stockHandler := handlers.NewStockHandler(base, stockService)
	rebuildHandler := handlers.NewRebuildHandler(base, rebuildService)
	backupHandler := handlers.NewBackupHandler(base, backupService)

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Public auth endpoints
		v1.POST("/auth/login", authHandler.Login)

		// Protected endpoints: Auth first, then division scope resolution
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.AuthService))
		protected.Use(middleware.DivisionScope(resolver))

		protected.GET("/auth/me", authHandler.Me)

		// Catalogs. Division mutations reshape what restricted admins
		// can see, so they are owner-only.
		ownerOnly := middleware.RequireRole(appctx.RoleOwner)

		divisions := protected.Group("/divisions")
		{
			divisions.GET("", divisionHandler.List)
			divisions.GET("/:id", divisionHandler.Get)
			divisions.POST("", ownerOnly, divisionHandler.Create)
			divisions.PUT("/:id", ownerOnly, divisionHandler.Update)
			divisions.DELETE("/:id", ownerOnly, divisionHandler.Delete)
		}

		groups := protected.Group("/groups")
		{
			groups.GET("", groupHandler.List)
			groups.GET("/:id", groupHandler.Get)
			groups.POST("", groupHandler.Create)
			groups.PUT("/:id", groupHandler.Update)
			groups.DELETE("/:id", groupHandler.Delete)
		}

		items := protected.Group("/items")
		{
			items.GET("", itemHandler.List)
			items.GET("/:id", itemHandler.Get)
			items.POST("", itemHandler.Create)
			items.PUT("/:id", itemHandler.Update)
			items.DELETE("/:id", itemHandler.Delete)
		}

		// Event streams
		openings := protected.Group("/openings")
		{
			openings.GET("", eventsHandler.ListOpenings)
			openings.POST("", eventsHandler.CreateOpening)
			openings.PUT("/:id", eventsHandler.UpdateOpening)
			openings.DELETE("/:id", eventsHandler.DeleteOpening)
		}

		// Transactions and adjustments are append-only; the rebuild
		// cutover is the only path that removes them.
		transactions := protected.Group("/transactions")
		{
			transactions.GET("", eventsHandler.ListTransactions)
			transactions.POST("", eventsHandler.CreateTransaction)
		}

		adjustments := protected.Group("/adjustments")
		{
			adjustments.GET("", eventsHandler.ListAdjustments)
			adjustments.POST("", eventsHandler.CreateAdjustment)
		}

		// Reports
		reportsGroup := protected.Group("/reports")
		{
			reportsGroup.GET("/stock", reportsHandler.StockBalance)
			reportsGroup.GET("/mutations", reportsHandler.Mutations)
		}

		// Stock views
		stockGroup := protected.Group("/stock")
		{
			stockGroup.GET("/current", stockHandler.Current)
			stockGroup.GET("/low", stockHandler.LowStock)
		}
		protected.GET("/dashboard", stockHandler.Dashboard)

		// Destructive and whole-tenant operations are owner-only.
		protected.POST("/rebuild", ownerOnly, rebuildHandler.Rebuild)

		backupGroup := protected.Group("/backup", ownerOnly)
		{
			backupGroup.GET("/archive", backupHandler.Archive)
			backupGroup.GET("/excel", backupHandler.Workbook)
		}
	}

	return router
}
