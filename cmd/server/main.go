package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	containerapp "github.com/importdesk/backend/internal/application/container"
	inventoryapp "github.com/importdesk/backend/internal/application/inventory"
	partnerapp "github.com/importdesk/backend/internal/application/partner"
	periodapp "github.com/importdesk/backend/internal/application/period"
	reportapp "github.com/importdesk/backend/internal/application/report"
	salesapp "github.com/importdesk/backend/internal/application/sales"
	appshared "github.com/importdesk/backend/internal/application/shared"
	"github.com/importdesk/backend/internal/domain/container"
	"github.com/importdesk/backend/internal/infrastructure/auth"
	"github.com/importdesk/backend/internal/infrastructure/config"
	"github.com/importdesk/backend/internal/infrastructure/logger"
	"github.com/importdesk/backend/internal/infrastructure/persistence"
	"github.com/importdesk/backend/internal/infrastructure/telemetry"
	"github.com/importdesk/backend/internal/interfaces/http/handler"
	"github.com/importdesk/backend/internal/interfaces/http/middleware"
	"github.com/importdesk/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	log.Info("Starting Import Desk backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize tracing (no-op provider when disabled)
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Initialize database connection
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, logger.MapGormLogLevel(cfg.Log.Level))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database connection", zap.Error(err))
		}
	}()
	log.Info("Database connection established",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.DBName),
	)

	// Attach GORM query spans when tracing is enabled
	if cfg.Telemetry.Enabled {
		dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			Enabled:         true,
			SlowQueryThresh: 200 * time.Millisecond,
		}, log)
		if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
			log.Warn("Failed to register database tracing", zap.Error(err))
		}
	}

	// Repositories read directly by the reporting and audit surfaces.
	// Everything that writes goes through the transaction scope instead.
	periodRepo := persistence.NewGormPeriodRepository(db.DB)
	containerRepo := persistence.NewGormContainerRepository(db.DB)
	countRepo := persistence.NewGormCountSessionRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB)
	auditRepo := persistence.NewGormAuditRepository(db.DB)

	// Transaction scope shared by all mutating services
	scope := persistence.NewGormTransactionScope(db.DB)

	// Settlement tuning knobs
	container.PayoutEpsilon = cfg.Settlement.PayoutEpsilon()

	// Application services
	periodService := periodapp.NewService(scope)
	containerService := containerapp.NewService(scope)
	expenseService := containerapp.NewExpenseService(scope)
	settlementService := containerapp.NewSettlementService(scope)
	salesService := salesapp.NewService(scope)
	countService := inventoryapp.NewCountService(scope, cfg.Settlement.CountCodeLength)
	clientService := partnerapp.NewClientService(scope)
	investorService := partnerapp.NewInvestorService(scope)
	reportService := reportapp.NewService(reportRepo, periodRepo, containerRepo, countRepo)

	// Token verification
	jwtService := auth.NewJWTService(cfg.JWT)

	// HTTP handlers
	periodHandler := handler.NewPeriodHandler(periodService)
	containerHandler := handler.NewContainerHandler(containerService, expenseService, settlementService)
	salesHandler := handler.NewSalesHandler(salesService)
	clientHandler := handler.NewClientHandler(clientService)
	investorHandler := handler.NewInvestorHandler(investorService)
	inventoryHandler := handler.NewInventoryHandler(countService)
	reportHandler := handler.NewReportHandler(reportService)
	auditHandler := handler.NewAuditHandler(auditRepo)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack, outermost first
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	if cfg.Telemetry.Enabled {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     true,
		}))
		engine.Use(middleware.SpanErrorMarker())
		engine.Use(middleware.TracingAttributeInjector())
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Every API route requires a valid token except the public
	// liveness probes.
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/v1/ping",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	privileged := middleware.RequireRole(appshared.RoleAdmin, appshared.RoleManager)

	// Accounting periods
	periodRoutes := router.NewDomainGroup("period", "/periods")
	periodRoutes.GET("", periodHandler.List)
	periodRoutes.GET("/current", periodHandler.Current)
	periodRoutes.GET("/:id", periodHandler.GetByID)
	periodRoutes.GET("/:id/checklist", periodHandler.Checklist)
	periodRoutes.POST("/:id/lock", privileged, periodHandler.Lock)
	periodRoutes.POST("/:id/unlock", privileged, periodHandler.Unlock)
	periodRoutes.GET("/:id/sales-by-client", reportHandler.SalesByClient)

	// Containers: lifecycle, cost ledger, settlement
	containerRoutes := router.NewDomainGroup("container", "/containers")
	containerRoutes.POST("", containerHandler.Create)
	containerRoutes.GET("", containerHandler.List)
	containerRoutes.GET("/:id", containerHandler.GetByID)
	containerRoutes.POST("/:id/arrive", containerHandler.MarkArrived)
	containerRoutes.POST("/:id/close", privileged, containerHandler.Close)
	containerRoutes.PUT("/:id/purchase", containerHandler.SetPurchase)
	containerRoutes.POST("/:id/items", containerHandler.AddItem)
	containerRoutes.POST("/:id/manual-stock", containerHandler.AddManualStock)
	containerRoutes.POST("/:id/expenses", containerHandler.AddExpense)
	containerRoutes.POST("/:id/expenses/:expenseId/corrections", containerHandler.AddCorrection)
	containerRoutes.POST("/:id/corrections/:correctionId/confirm", privileged, containerHandler.ConfirmCorrection)
	containerRoutes.POST("/:id/investments", containerHandler.AddInvestment)
	containerRoutes.GET("/:id/payables", containerHandler.Payables)
	containerRoutes.POST("/:id/payouts", containerHandler.RecordPayout)
	containerRoutes.GET("/:id/financials", reportHandler.ContainerFinancials)

	// Sales, payments, returns, exchanges
	salesRoutes := router.NewDomainGroup("sales", "/sales")
	salesRoutes.POST("", salesHandler.Create)
	salesRoutes.GET("", salesHandler.List)
	salesRoutes.GET("/:id", salesHandler.GetByID)
	salesRoutes.POST("/:id/payments", salesHandler.AddPayment)
	salesRoutes.POST("/:id/returns", salesHandler.CreateReturn)
	salesRoutes.POST("/:id/exchanges", salesHandler.CreateExchange)

	// Clients and their standing
	clientRoutes := router.NewDomainGroup("client", "/clients")
	clientRoutes.POST("", clientHandler.Create)
	clientRoutes.GET("", clientHandler.List)
	clientRoutes.GET("/debtors", clientHandler.Debtors)
	clientRoutes.GET("/:id", clientHandler.GetByID)
	clientRoutes.PUT("/:id", clientHandler.Update)
	clientRoutes.PUT("/:id/credit-limit", privileged, clientHandler.SetCreditLimit)
	clientRoutes.POST("/:id/activate", clientHandler.Activate)
	clientRoutes.POST("/:id/deactivate", clientHandler.Deactivate)
	clientRoutes.GET("/:id/sales", salesHandler.ListByClient)

	// Investors
	investorRoutes := router.NewDomainGroup("investor", "/investors")
	investorRoutes.POST("", investorHandler.Create)
	investorRoutes.GET("", investorHandler.List)
	investorRoutes.GET("/:id", investorHandler.GetByID)
	investorRoutes.PUT("/:id", investorHandler.Update)

	// Inventory count sessions
	inventoryRoutes := router.NewDomainGroup("inventory", "/inventory")
	inventoryRoutes.POST("/counts", inventoryHandler.Submit)
	inventoryRoutes.GET("/counts", inventoryHandler.List)
	inventoryRoutes.GET("/counts/:id", inventoryHandler.GetByID)
	inventoryRoutes.POST("/counts/:id/confirm", privileged, inventoryHandler.Confirm)
	inventoryRoutes.POST("/counts/:id/resolve", privileged, inventoryHandler.Resolve)

	// Reporting projections
	reportRoutes := router.NewDomainGroup("report", "/reports")
	reportRoutes.GET("/dashboard", reportHandler.Dashboard)
	reportRoutes.GET("/debtors", reportHandler.Debtors)
	reportRoutes.GET("/monthly-trend", reportHandler.MonthlyTrend)

	// Audit trail
	auditRoutes := router.NewDomainGroup("audit", "/audits")
	auditRoutes.GET("", auditHandler.List)
	auditRoutes.GET("/:entityType/:entityId", auditHandler.ListByEntity)

	// System info
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	r.Register(periodRoutes).
		Register(containerRoutes).
		Register(salesRoutes).
		Register(clientRoutes).
		Register(investorRoutes).
		Register(inventoryRoutes).
		Register(reportRoutes).
		Register(auditRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
