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

	appidentity "github.com/tiendapro/backend/internal/application/identity"
	apppartner "github.com/tiendapro/backend/internal/application/partner"
	appprocurement "github.com/tiendapro/backend/internal/application/procurement"
	appreport "github.com/tiendapro/backend/internal/application/report"
	"github.com/tiendapro/backend/internal/infrastructure/auth"
	"github.com/tiendapro/backend/internal/infrastructure/config"
	"github.com/tiendapro/backend/internal/infrastructure/logger"
	"github.com/tiendapro/backend/internal/infrastructure/persistence"
	"github.com/tiendapro/backend/internal/infrastructure/scheduler"
	"github.com/tiendapro/backend/internal/infrastructure/telemetry"
	"github.com/tiendapro/backend/internal/interfaces/http/handler"
	"github.com/tiendapro/backend/internal/interfaces/http/middleware"
	"github.com/tiendapro/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting TiendaPro backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Telemetry providers. Both are no-ops when telemetry is disabled.
	ctx := context.Background()
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
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
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	var procurementMetrics *telemetry.ProcurementMetrics
	if meterProvider.IsEnabled() {
		meter := meterProvider.Meter("tiendapro/procurement")
		procurementMetrics, err = telemetry.NewProcurementMetrics(meter, log)
		if err != nil {
			log.Fatal("Failed to initialize procurement metrics", zap.Error(err))
		}
	}

	// Token blacklist. Redis keeps revocations across replicas and
	// restarts; the in-memory store is for single-node deployments.
	var blacklist auth.TokenBlacklist
	if cfg.Redis.Enabled {
		redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		blacklist = redisBlacklist
		log.Info("Token blacklist backed by Redis", zap.String("addr", cfg.Redis.Addr()))
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
	}

	// Repositories
	orgRepo := persistence.NewGormOrganizationRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	providerRepo := persistence.NewGormProviderRepository(db.DB)
	storeRepo := persistence.NewGormStoreRepository(db.DB)
	purchaseRepo := persistence.NewGormPurchaseRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := appidentity.NewAuthService(db.DB, orgRepo, userRepo, jwtService, blacklist, log)
	userService := appidentity.NewUserService(userRepo)
	providerService := apppartner.NewProviderService(providerRepo, purchaseRepo)
	storeService := apppartner.NewStoreService(storeRepo)
	purchaseService := appprocurement.NewPurchaseService(db.DB, purchaseRepo, paymentRepo, providerRepo, storeRepo, procurementMetrics)
	paymentService := appprocurement.NewPaymentService(db.DB, purchaseRepo, paymentRepo, procurementMetrics)
	reportService := appreport.NewReportService(reportRepo)

	// Background sweep that flips purchases past their due date to overdue
	overdueScheduler := scheduler.NewOverdueScheduler(purchaseRepo, log, scheduler.DefaultOverdueSchedulerConfig())
	if err := overdueScheduler.Start(ctx); err != nil {
		log.Fatal("Failed to start overdue scheduler", zap.Error(err))
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := overdueScheduler.Stop(stopCtx); err != nil {
			log.Error("Error stopping overdue scheduler", zap.Error(err))
		}
	}()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodyBytes))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		MeterProvider: meterProvider,
		Enabled:       cfg.Telemetry.Enabled,
	}))

	systemHandler := handler.NewSystemHandler(db)
	engine.GET("/health", systemHandler.Health)
	engine.GET("/ready", systemHandler.Health)

	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.TokenBlacklist = blacklist
	jwtConfig.Logger = log
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	router.NewRouter(engine, router.WithAPIVersion("v1")).Register(
		handler.NewAuthHandler(authService, userService),
		handler.NewUserHandler(userService),
		handler.NewProviderHandler(providerService),
		handler.NewStoreHandler(storeService),
		handler.NewPurchaseHandler(purchaseService),
		handler.NewPaymentHandler(paymentService),
		handler.NewReportHandler(reportService),
		systemHandler,
	).Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
