package main

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/handlersyss/BarSystem/internal/auth"
	"github.com/handlersyss/BarSystem/internal/handler"
	mid "github.com/handlersyss/BarSystem/internal/middleware"
	"github.com/handlersyss/BarSystem/internal/pos"
	"github.com/handlersyss/BarSystem/internal/store"
	"github.com/handlersyss/BarSystem/pkg/config"
	"github.com/handlersyss/BarSystem/pkg/database"
	"github.com/handlersyss/BarSystem/pkg/jwtutil"
	"github.com/handlersyss/BarSystem/pkg/logger"
	"github.com/handlersyss/BarSystem/prometheus"
)

func main() {
	// Load configuration (reads .env if present)
	appConfig, err := config.Load("bar_system")
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	if err := logger.InitLogger(appConfig); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting bar system", appConfig.LogConfig()...)

	// Initialize JWT utility
	jwtutil.Initialize(&appConfig.JWT)

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Pick the persistence collaborators for the configured backend
	var (
		orderStore store.Store
		userStore  auth.UserStore
	)
	switch appConfig.Storage.Backend {
	case config.BackendFile:
		orderStore = store.NewFileStore(appConfig.Storage.DataDir)
		userStore = auth.NewFileUserStore(appConfig.Storage.DataDir)
	case config.BackendPostgres, config.BackendSQLite:
		if err := database.InitDB(appConfig); err != nil {
			log.Fatal("Failed to initialize database", zap.Error(err))
		}
		log.Info("Database connection established")
		orderStore, err = store.NewGormStore(database.GetDB())
		if err != nil {
			log.Fatal("Failed to initialize order store", zap.Error(err))
		}
		userStore, err = auth.NewGormUserStore(database.GetDB())
		if err != nil {
			log.Fatal("Failed to initialize user store", zap.Error(err))
		}
	default:
		log.Fatal("Unknown storage backend", zap.String("backend", appConfig.Storage.Backend))
	}

	// Load the order system state
	sys, err := pos.New(orderStore, log)
	if err != nil {
		log.Fatal("Failed to load order system state", zap.Error(err))
	}
	// Tabs loaded from the store are already open; the gauge starts there.
	prometheus.SetOpenTabs(len(sys.OpenTabs()))

	authSvc, err := auth.NewService(userStore)
	if err != nil {
		log.Fatal("Failed to load operator accounts", zap.Error(err))
	}

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// API routes guarded by operator JWT auth
	handler.RegisterRoutes(e, sys, authSvc, appConfig.Report.LowStockThreshold, mid.AuthMiddleware)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
