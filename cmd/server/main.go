package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	ledgerapp "github.com/cobranza/backend/internal/application/ledger"
	"github.com/cobranza/backend/internal/infrastructure/cache"
	"github.com/cobranza/backend/internal/infrastructure/config"
	"github.com/cobranza/backend/internal/infrastructure/logger"
	"github.com/cobranza/backend/internal/infrastructure/persistence"
	"github.com/cobranza/backend/internal/infrastructure/storage"
	"github.com/cobranza/backend/internal/interfaces/http/handler"
	"github.com/cobranza/backend/internal/interfaces/http/middleware"
	"github.com/cobranza/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/cobranza/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			Cobranza Backend API
//	@version		1.0
//	@description	Client invoice ledger with FIFO payment reconciliation

//	@contact.name	API Support
//	@contact.url	https://github.com/cobranza/backend

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

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

	log.Info("Starting Cobranza Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with zap-backed GORM logging
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Repositories
	clientRepo := persistence.NewGormClientRepository(db)
	invoiceRepo := persistence.NewGormInvoiceRepository(db)
	reconciliationRepo := persistence.NewGormReconciliationRepository(db)
	receiptRepo := persistence.NewGormReceiptRepository(db)
	sourceFileRepo := persistence.NewGormSourceFileRepository(db)
	txManager := persistence.NewGormTransactionManager(db)

	// Report cache: Redis when reachable, in-process fallback otherwise
	var reportCache ledgerapp.ReportCache
	redisCache, err := cache.NewRedisReportCache(cache.RedisConfig{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable, using in-memory report cache", zap.Error(err))
		reportCache = cache.NewInMemoryReportCache()
	} else {
		defer func() {
			if err := redisCache.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
		reportCache = redisCache
		log.Info("Redis report cache connected", zap.String("addr", cfg.Redis.Addr()))
	}

	// Object storage for voucher scans and import files
	var objectStorage ledgerapp.ObjectStorageService
	if cfg.Storage.Bucket != "" {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage,
			storage.WithLogger(log),
			storage.WithPresignExpiration(cfg.Storage.PresignExpiration),
		)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		ensureCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := s3Storage.EnsureBucket(ensureCtx); err != nil {
			cancel()
			log.Fatal("Failed to ensure storage bucket", zap.Error(err))
		}
		cancel()
		objectStorage = s3Storage
		log.Info("Object storage ready", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		log.Warn("No storage bucket configured, voucher uploads use stub storage")
		objectStorage = storage.NewStubObjectStorage()
	}

	// Application services
	receiptCfg := ledgerapp.DefaultReceiptServiceConfig()
	if cfg.Storage.PresignExpiration > 0 {
		receiptCfg.UploadURLExpiry = cfg.Storage.PresignExpiration
	}

	clientService := ledgerapp.NewClientService(clientRepo, log)
	reconciliationService := ledgerapp.NewReconciliationService(
		txManager, clientRepo, invoiceRepo, reconciliationRepo, invoiceRepo, log,
	)
	invoiceService := ledgerapp.NewInvoiceService(txManager, invoiceRepo, clientRepo, reconciliationService, log)
	balanceService := ledgerapp.NewBalanceService(txManager, clientRepo, invoiceRepo, log)
	receiptService := ledgerapp.NewReceiptService(receiptRepo, invoiceRepo, objectStorage, receiptCfg)
	sourceFileService := ledgerapp.NewSourceFileService(sourceFileRepo, clientRepo, objectStorage, receiptCfg)
	reportService := ledgerapp.NewReportService(invoiceRepo, reportCache, cfg.Report.CacheTTL, log)

	// HTTP handlers
	clientHandler := handler.NewClientHandler(clientService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService, reconciliationService, receiptService)
	reconciliationHandler := handler.NewReconciliationHandler(reconciliationService, balanceService)
	receiptHandler := handler.NewReceiptHandler(receiptService)
	sourceFileHandler := handler.NewSourceFileHandler(sourceFileService)
	reportHandler := handler.NewReportHandler(reportService)
	systemHandler := handler.NewSystemHandler(db)

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

	// Middleware stack, in order: request ID, panic recovery, request
	// logging, CORS, body limit, request timeout.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	engine.Use(middleware.Timeout(cfg.HTTP.WriteTimeout))

	// Liveness probe outside API versioning
	engine.GET("/health", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
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
	})

	if cfg.Swagger.Enabled {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(clientHandler).
		Register(invoiceHandler).
		Register(reconciliationHandler).
		Register(receiptHandler).
		Register(sourceFileHandler).
		Register(reportHandler).
		Register(systemHandler)
	r.Setup()

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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
