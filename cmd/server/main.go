package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	syncapp "github.com/shopsync/backend/internal/application/sync"
	"github.com/shopsync/backend/internal/infrastructure/busyx"
	"github.com/shopsync/backend/internal/infrastructure/config"
	"github.com/shopsync/backend/internal/infrastructure/logger"
	"github.com/shopsync/backend/internal/infrastructure/persistence"
	"github.com/shopsync/backend/internal/infrastructure/shopify"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = logger.Sync(log) }()

	log.Info("Starting shopsync",
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port))

	gormLog := logger.NewGormLogger(log, gormlogger.Warn)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to staging store", zap.Error(err))
	}
	defer db.Close()

	storefront, err := shopify.NewAdapter(&shopify.Config{
		GraphQLURL:     cfg.Shopify.GraphQLURL,
		AccessToken:    cfg.Shopify.AccessToken,
		PageSize:       cfg.Shopify.PageSize,
		TimeoutSeconds: int(cfg.Shopify.Timeout.Seconds()),
	})
	if err != nil {
		log.Fatal("Failed to build storefront adapter", zap.Error(err))
	}

	erp, err := busyx.NewAdapter(&busyx.Config{
		URL:            cfg.Busyx.URL,
		APILog:         cfg.Busyx.APILog,
		APIKey:         cfg.Busyx.APIKey,
		TimeoutSeconds: int(cfg.Busyx.Timeout.Seconds()),
	})
	if err != nil {
		log.Fatal("Failed to build ERP adapter", zap.Error(err))
	}

	products := persistence.NewGormProductRepository(db.DB)
	stocks := persistence.NewGormStockRepository(db.DB)
	orders := persistence.NewGormOrderRepository(db.DB)

	catalog := syncapp.NewCatalogIngestService(storefront, products, log)
	catalog.SetRetryPolicy(cfg.Sync.FetchRetries, cfg.Sync.FetchPause)

	stockIngest := syncapp.NewStockIngestService(erp, stocks, log)
	stockIngest.SetBatchPolicy(cfg.Sync.BatchSize, cfg.Sync.BatchPause)

	orderIngest := syncapp.NewOrderIngestService(storefront, erp, orders, log)
	orderIngest.SetRetryPolicy(cfg.Sync.FetchRetries, cfg.Sync.FetchPause)

	reconcile := syncapp.NewInventoryReconcileService(storefront, products, stocks, log)
	reconcile.SetBatchPolicy(cfg.Sync.BatchSize, cfg.Sync.BatchPause)

	mirror := syncapp.NewOrderMirrorService(erp, orders, stocks, log)

	loop := syncapp.NewLoop(cfg.Sync.CycleInterval, catalog, stockIngest, orderIngest, reconcile, mirror, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loopDone := make(chan struct{})
	if cfg.Sync.Enabled {
		go func() {
			defer close(loopDone)
			if err := loop.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("Sync loop exited", zap.Error(err))
			}
		}()
	} else {
		close(loopDone)
		log.Warn("Sync loop disabled by configuration")
	}

	server := newHTTPServer(cfg, db, log)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}

	select {
	case <-loopDone:
	case <-shutdownCtx.Done():
		log.Warn("Sync loop did not stop in time")
	}

	log.Info("Stopped")
}

// newHTTPServer builds the health/status shell around the sync process.
func newHTTPServer(cfg *config.Config, db *persistence.Database, log *zap.Logger) *http.Server {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(logger.GinMiddleware(log), logger.Recovery(log))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/status", func(c *gin.Context) {
		stats, err := db.Stats()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"app":          cfg.App.Name,
			"env":          cfg.App.Env,
			"sync_enabled": cfg.Sync.Enabled,
			"database":     stats,
		})
	})

	return &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: router,
	}
}
