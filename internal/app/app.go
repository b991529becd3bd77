package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glowmart/storefront/internal/adapter/backend"
	"github.com/glowmart/storefront/internal/adapter/memory"
	natsadapter "github.com/glowmart/storefront/internal/adapter/nats"
	redisadapter "github.com/glowmart/storefront/internal/adapter/redis"
	"github.com/glowmart/storefront/internal/app/config"
	"github.com/glowmart/storefront/internal/cart"
	"github.com/glowmart/storefront/internal/platform/logger"
	"github.com/glowmart/storefront/internal/platform/metrics"
	httpport "github.com/glowmart/storefront/internal/port/http"
	"github.com/glowmart/storefront/internal/port/http/handler"
	"github.com/glowmart/storefront/internal/repository"
	"github.com/glowmart/storefront/internal/service"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
)

type App struct {
	cfg         *config.Config
	log         logger.Logger
	server      *httpport.Server
	redisClient *redis.Client
	natsConn    *nats.Conn
}

func New(cfg *config.Config) (*App, error) {
	ctx := context.Background()

	appLogger, err := logger.NewZapLogger(logger.Config{
		Level:      cfg.Logger.Level,
		Encoding:   cfg.Logger.Encoding,
		TimeFormat: cfg.Logger.TimeFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	appLogger.Infof("Configuration loaded: Env=%s, HTTP Port=%s", cfg.Env, cfg.HTTPServer.Port)

	// Persistence is best-effort: when Redis is off, carts live in process
	// memory and sessions degrade gracefully across restarts.
	var (
		redisClient  *redis.Client
		cartPersist  repository.CartPersistence
		productCache repository.ProductCache
	)
	if cfg.Redis.Enabled {
		redisClient, err = redisadapter.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis client: %w", err)
		}
		cartPersist = redisadapter.NewCartRepository(redisClient)
		productCache = redisadapter.NewProductCacheRepository(redisClient)
		appLogger.Info("Redis cart persistence initialized")
	} else {
		cartPersist = memory.NewCartRepository()
		productCache = memory.NewProductCache()
		appLogger.Warn("Redis disabled, carts will not survive restarts")
	}

	var (
		natsConn  *nats.Conn
		publisher natsadapter.EventPublisher = natsadapter.NopPublisher{}
	)
	if cfg.NATS.Enabled {
		natsConn, err = natsadapter.NewConnection(cfg.NATS)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to NATS: %w", err)
		}
		publisher, err = natsadapter.NewEventPublisher(natsConn)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize NATS publisher: %w", err)
		}
		appLogger.Info("NATS event publisher initialized")
	}

	metricsManager := metrics.NewManager("storefront")
	backendClient := backend.NewClient(cfg.Backend, appLogger)
	cartManager := cart.NewManager(cartPersist, cfg.Cart.TTL, appLogger)

	catalogService := service.NewCatalogService(backendClient, productCache, cfg.Cart.ProductCacheTTL, appLogger)
	cartService := service.NewCartService(cartManager, catalogService, publisher, metricsManager, appLogger)
	checkoutService := service.NewCheckoutService(cartManager, backendClient, publisher, metricsManager, appLogger)
	orderService := service.NewOrderService(backendClient, appLogger)

	mux := httpport.NewRouter(httpport.RouterDeps{
		Cart:      handler.NewCartHandler(cartService, appLogger),
		Catalog:   handler.NewCatalogHandler(catalogService, appLogger),
		Checkout:  handler.NewCheckoutHandler(checkoutService, orderService, appLogger),
		Admin:     handler.NewAdminHandler(backendClient, appLogger),
		Metrics:   metricsManager,
		JWTSecret: cfg.Session.JWTSecret,
	})

	server := httpport.NewServer(appLogger, cfg.HTTPServer, mux)

	return &App{
		cfg:         cfg,
		log:         appLogger,
		server:      server,
		redisClient: redisClient,
		natsConn:    natsConn,
	}, nil
}

func (a *App) Run() {
	a.log.Info("Starting application components...")

	go func() {
		if err := a.server.Start(); err != nil {
			a.log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	received := <-quit
	a.log.Infof("Received shutdown signal: %v. Shutting down...", received)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTPServer.TimeoutGraceful+5*time.Second)
	defer cancel()

	if err := a.server.Stop(shutdownCtx); err != nil {
		a.log.Errorf("Error during HTTP server graceful shutdown: %v", err)
	} else {
		a.log.Info("HTTP server stopped successfully")
	}

	if a.natsConn != nil {
		a.natsConn.Close()
		a.log.Info("NATS connection closed")
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Errorf("Error closing Redis client: %v", err)
		} else {
			a.log.Info("Redis client closed successfully")
		}
	}

	a.log.Info("Application shut down successfully")
}
