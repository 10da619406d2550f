package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/cache"
	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/config"
	httpapi "github.com/saadrehman171000/Homage-Publisher-sub000/internal/http"
	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/mailer"
	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/publisher"
	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/repository"
	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/service"
	"github.com/saadrehman171000/Homage-Publisher-sub000/pkg/circuitbreaker"
	"github.com/saadrehman171000/Homage-Publisher-sub000/pkg/logger"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{Service: "storefront", Level: logger.ParseLevel(cfg.LogLevel)})
	slog.SetDefault(log)
	decimal.MarshalJSONWithoutQuotes = true

	if err := run(cfg, log); err != nil {
		log.Error("storefront stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Orders: Postgres
	orderRepo, err := repository.NewPostgresRepository(&cfg.Postgres)
	if err != nil {
		return err
	}
	defer orderRepo.Close()
	if err := orderRepo.RunMigrations(&cfg.Postgres); err != nil {
		return err
	}
	log.Info("orders database ready")

	// Catalog: SQLite
	productRepo, err := repository.NewSQLiteRepository(cfg.SQLitePath)
	if err != nil {
		return err
	}
	defer productRepo.Close()
	if err := productRepo.RunMigrations(cfg.SQLiteMigrationsPath); err != nil {
		return err
	}
	log.Info("catalog database ready", "path", cfg.SQLitePath)

	// Announcements and events: MongoDB
	mongoDB, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoDB.Client().Disconnect(disconnectCtx)
	}()
	contentRepo := repository.NewMongoRepository(mongoDB)
	if err := contentRepo.CreateIndexes(ctx); err != nil {
		return err
	}

	// Redis backs the catalog cache and, optionally, session carts.
	var rdb *redis.Client
	var productCache cache.ProductCache = cache.NopProductCache{}
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return err
		}
		productCache = cache.NewRedisProductCache(rdb)
		log.Info("redis connected", "addr", cfg.RedisAddr)
	}

	var cartStore cache.CartStore
	if cfg.CartStore == config.CartStoreRedis {
		cartStore = cache.NewRedisCartStore(rdb, cfg.CartTTL)
	} else {
		mem := cache.NewMemoryCartStore(cfg.CartTTL)
		go mem.Sweep(ctx, time.Minute)
		cartStore = mem
	}

	notifier, closeNotifier := newNotifier(cfg, log)
	defer closeNotifier()

	orders := service.NewOrderService(orderRepo, notifier, cfg.MinimumOrder)
	catalog := service.NewCatalogService(productRepo, productCache)
	carts := service.NewCartService(cartStore, catalog, orders)
	content := service.NewContentService(contentRepo)

	limiter := httpapi.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go limiter.Cleanup(ctx, time.Minute, 10*time.Minute)

	router := httpapi.NewRouter(httpapi.RouterConfig{
		Orders:             orders,
		Carts:              carts,
		Catalog:            catalog,
		Content:            content,
		Auth:               httpapi.NewAdminAuth(cfg.JWTSecret, cfg.AdminEmails),
		Limiter:            limiter,
		Logger:             log,
		MinimumOrder:       cfg.MinimumOrder,
		SessionTTL:         cfg.CartTTL,
		RequestTimeout:     cfg.RequestTimeout,
		MaxRequestBodySize: cfg.MaxRequestBodySize,
		TrustProxyHeaders:  cfg.TrustProxyHeaders,
	})

	handler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", httpapi.SessionHeader},
		ExposedHeaders:   []string{httpapi.SessionHeader},
		AllowCredentials: true,
	}).Handler(router)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           otelhttp.NewHandler(handler, "storefront"),
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("storefront listening", "port", cfg.HTTPPort, "cart_store", cfg.CartStore, "notifier", cfg.NotifierMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	log.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("server exited")
	return nil
}

// newNotifier picks how order mails leave the storefront.
func newNotifier(cfg *config.Config, log *slog.Logger) (service.Notifier, func()) {
	switch cfg.NotifierMode {
	case config.NotifierKafka:
		k := publisher.NewKafkaNotifier(cfg.KafkaBrokers...)
		return k, func() {
			if err := k.Close(); err != nil {
				log.Warn("failed to close kafka writer", "error", err)
			}
		}
	case config.NotifierSMTP:
		breaker := circuitbreaker.New(circuitbreaker.Settings{Name: "smtp", Logger: log})
		return mailer.NewSMTPMailer(mailerConfig(cfg), breaker), func() {}
	default:
		return service.LogNotifier{}, func() {}
	}
}

func mailerConfig(cfg *config.Config) mailer.Config {
	return mailer.Config{
		Host:       cfg.SMTPHost,
		Port:       cfg.SMTPPort,
		Username:   cfg.SMTPUsername,
		Password:   cfg.SMTPPassword,
		From:       cfg.SMTPFrom,
		AdminInbox: cfg.AdminInbox,
	}
}
