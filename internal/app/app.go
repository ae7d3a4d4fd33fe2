package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"

	"github.com/Divyeshhhh/steamy-sips/internal/config"
	"github.com/Divyeshhhh/steamy-sips/internal/event"
	handler "github.com/Divyeshhhh/steamy-sips/internal/handler/http"
	"github.com/Divyeshhhh/steamy-sips/internal/purchase"
	"github.com/Divyeshhhh/steamy-sips/internal/repository"
	"github.com/Divyeshhhh/steamy-sips/internal/repository/postgres"
	rediscache "github.com/Divyeshhhh/steamy-sips/internal/repository/redis"
	"github.com/Divyeshhhh/steamy-sips/internal/service"
	"github.com/Divyeshhhh/steamy-sips/migrations"
	"github.com/Divyeshhhh/steamy-sips/pkg/database"
	"github.com/Divyeshhhh/steamy-sips/pkg/health"
	"github.com/Divyeshhhh/steamy-sips/pkg/httpclient"
	pkgkafka "github.com/Divyeshhhh/steamy-sips/pkg/kafka"
	"github.com/Divyeshhhh/steamy-sips/pkg/middleware"
	"github.com/Divyeshhhh/steamy-sips/pkg/tracing"
)

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	pool           *pgxpool.Pool
	redis          *goredis.Client
	producer       *pkgkafka.Producer
	productEvents  *pkgkafka.Consumer
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tracerShutdown, err := tracing.InitTracer(ctx, cfg.Tracing())
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	pool, err := database.NewPostgresPool(ctx, cfg.Postgres(), logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.Int("port", cfg.PostgresPort),
		slog.String("database", cfg.PostgresDB),
	)

	if cfg.RunMigrations {
		if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
			pool.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("database migrations completed")
	}

	if cfg.SlowQueryThreshold > 0 {
		database.SetSlowQueryLogging(cfg.SlowQueryThreshold, logger)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		database.NewPoolStatsCollector(database.PgxPoolStats(pool), config.ServiceName),
	)

	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", database.PostgresChecker(pool))

	// The catalog cache is optional; browsing falls back to postgres.
	var catalogCache repository.CatalogCache
	redisClient, err := database.NewRedisClient(ctx, cfg.Redis())
	if err != nil {
		logger.Warn("redis unavailable, catalog cache disabled", slog.String("error", err.Error()))
	} else {
		catalogCache = rediscache.NewCatalogCache(redisClient, cfg.CatalogCacheTTL)
		healthHandler.Register("redis", database.RedisChecker(redisClient))
		logger.Info("connected to Redis", slog.String("addr", cfg.Redis().Addr()))
	}

	kafkaMetrics := pkgkafka.NewMetrics(reg)
	producer := pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), kafkaMetrics, logger)
	if err := pingWithRetry(ctx, producer.Ping, 3, time.Second, logger); err != nil {
		logger.Warn("kafka ping failed after retries, continuing in degraded mode",
			slog.String("error", err.Error()),
		)
	} else {
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	}
	healthHandler.Register("kafka", producer.Ping)

	productRepo := postgres.NewProductRepository(pool)
	reviewRepo := postgres.NewReviewRepository(pool)
	commentRepo := postgres.NewCommentRepository(pool)

	shopService := service.NewShopService(productRepo, catalogCache, cfg.ShopPageSize, logger)
	productService := service.NewProductService(productRepo, logger)

	deps := service.DiscussionDeps{
		Products: productRepo,
		Reviews:  reviewRepo,
		Comments: commentRepo,
		Warnings: event.NewProducer(producer, logger),
		Metrics:  service.NewDiscussionMetrics(reg),
	}
	if cfg.OrderServiceURL != "" {
		deps.Purchases = newPurchaseClient(cfg, reg, logger)
	}
	discussionService := service.NewDiscussionService(deps, cfg.ReviewPageSize, logger)

	productEvents := pkgkafka.NewConsumer(pkgkafka.ConsumerConfig{
		Brokers:  cfg.KafkaBrokers,
		GroupID:  cfg.KafkaConsumerGroup,
		Topics:   event.ProductTopics(),
		MinBytes: 1,
		MaxBytes: 10e6,
	}, event.NewConsumer(shopService, logger).Handle, kafkaMetrics, logger)

	cors := middleware.DefaultCORSConfig()
	cors.AllowedOrigins = cfg.CORSAllowedOrigins

	router := handler.NewRouter(handler.RouterConfig{
		ServiceName:  config.ServiceName,
		Shop:         shopService,
		Products:     productService,
		Discussion:   discussionService,
		Reviews:      discussionService,
		Health:       healthHandler,
		Metrics:      middleware.NewHTTPMetrics(reg, config.ServiceName),
		Gatherer:     reg,
		CORS:         cors,
		ShopMaxAge:   cfg.ShopCacheMaxAge,
		PprofAllowed: cfg.PprofAllowedCIDRs,

		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,

		Logger: logger,
	})

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		pool:           pool,
		redis:          redisClient,
		producer:       producer,
		productEvents:  productEvents,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

func newPurchaseClient(cfg *config.Config, reg prometheus.Registerer, logger *slog.Logger) *purchase.Client {
	httpCfg := httpclient.DefaultConfig()
	httpCfg.Timeout = cfg.OrderServiceTimeout
	breaker := httpclient.NewCircuitBreakerClient(
		httpclient.New(httpCfg),
		httpclient.DefaultCircuitBreakerConfig("order-service"),
		httpclient.NewBreakerMetrics(reg),
		logger,
	)
	return purchase.NewClient(breaker, cfg.OrderServiceURL, logger)
}

// Run starts the HTTP server and the product event consumer, then blocks
// until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	go func() {
		a.logger.Info("starting HTTP server", slog.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	go func() {
		if err := a.productEvents.Start(ctx); err != nil {
			errCh <- fmt.Errorf("product event consumer: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		_ = a.Shutdown()
		return err
	}

	return a.Shutdown()
}

// Shutdown stops components in order: HTTP server, tracer, consumer,
// producer, redis, postgres.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	httpCtx, httpCancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	// Flushed after the HTTP drain so in-flight request spans are exported.
	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if err := a.productEvents.Close(); err != nil {
		a.logger.Error("product event consumer close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	a.pool.Close()

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}

// pingWithRetry calls ping up to attempts times, doubling base between
// tries with ±25% jitter.
func pingWithRetry(ctx context.Context, ping func(context.Context) error, attempts int, base time.Duration, logger *slog.Logger) error {
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if lastErr = ping(ctx); lastErr == nil {
			return nil
		}
		if attempt == attempts-1 {
			break
		}
		wait := base << uint(attempt)
		wait += time.Duration(float64(wait) * 0.25 * (2*rand.Float64() - 1)) // #nosec G404 -- non-cryptographic jitter
		logger.Warn("ping failed, retrying",
			slog.Int("attempt", attempt+1),
			slog.Int("max_attempts", attempts),
			slog.Duration("backoff", wait),
			slog.String("error", lastErr.Error()),
		)
		select {
		case <-ctx.Done():
			return fmt.Errorf("ping: context canceled during retry: %w", ctx.Err())
		case <-time.After(wait):
		}
	}
	return fmt.Errorf("ping failed after %d attempts: %w", attempts, lastErr)
}
