package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Divyeshhhh/steamy-sips/pkg/health"
	"github.com/Divyeshhhh/steamy-sips/pkg/middleware"
)

// RouterConfig wires the handlers and cross-cutting middleware.
type RouterConfig struct {
	ServiceName string

	Shop       ShopBrowser
	Products   ProductGetter
	Discussion ProductPager
	Reviews    ReviewReader
	Health     *health.Handler

	// Metrics and Gatherer are optional; /metrics is mounted when Gatherer
	// is set.
	Metrics  *middleware.HTTPMetrics
	Gatherer prometheus.Gatherer

	CORS         middleware.CORSConfig
	ShopMaxAge   time.Duration
	PprofAllowed []string

	// Per-IP limit on the public API; zero RateLimitRPS disables it.
	RateLimitRPS   float64
	RateLimitBurst int

	Logger *slog.Logger
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestLogging(cfg.Logger, "/health/live", "/health/ready", "/metrics"))
	r.Use(middleware.Tracing(cfg.ServiceName))
	r.Use(middleware.RequestLogger(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
	}
	r.Use(middleware.CORS(cfg.CORS))

	r.Get("/health/live", cfg.Health.LivenessHandler())
	r.Get("/health/ready", cfg.Health.ReadinessHandler())
	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}
	if len(cfg.PprofAllowed) > 0 {
		middleware.RegisterPprof(r, cfg.PprofAllowed, cfg.Logger)
	}

	shop := NewShopHandler(cfg.Shop, cfg.Logger)
	products := NewProductHandler(cfg.Products, cfg.Discussion, cfg.Logger)
	reviews := NewReviewHandler(cfg.Reviews, cfg.Logger)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.Logger))

		r.Route("/api/v1/shop", func(r chi.Router) {
			if cfg.ShopMaxAge > 0 {
				r.Use(middleware.CacheControl(cfg.ShopMaxAge))
			}
			r.Get("/products", shop.ListProducts)
			r.Get("/categories", shop.ListCategories)
		})

		r.Route("/api/v1/products/{id}", func(r chi.Router) {
			r.Get("/", products.GetProduct)
			r.Get("/reviews", products.ListReviews)
		})

		r.Route("/api/v1/reviews", func(r chi.Router) {
			r.Get("/trend", reviews.ReviewTrend)
			r.Get("/{id}", reviews.GetReview)
		})
	})

	return r
}
