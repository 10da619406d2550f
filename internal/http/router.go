package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"
)

type RouterConfig struct {
	Orders  OrderService
	Carts   CartService
	Catalog CatalogService
	Content ContentService

	Auth    *AdminAuth
	Limiter *RateLimiter
	Logger  *slog.Logger

	MinimumOrder       decimal.Decimal
	SessionTTL         time.Duration
	RequestTimeout     time.Duration
	MaxRequestBodySize int64
	// TrustProxyHeaders lets X-Forwarded-For and X-Real-IP replace the
	// peer address used for rate limiting.
	TrustProxyHeaders bool
}

func NewRouter(cfg RouterConfig) chi.Router {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	if cfg.MaxRequestBodySize == 0 {
		cfg.MaxRequestBodySize = 1 << 20
	}

	orders := NewOrdersHandler(cfg.Orders, cfg.Auth)
	carts := NewCartHandler(cfg.Carts, cfg.MinimumOrder)
	catalog := NewCatalogHandler(cfg.Catalog)
	content := NewContentHandler(cfg.Content)

	limit := func(next http.Handler) http.Handler { return next }
	if cfg.Limiter != nil {
		limit = cfg.Limiter.Limit
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	if cfg.TrustProxyHeaders {
		r.Use(middleware.RealIP)
	}
	r.Use(RequestLogger(cfg.Logger))
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.RequestSize(cfg.MaxRequestBodySize))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", catalog.ListProducts)
		r.Get("/products/{product_id}", catalog.GetProduct)
		r.Get("/announcements", content.ListAnnouncements)
		r.Get("/events", content.ListEvents)

		r.Group(func(r chi.Router) {
			r.Use(SessionMiddleware(cfg.SessionTTL))
			r.Route("/cart", func(r chi.Router) {
				r.Get("/", carts.GetCart)
				r.Delete("/", carts.ClearCart)
				r.Post("/items", carts.AddItem)
				r.Put("/items/{product_id}", carts.UpdateQuantity)
				r.Delete("/items/{product_id}", carts.RemoveItem)
			})
			r.With(limit).Post("/checkout", carts.Checkout)
		})

		r.With(limit).Post("/orders", orders.CreateOrder)
		r.With(limit).Get("/orders", orders.ListOrders)

		r.Route("/admin", func(r chi.Router) {
			r.Use(cfg.Auth.Middleware)

			r.Route("/orders/{order_id}", func(r chi.Router) {
				r.Get("/", orders.GetOrder)
				r.Patch("/", orders.UpdateOrder)
				r.Delete("/", orders.DeleteOrder)
				r.Get("/invoice", orders.Invoice)
			})

			r.Post("/products", catalog.CreateProduct)
			r.Put("/products/{product_id}", catalog.UpdateProduct)
			r.Delete("/products/{product_id}", catalog.DeleteProduct)

			r.Get("/announcements", content.ListAllAnnouncements)
			r.Post("/announcements", content.CreateAnnouncement)
			r.Put("/announcements/{id}", content.UpdateAnnouncement)
			r.Delete("/announcements/{id}", content.DeleteAnnouncement)

			r.Post("/events", content.CreateEvent)
			r.Put("/events/{id}", content.UpdateEvent)
			r.Delete("/events/{id}", content.DeleteEvent)
		})
	})

	return r
}
