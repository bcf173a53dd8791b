package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// NewRouter wires the storefront routes with the shared middleware stack.
func NewRouter(h *Handlers, log *zap.Logger, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(RequestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", h.Health)

	r.Get("/", h.Home)
	r.Get("/shop", h.ShopIndex)
	r.Route("/shop/{productID}", func(r chi.Router) {
		r.Get("/", h.ProductDetail)
		r.Post("/", h.ProductAction)
	})
	r.Get("/cart", h.CartPage)
	r.Post("/cart", h.CartAction)

	return r
}
