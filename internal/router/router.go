package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/storefront/storefront/internal/handler"
	"github.com/storefront/storefront/internal/middleware"
)

// New creates and configures the HTTP router
func New(h *handler.Handler, mw *middleware.Middleware, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	// Panic recovery (outermost)
	r.Use(mw.Recover)
	r.Use(mw.RequestID)
	r.Use(mw.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	// Health check endpoints
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)

	r.Group(func(r chi.Router) {
		r.Use(mw.RateLimit(mw.DefaultRateLimit()))

		// Catalog
		r.Get("/categories", h.ListCategories)
		r.Get("/products", h.ListProducts)
		r.Get("/product/{id}", h.GetProduct)
		r.Get("/get_desktop_hero_images", h.GetDesktopHeroImages)
		r.Get("/get_mobile_hero_images", h.GetMobileHeroImages)

		// Checkout
		r.Post("/order_confirmation", h.ConfirmOrder)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Not found"}`))
	})

	return r
}
