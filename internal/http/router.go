package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/auracommerce/storefront/internal/cart"
	"github.com/auracommerce/storefront/internal/catalog"
	"github.com/auracommerce/storefront/internal/checkout"
	"github.com/auracommerce/storefront/internal/notify"
	"github.com/auracommerce/storefront/internal/store"
)

type RouterDeps struct {
	Store          store.Store
	Sessions       cart.SessionStore
	Catalog        *catalog.Service
	Checkout       *checkout.Service
	Dispatcher     *notify.Dispatcher
	Describer      catalog.Describer
	RequestTimeout time.Duration
}

// NewRouter assembles the full storefront API.
func NewRouter(deps RouterDeps) chi.Router {
	shopHandler := NewShopHandler(deps.Catalog, deps.RequestTimeout)
	cartHandler := NewCartHandler(deps.Sessions, deps.Catalog, deps.RequestTimeout)
	checkoutHandler := NewCheckoutHandler(deps.Checkout, deps.Sessions, deps.Store, deps.RequestTimeout)
	adminHandler := NewAdminHandler(deps.Catalog, deps.Store, deps.Dispatcher, deps.Describer, deps.RequestTimeout)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(deps.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(SessionMiddleware)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", shopHandler.ListProducts)
		r.Get("/categories", shopHandler.ListCategories)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.Get)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{product_id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{product_id}", cartHandler.RemoveItem)
		})

		r.Post("/checkout", checkoutHandler.PlaceOrder)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", adminHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(AdminAuthMiddleware(deps.Store))

				r.Post("/products", adminHandler.CreateProduct)
				r.Put("/products/{id}", adminHandler.UpdateProduct)
				r.Delete("/products/{id}", adminHandler.DeleteProduct)

				r.Get("/orders", adminHandler.ListOrders)

				r.Get("/settings", adminHandler.GetSettings)
				r.Put("/settings", adminHandler.UpdateSettings)

				r.Post("/webhook-test", adminHandler.TestWebhook)
				r.Post("/describe", adminHandler.Describe)
			})
		})
	})

	return r
}
