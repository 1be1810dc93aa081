package http

import (
	"context"
	"net/http"
	"time"

	"github.com/auracommerce/storefront/internal/catalog"
)

// ShopHandler serves the storefront's read side: the filtered catalog and the
// category strip.
type ShopHandler struct {
	catalog *catalog.Service
	timeout time.Duration
}

func NewShopHandler(cat *catalog.Service, timeout time.Duration) *ShopHandler {
	return &ShopHandler{
		catalog: cat,
		timeout: timeout,
	}
}

func (h *ShopHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.catalog.Products(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load catalog")
		return
	}

	activeCategory := r.URL.Query().Get("category")
	if activeCategory == "" {
		activeCategory = catalog.CategoryAll
	}
	query := r.URL.Query().Get("q")

	respondJSON(w, http.StatusOK, catalog.Visible(products, activeCategory, query))
}

func (h *ShopHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.catalog.Products(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load catalog")
		return
	}

	respondJSON(w, http.StatusOK, catalog.Categories(products))
}
