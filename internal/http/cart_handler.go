package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/auracommerce/storefront/internal/cart"
	"github.com/auracommerce/storefront/internal/catalog"
	"github.com/auracommerce/storefront/internal/domain"
)

type CartHandler struct {
	sessions cart.SessionStore
	catalog  *catalog.Service
	timeout  time.Duration
}

func NewCartHandler(sessions cart.SessionStore, cat *catalog.Service, timeout time.Duration) *CartHandler {
	return &CartHandler{
		sessions: sessions,
		catalog:  cat,
		timeout:  timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
}

type UpdateQuantityRequestDTO struct {
	Delta int `json:"delta"`
}

type CartResponseDTO struct {
	Items []domain.CartItem `json:"items"`
	Total float64           `json:"total"`
	Count int               `json:"count"`
}

func cartResponse(c *domain.Cart) CartResponseDTO {
	items := c.Items
	if items == nil {
		items = []domain.CartItem{}
	}
	return CartResponseDTO{Items: items, Total: c.Total(), Count: c.Count()}
}

// loadCart fetches the session cart, treating an unreadable cached value the
// same as an absent one.
func (h *CartHandler) loadCart(ctx context.Context, sessionID string) *domain.Cart {
	c, err := h.sessions.Get(ctx, sessionID)
	if err != nil {
		log.Printf("session cart unreadable, starting fresh: %v", err)
		return &domain.Cart{}
	}
	return c
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing session")
		return
	}

	respondJSON(w, http.StatusOK, cartResponse(h.loadCart(ctx, sessionID)))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing session")
		return
	}

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	product, err := h.catalog.Find(ctx, req.ProductID)
	if errors.Is(err, catalog.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load catalog")
		return
	}

	c := h.loadCart(ctx, sessionID)
	c.Add(product)

	if err := h.sessions.Put(ctx, sessionID, c); err != nil {
		log.Printf("failed to save cart: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to save cart")
		return
	}

	respondJSON(w, http.StatusCreated, cartResponse(c))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing session")
		return
	}

	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	c := h.loadCart(ctx, sessionID)
	c.UpdateQuantity(productID, req.Delta)

	if err := h.sessions.Put(ctx, sessionID, c); err != nil {
		log.Printf("failed to save cart: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to save cart")
		return
	}

	respondJSON(w, http.StatusOK, cartResponse(c))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing session")
		return
	}

	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	c := h.loadCart(ctx, sessionID)
	c.Remove(productID)

	if err := h.sessions.Put(ctx, sessionID, c); err != nil {
		log.Printf("failed to save cart: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to save cart")
		return
	}

	respondJSON(w, http.StatusOK, cartResponse(c))
}
