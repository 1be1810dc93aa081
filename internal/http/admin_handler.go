package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/auracommerce/storefront/internal/catalog"
	"github.com/auracommerce/storefront/internal/domain"
	"github.com/auracommerce/storefront/internal/notify"
	"github.com/auracommerce/storefront/internal/store"
)

// AdminHandler backs the store console: catalog management, sales history,
// settings, and the notification connectivity check.
type AdminHandler struct {
	catalog    *catalog.Service
	store      store.Store
	dispatcher *notify.Dispatcher
	describer  catalog.Describer
	timeout    time.Duration
}

func NewAdminHandler(cat *catalog.Service, st store.Store, dispatcher *notify.Dispatcher, describer catalog.Describer, timeout time.Duration) *AdminHandler {
	return &AdminHandler{
		catalog:    cat,
		store:      st,
		dispatcher: dispatcher,
		describer:  describer,
		timeout:    timeout,
	}
}

type LoginRequestDTO struct {
	Password string `json:"password"`
}

// Login checks the admin password for the login view. The admin routes
// themselves re-check it per request via AdminAuthMiddleware.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	settings, err := h.store.Settings(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load settings")
		return
	}

	if req.Password != settings.AdminPassword {
		respondError(w, http.StatusUnauthorized, "invalid_password", "incorrect password")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type ProductRequestDTO struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Stock       int     `json:"stock"`
}

func (dto ProductRequestDTO) validate() (string, string) {
	switch {
	case dto.Name == "":
		return "invalid_name", "name is required"
	case dto.Category == "":
		return "invalid_category", "category is required"
	case dto.Price < 0:
		return "invalid_price", "price must not be negative"
	case dto.Stock < 0:
		return "invalid_stock", "stock must not be negative"
	}
	return "", ""
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req ProductRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if code, msg := req.validate(); code != "" {
		respondError(w, http.StatusBadRequest, code, msg)
		return
	}

	created, err := h.catalog.Create(ctx, domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Image:       req.Image,
		Stock:       req.Stock,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to create product")
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(r, "id")

	var req ProductRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if code, msg := req.validate(); code != "" {
		respondError(w, http.StatusBadRequest, code, msg)
		return
	}

	updated := domain.Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Image:       req.Image,
		Stock:       req.Stock,
	}

	err := h.catalog.Update(ctx, updated)
	if errors.Is(err, catalog.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to update product")
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(r, "id")

	err := h.catalog.Delete(ctx, id)
	if errors.Is(err, catalog.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to delete product")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orders, err := h.store.Orders(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load orders")
		return
	}

	respondJSON(w, http.StatusOK, orders)
}

func (h *AdminHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	settings, err := h.store.Settings(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load settings")
		return
	}

	respondJSON(w, http.StatusOK, settings)
}

func (h *AdminHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var settings domain.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.store.SaveSettings(ctx, settings); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to save settings")
		return
	}

	respondJSON(w, http.StatusOK, settings)
}

type WebhookTestRequestDTO struct {
	URL string `json:"url"`
}

// TestWebhook posts a synthetic order to the connectivity-check URL. With no
// URL in the body, the configured webhook from settings is used.
func (h *AdminHandler) TestWebhook(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req WebhookTestRequestDTO
	if r.Body != nil {
		// Body is optional.
		json.NewDecoder(r.Body).Decode(&req)
	}

	url := req.URL
	if url == "" {
		settings, err := h.store.Settings(ctx)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "internal_error", "failed to load settings")
			return
		}
		url = settings.WebhookURL()
	}
	if url == "" {
		respondError(w, http.StatusBadRequest, "no_webhook", "please enter a webhook URL first")
		return
	}

	if err := h.dispatcher.TestWebhook(ctx, url); err != nil {
		respondError(w, http.StatusBadGateway, "webhook_unreachable", "webhook test failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "connected"})
}

type DescribeRequestDTO struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

func (h *AdminHandler) Describe(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req DescribeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Name == "" || req.Category == "" {
		respondError(w, http.StatusBadRequest, "missing_fields", "enter name and category first")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"description": h.describer.Describe(ctx, req.Name, req.Category),
	})
}
