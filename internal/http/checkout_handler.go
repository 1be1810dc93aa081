package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/auracommerce/storefront/internal/cart"
	"github.com/auracommerce/storefront/internal/checkout"
	"github.com/auracommerce/storefront/internal/domain"
	"github.com/auracommerce/storefront/internal/store"
)

type CheckoutHandler struct {
	checkout *checkout.Service
	sessions cart.SessionStore
	store    store.Store
	timeout  time.Duration
}

func NewCheckoutHandler(svc *checkout.Service, sessions cart.SessionStore, st store.Store, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: svc,
		sessions: sessions,
		store:    st,
		timeout:  timeout,
	}
}

type PlaceOrderRequestDTO struct {
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`
	Address       string `json:"address"`
	PaymentMethod string `json:"paymentMethod"`
}

type PlaceOrderResponseDTO struct {
	Order      domain.Order `json:"order"`
	PaymentURI string       `json:"paymentUri"`
	QRImageURL string       `json:"qrImageUrl"`
}

func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing session")
		return
	}

	var req PlaceOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	c, err := h.sessions.Get(ctx, sessionID)
	if err != nil {
		log.Printf("session cart unreadable at checkout: %v", err)
		c = &domain.Cart{}
	}

	shipping := domain.ShippingInfo{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Address:       req.Address,
	}

	order, err := h.checkout.PlaceOrder(ctx, shipping, domain.PaymentMethod(req.PaymentMethod), c)
	switch {
	case errors.Is(err, checkout.ErrMissingShipping):
		respondError(w, http.StatusBadRequest, "missing_shipping_fields", "please fill all shipping fields")
		return
	case errors.Is(err, checkout.ErrInvalidPayment):
		respondError(w, http.StatusBadRequest, "invalid_payment_method", "payment method must be online or store")
		return
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", "cart is empty")
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to place order")
		return
	}

	// The service cleared the in-memory cart; drop the stored session copy
	// too. The order is already placed, so this is best effort.
	if e2 := h.sessions.Delete(ctx, sessionID); e2 != nil {
		log.Printf("failed to clear session cart after order %s: %v", order.ID, e2)
	}

	settings, e3 := h.store.Settings(ctx)
	if e3 != nil {
		log.Printf("settings unavailable for payment links: %v", e3)
		settings = domain.DefaultSettings()
	}

	respondJSON(w, http.StatusCreated, PlaceOrderResponseDTO{
		Order:      order,
		PaymentURI: checkout.PaymentURI(settings, order.Total),
		QRImageURL: checkout.QRImageURL(settings, order.Total),
	})
}
