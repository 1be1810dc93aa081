package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/auracommerce/storefront/internal/domain"
	"github.com/auracommerce/storefront/internal/store"
)

var (
	ErrEmptyCart       = errors.New("cart is empty, nothing to checkout")
	ErrMissingShipping = errors.New("all shipping fields are required")
	ErrInvalidPayment  = errors.New("unknown payment method")
)

// Notifier delivers order notifications. Dispatch must return immediately and
// never report failure to the caller.
type Notifier interface {
	Dispatch(order domain.Order, settings domain.Settings)
}

// Service composes orders: it freezes the cart into an immutable record,
// persists it newest-first, and fires the notification side effects. An order
// counts as placed once the store write succeeds, regardless of what the
// notification endpoints do.
type Service struct {
	store    store.Store
	notifier Notifier
}

func NewService(st store.Store, notifier Notifier) *Service {
	return &Service{store: st, notifier: notifier}
}

func (s *Service) PlaceOrder(
	ctx context.Context,
	shipping domain.ShippingInfo,
	method domain.PaymentMethod,
	cart *domain.Cart) (domain.Order, error) {

	if shipping.CustomerName == "" || shipping.CustomerEmail == "" ||
		shipping.CustomerPhone == "" || shipping.Address == "" {
		return domain.Order{}, ErrMissingShipping
	}
	if !method.Valid() {
		return domain.Order{}, ErrInvalidPayment
	}
	if len(cart.Items) == 0 {
		return domain.Order{}, ErrEmptyCart
	}

	order := domain.Order{
		ID:            newOrderID(),
		CustomerName:  shipping.CustomerName,
		CustomerEmail: shipping.CustomerEmail,
		CustomerPhone: shipping.CustomerPhone,
		Address:       shipping.Address,
		Items:         cart.CloneItems(),
		Total:         cart.Total(),
		PaymentMethod: method,
		Status:        domain.OrderStatusPending,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.store.AppendOrder(ctx, order); err != nil {
		return domain.Order{}, fmt.Errorf("persist order: %w", err)
	}

	// Best effort from here on: the order is already placed.
	settings, err := s.store.Settings(ctx)
	if err != nil {
		log.Printf("settings unavailable, skipping notifications for order %s: %v", order.ID, err)
	} else {
		s.notifier.Dispatch(order, settings)
	}

	// Cart clears only after the order is durably stored.
	cart.Clear()

	return order, nil
}

const orderIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
const orderIDLength = 9

// newOrderID returns a 9-character uppercase alphanumeric id, the scheme the
// store has always used for orders. It is not collision-proof, merely
// overwhelmingly unlikely to repeat at this store's volume.
func newOrderID() string {
	id := make([]byte, orderIDLength)
	for i := range id {
		id[i] = orderIDAlphabet[rand.Intn(len(orderIDAlphabet))]
	}
	return string(id)
}
