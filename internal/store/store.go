package store

import (
	"context"

	"github.com/auracommerce/storefront/internal/domain"
)

// Store is the durable slot store behind the whole application: one slot per
// entity, each holding the full JSON-serialized value. A missing or unreadable
// slot always yields the documented default, never an error.
type Store interface {
	Products(ctx context.Context) ([]domain.Product, error)
	SaveProducts(ctx context.Context, products []domain.Product) error

	Orders(ctx context.Context) ([]domain.Order, error)
	// AppendOrder prepends the order to the stored list, newest first.
	AppendOrder(ctx context.Context, order domain.Order) error

	Settings(ctx context.Context) (domain.Settings, error)
	SaveSettings(ctx context.Context, settings domain.Settings) error

	Close() error
}

const (
	slotProducts = "aura_products"
	slotOrders   = "aura_orders"
	slotSettings = "aura_settings"
)
