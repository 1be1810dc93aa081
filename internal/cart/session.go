package cart

import (
	"context"

	"github.com/auracommerce/storefront/internal/domain"
)

// SessionStore keeps the in-progress cart of each browser session between
// requests. A session with no stored cart starts empty.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	Put(ctx context.Context, sessionID string, cart *domain.Cart) error
	Delete(ctx context.Context, sessionID string) error
}
