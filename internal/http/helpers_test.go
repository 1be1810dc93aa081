package http

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/auracommerce/storefront/internal/cart"
	"github.com/auracommerce/storefront/internal/catalog"
	"github.com/auracommerce/storefront/internal/domain"
)

type mockStore struct {
	m           sync.RWMutex
	products    []domain.Product
	orders      []domain.Order
	settings    domain.Settings
	err         error
	settingsErr error
}

func newMockStore() *mockStore {
	return &mockStore{
		products: domain.SeedProducts(),
		settings: domain.DefaultSettings(),
	}
}

func (m *mockStore) Products(context.Context) ([]domain.Product, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.products, nil
}

func (m *mockStore) SaveProducts(_ context.Context, products []domain.Product) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.products = products
	return nil
}

func (m *mockStore) Orders(context.Context) ([]domain.Order, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.orders, nil
}

func (m *mockStore) AppendOrder(_ context.Context, order domain.Order) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.orders = append([]domain.Order{order}, m.orders...)
	return nil
}

func (m *mockStore) Settings(context.Context) (domain.Settings, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.settingsErr != nil {
		return domain.Settings{}, m.settingsErr
	}
	return m.settings, nil
}

func (m *mockStore) SaveSettings(_ context.Context, settings domain.Settings) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.settings = settings
	return nil
}

func (m *mockStore) Close() error { return nil }

func newTestSessions(t *testing.T) cart.SessionStore {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return cart.NewRedisStore(client)
}

func newTestCatalog(st *mockStore) *catalog.Service {
	return catalog.NewService(st)
}

// withSession plants a session id the way SessionMiddleware would.
func withSession(r *http.Request, sessionID string) *http.Request {
	ctx := context.WithValue(r.Context(), "session_id", sessionID)
	return r.WithContext(ctx)
}

// withURLParam plants a chi route parameter for direct handler calls.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

const testTimeout = 5 * time.Second
