package cart

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auracommerce/storefront/internal/domain"
)

// setupTestRedis creates a miniredis server and returns a RedisStore instance
func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	store := NewRedisStore(client)

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return store, mr, cleanup
}

func sampleCart() *domain.Cart {
	cart := &domain.Cart{}
	cart.Add(domain.Product{ID: "1", Name: "Watch", Price: 129.99, Category: "Accessories"})
	cart.Add(domain.Product{ID: "1", Name: "Watch", Price: 129.99, Category: "Accessories"})
	cart.Add(domain.Product{ID: "3", Name: "Tee", Price: 35, Category: "Apparel"})
	return cart
}

func TestGet_FreshSessionReturnsEmptyCart(t *testing.T) {
	store, _, cleanup := setupTestRedis(t)
	defer cleanup()

	cart, err := store.Get(context.Background(), "nonexistent")
	require.NoError(t, err)
	require.NotNil(t, cart)
	assert.Empty(t, cart.Items)
}

func TestPutGet_RoundTrip(t *testing.T) {
	store, _, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	saved := sampleCart()

	require.NoError(t, store.Put(ctx, "session123", saved))

	got, err := store.Get(ctx, "session123")
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "1", got.Items[0].ID)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.InDelta(t, saved.Total(), got.Total(), 0.0001)
}

func TestGet_InvalidJSON(t *testing.T) {
	store, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	jsonCart, err := json.Marshal(sampleCart())
	require.NoError(t, err)
	require.NoError(t, mr.Set(sessionKey("session123"), string(jsonCart[0:10])))

	_, getErr := store.Get(context.Background(), "session123")
	require.ErrorContains(t, getErr, "unmarshal cart failed")
}

func TestPut_SetsTTL(t *testing.T) {
	store, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	require.NoError(t, store.Put(context.Background(), "session456", sampleCart()))

	ttl := mr.TTL(sessionKey("session456"))
	assert.True(t, ttl >= 24*time.Hour, "TTL should be at least base TTL")
	assert.True(t, ttl <= 24*time.Hour+30*time.Minute, "TTL should be base + max jitter")
}

func TestDelete_RemovesCart(t *testing.T) {
	store, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "session789", sampleCart()))
	assert.True(t, mr.Exists(sessionKey("session789")))

	require.NoError(t, store.Delete(ctx, "session789"))
	assert.False(t, mr.Exists(sessionKey("session789")))
}

func TestDelete_NonExistentKey(t *testing.T) {
	store, _, cleanup := setupTestRedis(t)
	defer cleanup()

	assert.NoError(t, store.Delete(context.Background(), "nonexistent"))
}

func TestSessionKey_Format(t *testing.T) {
	assert.Equal(t, "cart:abc123", sessionKey("abc123"))
}
