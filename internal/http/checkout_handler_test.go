package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auracommerce/storefront/internal/cart"
	"github.com/auracommerce/storefront/internal/checkout"
	"github.com/auracommerce/storefront/internal/domain"
)

type noopNotifier struct{}

func (noopNotifier) Dispatch(domain.Order, domain.Settings) {}

func newCheckoutFixture(t *testing.T) (*CheckoutHandler, *mockStore, cart.SessionStore) {
	st := newMockStore()
	sessions := newTestSessions(t)
	svc := checkout.NewService(st, noopNotifier{})
	handler := NewCheckoutHandler(svc, sessions, st, testTimeout)
	return handler, st, sessions
}

func fillSessionCart(t *testing.T, sessions cart.SessionStore, sessionID string) {
	c := &domain.Cart{}
	c.Add(domain.Product{ID: "1", Name: "Watch", Price: 10})
	c.Add(domain.Product{ID: "1", Name: "Watch", Price: 10})
	c.Add(domain.Product{ID: "2", Name: "Tee", Price: 5})
	require.NoError(t, sessions.Put(context.Background(), sessionID, c))
}

const validOrderBody = `{
	"customerName": "Jane Doe",
	"customerEmail": "jane@example.com",
	"customerPhone": "555-0101",
	"address": "42 Main St",
	"paymentMethod": "online"
}`

func TestPlaceOrder_Success(t *testing.T) {
	handler, st, sessions := newCheckoutFixture(t)
	fillSessionCart(t, sessions, "s1")

	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("POST", "/", strings.NewReader(validOrderBody)), "s1")

	handler.PlaceOrder(recorder, request)

	require.Equal(t, http.StatusCreated, recorder.Code)

	var resp PlaceOrderResponseDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.InDelta(t, 25.0, resp.Order.Total, 0.0001)
	assert.Equal(t, domain.OrderStatusPending, resp.Order.Status)
	assert.Contains(t, resp.PaymentURI, "am=25.00")
	assert.Contains(t, resp.QRImageURL, "api.qrserver.com")

	// Order persisted newest-first.
	require.Len(t, st.orders, 1)
	assert.Equal(t, resp.Order.ID, st.orders[0].ID)

	// Session cart is gone.
	c, err := sessions.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}

func TestPlaceOrder_MissingShippingField(t *testing.T) {
	handler, st, sessions := newCheckoutFixture(t)
	fillSessionCart(t, sessions, "s1")

	body := `{"customerName":"Jane","customerEmail":"","customerPhone":"555","address":"x","paymentMethod":"online"}`
	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("POST", "/", strings.NewReader(body)), "s1")

	handler.PlaceOrder(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Empty(t, st.orders)

	// Cart untouched after a rejected order.
	c, err := sessions.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Len(t, c.Items, 2)
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	handler, _, _ := newCheckoutFixture(t)

	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("POST", "/", strings.NewReader(validOrderBody)), "s1")

	handler.PlaceOrder(recorder, request)

	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "empty_cart", resp.Code)
}

func TestPlaceOrder_InvalidPaymentMethod(t *testing.T) {
	handler, _, sessions := newCheckoutFixture(t)
	fillSessionCart(t, sessions, "s1")

	body := strings.Replace(validOrderBody, "online", "cheque", 1)
	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("POST", "/", strings.NewReader(body)), "s1")

	handler.PlaceOrder(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestPlaceOrder_MissingSession(t *testing.T) {
	handler, _, _ := newCheckoutFixture(t)

	recorder := httptest.NewRecorder()
	handler.PlaceOrder(recorder, httptest.NewRequest("POST", "/", strings.NewReader(validOrderBody)))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestPlaceOrder_StoreFailure(t *testing.T) {
	handler, st, sessions := newCheckoutFixture(t)
	fillSessionCart(t, sessions, "s1")
	st.err = assert.AnError

	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("POST", "/", strings.NewReader(validOrderBody)), "s1")

	handler.PlaceOrder(recorder, request)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}
