package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPDescriber_Success(t *testing.T) {
	var gotPrompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req describeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotPrompt = req.Prompt
		json.NewEncoder(w).Encode(describeResponse{Text: "A sleek lamp for any desk."})
	}))
	defer srv.Close()

	sut := NewHTTPDescriber(srv.URL, "test-key", 5*time.Second)
	desc := sut.Describe(context.Background(), "Desk Lamp", "Home")

	assert.Equal(t, "A sleek lamp for any desk.", desc)
	assert.Contains(t, gotPrompt, `"Desk Lamp"`)
	assert.Contains(t, gotPrompt, `"Home"`)
}

func TestHTTPDescriber_SendsAuthHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(describeResponse{Text: "ok"})
	}))
	defer srv.Close()

	sut := NewHTTPDescriber(srv.URL, "test-key", 5*time.Second)
	sut.Describe(context.Background(), "A", "B")

	assert.Equal(t, "Bearer test-key", gotAuth)
}

func TestHTTPDescriber_ServerErrorFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	sut := NewHTTPDescriber(srv.URL, "", 5*time.Second)
	assert.Equal(t, FallbackDescription, sut.Describe(context.Background(), "A", "B"))
}

func TestHTTPDescriber_UnreachableEndpointFallsBack(t *testing.T) {
	sut := NewHTTPDescriber("http://127.0.0.1:1", "", time.Second)
	assert.Equal(t, FallbackDescription, sut.Describe(context.Background(), "A", "B"))
}

func TestHTTPDescriber_EmptyTextFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(describeResponse{Text: ""})
	}))
	defer srv.Close()

	sut := NewHTTPDescriber(srv.URL, "", 5*time.Second)
	assert.Equal(t, FallbackDescription, sut.Describe(context.Background(), "A", "B"))
}

func TestStaticDescriber(t *testing.T) {
	assert.Equal(t, FallbackDescription, StaticDescriber{}.Describe(context.Background(), "A", "B"))
}
