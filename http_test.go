package shoptaboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient creates a test server and a client pointed at it. The
// client uses in-memory token stores.
func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	opts = append([]Option{WithBaseURL(server.URL)}, opts...)
	return NewClient(opts...)
}

func TestDo_SetsRequestHeaders(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "shop-ta-board-go/1.0.0", r.Header.Get("User-Agent"))

		// Every request carries a unique request ID.
		_, err := uuid.Parse(r.Header.Get("X-Request-ID"))
		assert.NoError(t, err)

		// No token was passed, so no Authorization header.
		assert.Empty(t, r.Header.Get("Authorization"))

		w.WriteHeader(http.StatusNoContent)
	})

	err := client.do(context.Background(), http.MethodGet, "/products", "", nil, nil)
	require.NoError(t, err)
}

func TestDo_AttachesBearerToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token-abc", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	})

	err := client.do(context.Background(), http.MethodGet, "/cart", "token-abc", nil, nil)
	require.NoError(t, err)
}

func TestDo_NoContentAndEmptyBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	var result map[string]string
	err := client.do(context.Background(), http.MethodDelete, "/cart", "token", nil, &result)
	require.NoError(t, err)
	assert.Nil(t, result)

	client = newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK) // 200 with empty body
	})

	err = client.do(context.Background(), http.MethodGet, "/cart", "token", nil, &result)
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestDo_ParsesStructuredError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{
			name:    "message field",
			status:  http.StatusConflict,
			body:    `{"message": "email already registered"}`,
			message: "email already registered",
		},
		{
			name:    "error field fallback",
			status:  http.StatusBadRequest,
			body:    `{"error": "bad request"}`,
			message: "bad request",
		},
		{
			name:    "message wins over error",
			status:  http.StatusBadRequest,
			body:    `{"message": "from message", "error": "from error"}`,
			message: "from message",
		},
		{
			name:    "unparseable body",
			status:  http.StatusInternalServerError,
			body:    `<html>boom</html>`,
			message: "HTTP error 500",
		},
		{
			name:    "empty body",
			status:  http.StatusNotFound,
			body:    "",
			message: "HTTP error 404",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			err := client.do(context.Background(), http.MethodGet, "/products", "token", nil, nil)
			require.Error(t, err)

			apiErr, ok := AsAPIError(err)
			require.True(t, ok)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.message, apiErr.Message)
		})
	}
}

func TestDo_TransportFailureIsNetworkError(t *testing.T) {
	// Point at a server that is already closed.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(WithBaseURL(server.URL))

	err := client.do(context.Background(), http.MethodGet, "/products", "", nil, nil)
	require.Error(t, err)
	assert.True(t, IsNetwork(err))

	_, ok := AsAPIError(err)
	assert.False(t, ok, "a transport failure must not look like an API error")
}

func TestDo_NeverRetriesOn401(t *testing.T) {
	var calls int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "token expired"}`))
	})

	err := client.do(context.Background(), http.MethodGet, "/users/me", "stale", nil, nil)
	require.Error(t, err)
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.True(t, apiErr.IsUnauthorized())
	assert.Equal(t, 1, calls, "the transport must surface a 401 without retrying")
}

func TestDo_PreservesQueryString(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, "decks", r.URL.Query().Get("category"))
		w.Write([]byte(`[]`))
	})

	var products []Product
	err := client.do(context.Background(), http.MethodGet, "/products?category=decks", "token", nil, &products)
	require.NoError(t, err)
}
