package shoptaboard

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testProduct = Product{
	ID:          "prod-1",
	Name:        "Indy Stage 11",
	Description: "149mm polished trucks",
	Category:    CategoryTrucks,
	Brand:       "Independent",
	Price:       74.95,
	Stock:       20,
}

func writeProduct(w http.ResponseWriter, p Product) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p)
}

func TestAdminLogin_StoresTokensSeparately(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/login", r.URL.Path)
		writeTokens(w, "admin-access", "admin-refresh")
	})

	err := client.Admin.Login(context.Background(), AdminLoginRequest{
		Email:    "admin@example.com",
		Password: "secret",
	})
	require.NoError(t, err)

	assert.True(t, client.Admin.IsAuthenticated())

	access, ok := client.Admin.TokenStore().AccessToken()
	require.True(t, ok)
	assert.Equal(t, "admin-access", access)

	// The shopper store is untouched; the scopes never mix.
	assert.False(t, client.TokenStore().Has())
	assert.False(t, client.Session.IsAuthenticated())
}

func TestAdminLogin_RequiresCredentials(t *testing.T) {
	var calls int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})

	err := client.Admin.Login(context.Background(), AdminLoginRequest{Email: "admin@example.com"})
	assert.True(t, IsValidation(err))
	assert.Equal(t, 0, calls)
}

func TestAdminLogout_DropsTokensLocally(t *testing.T) {
	var calls int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		writeTokens(w, "admin-access", "admin-refresh")
	})

	require.NoError(t, client.Admin.Login(context.Background(), AdminLoginRequest{
		Email:    "admin@example.com",
		Password: "secret",
	}))
	require.NoError(t, client.Admin.Logout())

	assert.False(t, client.Admin.IsAuthenticated())
	assert.Equal(t, 1, calls, "logout is local only")
}

func TestAdminOperations_RequireAdminTokens(t *testing.T) {
	var calls int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})
	ctx := context.Background()

	// A shopper session must not satisfy the admin gate.
	require.NoError(t, client.TokenStore().Save(Tokens{AccessToken: "shopper", RefreshToken: "r"}))

	_, err := client.Admin.ListProducts(ctx)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = client.Admin.CreateProduct(ctx, CreateProductRequest{
		Name:        "Indy Stage 11",
		Description: "149mm polished trucks",
		Price:       74.95,
	})
	assert.ErrorIs(t, err, ErrUnauthenticated)

	assert.Equal(t, 0, calls)
}

func adminClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	client := newTestClient(t, handler)
	require.NoError(t, client.Admin.TokenStore().Save(Tokens{
		AccessToken:  "admin-access",
		RefreshToken: "admin-refresh",
	}))
	return client
}

func TestCreateProduct_Validation(t *testing.T) {
	var calls int
	client := adminClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})
	ctx := context.Background()

	tests := []struct {
		name  string
		req   CreateProductRequest
		field string
	}{
		{"short name", CreateProductRequest{Name: "X", Description: "long enough text", Price: 10}, "name"},
		{"padded name", CreateProductRequest{Name: " X ", Description: "long enough text", Price: 10}, "name"},
		{"short description", CreateProductRequest{Name: "Deck", Description: "too short", Price: 10}, "description"},
		{"zero price", CreateProductRequest{Name: "Deck", Description: "long enough text", Price: 0}, "price"},
		{"negative stock", CreateProductRequest{Name: "Deck", Description: "long enough text", Price: 10, Stock: -1}, "stock"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product, err := client.Admin.CreateProduct(ctx, tt.req)
			require.Error(t, err)
			assert.Nil(t, product)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
	assert.Equal(t, 0, calls)
}

func TestCreateProduct_Success(t *testing.T) {
	client := adminClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/admin/products", r.URL.Path)
		assert.Equal(t, "Bearer admin-access", r.Header.Get("Authorization"))

		var req CreateProductRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, CategoryTrucks, req.Category)

		w.WriteHeader(http.StatusCreated)
		writeProduct(w, testProduct)
	})

	product, err := client.Admin.CreateProduct(context.Background(), CreateProductRequest{
		Name:        "Indy Stage 11",
		Description: "149mm polished trucks",
		Category:    CategoryTrucks,
		Brand:       "Independent",
		Price:       74.95,
		Stock:       20,
	})
	require.NoError(t, err)
	assert.Equal(t, "prod-1", product.ID)
}

func TestUpdateProduct_SendsOnlyChangedFields(t *testing.T) {
	client := adminClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/admin/products/prod-1", r.URL.Path)

		var raw map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		assert.Len(t, raw, 1, "nil fields must be omitted from the payload")
		assert.Equal(t, 69.95, raw["price"])

		writeProduct(w, testProduct)
	})

	price := 69.95
	_, err := client.Admin.UpdateProduct(context.Background(), "prod-1", UpdateProductRequest{
		Price: &price,
	})
	require.NoError(t, err)
}

func TestUpdateProduct_RejectsBadPartialValues(t *testing.T) {
	var calls int
	client := adminClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})
	ctx := context.Background()

	// An explicit zero is a present value and must be rejected, not
	// treated as an omitted field.
	badPrice := 0.0
	_, err := client.Admin.UpdateProduct(ctx, "prod-1", UpdateProductRequest{Price: &badPrice})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "price", ve.Field)

	badStock := -1
	_, err = client.Admin.UpdateProduct(ctx, "prod-1", UpdateProductRequest{Stock: &badStock})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "stock", ve.Field)

	_, err = client.Admin.UpdateProduct(ctx, "", UpdateProductRequest{})
	assert.True(t, IsValidation(err))

	assert.Equal(t, 0, calls)
}

func TestUpdateStock(t *testing.T) {
	client := adminClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/admin/products/prod-1/stock", r.URL.Path)

		var req struct {
			Stock int `json:"stock"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 35, req.Stock)

		restocked := testProduct
		restocked.Stock = 35
		writeProduct(w, restocked)
	})

	product, err := client.Admin.UpdateStock(context.Background(), "prod-1", 35)
	require.NoError(t, err)
	assert.Equal(t, 35, product.Stock)

	_, err = client.Admin.UpdateStock(context.Background(), "prod-1", -5)
	assert.True(t, IsValidation(err))
}

func TestDeleteProduct(t *testing.T) {
	client := adminClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/admin/products/prod-1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.Admin.DeleteProduct(context.Background(), "prod-1"))

	err := client.Admin.DeleteProduct(context.Background(), "")
	assert.True(t, IsValidation(err))
}
