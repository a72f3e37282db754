package mockshop

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	shoptaboard "github.com/Gra1gkolodziejczyk/shop-ta-board"
)

// newTestShop boots the mock storefront and returns an API client wired to
// it, exercising the real SDK against the full HTTP surface.
func newTestShop(t *testing.T) (*shoptaboard.Client, *Store) {
	t.Helper()

	store, err := NewStore("admin@test.local", "adminpass")
	require.NoError(t, err)
	store.Seed(DefaultCatalogue())

	server := httptest.NewServer(NewServer(store).Handler())
	t.Cleanup(server.Close)

	return shoptaboard.NewClient(shoptaboard.WithBaseURL(server.URL)), store
}

func TestIntegration_ShopperJourney(t *testing.T) {
	client, _ := newTestShop(t)
	ctx := context.Background()

	// Sign up and land authenticated.
	user, err := client.Session.SignUp(ctx, shoptaboard.SignUpRequest{
		Firstname: "Tony",
		Lastname:  "Hawk",
		Email:     "tony@example.com",
		Password:  "hangten99",
	})
	require.NoError(t, err)
	assert.Equal(t, "tony@example.com", user.Email)
	require.True(t, client.Session.IsAuthenticated())

	// Browse the catalogue.
	products, err := client.Products.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, products, 10)

	decks, err := client.Products.List(ctx, shoptaboard.CategoryDecks)
	require.NoError(t, err)
	require.Len(t, decks, 2)

	// Fill the cart and trust the server's arithmetic.
	cart, err := client.Cart.Add(ctx, decks[0].ID, 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.TotalItems)
	assert.InDelta(t, 2*decks[0].Price, cart.TotalAmount, 0.001)

	cart, err = client.Cart.UpdateItem(ctx, cart.Items[0].ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, cart.TotalItems)

	// Check out; the snapshot is discarded and the server cart is empty.
	result, err := client.Cart.Checkout(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, result.OrderID)
	assert.Nil(t, client.Cart.Cart())

	cart, err = client.Cart.Fetch(ctx)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	// The order shows up in history.
	orders, err := client.Orders.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, result.OrderID, orders[0].ID)
	assert.Equal(t, shoptaboard.OrderStatusPending, orders[0].Status)

	order, err := client.Orders.Get(ctx, result.OrderID)
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, decks[0].ID, order.Items[0].ProductID)

	// A second empty-cart checkout is stopped client-side.
	_, err = client.Cart.Checkout(ctx)
	assert.ErrorIs(t, err, shoptaboard.ErrEmptyCart)
}

func TestIntegration_BootstrapAfterRestart(t *testing.T) {
	client, _ := newTestShop(t)
	ctx := context.Background()

	_, err := client.Session.SignUp(ctx, shoptaboard.SignUpRequest{
		Firstname: "Tony",
		Lastname:  "Hawk",
		Email:     "tony@example.com",
		Password:  "hangten99",
	})
	require.NoError(t, err)

	// A new client sharing the token store plays the part of a restarted
	// application.
	restarted := shoptaboard.NewClient(
		shoptaboard.WithBaseURL(client.BaseURL()),
		shoptaboard.WithTokenStore(client.TokenStore()),
	)

	require.NoError(t, restarted.Session.Bootstrap(ctx))
	assert.Equal(t, shoptaboard.StateAuthenticated, restarted.Session.State())
	assert.Equal(t, "tony@example.com", restarted.Session.CurrentUser().Email)
}

func TestIntegration_SilentRefreshOnStaleAccess(t *testing.T) {
	client, store := newTestShop(t)
	ctx := context.Background()

	_, err := client.Session.SignUp(ctx, shoptaboard.SignUpRequest{
		Firstname: "Tony",
		Lastname:  "Hawk",
		Email:     "tony@example.com",
		Password:  "hangten99",
	})
	require.NoError(t, err)

	// Kill the access token server-side; the refresh token stays valid.
	access, ok := client.TokenStore().AccessToken()
	require.True(t, ok)
	refresh, ok := client.TokenStore().RefreshToken()
	require.True(t, ok)
	require.NoError(t, store.SignOut(access))

	// Re-plant the now-dead pair. The server dropped both, so re-issue a
	// session and keep only its refresh half alive alongside a bogus access.
	tokens, err := store.SignIn("tony@example.com", "hangten99")
	require.NoError(t, err)
	require.NoError(t, client.TokenStore().Save(shoptaboard.Tokens{
		AccessToken:  "stale-" + refresh,
		RefreshToken: tokens.RefreshToken,
	}))

	restarted := shoptaboard.NewClient(
		shoptaboard.WithBaseURL(client.BaseURL()),
		shoptaboard.WithTokenStore(client.TokenStore()),
	)
	require.NoError(t, restarted.Session.Bootstrap(ctx))
	assert.True(t, restarted.Session.IsAuthenticated())

	// The store rotated the pair; the stale one is gone.
	newAccess, ok := restarted.TokenStore().AccessToken()
	require.True(t, ok)
	assert.NotEqual(t, tokens.AccessToken, newAccess)
	_, err = store.Refresh(tokens.RefreshToken)
	assert.ErrorIs(t, err, ErrUnknownToken)
}

func TestIntegration_ExpiredSessionSettlesAnonymous(t *testing.T) {
	client, _ := newTestShop(t)
	ctx := context.Background()

	require.NoError(t, client.TokenStore().Save(shoptaboard.Tokens{
		AccessToken:  "dead-access",
		RefreshToken: "dead-refresh",
	}))

	err := client.Session.Bootstrap(ctx)
	assert.ErrorIs(t, err, shoptaboard.ErrSessionExpired)
	assert.Equal(t, shoptaboard.StateAnonymous, client.Session.State())
	assert.False(t, client.TokenStore().Has())
}

func TestIntegration_AdminCatalogueManagement(t *testing.T) {
	client, _ := newTestShop(t)
	ctx := context.Background()

	require.NoError(t, client.Admin.Login(ctx, shoptaboard.AdminLoginRequest{
		Email:    "admin@test.local",
		Password: "adminpass",
	}))

	created, err := client.Admin.CreateProduct(ctx, shoptaboard.CreateProductRequest{
		Name:        "Indy Stage 11",
		Description: "149mm polished trucks",
		Category:    shoptaboard.CategoryTrucks,
		Brand:       "Independent",
		Price:       74.95,
		Stock:       20,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	all, err := client.Admin.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 11)

	price := 69.95
	updated, err := client.Admin.UpdateProduct(ctx, created.ID, shoptaboard.UpdateProductRequest{
		Price: &price,
	})
	require.NoError(t, err)
	assert.Equal(t, 69.95, updated.Price)
	assert.Equal(t, "Indy Stage 11", updated.Name)

	restocked, err := client.Admin.UpdateStock(ctx, created.ID, 35)
	require.NoError(t, err)
	assert.Equal(t, 35, restocked.Stock)

	require.NoError(t, client.Admin.DeleteProduct(ctx, created.ID))

	_, err = client.Admin.UpdateStock(ctx, created.ID, 1)
	apiErr, ok := shoptaboard.AsAPIError(err)
	require.True(t, ok)
	assert.True(t, apiErr.IsNotFound())
}

func TestIntegration_ShopperTokenCannotUseAdminSurface(t *testing.T) {
	client, _ := newTestShop(t)
	ctx := context.Background()

	_, err := client.Session.SignUp(ctx, shoptaboard.SignUpRequest{
		Firstname: "Tony",
		Lastname:  "Hawk",
		Email:     "tony@example.com",
		Password:  "hangten99",
	})
	require.NoError(t, err)

	// Plant the shopper tokens in the admin store to simulate a confused
	// caller. The server still refuses.
	shopperTokens, _ := client.TokenStore().AccessToken()
	require.NoError(t, client.Admin.TokenStore().Save(shoptaboard.Tokens{
		AccessToken:  shopperTokens,
		RefreshToken: "x",
	}))

	_, err = client.Admin.ListProducts(ctx)
	apiErr, ok := shoptaboard.AsAPIError(err)
	require.True(t, ok)
	assert.True(t, apiErr.IsUnauthorized())
}

func TestIntegration_ProfileUpdateAndAccountDeletion(t *testing.T) {
	client, _ := newTestShop(t)
	ctx := context.Background()

	_, err := client.Session.SignUp(ctx, shoptaboard.SignUpRequest{
		Firstname: "Tony",
		Lastname:  "Hawk",
		Email:     "tony@example.com",
		Password:  "hangten99",
	})
	require.NoError(t, err)

	user, err := client.Users.UpdateProfile(ctx, shoptaboard.UpdateProfileRequest{
		Firstname: "Anthony",
		Lastname:  "Hawk",
		Email:     "anthony@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Anthony", user.Firstname)
	assert.Equal(t, "anthony@example.com", client.Session.CurrentUser().Email)

	require.NoError(t, client.Users.DeleteAccount(ctx))
	assert.Equal(t, shoptaboard.StateAnonymous, client.Session.State())
	assert.False(t, client.TokenStore().Has())

	// The credentials are gone for good.
	_, err = client.Session.SignIn(ctx, shoptaboard.SignInRequest{
		Email:    "anthony@example.com",
		Password: "hangten99",
	})
	require.Error(t, err)
}
