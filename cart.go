package shoptaboard

import (
	"context"
	"fmt"
	"sync"
)

// CartService owns the single authoritative cart snapshot and mediates every
// mutating cart operation plus checkout.
//
// The server is authoritative: every mutating operation replaces the local
// snapshot wholesale with the server's response, and the client never
// recomputes totals locally. Mutations are single-flight: they serialize on
// an internal mutex held across the round trip, so completions apply in
// initiation order and cannot race each other.
type CartService struct {
	client *Client

	// opMu serializes mutating operations (single-flight queue).
	opMu sync.Mutex

	mu      sync.RWMutex
	cart    *Cart
	lastErr error
}

type addToCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// Cart returns a copy of the current snapshot, or nil if none is cached.
func (s *CartService) Cart() *Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneCart(s.cart)
}

// Err returns the last operation error, or nil.
func (s *CartService) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// ClearErr clears the retained operation error.
func (s *CartService) ClearErr() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = nil
}

func (s *CartService) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = nil
}

func (s *CartService) fail(err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
	return err
}

func (s *CartService) replace(cart *Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = cart
}

// Fetch loads the cart from the server and replaces the local snapshot
// wholesale.
func (s *CartService) Fetch(ctx context.Context) (*Cart, error) {
	s.begin()

	token, err := s.client.accessToken()
	if err != nil {
		return nil, s.fail(err)
	}

	var cart Cart
	if err := s.client.get(ctx, "/cart", token, &cart); err != nil {
		return nil, s.fail(err)
	}

	s.replace(&cart)
	return cloneCart(&cart), nil
}

// Add puts quantity units of a product in the cart. Quantity below 1 or a
// missing product ID fails locally before any network call.
func (s *CartService) Add(ctx context.Context, productID string, quantity int) (*Cart, error) {
	s.begin()

	if productID == "" {
		return nil, s.fail(newValidationError("productId", "product ID is required"))
	}
	if quantity < 1 {
		return nil, s.fail(newValidationError("quantity", "quantity must be at least 1"))
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	token, err := s.client.accessToken()
	if err != nil {
		return nil, s.fail(err)
	}

	var cart Cart
	req := addToCartRequest{ProductID: productID, Quantity: quantity}
	if err := s.client.post(ctx, "/cart/items", token, req, &cart); err != nil {
		return nil, s.fail(err)
	}

	s.replace(&cart)
	return cloneCart(&cart), nil
}

// UpdateItem changes the quantity of a cart line. Removal is a distinct
// operation: quantity below 1 is rejected locally, not treated as a delete.
func (s *CartService) UpdateItem(ctx context.Context, itemID string, quantity int) (*Cart, error) {
	s.begin()

	if itemID == "" {
		return nil, s.fail(newValidationError("itemId", "item ID is required"))
	}
	if quantity < 1 {
		return nil, s.fail(newValidationError("quantity", "quantity must be at least 1"))
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	token, err := s.client.accessToken()
	if err != nil {
		return nil, s.fail(err)
	}

	var cart Cart
	req := updateCartItemRequest{Quantity: quantity}
	if err := s.client.patch(ctx, "/cart/items/"+itemID, token, req, &cart); err != nil {
		return nil, s.fail(err)
	}

	s.replace(&cart)
	return cloneCart(&cart), nil
}

// Remove deletes a cart line.
func (s *CartService) Remove(ctx context.Context, itemID string) (*Cart, error) {
	s.begin()

	if itemID == "" {
		return nil, s.fail(newValidationError("itemId", "item ID is required"))
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	token, err := s.client.accessToken()
	if err != nil {
		return nil, s.fail(err)
	}

	var cart Cart
	if err := s.client.delete(ctx, "/cart/items/"+itemID, token, &cart); err != nil {
		return nil, s.fail(err)
	}

	s.replace(&cart)
	return cloneCart(&cart), nil
}

// Clear empties the server-side cart and drops the local snapshot.
func (s *CartService) Clear(ctx context.Context) error {
	s.begin()

	s.opMu.Lock()
	defer s.opMu.Unlock()

	token, err := s.client.accessToken()
	if err != nil {
		return s.fail(err)
	}

	if err := s.client.delete(ctx, "/cart", token, nil); err != nil {
		return s.fail(err)
	}

	s.replace(nil)
	return nil
}

// Checkout turns the cart into an order.
//
// An empty cart is rejected before the checkout request is issued: if no
// snapshot is known the cart is fetched first, and zero items fails with
// ErrEmptyCart. On success the local snapshot is discarded unconditionally;
// the server has cleared the cart and the next Fetch observes a fresh empty
// one.
func (s *CartService) Checkout(ctx context.Context) (*CheckoutResult, error) {
	s.begin()

	s.opMu.Lock()
	defer s.opMu.Unlock()

	token, err := s.client.accessToken()
	if err != nil {
		return nil, s.fail(err)
	}

	known := s.Cart()
	if known == nil {
		var cart Cart
		if err := s.client.get(ctx, "/cart", token, &cart); err != nil {
			return nil, s.fail(fmt.Errorf("confirm cart before checkout: %w", err))
		}
		s.replace(&cart)
		known = &cart
	}
	if len(known.Items) == 0 {
		return nil, s.fail(ErrEmptyCart)
	}

	var result CheckoutResult
	if err := s.client.post(ctx, "/cart/checkout", token, nil, &result); err != nil {
		return nil, s.fail(err)
	}

	s.replace(nil)
	return &result, nil
}

func cloneCart(c *Cart) *Cart {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Items = make([]CartItem, len(c.Items))
	copy(clone.Items, c.Items)
	return &clone
}
