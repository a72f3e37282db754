package shoptaboard

import "context"

// OrdersService reads the shopper's order history. Orders are created
// server-side at checkout; the client only ever reads them.
type OrdersService struct {
	client *Client
}

// List returns the shopper's orders.
func (s *OrdersService) List(ctx context.Context) ([]Order, error) {
	token, err := s.client.accessToken()
	if err != nil {
		return nil, err
	}

	var orders []Order
	if err := s.client.get(ctx, "/orders", token, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Get retrieves an order by ID.
func (s *OrdersService) Get(ctx context.Context, id string) (*Order, error) {
	if id == "" {
		return nil, newValidationError("id", "order ID is required")
	}

	token, err := s.client.accessToken()
	if err != nil {
		return nil, err
	}

	var order Order
	if err := s.client.get(ctx, "/orders/"+id, token, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
