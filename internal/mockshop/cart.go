package mockshop

import (
	"time"

	shoptaboard "github.com/Gra1gkolodziejczyk/shop-ta-board"
)

// cartFor returns the user's cart, creating an empty one on first touch.
// Caller must hold the write lock.
func (s *Store) cartFor(userID string) *shoptaboard.Cart {
	cart, ok := s.carts[userID]
	if !ok {
		cart = &shoptaboard.Cart{
			ID:     s.newID(),
			UserID: userID,
			Items:  []shoptaboard.CartItem{},
		}
		s.carts[userID] = cart
	}
	return cart
}

// recalc recomputes the server-authoritative totals.
func recalc(cart *shoptaboard.Cart) {
	total := 0.0
	count := 0
	for i := range cart.Items {
		item := &cart.Items[i]
		item.Subtotal = float64(item.Quantity) * item.ProductPrice
		total += item.Subtotal
		count += item.Quantity
	}
	cart.TotalAmount = total
	cart.TotalItems = count
}

func snapshot(cart *shoptaboard.Cart) *shoptaboard.Cart {
	out := *cart
	out.Items = make([]shoptaboard.CartItem, len(cart.Items))
	copy(out.Items, cart.Items)
	return &out
}

// CartSnapshot returns the user's current cart.
func (s *Store) CartSnapshot(userID string) *shoptaboard.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.cartFor(userID))
}

// AddItem puts quantity units of a product in the user's cart. Adding a
// product already in the cart increments its line.
func (s *Store) AddItem(userID, productID string, quantity int) (*shoptaboard.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[productID]
	if !ok {
		return nil, ErrProductNotFound
	}

	cart := s.cartFor(userID)

	var line *shoptaboard.CartItem
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			line = &cart.Items[i]
			break
		}
	}

	wanted := quantity
	if line != nil {
		wanted += line.Quantity
	}
	if product.Stock < wanted {
		return nil, ErrOutOfStock
	}

	if line != nil {
		line.Quantity = wanted
	} else {
		cart.Items = append(cart.Items, shoptaboard.CartItem{
			ID:           s.newID(),
			ProductID:    product.ID,
			ProductName:  product.Name,
			ProductBrand: product.Brand,
			ProductPrice: product.Price,
			ProductImage: product.ImageURL,
			Quantity:     quantity,
		})
	}

	recalc(cart)
	return snapshot(cart), nil
}

// UpdateItem changes a cart line's quantity.
func (s *Store) UpdateItem(userID, itemID string, quantity int) (*shoptaboard.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cartFor(userID)
	for i := range cart.Items {
		item := &cart.Items[i]
		if item.ID != itemID {
			continue
		}
		if product, ok := s.products[item.ProductID]; ok && product.Stock < quantity {
			return nil, ErrOutOfStock
		}
		item.Quantity = quantity
		recalc(cart)
		return snapshot(cart), nil
	}
	return nil, ErrCartItemNotFound
}

// RemoveItem deletes a cart line.
func (s *Store) RemoveItem(userID, itemID string) (*shoptaboard.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cartFor(userID)
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			recalc(cart)
			return snapshot(cart), nil
		}
	}
	return nil, ErrCartItemNotFound
}

// ClearCart empties the user's cart.
func (s *Store) ClearCart(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cartFor(userID)
	cart.Items = []shoptaboard.CartItem{}
	recalc(cart)
}

// Checkout consumes the cart and produces an order. Stock is decremented
// at checkout time.
func (s *Store) Checkout(userID string) (*shoptaboard.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cartFor(userID)
	if len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}

	// Validate every line before touching stock so a failed checkout
	// leaves the catalogue untouched.
	for _, item := range cart.Items {
		if product, ok := s.products[item.ProductID]; ok && product.Stock < item.Quantity {
			return nil, ErrOutOfStock
		}
	}

	now := time.Now().UTC()
	order := &shoptaboard.Order{
		ID:          s.newID(),
		UserID:      userID,
		Items:       make([]shoptaboard.OrderItem, 0, len(cart.Items)),
		TotalAmount: cart.TotalAmount,
		TotalItems:  cart.TotalItems,
		Status:      shoptaboard.OrderStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	for _, item := range cart.Items {
		if product, ok := s.products[item.ProductID]; ok {
			product.Stock -= item.Quantity
		}
		order.Items = append(order.Items, shoptaboard.OrderItem{
			ID:           s.newID(),
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			ProductBrand: item.ProductBrand,
			ProductImage: item.ProductImage,
			Quantity:     item.Quantity,
			UnitPrice:    item.ProductPrice,
			Subtotal:     item.Subtotal,
		})
	}

	s.orders[userID] = append(s.orders[userID], order)

	cart.Items = []shoptaboard.CartItem{}
	recalc(cart)

	return order, nil
}

// Orders returns the user's order history, most recent first.
func (s *Store) Orders(userID string) []shoptaboard.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.orders[userID]
	out := make([]shoptaboard.Order, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		out = append(out, *history[i])
	}
	return out
}

// Order retrieves one of the user's orders by ID.
func (s *Store) Order(userID, orderID string) (*shoptaboard.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, order := range s.orders[userID] {
		if order.ID == orderID {
			out := *order
			return &out, nil
		}
	}
	return nil, ErrOrderNotFound
}
