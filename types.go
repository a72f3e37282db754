// Package shoptaboard provides the official Go client for the shop-ta-board
// storefront API.
//
// shop-ta-board is a skate shop: the client covers authentication, product
// browsing, cart management, checkout, order history, and the admin product
// console. All state-holding services (session, cart) are owned by a Client
// instance; construct one per running application.
package shoptaboard

import "time"

// Tokens is the access/refresh token pair issued by the auth endpoints.
// Token contents are opaque to the client; only presence is ever checked.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// User is the authenticated shopper's identity snapshot. It is replaced
// wholesale on every session-affecting operation, never patched field by
// field.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

// Category is a product category.
type Category string

const (
	CategoryDecks       Category = "decks"
	CategoryTrucks      Category = "trucks"
	CategoryWheels      Category = "wheels"
	CategoryBearings    Category = "bearings"
	CategoryApparel     Category = "apparel"
	CategoryShoes       Category = "shoes"
	CategoryAccessories Category = "accessories"
)

// Product is a catalogue entry.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Brand       string   `json:"brand"`
	Price       float64  `json:"price"`
	ImageURL    string   `json:"imageUrl"`
	Stock       int      `json:"stock"`
}

// Available reports whether the product is in stock.
func (p *Product) Available() bool {
	return p.Stock > 0
}

// LowStock reports whether the product is down to its last few units.
func (p *Product) LowStock() bool {
	return p.Stock > 0 && p.Stock <= 5
}

// CartItem is one line of a cart. Subtotal is server-computed; the client
// never recomputes it.
type CartItem struct {
	ID           string  `json:"id"`
	ProductID    string  `json:"productId"`
	ProductName  string  `json:"productName"`
	ProductBrand string  `json:"productBrand"`
	ProductPrice float64 `json:"productPrice"`
	ProductImage string  `json:"productImage"`
	Quantity     int     `json:"quantity"`
	Subtotal     float64 `json:"subtotal"`
}

// Cart is the server-authoritative cart snapshot. TotalAmount and TotalItems
// are whatever the server returned.
type Cart struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Items       []CartItem `json:"items"`
	TotalAmount float64    `json:"totalAmount"`
	TotalItems  int        `json:"totalItems"`
}

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusPaid       OrderStatus = "paid"
)

// OrderStatusLabels maps statuses to display labels.
var OrderStatusLabels = map[OrderStatus]string{
	OrderStatusPending:    "Pending",
	OrderStatusProcessing: "Processing",
	OrderStatusShipped:    "Shipped",
	OrderStatusDelivered:  "Delivered",
	OrderStatusCancelled:  "Cancelled",
	OrderStatusPaid:       "Paid",
}

// OrderItem is one line of a placed order.
type OrderItem struct {
	ID           string  `json:"id"`
	ProductID    string  `json:"productId"`
	ProductName  string  `json:"productName"`
	ProductBrand string  `json:"productBrand"`
	ProductImage string  `json:"productImage"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unitPrice"`
	Subtotal     float64 `json:"subtotal"`
}

// Order is an immutable historical record created at checkout. The client
// only ever reads orders.
type Order struct {
	ID          string      `json:"id"`
	UserID      string      `json:"userId"`
	Items       []OrderItem `json:"items"`
	TotalAmount float64     `json:"totalAmount"`
	TotalItems  int         `json:"totalItems"`
	Status      OrderStatus `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// CheckoutResult is returned by a successful checkout.
type CheckoutResult struct {
	Message string `json:"message"`
	OrderID string `json:"orderId"`
}
