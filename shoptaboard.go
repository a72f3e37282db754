package shoptaboard

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	// DefaultBaseURL is the default storefront API endpoint.
	DefaultBaseURL = "http://localhost:4000"
	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second
)

// Client is the shop-ta-board API client. It owns the one session and the
// one authoritative cart snapshot of a running application.
//
// Use NewClient to create a client:
//
//	client := shoptaboard.NewClient(shoptaboard.WithBaseURL("https://api.shop-ta-board.com"))
//	if err := client.Session.Bootstrap(ctx); err != nil { ... }
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenStore
	logger     *slog.Logger
	validate   *validator.Validate

	// Services
	Session  *SessionService
	Cart     *CartService
	Products *ProductsService
	Orders   *OrdersService
	Users    *UsersService
	Admin    *AdminService
}

// Option configures the client.
type Option func(*Client)

// WithBaseURL sets a custom API base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if c.httpClient == nil {
			c.httpClient = &http.Client{}
		}
		c.httpClient.Timeout = timeout
	}
}

// WithTokenStore sets the shopper token store. Defaults to an in-memory
// store; pass a FileTokenStore to keep the session across restarts.
func WithTokenStore(store TokenStore) Option {
	return func(c *Client) {
		c.tokens = store
	}
}

// WithAdminTokenStore sets the token store for the admin console session.
// Admin credentials never share the shopper token store.
func WithAdminTokenStore(store TokenStore) Option {
	return func(c *Client) {
		if c.Admin == nil {
			c.Admin = &AdminService{}
		}
		c.Admin.tokens = store
	}
}

// WithLogger sets a structured logger. Requests are logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new shop-ta-board API client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		tokens:  NewMemoryTokenStore(),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	c.validate = validator.New()

	// Initialize services
	c.Session = &SessionService{client: c, state: StateUninitialized}
	c.Cart = &CartService{client: c}
	c.Products = &ProductsService{client: c}
	c.Orders = &OrdersService{client: c}
	c.Users = &UsersService{client: c}
	if c.Admin == nil {
		c.Admin = &AdminService{}
	}
	c.Admin.client = c
	if c.Admin.tokens == nil {
		c.Admin.tokens = NewMemoryTokenStore()
	}

	return c
}

// BaseURL returns the current base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// TokenStore returns the shopper token store.
func (c *Client) TokenStore() TokenStore {
	return c.tokens
}

// accessToken returns the stored access token or ErrUnauthenticated. Every
// operation that requires authentication reads the token here, at point of
// use; presence is the only thing checked.
func (c *Client) accessToken() (string, error) {
	token, ok := c.tokens.AccessToken()
	if !ok {
		return "", ErrUnauthenticated
	}
	return token, nil
}
