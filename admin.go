package shoptaboard

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// AdminService is the client for the product-management console. It rides
// the same gateway and the same session mechanics as the shopper surface but
// holds admin credentials in its own token store; the two scopes never mix.
type AdminService struct {
	client *Client
	tokens TokenStore
}

// AdminLoginRequest is the input for Login.
type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateProductRequest is the input for CreateProduct.
type CreateProductRequest struct {
	Name        string   `json:"name" validate:"min=2"`
	Description string   `json:"description" validate:"min=10"`
	Category    Category `json:"category"`
	Brand       string   `json:"brand"`
	Price       float64  `json:"price" validate:"gt=0"`
	ImageURL    string   `json:"imageUrl"`
	Stock       int      `json:"stock" validate:"gte=0"`
}

// UpdateProductRequest is the partial-update input for UpdateProduct. Nil
// fields are left untouched; present fields are validated, so an explicit
// zero price is still rejected (omitnil, not omitempty).
type UpdateProductRequest struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Category    *Category `json:"category,omitempty"`
	Brand       *string   `json:"brand,omitempty"`
	Price       *float64  `json:"price,omitempty" validate:"omitnil,gt=0"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	Stock       *int      `json:"stock,omitempty" validate:"omitnil,gte=0"`
}

type updateStockRequest struct {
	Stock int `json:"stock"`
}

// validateCreateProduct normalizes and validates product input without any
// I/O.
func (s *AdminService) validateCreateProduct(req *CreateProductRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)

	err := s.client.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return newValidationError("", "invalid product data")
	}
	return adminFieldError(fieldErrs[0])
}

func (s *AdminService) validateUpdateProduct(req *UpdateProductRequest) error {
	err := s.client.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return newValidationError("", "invalid product data")
	}
	return adminFieldError(fieldErrs[0])
}

func adminFieldError(fe validator.FieldError) error {
	switch fe.StructField() {
	case "Name":
		return newValidationError("name", "product name must be at least 2 characters")
	case "Description":
		return newValidationError("description", "description must be at least 10 characters")
	case "Price":
		return newValidationError("price", "price must be greater than 0")
	case "Stock":
		return newValidationError("stock", "stock cannot be negative")
	default:
		return newValidationError(strings.ToLower(fe.StructField()), fe.Error())
	}
}

// TokenStore returns the admin token store.
func (s *AdminService) TokenStore() TokenStore {
	return s.tokens
}

// IsAuthenticated reports whether admin tokens are present.
func (s *AdminService) IsAuthenticated() bool {
	_, ok := s.tokens.AccessToken()
	return ok
}

func (s *AdminService) accessToken() (string, error) {
	token, ok := s.tokens.AccessToken()
	if !ok {
		return "", ErrUnauthenticated
	}
	return token, nil
}

// Login authenticates against the admin console and stores the admin token
// pair.
func (s *AdminService) Login(ctx context.Context, req AdminLoginRequest) error {
	if req.Email == "" || req.Password == "" {
		return newValidationError("", "email and password are required")
	}

	var tokens Tokens
	if err := s.client.post(ctx, "/admin/login", "", req, &tokens); err != nil {
		return err
	}
	return s.tokens.Save(tokens)
}

// Logout drops the admin tokens locally.
func (s *AdminService) Logout() error {
	return s.tokens.Clear()
}

// ListProducts returns the full catalogue, including out-of-stock entries.
func (s *AdminService) ListProducts(ctx context.Context) ([]Product, error) {
	token, err := s.accessToken()
	if err != nil {
		return nil, err
	}

	var products []Product
	if err := s.client.get(ctx, "/admin/products", token, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct adds a catalogue entry. Validation failures are returned
// before any network call.
func (s *AdminService) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	if err := s.validateCreateProduct(&req); err != nil {
		return nil, err
	}

	token, err := s.accessToken()
	if err != nil {
		return nil, err
	}

	var product Product
	if err := s.client.post(ctx, "/admin/products", token, req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct applies a partial update to a catalogue entry.
func (s *AdminService) UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*Product, error) {
	if id == "" {
		return nil, newValidationError("id", "product ID is required")
	}
	if err := s.validateUpdateProduct(&req); err != nil {
		return nil, err
	}

	token, err := s.accessToken()
	if err != nil {
		return nil, err
	}

	var product Product
	if err := s.client.patch(ctx, "/admin/products/"+id, token, req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateStock sets a product's stock level.
func (s *AdminService) UpdateStock(ctx context.Context, id string, stock int) (*Product, error) {
	if id == "" {
		return nil, newValidationError("id", "product ID is required")
	}
	if stock < 0 {
		return nil, newValidationError("stock", "stock cannot be negative")
	}

	token, err := s.accessToken()
	if err != nil {
		return nil, err
	}

	var product Product
	if err := s.client.patch(ctx, "/admin/products/"+id+"/stock", token, updateStockRequest{Stock: stock}, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes a catalogue entry.
func (s *AdminService) DeleteProduct(ctx context.Context, id string) error {
	if id == "" {
		return newValidationError("id", "product ID is required")
	}

	token, err := s.accessToken()
	if err != nil {
		return err
	}

	return s.client.delete(ctx, "/admin/products/"+id, token, nil)
}
