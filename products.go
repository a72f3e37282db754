package shoptaboard

import (
	"context"
	"net/url"
)

// ProductsService reads the storefront catalogue. All operations require an
// authenticated session.
type ProductsService struct {
	client *Client
}

// List returns products, optionally filtered by category.
func (s *ProductsService) List(ctx context.Context, category Category) ([]Product, error) {
	token, err := s.client.accessToken()
	if err != nil {
		return nil, err
	}

	path := "/products"
	if category != "" {
		path += "?category=" + url.QueryEscape(string(category))
	}

	var products []Product
	if err := s.client.get(ctx, path, token, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Get retrieves a product by ID.
func (s *ProductsService) Get(ctx context.Context, id string) (*Product, error) {
	if id == "" {
		return nil, newValidationError("id", "product ID is required")
	}

	token, err := s.client.accessToken()
	if err != nil {
		return nil, err
	}

	var product Product
	if err := s.client.get(ctx, "/products/"+id, token, &product); err != nil {
		return nil, err
	}
	return &product, nil
}
