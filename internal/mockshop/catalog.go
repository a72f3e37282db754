package mockshop

import (
	shoptaboard "github.com/Gra1gkolodziejczyk/shop-ta-board"
)

// Products returns the catalogue in insertion order, optionally filtered by
// category.
func (s *Store) Products(category shoptaboard.Category) []shoptaboard.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]shoptaboard.Product, 0, len(s.productOrder))
	for _, id := range s.productOrder {
		p := s.products[id]
		if category != "" && p.Category != category {
			continue
		}
		products = append(products, *p)
	}
	return products
}

// Product retrieves a catalogue entry by ID.
func (s *Store) Product(id string) (*shoptaboard.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	out := *p
	return &out, nil
}

// CreateProduct adds a catalogue entry and assigns it an ID.
func (s *Store) CreateProduct(p shoptaboard.Product) *shoptaboard.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.newID()
	s.products[p.ID] = &p
	s.productOrder = append(s.productOrder, p.ID)

	out := p
	return &out
}

// ProductPatch carries the fields of a partial product update. Nil fields
// are left untouched.
type ProductPatch struct {
	Name        *string
	Description *string
	Category    *shoptaboard.Category
	Brand       *string
	Price       *float64
	ImageURL    *string
	Stock       *int
}

// UpdateProduct applies a partial update.
func (s *Store) UpdateProduct(id string, patch ProductPatch) (*shoptaboard.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}

	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Brand != nil {
		p.Brand = *patch.Brand
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.ImageURL != nil {
		p.ImageURL = *patch.ImageURL
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}

	out := *p
	return &out, nil
}

// DeleteProduct removes a catalogue entry.
func (s *Store) DeleteProduct(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return ErrProductNotFound
	}
	delete(s.products, id)
	for i, pid := range s.productOrder {
		if pid == id {
			s.productOrder = append(s.productOrder[:i], s.productOrder[i+1:]...)
			break
		}
	}
	return nil
}

// Seed loads a starting catalogue.
func (s *Store) Seed(products []shoptaboard.Product) {
	for _, p := range products {
		s.CreateProduct(p)
	}
}

// DefaultCatalogue is the seed inventory used by the mockshop binary.
func DefaultCatalogue() []shoptaboard.Product {
	return []shoptaboard.Product{
		{Name: "Street Deck 8.0", Description: "7-ply maple street deck, medium concave", Category: shoptaboard.CategoryDecks, Brand: "Hellside", Price: 64.90, ImageURL: "/img/street-deck-80.jpg", Stock: 12},
		{Name: "Pool Deck 8.5", Description: "Wide deck for transition and pool riding", Category: shoptaboard.CategoryDecks, Brand: "Hellside", Price: 69.90, ImageURL: "/img/pool-deck-85.jpg", Stock: 7},
		{Name: "Forged Trucks 139", Description: "Forged baseplate trucks, pair, 139mm hanger", Category: shoptaboard.CategoryTrucks, Brand: "Axle & Co", Price: 54.00, ImageURL: "/img/forged-139.jpg", Stock: 20},
		{Name: "Park Wheels 54mm", Description: "99A urethane park wheels, set of four", Category: shoptaboard.CategoryWheels, Brand: "Spinners", Price: 34.50, ImageURL: "/img/park-54.jpg", Stock: 30},
		{Name: "Cruiser Wheels 60mm", Description: "78A soft wheels for rough pavement, set of four", Category: shoptaboard.CategoryWheels, Brand: "Spinners", Price: 39.00, ImageURL: "/img/cruiser-60.jpg", Stock: 4},
		{Name: "Swiss Bearings", Description: "Precision swiss bearings, set of eight with spacers", Category: shoptaboard.CategoryBearings, Brand: "Rollfast", Price: 49.90, ImageURL: "/img/swiss-8.jpg", Stock: 15},
		{Name: "Shop Hoodie", Description: "Heavyweight cotton hoodie with shop-ta-board print", Category: shoptaboard.CategoryApparel, Brand: "shop-ta-board", Price: 59.00, ImageURL: "/img/hoodie.jpg", Stock: 25},
		{Name: "Suede Skate Shoes", Description: "Reinforced suede skate shoes, vulcanized sole", Category: shoptaboard.CategoryShoes, Brand: "Grippers", Price: 79.90, ImageURL: "/img/suede-shoes.jpg", Stock: 9},
		{Name: "Grip Tape", Description: "9x33 perforated grip tape sheet", Category: shoptaboard.CategoryAccessories, Brand: "Stick-It", Price: 9.90, ImageURL: "/img/grip.jpg", Stock: 50},
		{Name: "Skate Tool", Description: "All-in-one T-tool with ratchet", Category: shoptaboard.CategoryAccessories, Brand: "Axle & Co", Price: 14.90, ImageURL: "/img/tool.jpg", Stock: 0},
	}
}
