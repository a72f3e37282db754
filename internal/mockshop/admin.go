package mockshop

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	shoptaboard "github.com/Gra1gkolodziejczyk/shop-ta-board"
)

type adminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if !decode(w, r, &req) {
		return
	}

	tokens, err := s.store.AdminLogin(req.Email, req.Password)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tokens)
}

func (s *Server) handleAdminListProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Products(""))
}

type createProductRequest struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Category    shoptaboard.Category `json:"category"`
	Brand       string               `json:"brand"`
	Price       float64              `json:"price"`
	ImageURL    string               `json:"imageUrl"`
	Stock       int                  `json:"stock"`
}

func (s *Server) handleAdminCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Name == "" || req.Price <= 0 {
		writeError(w, http.StatusBadRequest, "name and a positive price are required")
		return
	}

	product := s.store.CreateProduct(shoptaboard.Product{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Brand:       req.Brand,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Stock:       req.Stock,
	})
	writeJSON(w, http.StatusCreated, product)
}

type updateProductRequest struct {
	Name        *string               `json:"name"`
	Description *string               `json:"description"`
	Category    *shoptaboard.Category `json:"category"`
	Brand       *string               `json:"brand"`
	Price       *float64              `json:"price"`
	ImageURL    *string               `json:"imageUrl"`
	Stock       *int                  `json:"stock"`
}

func (s *Server) handleAdminUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req updateProductRequest
	if !decode(w, r, &req) {
		return
	}

	product, err := s.store.UpdateProduct(chi.URLParam(r, "id"), ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Brand:       req.Brand,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Stock:       req.Stock,
	})
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

type updateStockRequest struct {
	Stock int `json:"stock"`
}

func (s *Server) handleAdminUpdateStock(w http.ResponseWriter, r *http.Request) {
	var req updateStockRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Stock < 0 {
		writeError(w, http.StatusBadRequest, "stock cannot be negative")
		return
	}

	product, err := s.store.UpdateProduct(chi.URLParam(r, "id"), ProductPatch{Stock: &req.Stock})
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (s *Server) handleAdminDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteProduct(chi.URLParam(r, "id")); err != nil {
		storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
